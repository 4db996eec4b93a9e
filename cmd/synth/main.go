package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"go-spectra-pipeline/internal/config"
	"go-spectra-pipeline/internal/store"
	"go-spectra-pipeline/internal/synth"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the batch configuration file")
	flag.Parse()

	spec, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("❌ Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if err := store.InitDB(filepath.Join(spec.Paths.OutputDirectory, "synth.db")); err != nil {
		fmt.Printf("❌ Failed to open database: %v\n", err)
		os.Exit(1)
	}

	batchID := uuid.New().String()
	if err := store.SaveBatch(batchID, *spec); err != nil {
		fmt.Printf("❌ Failed to save batch: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("🆔 Batch %s\n", batchID)

	if err := synth.ExecuteBatch(context.Background(), batchID, spec, *configPath); err != nil {
		fmt.Printf("❌ Batch failed: %v\n", err)
		os.Exit(1)
	}
}
