package main

import (
	"go-spectra-pipeline/internal/api"
	"go-spectra-pipeline/internal/store"
	"go-spectra-pipeline/pkg/router"
)

// @title Spectra Pipeline API
// @version 1.0
// @description Batch spectral synthesis orchestration API
// @host localhost:8080
// @BasePath /api/v1

func main() {
	if err := store.InitDB("synth.db"); err != nil {
		panic(err)
	}

	r := router.New()
	api.RegisterRoutes(r)
	r.Start(":8080")
}
