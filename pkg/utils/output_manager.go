package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// OutputManager handles run-directory organization: every batch gets a
// timestamped directory under the base output directory with a temp/
// subdirectory for per-job scratch space.
type OutputManager struct {
	BaseOutputDir string
}

// NewOutputManager creates a new output manager.
func NewOutputManager(baseOutputDir string) *OutputManager {
	return &OutputManager{BaseOutputDir: baseOutputDir}
}

// CreateRunDir creates the timestamped directory for one batch run plus its
// temp/ subdirectory, and returns the run directory path.
func (om *OutputManager) CreateRunDir() (string, error) {
	stamp := time.Now().Format("2006-01-02_1504")
	runDir := filepath.Join(om.BaseOutputDir, stamp)
	if err := os.MkdirAll(filepath.Join(runDir, "temp"), 0o755); err != nil {
		return "", fmt.Errorf("failed to create run directory: %w", err)
	}
	return runDir, nil
}

// JobDir returns the scratch directory for one job inside a run directory.
func (om *OutputManager) JobDir(runDir, jobID string) string {
	return filepath.Join(runDir, "temp", jobID)
}

// CopyConfigFile snapshots the configuration used for a run into the run
// directory for later reference.
func (om *OutputManager) CopyConfigFile(configPath, runDir string) error {
	src, err := os.Open(configPath)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(runDir, "config"+filepath.Ext(configPath)))
	if err != nil {
		return fmt.Errorf("failed to copy config file: %w", err)
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// RemoveTemp deletes a run's temp directory (scripts, interpolated
// atmospheres, opacity files). Spectra and reports stay.
func (om *OutputManager) RemoveTemp(runDir string) error {
	return os.RemoveAll(filepath.Join(runDir, "temp"))
}
