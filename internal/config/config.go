// Package config loads and validates the batch run configuration. The same
// validation runs for YAML files (CLI) and JSON bodies (API), so a spec that
// passes here is safe to hand to the orchestrator.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"go-spectra-pipeline/internal/model"
)

// DefaultRunTimeout bounds each external process when the spec does not set
// its own limit.
const DefaultRunTimeout = 30 * time.Minute

// Load reads a YAML batch spec from disk and validates it.
func Load(path string) (*model.BatchSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var spec model.BatchSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if err := Validate(&spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate checks everything that must hold before any parameter set is
// processed. Failures here are fatal: a bad wavelength window or a missing
// directory would break every set in the batch identically.
func Validate(spec *model.BatchSpec) error {
	if _, err := CompiledPath(spec); err != nil {
		return err
	}

	dirs := map[string]string{
		"turbospectrum":     spec.Paths.Turbospectrum,
		"interpolator":      spec.Paths.Interpolator,
		"linelists":         spec.Paths.Linelists,
		"model_atmospheres": spec.Paths.ModelAtmospheres,
		"output_directory":  spec.Paths.OutputDirectory,
	}
	for name, dir := range dirs {
		if dir == "" {
			return fmt.Errorf("path %s is required", name)
		}
		if _, err := os.Stat(dir); err != nil {
			return fmt.Errorf("path %s: directory %s does not exist", name, dir)
		}
	}

	w := spec.Wavelength
	if w.Min >= w.Max || w.Step <= 0 {
		return &model.InvalidRangeError{Min: w.Min, Max: w.Max, Step: w.Step}
	}
	if w.Min <= 0 {
		return fmt.Errorf("wavelength bounds must be positive, got min=%g", w.Min)
	}

	if spec.Generation.ReadFromFile {
		if spec.Paths.InputParameters == "" {
			return fmt.Errorf("path input_parameters is required when reading stellar parameters from a file")
		}
		if _, err := os.Stat(spec.Paths.InputParameters); err != nil {
			return fmt.Errorf("input parameter file %s does not exist", spec.Paths.InputParameters)
		}
	} else if err := validateGeneration(&spec.Generation); err != nil {
		return err
	}

	if spec.Batch.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", spec.Batch.Workers)
	}
	if spec.Batch.RunTimeout != "" {
		if _, err := time.ParseDuration(spec.Batch.RunTimeout); err != nil {
			return fmt.Errorf("invalid run_timeout %q: %w", spec.Batch.RunTimeout, err)
		}
	}
	return nil
}

func validateGeneration(gen *model.Generation) error {
	ranges := map[string]model.ParameterRange{
		"teff": gen.Ranges.Teff,
		"logg": gen.Ranges.Logg,
		"z":    gen.Ranges.Z,
		"mg":   gen.Ranges.Mg,
		"ca":   gen.Ranges.Ca,
	}
	for name, r := range ranges {
		if r.Min >= r.Max {
			return fmt.Errorf("parameter range %s: min %g must be smaller than max %g", name, r.Min, r.Max)
		}
	}
	if gen.Ranges.Teff.Min <= 0 {
		return fmt.Errorf("teff range must be positive, got min=%g", gen.Ranges.Teff.Min)
	}

	if gen.Random {
		if gen.NumSpectra <= 0 {
			return fmt.Errorf("num_spectra must be at least 1, got %d", gen.NumSpectra)
		}
		return nil
	}
	points := []int{
		gen.Even.NumPointsTeff, gen.Even.NumPointsLogg, gen.Even.NumPointsZ,
		gen.Even.NumPointsMg, gen.Even.NumPointsCa,
	}
	for _, n := range points {
		if n < 1 {
			return fmt.Errorf("every even-spacing axis needs at least 1 point")
		}
	}
	return nil
}

// CompiledPath returns the directory holding the compiled Turbospectrum
// executables for the configured compiler.
func CompiledPath(spec *model.BatchSpec) (string, error) {
	switch strings.ToLower(spec.Compiler) {
	case "intel":
		return filepath.Join(spec.Paths.Turbospectrum, "exec"), nil
	case "gfortran":
		return filepath.Join(spec.Paths.Turbospectrum, "exec-gf"), nil
	default:
		return "", fmt.Errorf("compiler %q is not supported (use gfortran or intel)", spec.Compiler)
	}
}

// RunTimeout returns the per-process timeout for the batch.
func RunTimeout(spec *model.BatchSpec) time.Duration {
	if spec.Batch.RunTimeout == "" {
		return DefaultRunTimeout
	}
	d, err := time.ParseDuration(spec.Batch.RunTimeout)
	if err != nil {
		return DefaultRunTimeout
	}
	return d
}
