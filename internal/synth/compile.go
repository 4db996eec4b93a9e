package synth

import (
	"context"
	"fmt"

	"github.com/input-output-hk/catalyst-forge-libs/executor"

	"go-spectra-pipeline/internal/config"
	"go-spectra-pipeline/internal/model"
)

// CompileTurbospectrum runs make in the compiler-specific exec directory.
// Done once per batch, before any parameter set is processed.
func CompileTurbospectrum(ctx context.Context, spec *model.BatchSpec) error {
	dir, err := config.CompiledPath(spec)
	if err != nil {
		return err
	}
	result, err := executor.New("make").Execute(ctx,
		executor.WithWorkingDir(dir),
		executor.WithCapture(true, true, false),
	)
	if err != nil {
		if result != nil && result.Stderr != "" {
			return fmt.Errorf("compile Turbospectrum in %s: %s", dir, result.Stderr)
		}
		return fmt.Errorf("compile Turbospectrum in %s: %w", dir, err)
	}
	fmt.Println("🔨 Compiled Turbospectrum")
	return nil
}

// CompileInterpolator builds interpol_modeles from its Fortran source, the
// way the Turbospectrum documentation prescribes:
// <compiler> -o interpol_modeles interpol_modeles.f
func CompileInterpolator(ctx context.Context, spec *model.BatchSpec) error {
	dir := spec.Paths.Interpolator
	result, err := executor.New(spec.Compiler, "-o", "interpol_modeles", "interpol_modeles.f").Execute(ctx,
		executor.WithWorkingDir(dir),
		executor.WithCapture(true, true, false),
	)
	if err != nil {
		if result != nil && result.Stderr != "" {
			return fmt.Errorf("compile interpolator in %s: %s", dir, result.Stderr)
		}
		return fmt.Errorf("compile interpolator in %s: %w", dir, err)
	}
	fmt.Println("🔨 Compiled interpolator")
	return nil
}
