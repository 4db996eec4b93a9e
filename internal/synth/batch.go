package synth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-spectra-pipeline/internal/catalog"
	"go-spectra-pipeline/internal/config"
	"go-spectra-pipeline/internal/model"
	"go-spectra-pipeline/internal/params"
	"go-spectra-pipeline/internal/store"
	"go-spectra-pipeline/pkg/utils"
)

// runOne processes a single parameter set end to end: resolve an atmosphere,
// generate the control files, run babsma then bsyn. Every failure is
// contained in the returned result; runOne never aborts the batch.
func runOne(ctx context.Context, spec *model.BatchSpec, cat *catalog.Catalog,
	job *model.SynthesisJob, timeout time.Duration) model.RunResult {

	start := time.Now()
	res := model.RunResult{SetIndex: job.SetIndex, Parameters: job.Parameters}

	atmo, err := ResolveAtmosphere(ctx, job.Parameters, cat, spec.Paths.Interpolator, job.WorkDir, timeout)
	if err != nil {
		var timeoutErr *TimeoutError
		if errors.As(err, &timeoutErr) {
			res.Status = model.StatusTimeout
		} else {
			res.Status = model.StatusInterpolationFailed
		}
		res.Diagnostic = err.Error()
		res.Duration = time.Since(start)
		return res
	}
	job.AtmospherePath = atmo.Path
	job.Interpolated = atmo.Interpolated

	err = GenerateScripts(ScriptInputs{
		Wavelength:     spec.Wavelength,
		Xit:            spec.Synthesis.Xit,
		AtmospherePath: job.AtmospherePath,
		MarcsFormat:    !job.Interpolated,
		Metallicity:    job.Parameters.Z,
		Abundances:     AbundanceLines(job.Parameters),
		LinelistDir:    spec.Paths.Linelists,
		OpacPath:       job.OpacPath,
		ResultPath:     job.ResultPath,
		BabsmaPath:     job.BabsmaPath,
		BsynPath:       job.BsynPath,
	})
	if err != nil {
		res.Status = model.StatusScriptFailed
		res.Diagnostic = err.Error()
		res.Duration = time.Since(start)
		return res
	}

	compiled, err := config.CompiledPath(spec)
	if err != nil {
		res.Status = model.StatusExecutionFailed
		res.Diagnostic = err.Error()
		res.Duration = time.Since(start)
		return res
	}

	stages := []struct {
		name  string
		stdin string
	}{
		{"babsma_lu", job.BabsmaPath},
		{"bsyn_lu", job.BsynPath},
	}
	for _, stage := range stages {
		binary := filepath.Join(compiled, stage.name)
		outcome, err := RunExecutable(ctx, binary, stage.stdin, spec.Paths.Turbospectrum, timeout)
		if err != nil {
			res.Status = model.StatusExecutionFailed
			res.Diagnostic = err.Error()
			res.Duration = time.Since(start)
			return res
		}
		if outcome.TimedOut {
			res.Status = model.StatusTimeout
			res.Diagnostic = (&TimeoutError{Executable: binary, Timeout: timeout}).Error()
			res.Duration = time.Since(start)
			return res
		}
		if outcome.ExitCode != 0 {
			res.Status = model.StatusExecutionFailed
			res.Diagnostic = fmt.Sprintf("%s exited with code %d: %s", stage.name, outcome.ExitCode, outcome.Stderr)
			res.Duration = time.Since(start)
			return res
		}
	}

	res.Status = model.StatusSuccess
	res.OutputPath = job.ResultPath
	res.Duration = time.Since(start)
	return res
}

// RunBatch processes every parameter set through a bounded worker pool and
// returns the results in submission order. Individual failures are recorded
// in their result slot and never stop the other workers.
func RunBatch(ctx context.Context, batchID string, spec *model.BatchSpec, cat *catalog.Catalog,
	sets []model.StellarParameters, runDir string, om *utils.OutputManager) []model.RunResult {

	workers := spec.Batch.Workers
	if workers <= 0 {
		workers = 4
	}
	if workers > len(sets) {
		workers = len(sets)
	}
	timeout := config.RunTimeout(spec)

	fmt.Printf("🚀 Processing %d parameter sets with %d workers\n", len(sets), workers)

	type indexedJob struct {
		idx int
		job *model.SynthesisJob
	}
	jobs := make(chan indexedJob, len(sets))
	results := make([]model.RunResult, len(sets))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ij := range jobs {
				res := runOne(ctx, spec, cat, ij.job, timeout)
				results[ij.idx] = res
				if err := store.SaveRunResult(batchID, res); err != nil {
					fmt.Printf("⚠️ Failed to persist result for set %d: %v\n", ij.idx, err)
				}
				if res.Status == model.StatusSuccess {
					fmt.Printf("✅ Set %d done (%s)\n", ij.idx, res.Duration.Round(time.Millisecond))
				} else {
					fmt.Printf("❌ Set %d failed (%s): %s\n", ij.idx, res.Status, res.Diagnostic)
				}
			}
		}()
	}

	for i, p := range sets {
		jobID := uuid.New().String()
		workDir := om.JobDir(runDir, jobID)
		if err := os.MkdirAll(workDir, 0o755); err != nil {
			results[i] = model.RunResult{
				SetIndex:   i,
				Parameters: p,
				Status:     model.StatusExecutionFailed,
				Diagnostic: fmt.Sprintf("create job directory: %v", err),
			}
			continue
		}
		jobs <- indexedJob{idx: i, job: &model.SynthesisJob{
			BatchID:    batchID,
			SetIndex:   i,
			Parameters: p,
			WorkDir:    workDir,
			BabsmaPath: filepath.Join(workDir, "babsma.par"),
			BsynPath:   filepath.Join(workDir, "bsyn.par"),
			OpacPath:   filepath.Join(workDir, "opac"),
			ResultPath: filepath.Join(runDir, utils.SpectrumFileName(p)),
		}}
	}
	close(jobs)
	wg.Wait()

	return results
}

// ExecuteBatch runs the full lifecycle of one batch: run directory, model
// catalog, parameter generation, Fortran compilation, synthesis, report.
// It drives the persisted batch status so API clients can follow progress.
func ExecuteBatch(ctx context.Context, batchID string, spec *model.BatchSpec, configPath string) (err error) {
	defer func() {
		if err != nil {
			store.UpdateBatchStatus(batchID, model.BatchFailed)
			store.SaveBatchLog(batchID, "batch", "error", err.Error())
		}
	}()

	om := utils.NewOutputManager(spec.Paths.OutputDirectory)
	runDir, err := om.CreateRunDir()
	if err != nil {
		return err
	}
	fmt.Printf("📁 Run directory: %s\n", runDir)
	if configPath != "" {
		if err := om.CopyConfigFile(configPath, runDir); err != nil {
			fmt.Printf("⚠️ Could not snapshot config: %v\n", err)
		}
	}

	cat, err := catalog.Build(spec.Paths.ModelAtmospheres)
	if err != nil {
		return err
	}
	fmt.Printf("🗂️ Indexed %d model atmospheres (%d skipped)\n", cat.Len(), len(cat.Skipped()))
	store.SaveBatchLog(batchID, "catalog", "info",
		fmt.Sprintf("indexed %d model atmospheres, skipped %d", cat.Len(), len(cat.Skipped())))

	sets, err := params.Generate(spec, runDir)
	if err != nil {
		return err
	}
	store.SaveBatchLog(batchID, "params", "info", fmt.Sprintf("prepared %d parameter sets", len(sets)))

	store.UpdateBatchStatus(batchID, model.BatchCompiling)
	if err := CompileTurbospectrum(ctx, spec); err != nil {
		return err
	}
	if err := CompileInterpolator(ctx, spec); err != nil {
		return err
	}

	store.UpdateBatchStatus(batchID, model.BatchRunning)
	results := RunBatch(ctx, batchID, spec, cat, sets, runDir, om)

	if err := utils.WriteReport(runDir, results); err != nil {
		return fmt.Errorf("write run report: %w", err)
	}

	succeeded := 0
	for _, res := range results {
		if res.Status == model.StatusSuccess {
			succeeded++
		}
	}
	fmt.Printf("🏁 Batch finished: %d/%d spectra generated\n", succeeded, len(results))
	store.SaveBatchLog(batchID, "batch", "info",
		fmt.Sprintf("finished: %d/%d spectra generated", succeeded, len(results)))

	if !spec.Batch.KeepTemp {
		if err := om.RemoveTemp(runDir); err != nil {
			fmt.Printf("⚠️ Could not remove temp directory: %v\n", err)
		}
	}

	return store.UpdateBatchStatus(batchID, model.BatchCompleted)
}
