package synth

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/input-output-hk/catalyst-forge-libs/executor"
)

// ProcessOutcome is the process-level result of one external invocation.
// The runner never inspects output files; correctness of what the process
// produced is the caller's concern.
type ProcessOutcome struct {
	ExitCode int           `json:"exitCode"`
	Stdout   string        `json:"-"`
	Stderr   string        `json:"stderr,omitempty"`
	Duration time.Duration `json:"duration"`
	TimedOut bool          `json:"timedOut"`
}

// TimeoutError reports an external process that exceeded its allotted time
// and was forcibly terminated.
type TimeoutError struct {
	Executable string
	Timeout    time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s did not finish within %s and was killed", e.Executable, e.Timeout)
}

// RunExecutable invokes an external binary that reads its control input on
// stdin (the Turbospectrum convention: babsma_lu, bsyn_lu and the
// interpolator are all driven this way). It blocks until the process exits
// or the timeout elapses; on timeout the process is killed and the outcome
// is marked TimedOut instead of being left ambiguous.
//
// A non-zero exit code is not an error here: it is surfaced verbatim in the
// outcome for the orchestrator to interpret. An error return means the
// process could not be run at all.
func RunExecutable(ctx context.Context, executable, stdinPath, workDir string, timeout time.Duration) (*ProcessOutcome, error) {
	var input string
	if stdinPath != "" {
		data, err := os.ReadFile(stdinPath)
		if err != nil {
			return nil, fmt.Errorf("read control input %s: %w", stdinPath, err)
		}
		input = string(data)
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := []executor.Option{executor.WithCapture(true, true, false)}
	if workDir != "" {
		opts = append(opts, executor.WithWorkingDir(workDir))
	}

	start := time.Now()
	result, err := executor.New(executable).ExecuteWithInput(runCtx, input, opts...)
	outcome := &ProcessOutcome{Duration: time.Since(start)}
	if result != nil {
		outcome.ExitCode = result.ExitCode
		outcome.Stdout = result.Stdout
		outcome.Stderr = result.Stderr
	}

	if runCtx.Err() == context.DeadlineExceeded {
		outcome.TimedOut = true
		return outcome, nil
	}
	if err != nil && (result == nil || result.ExitCode < 0) {
		// The process never ran (missing binary, permission, ...).
		return outcome, fmt.Errorf("run %s: %w", executable, err)
	}
	return outcome, nil
}
