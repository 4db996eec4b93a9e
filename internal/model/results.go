package model

import "time"

// RunStatus is the outcome classification of one parameter set.
type RunStatus string

const (
	StatusSuccess             RunStatus = "success"
	StatusInterpolationFailed RunStatus = "interpolation_failed"
	StatusScriptFailed        RunStatus = "script_failed"
	StatusExecutionFailed     RunStatus = "execution_failed"
	StatusTimeout             RunStatus = "timeout"
)

// RunResult records the outcome of one parameter set within a batch.
// SetIndex is the position in the submitted parameter list so that ordering
// can be reconstructed regardless of worker completion order.
type RunResult struct {
	SetIndex   int               `json:"setIndex"`
	Parameters StellarParameters `json:"parameters"`
	Status     RunStatus         `json:"status"`
	OutputPath string            `json:"outputPath,omitempty"`
	Diagnostic string            `json:"diagnostic,omitempty"`
	Duration   time.Duration     `json:"duration"`
}

// SynthesisJob carries everything the synthesis step needs for one
// parameter set. It lives only for the duration of that set's processing;
// its on-disk artifacts (scripts, logs, spectra) persist independently.
type SynthesisJob struct {
	BatchID        string            `json:"batchID"`
	SetIndex       int               `json:"setIndex"`
	Parameters     StellarParameters `json:"parameters"`
	AtmospherePath string            `json:"atmospherePath"`
	Interpolated   bool              `json:"interpolated"`
	WorkDir        string            `json:"workDir"`
	BabsmaPath     string            `json:"babsmaPath"`
	BsynPath       string            `json:"bsynPath"`
	OpacPath       string            `json:"opacPath"`
	ResultPath     string            `json:"resultPath"`
}

// Batch lifecycle states as stored and reported by the API.
const (
	BatchPending   = "pending"
	BatchCompiling = "compiling"
	BatchRunning   = "running"
	BatchCompleted = "completed"
	BatchFailed    = "failed"
)
