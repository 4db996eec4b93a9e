package synth

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"go-spectra-pipeline/internal/catalog"
	"go-spectra-pipeline/internal/model"
)

// OutOfGridRangeError means the target parameters lie outside the coverage
// of the atmosphere grid on one axis. Silent clamping or extrapolation would
// produce unphysical atmospheres, so this is always reported.
type OutOfGridRangeError struct {
	Axis   string
	Target float64
	Bound  float64 // nearest grid value on the failing side
	Side   string  // "below" or "above"
}

func (e *OutOfGridRangeError) Error() string {
	return fmt.Sprintf("target %s=%g is outside the atmosphere grid: no grid value %s it (nearest available bound: %g)",
		e.Axis, e.Target, e.Side, e.Bound)
}

// InterpolationExecutionError carries the interpolator's captured stderr
// after a failed run.
type InterpolationExecutionError struct {
	ExitCode int
	Stderr   string
}

func (e *InterpolationExecutionError) Error() string {
	return fmt.Sprintf("interpolator exited with code %d: %s", e.ExitCode, e.Stderr)
}

// AxisWeight holds the interpolation weights of the lower and upper bound
// on one grid axis. Lower and Upper always sum to 1; a target lying exactly
// on a grid value degenerates to Lower=1, Upper=0 with equal bounds.
type AxisWeight struct {
	Axis  string  `json:"axis"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// InterpolationRequest is the resolved input to one interpolator run: the
// target parameters, the eight bracketing grid corners in the order the
// interpolator expects, and the per-axis weights.
type InterpolationRequest struct {
	Target  model.StellarParameters  `json:"target"`
	Corners []model.AtmosphereRecord `json:"corners"`
	Weights []AxisWeight             `json:"weights"`
}

// InterpolatedAtmosphere is the atmosphere selected or produced for one
// parameter set. Request is nil when the target hit a grid point exactly
// and no interpolation was needed.
type InterpolatedAtmosphere struct {
	Path         string
	Interpolated bool
	Request      *InterpolationRequest
}

// Input block read by interpol_modeles on stdin: the eight bracketing model
// paths, the two output paths, the target parameters, the comparison-plot
// and binary-format flags, and the (unused) comparison model.
const interpolatorInputTemplate = `{{range .Corners}}'{{.Path}}'
{{end}}'{{.OutputPath}}'
'{{.AltPath}}'
{{.Teff}}
{{.Logg}}
{{.Z}}
.false.
.false.
''
`

var interpolatorInput = template.Must(template.New("interpol").Parse(interpolatorInputTemplate))

// BracketingModels finds the eight grid corners enclosing the target on the
// teff, logg and z axes, narrowing the catalog one axis at a time: lower and
// upper teff neighbors first, then logg within each teff slice, then z
// within each (teff, logg) slice. Corner order matches the interpolator's
// expected model1..model8 sequence.
func BracketingModels(target model.StellarParameters, cat *catalog.Catalog) (*InterpolationRequest, error) {
	all := cat.Records()

	teffLow, err := closestBelow(all, model.AxisTeff, target.Teff)
	if err != nil {
		return nil, err
	}
	teffUp, err := closestAbove(all, model.AxisTeff, target.Teff)
	if err != nil {
		return nil, err
	}

	corners := make([]model.AtmosphereRecord, 0, 8)
	for _, teffSlice := range [][]model.AtmosphereRecord{teffLow, teffUp} {
		loggLow, err := closestBelow(teffSlice, model.AxisLogg, target.Logg)
		if err != nil {
			return nil, err
		}
		loggUp, err := closestAbove(teffSlice, model.AxisLogg, target.Logg)
		if err != nil {
			return nil, err
		}
		for _, loggSlice := range [][]model.AtmosphereRecord{loggLow, loggUp} {
			zLow, err := closestBelow(loggSlice, model.AxisZ, target.Z)
			if err != nil {
				return nil, err
			}
			zUp, err := closestAbove(loggSlice, model.AxisZ, target.Z)
			if err != nil {
				return nil, err
			}
			corners = append(corners, zLow[0], zUp[0])
		}
	}

	req := &InterpolationRequest{Target: target, Corners: corners}
	for _, axis := range model.GridAxes {
		req.Weights = append(req.Weights, axisWeight(axis,
			target.TargetAxisValue(axis),
			corners[0].AxisValue(axis),
			corners[7].AxisValue(axis)))
	}
	return req, nil
}

// closestBelow returns the records sharing the largest axis value <= v.
func closestBelow(recs []model.AtmosphereRecord, axis string, v float64) ([]model.AtmosphereRecord, error) {
	var best []model.AtmosphereRecord
	bestVal := 0.0
	minVal := 0.0
	for i, rec := range recs {
		val := rec.AxisValue(axis)
		if i == 0 || val < minVal {
			minVal = val
		}
		if val > v {
			continue
		}
		if best == nil || val > bestVal {
			best = []model.AtmosphereRecord{rec}
			bestVal = val
		} else if val == bestVal {
			best = append(best, rec)
		}
	}
	if best == nil {
		return nil, &OutOfGridRangeError{Axis: axis, Target: v, Bound: minVal, Side: "below"}
	}
	return best, nil
}

// closestAbove returns the records sharing the smallest axis value >= v.
func closestAbove(recs []model.AtmosphereRecord, axis string, v float64) ([]model.AtmosphereRecord, error) {
	var best []model.AtmosphereRecord
	bestVal := 0.0
	maxVal := 0.0
	for i, rec := range recs {
		val := rec.AxisValue(axis)
		if i == 0 || val > maxVal {
			maxVal = val
		}
		if val < v {
			continue
		}
		if best == nil || val < bestVal {
			best = []model.AtmosphereRecord{rec}
			bestVal = val
		} else if val == bestVal {
			best = append(best, rec)
		}
	}
	if best == nil {
		return nil, &OutOfGridRangeError{Axis: axis, Target: v, Bound: maxVal, Side: "above"}
	}
	return best, nil
}

func axisWeight(axis string, target, lower, upper float64) AxisWeight {
	if upper == lower {
		return AxisWeight{Axis: axis, Lower: 1, Upper: 0}
	}
	lw := (upper - target) / (upper - lower)
	return AxisWeight{Axis: axis, Lower: lw, Upper: 1 - lw}
}

// ResolveAtmosphere turns a target parameter set into a usable model
// atmosphere file. Targets lying exactly on a grid point use the grid file
// directly; everything else goes through the external interpolator. The
// interpolated file is written into workDir and is owned by the caller.
func ResolveAtmosphere(ctx context.Context, target model.StellarParameters, cat *catalog.Catalog,
	interpolatorDir, workDir string, timeout time.Duration) (*InterpolatedAtmosphere, error) {

	exact := cat.ExactMatches(target.Teff, target.Logg, target.Z)
	switch {
	case len(exact) == 1:
		return &InterpolatedAtmosphere{Path: exact[0].Path}, nil
	case len(exact) > 1:
		return nil, fmt.Errorf("ambiguous grid: %d atmospheres match teff=%g logg=%g z=%g exactly",
			len(exact), target.Teff, target.Logg, target.Z)
	}

	req, err := BracketingModels(target, cat)
	if err != nil {
		return nil, err
	}

	outputPath := filepath.Join(workDir, fmt.Sprintf("p%g_g%g_z%g.interpol", target.Teff, target.Logg, target.Z))
	inputPath := filepath.Join(workDir, "interpolate.input")
	if err := writeInterpolatorInput(inputPath, req, outputPath); err != nil {
		return nil, err
	}

	binary := filepath.Join(interpolatorDir, "interpol_modeles")
	outcome, err := RunExecutable(ctx, binary, inputPath, workDir, timeout)
	if err != nil {
		return nil, err
	}
	if outcome.TimedOut {
		return nil, &TimeoutError{Executable: binary, Timeout: timeout}
	}
	if outcome.ExitCode != 0 {
		return nil, &InterpolationExecutionError{ExitCode: outcome.ExitCode, Stderr: outcome.Stderr}
	}
	if _, err := os.Stat(outputPath); err != nil {
		return nil, &InterpolationExecutionError{Stderr: "interpolator exited 0 but wrote no output file"}
	}
	return &InterpolatedAtmosphere{Path: outputPath, Interpolated: true, Request: req}, nil
}

func writeInterpolatorInput(path string, req *InterpolationRequest, outputPath string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write interpolator input: %w", err)
	}
	defer f.Close()

	data := struct {
		Corners             []model.AtmosphereRecord
		OutputPath, AltPath string
		Teff, Logg, Z       float64
	}{
		Corners:    req.Corners,
		OutputPath: outputPath,
		AltPath:    outputPath + ".alt",
		Teff:       req.Target.Teff,
		Logg:       req.Target.Logg,
		Z:          req.Target.Z,
	}
	if err := interpolatorInput.Execute(f, data); err != nil {
		return fmt.Errorf("render interpolator input: %w", err)
	}
	return nil
}
