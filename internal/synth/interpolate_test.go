package synth

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-spectra-pipeline/internal/catalog"
	"go-spectra-pipeline/internal/model"
)

var gridFiles = []string{
	"p5000_g+4.0_m0.0_t01_st_z-1.00_a+0.40_c+0.00_n+0.00_o+0.40_r+0.00_s+0.00.mod",
	"p5000_g+4.0_m0.0_t01_st_z+0.00_a+0.00_c+0.00_n+0.00_o+0.00_r+0.00_s+0.00.mod",
	"p5000_g+5.0_m0.0_t01_st_z-1.00_a+0.40_c+0.00_n+0.00_o+0.40_r+0.00_s+0.00.mod",
	"p5000_g+5.0_m0.0_t01_st_z+0.00_a+0.00_c+0.00_n+0.00_o+0.00_r+0.00_s+0.00.mod",
	"p6000_g+4.0_m0.0_t01_st_z-1.00_a+0.40_c+0.00_n+0.00_o+0.40_r+0.00_s+0.00.mod",
	"p6000_g+4.0_m0.0_t01_st_z+0.00_a+0.00_c+0.00_n+0.00_o+0.00_r+0.00_s+0.00.mod",
	"p6000_g+5.0_m0.0_t01_st_z-1.00_a+0.40_c+0.00_n+0.00_o+0.40_r+0.00_s+0.00.mod",
	"p6000_g+5.0_m0.0_t01_st_z+0.00_a+0.00_c+0.00_n+0.00_o+0.00_r+0.00_s+0.00.mod",
}

func buildTestCatalog(t *testing.T, extra ...string) *catalog.Catalog {
	t.Helper()
	dir := t.TempDir()
	for _, name := range append(append([]string{}, gridFiles...), extra...) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("atmosphere\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	cat, err := catalog.Build(dir)
	if err != nil {
		t.Fatal(err)
	}
	return cat
}

// writeFakeInterpolator installs a stand-in interpol_modeles that reads the
// input block on stdin and creates the output file named on its ninth line.
func writeFakeInterpolator(t *testing.T, script string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "interpol_modeles"), []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return dir
}

const workingInterpolator = `#!/bin/sh
out=$(sed -n '9p' | tr -d "'")
echo "interpolated atmosphere" > "$out"
`

func TestBracketingModelsMidpoint(t *testing.T) {
	cat := buildTestCatalog(t)
	target := model.StellarParameters{Teff: 5500, Logg: 4.5, Z: -0.5}

	req, err := BracketingModels(target, cat)
	if err != nil {
		t.Fatalf("BracketingModels: %v", err)
	}
	if len(req.Corners) != 8 {
		t.Fatalf("got %d corners, want 8", len(req.Corners))
	}

	first, last := req.Corners[0], req.Corners[7]
	if first.Teff != 5000 || first.Logg != 4.0 || first.Z != -1.0 {
		t.Errorf("corner 1 = (%g, %g, %g), want (5000, 4, -1)", first.Teff, first.Logg, first.Z)
	}
	if last.Teff != 6000 || last.Logg != 5.0 || last.Z != 0.0 {
		t.Errorf("corner 8 = (%g, %g, %g), want (6000, 5, 0)", last.Teff, last.Logg, last.Z)
	}

	if len(req.Weights) != 3 {
		t.Fatalf("got %d weights, want 3", len(req.Weights))
	}
	for _, w := range req.Weights {
		if w.Lower != 0.5 || w.Upper != 0.5 {
			t.Errorf("axis %s: weights (%g, %g), want (0.5, 0.5)", w.Axis, w.Lower, w.Upper)
		}
	}
}

func TestBracketingModelsOutOfRange(t *testing.T) {
	cat := buildTestCatalog(t)
	target := model.StellarParameters{Teff: 7000, Logg: 4.5, Z: -0.5}

	_, err := BracketingModels(target, cat)
	var rangeErr *OutOfGridRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("got %v, want *OutOfGridRangeError", err)
	}
	if rangeErr.Axis != model.AxisTeff {
		t.Errorf("failing axis = %s, want %s", rangeErr.Axis, model.AxisTeff)
	}
	if rangeErr.Side != "above" || rangeErr.Bound != 6000 {
		t.Errorf("side=%s bound=%g, want above 6000", rangeErr.Side, rangeErr.Bound)
	}
}

func TestBracketingModelsDegenerateAxis(t *testing.T) {
	cat := buildTestCatalog(t)
	// teff lies exactly on a grid value, the other axes do not.
	target := model.StellarParameters{Teff: 5000, Logg: 4.5, Z: -0.5}

	req, err := BracketingModels(target, cat)
	if err != nil {
		t.Fatalf("BracketingModels: %v", err)
	}
	for _, corner := range req.Corners {
		if corner.Teff != 5000 {
			t.Errorf("corner with teff=%g on a degenerate teff axis", corner.Teff)
		}
	}
	w := req.Weights[0]
	if w.Axis != model.AxisTeff || w.Lower != 1 || w.Upper != 0 {
		t.Errorf("degenerate teff weights = (%g, %g), want (1, 0)", w.Lower, w.Upper)
	}
}

func TestResolveAtmosphereExactMatch(t *testing.T) {
	cat := buildTestCatalog(t)
	target := model.StellarParameters{Teff: 5000, Logg: 4.0, Z: -1.0}

	atmo, err := ResolveAtmosphere(context.Background(), target, cat, "", t.TempDir(), time.Minute)
	if err != nil {
		t.Fatalf("ResolveAtmosphere: %v", err)
	}
	if atmo.Interpolated {
		t.Error("exact grid hit should not be interpolated")
	}
	if atmo.Request != nil {
		t.Error("exact grid hit should carry no interpolation request")
	}
	if filepath.Base(atmo.Path) != gridFiles[0] {
		t.Errorf("resolved path %s, want grid file %s", atmo.Path, gridFiles[0])
	}
}

func TestResolveAtmosphereAmbiguousGrid(t *testing.T) {
	// A second file with the same teff, logg and z makes the exact hit ambiguous.
	cat := buildTestCatalog(t,
		"s5000_g+4.0_m0.0_t02_st_z-1.00_a+0.40_c+0.00_n+0.00_o+0.40_r+0.00_s+0.00.mod")
	target := model.StellarParameters{Teff: 5000, Logg: 4.0, Z: -1.0}

	_, err := ResolveAtmosphere(context.Background(), target, cat, "", t.TempDir(), time.Minute)
	if err == nil {
		t.Fatal("ResolveAtmosphere accepted an ambiguous grid point")
	}
}

func TestResolveAtmosphereInterpolates(t *testing.T) {
	cat := buildTestCatalog(t)
	interpDir := writeFakeInterpolator(t, workingInterpolator)
	workDir := t.TempDir()
	target := model.StellarParameters{Teff: 5500, Logg: 4.5, Z: -0.5}

	atmo, err := ResolveAtmosphere(context.Background(), target, cat, interpDir, workDir, time.Minute)
	if err != nil {
		t.Fatalf("ResolveAtmosphere: %v", err)
	}
	if !atmo.Interpolated {
		t.Error("off-grid target should be interpolated")
	}
	if atmo.Request == nil || len(atmo.Request.Corners) != 8 {
		t.Error("interpolated atmosphere should carry the full request")
	}
	if _, err := os.Stat(atmo.Path); err != nil {
		t.Errorf("interpolated file missing: %v", err)
	}
}

func TestResolveAtmosphereInterpolatorFailure(t *testing.T) {
	cat := buildTestCatalog(t)
	interpDir := writeFakeInterpolator(t, "#!/bin/sh\necho 'grid mismatch' >&2\nexit 3\n")
	target := model.StellarParameters{Teff: 5500, Logg: 4.5, Z: -0.5}

	_, err := ResolveAtmosphere(context.Background(), target, cat, interpDir, t.TempDir(), time.Minute)
	var execErr *InterpolationExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("got %v, want *InterpolationExecutionError", err)
	}
	if execErr.ExitCode != 3 {
		t.Errorf("exit code = %d, want 3", execErr.ExitCode)
	}
}

func TestResolveAtmosphereNoOutputFile(t *testing.T) {
	cat := buildTestCatalog(t)
	interpDir := writeFakeInterpolator(t, "#!/bin/sh\nexit 0\n")
	target := model.StellarParameters{Teff: 5500, Logg: 4.5, Z: -0.5}

	_, err := ResolveAtmosphere(context.Background(), target, cat, interpDir, t.TempDir(), time.Minute)
	var execErr *InterpolationExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("got %v, want *InterpolationExecutionError for missing output", err)
	}
}

func TestResolveAtmosphereTimeout(t *testing.T) {
	cat := buildTestCatalog(t)
	interpDir := writeFakeInterpolator(t, "#!/bin/sh\nsleep 5\n")
	target := model.StellarParameters{Teff: 5500, Logg: 4.5, Z: -0.5}

	_, err := ResolveAtmosphere(context.Background(), target, cat, interpDir, t.TempDir(), 100*time.Millisecond)
	var timeoutErr *TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("got %v, want *TimeoutError", err)
	}
}
