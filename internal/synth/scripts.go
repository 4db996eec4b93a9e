package synth

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go-spectra-pipeline/internal/model"
)

// Control-file layouts for the two Turbospectrum stages. babsma computes
// continuum opacities, bsyn consumes the resulting MODELOPAC file and
// synthesizes the flux spectrum.
const babsmaFormat = `PURE-LTE: .true.
LAMBDA_MIN: %.0f
LAMBDA_MAX: %.0f
LAMBDA_STEP: %.2f
MODELINPUT: '%s'
MARCS-FILE: %s
MODELOPAC: '%s'
METALLICITY: %.2f
'ALPHA/Fe:' %.2f
'INDIVIDUAL ABUNDANCES:' %d
'%s'
XIFIX: T
%.1f
`

const bsynFormat = `PURE-LTE: .true.
SEGMENTSFILE: ''
LAMBDA_MIN: %.0f
LAMBDA_MAX: %.0f
LAMBDA_STEP: %.2f
'INTENSITY/FLUX:' 'Flux'
ABFIND: .false.
MODELOPAC: '%s'
RESULTFILE: '%s'
METALLICITY: %.2f
'ALPHA/Fe:' %.2f
'INDIVIDUAL ABUNDANCES:' %d
'%s'
'%s'
SPHERICAL: .false.
`

// Abundance is one individual-abundance entry (atomic number + value).
type Abundance struct {
	Element int
	Value   float64
}

// ScriptInputs is everything control-file generation depends on. Generation
// is a pure function of these fields: identical inputs produce byte-identical
// scripts, which the reproducibility contract relies on.
type ScriptInputs struct {
	Wavelength     model.WavelengthRange
	Xit            float64
	AtmospherePath string
	MarcsFormat    bool // true when the atmosphere is an uninterpolated grid file
	Metallicity    float64
	Abundances     []Abundance
	LinelistDir    string
	OpacPath       string
	ResultPath     string
	BabsmaPath     string
	BsynPath       string
}

// AlphaEnhancement computes the alpha-element enhancement implied by the
// metallicity, following the MARCS grid convention.
func AlphaEnhancement(z float64) float64 {
	switch {
	case z < -1.0:
		return 0.4
	case z < 0.0:
		return -0.4 * z
	default:
		return 0.0
	}
}

// AbundanceLines maps the abundance parameters to their atomic numbers.
// These go into babsma/bsyn as individual abundances; they are never part
// of the atmosphere-grid interpolation.
func AbundanceLines(p model.StellarParameters) []Abundance {
	return []Abundance{
		{Element: 12, Value: p.Mg},
		{Element: 20, Value: p.Ca},
	}
}

func formatAbundances(abundances []Abundance) (int, string) {
	var b strings.Builder
	for _, a := range abundances {
		fmt.Fprintf(&b, "%d  %.2f\n", a.Element, a.Value)
	}
	return len(abundances), b.String()
}

// linelistBlock renders the NFILES keyword plus one line-list path per line.
// os.ReadDir returns entries sorted by name, keeping the block deterministic.
func linelistBlock(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("list line lists in %s: %w", dir, err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "'NFILES   :' '%d'\n", len(paths))
	for _, p := range paths {
		b.WriteString(p)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func marcsFlag(marcsFormat bool) string {
	if marcsFormat {
		return ".true."
	}
	return ".false."
}

// GenerateScripts writes the babsma and bsyn control files for one job.
// The wavelength window is validated again here even though configuration
// validation already checked it: this function must never emit a malformed
// control file.
func GenerateScripts(in ScriptInputs) error {
	w := in.Wavelength
	if w.Min >= w.Max || w.Step <= 0 {
		return &model.InvalidRangeError{Min: w.Min, Max: w.Max, Step: w.Step}
	}

	alpha := AlphaEnhancement(in.Metallicity)
	numElements, abundanceStr := formatAbundances(in.Abundances)

	babsma := fmt.Sprintf(babsmaFormat,
		w.Min, w.Max, w.Step,
		in.AtmospherePath, marcsFlag(in.MarcsFormat), in.OpacPath,
		in.Metallicity, alpha,
		numElements, abundanceStr,
		in.Xit,
	)
	if err := os.WriteFile(in.BabsmaPath, []byte(babsma), 0o644); err != nil {
		return fmt.Errorf("write babsma control file: %w", err)
	}

	lineLists, err := linelistBlock(in.LinelistDir)
	if err != nil {
		return err
	}
	bsyn := fmt.Sprintf(bsynFormat,
		w.Min, w.Max, w.Step,
		in.OpacPath, in.ResultPath,
		in.Metallicity, alpha,
		numElements, abundanceStr,
		lineLists,
	)
	if err := os.WriteFile(in.BsynPath, []byte(bsyn), 0o644); err != nil {
		return fmt.Errorf("write bsyn control file: %w", err)
	}
	return nil
}
