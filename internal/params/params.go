// Package params produces the ordered list of stellar parameter sets a
// batch will synthesize: read from a whitespace-table file, sampled
// randomly, or laid out on an evenly spaced grid. The orchestrator is
// agnostic to which mode produced the list.
package params

import (
	"bufio"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go-spectra-pipeline/internal/model"
)

var requiredColumns = []string{"teff", "logg", "z", "mg", "ca"}

// Minimum distance between two generated sets on each axis. Two sets closer
// than this on every axis count as duplicates and the candidate is rejected.
var minParameterDelta = map[string]float64{
	"teff": 5,
	"logg": 0.05,
	"z":    0.001,
	"mg":   0.001,
	"ca":   0.001,
}

// Generate produces the batch's parameter sets according to the spec and
// writes them to generated_parameters.txt in the run directory for
// reproducibility.
func Generate(spec *model.BatchSpec, runDir string) ([]model.StellarParameters, error) {
	var sets []model.StellarParameters
	var err error

	switch {
	case spec.Generation.ReadFromFile:
		fmt.Printf("📄 Reading stellar parameters from %s\n", spec.Paths.InputParameters)
		sets, err = ReadFromFile(spec.Paths.InputParameters)
	case spec.Generation.Random:
		fmt.Printf("🎲 Generating %d random stellar parameter sets\n", spec.Generation.NumSpectra)
		sets = GenerateRandom(spec.Generation)
	default:
		fmt.Println("📐 Generating evenly spaced stellar parameter sets")
		sets = GenerateEvenlySpaced(spec.Generation)
	}
	if err != nil {
		return nil, err
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("parameter generation produced no sets")
	}

	if runDir != "" {
		if err := WriteParameterFile(filepath.Join(runDir, "generated_parameters.txt"), sets); err != nil {
			return nil, err
		}
	}
	return sets, nil
}

// ReadFromFile reads parameter sets from a whitespace-separated table whose
// header names the columns. All required columns must be present.
func ReadFromFile(path string) ([]model.StellarParameters, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parameter file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return nil, fmt.Errorf("parameter file %s is empty", path)
	}
	header := strings.Fields(scanner.Text())

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(name)] = i
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("parameter file %s is missing required columns: %s", path, strings.Join(missing, ", "))
	}

	var sets []model.StellarParameters
	line := 1
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != len(header) {
			return nil, fmt.Errorf("parameter file %s line %d: expected %d values, got %d", path, line, len(header), len(fields))
		}
		values := make([]float64, len(fields))
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("parameter file %s line %d: %w", path, line, err)
			}
			values[i] = v
		}
		sets = append(sets, model.StellarParameters{
			Teff: math.Trunc(values[columns["teff"]]),
			Logg: values[columns["logg"]],
			Z:    values[columns["z"]],
			Mg:   values[columns["mg"]],
			Ca:   values[columns["ca"]],
		})
	}
	return sets, scanner.Err()
}

// GenerateRandom samples parameter sets uniformly within the configured
// ranges, rejecting candidates that collide with an existing set on every
// axis (within the per-axis minimum delta).
func GenerateRandom(gen model.Generation) []model.StellarParameters {
	seed := gen.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := rand.New(rand.NewSource(seed))

	var sets []model.StellarParameters
	for len(sets) < gen.NumSpectra {
		candidate := model.StellarParameters{
			Teff: float64(randInt(r, gen.Ranges.Teff)),
			Logg: round(randFloat(r, gen.Ranges.Logg), 2),
			Z:    round(randFloat(r, gen.Ranges.Z), 3),
			Mg:   round(randFloat(r, gen.Ranges.Mg), 3),
			Ca:   round(randFloat(r, gen.Ranges.Ca), 3),
		}
		if !collides(candidate, sets) {
			sets = append(sets, candidate)
		}
	}
	return sets
}

// collides reports whether the candidate is within the minimum delta of an
// existing set on all five axes at once.
func collides(candidate model.StellarParameters, existing []model.StellarParameters) bool {
	for _, s := range existing {
		if math.Abs(candidate.Teff-s.Teff) < minParameterDelta["teff"] &&
			math.Abs(candidate.Logg-s.Logg) < minParameterDelta["logg"] &&
			math.Abs(candidate.Z-s.Z) < minParameterDelta["z"] &&
			math.Abs(candidate.Mg-s.Mg) < minParameterDelta["mg"] &&
			math.Abs(candidate.Ca-s.Ca) < minParameterDelta["ca"] {
			return true
		}
	}
	return false
}

// GenerateEvenlySpaced lays out the full cross product of evenly spaced
// points on every axis.
func GenerateEvenlySpaced(gen model.Generation) []model.StellarParameters {
	teffs := linspace(gen.Ranges.Teff, gen.Even.NumPointsTeff, 0)
	loggs := linspace(gen.Ranges.Logg, gen.Even.NumPointsLogg, 2)
	zs := linspace(gen.Ranges.Z, gen.Even.NumPointsZ, 3)
	mgs := linspace(gen.Ranges.Mg, gen.Even.NumPointsMg, 3)
	cas := linspace(gen.Ranges.Ca, gen.Even.NumPointsCa, 3)

	sets := make([]model.StellarParameters, 0, len(teffs)*len(loggs)*len(zs)*len(mgs)*len(cas))
	for _, teff := range teffs {
		for _, logg := range loggs {
			for _, z := range zs {
				for _, mg := range mgs {
					for _, ca := range cas {
						sets = append(sets, model.StellarParameters{Teff: teff, Logg: logg, Z: z, Mg: mg, Ca: ca})
					}
				}
			}
		}
	}
	return sets
}

// WriteParameterFile writes the sets as a whitespace table readable by
// ReadFromFile.
func WriteParameterFile(path string, sets []model.StellarParameters) error {
	var b strings.Builder
	b.WriteString("teff logg z mg ca\n")
	for _, s := range sets {
		fmt.Fprintf(&b, "%g %g %g %g %g\n", s.Teff, s.Logg, s.Z, s.Mg, s.Ca)
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func randInt(r *rand.Rand, pr model.ParameterRange) int {
	lo, hi := int(pr.Min), int(pr.Max)
	return lo + r.Intn(hi-lo+1)
}

func randFloat(r *rand.Rand, pr model.ParameterRange) float64 {
	return pr.Min + r.Float64()*(pr.Max-pr.Min)
}

func round(v float64, decimals int) float64 {
	scale := math.Pow10(decimals)
	return math.Round(v*scale) / scale
}

func linspace(pr model.ParameterRange, n, decimals int) []float64 {
	if n == 1 {
		return []float64{round(pr.Min, decimals)}
	}
	step := (pr.Max - pr.Min) / float64(n-1)
	values := make([]float64, n)
	for i := range values {
		values[i] = round(pr.Min+float64(i)*step, decimals)
	}
	return values
}
