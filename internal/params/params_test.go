package params

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-spectra-pipeline/internal/model"
)

func testRanges() model.ParameterRanges {
	return model.ParameterRanges{
		Teff: model.ParameterRange{Min: 5000, Max: 6000},
		Logg: model.ParameterRange{Min: 4.0, Max: 5.0},
		Z:    model.ParameterRange{Min: -1.0, Max: 0.0},
		Mg:   model.ParameterRange{Min: 7.0, Max: 7.8},
		Ca:   model.ParameterRange{Min: 6.0, Max: 6.6},
	}
}

func TestReadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.txt")
	content := "teff logg z mg ca\n5777 4.44 0.0 7.6 6.34\n5000 4.0 -1.0 7.2 6.1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	sets, err := ReadFromFile(path)
	if err != nil {
		t.Fatalf("ReadFromFile: %v", err)
	}
	if len(sets) != 2 {
		t.Fatalf("got %d sets, want 2", len(sets))
	}
	if sets[0].Teff != 5777 || sets[0].Logg != 4.44 || sets[0].Mg != 7.6 {
		t.Errorf("first set = %+v", sets[0])
	}
}

func TestReadFromFileColumnOrderIndependent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.txt")
	content := "ca mg z logg teff\n6.1 7.2 -1.0 4.0 5000\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	sets, err := ReadFromFile(path)
	if err != nil {
		t.Fatalf("ReadFromFile: %v", err)
	}
	if sets[0].Teff != 5000 || sets[0].Ca != 6.1 {
		t.Errorf("columns not mapped by header: %+v", sets[0])
	}
}

func TestReadFromFileMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.txt")
	if err := os.WriteFile(path, []byte("teff logg z\n5000 4.0 -1.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadFromFile(path)
	if err == nil {
		t.Fatal("file without mg and ca columns was accepted")
	}
	if !strings.Contains(err.Error(), "mg") || !strings.Contains(err.Error(), "ca") {
		t.Errorf("error %q does not name the missing columns", err)
	}
}

func TestReadFromFileRaggedRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.txt")
	if err := os.WriteFile(path, []byte("teff logg z mg ca\n5000 4.0 -1.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFromFile(path); err == nil {
		t.Fatal("row with missing values was accepted")
	}
}

func TestGenerateRandomDeterministicWithSeed(t *testing.T) {
	gen := model.Generation{Random: true, NumSpectra: 20, Seed: 42, Ranges: testRanges()}

	first := GenerateRandom(gen)
	second := GenerateRandom(gen)
	if len(first) != 20 {
		t.Fatalf("got %d sets, want 20", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatal("same seed produced different parameter sets")
		}
	}
}

func TestGenerateRandomWithinRanges(t *testing.T) {
	gen := model.Generation{Random: true, NumSpectra: 50, Seed: 7, Ranges: testRanges()}
	r := gen.Ranges

	for _, s := range GenerateRandom(gen) {
		if s.Teff < r.Teff.Min || s.Teff > r.Teff.Max {
			t.Errorf("teff %g outside [%g, %g]", s.Teff, r.Teff.Min, r.Teff.Max)
		}
		if s.Teff != math.Trunc(s.Teff) {
			t.Errorf("teff %g is not integral", s.Teff)
		}
		if s.Logg < r.Logg.Min || s.Logg > r.Logg.Max {
			t.Errorf("logg %g outside [%g, %g]", s.Logg, r.Logg.Min, r.Logg.Max)
		}
		if s.Z < r.Z.Min || s.Z > r.Z.Max {
			t.Errorf("z %g outside [%g, %g]", s.Z, r.Z.Min, r.Z.Max)
		}
	}
}

func TestGenerateRandomRejectsCollisions(t *testing.T) {
	gen := model.Generation{Random: true, NumSpectra: 30, Seed: 3, Ranges: testRanges()}

	sets := GenerateRandom(gen)
	for i := range sets {
		for j := i + 1; j < len(sets); j++ {
			if collides(sets[i], []model.StellarParameters{sets[j]}) {
				t.Errorf("sets %d and %d collide: %+v vs %+v", i, j, sets[i], sets[j])
			}
		}
	}
}

func TestGenerateEvenlySpaced(t *testing.T) {
	gen := model.Generation{
		Ranges: testRanges(),
		Even: model.EvenSettings{
			NumPointsTeff: 3, NumPointsLogg: 2, NumPointsZ: 2,
			NumPointsMg: 1, NumPointsCa: 1,
		},
	}

	sets := GenerateEvenlySpaced(gen)
	if len(sets) != 3*2*2 {
		t.Fatalf("got %d sets, want 12", len(sets))
	}
	if sets[0].Teff != 5000 || sets[len(sets)-1].Teff != 6000 {
		t.Errorf("teff endpoints %g..%g, want 5000..6000", sets[0].Teff, sets[len(sets)-1].Teff)
	}
	// Single-point axes collapse to the range minimum.
	for _, s := range sets {
		if s.Mg != 7.0 {
			t.Errorf("mg = %g, want 7 on a single-point axis", s.Mg)
		}
	}
}

func TestWriteAndReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generated_parameters.txt")
	want := []model.StellarParameters{
		{Teff: 5500, Logg: 4.5, Z: -0.5, Mg: 7.2, Ca: 6.1},
		{Teff: 6000, Logg: 5.0, Z: 0.0, Mg: 7.8, Ca: 6.6},
	}

	if err := WriteParameterFile(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := ReadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d sets, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("set %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestGenerateWritesParameterFile(t *testing.T) {
	runDir := t.TempDir()
	spec := &model.BatchSpec{
		Generation: model.Generation{Random: true, NumSpectra: 5, Seed: 1, Ranges: testRanges()},
	}

	sets, err := Generate(spec, runDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(sets) != 5 {
		t.Fatalf("got %d sets, want 5", len(sets))
	}
	if _, err := os.Stat(filepath.Join(runDir, "generated_parameters.txt")); err != nil {
		t.Errorf("generated_parameters.txt not written: %v", err)
	}
}
