package catalog

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"go-spectra-pipeline/internal/model"
)

// MARCS model atmosphere filename grammar, e.g.
// p5000_g+4.0_m0.0_t01_st_z-1.00_a+0.00_c+0.00_n+0.00_o+0.00_r+0.00_s+0.00.mod
// The leading letter is the geometry (p = plane-parallel, s = spherical).
var fileNamePattern = regexp.MustCompile(
	`^[ps](\d+)_g([+-]\d+\.\d+)_m(\d+\.\d+)_t(\d+)_st_z([+-]\d+\.\d+)_.*\.mod$`)

// BuildError means the atmosphere directory yielded no usable catalog and
// the whole run cannot proceed.
type BuildError struct {
	Dir    string
	Reason string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("cannot build atmosphere catalog from %s: %s", e.Dir, e.Reason)
}

// Catalog is the immutable index over a directory of model atmospheres.
// It is built once before any concurrent work starts and is safe to share
// read-only across workers.
type Catalog struct {
	dir     string
	records []model.AtmosphereRecord
	skipped []string
}

// Build scans the atmosphere directory and indexes every parseable file.
// Unparseable files are skipped and recorded as warnings; a directory with
// zero parseable atmospheres is a fatal BuildError.
func Build(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &BuildError{Dir: dir, Reason: err.Error()}
	}

	cat := &Catalog{dir: dir}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		rec, ok := parseFileName(entry.Name())
		if !ok {
			cat.skipped = append(cat.skipped, entry.Name())
			continue
		}
		rec.Path = filepath.Join(dir, entry.Name())
		cat.records = append(cat.records, rec)
	}

	if len(cat.records) == 0 {
		return nil, &BuildError{Dir: dir, Reason: "no parseable model atmosphere files found"}
	}

	for _, name := range cat.skipped {
		fmt.Printf("⚠️  Catalog: skipping unparseable atmosphere file %s\n", name)
	}
	fmt.Printf("🗂️  Catalog: indexed %d model atmospheres from %s (%d skipped)\n",
		len(cat.records), dir, len(cat.skipped))
	return cat, nil
}

// parseFileName extracts the grid parameters encoded in a MARCS filename.
// Files whose parsed values are non-finite or physically impossible are
// rejected rather than silently indexed.
func parseFileName(name string) (model.AtmosphereRecord, bool) {
	m := fileNamePattern.FindStringSubmatch(name)
	if m == nil {
		return model.AtmosphereRecord{}, false
	}

	teff, err1 := strconv.ParseFloat(m[1], 64)
	logg, err2 := strconv.ParseFloat(m[2], 64)
	z, err3 := strconv.ParseFloat(m[5], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return model.AtmosphereRecord{}, false
	}
	if teff <= 0 || math.IsNaN(teff) || math.IsNaN(logg) || math.IsNaN(z) {
		return model.AtmosphereRecord{}, false
	}

	return model.AtmosphereRecord{
		FileName:   name,
		Teff:       teff,
		Logg:       logg,
		Z:          z,
		TeffStr:    m[1],
		LoggStr:    m[2],
		ZStr:       m[5],
		Turbulence: m[4],
	}, true
}

// Len returns the number of indexed atmospheres.
func (c *Catalog) Len() int { return len(c.records) }

// Dir returns the indexed directory.
func (c *Catalog) Dir() string { return c.dir }

// Skipped returns the filenames that were rejected during indexing.
func (c *Catalog) Skipped() []string { return append([]string(nil), c.skipped...) }

// Records returns a copy of all indexed records.
func (c *Catalog) Records() []model.AtmosphereRecord {
	return append([]model.AtmosphereRecord(nil), c.records...)
}

// Values returns the sorted distinct grid values along one axis.
func (c *Catalog) Values(axis string) []float64 {
	seen := make(map[float64]bool)
	var values []float64
	for _, rec := range c.records {
		v := rec.AxisValue(axis)
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	sort.Float64s(values)
	return values
}

// Select returns the records whose value on the given axis lies in the
// closed interval [lo, hi], ordered by that axis value. Interpolation needs
// bounding points on several axes at once; chaining Select over the corner
// candidates narrows the grid one axis at a time.
func (c *Catalog) Select(axis string, lo, hi float64) []model.AtmosphereRecord {
	var out []model.AtmosphereRecord
	for _, rec := range c.records {
		v := rec.AxisValue(axis)
		if v >= lo && v <= hi {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AxisValue(axis) < out[j].AxisValue(axis)
	})
	return out
}

// ExactMatches returns every record lying exactly on the given grid point.
func (c *Catalog) ExactMatches(teff, logg, z float64) []model.AtmosphereRecord {
	var out []model.AtmosphereRecord
	for _, rec := range c.records {
		if rec.Teff == teff && rec.Logg == logg && rec.Z == z {
			out = append(out, rec)
		}
	}
	return out
}
