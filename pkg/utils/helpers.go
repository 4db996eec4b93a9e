package utils

import (
	"fmt"
	"time"

	"go-spectra-pipeline/internal/model"
)

// ParseDuration safely parses a duration string like "30m", falling back to
// def when the string is empty or malformed.
func ParseDuration(d string, def time.Duration) time.Duration {
	if d == "" {
		return def
	}
	duration, err := time.ParseDuration(d)
	if err != nil {
		return def
	}
	return duration
}

// FormatSigned renders a stellar parameter with an explicit sign, the way
// MARCS filenames spell non-negative values ("+0.4", "-0.5").
func FormatSigned(v float64) string {
	if v < 0 {
		return fmt.Sprintf("%g", v)
	}
	return fmt.Sprintf("+%g", v)
}

// SpectrumFileName composes the output filename for one parameter set so
// that every parameter is recoverable from the name alone.
func SpectrumFileName(p model.StellarParameters) string {
	return fmt.Sprintf("p%g_g%s_z%s_mg%s_ca%s.spec",
		p.Teff, FormatSigned(p.Logg), FormatSigned(p.Z), FormatSigned(p.Mg), FormatSigned(p.Ca))
}
