package model

// Grid axis names used by the atmosphere catalog and the interpolator.
// Abundance parameters (mg, ca) are not grid axes; the MARCS grid embeds
// its own composition assumptions and abundances go to bsyn directly.
const (
	AxisTeff = "teff"
	AxisLogg = "logg"
	AxisZ    = "z"
)

// GridAxes lists the interpolated axes in their canonical order.
var GridAxes = []string{AxisTeff, AxisLogg, AxisZ}

// AtmosphereRecord is one pre-computed model atmosphere from the MARCS grid,
// built once when the atmosphere directory is indexed and immutable after.
// The *Str fields preserve the exact spelling used in the filename so that
// generated interpolator inputs reference files byte-for-byte correctly.
type AtmosphereRecord struct {
	FileName string  `json:"fileName"`
	Path     string  `json:"path"`
	Teff     float64 `json:"teff"`
	Logg     float64 `json:"logg"`
	Z        float64 `json:"z"`
	TeffStr  string  `json:"teffStr"`
	LoggStr  string  `json:"loggStr"`
	ZStr     string  `json:"zStr"`

	// Turbulence is the t-token from the filename (e.g. "01"), kept for
	// reference only.
	Turbulence string `json:"turbulence"`
}

// AxisValue returns the record's value on the named grid axis.
func (r AtmosphereRecord) AxisValue(axis string) float64 {
	switch axis {
	case AxisTeff:
		return r.Teff
	case AxisLogg:
		return r.Logg
	case AxisZ:
		return r.Z
	}
	return 0
}

// TargetAxisValue returns the parameter-set value on the named grid axis.
func (p StellarParameters) TargetAxisValue(axis string) float64 {
	switch axis {
	case AxisTeff:
		return p.Teff
	case AxisLogg:
		return p.Logg
	case AxisZ:
		return p.Z
	}
	return 0
}
