package model

import "fmt"

// InvalidRangeError reports a malformed wavelength window. It is fatal when
// raised during configuration validation, since every generated control file
// would be corrupted identically.
type InvalidRangeError struct {
	Min  float64
	Max  float64
	Step float64
}

func (e *InvalidRangeError) Error() string {
	if e.Step <= 0 {
		return fmt.Sprintf("invalid wavelength step %g: step must be > 0", e.Step)
	}
	return fmt.Sprintf("invalid wavelength range [%g, %g]: min must be smaller than max", e.Min, e.Max)
}
