package model

// StellarParameters is one point in stellar-parameter space for which a
// synthetic spectrum should be generated. Values are immutable once created.
type StellarParameters struct {
	Teff float64 `json:"teff" yaml:"teff"` // effective temperature [K]
	Logg float64 `json:"logg" yaml:"logg"` // surface gravity [log cgs]
	Z    float64 `json:"z" yaml:"z"`       // metallicity [Fe/H]
	Mg   float64 `json:"mg" yaml:"mg"`     // magnesium abundance
	Ca   float64 `json:"ca" yaml:"ca"`     // calcium abundance
}

// Paths groups every directory and file the batch depends on.
type Paths struct {
	Turbospectrum    string `json:"turbospectrum" yaml:"turbospectrum"`
	Interpolator     string `json:"interpolator" yaml:"interpolator"`
	Linelists        string `json:"linelists" yaml:"linelists"`
	ModelAtmospheres string `json:"modelAtmospheres" yaml:"model_atmospheres"`
	InputParameters  string `json:"inputParameters,omitempty" yaml:"input_parameters"`
	OutputDirectory  string `json:"outputDirectory" yaml:"output_directory"`
}

// WavelengthRange defines the synthesized wavelength window in Ångström.
type WavelengthRange struct {
	Min  float64 `json:"min" yaml:"min"`
	Max  float64 `json:"max" yaml:"max"`
	Step float64 `json:"step" yaml:"step"`
}

// ParameterRange is a closed interval for one stellar parameter.
type ParameterRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// ParameterRanges bounds the sampled space for generated parameter sets.
type ParameterRanges struct {
	Teff ParameterRange `json:"teff" yaml:"teff"`
	Logg ParameterRange `json:"logg" yaml:"logg"`
	Z    ParameterRange `json:"z" yaml:"z"`
	Mg   ParameterRange `json:"mg" yaml:"mg"`
	Ca   ParameterRange `json:"ca" yaml:"ca"`
}

// EvenSettings defines how many evenly spaced points each axis gets when
// grid generation is selected.
type EvenSettings struct {
	NumPointsTeff int `json:"numPointsTeff" yaml:"num_points_teff"`
	NumPointsLogg int `json:"numPointsLogg" yaml:"num_points_logg"`
	NumPointsZ    int `json:"numPointsZ" yaml:"num_points_z"`
	NumPointsMg   int `json:"numPointsMg" yaml:"num_points_mg"`
	NumPointsCa   int `json:"numPointsCa" yaml:"num_points_ca"`
}

// Generation selects where the batch's parameter sets come from: an input
// file, random sampling, or an evenly spaced grid.
type Generation struct {
	ReadFromFile bool            `json:"readFromFile" yaml:"read_from_file"`
	Random       bool            `json:"random" yaml:"random"`
	NumSpectra   int             `json:"numSpectra,omitempty" yaml:"num_spectra"`
	Seed         int64           `json:"seed,omitempty" yaml:"seed"`
	Ranges       ParameterRanges `json:"ranges" yaml:"ranges"`
	Even         EvenSettings    `json:"even,omitempty" yaml:"even"`
}

// Synthesis holds the Turbospectrum settings shared by every set in a batch.
type Synthesis struct {
	Xit float64 `json:"xit" yaml:"xit"` // microturbulence [km/s]
}

// Batch holds execution options for the orchestrator.
type Batch struct {
	Workers    int    `json:"workers" yaml:"workers"`
	RunTimeout string `json:"runTimeout" yaml:"run_timeout"` // per external process, e.g. "30m"
	KeepTemp   bool   `json:"keepTemp" yaml:"keep_temp"`
}

// BatchSpec is the full configuration of one batch run. The CLI loads it
// from a YAML file, the API accepts it as the POST /batches body.
type BatchSpec struct {
	Compiler   string          `json:"compiler" yaml:"compiler"`
	Paths      Paths           `json:"paths" yaml:"paths"`
	Wavelength WavelengthRange `json:"wavelength" yaml:"wavelength"`
	Generation Generation      `json:"generation" yaml:"generation"`
	Synthesis  Synthesis       `json:"synthesis" yaml:"synthesis"`
	Batch      Batch           `json:"batch" yaml:"batch"`
}
