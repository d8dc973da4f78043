package format

import "errors"

// Params holds the sampling settings sent to the LLM for one format.
type Params struct {
	Temperature     float64 `toml:"temperature" json:"temperature" yaml:"temperature"`
	TopP            float64 `toml:"top_p" json:"top_p" yaml:"top_p"`
	TopK            int     `toml:"top_k" json:"top_k" yaml:"top_k"`
	MaxOutputTokens int     `toml:"max_output_tokens" json:"max_output_tokens" yaml:"max_output_tokens"`
}

// Prose documents favour factual, low-temperature output with a larger budget.
var proseParams = Params{
	Temperature:     0.2,
	TopP:            0.95,
	TopK:            40,
	MaxOutputTokens: 4096,
}

var slideParams = Params{
	Temperature:     0.4,
	TopP:            0.95,
	TopK:            40,
	MaxOutputTokens: 2048,
}

// DefaultParams returns the built-in generation parameters for f.
func DefaultParams(f Format) Params {
	if f == PPT {
		return slideParams
	}
	return proseParams
}

// Overrides holds per-format sampling settings from configuration. Only the
// fields that are set replace the defaults, so an explicit zero is kept.
type Overrides struct {
	Temperature     *float64 `toml:"temperature,omitempty" json:"temperature,omitempty" yaml:"temperature,omitempty"`
	TopP            *float64 `toml:"top_p,omitempty" json:"top_p,omitempty" yaml:"top_p,omitempty"`
	TopK            *int     `toml:"top_k,omitempty" json:"top_k,omitempty" yaml:"top_k,omitempty"`
	MaxOutputTokens *int     `toml:"max_output_tokens,omitempty" json:"max_output_tokens,omitempty" yaml:"max_output_tokens,omitempty"`
}

// Apply returns base with every set override applied.
func (o Overrides) Apply(base Params) Params {
	if o.Temperature != nil {
		base.Temperature = *o.Temperature
	}
	if o.TopP != nil {
		base.TopP = *o.TopP
	}
	if o.TopK != nil {
		base.TopK = *o.TopK
	}
	if o.MaxOutputTokens != nil {
		base.MaxOutputTokens = *o.MaxOutputTokens
	}
	return base
}

// Validate checks the parameter ranges accepted by the supported backends.
func (p Params) Validate() error {
	if p.Temperature < 0 || p.Temperature > 2 {
		return errors.New("temperature must be between 0 and 2")
	}
	if p.TopP < 0 || p.TopP > 1 {
		return errors.New("top_p must be between 0 and 1")
	}
	if p.TopK < 0 {
		return errors.New("top_k must be non-negative")
	}
	if p.MaxOutputTokens <= 0 {
		return errors.New("max_output_tokens must be positive")
	}
	return nil
}
