// Package config loads the TOML-based options a pin1c run is configured
// with, grounded on dekarrin-tunaq's own `toml.Unmarshal(data, &struct)`
// pattern (internal/tqw/tqw.go) for reading its world-file format.
package config

import "github.com/BurntSushi/toml"

// PipelineOptions configures one internal/compile run.
type PipelineOptions struct {
	// Parallel enables concurrent per-function elaboration: signatures
	// still register sequentially, but each body is lowered and solved
	// on its own goroutine once every signature is visible.
	Parallel bool `toml:"parallel"`

	// Color enables ANSI-colored diagnostic output. Ignored when the
	// destination isn't a terminal regardless of this setting — see
	// internal/diag.NewFormatterTo.
	Color bool `toml:"color"`

	// IntegerDefaultWidth is loaded and defaulted (64) but not read by any
	// stage of the compile pipeline and not validated: an integer literal
	// that nothing constrains is reported as ambiguous, not given this
	// width.
	IntegerDefaultWidth int `toml:"integer_default_width"`

	// MaxArraySize is loaded and defaulted (1<<20) but not read by any
	// stage of the compile pipeline: an Array type decorator's N is not
	// checked against it.
	MaxArraySize int `toml:"max_array_size"`
}

// Default returns the options a run uses when no config file is given.
func Default() PipelineOptions {
	return PipelineOptions{
		Parallel:            false,
		Color:               true,
		IntegerDefaultWidth: 64,
		MaxArraySize:        1 << 20,
	}
}

// Load reads and parses a PipelineOptions from a TOML file at path,
// starting from Default() so a config file only needs to name the
// settings it wants to override.
func Load(path string) (PipelineOptions, error) {
	opts := Default()
	_, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return PipelineOptions{}, err
	}
	return opts, nil
}
