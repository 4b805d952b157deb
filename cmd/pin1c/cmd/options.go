package cmd

import (
	"github.com/pin1yin1/pin1c/internal/config"
	"github.com/pin1yin1/pin1c/internal/diag"
)

// newFormatter builds a stderr diagnostic formatter honoring opts.Color:
// false turns color off, true keeps the formatter's terminal detection.
func newFormatter(opts config.PipelineOptions) *diag.Formatter {
	f := diag.NewFormatter()
	if !opts.Color {
		f.SetColor(false)
	}
	return f
}

// loadOptions builds this run's PipelineOptions from --config (if given)
// overlaid with the --no-color/--parallel flags, which always win over
// whatever the config file says.
func loadOptions() (config.PipelineOptions, error) {
	opts := config.Default()
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return config.PipelineOptions{}, err
		}
		opts = loaded
	}
	if noColor {
		opts.Color = false
	}
	if parallel {
		opts.Parallel = true
	}
	return opts, nil
}
