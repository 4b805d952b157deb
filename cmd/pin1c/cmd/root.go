package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Version is set by build flags; it is a plain dev string otherwise.
	Version = "0.1.0-dev"

	cfgFile  string
	noColor  bool
	parallel bool
)

var rootCmd = &cobra.Command{
	Use:     "pin1c",
	Short:   "pin1c compiles the romanized-syllable language to typed IR",
	Version: Version,
	Long: `pin1c is a compiler front/middle-end for a small imperative language
whose keywords are romanized Mandarin syllables.

It lexes, parses with a hand-written recursive-descent parser, and
infers every expression's type through a declare-graph constraint
solver, emitting a typed monomorphic IR as JSON.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a pin1c.toml config file (defaults to built-in defaults)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored diagnostic output")
	rootCmd.PersistentFlags().BoolVar(&parallel, "parallel", false, "lower and solve each function body on its own goroutine")
}
