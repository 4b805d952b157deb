package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pin1yin1/pin1c/internal/compile"
	"github.com/spf13/cobra"
)

var (
	buildEvalExpr string
	buildOutput   string
)

var buildCmd = &cobra.Command{
	Use:   "build [file]",
	Short: "Compile a pin1c source file to typed IR, emitted as JSON",
	Long: `Lex, parse, and lower every function in a pin1c source file, printing
the typed IR as a JSON array. Any diagnostic (parse failure, unresolved
declare graph, undeclared name) is rendered to stderr. A function that
fails to elaborate does not stop its siblings from being elaborated, so
every diagnostic is reported, but any error discards the IR of every
function and the printed JSON is null.

Examples:
  pin1c build program.pyi
  pin1c build --parallel -o out.json program.pyi`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVarP(&buildEvalExpr, "eval", "e", "", "compile inline source instead of reading from file")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "write IR JSON here instead of stdout")
}

func runBuild(_ *cobra.Command, args []string) error {
	filename, src, err := readSource(buildEvalExpr, args)
	if err != nil {
		return err
	}

	opts, err := loadOptions()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	res := compile.Run(filename, src, opts)

	formatter := newFormatter(opts)
	for _, d := range res.Diagnostics.Diagnostics {
		formatter.Format(d)
	}

	out, err := json.MarshalIndent(res.Items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling IR: %w", err)
	}

	if buildOutput == "" {
		fmt.Println(string(out))
	} else if err := os.WriteFile(buildOutput, out, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", buildOutput, err)
	}

	if !res.OK() {
		return fmt.Errorf("compilation failed (run %s)", res.RunID)
	}
	return nil
}
