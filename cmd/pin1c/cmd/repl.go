package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/pin1yin1/pin1c/internal/compile"
	"github.com/pin1yin1/pin1c/internal/config"
	"github.com/pin1yin1/pin1c/internal/diag"
	"github.com/spf13/cobra"
)

var (
	blueColor   = color.New(color.FgBlue)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
	yellowColor = color.New(color.FgYellow)
)

const replBanner = `pin1c — romanized-syllable compiler, interactive mode`

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactively compile one function definition at a time",
	Long: `Start an interactive session: paste or type one whole function
definition per prompt (it must end with its closing jie2), and pin1c
prints its typed IR or its diagnostics immediately.

Type '.exit' or press Ctrl+D to quit.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(_ *cobra.Command, _ []string) error {
	opts, err := loadOptions()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	rl, err := readline.New("pin1c> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	blueColor.Println(strings.Repeat("-", len(replBanner)))
	greenColor.Println(replBanner)
	blueColor.Println(strings.Repeat("-", len(replBanner)))
	cyanColor.Println("Type one function definition per line, '.exit' to quit.")

	formatter := newFormatter(opts)
	n := 0
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF on Ctrl+D, readline.ErrInterrupt on Ctrl+C
			fmt.Println("Good bye!")
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			fmt.Println("Good bye!")
			return nil
		}
		rl.SaveHistory(line)

		evalFunction(formatter, opts, line, n)
		n++
	}
}

// evalFunction compiles one REPL entry as a standalone single-function
// file, printing its IR in yellow on success or its diagnostics through
// formatter on failure. Panics during compilation (an invariant this
// redesign's declare graph should never actually trip) are caught so one
// bad entry doesn't kill the whole session, matching go-mix's
// executeWithRecovery.
func evalFunction(formatter *diag.Formatter, opts config.PipelineOptions, line string, n int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("panic: %v\n", r)
		}
	}()

	filename := fmt.Sprintf("<repl:%d>", n)
	res := compile.Run(filename, line, opts)

	for _, d := range res.Diagnostics.Diagnostics {
		formatter.Format(d)
	}
	if !res.OK() || len(res.Items) == 0 {
		return
	}

	out, err := json.MarshalIndent(res.Items[0], "", "  ")
	if err != nil {
		fmt.Printf("error: marshaling IR: %v\n", err)
		return
	}
	yellowColor.Println(string(out))
}
