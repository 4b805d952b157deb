package cmd

import (
	"fmt"
	"os"

	"github.com/pin1yin1/pin1c/internal/lexer"
	"github.com/spf13/cobra"
)

var lexEvalExpr string

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a pin1c source file and print its tokens",
	Long: `Tokenize (lex) a pin1c program and print the resulting maximal-word
tokens, one per line, with their rune span.

Examples:
  pin1c lex program.pyi
  pin1c lex -e "zheng3 jia can1 zheng3 x jie2 han2 fan3 x fen1 jie2"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline source instead of reading from file")
}

func runLex(_ *cobra.Command, args []string) error {
	filename, src, err := readSource(lexEvalExpr, args)
	if err != nil {
		return err
	}

	tokens, _ := lexer.Tokenize(filename, src)
	for _, tok := range tokens {
		fmt.Printf("%-16q @%d:%d\n", tok.Value, tok.Span().Start, tok.Span().End)
	}
	fmt.Fprintf(os.Stderr, "%d token(s)\n", len(tokens))
	return nil
}
