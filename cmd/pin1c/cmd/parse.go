package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/pin1yin1/pin1c/internal/ast"
	"github.com/pin1yin1/pin1c/internal/diag"
	"github.com/pin1yin1/pin1c/internal/lexer"
	"github.com/pin1yin1/pin1c/internal/parser"
	"github.com/pin1yin1/pin1c/internal/source"
	"github.com/spf13/cobra"
)

var parseEvalExpr string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a pin1c source file and dump its AST",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse an inline function definition instead of reading from file")
}

func runParse(_ *cobra.Command, args []string) error {
	filename, src, err := readSource(parseEvalExpr, args)
	if err != nil {
		return err
	}

	tokens, buf := lexer.Tokenize(filename, src)
	loc := source.NewLocator(buf)

	fileRes := parser.ParseFile(tokens)
	if fileRes.Kind != parser.Ok {
		d := diag.FromParserResult(fileRes.Kind, fileRes.Message, fileRes.Span, filename, loc)
		diag.NewFormatterTo(os.Stderr).Format(d)
		return fmt.Errorf("parsing failed")
	}

	for _, fn := range fileRes.Value.Fns {
		dumpNode(os.Stdout, fn, 0)
	}
	return nil
}

func dumpNode(w *os.File, node any, indent int) {
	pad := strings.Repeat("  ", indent)
	switch n := node.(type) {
	case *ast.FnDefine:
		fmt.Fprintf(w, "%sFnDefine %s (%d param(s))\n", pad, n.Name.Name, len(n.Params))
		for _, p := range n.Params {
			fmt.Fprintf(w, "%s  param %s\n", pad, p.Name.Name)
		}
		dumpNode(w, n.Body, indent+1)
	case *ast.Block:
		fmt.Fprintf(w, "%sBlock (%d stmt(s))\n", pad, len(n.Stmts))
		for _, s := range n.Stmts {
			dumpNode(w, s, indent+1)
		}
	case *ast.VarDefine:
		fmt.Fprintf(w, "%sVarDefine %s\n", pad, n.Name.Name)
		dumpNode(w, n.Value, indent+1)
	case *ast.VarStore:
		fmt.Fprintf(w, "%sVarStore %s\n", pad, n.Name.Name)
		dumpNode(w, n.Value, indent+1)
	case *ast.If:
		fmt.Fprintf(w, "%sIf (%d clause(s))\n", pad, len(n.Clauses))
		for _, c := range n.Clauses {
			dumpNode(w, c.Body, indent+1)
		}
		if n.Else != nil {
			fmt.Fprintf(w, "%s  else\n", pad)
			dumpNode(w, n.Else, indent+1)
		}
	case *ast.While:
		fmt.Fprintf(w, "%sWhile\n", pad)
		dumpNode(w, n.Body, indent+1)
	case *ast.Return:
		fmt.Fprintf(w, "%sReturn\n", pad)
		if n.Value != nil {
			dumpNode(w, n.Value, indent+1)
		}
	case *ast.ExprStmt:
		fmt.Fprintf(w, "%sExprStmt\n", pad)
		dumpNode(w, n.Expr, indent+1)
	case *ast.CommentStmt:
		fmt.Fprintf(w, "%sComment %q\n", pad, n.Text)
	case *ast.CallExpr:
		fmt.Fprintf(w, "%sCall %s (%d arg(s))\n", pad, n.Name.Name, len(n.Args))
		for _, a := range n.Args {
			dumpNode(w, a, indent+1)
		}
	case *ast.BinaryExpr:
		fmt.Fprintf(w, "%sBinary %s\n", pad, n.Op)
		dumpNode(w, n.Left, indent+1)
		dumpNode(w, n.Right, indent+1)
	case *ast.UnaryExpr:
		fmt.Fprintf(w, "%sUnary %s\n", pad, n.Op)
		dumpNode(w, n.Operand, indent+1)
	case *ast.CastExpr:
		fmt.Fprintf(w, "%sCast\n", pad)
		dumpNode(w, n.Value, indent+1)
	case *ast.VariableExpr:
		fmt.Fprintf(w, "%sVariable %s\n", pad, n.Name.Name)
	case *ast.IntLit:
		fmt.Fprintf(w, "%sIntLit %s\n", pad, n.Text)
	case *ast.FloatLit:
		fmt.Fprintf(w, "%sFloatLit %s\n", pad, n.Text)
	case *ast.CharLit:
		fmt.Fprintf(w, "%sCharLit %q\n", pad, n.Value)
	case *ast.StringLit:
		fmt.Fprintf(w, "%sStringLit %q\n", pad, n.Value)
	default:
		fmt.Fprintf(w, "%s%T\n", pad, node)
	}
}
