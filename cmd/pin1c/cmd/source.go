package cmd

import (
	"fmt"
	"io"
	"os"
)

// readSource resolves one command's input: an inline expression (if eval
// is non-empty), a named file (if args carries one), or stdin otherwise.
// Mirrors the file/-e/stdin precedence every pin1c subcommand shares.
func readSource(eval string, args []string) (filename, src string, err error) {
	if eval != "" {
		return "<eval>", eval, nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return args[0], string(content), nil
	}
	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", fmt.Errorf("reading stdin: %w", err)
	}
	return "<stdin>", string(content), nil
}
