package diag

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// noteWrapWidth is the column rosed wraps notes/help/suggestion text to —
// long enough to read comfortably in a typical terminal, short enough to
// never run past it.
const noteWrapWidth = 96

// Formatter formats diagnostics in a Rust-style format with source code
// snippets. Severity labels and underlines are colored when out is a real
// terminal; color is auto-disabled when it isn't (redirected to a file,
// piped into another program), matching how a CLI like the teacher's
// go-mix REPL decides when to colorize.
type Formatter struct {
	sourceCache map[string]string // Cache of source files by filename
	out         io.Writer

	errColor  *color.Color
	warnColor *color.Color
	noteColor *color.Color
}

// NewFormatter creates a diagnostic formatter writing to os.Stderr,
// colorized when stderr is a terminal.
func NewFormatter() *Formatter {
	return NewFormatterTo(colorable.NewColorableStderr())
}

// NewFormatterTo creates a formatter writing to an arbitrary writer. Color
// is enabled only when out is an *os.File whose descriptor is attached to
// a terminal — writing to a plain file, a pipe (as a build log would) or
// any non-file writer never emits ANSI escapes.
func NewFormatterTo(out io.Writer) *Formatter {
	noColor := true
	if f, ok := out.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}
	mk := func(attr color.Attribute) *color.Color {
		c := color.New(attr)
		c.EnableColor()
		if noColor {
			c.DisableColor()
		}
		return c
	}
	return &Formatter{
		sourceCache: make(map[string]string),
		out:         out,
		errColor:    mk(color.FgRed),
		warnColor:   mk(color.FgYellow),
		noteColor:   mk(color.FgCyan),
	}
}

// SetColor forces this formatter's color state, overriding whatever
// NewFormatterTo auto-detected from the destination — used when a caller
// (e.g. a --no-color flag, or a config file's Color setting) needs to
// override terminal auto-detection explicitly.
func (f *Formatter) SetColor(enabled bool) {
	for _, c := range []*color.Color{f.errColor, f.warnColor, f.noteColor} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

// severityColor picks the color for a diagnostic's severity label.
func (f *Formatter) severityColor(sev Severity) *color.Color {
	switch sev {
	case SeverityWarning:
		return f.warnColor
	case SeverityNote:
		return f.noteColor
	default:
		return f.errColor
	}
}

// wrap wraps s to noteWrapWidth, used for note/help/suggestion text that
// may run long — the snippet and underlines themselves are never wrapped,
// since doing so would desynchronize the underline columns from the
// source line above them.
func wrap(s string) string {
	return rosed.Edit(s).Wrap(noteWrapWidth).String()
}

// LoadSource loads source code for a file (cached).
func (f *Formatter) LoadSource(filename string) (string, error) {
	if filename == "" {
		return "", nil
	}
	if src, ok := f.sourceCache[filename]; ok {
		return src, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	src := string(data)
	f.sourceCache[filename] = src
	return src, nil
}

// Format formats and prints a diagnostic in Rust-style format.
func (f *Formatter) Format(d Diagnostic) {
	// Build list of spans to display
	spans := f.collectSpans(d)
	if len(spans) == 0 {
		// Fallback to simple format if no spans
		f.formatSimple(d)
		return
	}

	// Group spans by file
	spansByFile := make(map[string][]LabeledSpan)
	for _, span := range spans {
		filename := span.Span.Filename
		if filename == "" {
			filename = "<unknown>"
		}
		spansByFile[filename] = append(spansByFile[filename], span)
	}

	// Print header
	f.printHeader(d)

	// Print each file's spans
	for filename, fileSpans := range spansByFile {
		src, err := f.LoadSource(filename)
		if err != nil {
			// If we can't load source, fall back to simple format
			f.formatSimple(d)
			return
		}
		f.printFileSpans(filename, src, fileSpans, d)
	}

	// Print help/suggestions
	f.printHelp(d)
}

// collectSpans collects all spans from the diagnostic, prioritizing LabeledSpans.
func (f *Formatter) collectSpans(d Diagnostic) []LabeledSpan {
	if len(d.LabeledSpans) > 0 {
		return d.LabeledSpans
	}
	// Fallback to old format
	if d.Span.IsValid() {
		return []LabeledSpan{{Span: d.Span, Style: "primary"}}
	}
	return nil
}

// printHeader prints the error header (error[E0000]: message).
func (f *Formatter) printHeader(d Diagnostic) {
	severity := string(d.Severity)
	if severity == "" {
		severity = "error"
	}
	label := f.severityColor(d.Severity).Sprint(severity)

	if d.Code != "" {
		fmt.Fprintf(f.out, "%s[%s]: %s\n", label, d.Code, d.Message)
	} else {
		fmt.Fprintf(f.out, "%s: %s\n", label, d.Message)
	}
}

// printFileSpans prints source code with underlines for spans in a file.
func (f *Formatter) printFileSpans(filename string, src string, spans []LabeledSpan, d Diagnostic) {
	// Sort spans by line number
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Span.Line != spans[j].Span.Line {
			return spans[i].Span.Line < spans[j].Span.Line
		}
		return spans[i].Span.Column < spans[j].Span.Column
	})

	// Group spans by line
	spansByLine := make(map[int][]LabeledSpan)
	lines := strings.Split(src, "\n")
	maxLine := len(lines)

	for _, span := range spans {
		line := span.Span.Line
		if line > 0 && line <= maxLine {
			spansByLine[line] = append(spansByLine[line], span)
		}
	}

	// Determine line range to show (with context)
	lineNumbers := make([]int, 0, len(spansByLine))
	for line := range spansByLine {
		lineNumbers = append(lineNumbers, line)
	}
	sort.Ints(lineNumbers)

	if len(lineNumbers) == 0 {
		return
	}

	startLine := lineNumbers[0]
	endLine := lineNumbers[len(lineNumbers)-1]

	// Add context lines (2 before, 2 after)
	contextStart := max(1, startLine-2)
	contextEnd := min(maxLine, endLine+2)

	// Calculate padding for line numbers
	lineNumWidth := len(fmt.Sprintf("%d", contextEnd))

	// Print file path
	fmt.Fprintf(f.out, "  --> %s\n", filename)

	// Print line numbers and code
	fmt.Fprintf(f.out, "   %s |\n", strings.Repeat(" ", lineNumWidth))

	// Track which lines have primary spans
	hasPrimary := make(map[int]bool)
	for _, span := range spans {
		if span.Style == "primary" {
			hasPrimary[span.Span.Line] = true
		}
	}

	for lineNum := contextStart; lineNum <= contextEnd; lineNum++ {
		lineSpans := spansByLine[lineNum]
		lineContent := ""
		if lineNum <= len(lines) {
			lineContent = lines[lineNum-1]
		}

		// Print line number and code (right-align line numbers)
		lineNumStr := fmt.Sprintf("%*d", lineNumWidth, lineNum)
		fmt.Fprintf(f.out, " %s | %s\n", lineNumStr, lineContent)

		// Print underlines for spans on this line
		if len(lineSpans) > 0 {
			f.printUnderlines(lineNumWidth, lineContent, lineSpans, hasPrimary[lineNum])
		}
	}

	// Print closing separator
	fmt.Fprintf(f.out, "   %s |\n", strings.Repeat(" ", lineNumWidth))
}

// printUnderlines prints underlines (^) for spans on a line.
func (f *Formatter) printUnderlines(lineNumWidth int, lineContent string, spans []LabeledSpan, hasPrimary bool) {
	// Build underline string
	underline := make([]byte, len(lineContent))
	for i := range underline {
		underline[i] = ' '
	}

	// Sort spans by column
	sort.Slice(spans, func(i, j int) bool {
		return spans[i].Span.Column < spans[j].Span.Column
	})

	// Mark primary spans first (they get ^)
	for _, span := range spans {
		if span.Style == "primary" {
			start := max(0, span.Span.Column-1)
			end := min(len(underline), span.Span.Column-1+max(1, span.Span.End-span.Span.Start))
			for i := start; i < end && i < len(underline); i++ {
				underline[i] = '^'
			}
		}
	}

	// Mark secondary spans (they get ~)
	for _, span := range spans {
		if span.Style == "secondary" {
			start := max(0, span.Span.Column-1)
			end := min(len(underline), span.Span.Column-1+max(1, span.Span.End-span.Span.Start))
			for i := start; i < end && i < len(underline); i++ {
				if underline[i] == ' ' {
					underline[i] = '~'
				}
			}
		}
	}

	// Find the rightmost underline to determine where labels go
	rightmost := -1
	for i := len(underline) - 1; i >= 0; i-- {
		if underline[i] != ' ' {
			rightmost = i
			break
		}
	}

	if rightmost == -1 {
		return
	}

	// Print underlines
	underlineStr := string(underline)
	fmt.Fprintf(f.out, "   %s | %s", strings.Repeat(" ", lineNumWidth), underlineStr)

	// Collect and print labels
	primaryLabel := ""
	secondaryLabels := []string{}
	for _, span := range spans {
		if span.Label != "" {
			if span.Style == "primary" {
				primaryLabel = span.Label
			} else {
				secondaryLabels = append(secondaryLabels, span.Label)
			}
		}
	}

	// Print primary label inline
	if primaryLabel != "" {
		fmt.Fprintf(f.out, " %s", primaryLabel)
	}

	fmt.Fprintf(f.out, "\n")

	// Print secondary labels on separate lines
	for _, label := range secondaryLabels {
		fmt.Fprintf(f.out, "   %s |", strings.Repeat(" ", lineNumWidth))
		// Calculate position for secondary label (at end of line or after content)
		labelPos := len(lineContent) + 1
		if labelPos < rightmost+2 {
			labelPos = rightmost + 2
		}
		// Add spaces to align with the label position
		if labelPos > len(lineContent) {
			fmt.Fprintf(f.out, "%s", strings.Repeat(" ", labelPos-len(lineContent)))
		}
		fmt.Fprintf(f.out, " %s\n", label)
	}
}

// printHelp prints help text and suggestions.
func (f *Formatter) printHelp(d Diagnostic) {
	noteLabel := f.noteColor.Sprint("note")

	// Print proof chain first (shows the reasoning)
	if len(d.ProofChain) > 0 {
		for _, step := range d.ProofChain {
			fmt.Fprintf(f.out, "\n")
			if step.Span.IsValid() {
				fmt.Fprintf(f.out, "  = %s: %s\n", noteLabel, wrap(step.Message))
				fmt.Fprintf(f.out, "           at %s\n", step.Span.String())
			} else {
				fmt.Fprintf(f.out, "  = %s: %s\n", noteLabel, wrap(step.Message))
			}
		}
	}

	// Print notes
	for _, note := range d.Notes {
		fmt.Fprintf(f.out, "\n")
		fmt.Fprintf(f.out, "  = %s: %s\n", noteLabel, wrap(note))
	}

	// Print help (preferred over suggestion)
	if d.Help != "" {
		fmt.Fprintf(f.out, "\n")
		fmt.Fprintf(f.out, "help: %s\n", wrap(d.Help))
	} else if d.Suggestion != "" {
		fmt.Fprintf(f.out, "\n")
		fmt.Fprintf(f.out, "help: %s\n", wrap(d.Suggestion))
	}

	// Print related spans (old format, for backward compatibility)
	for _, related := range d.Related {
		if related.IsValid() {
			fmt.Fprintf(f.out, "\n")
			fmt.Fprintf(f.out, "  = note: related location at %s\n", related.String())
		}
	}
}

// formatSimple formats a diagnostic without source code (fallback).
func (f *Formatter) formatSimple(d Diagnostic) {
	f.printHeader(d)
	if d.Span.IsValid() {
		fmt.Fprintf(f.out, "  --> %s\n", d.Span.String())
	}
	f.printHelp(d)
}

// Helper functions
func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

