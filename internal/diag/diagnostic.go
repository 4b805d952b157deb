package diag

import "fmt"

// Stage identifies which compiler phase produced the diagnostic.
type Stage string

const (
	StageLexer   Stage = "lexer"
	StageParser  Stage = "parser"
	StageDeclare Stage = "declare"
	StageMIR     Stage = "mir"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Code is a stable identifier for a diagnostic.
type Code string

const (
	CodeLexerUnterminatedString       Code = "LEXER_UNTERMINATED_STRING"
	CodeLexerUnterminatedBlockComment Code = "LEXER_UNTERMINATED_BLOCK_COMMENT"
	CodeLexerIllegalRune              Code = "LEXER_ILLEGAL_RUNE"

	// CodeParserUnmatch reports a rule that could not even start to apply
	// at the cursor's position, surfaced only when nothing else in the
	// grammar matched either (every Unmatch that bubbles all the way up).
	CodeParserUnmatch Code = "PARSER_UNMATCH"
	// CodeParserSemantic reports a Semantic parser.Result: a commit point
	// was reached (a keyword or opener matched) but what followed it did
	// not parse, so backtracking to a sibling alternative is not an option.
	CodeParserSemantic Code = "PARSER_SEMANTIC"

	// Declare-graph codes, one per declare.ErrorKind.
	CodeDeclareUnexpect         Code = "DECLARE_UNEXPECTED_TYPE"
	CodeDeclareNonBenchSelected Code = "DECLARE_NO_CANDIDATE"
	CodeDeclareMultSelected     Code = "DECLARE_AMBIGUOUS"
	CodeDeclareConflictSelected Code = "DECLARE_CONFLICT"
	CodeDeclareNeverUsed        Code = "DECLARE_NEVER_USED"
	CodeDeclareTypeUnmatch      Code = "DECLARE_TYPE_UNMATCH"
	CodeDeclareGroupSolved      Code = "DECLARE_GROUP_SOLVED"
	CodeDeclareUniqueDeleted    Code = "DECLARE_UNIQUE_DELETED"

	// CodeMIRSemantic reports a lowering-time error that isn't itself a
	// declare-graph failure: an undeclared variable, an unknown overload,
	// a redeclared binding.
	CodeMIRSemantic Code = "MIR_SEMANTIC"
)

// Span represents a resolved location in source code: a byte/rune offset
// range plus the line/column pair the offsets were resolved to, ready for
// direct rendering (the declare graph and parser only ever carry raw
// offset spans — resolving them against a source.Locator happens once,
// at the point a Diagnostic is built).
type Span struct {
	Filename string
	Line     int
	Column   int
	Start    int
	End      int
}

// IsValid reports whether s names an actual location.
func (s Span) IsValid() bool { return s.Line > 0 }

// String renders s as "filename:line:column".
func (s Span) String() string {
	if !s.IsValid() {
		return "<unknown>"
	}
	name := s.Filename
	if name == "" {
		name = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", name, s.Line, s.Column)
}

// LabeledSpan is one span singled out in a diagnostic, carrying the style
// it should render with (primary gets `^`, secondary gets `~`) and an
// optional inline label, grounded on rustc's multi-span diagnostics.
type LabeledSpan struct {
	Span  Span
	Style string // "primary" or "secondary"
	Label string
}

// ProofStep is one link in a declare-graph error's cause chain, rendered
// as a trailing `note:` explaining why an earlier removal forced this one.
type ProofStep struct {
	Message string
	Span    Span
}

// Diagnostic is a compiler diagnostic surfaced to end-users.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Span     Span

	// LabeledSpans, when non-empty, supersedes Span for rendering:
	// multiple spans (e.g. both operands of a merge conflict) with their
	// own style and label each.
	LabeledSpans []LabeledSpan

	// ProofChain renders a declare.Error's Previous chain, oldest cause
	// last, right after the primary snippet.
	ProofChain []ProofStep

	Notes      []string
	Help       string
	Suggestion string
	Related    []Span
}
