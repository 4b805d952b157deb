package diag

import (
	"github.com/pin1yin1/pin1c/internal/declare"
	"github.com/pin1yin1/pin1c/internal/lexer"
	"github.com/pin1yin1/pin1c/internal/parser"
	"github.com/pin1yin1/pin1c/internal/source"
)

// resolveSpan turns a raw offset span into a located diag.Span. loc may be
// nil (e.g. a synthetic span with no backing buffer), in which case only
// the raw offsets survive.
func resolveSpan(filename string, sp lexer.Span, loc *source.Locator) Span {
	out := Span{Filename: filename, Start: sp.Start, End: sp.End}
	if loc == nil {
		return out
	}
	start := loc.Resolve(sp.Start)
	out.Line, out.Column = start.Line, start.Column
	return out
}

// FromParserResult converts a failed parser.Result into a Diagnostic.
// Only Unmatch and Semantic results are meaningful here — callers should
// never call this on an Ok result.
func FromParserResult(kind parser.ResultKind, message string, span lexer.Span, filename string, loc *source.Locator) Diagnostic {
	code := CodeParserSemantic
	if kind == parser.Unmatch {
		code = CodeParserUnmatch
	}
	return Diagnostic{
		Stage:    StageParser,
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Span:     resolveSpan(filename, span, loc),
	}
}

// declareCode maps a declare.ErrorKind to its diagnostic code.
func declareCode(k declare.ErrorKind) Code {
	switch k {
	case declare.Unexpect:
		return CodeDeclareUnexpect
	case declare.NonBenchSelected:
		return CodeDeclareNonBenchSelected
	case declare.MultSelected:
		return CodeDeclareMultSelected
	case declare.ConflictSelected:
		return CodeDeclareConflictSelected
	case declare.NeverUsed:
		return CodeDeclareNeverUsed
	case declare.TypeUnmatch:
		return CodeDeclareTypeUnmatch
	case declare.GroupSolved:
		return CodeDeclareGroupSolved
	case declare.UniqueDeleted:
		return CodeDeclareUniqueDeleted
	default:
		return CodeDeclareTypeUnmatch
	}
}

// FromDeclareError converts a *declare.Error into a Diagnostic, resolving
// its Group (and every cause in its Previous chain) against groupSpans —
// the map a mir.Lowerer records from every group it builds back to the
// source span that produced it. A group with no recorded span (shouldn't
// happen outside of tests that build declare.Graphs directly) renders
// with an invalid Span rather than panicking.
func FromDeclareError(err *declare.Error, groupSpans map[declare.GroupIdx]lexer.Span, filename string, loc *source.Locator) Diagnostic {
	spanOf := func(g declare.GroupIdx) Span {
		sp, ok := groupSpans[g]
		if !ok {
			return Span{Filename: filename}
		}
		return resolveSpan(filename, sp, loc)
	}
	span := spanOf(err.Group)
	var chain []ProofStep
	for cause := err.Previous; cause != nil; cause = cause.Previous {
		chain = append(chain, ProofStep{
			Message: cause.Error(),
			Span:    spanOf(cause.Group),
		})
	}
	return Diagnostic{
		Stage:      StageDeclare,
		Severity:   SeverityError,
		Code:       declareCode(err.Kind),
		Message:    err.Message,
		Span:       span,
		ProofChain: chain,
	}
}

// FromMIRError converts a generic lowering-time error (an undeclared
// variable, an unresolved overload, a redeclaration) into a Diagnostic.
// These errors don't carry their own span today — mir.Lowerer.fail only
// records a message — so the result always carries an invalid Span; a
// caller with a span in hand should build the Diagnostic directly instead.
func FromMIRError(err error) Diagnostic {
	return Diagnostic{
		Stage:    StageMIR,
		Severity: SeverityError,
		Code:     CodeMIRSemantic,
		Message:  err.Error(),
	}
}
