package diag_test

import (
	"testing"

	"github.com/pin1yin1/pin1c/internal/declare"
	"github.com/pin1yin1/pin1c/internal/diag"
	"github.com/pin1yin1/pin1c/internal/lexer"
	"github.com/pin1yin1/pin1c/internal/parser"
	"github.com/pin1yin1/pin1c/internal/source"
)

func TestSpanStringFormatsLocation(t *testing.T) {
	sp := diag.Span{Filename: "t.pyi", Line: 3, Column: 7}
	if got, want := sp.String(), "t.pyi:3:7"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if (diag.Span{}).IsValid() {
		t.Fatal("zero-value span should be invalid")
	}
}

func TestFromParserResultDistinguishesUnmatchAndSemantic(t *testing.T) {
	buf := source.NewFromString("t.pyi", "zheng3 x")
	loc := source.NewLocator(buf)
	span := lexer.Span{Start: 0, End: 6}

	unmatch := diag.FromParserResult(parser.Unmatch, "expected a keyword", span, "t.pyi", loc)
	if unmatch.Code != diag.CodeParserUnmatch {
		t.Fatalf("expected unmatch code, got %q", unmatch.Code)
	}
	if unmatch.Span.Line != 1 || unmatch.Span.Column != 1 {
		t.Fatalf("expected location 1:1, got %d:%d", unmatch.Span.Line, unmatch.Span.Column)
	}

	semantic := diag.FromParserResult(parser.Semantic, "expected a type", span, "t.pyi", loc)
	if semantic.Code != diag.CodeParserSemantic {
		t.Fatalf("expected semantic code, got %q", semantic.Code)
	}
	if semantic.Stage != diag.StageParser {
		t.Fatalf("expected stage %q, got %q", diag.StageParser, semantic.Stage)
	}
}

func TestFromDeclareErrorRendersCauseChainAsProofSteps(t *testing.T) {
	buf := source.NewFromString("t.pyi", "zheng3 x jie2 han2 fan3 x fen1 jie2")
	loc := source.NewLocator(buf)

	root := declare.NewError(declare.TypeUnmatch, 0, "required type vanished")
	leaf := root.Because(declare.NonBenchSelected, 1, "no candidate remains")

	spans := map[declare.GroupIdx]lexer.Span{
		0: {Start: 0, End: 6},
		1: {Start: 7, End: 8},
	}

	d := diag.FromDeclareError(leaf, spans, "t.pyi", loc)
	if d.Stage != diag.StageDeclare {
		t.Fatalf("expected stage %q, got %q", diag.StageDeclare, d.Stage)
	}
	if d.Code != diag.CodeDeclareNonBenchSelected {
		t.Fatalf("expected code %q, got %q", diag.CodeDeclareNonBenchSelected, d.Code)
	}
	if len(d.ProofChain) != 1 {
		t.Fatalf("expected one proof step, got %d", len(d.ProofChain))
	}
	if !d.ProofChain[0].Span.IsValid() {
		t.Fatal("expected the cause's span to resolve")
	}
}

func TestFromMIRErrorHasNoSpan(t *testing.T) {
	d := diag.FromMIRError(errUndeclared{"x"})
	if d.Stage != diag.StageMIR {
		t.Fatalf("expected stage %q, got %q", diag.StageMIR, d.Stage)
	}
	if d.Span.IsValid() {
		t.Fatal("expected an invalid span for a span-less lowering error")
	}
}

type errUndeclared struct{ name string }

func (e errUndeclared) Error() string { return "undeclared variable " + e.name }

func TestBatchTracksErrorsAndCorrelationID(t *testing.T) {
	b := diag.NewBatch()
	if b.HasErrors() {
		t.Fatal("empty batch should report no errors")
	}
	b.Add(diag.Diagnostic{Severity: diag.SeverityWarning})
	if b.HasErrors() {
		t.Fatal("a warning-only batch should report no errors")
	}
	b.Add(diag.Diagnostic{Severity: diag.SeverityError})
	if !b.HasErrors() {
		t.Fatal("expected HasErrors once an error diagnostic is added")
	}
	if b.ID.String() == "" {
		t.Fatal("expected a non-empty correlation ID")
	}

	other := diag.NewBatch()
	if b.ID == other.ID {
		t.Fatal("expected distinct batches to get distinct correlation IDs")
	}
}
