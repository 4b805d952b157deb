// Package parser implements a hand-written recursive-descent parser over
// the flat token stream produced by internal/lexer. Its defining trait is a
// three-valued result — Ok, Unmatch, or Semantic — rather than the usual
// binary success/failure: an Unmatch lets a caller try a different
// alternative with the cursor rewound to where it started, while a
// Semantic error is a real, reportable diagnostic that must not be
// swallowed by backtracking. This is grounded on terl's
// ParseErrorKind::{Unmatch,Semantic} split and Parser::once/Try machinery.
//
// Cursor invariants (kept here so new grammar rules stay aligned with the
// framework):
//   - Position: pos always indexes the next unconsumed token. Next/Peek are
//     the only primitives that read it; every higher-level rule is built
//     from them.
//   - Backtracking: Once is the general way pos rolls back: a rule that
//     consumes tokens and then fails is rewound by being called through
//     Once (directly or via Try). A few primitives and rules (MatchKeyword,
//     identToken, the cast and if/else lookaheads) also rewind with
//     Mark/Reset themselves.
//   - Commit points: once MustMatchKeyword has been reached within a rule,
//     every subsequent Unmatch from a sub-parse must be upgraded to Semantic
//     (Result.Upgrade) so a readable diagnostic survives instead of being
//     silently absorbed as "this construct didn't match after all".
package parser

import (
	"fmt"

	"github.com/pin1yin1/pin1c/internal/lexer"
)

// ResultKind classifies a parse attempt's outcome.
type ResultKind int

const (
	Ok ResultKind = iota
	Unmatch
	Semantic
)

// Result is the three-valued outcome of a parse attempt, grounded on
// terl's ParseResult/ParseError pair.
type Result[T any] struct {
	Kind    ResultKind
	Value   T
	Message string
	Span    lexer.Span
}

// Succeed builds an Ok result.
func Succeed[T any](value T) Result[T] {
	return Result[T]{Kind: Ok, Value: value}
}

// Unmatched builds an Unmatch result: "this rule did not apply here",
// cheap to try-and-discard.
func Unmatched[T any](span lexer.Span, format string, args ...any) Result[T] {
	return Result[T]{Kind: Unmatch, Message: fmt.Sprintf(format, args...), Span: span}
}

// Fail builds a Semantic result: a real, reportable error.
func Fail[T any](span lexer.Span, format string, args ...any) Result[T] {
	return Result[T]{Kind: Semantic, Message: fmt.Sprintf(format, args...), Span: span}
}

// Upgrade turns an Unmatch into a Semantic error, used past a MustMatch
// commit point. Ok and already-Semantic results pass through unchanged.
func (r Result[T]) Upgrade() Result[T] {
	if r.Kind == Unmatch {
		r.Kind = Semantic
	}
	return r
}

// IsOk reports whether the result succeeded.
func (r Result[T]) IsOk() bool { return r.Kind == Ok }

// Cursor walks a token buffer, supporting lookahead and fork/rewind
// backtracking. It never looks at source text directly — only at
// lexer.Token.Value — so the same cursor serves both grammar rules and the
// Pratt expression climber.
type Cursor struct {
	tokens []lexer.Token
	pos    int
}

// NewCursor builds a cursor over the given token stream.
func NewCursor(tokens []lexer.Token) *Cursor {
	return &Cursor{tokens: tokens}
}

// Peek returns the token at the cursor without consuming it.
func (c *Cursor) Peek() (lexer.Token, bool) {
	if c.pos >= len(c.tokens) {
		return lexer.Token{}, false
	}
	return c.tokens[c.pos], true
}

// PeekN returns the token n positions ahead of the cursor (PeekN(0) ==
// Peek()) without consuming anything.
func (c *Cursor) PeekN(n int) (lexer.Token, bool) {
	idx := c.pos + n
	if idx < 0 || idx >= len(c.tokens) {
		return lexer.Token{}, false
	}
	return c.tokens[idx], true
}

// Next consumes and returns the token at the cursor.
func (c *Cursor) Next() (lexer.Token, bool) {
	tok, ok := c.Peek()
	if ok {
		c.pos++
	}
	return tok, ok
}

// AtEnd reports whether every token has been consumed.
func (c *Cursor) AtEnd() bool { return c.pos >= len(c.tokens) }

// Pos returns the cursor's current token index. Spans in this package are
// not token indices: they are the rune-offset spans of the tokens
// themselves (Token.Span, CurrentSpan).
func (c *Cursor) Pos() int { return c.pos }

// Mark captures a rewind point.
func (c *Cursor) Mark() int { return c.pos }

// Reset rewinds the cursor to a previously captured mark.
func (c *Cursor) Reset(mark int) { c.pos = mark }

// CurrentSpan returns a best-effort span for the cursor's current
// position: the span of the next unconsumed token, or, at end of input, a
// one-wide span just past the last token (falling back to an empty span
// for an empty token stream) so that diagnostics emitted before any token
// is taken still have somewhere to point, mirroring terl's WithSpan impl
// for Parser.
func (c *Cursor) CurrentSpan() lexer.Span {
	if tok, ok := c.Peek(); ok {
		return tok.Span()
	}
	if len(c.tokens) > 0 {
		last := c.tokens[len(c.tokens)-1].Span()
		return lexer.Span{Start: last.End, End: last.End + 1}
	}
	return lexer.Span{Start: 0, End: 0}
}

// Once runs parse with a fork of the cursor, rewinding to the fork point
// unless parse succeeded. This is the framework's general backtracking
// primitive: every alternative-trying rule is built on top of it, exactly
// like terl's Parser::once forking state and syncing only on Ok.
func Once[T any](c *Cursor, parse func(*Cursor) Result[T]) Result[T] {
	mark := c.Mark()
	res := parse(c)
	if res.Kind != Ok {
		c.Reset(mark)
	}
	return res
}

// Try runs parse and converts Unmatch into a nil pointer with no error,
// letting a caller attempt the next alternative. Semantic errors propagate
// unchanged — they are never silently discarded.
func Try[T any](c *Cursor, parse func(*Cursor) Result[T]) (*T, Result[T]) {
	res := Once(c, parse)
	switch res.Kind {
	case Ok:
		v := res.Value
		return &v, res
	case Unmatch:
		return nil, res
	default:
		return nil, res
	}
}

// MatchKeyword consumes the next token if and only if its value equals kw,
// otherwise returns Unmatch without consuming.
func MatchKeyword(c *Cursor, kw string) Result[lexer.Token] {
	mark := c.Mark()
	tok, ok := c.Next()
	if !ok || tok.Value != kw {
		c.Reset(mark)
		return Unmatched[lexer.Token](c.CurrentSpan(), "expected keyword %q", kw)
	}
	return Succeed(tok)
}

// MustMatchKeyword is MatchKeyword upgraded to Semantic on failure — for
// use past a commit point, where the keyword's absence is a real error
// rather than "try something else".
func MustMatchKeyword(c *Cursor, kw string) Result[lexer.Token] {
	return MatchKeyword(c, kw).Upgrade()
}

// identToken consumes a single non-empty, non-digit-leading token as an
// identifier; it does not check reserved words (ParseIdent does). Grounded
// on pin1yin1-grammar's parse::Ident rule.
func (c *Cursor) identToken() Result[lexer.Token] {
	mark := c.Mark()
	tok, ok := c.Next()
	if !ok {
		return Unmatched[lexer.Token](c.CurrentSpan(), "expected identifier, found end of input")
	}
	if tok.Value == "" {
		c.Reset(mark)
		return Unmatched[lexer.Token](tok.Span(), "empty identifier")
	}
	if tok.Value[0] >= '0' && tok.Value[0] <= '9' {
		c.Reset(mark)
		return Unmatched[lexer.Token](tok.Span(), "identifier cannot start with a digit: %q", tok.Value)
	}
	return Succeed(tok)
}
