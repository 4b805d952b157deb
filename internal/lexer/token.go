package lexer

import "github.com/pin1yin1/pin1c/internal/source"

// Span is re-exported so later stages never need to import internal/source
// directly just to hold a lexer span.
type Span = source.Span

// Token is a single maximal word: a run of ASCII alphanumerics and
// underscores, delimited (but not represented) by everything else. There are
// no typed punctuation tokens — every later stage recognizes keywords by
// comparing a Token's Value against the tables in internal/keyword.
type Token struct {
	Value string
	span  Span
}

// NewToken constructs a token with the given span.
func NewToken(value string, span Span) Token {
	return Token{Value: value, span: span}
}

// Span returns the token's span in the originating rune buffer.
func (t Token) Span() Span { return t.span }

// String returns the token's underlying text.
func (t Token) String() string { return t.Value }
