package lexer

import "github.com/pin1yin1/pin1c/internal/source"

// word reports whether r belongs to a token: ASCII alphanumeric or
// underscore. Everything else is a separator and is discarded, never
// erroring — lexing never fails, per the word rule in py-lex's
// ParseUnit<char> for Token.
func word(r rune) bool {
	return (r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		r == '_'
}

// Lexer scans a rune buffer into a flat token stream using the maximal-word
// rule: skip a run of non-word runes, then take a run of word runes as one
// token. There is no token-type classification at this stage; every later
// stage reads Token.Value directly.
type Lexer struct {
	buf *source.Buffer[rune]
	pos int
}

// New constructs a lexer over buf.
func New(buf *source.Buffer[rune]) *Lexer {
	return &Lexer{buf: buf}
}

// NewFromString is a convenience constructor normalizing src and wrapping
// it in a named buffer before lexing.
func NewFromString(name, src string) *Lexer {
	return New(source.NewFromString(name, src))
}

// Buffer returns the rune buffer this lexer scans.
func (l *Lexer) Buffer() *source.Buffer[rune] { return l.buf }

// Next returns the next token and true, or the zero Token and false at
// end of input.
func (l *Lexer) Next() (Token, bool) {
	n := l.buf.Len()
	for l.pos < n && !word(l.buf.At(l.pos)) {
		l.pos++
	}
	if l.pos >= n {
		return Token{}, false
	}
	start := l.pos
	for l.pos < n && word(l.buf.At(l.pos)) {
		l.pos++
	}
	span := source.NewSpan(start, l.pos)
	return NewToken(string(l.buf.Slice(span)), span), true
}

// Tokens drains the lexer into a slice. Lexing never fails, so this never
// returns an error.
func (l *Lexer) Tokens() []Token {
	var tokens []Token
	for {
		tok, ok := l.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Tokenize is a convenience wrapper combining NewFromString and Tokens,
// returning both the token stream and the rune buffer it was lexed from
// (the buffer is needed later for diagnostic rendering).
func Tokenize(name, src string) ([]Token, *source.Buffer[rune]) {
	l := NewFromString(name, src)
	return l.Tokens(), l.Buffer()
}
