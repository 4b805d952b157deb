package parser

import (
	"github.com/pin1yin1/pin1c/internal/ast"
	"github.com/pin1yin1/pin1c/internal/keyword"
)

// ParseIdent parses a single identifier: non-empty, not digit-leading, not
// a reserved keyword. Grounded on pin1yin1-grammar's parse::Ident rule,
// including its reserved-keyword rejection across every keyword table.
func ParseIdent(c *Cursor) Result[*ast.Ident] {
	return Once(c, func(c *Cursor) Result[*ast.Ident] {
		tokRes := c.identToken()
		if tokRes.Kind != Ok {
			return Result[*ast.Ident]{Kind: tokRes.Kind, Message: tokRes.Message, Span: tokRes.Span}
		}
		tok := tokRes.Value
		if keyword.IsReserved(tok.Value) {
			return Unmatched[*ast.Ident](tok.Span(), "reserved keyword %q cannot be used as an identifier", tok.Value)
		}
		return Succeed(ast.NewIdent(tok.Value, tok.Span()))
	})
}
