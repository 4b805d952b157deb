package parser

import (
	"strconv"

	"github.com/pin1yin1/pin1c/internal/ast"
	"github.com/pin1yin1/pin1c/internal/keyword"
)

// ParseTypeExpr parses a type expression: zero or more decorator
// keywords, then optional width/sign extensions (meaningful only for the
// zheng3/fu2 base types), then a base type name. Grounded on
// pin1yin1-grammar's parse::types (TypeConstExtend / TypeArrayExtend /
// TypeReferenceExtend / TypePointerExtend / TypeWidthExtend /
// TypeSignExtend / TypeDefine).
func ParseTypeExpr(c *Cursor) Result[ast.TypeExpr] {
	return Once(c, func(c *Cursor) Result[ast.TypeExpr] {
		var decorators []ast.Decorator
		for {
			if MatchKeyword(c, keyword.DecoratorConst).IsOk() {
				decorators = append(decorators, ast.Decorator{Kind: ast.DecoratorKindConst})
				continue
			}
			if MatchKeyword(c, keyword.DecoratorArray).IsOk() {
				n, res := parseArrayLen(c)
				if res.Kind != Ok {
					return Result[ast.TypeExpr]{Kind: Semantic, Message: res.Message, Span: res.Span}
				}
				decorators = append(decorators, ast.Decorator{Kind: ast.DecoratorKindArray, N: n})
				continue
			}
			if MatchKeyword(c, keyword.DecoratorRef).IsOk() {
				decorators = append(decorators, ast.Decorator{Kind: ast.DecoratorKindRef})
				continue
			}
			if MatchKeyword(c, keyword.DecoratorPointer).IsOk() {
				decorators = append(decorators, ast.Decorator{Kind: ast.DecoratorKindPointer})
				continue
			}
			break
		}

		start := c.CurrentSpan()
		width := 0
		if MatchKeyword(c, keyword.DecoratorWidth).IsOk() {
			tok, ok := c.Next()
			if !ok {
				return Fail[ast.TypeExpr](c.CurrentSpan(), "expected a width after %q", keyword.DecoratorWidth)
			}
			n, err := strconv.Atoi(tok.Value)
			if err != nil {
				return Fail[ast.TypeExpr](tok.Span(), "invalid width %q: %v", tok.Value, err)
			}
			width = n
		}

		var signed *bool
		if MatchKeyword(c, keyword.DecoratorSigned).IsOk() {
			v := true
			signed = &v
		} else if MatchKeyword(c, keyword.DecoratorUnsigned).IsOk() {
			v := false
			signed = &v
		}

		// zheng3/fu2 are reserved words, so ParseIdent would reject them;
		// they are matched here as keywords before falling back to a name.
		var name *ast.Ident
		if tok, ok := c.Peek(); ok && (tok.Value == keyword.BaseInteger || tok.Value == keyword.BaseFloat) {
			c.Next()
			name = ast.NewIdent(tok.Value, tok.Span())
		} else {
			nameRes := ParseIdent(c)
			if nameRes.Kind != Ok {
				if len(decorators) > 0 || width != 0 || signed != nil {
					return Result[ast.TypeExpr]{Kind: Semantic, Message: "expected a base type name", Span: nameRes.Span}.Upgrade()
				}
				return Result[ast.TypeExpr]{Kind: nameRes.Kind, Message: nameRes.Message, Span: nameRes.Span}
			}
			name = nameRes.Value
		}
		end := name.Span()
		span := start.Merge(end)

		switch name.Name {
		case keyword.BaseInteger:
			if width != 0 {
				if width < 8 || width > 128 || width&(width-1) != 0 {
					return Fail[ast.TypeExpr](span, "integer width must be a power of two between 8 and 128, got %d", width)
				}
			}
			return Succeed[ast.TypeExpr](ast.NewPrimitiveTypeExpr(keyword.BaseInteger, width, signed, decorators, span))
		case keyword.BaseFloat:
			if signed != nil {
				return Fail[ast.TypeExpr](span, "floating point types cannot carry a sign decorator")
			}
			if width != 0 && width != 32 && width != 64 {
				return Fail[ast.TypeExpr](span, "float width must be 32 or 64, got %d", width)
			}
			return Succeed[ast.TypeExpr](ast.NewPrimitiveTypeExpr(keyword.BaseFloat, width, nil, decorators, span))
		default:
			if width != 0 || signed != nil {
				return Fail[ast.TypeExpr](span, "width/sign decorators only apply to %s/%s, not %q", keyword.BaseInteger, keyword.BaseFloat, name.Name)
			}
			return Succeed[ast.TypeExpr](ast.NewComplexTypeExpr(name, decorators, span))
		}
	})
}

func parseArrayLen(c *Cursor) (int, Result[int]) {
	tok, ok := c.Next()
	if !ok {
		return 0, Fail[int](c.CurrentSpan(), "expected an array length after %q", keyword.DecoratorArray)
	}
	n, err := strconv.Atoi(tok.Value)
	if err != nil {
		return 0, Fail[int](tok.Span(), "invalid array length %q: %v", tok.Value, err)
	}
	return n, Succeed(n)
}
