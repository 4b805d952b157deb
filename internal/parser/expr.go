package parser

import (
	"github.com/pin1yin1/pin1c/internal/ast"
	"github.com/pin1yin1/pin1c/internal/keyword"
)

// ParseExpr climbs an expression with operator-precedence (Pratt) parsing:
// an atom, then a loop consuming infix operators whose priority is tight
// enough to bind at the current floor, recursing for the right-hand side.
// Lower keyword.Operator.Priority binds tighter; binary operators are
// left-associative (the recursive call uses priority-1 as its floor),
// matching spec.md's priority table (itself identical to py-lex's ops.rs
// table).
func ParseExpr(c *Cursor) Result[ast.Expr] {
	return parseExprClimb(c, maxPriority)
}

// maxPriority is looser than every real operator priority, so the initial
// call to parseExprClimb accepts any operator.
const maxPriority = 1 << 30

func parseExprClimb(c *Cursor, floor int) Result[ast.Expr] {
	leftRes := parseUnary(c)
	if leftRes.Kind != Ok {
		return leftRes
	}
	left := leftRes.Value

	for {
		tok, ok := c.Peek()
		if !ok {
			break
		}
		op, known := keyword.Operators[tok.Value]
		if !known || !keyword.IsBinary(tok.Value) || op.Priority > floor {
			break
		}
		c.Next()

		nextFloor := op.Priority
		if op.Assoc == keyword.LeftToRight {
			nextFloor = op.Priority - 1
		}
		rightRes := parseExprClimb(c, nextFloor)
		if rightRes.Kind != Ok {
			return rightRes.Upgrade()
		}
		span := left.Span().Merge(rightRes.Value.Span())
		left = ast.NewBinaryExpr(op.Keyword, left, rightRes.Value, span)
	}
	return Succeed[ast.Expr](left)
}

// parseUnary handles the right-associative prefix unary operators (fei1,
// wei4fei1, qu3zhi3, chang2du4) ahead of atom parsing, then falls through
// to the dedicated zhuan3/fang3su4 rules and finally plain atoms.
func parseUnary(c *Cursor) Result[ast.Expr] {
	if tok, ok := c.Peek(); ok && keyword.IsUnaryPrefix(tok.Value) {
		c.Next()
		operandRes := parseUnary(c)
		if operandRes.Kind != Ok {
			return operandRes.Upgrade()
		}
		span := tok.Span().Merge(operandRes.Value.Span())
		return Succeed[ast.Expr](ast.NewUnaryExpr(tok.Value, operandRes.Value, span))
	}
	if castRes := tryParseCast(c); castRes != nil {
		return *castRes
	}
	return parsePostfix(c)
}

// parsePostfix parses an atom followed by zero or more tightly-binding
// `fang3su4` (get-element) applications: `base fang3su4 index`.
func parsePostfix(c *Cursor) Result[ast.Expr] {
	baseRes := parseAtom(c)
	if baseRes.Kind != Ok {
		return baseRes
	}
	expr := baseRes.Value
	for {
		if !MatchKeyword(c, keyword.GetElementKeyword).IsOk() {
			break
		}
		idxRes := parseAtom(c)
		if idxRes.Kind != Ok {
			return idxRes.Upgrade()
		}
		span := expr.Span().Merge(idxRes.Value.Span())
		expr = ast.NewBinaryExpr(keyword.GetElementKeyword, expr, idxRes.Value, span)
	}
	return Succeed(expr)
}

func tryParseCast(c *Cursor) *Result[ast.Expr] {
	mark := c.Mark()
	start := c.CurrentSpan()
	if !MatchKeyword(c, keyword.CastKeyword).IsOk() {
		return nil
	}
	typeRes := ParseTypeExpr(c)
	if typeRes.Kind != Ok {
		c.Reset(mark)
		r := Result[ast.Expr]{Kind: Semantic, Message: "expected a type after " + keyword.CastKeyword, Span: typeRes.Span}
		return &r
	}
	valueRes := parseUnary(c)
	if valueRes.Kind != Ok {
		r := valueRes.Upgrade()
		out := Result[ast.Expr]{Kind: r.Kind, Message: r.Message, Span: r.Span}
		return &out
	}
	span := start.Merge(valueRes.Value.Span())
	r := Succeed[ast.Expr](ast.NewCastExpr(typeRes.Value, valueRes.Value, span))
	return &r
}

// parseAtom parses a literal, variable reference, or call expression.
func parseAtom(c *Cursor) Result[ast.Expr] {
	return Once(c, func(c *Cursor) Result[ast.Expr] {
		if callRes := tryParseCallExpr(c); callRes.Kind != Unmatch {
			return callRes
		}

		if MatchKeyword(c, keyword.CharMarker).IsOk() {
			tok, ok := c.Next()
			if !ok || len([]rune(tok.Value)) != 1 {
				return Fail[ast.Expr](c.CurrentSpan(), "expected a single character after %s", keyword.CharMarker)
			}
			r := []rune(tok.Value)[0]
			return Succeed[ast.Expr](ast.NewCharLit(r, tok.Span()))
		}

		if MatchKeyword(c, keyword.StringMarker).IsOk() {
			tok, ok := c.Next()
			if !ok {
				return Fail[ast.Expr](c.CurrentSpan(), "expected a word after %s", keyword.StringMarker)
			}
			return Succeed[ast.Expr](ast.NewStringLit(tok.Value, tok.Span()))
		}

		tok, ok := c.Peek()
		if ok && isDigitToken(tok.Value) {
			c.Next()
			return Succeed[ast.Expr](ast.NewIntLit(tok.Value, tok.Span()))
		}

		identRes := ParseIdent(c)
		if identRes.Kind != Ok {
			return Result[ast.Expr]{Kind: identRes.Kind, Message: identRes.Message, Span: identRes.Span}
		}
		return Succeed[ast.Expr](ast.NewVariableExpr(identRes.Value, identRes.Value.Span()))
	})
}

func isDigitToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// tryParseCallExpr attempts `ya1 args* ru4 name`. Arguments precede the
// callee name — the resolved reading for spec.md's "argument list precedes
// the name" open question, grounded on py-lex's dedicated FnCallL/FnCallR
// bracket keywords.
func tryParseCallExpr(c *Cursor) Result[ast.Expr] {
	return Once(c, func(c *Cursor) Result[ast.Expr] {
		start := c.CurrentSpan()
		if !MatchKeyword(c, keyword.CallOpen).IsOk() {
			return Unmatched[ast.Expr](start, "not a call expression")
		}
		var args []ast.Expr
		for {
			if MatchKeyword(c, keyword.CallClose).IsOk() {
				break
			}
			argRes := ParseExpr(c)
			if argRes.Kind != Ok {
				return argRes.Upgrade()
			}
			args = append(args, argRes.Value)
		}
		nameRes := ParseIdent(c)
		if nameRes.Kind != Ok {
			return Result[ast.Expr]{Kind: Semantic, Message: "expected a callee name after " + keyword.CallClose, Span: nameRes.Span}
		}
		span := start.Merge(nameRes.Value.Span())
		return Succeed[ast.Expr](ast.NewCallExpr(nameRes.Value, args, span))
	})
}
