package parser

import (
	"strings"

	"github.com/pin1yin1/pin1c/internal/ast"
	"github.com/pin1yin1/pin1c/internal/keyword"
)

// ParseStmt dispatches to the concrete statement rule matching the next
// tokens, trying alternatives in turn and relying on Once's rewind so a
// failed alternative never consumes input.
func ParseStmt(c *Cursor) Result[ast.Stmt] {
	if res := tryStmt(ParseCommentStmt, c); res.Kind != Unmatch {
		return res
	}
	if res := tryStmt(ParseIf, c); res.Kind != Unmatch {
		return res
	}
	if res := tryStmt(ParseWhile, c); res.Kind != Unmatch {
		return res
	}
	if res := tryStmt(ParseReturn, c); res.Kind != Unmatch {
		return res
	}
	if res := tryStmt(ParseVarDefine, c); res.Kind != Unmatch {
		return res
	}
	if res := tryStmt(ParseVarStore, c); res.Kind != Unmatch {
		return res
	}
	return tryStmt(ParseExprStmt, c)
}

func tryStmt[T ast.Stmt](parse func(*Cursor) Result[T], c *Cursor) Result[ast.Stmt] {
	res := Once(c, parse)
	if res.Kind == Ok {
		return Succeed[ast.Stmt](res.Value)
	}
	return Result[ast.Stmt]{Kind: res.Kind, Message: res.Message, Span: res.Span}
}

// ParseCommentStmt parses `shi4 <words>* jie2`, grounded on
// pin1yin1-grammar's parse::syntax Comment rule. The comment text is kept
// on the AST node and dropped during AST->MIR lowering.
func ParseCommentStmt(c *Cursor) Result[*ast.CommentStmt] {
	return Once(c, func(c *Cursor) Result[*ast.CommentStmt] {
		start := c.CurrentSpan()
		if !MatchKeyword(c, keyword.CommentOpen).IsOk() {
			return Unmatched[*ast.CommentStmt](start, "not a comment")
		}
		var words []string
		for {
			tok, ok := c.Peek()
			if !ok {
				return Fail[*ast.CommentStmt](c.CurrentSpan(), "unterminated comment")
			}
			if tok.Value == keyword.BlockClose {
				c.Next()
				break
			}
			c.Next()
			words = append(words, tok.Value)
		}
		span := start.Merge(c.CurrentSpan())
		return Succeed(ast.NewCommentStmt(strings.Join(words, " "), span))
	})
}

// ParseVarDefine parses `ty name wei2 value fen1`. Ambiguity with
// ParseVarStore (a bare complex-named type is itself a single identifier)
// resolves via backtracking: Once rewinds entirely if the second
// identifier or wei2 fails to match.
func ParseVarDefine(c *Cursor) Result[*ast.VarDefine] {
	return Once(c, func(c *Cursor) Result[*ast.VarDefine] {
		start := c.CurrentSpan()
		typeRes := ParseTypeExpr(c)
		if typeRes.Kind != Ok {
			return Result[*ast.VarDefine]{Kind: typeRes.Kind, Message: typeRes.Message, Span: typeRes.Span}
		}
		nameRes := ParseIdent(c)
		if nameRes.Kind != Ok {
			return Result[*ast.VarDefine]{Kind: nameRes.Kind, Message: nameRes.Message, Span: nameRes.Span}
		}
		if !MatchKeyword(c, keyword.Assign).IsOk() {
			return Unmatched[*ast.VarDefine](c.CurrentSpan(), "expected %q", keyword.Assign)
		}
		valueRes := ParseExpr(c)
		if valueRes.Kind != Ok {
			r := valueRes.Upgrade()
			return Result[*ast.VarDefine]{Kind: r.Kind, Message: r.Message, Span: r.Span}
		}
		if !MustMatchKeyword(c, keyword.Semicolon).IsOk() {
			return Fail[*ast.VarDefine](c.CurrentSpan(), "expected %q to end a variable definition", keyword.Semicolon)
		}
		span := start.Merge(c.CurrentSpan())
		return Succeed(ast.NewVarDefine(typeRes.Value, nameRes.Value, valueRes.Value, span))
	})
}

// ParseVarStore parses `name wei2 value fen1`.
func ParseVarStore(c *Cursor) Result[*ast.VarStore] {
	return Once(c, func(c *Cursor) Result[*ast.VarStore] {
		start := c.CurrentSpan()
		nameRes := ParseIdent(c)
		if nameRes.Kind != Ok {
			return Result[*ast.VarStore]{Kind: nameRes.Kind, Message: nameRes.Message, Span: nameRes.Span}
		}
		if !MatchKeyword(c, keyword.Assign).IsOk() {
			return Unmatched[*ast.VarStore](c.CurrentSpan(), "expected %q", keyword.Assign)
		}
		valueRes := ParseExpr(c)
		if valueRes.Kind != Ok {
			r := valueRes.Upgrade()
			return Result[*ast.VarStore]{Kind: r.Kind, Message: r.Message, Span: r.Span}
		}
		if !MustMatchKeyword(c, keyword.Semicolon).IsOk() {
			return Fail[*ast.VarStore](c.CurrentSpan(), "expected %q to end an assignment", keyword.Semicolon)
		}
		span := start.Merge(c.CurrentSpan())
		return Succeed(ast.NewVarStore(nameRes.Value, valueRes.Value, span))
	})
}

// ParseReturn parses `fan3 [value] fen1`.
func ParseReturn(c *Cursor) Result[*ast.Return] {
	return Once(c, func(c *Cursor) Result[*ast.Return] {
		start := c.CurrentSpan()
		if !MatchKeyword(c, keyword.Return).IsOk() {
			return Unmatched[*ast.Return](start, "expected %q", keyword.Return)
		}
		var value ast.Expr
		if valRes, res := Try(c, ParseExpr); res.Kind == Semantic {
			return Fail[*ast.Return](res.Span, "%s", res.Message)
		} else if valRes != nil {
			value = *valRes
		}
		if !MustMatchKeyword(c, keyword.Semicolon).IsOk() {
			return Fail[*ast.Return](c.CurrentSpan(), "expected %q to end a return statement", keyword.Semicolon)
		}
		span := start.Merge(c.CurrentSpan())
		return Succeed(ast.NewReturn(value, span))
	})
}

// ParseExprStmt lifts a call expression used in statement position,
// terminated by fen1.
func ParseExprStmt(c *Cursor) Result[*ast.ExprStmt] {
	return Once(c, func(c *Cursor) Result[*ast.ExprStmt] {
		start := c.CurrentSpan()
		exprRes := ParseExpr(c)
		if exprRes.Kind != Ok {
			return Result[*ast.ExprStmt]{Kind: exprRes.Kind, Message: exprRes.Message, Span: exprRes.Span}
		}
		if !MustMatchKeyword(c, keyword.Semicolon).IsOk() {
			return Fail[*ast.ExprStmt](c.CurrentSpan(), "expected %q to end an expression statement", keyword.Semicolon)
		}
		span := start.Merge(c.CurrentSpan())
		return Succeed(ast.NewExprStmt(exprRes.Value, span))
	})
}

// ParseBlock parses `han2 stmt* jie2`.
func ParseBlock(c *Cursor) Result[*ast.Block] {
	return Once(c, func(c *Cursor) Result[*ast.Block] {
		start := c.CurrentSpan()
		if !MatchKeyword(c, keyword.BlockOpen).IsOk() {
			return Unmatched[*ast.Block](start, "expected %q to open a block", keyword.BlockOpen)
		}
		var stmts []ast.Stmt
		for {
			if MatchKeyword(c, keyword.BlockClose).IsOk() {
				break
			}
			stmtRes := ParseStmt(c)
			if stmtRes.Kind != Ok {
				return Fail[*ast.Block](stmtRes.Span, "%s", stmtRes.Message)
			}
			stmts = append(stmts, stmtRes.Value)
		}
		span := start.Merge(c.CurrentSpan())
		return Succeed(ast.NewBlock(stmts, span))
	})
}

// ParseCondition parses the statement-then-tail-expression sequence used
// by If/While headers: zero or more ordinary (semicolon-terminated)
// statements followed by a single tail expression with no terminator,
// whose value is the test. Grounded on spec.md's "If / while conditions"
// rule.
func ParseCondition(c *Cursor) Result[*ast.Condition] {
	return Once(c, func(c *Cursor) Result[*ast.Condition] {
		start := c.CurrentSpan()
		var stmts []ast.Stmt
		for {
			stmtRes := Once(c, ParseStmt)
			if stmtRes.Kind != Ok {
				break
			}
			stmts = append(stmts, stmtRes.Value)
		}
		tailRes := ParseExpr(c)
		if tailRes.Kind != Ok {
			return Fail[*ast.Condition](tailRes.Span, "expected a condition expression: %s", tailRes.Message)
		}
		span := start.Merge(tailRes.Value.Span())
		return Succeed(ast.NewCondition(stmts, tailRes.Value, span))
	})
}

// ParseIf parses `ruo4 han2 cond jie2 block (ze2 ruo4 han2 cond jie2 block)* (ze2 block)?`.
func ParseIf(c *Cursor) Result[*ast.If] {
	return Once(c, func(c *Cursor) Result[*ast.If] {
		start := c.CurrentSpan()
		clause, res := parseIfClause(c)
		if res.Kind != Ok {
			return Result[*ast.If]{Kind: res.Kind, Message: res.Message, Span: res.Span}
		}
		clauses := []*ast.IfClause{clause}
		var elseBlock *ast.Block
		for {
			mark := c.Mark()
			if !MatchKeyword(c, keyword.Else).IsOk() {
				break
			}
			if MatchKeyword(c, keyword.If).IsOk() {
				nextClause, res := parseIfClause(c)
				if res.Kind != Ok {
					return Fail[*ast.If](res.Span, "%s", res.Message)
				}
				clauses = append(clauses, nextClause)
				continue
			}
			blockRes := ParseBlock(c)
			if blockRes.Kind != Ok {
				c.Reset(mark)
				break
			}
			elseBlock = blockRes.Value
			break
		}
		span := start.Merge(c.CurrentSpan())
		return Succeed(ast.NewIf(clauses, elseBlock, span))
	})
}

func parseIfClause(c *Cursor) (*ast.IfClause, Result[*ast.IfClause]) {
	start := c.CurrentSpan()
	if !MatchKeyword(c, keyword.If).IsOk() {
		r := Unmatched[*ast.IfClause](start, "expected %q", keyword.If)
		return nil, r
	}
	if !MustMatchKeyword(c, keyword.BlockOpen).IsOk() {
		r := Fail[*ast.IfClause](c.CurrentSpan(), "expected %q to open a condition", keyword.BlockOpen)
		return nil, r
	}
	condRes := ParseCondition(c)
	if condRes.Kind != Ok {
		r := Fail[*ast.IfClause](condRes.Span, "%s", condRes.Message)
		return nil, r
	}
	if !MustMatchKeyword(c, keyword.BlockClose).IsOk() {
		r := Fail[*ast.IfClause](c.CurrentSpan(), "expected %q to close a condition", keyword.BlockClose)
		return nil, r
	}
	bodyRes := ParseBlock(c)
	if bodyRes.Kind != Ok {
		r := Fail[*ast.IfClause](bodyRes.Span, "%s", bodyRes.Message)
		return nil, r
	}
	span := start.Merge(bodyRes.Value.Span())
	clause := ast.NewIfClause(condRes.Value, bodyRes.Value, span)
	return clause, Succeed(clause)
}

// ParseWhile parses `chong2 han2 cond jie2 block`.
func ParseWhile(c *Cursor) Result[*ast.While] {
	return Once(c, func(c *Cursor) Result[*ast.While] {
		start := c.CurrentSpan()
		if !MatchKeyword(c, keyword.While).IsOk() {
			return Unmatched[*ast.While](start, "expected %q", keyword.While)
		}
		if !MustMatchKeyword(c, keyword.BlockOpen).IsOk() {
			return Fail[*ast.While](c.CurrentSpan(), "expected %q to open a condition", keyword.BlockOpen)
		}
		condRes := ParseCondition(c)
		if condRes.Kind != Ok {
			return Fail[*ast.While](condRes.Span, "%s", condRes.Message)
		}
		if !MustMatchKeyword(c, keyword.BlockClose).IsOk() {
			return Fail[*ast.While](c.CurrentSpan(), "expected %q to close a condition", keyword.BlockClose)
		}
		bodyRes := ParseBlock(c)
		if bodyRes.Kind != Ok {
			return Fail[*ast.While](bodyRes.Span, "%s", bodyRes.Message)
		}
		span := start.Merge(bodyRes.Value.Span())
		return Succeed(ast.NewWhile(condRes.Value, bodyRes.Value, span))
	})
}
