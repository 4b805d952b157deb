package parser

import (
	"github.com/pin1yin1/pin1c/internal/ast"
	"github.com/pin1yin1/pin1c/internal/keyword"
	"github.com/pin1yin1/pin1c/internal/lexer"
)

// ParseParam parses a single `ty name` parameter.
func ParseParam(c *Cursor) Result[*ast.Param] {
	return Once(c, func(c *Cursor) Result[*ast.Param] {
		typeRes := ParseTypeExpr(c)
		if typeRes.Kind != Ok {
			return Result[*ast.Param]{Kind: typeRes.Kind, Message: typeRes.Message, Span: typeRes.Span}
		}
		nameRes := ParseIdent(c)
		if nameRes.Kind != Ok {
			r := nameRes.Upgrade()
			return Result[*ast.Param]{Kind: r.Kind, Message: r.Message, Span: r.Span}
		}
		span := typeRes.Value.Span().Merge(nameRes.Value.Span())
		return Succeed(ast.NewParam(typeRes.Value, nameRes.Value, span))
	})
}

// ParseFnDefine parses `ty name can1 params jie2 body`. The signature
// commits once can1 (the parameter-open marker) is seen: a missing body
// past that point is Semantic, not Unmatch, grounded on
// pin1yin1-grammar's FnDefine::parse (Symbol::Parameter.parse_or_unmatch
// then CodeBlock::parse().must_match()).
func ParseFnDefine(c *Cursor) Result[*ast.FnDefine] {
	return Once(c, func(c *Cursor) Result[*ast.FnDefine] {
		start := c.CurrentSpan()
		retRes := ParseTypeExpr(c)
		if retRes.Kind != Ok {
			return Result[*ast.FnDefine]{Kind: retRes.Kind, Message: retRes.Message, Span: retRes.Span}
		}
		nameRes := ParseIdent(c)
		if nameRes.Kind != Ok {
			return Unmatched[*ast.FnDefine](nameRes.Span, "expected a function name")
		}
		if !MatchKeyword(c, keyword.ParamMarker).IsOk() {
			return Unmatched[*ast.FnDefine](c.CurrentSpan(), "expected %q to start parameters", keyword.ParamMarker)
		}

		var params []*ast.Param
		for {
			if MatchKeyword(c, keyword.BlockClose).IsOk() {
				break
			}
			paramRes := ParseParam(c)
			if paramRes.Kind != Ok {
				return Fail[*ast.FnDefine](paramRes.Span, "%s", paramRes.Message)
			}
			params = append(params, paramRes.Value)
		}

		bodyRes := ParseBlock(c)
		if bodyRes.Kind != Ok {
			return Fail[*ast.FnDefine](bodyRes.Span, "expected a function body: %s", bodyRes.Message)
		}
		span := start.Merge(bodyRes.Value.Span())
		return Succeed(ast.NewFnDefine(retRes.Value, nameRes.Value, params, bodyRes.Value, span))
	})
}

// ParseFile parses every function definition in the token stream in
// order, stopping at end of input. A trailing Unmatch with leftover
// tokens is reported as a Semantic error: every top-level item must be a
// function definition.
func ParseFile(tokens []lexer.Token) Result[*ast.File] {
	c := NewCursor(tokens)
	start := c.CurrentSpan()
	var fns []*ast.FnDefine
	for !c.AtEnd() {
		fnRes := ParseFnDefine(c)
		if fnRes.Kind == Ok {
			fns = append(fns, fnRes.Value)
			continue
		}
		return Result[*ast.File]{Kind: Semantic, Message: fnRes.Message, Span: fnRes.Span}
	}
	span := start
	if len(fns) > 0 {
		span = fns[0].Span().Merge(fns[len(fns)-1].Span())
	}
	return Succeed(ast.NewFile(fns, span))
}
