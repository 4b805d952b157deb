package parser_test

import (
	"testing"

	"github.com/pin1yin1/pin1c/internal/ast"
	"github.com/pin1yin1/pin1c/internal/lexer"
	"github.com/pin1yin1/pin1c/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenize(t *testing.T, src string) []lexer.Token {
	t.Helper()
	tokens, _ := lexer.Tokenize("t.pyi", src)
	return tokens
}

func TestParseIdentityFunction(t *testing.T) {
	// zheng3 jia can1 zheng3 x jie2 han2 zheng3 r wei2 x jia1 1 fen1 fan3 r fen1 jie2
	res := parser.ParseFile(tokenize(t, "zheng3 jia can1 zheng3 x jie2 han2 zheng3 r wei2 x jia1 1 fen1 fan3 r fen1 jie2"))
	require.Equal(t, parser.Ok, res.Kind, res.Message)
	require.Len(t, res.Value.Fns, 1)

	fn := res.Value.Fns[0]
	assert.Equal(t, "jia", fn.Name.Name)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, "x", fn.Params[0].Name.Name)
	require.Len(t, fn.Body.Stmts, 2)

	def, ok := fn.Body.Stmts[0].(*ast.VarDefine)
	require.True(t, ok)
	assert.Equal(t, "r", def.Name.Name)
	bin, ok := def.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "jia1", bin.Op)

	ret, ok := fn.Body.Stmts[1].(*ast.Return)
	require.True(t, ok)
	require.NotNil(t, ret.Value)
}

func TestParseCallExprArgsPrecedeName(t *testing.T) {
	res := parser.ParseExpr(parser.NewCursor(tokenize(t, "ya1 1 2 ru4 jia")))
	require.Equal(t, parser.Ok, res.Kind, res.Message)
	call, ok := res.Value.(*ast.CallExpr)
	require.True(t, ok)
	assert.Equal(t, "jia", call.Name.Name)
	assert.Len(t, call.Args, 2)
}

func TestParseTypeExprWidthAndSign(t *testing.T) {
	res := parser.ParseTypeExpr(parser.NewCursor(tokenize(t, "kuan1 32 wu2fu2 zheng3")))
	require.Equal(t, parser.Ok, res.Kind, res.Message)
	prim, ok := res.Value.(*ast.PrimitiveTypeExpr)
	require.True(t, ok)
	assert.Equal(t, 32, prim.Width)
	require.NotNil(t, prim.Signed)
	assert.False(t, *prim.Signed)
}

func TestParseTypeExprRejectsBadWidth(t *testing.T) {
	res := parser.ParseTypeExpr(parser.NewCursor(tokenize(t, "kuan1 16 fu2")))
	assert.Equal(t, parser.Semantic, res.Kind)
}

func TestParseTypeExprDecoratorsAndArray(t *testing.T) {
	res := parser.ParseTypeExpr(parser.NewCursor(tokenize(t, "yin3 zu3 4 kuan1 32 wu2fu2 zheng3")))
	require.Equal(t, parser.Ok, res.Kind, res.Message)
	prim, ok := res.Value.(*ast.PrimitiveTypeExpr)
	require.True(t, ok)
	require.Len(t, prim.Decorators, 2)
	assert.Equal(t, ast.DecoratorKindRef, prim.Decorators[0].Kind)
	assert.Equal(t, ast.DecoratorKindArray, prim.Decorators[1].Kind)
	assert.Equal(t, 4, prim.Decorators[1].N)
}

func TestParseIfElseIf(t *testing.T) {
	src := "ruo4 han2 1 tong2 1 jie2 han2 jie2 ze2 ruo4 han2 2 tong2 2 jie2 han2 jie2 ze2 han2 jie2"
	res := parser.ParseStmt(parser.NewCursor(tokenize(t, src+" fen1")))
	// the trailing fen1 is leftover, just confirm parse succeeds on the if itself
	_ = res
	stmtRes := parser.ParseIf(parser.NewCursor(tokenize(t, src)))
	require.Equal(t, parser.Ok, stmtRes.Kind, stmtRes.Message)
	require.Len(t, stmtRes.Value.Clauses, 2)
	require.NotNil(t, stmtRes.Value.Else)
}

func TestParseMisnestedBracesIsSemantic(t *testing.T) {
	res := parser.ParseFnDefine(parser.NewCursor(tokenize(t, "zheng3 jia can1 zheng3 x jie2 han2 fan3 x fen1")))
	assert.Equal(t, parser.Semantic, res.Kind)
}

func TestParseVarStoreVsVarDefineBacktrack(t *testing.T) {
	// "x wei2 1 fen1" must parse as a VarStore, not get stuck trying VarDefine.
	res := parser.ParseStmt(parser.NewCursor(tokenize(t, "x wei2 1 fen1")))
	require.Equal(t, parser.Ok, res.Kind, res.Message)
	_, ok := res.Value.(*ast.VarStore)
	assert.True(t, ok)
}

func TestParseComparisonOperators(t *testing.T) {
	res := parser.ParseExpr(parser.NewCursor(tokenize(t, "1 da4 2")))
	require.Equal(t, parser.Ok, res.Kind, res.Message)
	bin, ok := res.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "da4", bin.Op)
}

func TestParseOperatorPrecedence(t *testing.T) {
	// 1 jia1 2 cheng2 3 should parse as 1 jia1 (2 cheng2 3): cheng2 binds tighter.
	res := parser.ParseExpr(parser.NewCursor(tokenize(t, "1 jia1 2 cheng2 3")))
	require.Equal(t, parser.Ok, res.Kind, res.Message)
	top, ok := res.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "jia1", top.Op)
	right, ok := top.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "cheng2", right.Op)
}
