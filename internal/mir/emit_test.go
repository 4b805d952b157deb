package mir_test

import (
	"testing"

	"github.com/pin1yin1/pin1c/internal/defs"
	"github.com/pin1yin1/pin1c/internal/lexer"
	"github.com/pin1yin1/pin1c/internal/mir"
	"github.com/pin1yin1/pin1c/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToIREmitsIdentityFunction(t *testing.T) {
	tokens, _ := lexer.Tokenize("t.pyi", "zheng3 jia can1 zheng3 x jie2 han2 zheng3 r wei2 x jia1 1 fen1 fan3 r fen1 jie2")
	res := parser.ParseFnDefine(parser.NewCursor(tokens))
	require.Equal(t, parser.Ok, res.Kind, res.Message)

	fn, declErrs, errs := mir.LowerFunction(res.Value, defs.NewOverloads())
	require.Empty(t, errs)
	require.Empty(t, declErrs)

	item, err := fn.ToIR()
	require.NoError(t, err)
	require.NotNil(t, item.FnDefine)
	assert.Equal(t, "jia.i64", item.FnDefine.Name)
	require.Len(t, item.FnDefine.Params, 1)
	assert.Equal(t, "x", item.FnDefine.Params[0].Name)
	require.Len(t, item.FnDefine.Body.Stmts, 2)

	varDefine := item.FnDefine.Body.Stmts[0].VarDefine
	require.NotNil(t, varDefine)
	assert.Equal(t, "r", varDefine.Name)
	require.NotNil(t, varDefine.Value.Operate)
	assert.Equal(t, "jia1", varDefine.Value.Operate.Op)

	ret := item.FnDefine.Body.Stmts[1].Return
	require.NotNil(t, ret)
	require.NotNil(t, ret.Value)
	require.NotNil(t, ret.Value.Value)
	require.NotNil(t, ret.Value.Value.Variable)
	assert.Equal(t, "r", *ret.Value.Value.Variable)
}

func TestToIRMarksBlockReturnedWhenEveryIfBranchReturns(t *testing.T) {
	// a trailing if/else where both branches return must itself count as
	// "returned" for the enclosing block, even with no bare return after it.
	tokens, _ := lexer.Tokenize("t.pyi", "zheng3 f can1 zheng3 x jie2 han2 ruo4 han2 x tong2 1 jie2 han2 fan3 1 fen1 jie2 ze2 han2 fan3 2 fen1 jie2 jie2")
	res := parser.ParseFnDefine(parser.NewCursor(tokens))
	require.Equal(t, parser.Ok, res.Kind, res.Message)

	fn, declErrs, errs := mir.LowerFunction(res.Value, defs.NewOverloads())
	require.Empty(t, errs)
	require.Empty(t, declErrs)

	item, err := fn.ToIR()
	require.NoError(t, err)
	assert.True(t, item.FnDefine.Body.Returned)

	ifNode := item.FnDefine.Body.Stmts[0].If
	require.NotNil(t, ifNode)
	assert.True(t, ifNode.Clauses[0].Body.Returned)
	require.NotNil(t, ifNode.Else)
	assert.True(t, ifNode.Else.Returned)
}

func TestToIRLeavesBlockUnreturnedWhenIfHasNoElse(t *testing.T) {
	// an if with no else as the last statement: the implicit fallthrough
	// path never returns, so the enclosing block must not be marked
	// Returned even though the one clause it does have always does.
	tokens, _ := lexer.Tokenize("t.pyi", "zheng3 f can1 zheng3 x jie2 han2 ruo4 han2 x tong2 1 jie2 han2 fan3 1 fen1 jie2 jie2")
	res := parser.ParseFnDefine(parser.NewCursor(tokens))
	require.Equal(t, parser.Ok, res.Kind, res.Message)

	fn, declErrs, errs := mir.LowerFunction(res.Value, defs.NewOverloads())
	require.Empty(t, errs)
	require.Empty(t, declErrs)

	item, err := fn.ToIR()
	require.NoError(t, err)
	assert.False(t, item.FnDefine.Body.Returned)

	ifNode := item.FnDefine.Body.Stmts[0].If
	require.NotNil(t, ifNode)
	assert.Nil(t, ifNode.Else)
}

func TestToIRFlattensNestedOperatorsIntoTemporaries(t *testing.T) {
	// build a function calling jia(1 cheng2 2, 3) so the multiplication's
	// result must be flattened into a temporary before the call.
	addTokens, _ := lexer.Tokenize("t.pyi", "zheng3 jia can1 zheng3 a zheng3 b jie2 han2 fan3 a jia1 b fen1 jie2")
	addRes := parser.ParseFnDefine(parser.NewCursor(addTokens))
	require.Equal(t, parser.Ok, addRes.Kind, addRes.Message)

	overloads := defs.NewOverloads()
	_, declErrs, errs := mir.LowerFunction(addRes.Value, overloads)
	require.Empty(t, errs)
	require.Empty(t, declErrs)

	callerTokens, _ := lexer.Tokenize("t.pyi", "zheng3 f can1 jie2 han2 fan3 ya1 1 cheng2 2 3 ru4 jia fen1 jie2")
	callerRes := parser.ParseFnDefine(parser.NewCursor(callerTokens))
	require.Equal(t, parser.Ok, callerRes.Kind, callerRes.Message)

	fn, declErrs2, errs2 := mir.LowerFunction(callerRes.Value, overloads)
	require.Empty(t, errs2)
	require.Empty(t, declErrs2)

	item, err := fn.ToIR()
	require.NoError(t, err)
	// a temporary VarDefine for the "1 cheng2 2" multiplication must
	// precede the return statement that calls jia with it.
	require.Len(t, item.FnDefine.Body.Stmts, 2)
	tempDefine := item.FnDefine.Body.Stmts[0].VarDefine
	require.NotNil(t, tempDefine)
	require.NotNil(t, tempDefine.Value.Operate)
	assert.Equal(t, "cheng2", tempDefine.Value.Operate.Op)

	ret := item.FnDefine.Body.Stmts[1].Return
	require.NotNil(t, ret)
	require.NotNil(t, ret.Value.FnCall)
	assert.Len(t, ret.Value.FnCall.Args, 2)
}
