package mir_test

import (
	"testing"

	"github.com/pin1yin1/pin1c/internal/declare"
	"github.com/pin1yin1/pin1c/internal/defs"
	"github.com/pin1yin1/pin1c/internal/ir"
	"github.com/pin1yin1/pin1c/internal/lexer"
	"github.com/pin1yin1/pin1c/internal/mir"
	"github.com/pin1yin1/pin1c/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLowerIdentityFunctionResolvesReturnTypeToI64(t *testing.T) {
	tokens, _ := lexer.Tokenize("t.pyi", "zheng3 jia can1 zheng3 x jie2 han2 zheng3 r wei2 x jia1 1 fen1 fan3 r fen1 jie2")
	res := parser.ParseFnDefine(parser.NewCursor(tokens))
	require.Equal(t, parser.Ok, res.Kind, res.Message)

	overloads := defs.NewOverloads()
	fn, declErrs, errs := mir.LowerFunction(res.Value, overloads)
	require.Empty(t, errs)
	require.Empty(t, declErrs)

	retBranch, ok := fn.Graph.Resolve(fn.ReturnType)
	require.True(t, ok)
	assert.Equal(t, ir.I64, *retBranch.Type.Primitive)
}

func TestLowerCallResolvesOverloadByArgumentType(t *testing.T) {
	addTokens, _ := lexer.Tokenize("t.pyi", "zheng3 jia can1 zheng3 x zheng3 y jie2 han2 fan3 x jia1 y fen1 jie2")
	addRes := parser.ParseFnDefine(parser.NewCursor(addTokens))
	require.Equal(t, parser.Ok, addRes.Kind, addRes.Message)

	overloads := defs.NewOverloads()
	_, declErrs, errs := mir.LowerFunction(addRes.Value, overloads)
	require.Empty(t, errs)
	require.Empty(t, declErrs)

	callerTokens, _ := lexer.Tokenize("t.pyi", "zheng3 callit can1 jie2 han2 fan3 ya1 1 2 ru4 jia fen1 jie2")
	callerRes := parser.ParseFnDefine(parser.NewCursor(callerTokens))
	require.Equal(t, parser.Ok, callerRes.Kind, callerRes.Message)

	fn, declErrs2, errs2 := mir.LowerFunction(callerRes.Value, overloads)
	require.Empty(t, errs2)
	require.Empty(t, declErrs2)

	returnStmt := fn.Body.Stmts[0]
	require.Equal(t, mir.StmtReturn, returnStmt.Kind)
	callExpr := returnStmt.Value
	require.Equal(t, mir.ExprCall, callExpr.Kind)
	b, ok := fn.Graph.Resolve(callExpr.Group)
	require.True(t, ok)
	sig := b.Payload.(defs.FnSig)
	assert.Equal(t, "jia", sig.Name)
}

// TestLowerCallResolvesOverloadByNonI64ArgumentType guards against the
// call group's literal argument being forced onto some fixed default
// before the call narrows it: shou1 takes only kuan1 8 wu2fu2 zheng3
// (u8), so the literal "1" passed to it must solve as u8 through the
// call's own Requirement, not get pinned to i64 first and kill the
// overload via cascade.
func TestLowerCallResolvesOverloadByNonI64ArgumentType(t *testing.T) {
	calleeTokens, _ := lexer.Tokenize("t.pyi", "kuan1 8 wu2fu2 zheng3 shou1 can1 kuan1 8 wu2fu2 zheng3 x jie2 han2 fan3 x fen1 jie2")
	calleeRes := parser.ParseFnDefine(parser.NewCursor(calleeTokens))
	require.Equal(t, parser.Ok, calleeRes.Kind, calleeRes.Message)

	overloads := defs.NewOverloads()
	_, declErrs, errs := mir.LowerFunction(calleeRes.Value, overloads)
	require.Empty(t, errs)
	require.Empty(t, declErrs)

	callerTokens, _ := lexer.Tokenize("t.pyi", "kuan1 8 wu2fu2 zheng3 caller can1 jie2 han2 fan3 ya1 1 ru4 shou1 fen1 jie2")
	callerRes := parser.ParseFnDefine(parser.NewCursor(callerTokens))
	require.Equal(t, parser.Ok, callerRes.Kind, callerRes.Message)

	fn, declErrs2, errs2 := mir.LowerFunction(callerRes.Value, overloads)
	require.Empty(t, errs2)
	require.Empty(t, declErrs2)

	returnStmt := fn.Body.Stmts[0]
	require.Equal(t, mir.StmtReturn, returnStmt.Kind)
	callExpr := returnStmt.Value
	require.Equal(t, mir.ExprCall, callExpr.Kind)

	litBranch, ok := fn.Graph.Resolve(callExpr.CallArgs[0].Group)
	require.True(t, ok)
	assert.Equal(t, ir.U8, *litBranch.Type.Primitive)
}

// TestLowerIsolatedOverloadedCallIsAmbiguous models the scenario where two
// overloads differ only by parameter type (i32 vs u32) and the sole call
// site's argument is an unconstrained literal: nothing narrows either
// candidate, so the call group must solve as genuinely ambiguous
// (MultSelected), not silently collapse to one pinned default.
func TestLowerIsolatedOverloadedCallIsAmbiguous(t *testing.T) {
	overloads := defs.NewOverloads()

	iTokens, _ := lexer.Tokenize("t.pyi", "kuan1 32 zheng3 f can1 kuan1 32 zheng3 x jie2 han2 fan3 x fen1 jie2")
	iRes := parser.ParseFnDefine(parser.NewCursor(iTokens))
	require.Equal(t, parser.Ok, iRes.Kind, iRes.Message)
	_, declErrs, errs := mir.LowerFunction(iRes.Value, overloads)
	require.Empty(t, errs)
	require.Empty(t, declErrs)

	uTokens, _ := lexer.Tokenize("t.pyi", "kuan1 32 wu2fu2 zheng3 f can1 kuan1 32 wu2fu2 zheng3 x jie2 han2 fan3 x fen1 jie2")
	uRes := parser.ParseFnDefine(parser.NewCursor(uTokens))
	require.Equal(t, parser.Ok, uRes.Kind, uRes.Message)
	_, declErrs2, errs2 := mir.LowerFunction(uRes.Value, overloads)
	require.Empty(t, errs2)
	require.Empty(t, declErrs2)

	// A bare expression statement, not a return: the call's result is
	// never merged into anything, so only the call group's own ambiguity
	// can explain a declare error here.
	callerTokens, _ := lexer.Tokenize("t.pyi", "zheng3 caller can1 jie2 han2 ya1 1 ru4 f fen1 jie2")
	callerRes := parser.ParseFnDefine(parser.NewCursor(callerTokens))
	require.Equal(t, parser.Ok, callerRes.Kind, callerRes.Message)

	fn, declErrs3, errs3 := mir.LowerFunction(callerRes.Value, overloads)
	require.Empty(t, errs3)
	require.NotEmpty(t, declErrs3)

	exprStmt := fn.Body.Stmts[0]
	require.Equal(t, mir.StmtExpr, exprStmt.Kind)
	callExpr := exprStmt.Value

	// Both the call group and the literal argument's own group (narrowed
	// to {i32, u32} by the call's requirements, per NeverUsed pruning)
	// report the same MultSelected ambiguity: neither disambiguates the
	// other without some further use.
	var callGroupErr *declare.Error
	for _, e := range declErrs3 {
		if e.Group == callExpr.Group {
			callGroupErr = e
		}
	}
	require.NotNil(t, callGroupErr, "expected a declare error on the call group itself")
	assert.Equal(t, declare.MultSelected, callGroupErr.Kind)
}

func TestLowerBitwiseRestrictsToIntegers(t *testing.T) {
	tokens, _ := lexer.Tokenize("t.pyi", "zheng3 f can1 jie2 han2 zheng3 r wei2 1 wei4yu3 2 fen1 fan3 r fen1 jie2")
	res := parser.ParseFnDefine(parser.NewCursor(tokens))
	require.Equal(t, parser.Ok, res.Kind, res.Message)

	overloads := defs.NewOverloads()
	fn, declErrs, errs := mir.LowerFunction(res.Value, overloads)
	require.Empty(t, errs)
	require.Empty(t, declErrs)

	varDefine := fn.Body.Stmts[0]
	b, ok := fn.Graph.Resolve(varDefine.Value.Group)
	require.True(t, ok)
	assert.True(t, ir.IsInteger(*b.Type.Primitive))
}

func TestLowerCastPinsIntLiteralToTargetWidth(t *testing.T) {
	tokens, _ := lexer.Tokenize("t.pyi", "kuan1 8 wu2fu2 zheng3 f can1 jie2 han2 fan3 zhuan3 kuan1 8 wu2fu2 zheng3 200 fen1 jie2")
	res := parser.ParseFnDefine(parser.NewCursor(tokens))
	require.Equal(t, parser.Ok, res.Kind, res.Message)

	overloads := defs.NewOverloads()
	fn, declErrs, errs := mir.LowerFunction(res.Value, overloads)
	require.Empty(t, errs)
	require.Empty(t, declErrs)

	ret := fn.Body.Stmts[0]
	cast := ret.Value
	require.Equal(t, mir.ExprOperate, cast.Kind)
	castBranch, ok := fn.Graph.Resolve(cast.Group)
	require.True(t, ok)
	assert.Equal(t, ir.U8, *castBranch.Type.Primitive)

	litBranch, ok := fn.Graph.Resolve(cast.Operands[0].Group)
	require.True(t, ok)
	assert.Equal(t, ir.U8, *litBranch.Type.Primitive)
}
