package defs_test

import (
	"testing"

	"github.com/pin1yin1/pin1c/internal/declare"
	"github.com/pin1yin1/pin1c/internal/defs"
	"github.com/pin1yin1/pin1c/internal/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverloadsCandidatesByArity(t *testing.T) {
	o := defs.NewOverloads()
	require.NoError(t, o.Register(defs.FnSig{Name: "jia", Mangled: "jia.i32.i32", Params: []ir.Type{ir.NewPrimitive(ir.I32), ir.NewPrimitive(ir.I32)}, Return: ir.NewPrimitive(ir.I32)}))
	require.NoError(t, o.Register(defs.FnSig{Name: "jia", Mangled: "jia.f64.f64", Params: []ir.Type{ir.NewPrimitive(ir.F64), ir.NewPrimitive(ir.F64)}, Return: ir.NewPrimitive(ir.F64)}))
	require.NoError(t, o.Register(defs.FnSig{Name: "jia", Mangled: "jia.i32", Params: []ir.Type{ir.NewPrimitive(ir.I32)}, Return: ir.NewPrimitive(ir.I32)}))

	two := o.CandidatesByArity("jia", 2)
	assert.Len(t, two, 2)
	one := o.CandidatesByArity("jia", 1)
	assert.Len(t, one, 1)
	assert.Empty(t, o.CandidatesByArity("jia", 3))
}

func TestOverloadsRejectsExactRedeclaration(t *testing.T) {
	o := defs.NewOverloads()
	sig := defs.FnSig{Name: "jia", Mangled: "jia.i32", Params: []ir.Type{ir.NewPrimitive(ir.I32)}, Return: ir.NewPrimitive(ir.I32)}
	require.NoError(t, o.Register(sig))
	assert.Error(t, o.Register(sig))
}

func TestScopesShadowing(t *testing.T) {
	s := defs.NewScopes()
	require.NoError(t, s.Declare("x", defs.Var{Group: declare.GroupIdx(0)}))
	s.Push()
	require.NoError(t, s.Declare("x", defs.Var{Group: declare.GroupIdx(1)}))
	v, ok := s.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, declare.GroupIdx(1), v.Group)
	s.Pop()
	v, ok = s.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, declare.GroupIdx(0), v.Group)
}

func TestScopesRejectsSameScopeRedeclaration(t *testing.T) {
	s := defs.NewScopes()
	require.NoError(t, s.Declare("x", defs.Var{}))
	assert.Error(t, s.Declare("x", defs.Var{}))
}

func TestCheckAssignableRejectsConstParams(t *testing.T) {
	s := defs.NewScopes()
	require.NoError(t, s.Declare("p", defs.Var{Const: true}))
	assert.Error(t, s.CheckAssignable("p"))
	assert.Error(t, s.CheckAssignable("undeclared"))

	require.NoError(t, s.Declare("local", defs.Var{Const: false}))
	assert.NoError(t, s.CheckAssignable("local"))
}
