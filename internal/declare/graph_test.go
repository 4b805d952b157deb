package declare_test

import (
	"testing"

	"github.com/pin1yin1/pin1c/internal/declare"
	"github.com/pin1yin1/pin1c/internal/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func literalGroup(g *declare.Graph, prims []ir.PrimitiveType) declare.GroupIdx {
	branches := make([]*declare.Branch, len(prims))
	for i, p := range prims {
		branches[i] = declare.NewBranch(ir.NewPrimitive(p), p)
	}
	return g.BuildGroup(branches)
}

func TestSolveSingleBranchGroup(t *testing.T) {
	g := declare.NewGraph()
	idx := literalGroup(g, []ir.PrimitiveType{ir.I64})
	assert.Empty(t, g.Solve())
	b, ok := g.Resolve(idx)
	require.True(t, ok)
	assert.Equal(t, ir.I64, *b.Type.Primitive)
}

func TestSolveAmbiguousGroupReportsMultSelected(t *testing.T) {
	g := declare.NewGraph()
	literalGroup(g, ir.IntegerPrimitives)
	errs := g.Solve()
	require.Len(t, errs, 1)
	assert.Equal(t, declare.MultSelected, errs[0].Kind)
}

func TestDeclareTypeNarrowsToOneBranch(t *testing.T) {
	g := declare.NewGraph()
	idx := literalGroup(g, ir.IntegerPrimitives)
	err := g.DeclareType(idx, ir.NewPrimitive(ir.I32))
	require.Nil(t, err)
	assert.Empty(t, g.Solve())
	b, ok := g.Resolve(idx)
	require.True(t, ok)
	assert.Equal(t, ir.I32, *b.Type.Primitive)
}

func TestDeclareTypeRejectsUnavailableType(t *testing.T) {
	g := declare.NewGraph()
	idx := literalGroup(g, ir.FloatPrimitives)
	err := g.DeclareType(idx, ir.NewPrimitive(ir.I32))
	require.NotNil(t, err)
	assert.Equal(t, declare.Unexpect, err.Kind)
}

func TestRemoveBranchCascadesThroughDependentGroup(t *testing.T) {
	g := declare.NewGraph()
	arg := literalGroup(g, ir.IntegerPrimitives)

	// Two overloads, one requiring u8 and one i16: building the call
	// already prunes arg (via NeverUsed) down to just {u8, i16}, but the
	// call itself stays genuinely ambiguous between them.
	call := g.BuildGroup([]*declare.Branch{
		declare.NewBranchWith(ir.NewPrimitive(ir.Bool), "overload(u8)->bool", declare.RequireType(arg, ir.NewPrimitive(ir.U8))),
		declare.NewBranchWith(ir.NewPrimitive(ir.Bool), "overload(i16)->bool", declare.RequireType(arg, ir.NewPrimitive(ir.I16))),
	})

	// Force arg's u8 branch away directly (standing in for some
	// unrelated narrowing elsewhere, e.g. a merge with another group):
	// the call's u8-requiring branch no longer holds and must cascade
	// away too, leaving the call uniquely solved to the i16 overload.
	u8Idx := requireAliveBranch(t, g, arg, ir.NewPrimitive(ir.U8))
	g.RemoveBranch(arg, u8Idx, declare.NewError(declare.ConflictSelected, arg, "test: forced removal"))

	assert.Empty(t, g.Solve())
	b, ok := g.Resolve(call)
	require.True(t, ok)
	assert.Equal(t, "overload(i16)->bool", b.Payload)

	argBranch, ok := g.Resolve(arg)
	require.True(t, ok)
	assert.Equal(t, ir.I16, *argBranch.Type.Primitive)
}

// requireAliveBranch locates the alive branch of group idx with the
// given type, failing the test if none is found.
func requireAliveBranch(t *testing.T, g *declare.Graph, idx declare.GroupIdx, want ir.Type) declare.BranchIdx {
	t.Helper()
	grp := g.Group(idx)
	for bi, b := range grp.Branches {
		if b.Alive && b.Type.Equal(want) {
			return declare.BranchIdx(bi)
		}
	}
	t.Fatalf("no alive branch of type %s in group %d", want.String(), idx)
	return 0
}

func TestBuildGroupPrunesDependencyBranchesNeverUsedByAnyCandidate(t *testing.T) {
	g := declare.NewGraph()
	arg := literalGroup(g, ir.IntegerPrimitives)

	// A single-overload call requiring exactly u8: every other candidate
	// in arg is never selected by any branch of call and must be pruned
	// as NeverUsed the moment call is built, not left dangling.
	g.BuildGroup([]*declare.Branch{
		declare.NewBranchWith(ir.NewPrimitive(ir.Bool), "overload(u8)->bool", declare.RequireType(arg, ir.NewPrimitive(ir.U8))),
	})

	assert.Empty(t, g.Solve())
	b, ok := g.Resolve(arg)
	require.True(t, ok)
	assert.Equal(t, ir.U8, *b.Type.Primitive)
}

func TestRemoveBranchCascadesForwardToSolelyReferencedDependency(t *testing.T) {
	g := declare.NewGraph()
	arg := literalGroup(g, ir.IntegerPrimitives)

	// Two overloads keep both u8 and i16 alive in arg.
	call := g.BuildGroup([]*declare.Branch{
		declare.NewBranchWith(ir.NewPrimitive(ir.Bool), "overload(u8)->bool", declare.RequireType(arg, ir.NewPrimitive(ir.U8))),
		declare.NewBranchWith(ir.NewPrimitive(ir.Bool), "overload(i16)->bool", declare.RequireType(arg, ir.NewPrimitive(ir.I16))),
	})

	// Removing call's u8-requiring branch directly (standing in for some
	// unrelated conflict) leaves arg's u8 branch solely referenced by
	// nothing: it must be cascaded away too as NeverUsed, narrowing arg
	// down to i16 on its own, with no further external action.
	var u8CallIdx declare.BranchIdx
	for bi, b := range g.Group(call).Branches {
		if b.Payload == "overload(u8)->bool" {
			u8CallIdx = declare.BranchIdx(bi)
		}
	}
	g.RemoveBranch(call, u8CallIdx, declare.NewError(declare.ConflictSelected, call, "test: forced removal"))

	argBranch, ok := g.Resolve(arg)
	require.True(t, ok)
	assert.Equal(t, ir.I16, *argBranch.Type.Primitive)

	for _, b := range g.Group(arg).Branches {
		if b.Type.Equal(ir.NewPrimitive(ir.U8)) {
			require.NotNil(t, b.RemovedBy)
			assert.Equal(t, declare.NeverUsed, b.RemovedBy.Kind)
		}
	}
}

func TestMergeGroupIntersectsCandidates(t *testing.T) {
	g := declare.NewGraph()
	a := literalGroup(g, []ir.PrimitiveType{ir.I32, ir.I64, ir.U8})
	b := literalGroup(g, []ir.PrimitiveType{ir.I64, ir.U8, ir.F32})

	merged, err := g.MergeGroup(a, b)
	require.Nil(t, err)

	require.Nil(t, g.DeclareType(merged, ir.NewPrimitive(ir.I64)))

	ba, ok := g.Resolve(a)
	require.True(t, ok)
	assert.Equal(t, ir.I64, *ba.Type.Primitive)

	bb, ok := g.Resolve(b)
	require.True(t, ok)
	assert.Equal(t, ir.I64, *bb.Type.Primitive)
}

func TestMergeGroupConflictWhenNoSharedType(t *testing.T) {
	g := declare.NewGraph()
	a := literalGroup(g, []ir.PrimitiveType{ir.I32})
	b := literalGroup(g, []ir.PrimitiveType{ir.F32})

	_, err := g.MergeGroup(a, b)
	require.NotNil(t, err)
	assert.Equal(t, declare.ConflictSelected, err.Kind)
}

func TestBuildGroupSelfFiltersAgainstAlreadyNarrowedDependency(t *testing.T) {
	g := declare.NewGraph()
	arg := literalGroup(g, ir.IntegerPrimitives)
	require.Nil(t, g.DeclareType(arg, ir.NewPrimitive(ir.U8)))

	// Built after arg is already pinned to u8: the i32-requiring branch
	// must be born dead.
	call := g.BuildGroup([]*declare.Branch{
		declare.NewBranchWith(ir.NewPrimitive(ir.Bool), "overload(i32)->bool", declare.RequireType(arg, ir.NewPrimitive(ir.I32))),
		declare.NewBranchWith(ir.NewPrimitive(ir.Bool), "overload(u8)->bool", declare.RequireType(arg, ir.NewPrimitive(ir.U8))),
	})

	assert.Empty(t, g.Solve())
	b, ok := g.Resolve(call)
	require.True(t, ok)
	assert.Equal(t, "overload(u8)->bool", b.Payload)
}
