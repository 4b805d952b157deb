package compile_test

import (
	"testing"

	"github.com/pin1yin1/pin1c/internal/compile"
	"github.com/pin1yin1/pin1c/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// src defines main before add, calling add before its definition is seen —
// exercising the "signatures registered before any body is lowered"
// forward-reference guarantee.
const src = `
zheng3 main can1 jie2 han2 fan3 ya1 1 2 ru4 add fen1 jie2
zheng3 add can1 zheng3 a zheng3 b jie2 han2 fan3 a jia1 b fen1 jie2
`

func TestRunResolvesForwardReferenceAcrossFunctions(t *testing.T) {
	res := compile.Run("t.pyi", src, config.Default())
	require.True(t, res.OK(), res.Diagnostics.Diagnostics)
	require.Len(t, res.Items, 2)
}

func TestRunParallelModeProducesSameOutcome(t *testing.T) {
	opts := config.Default()
	opts.Parallel = true
	res := compile.Run("t.pyi", src, opts)
	require.True(t, res.OK(), res.Diagnostics.Diagnostics)
	require.Len(t, res.Items, 2)
}

func TestRunCollectsDiagnosticsPerFunctionIndependently(t *testing.T) {
	// "broken" never solves (undeclared variable); "ok" is a sibling that
	// is still elaborated, but broken's failure fails the whole run, so
	// no IR is kept for either function.
	const mixed = `
zheng3 broken can1 jie2 han2 fan3 nope fen1 jie2
zheng3 ok can1 jie2 han2 fan3 1 fen1 jie2
`
	res := compile.Run("t.pyi", mixed, config.Default())
	assert.False(t, res.OK())
	assert.Empty(t, res.Items)
	require.NotEmpty(t, res.Diagnostics.Diagnostics)
	assert.Contains(t, res.Diagnostics.Diagnostics[0].Message, "nope")
}

func TestRunReportsParseFailureAsSingleDiagnostic(t *testing.T) {
	res := compile.Run("t.pyi", "zheng3 zheng3 zheng3", config.Default())
	assert.False(t, res.OK())
	assert.NotEmpty(t, res.Diagnostics.Diagnostics)
}

func TestRunEachCallGetsAFreshRunID(t *testing.T) {
	a := compile.Run("t.pyi", src, config.Default())
	b := compile.Run("t.pyi", src, config.Default())
	assert.NotEqual(t, a.RunID, b.RunID)
}
