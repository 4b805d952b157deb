package ir_test

import (
	"encoding/json"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/pin1yin1/pin1c/internal/defs"
	"github.com/pin1yin1/pin1c/internal/lexer"
	"github.com/pin1yin1/pin1c/internal/mir"
	"github.com/pin1yin1/pin1c/internal/parser"
	"github.com/stretchr/testify/require"
)

// TestIdentityFunctionJSONShape snapshots the IR JSON shape for a small
// function, guarding spec.md §6's "the IR's JSON shape is a stable
// contract" requirement the way CWBudde-go-dws snapshots its interpreter's
// fixture output.
func TestIdentityFunctionJSONShape(t *testing.T) {
	tokens, _ := lexer.Tokenize("t.pyi", "zheng3 jia can1 zheng3 x jie2 han2 zheng3 r wei2 x jia1 1 fen1 fan3 r fen1 jie2")
	res := parser.ParseFnDefine(parser.NewCursor(tokens))
	require.Equal(t, parser.Ok, res.Kind, res.Message)

	fn, declErrs, errs := mir.LowerFunction(res.Value, defs.NewOverloads())
	require.Empty(t, errs)
	require.Empty(t, declErrs)

	item, err := fn.ToIR()
	require.NoError(t, err)

	out, err := json.MarshalIndent(item, "", "  ")
	require.NoError(t, err)

	snaps.MatchSnapshot(t, string(out))
}
