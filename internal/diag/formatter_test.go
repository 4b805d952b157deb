package diag_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pin1yin1/pin1c/internal/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatterWritesPlainOutputWhenNotATerminal(t *testing.T) {
	var buf bytes.Buffer
	// a *bytes.Buffer is never a terminal, so NewFormatterTo must not
	// emit ANSI escapes for it even though color support is compiled in.
	f := diag.NewFormatterTo(&buf)

	f.Format(diag.Diagnostic{
		Severity: diag.SeverityError,
		Code:     diag.CodeDeclareMultSelected,
		Message:  "ambiguous overload",
	})

	out := buf.String()
	require.NotEmpty(t, out)
	assert.NotContains(t, out, "\x1b[", "expected no ANSI escapes when writing to a non-terminal")
	assert.Contains(t, out, "error[DECLARE_AMBIGUOUS]: ambiguous overload")
}

func TestFormatterRendersProofChainNotes(t *testing.T) {
	var buf bytes.Buffer
	f := diag.NewFormatterTo(&buf)

	f.Format(diag.Diagnostic{
		Severity: diag.SeverityError,
		Code:     diag.CodeDeclareNonBenchSelected,
		Message:  "no candidate remains",
		ProofChain: []diag.ProofStep{
			{Message: "dependency group was pinned to usize"},
		},
	})

	out := buf.String()
	assert.True(t, strings.Contains(out, "note: dependency group was pinned to usize"))
}
