package lexer_test

import (
	"testing"

	"github.com/pin1yin1/pin1c/internal/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeSplitsOnNonWordRuns(t *testing.T) {
	tokens, buf := lexer.Tokenize("t.pyi", "zheng3 r wei2 x jia1 1 fen1")
	require.Len(t, tokens, 7)

	values := make([]string, len(tokens))
	for i, tok := range tokens {
		values[i] = tok.Value
	}
	assert.Equal(t, []string{"zheng3", "r", "wei2", "x", "jia1", "1", "fen1"}, values)
	assert.Equal(t, "zheng3", string(buf.Slice(tokens[0].Span())))
}

func TestTokenizeNeverFails(t *testing.T) {
	tokens, _ := lexer.Tokenize("t.pyi", "114514abc [] () \n\t ???")
	require.Len(t, tokens, 1)
	assert.Equal(t, "114514abc", tokens[0].Value)
}

func TestTokenizeEmptySource(t *testing.T) {
	tokens, _ := lexer.Tokenize("t.pyi", "   \n\t  ")
	assert.Empty(t, tokens)
}

func TestTokenSpansAreRuneIndicesIntoBuffer(t *testing.T) {
	tokens, buf := lexer.Tokenize("t.pyi", "ab cd")
	require.Len(t, tokens, 2)
	assert.Equal(t, 0, tokens[0].Span().Start)
	assert.Equal(t, 2, tokens[0].Span().End)
	assert.Equal(t, "cd", string(buf.Slice(tokens[1].Span())))
}
