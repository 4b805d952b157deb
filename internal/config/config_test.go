package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pin1yin1/pin1c/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	opts := config.Default()
	assert.False(t, opts.Parallel)
	assert.True(t, opts.Color)
	assert.Equal(t, 64, opts.IntegerDefaultWidth)
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pin1c.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
parallel = true
integer_default_width = 32
`), 0o644))

	opts, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, opts.Parallel)
	assert.Equal(t, 32, opts.IntegerDefaultWidth)
	// untouched fields keep their Default() value
	assert.True(t, opts.Color)
	assert.Equal(t, 1<<20, opts.MaxArraySize)
}
