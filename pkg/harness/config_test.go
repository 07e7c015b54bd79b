package harness_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/fsg/pkg/harness"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	cfg, err := harness.ParseConfig([]byte(`
samples: 100000
seed: 42
patterns:
  - "^s$"
reference: "s|gg"
alphabet: fgs
max_len: 8
workers: 2
`))
	require.NoError(t, err)
	assert.Equal(t, harness.Config{
		Samples:   100000,
		Seed:      42,
		Patterns:  []string{"^s$"},
		Reference: "s|gg",
		Alphabet:  "fgs",
		MaxLen:    8,
		Workers:   2,
	}, cfg)

	empty, err := harness.ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, harness.DefaultConfig(), empty)
	assert.Equal(t, harness.DefaultSamples, empty.Samples)

	none, err := harness.ParseConfig([]byte("samples: 0\n"))
	require.NoError(t, err)
	assert.Zero(t, none.Samples, "an explicit zero is kept")

	_, err = harness.ParseConfig([]byte("sample: 3\n"))
	assert.ErrorIs(t, err, harness.ErrInvalidConfig, "unknown field")

	_, err = harness.ParseConfig([]byte("workers: -2\n"))
	assert.ErrorIs(t, err, harness.ErrInvalidConfig)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "check.yaml")
	require.NoError(t, os.WriteFile(path, []byte("samples: 5\n"), 0644))

	cfg, err := harness.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Samples)

	_, err = harness.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
