package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/aretw0/fsg/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		ID:        "r1",
		Automaton: "demo",
		Seed:      1,
		Samples:   2,
		SelfCheck: domain.SelfCheck{Accepted: 2},
		Patterns:  []domain.PatternTally{{Pattern: "^s$", Passed: 1, Failed: 1}},
	}
}

func TestWriteReport(t *testing.T) {
	t.Run("auto on a buffer is text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteReport(&buf, sampleReport(), OutputAuto))
		assert.Contains(t, buf.String(), "'^s$' -> passed 1 out of 2")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteReport(&buf, sampleReport(), OutputJSON))

		var got domain.Report
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "r1", got.ID)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteReport(&buf, sampleReport(), OutputYAML))

		var got map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "demo", got["automaton"])
	})

	t.Run("markdown", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteReport(&buf, sampleReport(), OutputMarkdown))
		assert.Contains(t, buf.String(), "r1")
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Error(t, WriteReport(&bytes.Buffer{}, sampleReport(), "xml"))
	})

	assert.False(t, IsTerminal(&bytes.Buffer{}))
}
