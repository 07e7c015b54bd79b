package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWriter(t *testing.T) {
	t.Run("text renames error key", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewWriter(&buf, slog.LevelInfo, FormatText)
		require.NoError(t, err)

		logger.Debug("hidden")
		logger.Info("walk failed", "error", errors.New("boom"))

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "err=boom")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewWriter(&buf, slog.LevelDebug, FormatJSON)
		require.NoError(t, err)

		logger.Debug("sampled", "output", "fgg")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "sampled", rec["msg"])
		assert.Equal(t, "fgg", rec["output"])
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := NewWriter(&bytes.Buffer{}, slog.LevelInfo, "xml")
		assert.Error(t, err)
	})
}
