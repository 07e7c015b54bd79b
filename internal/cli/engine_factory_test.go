package cli

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/fsg/internal/logging"
	"github.com/aretw0/fsg/pkg/automaton"
	"github.com/aretw0/fsg/pkg/domain"
	"github.com/dlclark/regexp2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefinition(t *testing.T) {
	createDir := func(t *testing.T, files ...string) string {
		dir := t.TempDir()
		for _, f := range files {
			require.NoError(t, os.MkdirAll(filepath.Join(dir, filepath.Dir(f)), 0755))
			require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("x"), 0644))
		}
		return dir
	}

	t.Run("Explicit wins", func(t *testing.T) {
		dir := createDir(t, "automaton.yaml")
		assert.Equal(t, "other.yaml", ResolveDefinition("other.yaml", dir))
	})

	t.Run("YAML before directory", func(t *testing.T) {
		dir := createDir(t, "automaton.yaml", "states/a.md")
		assert.Equal(t, filepath.Join(dir, "automaton.yaml"), ResolveDefinition("", dir))
	})

	t.Run("States directory", func(t *testing.T) {
		dir := createDir(t, "states/a.md")
		assert.Equal(t, filepath.Join(dir, "states"), ResolveDefinition("", dir))
	})

	t.Run("Nothing found", func(t *testing.T) {
		assert.Equal(t, "", ResolveDefinition("", createDir(t, "README.md")))
	})
}

func TestDemoDefinition(t *testing.T) {
	a, err := automaton.FromDefinition(DemoDefinition())
	require.NoError(t, err)
	assert.Equal(t, "demo", a.Name())

	re := regexp2.MustCompile(`\A(?:`+DemoPattern+`)\z`, regexp2.None)
	m := automaton.NewMatcher(a)
	for _, s := range []string{"", "s", "gg", "fgg", "gsgg", "fss", "gffs", "x", "sg", "ggg", "gsss"} {
		want, err := re.MatchString(s)
		require.NoError(t, err)
		assert.Equal(t, want, m.Matches(s), s)
	}
}

func TestCreateEngine(t *testing.T) {
	ctx := context.Background()

	t.Run("Built-in demo", func(t *testing.T) {
		t.Chdir(t.TempDir())

		engine, err := CreateEngine(ctx, Options{MaxSteps: automaton.DefaultMaxSteps}, logging.NewNop())
		require.NoError(t, err)
		assert.Equal(t, "demo", engine.Name)
		assert.True(t, engine.Matches(ctx, "fgg"))
	})

	t.Run("Debug hooks log events", func(t *testing.T) {
		t.Chdir(t.TempDir())

		var logs bytes.Buffer
		logger, err := logging.NewWriter(&logs, slog.LevelDebug, logging.FormatText)
		require.NoError(t, err)

		engine, err := CreateEngine(ctx, Options{Debug: true, MaxSteps: automaton.DefaultMaxSteps}, logger)
		require.NoError(t, err)
		engine.Matches(ctx, "s")

		assert.Contains(t, logs.String(), "msg=Search")
		assert.Contains(t, logs.String(), "accepted=true")
	})

	t.Run("Conventional file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "automaton.yaml"), []byte(`
name: local
states:
  - {id: start, start: true}
  - {id: end, end: true}
transitions:
  - {from: start, to: end}
`), 0644))
		t.Chdir(dir)

		engine, err := CreateEngine(ctx, Options{}, logging.NewNop())
		require.NoError(t, err)
		assert.Equal(t, "local", engine.Name)
		assert.True(t, engine.Matches(ctx, ""))
	})

	t.Run("Bad mode", func(t *testing.T) {
		_, err := CreateEngine(ctx, Options{Mode: "sideways"}, logging.NewNop())
		assert.ErrorContains(t, err, "unknown match mode")
	})

	t.Run("Literal mode", func(t *testing.T) {
		t.Chdir(t.TempDir())

		engine, err := CreateEngine(ctx, Options{Mode: string(domain.MatchLiteral)}, logging.NewNop())
		require.NoError(t, err, "the demo labels are palindromes")
		assert.Equal(t, domain.MatchLiteral, engine.Automaton().Mode())
	})
}
