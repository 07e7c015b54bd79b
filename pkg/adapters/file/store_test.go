package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/fsg/pkg/adapters/file"
	"github.com/aretw0/fsg/pkg/domain"
	"github.com/aretw0/fsg/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.ReportStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	ports.RunReportStoreContract(t, file.NewStore(t.TempDir()))
}

func TestFileStore_Layout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	store := file.NewStore(dir)
	ctx := context.Background()

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids, "missing directory lists as empty")

	require.NoError(t, store.Save(ctx, &domain.Report{ID: "nightly", Samples: 10}))
	assert.FileExists(t, filepath.Join(dir, "nightly.json"))

	// Leftover temp files and unrelated entries are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tmp-x-123.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"nightly"}, ids)
}

func TestFileStore_InvalidIDs(t *testing.T) {
	store := file.NewStore(t.TempDir())
	ctx := context.Background()

	for _, id := range []string{"", "../escape", `a\b`, ".."} {
		assert.Error(t, store.Save(ctx, &domain.Report{ID: id}), id)
		_, err := store.Load(ctx, id)
		assert.Error(t, err, id)
		assert.Error(t, store.Delete(ctx, id), id)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0644))

	_, err := file.NewStore(dir).Load(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrReportNotFound)
}
