package cli_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/fsg/internal/cli"
	"github.com/aretw0/fsg/pkg/adapters/file"
	"github.com/aretw0/fsg/pkg/adapters/memory"
	"github.com/aretw0/fsg/pkg/adapters/redis"
	"github.com/aretw0/fsg/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore(t *testing.T) {
	store, closeFn, err := cli.OpenStore(cli.StoreOptions{})
	require.NoError(t, err)
	assert.Nil(t, store)
	assert.NoError(t, closeFn())

	store, _, err = cli.OpenStore(cli.StoreOptions{Kind: cli.StoreMemory})
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, store)

	dir := filepath.Join(t.TempDir(), "reports")
	store, _, err = cli.OpenStore(cli.StoreOptions{Kind: cli.StoreFile, Path: dir})
	require.NoError(t, err)
	require.IsType(t, &file.Store{}, store)
	require.NoError(t, store.Save(context.Background(), &domain.Report{ID: "r1"}))
	assert.FileExists(t, filepath.Join(dir, "r1.json"))

	_, _, err = cli.OpenStore(cli.StoreOptions{Kind: "s3"})
	assert.ErrorContains(t, err, "unknown store")
}

func TestOpenStore_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	_, _, err := cli.OpenStore(cli.StoreOptions{Kind: cli.StoreRedis})
	assert.Error(t, err)

	store, closeFn, err := cli.OpenStore(cli.StoreOptions{Kind: cli.StoreRedis, RedisURL: "redis://" + mr.Addr(), TTL: time.Minute})
	require.NoError(t, err)
	require.IsType(t, &redis.Store{}, store)
	defer func() { assert.NoError(t, closeFn()) }()

	require.NoError(t, store.Save(context.Background(), &domain.Report{ID: "r1"}))
	assert.Equal(t, time.Minute, mr.TTL("fsg:report:r1"))
}
