package cli

import (
	"fmt"
	"time"

	"github.com/aretw0/fsg/pkg/adapters/file"
	"github.com/aretw0/fsg/pkg/adapters/memory"
	"github.com/aretw0/fsg/pkg/adapters/redis"
	"github.com/aretw0/fsg/pkg/ports"
)

// Report store kinds accepted by OpenStore.
const (
	StoreNone   = "none"
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// StoreOptions select where harness reports are persisted.
type StoreOptions struct {
	Kind string
	// Path is the file store directory. Empty uses the store's default.
	Path string
	// RedisURL is a redis:// URL for the redis store.
	RedisURL string
	TTL      time.Duration
}

// OpenStore returns the configured report store and a function releasing it.
// StoreNone yields a nil store.
func OpenStore(opts StoreOptions) (ports.ReportStore, func() error, error) {
	noop := func() error { return nil }

	switch opts.Kind {
	case "", StoreNone:
		return nil, noop, nil
	case StoreMemory:
		return memory.NewStore(), noop, nil
	case StoreFile:
		return file.NewStore(opts.Path), noop, nil
	case StoreRedis:
		if opts.RedisURL == "" {
			return nil, nil, fmt.Errorf("redis store requires --redis-url")
		}
		var ropts []redis.Option
		if opts.TTL > 0 {
			ropts = append(ropts, redis.WithTTL(opts.TTL))
		}
		store, err := redis.NewFromURL(opts.RedisURL, ropts...)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open redis store: %w", err)
		}
		return store, store.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown store %q (want %s, %s, %s or %s)", opts.Kind, StoreNone, StoreMemory, StoreFile, StoreRedis)
}
