package harness

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// parallel splits items into contiguous chunks and evaluates fn on each with
// at most workers goroutines. Results keep chunk order.
func parallel[T, R any](ctx context.Context, workers int, items []T, fn func(context.Context, []T) (R, error)) ([]R, error) {
	if workers < 1 {
		workers = 1
	}
	chunks := workers * 4
	if chunks > len(items) {
		chunks = len(items)
	}
	if chunks == 0 {
		return nil, ctx.Err()
	}

	size := (len(items) + chunks - 1) / chunks
	chunks = (len(items) + size - 1) / size

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	results := make([]R, chunks)
	for i := range chunks {
		lo := i * size
		hi := min(lo+size, len(items))
		g.Go(func() error {
			r, err := fn(gctx, items[lo:hi])
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
