package cli

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/fsg"
)

// reloadDelay lets editors finish writing before the definition is re-read.
var reloadDelay = 100 * time.Millisecond

// WatchEngine reloads engine whenever its definition changes and hands every
// successfully reloaded engine to swap. A definition that fails to load is
// logged and the previous engine is kept. It blocks until ctx is done.
func WatchEngine(ctx context.Context, engine *fsg.Engine, logger *slog.Logger, swap func(*fsg.Engine)) error {
	watchCh, err := engine.Watch(ctx)
	if err != nil {
		if errors.Is(err, fsg.ErrWatchUnsupported) {
			logger.Warn("Hot reload disabled", "err", err)
			<-ctx.Done()
			return nil
		}
		return err
	}

	current := engine
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watchCh:
			if !ok {
				return nil
			}
			logger.Info("Change detected, triggering reload", "event", event)

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(reloadDelay):
			}

			next, err := current.Reload(ctx)
			if err != nil {
				logger.Error("Reload failed, keeping previous automaton", "err", err)
				continue
			}
			current = next
			swap(next)
			logger.Info("Automaton reloaded", "automaton", next.Name)
		}
	}
}
