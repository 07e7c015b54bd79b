package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/fsg"
	"github.com/aretw0/fsg/pkg/adapters/memory"
	"github.com/aretw0/fsg/pkg/domain"
)

// Options are the flags shared by every command that needs an engine.
type Options struct {
	// Def is a definition file or Loam directory. Empty searches the working
	// directory and falls back to the built-in demo.
	Def       string
	Debug     bool
	LogFormat string
	MaxSteps  int
	Mode      string
}

// conventional definition locations, in lookup order.
var conventional = []string{"automaton.yaml", "automaton.yml", "automaton.json", "states"}

// ResolveDefinition returns opts.Def or the first conventional definition
// found in dir. An empty result selects the built-in demo.
func ResolveDefinition(def, dir string) string {
	if def != "" {
		return def
	}
	for _, name := range conventional {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// CreateEngine initializes an engine with standard CLI conventions.
func CreateEngine(ctx context.Context, opts Options, logger *slog.Logger, extra ...fsg.Option) (*fsg.Engine, error) {
	engineOpts := []fsg.Option{fsg.WithLogger(logger)}

	if opts.Debug {
		engineOpts = append(engineOpts, fsg.WithLifecycleHooks(createDebugHooks(logger)))
	}
	if opts.MaxSteps >= 0 {
		engineOpts = append(engineOpts, fsg.WithMaxSteps(opts.MaxSteps))
	}
	if opts.Mode != "" {
		mode := domain.MatchMode(opts.Mode)
		if !mode.Valid() {
			return nil, fmt.Errorf("unknown match mode %q (want %s or %s)", opts.Mode, domain.MatchReversed, domain.MatchLiteral)
		}
		engineOpts = append(engineOpts, fsg.WithMatchMode(mode))
	}
	engineOpts = append(engineOpts, extra...)

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	source := ResolveDefinition(opts.Def, wd)
	if source == "" {
		logger.Debug("No definition found, using built-in demo")
		engineOpts = append(engineOpts, fsg.WithLoader(memory.NewLoader(DemoDefinition())))
	}

	engine, err := fsg.NewWithContext(ctx, source, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSample: func(ctx context.Context, e *domain.SampleEvent) {
			if e.Err != nil {
				logger.Debug("Walk failed", "steps", e.Steps, "err", e.Err)
				return
			}
			logger.Debug("Walk", "output", e.Output, "steps", e.Steps, "took", e.Took)
		},
		OnMatch: func(ctx context.Context, e *domain.MatchEvent) {
			logger.Debug("Search", "input", e.Input, "accepted", e.Accepted, "calls", e.Calls, "depth", e.Depth)
		},
	}
}
