package fsg

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/fsg/internal/validator"
	"github.com/aretw0/fsg/pkg/adapters/file"
	loamAdapter "github.com/aretw0/fsg/pkg/adapters/loam"
	"github.com/aretw0/fsg/pkg/automaton"
	"github.com/aretw0/fsg/pkg/domain"
	"github.com/aretw0/fsg/pkg/ports"
	"github.com/aretw0/loam"
)

// ErrWatchUnsupported is returned by Watch when the loader cannot watch.
var ErrWatchUnsupported = errors.New("current loader does not support watching")

// Engine is the high-level entry point for the fsg library.
// It loads a definition once and shares the compiled automaton between
// generation and matching. An Engine is safe for concurrent use.
type Engine struct {
	loader   ports.DefinitionLoader
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	base     *slog.Logger
	mode     domain.MatchMode
	maxSteps *int
	Name     string

	def       *domain.Definition
	automaton *automaton.Automaton
	generator *automaton.Generator
	matcher   *automaton.Matcher
	analysis  validator.Result
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLoader injects a custom DefinitionLoader, bypassing path detection.
func WithLoader(l ports.DefinitionLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMaxSteps bounds every generator walk. Zero disables the bound.
func WithMaxSteps(n int) Option {
	return func(e *Engine) {
		e.maxSteps = &n
	}
}

// WithMatchMode overrides the label comparison mode of the loaded definition.
func WithMatchMode(mode domain.MatchMode) Option {
	return func(e *Engine) {
		e.mode = mode
	}
}

// New loads a definition and compiles it.
// A directory source is read as a Loam repository (one document per state);
// any other path is read as a YAML or JSON definition file.
// If WithLoader is provided, source is only used as a name fallback.
func New(source string, opts ...Option) (*Engine, error) {
	return NewWithContext(context.Background(), source, opts...)
}

// NewWithContext is New with a context for the initial load.
func NewWithContext(ctx context.Context, source string, opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil {
		loader, err := detectLoader(source)
		if err != nil {
			return nil, err
		}
		eng.loader = loader
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.DiscardHandler)
	}
	eng.base = eng.logger

	if err := eng.load(ctx, source); err != nil {
		return nil, err
	}
	return eng, nil
}

func detectLoader(source string) (ports.DefinitionLoader, error) {
	if source == "" {
		return nil, fmt.Errorf("a definition path is required when no custom loader is provided")
	}

	absPath, err := filepath.Abs(source)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open definition: %w", err)
	}
	if !info.IsDir() {
		return file.NewLoader(absPath), nil
	}

	// The engine only reads the repository.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	typedRepo := loam.NewTypedRepository[loamAdapter.StateMetadata](repo)
	return loamAdapter.New(typedRepo, loamAdapter.WithName(filepath.Base(absPath))), nil
}

func (e *Engine) load(ctx context.Context, source string) error {
	def, err := e.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load definition: %w", err)
	}

	var autoOpts []automaton.Option
	if e.mode != "" {
		autoOpts = append(autoOpts, automaton.WithMatchMode(e.mode))
	}
	if def.Name == "" && source != "" {
		autoOpts = append(autoOpts, automaton.WithName(trimExt(filepath.Base(source))))
	}

	a, err := automaton.FromDefinition(def, autoOpts...)
	if err != nil {
		return err
	}

	analysis, err := validator.Analyze(a)
	if err != nil {
		return err
	}

	var genOpts []automaton.GeneratorOption
	if e.maxSteps != nil {
		genOpts = append(genOpts, automaton.WithMaxSteps(*e.maxSteps))
	}

	e.Name = a.Name()
	e.def = a.Definition()
	e.automaton = a
	e.generator = automaton.NewGenerator(a, genOpts...)
	e.matcher = automaton.NewMatcher(a)
	e.analysis = analysis

	e.logger = e.base
	if e.Name != "" {
		e.logger = e.base.With("automaton", e.Name)
	}
	for _, w := range analysis.Warnings() {
		e.logger.Warn(w)
	}
	if err := analysis.Err(); err != nil {
		e.logger.Warn("Generation may diverge", "err", err)
	}
	e.logger.Debug("Automaton loaded", "states", a.Len(), "transitions", len(e.def.Transitions))
	return nil
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}

// Automaton returns the compiled automaton. It must not be modified.
func (e *Engine) Automaton() *automaton.Automaton {
	return e.automaton
}

// Inspect returns a copy of the loaded definition for visualization or
// introspection tools.
func (e *Engine) Inspect() *domain.Definition {
	return e.def.Clone()
}

// Analyze returns the static analysis computed at load time.
func (e *Engine) Analyze() validator.Result {
	return e.analysis
}

// Loader returns the underlying DefinitionLoader used by the engine.
func (e *Engine) Loader() ports.DefinitionLoader {
	return e.loader
}

// NewSource returns a deterministic random source for seed.
func NewSource(seed uint64) *rand.Rand {
	return automaton.NewSource(seed)
}

// Sample draws one accepted string. A nil rng uses a randomly seeded source.
func (e *Engine) Sample(ctx context.Context, rng automaton.Source) (string, error) {
	if rng == nil {
		rng = NewSource(rand.Uint64())
	}
	return e.walk(ctx, rng)
}

func (e *Engine) walk(ctx context.Context, rng automaton.Source) (string, error) {
	started := time.Now()
	w, err := e.generator.Walk(rng)

	if e.hooks.OnSample != nil {
		e.hooks.OnSample(ctx, &domain.SampleEvent{
			EventBase: domain.EventBase{Timestamp: started, Type: domain.EventSample, Automaton: e.Name},
			Output:    w.Output,
			Steps:     w.Steps,
			Err:       err,
			Took:      time.Since(started),
		})
	}

	if err != nil {
		if errors.Is(err, domain.ErrGenerationDivergence) {
			e.logger.Warn("Generator walk diverged", "steps", w.Steps, "err", err)
		}
		return "", err
	}
	e.logger.Debug("Sampled", "output", w.Output, "steps", w.Steps)
	return w.Output, nil
}

// Generate yields count accepted strings. The sequence stops after the first
// error, including cancellation of ctx. A nil rng uses a randomly seeded source.
func (e *Engine) Generate(ctx context.Context, count int, rng automaton.Source) iter.Seq2[string, error] {
	if rng == nil {
		rng = NewSource(rand.Uint64())
	}
	return func(yield func(string, error) bool) {
		for range count {
			if err := ctx.Err(); err != nil {
				yield("", err)
				return
			}
			s, err := e.walk(ctx, rng)
			if err != nil {
				yield("", err)
				return
			}
			if !yield(s, nil) {
				return
			}
		}
	}
}

// SampleN materializes Generate.
func (e *Engine) SampleN(ctx context.Context, count int, rng automaton.Source) ([]string, error) {
	out := make([]string, 0, max(count, 0))
	for s, err := range e.Generate(ctx, count, rng) {
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Match tests input and returns the search trace.
func (e *Engine) Match(ctx context.Context, input string) automaton.MatchResult {
	started := time.Now()
	res := e.matcher.Match(input)
	took := time.Since(started)

	if e.hooks.OnMatch != nil {
		e.hooks.OnMatch(ctx, &domain.MatchEvent{
			EventBase: domain.EventBase{Timestamp: started, Type: domain.EventMatch, Automaton: e.Name},
			Input:     input,
			Accepted:  res.Accepted,
			Calls:     res.Calls,
			Depth:     res.Depth,
			Took:      took,
		})
	}
	e.logger.Debug("Matched", "input", input, "accepted", res.Accepted, "calls", res.Calls)
	return res
}

// Matches reports whether input is accepted.
func (e *Engine) Matches(ctx context.Context, input string) bool {
	return e.Match(ctx, input).Accepted
}

// Watch returns a channel that signals when the underlying definition changes.
// Returns ErrWatchUnsupported if the loader does not support watching.
func (e *Engine) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := e.loader.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, ErrWatchUnsupported
}

// Reload builds a fresh engine from the same loader and options.
func (e *Engine) Reload(ctx context.Context) (*Engine, error) {
	next := &Engine{
		loader:   e.loader,
		hooks:    e.hooks,
		base:     e.base,
		mode:     e.mode,
		maxSteps: e.maxSteps,
	}
	if err := next.load(ctx, ""); err != nil {
		return nil, err
	}
	return next, nil
}
