package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/fsg/internal/presentation/graph"
	"github.com/aretw0/fsg/pkg/automaton"
	"github.com/aretw0/fsg/pkg/domain"
)

// Engine is what the loop needs from the fsg engine.
type Engine interface {
	Inspect() *domain.Definition
	Generate(ctx context.Context, count int, rng automaton.Source) iter.Seq2[string, error]
	Match(ctx context.Context, input string) automaton.MatchResult
}

const helpText = `Type a string to test it. Commands:

- ` + "`:gen [n]`" + ` generate n strings (default 1)
- ` + "`:seed <n>`" + ` reseed the generator
- ` + "`:graph [input]`" + ` print the Mermaid diagram, highlighting input's walk
- ` + "`:help`" + ` show this help
- ` + "`:quit`" + ` leave`

// Runner handles the interactive loop over an IOHandler.
type Runner struct {
	// Handler is the strategy for IO. Defaults to a TextHandler on Stdin/Stdout.
	Handler IOHandler
	// Logger is used for internal debug logging.
	Logger *slog.Logger

	engine Engine
	seed   uint64
	rng    automaton.Source
}

// NewRunner creates a Runner for engine. The generator is randomly seeded
// unless WithSeed is given.
func NewRunner(engine Engine, opts ...Option) *Runner {
	r := &Runner{
		engine: engine,
		Logger: slog.New(slog.DiscardHandler),
	}
	r.reseed(rand.Uint64())
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	return r
}

func (r *Runner) reseed(seed uint64) {
	r.seed = seed
	r.rng = automaton.NewSource(seed)
}

// Seed returns the seed the generator was last set to.
func (r *Runner) Seed() uint64 { return r.seed }

// Run reads lines until the input is exhausted, :quit is entered, or ctx is
// cancelled. Those endings are not errors.
func (r *Runner) Run(ctx context.Context) error {
	for {
		line, err := r.Handler.Input(ctx)
		if err != nil {
			switch {
			case errors.Is(err, io.EOF), ctx.Err() != nil:
				return nil
			case errors.Is(err, ErrInputTooLarge), errors.Is(err, ErrInvalidUTF8):
				if err := r.Handler.Output(ctx, Response{Kind: KindError, Text: err.Error()}); err != nil {
					return fmt.Errorf("output error: %w", err)
				}
				continue
			}
			return fmt.Errorf("input error: %w", err)
		}

		resp, quit := r.Step(ctx, line)
		if quit {
			return nil
		}
		if resp == nil {
			continue
		}
		if err := r.Handler.Output(ctx, *resp); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
	}
}

// Step evaluates one line. It returns nil for blank lines and quit=true for :quit.
func (r *Runner) Step(ctx context.Context, line string) (resp *Response, quit bool) {
	if strings.TrimSpace(line) == "" {
		return nil, false
	}
	if !strings.HasPrefix(line, ":") {
		return r.match(ctx, line), false
	}

	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]
	r.Logger.Debug("Command", "cmd", cmd, "args", args)

	switch cmd {
	case ":q", ":quit", ":exit":
		return nil, true
	case ":h", ":help":
		return &Response{Kind: KindInfo, Text: helpText}, false
	case ":gen", ":g":
		return r.generate(ctx, args), false
	case ":seed":
		if len(args) != 1 {
			return errorf("usage: :seed <n>"), false
		}
		seed, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return errorf("invalid seed %q", args[0]), false
		}
		r.reseed(seed)
		return &Response{Kind: KindInfo, Text: fmt.Sprintf("seed set to %d", seed)}, false
	case ":graph":
		var overlay *graph.Overlay
		if len(args) > 0 {
			overlay = &graph.Overlay{Path: r.engine.Match(ctx, args[0]).Path}
		}
		return &Response{Kind: KindGraph, Text: graph.GenerateMermaid(r.engine.Inspect(), overlay)}, false
	}
	return errorf("unknown command %s (try :help)", cmd), false
}

func (r *Runner) match(ctx context.Context, input string) *Response {
	res := r.engine.Match(ctx, input)
	return &Response{Kind: KindMatch, Match: &Match{
		Input:    input,
		Accepted: res.Accepted,
		Path:     res.Path,
		Calls:    res.Calls,
	}}
}

func (r *Runner) generate(ctx context.Context, args []string) *Response {
	n := 1
	if len(args) > 0 {
		var err error
		if n, err = strconv.Atoi(args[0]); err != nil || n < 1 || n > DefaultMaxGenerate {
			return errorf("count must be between 1 and %d", DefaultMaxGenerate)
		}
	}

	samples := make([]string, 0, n)
	for s, err := range r.engine.Generate(ctx, n, r.rng) {
		if err != nil {
			return errorf("%v", err)
		}
		samples = append(samples, s)
	}
	return &Response{Kind: KindSamples, Samples: samples}
}

func errorf(format string, args ...any) *Response {
	return &Response{Kind: KindError, Text: fmt.Sprintf(format, args...)}
}
