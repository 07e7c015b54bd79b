package automaton

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"strings"

	"github.com/aretw0/fsg/pkg/domain"
)

// DefaultMaxSteps bounds a single forward walk unless overridden with WithMaxSteps.
const DefaultMaxSteps = 10_000

// Source picks a uniformly distributed integer in [0, n).
// *math/rand/v2.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// NewSource returns a PCG-backed source whose sequence depends only on seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generator samples accepted strings by walking the automaton forward.
type Generator struct {
	automaton *Automaton
	maxSteps  int
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithMaxSteps bounds the number of edges a single walk may traverse.
// Zero (or a negative value) disables the bound.
func WithMaxSteps(n int) GeneratorOption {
	return func(g *Generator) {
		g.maxSteps = n
	}
}

// NewGenerator creates a generator over a. The automaton is not copied.
func NewGenerator(a *Automaton, opts ...GeneratorOption) *Generator {
	g := &Generator{
		automaton: a,
		maxSteps:  DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Walk is the trace of a single forward walk.
type Walk struct {
	Output string
	Path   []StateID
	Steps  int
}

// Walk performs one random walk from the start state to the end state.
func (g *Generator) Walk(rng Source) (Walk, error) {
	a := g.automaton
	if a.start == NoState {
		return Walk{}, domain.ErrNoStartState
	}
	if a.end == NoState {
		return Walk{}, domain.ErrNoEndState
	}

	var sb strings.Builder
	current := a.start
	path := []StateID{current}
	steps := 0

	for !a.states[current].End {
		if g.maxSteps > 0 && steps >= g.maxSteps {
			return Walk{Output: sb.String(), Path: path, Steps: steps},
				fmt.Errorf("%w: %d steps without reaching %q (last state %q)", domain.ErrGenerationDivergence, steps, a.states[a.end].Name, a.states[current].Name)
		}

		out := a.states[current].Outbound
		if len(out) == 0 {
			return Walk{Output: sb.String(), Path: path, Steps: steps},
				fmt.Errorf("%w: %q", domain.ErrNoOutboundTransition, a.states[current].Name)
		}

		edge := out[rng.IntN(len(out))]
		if current != a.start {
			sb.WriteString(edge.Label)
		}
		current = edge.State
		path = append(path, current)
		steps++
	}

	return Walk{Output: sb.String(), Path: path, Steps: steps}, nil
}

// Sample returns the labels of one random accepted path.
func (g *Generator) Sample(rng Source) (string, error) {
	w, err := g.Walk(rng)
	if err != nil {
		return "", err
	}
	return w.Output, nil
}

// Generate lazily yields exactly count samples drawn from rng.
// If a walk fails, the error is yielded once and the sequence stops.
func (g *Generator) Generate(count int, rng Source) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for i := 0; i < count; i++ {
			s, err := g.Sample(rng)
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

// SampleN materializes count samples.
func (g *Generator) SampleN(count int, rng Source) ([]string, error) {
	out := make([]string, 0, max(count, 0))
	for s, err := range g.Generate(count, rng) {
		if err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, nil
}
