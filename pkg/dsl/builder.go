package dsl

import (
	"fmt"

	"github.com/aretw0/fsg/pkg/automaton"
	"github.com/aretw0/fsg/pkg/domain"
)

// Builder manages the automaton construction.
// States and transitions keep their declaration order, which the Generator's
// random choices depend on.
type Builder struct {
	name   string
	marker string
	mode   domain.MatchMode

	states []*StateBuilder
	index  map[string]*StateBuilder
}

// New creates a new automaton builder.
func New(name string) *Builder {
	return &Builder{
		name:  name,
		index: make(map[string]*StateBuilder),
	}
}

// Marker overrides the synthetic start label.
func (b *Builder) Marker(marker string) *Builder {
	b.marker = marker
	return b
}

// Mode selects the matcher's label comparison mode.
func (b *Builder) Mode(mode domain.MatchMode) *Builder {
	b.mode = mode
	return b
}

// Add declares a state. If the state already exists, it returns the existing builder.
func (b *Builder) Add(id string) *StateBuilder {
	if sb, ok := b.index[id]; ok {
		return sb
	}
	sb := &StateBuilder{
		state:   domain.StateDef{ID: id},
		builder: b,
	}
	b.index[id] = sb
	b.states = append(b.states, sb)
	return sb
}

// Start declares the start state.
func (b *Builder) Start(id string) *StateBuilder {
	return b.Add(id).Start()
}

// End declares the end state.
func (b *Builder) End(id string) *StateBuilder {
	return b.Add(id).End()
}

// Definition returns the serializable form of everything declared so far.
func (b *Builder) Definition() *domain.Definition {
	def := &domain.Definition{
		Name:        b.name,
		Marker:      b.marker,
		Mode:        b.mode,
		States:      make([]domain.StateDef, 0, len(b.states)),
		Transitions: []domain.TransitionDef{},
	}
	for _, sb := range b.states {
		def.States = append(def.States, sb.state)
	}
	for _, sb := range b.states {
		def.Transitions = append(def.Transitions, sb.transitions...)
	}
	return def
}

// Build compiles and validates the automaton.
func (b *Builder) Build(opts ...automaton.Option) (*automaton.Automaton, error) {
	a, err := automaton.FromDefinition(b.Definition(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build automaton %q: %w", b.name, err)
	}
	return a, nil
}
