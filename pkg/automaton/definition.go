package automaton

import (
	"fmt"

	"github.com/aretw0/fsg/pkg/domain"
)

// FromDefinition compiles a Definition into a validated Automaton.
// Options are applied after the definition's own name, marker and mode.
func FromDefinition(def *domain.Definition, opts ...Option) (*Automaton, error) {
	if def == nil {
		return nil, fmt.Errorf("%w: nil definition", domain.ErrInvalidDefinition)
	}
	if !def.Mode.Valid() {
		return nil, fmt.Errorf("%w: unknown match mode %q", domain.ErrInvalidDefinition, def.Mode)
	}

	base := []Option{
		WithName(def.Name),
		WithMarker(def.Marker),
		WithMatchMode(def.Mode),
	}
	a := New(append(base, opts...)...)

	for _, s := range def.States {
		if _, err := a.AddState(s); err != nil {
			return nil, err
		}
	}
	for _, t := range def.Transitions {
		if err := a.Connect(t.From, t.To, t.Label); err != nil {
			return nil, err
		}
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Definition returns the serializable form of the automaton.
// Start transitions are emitted without a label.
func (a *Automaton) Definition() *domain.Definition {
	def := &domain.Definition{
		Name:        a.name,
		States:      make([]domain.StateDef, 0, len(a.states)),
		Transitions: []domain.TransitionDef{},
	}
	if a.marker != domain.DefaultMarker {
		def.Marker = a.marker
	}
	if a.mode != domain.MatchReversed {
		def.Mode = a.mode
	}

	for _, s := range a.states {
		def.States = append(def.States, domain.StateDef{
			ID:          s.Name,
			Start:       s.Start,
			End:         s.End,
			Description: a.descriptions[s.ID],
		})
	}
	for _, s := range a.states {
		for _, e := range s.Outbound {
			label := e.Label
			if s.Start {
				label = ""
			}
			def.Transitions = append(def.Transitions, domain.TransitionDef{
				From:  s.Name,
				To:    a.states[e.State].Name,
				Label: label,
			})
		}
	}
	return def
}
