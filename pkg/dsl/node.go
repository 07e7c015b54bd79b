package dsl

import "github.com/aretw0/fsg/pkg/domain"

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	state       domain.StateDef
	transitions []domain.TransitionDef
	builder     *Builder
}

// Start flags the state as the start state.
func (s *StateBuilder) Start() *StateBuilder {
	s.state.Start = true
	return s
}

// End flags the state as the end state.
func (s *StateBuilder) End() *StateBuilder {
	s.state.End = true
	return s
}

// Describe attaches free text shown by visualization tools.
func (s *StateBuilder) Describe(text string) *StateBuilder {
	s.state.Description = text
	return s
}

// Go adds an unlabelled transition. Only valid when leaving the start state,
// where the edge carries the marker.
func (s *StateBuilder) Go(target string) *StateBuilder {
	return s.On("", target)
}

// On adds a transition to target consuming label.
// The target is declared implicitly if it does not exist yet.
func (s *StateBuilder) On(label, target string) *StateBuilder {
	s.builder.Add(target)
	s.transitions = append(s.transitions, domain.TransitionDef{
		From:  s.state.ID,
		To:    target,
		Label: label,
	})
	return s
}

// State switches to (or declares) another state, for chaining.
func (s *StateBuilder) State(id string) *StateBuilder {
	return s.builder.Add(id)
}

// Build returns the underlying domain.StateDef.
func (s *StateBuilder) Build() domain.StateDef {
	return s.state
}
