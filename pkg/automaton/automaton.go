package automaton

import (
	"fmt"

	"github.com/aretw0/fsg/pkg/domain"
)

// StateID addresses a state inside its Automaton.
type StateID int

// NoState is returned by accessors when a state is not registered.
const NoState StateID = -1

// Edge is one side of a transition. In an outbound list State is the target;
// in an inbound list it is the source.
type Edge struct {
	State StateID
	Label string
}

// State is a node of the automaton.
type State struct {
	ID       StateID
	Name     string
	Start    bool
	End      bool
	Outbound []Edge
	Inbound  []Edge
}

// Automaton owns every state and records the unique start and end states.
type Automaton struct {
	name   string
	marker string
	mode   domain.MatchMode

	states []State
	index  map[string]StateID
	start  StateID
	end    StateID

	descriptions map[StateID]string
}

// Option configures an Automaton.
type Option func(*Automaton)

// WithName sets a descriptive name used by logs and reports.
func WithName(name string) Option {
	return func(a *Automaton) {
		a.name = name
	}
}

// WithMarker overrides the synthetic start label (default domain.DefaultMarker).
// An empty marker is ignored.
func WithMarker(marker string) Option {
	return func(a *Automaton) {
		if marker != "" {
			a.marker = marker
		}
	}
}

// WithMatchMode selects how matchers built from this automaton compare labels.
func WithMatchMode(mode domain.MatchMode) Option {
	return func(a *Automaton) {
		if mode != "" {
			a.mode = mode
		}
	}
}

// New creates an empty automaton.
func New(opts ...Option) *Automaton {
	a := &Automaton{
		marker:       domain.DefaultMarker,
		mode:         domain.MatchReversed,
		index:        make(map[string]StateID),
		start:        NoState,
		end:          NoState,
		descriptions: make(map[StateID]string),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AddState registers a state and returns its ID.
// A state flagged start (or end) becomes the automaton's start (or end) state.
// Registering an existing name, or a second start/end state, is an error.
func (a *Automaton) AddState(def domain.StateDef) (StateID, error) {
	if def.ID == "" {
		return NoState, fmt.Errorf("%w: empty state name", domain.ErrInvalidDefinition)
	}
	if _, ok := a.index[def.ID]; ok {
		return NoState, fmt.Errorf("%w: %q", domain.ErrDuplicateState, def.ID)
	}
	if def.Start && a.start != NoState {
		return NoState, fmt.Errorf("%w: %q and %q", domain.ErrMultipleStart, a.states[a.start].Name, def.ID)
	}
	if def.End && a.end != NoState {
		return NoState, fmt.Errorf("%w: %q and %q", domain.ErrMultipleEnd, a.states[a.end].Name, def.ID)
	}

	id := StateID(len(a.states))
	a.states = append(a.states, State{
		ID:    id,
		Name:  def.ID,
		Start: def.Start,
		End:   def.End,
	})
	a.index[def.ID] = id

	if def.Start {
		a.start = id
	}
	if def.End {
		a.end = id
	}
	if def.Description != "" {
		a.descriptions[id] = def.Description
	}
	return id, nil
}

// AddTransition appends an edge from -> to carrying label.
// Edges leaving the start state carry the marker; their label must be empty or
// equal to the marker. Every other edge needs a non-empty label.
func (a *Automaton) AddTransition(from, to StateID, label string) error {
	if !a.valid(from) {
		return fmt.Errorf("%w: id %d", domain.ErrUnknownState, from)
	}
	if !a.valid(to) {
		return fmt.Errorf("%w: id %d", domain.ErrUnknownState, to)
	}
	if to == a.start {
		return fmt.Errorf("%w: %s -> %s", domain.ErrStartReentry, a.states[from].Name, a.states[to].Name)
	}

	if from == a.start {
		if label != "" && label != a.marker {
			return fmt.Errorf("%w: %s -> %s has %q", domain.ErrStartLabel, a.states[from].Name, a.states[to].Name, label)
		}
		label = a.marker
	} else if label == "" {
		return fmt.Errorf("%w: %s -> %s", domain.ErrEmptyLabel, a.states[from].Name, a.states[to].Name)
	}

	a.states[from].Outbound = append(a.states[from].Outbound, Edge{State: to, Label: label})
	a.states[to].Inbound = append(a.states[to].Inbound, Edge{State: from, Label: label})
	return nil
}

// Connect is AddTransition addressed by state names.
func (a *Automaton) Connect(from, to, label string) error {
	fromID, ok := a.index[from]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownState, from)
	}
	toID, ok := a.index[to]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownState, to)
	}
	return a.AddTransition(fromID, toID, label)
}

func (a *Automaton) valid(id StateID) bool {
	return id >= 0 && int(id) < len(a.states)
}

// Name returns the descriptive name of the automaton.
func (a *Automaton) Name() string { return a.name }

// Marker returns the synthetic label carried by start transitions.
func (a *Automaton) Marker() string { return a.marker }

// Mode returns the label comparison mode used by matchers by default.
func (a *Automaton) Mode() domain.MatchMode { return a.mode }

// Start returns the start state ID, or NoState.
func (a *Automaton) Start() StateID { return a.start }

// End returns the end state ID, or NoState.
func (a *Automaton) End() StateID { return a.end }

// Len returns the number of registered states.
func (a *Automaton) Len() int { return len(a.states) }

// Lookup resolves a state name.
func (a *Automaton) Lookup(name string) (StateID, bool) {
	id, ok := a.index[name]
	return id, ok
}

// State returns the state with the given ID.
// The returned adjacency slices are shared with the automaton and must not be modified.
func (a *Automaton) State(id StateID) (State, error) {
	if !a.valid(id) {
		return State{}, fmt.Errorf("%w: id %d", domain.ErrUnknownState, id)
	}
	return a.states[id], nil
}

// States returns every state in registration order.
func (a *Automaton) States() []State {
	out := make([]State, len(a.states))
	copy(out, a.states)
	return out
}

func (a *Automaton) stateName(id StateID) string {
	if !a.valid(id) {
		return fmt.Sprintf("#%d", id)
	}
	return a.states[id].Name
}
