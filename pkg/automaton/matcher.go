package automaton

import (
	"strings"

	"github.com/aretw0/fsg/pkg/domain"
)

// Matcher decides acceptance by searching backwards from the end state.
type Matcher struct {
	automaton *Automaton
	mode      domain.MatchMode
}

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher)

// WithMode overrides the automaton's label comparison mode.
func WithMode(mode domain.MatchMode) MatcherOption {
	return func(m *Matcher) {
		if mode != "" {
			m.mode = mode
		}
	}
}

// NewMatcher creates a matcher over a. The automaton is not copied.
func NewMatcher(a *Automaton, opts ...MatcherOption) *Matcher {
	m := &Matcher{
		automaton: a,
		mode:      a.mode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MatchResult describes the outcome of a backward search.
type MatchResult struct {
	Accepted bool

	// Path holds the state names of one accepting walk, start first.
	// Empty when the input is rejected.
	Path []string

	// Calls counts search invocations, including failed branches.
	Calls int

	// Depth is the largest number of edges followed on any branch.
	Depth int
}

// Matches reports whether input is spelled by some walk from start to end.
func (m *Matcher) Matches(input string) bool {
	return m.Match(input).Accepted
}

// Match runs the backward search and returns a witness path when input is accepted.
//
// The probe is reverse(marker + input). From the end state, every inbound edge
// whose label prefixes the remaining probe is followed; the search succeeds
// when the start state is reached with nothing left. All ambiguous branches are
// explored until one succeeds.
func (m *Matcher) Match(input string) MatchResult {
	a := m.automaton
	if a.start == NoState || a.end == NoState {
		return MatchResult{}
	}
	if a.start == a.end {
		// No edge may enter the start state, so the only walk is the empty one.
		res := MatchResult{Calls: 1, Accepted: input == ""}
		if res.Accepted {
			res.Path = []string{a.states[a.start].Name}
		}
		return res
	}

	s := &search{
		automaton: a,
		literal:   m.mode == domain.MatchLiteral,
		marker:    reverse(a.marker),
	}
	probe := reverse(a.marker + input)

	res := MatchResult{Accepted: s.run(a.end, probe, 0)}
	res.Calls = s.calls
	res.Depth = s.depth
	if res.Accepted {
		res.Path = make([]string, len(s.path))
		for i, id := range s.path {
			res.Path[i] = a.states[id].Name
		}
	}
	return res
}

type search struct {
	automaton *Automaton
	literal   bool
	// marker is reversed in both modes; the searched string begins with it.
	marker string

	calls int
	depth int
	path  []StateID
}

// run reports whether rest can be consumed walking backwards from id to the start state.
// On success the accepting walk is appended to s.path, start first.
func (s *search) run(id StateID, rest string, depth int) bool {
	s.calls++
	if depth > s.depth {
		s.depth = depth
	}

	state := &s.automaton.states[id]
	if state.Start {
		if rest != "" {
			return false
		}
		s.path = append(s.path, id)
		return true
	}

	for _, e := range state.Inbound {
		label := e.Label
		switch {
		case e.State == s.automaton.start:
			label = s.marker
		case !s.literal:
			label = reverse(label)
		}
		if label == "" || !strings.HasPrefix(rest, label) {
			continue
		}
		if s.run(e.State, rest[len(label):], depth+1) {
			s.path = append(s.path, id)
			return true
		}
	}
	return false
}
