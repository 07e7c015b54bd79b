package domain

import "errors"

// Construction errors.
var (
	// ErrUnknownState is returned when a transition or lookup references a state that was never registered.
	ErrUnknownState = errors.New("unknown state")

	// ErrDuplicateState is returned when a state name is registered twice.
	ErrDuplicateState = errors.New("duplicate state")

	// ErrMultipleStart is returned when a second state is flagged as start.
	ErrMultipleStart = errors.New("multiple start states")

	// ErrMultipleEnd is returned when a second state is flagged as end.
	ErrMultipleEnd = errors.New("multiple end states")

	// ErrNoStartState is returned when an automaton has no start state.
	ErrNoStartState = errors.New("no start state")

	// ErrNoEndState is returned when an automaton has no end state.
	ErrNoEndState = errors.New("no end state")

	// ErrEmptyLabel is returned when a transition that does not leave the start state has an empty label.
	ErrEmptyLabel = errors.New("empty transition label")

	// ErrStartLabel is returned when a transition leaving the start state carries a label other than the marker.
	ErrStartLabel = errors.New("start transition must carry the marker label")

	// ErrStartReentry is returned when a transition targets the start state.
	ErrStartReentry = errors.New("transition enters the start state")

	// ErrAsymmetricLabel is returned in literal match mode when a label is not a palindrome.
	ErrAsymmetricLabel = errors.New("label is not a palindrome")

	// ErrInvalidDefinition is returned when a definition document cannot be decoded.
	ErrInvalidDefinition = errors.New("invalid definition")
)

// Traversal errors.
var (
	// ErrNoOutboundTransition is returned when a walk reaches a non-end state without outbound transitions.
	ErrNoOutboundTransition = errors.New("no outbound transition")

	// ErrGenerationDivergence is returned when a walk exceeds the configured maximum step count.
	ErrGenerationDivergence = errors.New("generation diverged")
)

// ErrReportNotFound is returned when a report ID cannot be found in the store.
var ErrReportNotFound = errors.New("report not found")
