package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSample EventType = "sample"
	EventMatch  EventType = "match"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Automaton string    `json:"automaton,omitempty"`
}

// SampleEvent is emitted after every forward walk, successful or not.
type SampleEvent struct {
	EventBase
	Output string        `json:"output"`
	Steps  int           `json:"steps"`
	Err    error         `json:"-"`
	Took   time.Duration `json:"took"`
}

// MatchEvent is emitted after every backward acceptance test.
type MatchEvent struct {
	EventBase
	Input    string        `json:"input"`
	Accepted bool          `json:"accepted"`
	Calls    int           `json:"calls"`
	Depth    int           `json:"depth"`
	Took     time.Duration `json:"took"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnSample func(context.Context, *SampleEvent)
	OnMatch  func(context.Context, *MatchEvent)
}

// Merge returns hooks that invoke h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnSample: chain(h.OnSample, other.OnSample),
		OnMatch:  chain(h.OnMatch, other.OnMatch),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
