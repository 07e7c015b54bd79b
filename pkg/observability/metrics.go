package observability

import (
	"context"
	"strconv"

	"github.com/aretw0/fsg/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors registered for an engine.
type Metrics struct {
	Samples       *prometheus.CounterVec
	SampleLength  *prometheus.HistogramVec
	SampleSteps   *prometheus.HistogramVec
	Matches       *prometheus.CounterVec
	MatchCalls    *prometheus.HistogramVec
	MatchDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		Samples: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fsg_samples_total",
				Help: "Total number of generator walks by outcome",
			},
			[]string{"automaton", "outcome"},
		),
		SampleLength: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fsg_sample_length_bytes",
				Help:    "Length of generated strings",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
			[]string{"automaton"},
		),
		SampleSteps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fsg_sample_steps",
				Help:    "Edges traversed per generator walk",
				Buckets: prometheus.ExponentialBuckets(1, 2, 14),
			},
			[]string{"automaton"},
		),
		Matches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fsg_matches_total",
				Help: "Total number of acceptance tests by result",
			},
			[]string{"automaton", "accepted"},
		),
		MatchCalls: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fsg_match_search_calls",
				Help:    "Backtracking search calls per acceptance test",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
			[]string{"automaton"},
		),
		MatchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "fsg_match_duration_seconds",
				Help: "Duration of acceptance tests",
			},
			[]string{"automaton"},
		),
	}

	reg.MustRegister(m.Samples, m.SampleLength, m.SampleSteps, m.Matches, m.MatchCalls, m.MatchDuration)
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSample: func(_ context.Context, e *domain.SampleEvent) {
			outcome := "ok"
			if e.Err != nil {
				outcome = "error"
			}
			m.Samples.WithLabelValues(e.Automaton, outcome).Inc()
			m.SampleSteps.WithLabelValues(e.Automaton).Observe(float64(e.Steps))
			if e.Err == nil {
				m.SampleLength.WithLabelValues(e.Automaton).Observe(float64(len(e.Output)))
			}
		},
		OnMatch: func(_ context.Context, e *domain.MatchEvent) {
			m.Matches.WithLabelValues(e.Automaton, strconv.FormatBool(e.Accepted)).Inc()
			m.MatchCalls.WithLabelValues(e.Automaton).Observe(float64(e.Calls))
			m.MatchDuration.WithLabelValues(e.Automaton).Observe(e.Took.Seconds())
		},
	}
}
