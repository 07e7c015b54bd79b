package harness_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/aretw0/fsg/pkg/adapters/memory"
	"github.com/aretw0/fsg/pkg/automaton"
	"github.com/aretw0/fsg/pkg/domain"
	"github.com/aretw0/fsg/pkg/dsl"
	"github.com/aretw0/fsg/pkg/harness"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Patterns tallied by the original demonstration run. The last one is
// equivalent to the demo automaton.
var demoPatterns = []string{
	"^(gff|gss|ff|sf)*(fgg|gsgg|s|gg)$",
	"^((g?(ss|g))|fs)+(s|gsgg|gg)$",
	"^([f|s|g]+(fs|gss|fs))*(fgg|s|gs[gg|s]*)$",
	"^((g(ss|ff|g))|fs)*(s|((f|gs)?gg))$",
}

const demoReference = "((g(ss|ff|g))|fs)*(s|((f|gs)?gg))"

func demo(t *testing.T) *automaton.Automaton {
	t.Helper()
	b := dsl.New("demo")
	b.Add("start").Start().Go("qa")
	b.Add("qa").On("f", "qb").On("s", "qd").On("g", "qc")
	b.Add("qb").On("gg", "qd").On("s", "qa")
	b.Add("qc").On("ff", "qa").On("g", "qa").On("s", "qb").On("g", "qd")
	b.Add("qd").End()
	a, err := b.Build()
	require.NoError(t, err)
	return a
}

func fixed(t *testing.T) []harness.Option {
	return []harness.Option{
		harness.WithClock(func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }),
		harness.WithIDGenerator(func() string { return "run-1" }),
	}
}

func TestHarness_Demo(t *testing.T) {
	store := memory.NewStore()
	h := harness.New(demo(t), append(fixed(t), harness.WithStore(store))...)

	report, err := h.Run(context.Background(), harness.Config{
		Samples:   2000,
		Seed:      7,
		Patterns:  demoPatterns,
		Reference: demoReference,
		Inputs:    3000,
		MaxLen:    10,
		Workers:   4,
	})
	require.NoError(t, err)

	assert.Equal(t, "run-1", report.ID)
	assert.Equal(t, "demo", report.Automaton)
	assert.Equal(t, uint64(7), report.Seed)
	assert.Equal(t, 2000, report.Samples)

	assert.True(t, report.SelfCheck.Passed(), "failures: %v", report.SelfCheck.Failures)
	assert.Equal(t, 2000, report.SelfCheck.Accepted)

	require.Len(t, report.Patterns, 4)
	for _, p := range report.Patterns {
		assert.Equal(t, 2000, p.Total(), p.Pattern)
	}
	assert.Equal(t, 2000, report.Patterns[3].Passed, "equivalent pattern finds every sample")

	require.NotNil(t, report.Reference)
	assert.True(t, report.Reference.Equivalent(), "mismatches: %v", report.Reference.Mismatches)
	assert.Equal(t, 3000, report.Reference.Inputs)
	assert.Positive(t, report.Reference.Accepted)

	saved, err := store.Load(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, report, saved)
}

func TestHarness_Deterministic(t *testing.T) {
	cfg := harness.Config{Samples: 300, Seed: 99, Patterns: demoPatterns, Reference: demoReference, Inputs: 200}

	first, err := harness.New(demo(t), fixed(t)...).Run(context.Background(), cfg)
	require.NoError(t, err)

	cfg.Workers = 1
	second, err := harness.New(demo(t), fixed(t)...).Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second, "worker count does not change the result")
}

func TestHarness_DetectsWrongReference(t *testing.T) {
	report, err := harness.New(demo(t), fixed(t)...).Run(context.Background(), harness.Config{
		Samples:       100,
		Seed:          1,
		Reference:     "(s|gg)",
		Inputs:        500,
		MaxLen:        6,
		MaxMismatches: 3,
	})
	require.NoError(t, err)

	ref := report.Reference
	require.NotNil(t, ref)
	assert.False(t, ref.Equivalent())
	assert.Positive(t, ref.Disagree)
	assert.Equal(t, ref.Inputs, ref.Agree+ref.Disagree)
	assert.Len(t, ref.Mismatches, 3)
	for _, m := range ref.Mismatches {
		assert.True(t, m.Matcher)
		assert.False(t, m.Reference)
	}
}

func TestHarness_Alphabet(t *testing.T) {
	report, err := harness.New(demo(t), fixed(t)...).Run(context.Background(), harness.Config{
		Samples:   10,
		Seed:      3,
		Reference: demoReference,
		Alphabet:  "fgsx",
		Inputs:    400,
	})
	require.NoError(t, err)
	assert.True(t, report.Reference.Equivalent())
}

func TestHarness_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := harness.New(demo(t)).Run(ctx, harness.Config{Patterns: []string{"(unclosed"}})
		assert.ErrorIs(t, err, harness.ErrInvalidPattern)
	})

	t.Run("invalid reference", func(t *testing.T) {
		_, err := harness.New(demo(t)).Run(ctx, harness.Config{Reference: "[z-a]"})
		assert.ErrorIs(t, err, harness.ErrInvalidPattern)
	})

	t.Run("negative samples", func(t *testing.T) {
		_, err := harness.New(demo(t)).Run(ctx, harness.Config{Samples: -1})
		assert.ErrorIs(t, err, harness.ErrInvalidConfig)
	})

	t.Run("incomplete automaton", func(t *testing.T) {
		a := automaton.New()
		_, err := a.AddState(domain.StateDef{ID: "start", Start: true})
		require.NoError(t, err)

		_, err = harness.New(a).Run(ctx, harness.Config{})
		assert.ErrorIs(t, err, domain.ErrNoEndState)
	})

	t.Run("divergence", func(t *testing.T) {
		_, err := harness.New(demo(t), harness.WithGeneratorOptions(automaton.WithMaxSteps(1))).
			Run(ctx, harness.Config{Samples: 50, Seed: 1})
		assert.ErrorIs(t, err, domain.ErrGenerationDivergence)
	})

	t.Run("cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := harness.New(demo(t)).Run(cctx, harness.Config{Samples: 10})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestHarness_ZeroSamples(t *testing.T) {
	report, err := harness.New(demo(t), fixed(t)...).Run(context.Background(), harness.Config{
		Samples:   0,
		Seed:      5,
		Patterns:  demoPatterns[:1],
		Reference: demoReference,
		Inputs:    50,
	})
	require.NoError(t, err)

	assert.Zero(t, report.Samples)
	assert.True(t, report.SelfCheck.Passed())
	require.Len(t, report.Patterns, 1)
	assert.Zero(t, report.Patterns[0].Passed+report.Patterns[0].Failed)
	require.NotNil(t, report.Reference)
	assert.Equal(t, 50, report.Reference.Inputs)
}

func TestWriteSummary(t *testing.T) {
	report := &domain.Report{
		Samples:   4,
		SelfCheck: domain.SelfCheck{Accepted: 3, Rejected: 1, Failures: []string{"x"}},
		Patterns:  []domain.PatternTally{{Pattern: "^s$", Passed: 1, Failed: 3}},
		Reference: &domain.ReferenceCheck{
			Pattern: "s", Inputs: 2, Agree: 1, Disagree: 1, Accepted: 1,
			Mismatches: []domain.Mismatch{{Input: "ss", Matcher: true}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, harness.WriteSummary(&buf, report))
	assert.Equal(t, `self-check: accepted 3 out of 4
  rejected: "x"
'^s$' -> passed 1 out of 4
reference 's': agree 1 out of 2 (1 accepted)
  mismatch: "ss" matcher=true reference=false
`, buf.String())
}
