package harness

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/aretw0/fsg/pkg/automaton"
	"github.com/aretw0/fsg/pkg/domain"
	"github.com/aretw0/fsg/pkg/ports"
	"github.com/dlclark/regexp2"
	"github.com/google/uuid"
)

// DefaultMatchTimeout bounds a single reference pattern evaluation.
const DefaultMatchTimeout = 2 * time.Second

// Harness runs checks over one automaton.
type Harness struct {
	automaton *automaton.Automaton
	genOpts   []automaton.GeneratorOption
	store     ports.ReportStore
	logger    *slog.Logger
	timeout   time.Duration
	now       func() time.Time
	newID     func() string
}

// Option configures a Harness.
type Option func(*Harness)

// WithStore saves every report to store.
func WithStore(store ports.ReportStore) Option {
	return func(h *Harness) { h.store = store }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) { h.logger = logger }
}

// WithGeneratorOptions configures the sampling generator.
func WithGeneratorOptions(opts ...automaton.GeneratorOption) Option {
	return func(h *Harness) { h.genOpts = append(h.genOpts, opts...) }
}

// WithMatchTimeout bounds each pattern evaluation.
func WithMatchTimeout(d time.Duration) Option {
	return func(h *Harness) { h.timeout = d }
}

// WithClock overrides the report timestamp source.
func WithClock(now func() time.Time) Option {
	return func(h *Harness) { h.now = now }
}

// WithIDGenerator overrides report ID generation.
func WithIDGenerator(newID func() string) Option {
	return func(h *Harness) { h.newID = newID }
}

// New creates a harness for a.
func New(a *automaton.Automaton, opts ...Option) *Harness {
	h := &Harness{
		automaton: a,
		logger:    slog.New(slog.DiscardHandler),
		timeout:   DefaultMatchTimeout,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run samples the automaton and evaluates cfg. The report is saved when a
// store is configured.
func (h *Harness) Run(ctx context.Context, cfg Config) (*domain.Report, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	if cfg.Workers == 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Uint64()
	}

	if err := h.automaton.Validate(); err != nil {
		return nil, err
	}

	patterns, err := h.compile(cfg.Patterns, false)
	if err != nil {
		return nil, err
	}
	var reference *regexp2.Regexp
	if cfg.Reference != "" {
		compiled, err := h.compile([]string{cfg.Reference}, true)
		if err != nil {
			return nil, err
		}
		reference = compiled[0]
	}

	started := h.now()
	log := h.logger.With("automaton", h.automaton.Name(), "seed", cfg.Seed)
	log.Info("Harness run started", "samples", cfg.Samples, "patterns", len(cfg.Patterns), "workers", cfg.Workers)

	rng := automaton.NewSource(cfg.Seed)
	samples, err := automaton.NewGenerator(h.automaton, h.genOpts...).SampleN(cfg.Samples, rng)
	if err != nil {
		return nil, fmt.Errorf("sampling failed: %w", err)
	}

	report := &domain.Report{
		ID:        h.newID(),
		Automaton: h.automaton.Name(),
		CreatedAt: started.UTC(),
		Seed:      cfg.Seed,
		Samples:   len(samples),
	}

	matcher := automaton.NewMatcher(h.automaton)

	sc, tallies, err := h.checkSamples(ctx, cfg, matcher, patterns, samples)
	if err != nil {
		return nil, err
	}
	report.SelfCheck = sc
	report.Patterns = tallies
	if !sc.Passed() {
		log.Warn("Generated strings rejected by matcher", "rejected", sc.Rejected)
	}

	if reference != nil {
		ref, err := h.checkReference(ctx, cfg, matcher, reference, rng)
		if err != nil {
			return nil, err
		}
		report.Reference = ref
		if !ref.Equivalent() {
			log.Warn("Matcher disagrees with reference", "pattern", ref.Pattern, "disagree", ref.Disagree)
		}
	}

	if h.store != nil {
		if err := h.store.Save(ctx, report); err != nil {
			return nil, fmt.Errorf("failed to save report: %w", err)
		}
	}

	log.Info("Harness run finished", "report", report.ID, "took", h.now().Sub(started))
	return report, nil
}

func (h *Harness) compile(patterns []string, anchored bool) ([]*regexp2.Regexp, error) {
	out := make([]*regexp2.Regexp, 0, len(patterns))
	for _, p := range patterns {
		expr := p
		if anchored {
			expr = `\A(?:` + p + `)\z`
		}
		re, err := regexp2.Compile(expr, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, p, err)
		}
		re.MatchTimeout = h.timeout
		out = append(out, re)
	}
	return out, nil
}

type sampleChunk struct {
	accepted int
	failures []string
	passed   []int
}

func (h *Harness) checkSamples(
	ctx context.Context,
	cfg Config,
	matcher *automaton.Matcher,
	patterns []*regexp2.Regexp,
	samples []string,
) (domain.SelfCheck, []domain.PatternTally, error) {
	chunks, err := parallel(ctx, cfg.Workers, samples, func(ctx context.Context, part []string) (sampleChunk, error) {
		res := sampleChunk{passed: make([]int, len(patterns))}
		for i, s := range part {
			if i%1024 == 0 {
				if err := ctx.Err(); err != nil {
					return res, err
				}
			}
			if matcher.Matches(s) {
				res.accepted++
			} else if len(res.failures) < cfg.MaxFailures {
				res.failures = append(res.failures, s)
			}
			for j, re := range patterns {
				ok, err := re.MatchString(s)
				if err != nil {
					return res, fmt.Errorf("pattern %q on %q: %w", re.String(), s, err)
				}
				if ok {
					res.passed[j]++
				}
			}
		}
		return res, nil
	})
	if err != nil {
		return domain.SelfCheck{}, nil, err
	}

	var sc domain.SelfCheck
	passed := make([]int, len(patterns))
	for _, c := range chunks {
		sc.Accepted += c.accepted
		for _, f := range c.failures {
			if len(sc.Failures) < cfg.MaxFailures {
				sc.Failures = append(sc.Failures, f)
			}
		}
		for j, n := range c.passed {
			passed[j] += n
		}
	}
	sc.Rejected = len(samples) - sc.Accepted

	tallies := make([]domain.PatternTally, len(patterns))
	for j := range patterns {
		tallies[j] = domain.PatternTally{
			Pattern: cfg.Patterns[j],
			Passed:  passed[j],
			Failed:  len(samples) - passed[j],
		}
	}
	return sc, tallies, nil
}

type referenceChunk struct {
	agree      int
	accepted   int
	mismatches []domain.Mismatch
	disagree   int
}

func (h *Harness) checkReference(
	ctx context.Context,
	cfg Config,
	matcher *automaton.Matcher,
	reference *regexp2.Regexp,
	rng *rand.Rand,
) (*domain.ReferenceCheck, error) {
	alphabet := []rune(cfg.Alphabet)
	if len(alphabet) == 0 {
		alphabet = h.automaton.Definition().Alphabet()
	}
	if len(alphabet) == 0 {
		return nil, ErrEmptyAlphabet
	}

	inputs := RandomStrings(rng, alphabet, cfg.Inputs, cfg.MaxLen)

	chunks, err := parallel(ctx, cfg.Workers, inputs, func(ctx context.Context, part []string) (referenceChunk, error) {
		var res referenceChunk
		for i, s := range part {
			if i%1024 == 0 {
				if err := ctx.Err(); err != nil {
					return res, err
				}
			}
			got := matcher.Matches(s)
			want, err := reference.MatchString(s)
			if err != nil {
				return res, fmt.Errorf("reference on %q: %w", s, err)
			}
			if got {
				res.accepted++
			}
			if got == want {
				res.agree++
				continue
			}
			res.disagree++
			if len(res.mismatches) < cfg.MaxMismatches {
				res.mismatches = append(res.mismatches, domain.Mismatch{Input: s, Matcher: got, Reference: want})
			}
		}
		return res, nil
	})
	if err != nil {
		return nil, err
	}

	ref := &domain.ReferenceCheck{Pattern: cfg.Reference, Inputs: len(inputs)}
	for _, c := range chunks {
		ref.Agree += c.agree
		ref.Disagree += c.disagree
		ref.Accepted += c.accepted
		for _, m := range c.mismatches {
			if len(ref.Mismatches) < cfg.MaxMismatches {
				ref.Mismatches = append(ref.Mismatches, m)
			}
		}
	}
	return ref, nil
}

// RandomStrings draws count strings over alphabet with lengths uniform in
// [0, maxLen].
func RandomStrings(rng automaton.Source, alphabet []rune, count, maxLen int) []string {
	out := make([]string, count)
	buf := make([]rune, 0, maxLen)
	for i := range out {
		buf = buf[:0]
		n := rng.IntN(maxLen + 1)
		for range n {
			buf = append(buf, alphabet[rng.IntN(len(alphabet))])
		}
		out[i] = string(buf)
	}
	return out
}
