package automaton_test

import (
	"math/rand/v2"
	"testing"

	"github.com/aretw0/fsg/pkg/automaton"
	"github.com/dlclark/regexp2"
)

func FuzzMatcher_RoundTrip(f *testing.F) {
	f.Add(uint64(0), uint64(0))
	f.Add(uint64(1), uint64(2))
	f.Add(uint64(0xdeadbeef), uint64(42))

	a := newDemo(f)
	gen := automaton.NewGenerator(a)
	m := automaton.NewMatcher(a)

	f.Fuzz(func(t *testing.T, seed1, seed2 uint64) {
		s, err := gen.Sample(rand.New(rand.NewPCG(seed1, seed2)))
		if err != nil {
			t.Fatalf("Sample failed: %v", err)
		}
		if !m.Matches(s) {
			t.Fatalf("generated %q was rejected", s)
		}
	})
}

func FuzzMatcher_Reference(f *testing.F) {
	f.Add("s")
	f.Add("fgg")
	f.Add("gg")
	f.Add("")
	f.Add("xyz")
	f.Add("gssgffgg")

	m := automaton.NewMatcher(newDemo(f))
	ref := regexp2.MustCompile(demoPattern, regexp2.None)

	f.Fuzz(func(t *testing.T, input string) {
		if len(input) > 64 {
			return // Keep the unmemoized search cheap.
		}
		want, err := ref.MatchString(input)
		if err != nil {
			t.Fatalf("reference failed: %v", err)
		}
		if got := m.Matches(input); got != want {
			t.Fatalf("Matches(%q) = %v, reference = %v", input, got, want)
		}
	})
}
