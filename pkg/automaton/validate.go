package automaton

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/aretw0/fsg/pkg/domain"
)

// Validate checks the structural invariants the Generator and Matcher rely on.
// All violations are reported together; use errors.Is to test for a specific one.
func (a *Automaton) Validate() error {
	var errs []error

	if a.start == NoState {
		errs = append(errs, domain.ErrNoStartState)
	}
	if a.end == NoState {
		errs = append(errs, domain.ErrNoEndState)
	}

	for _, s := range a.states {
		if !s.End && len(s.Outbound) == 0 {
			errs = append(errs, fmt.Errorf("%w: %q", domain.ErrNoOutboundTransition, s.Name))
		}
		// Start edges carry the marker, which the matcher always reverses.
		if a.mode != domain.MatchLiteral || s.Start {
			continue
		}
		for _, e := range s.Outbound {
			if !isPalindrome(e.Label) {
				errs = append(errs, fmt.Errorf("%w: %s -> %s has %q", domain.ErrAsymmetricLabel, s.Name, a.stateName(e.State), e.Label))
			}
		}
	}

	return errors.Join(errs...)
}

func isPalindrome(s string) bool {
	return reverse(s) == s
}

// reverse reverses s rune by rune. Invalid UTF-8 bytes are moved as single
// bytes rather than re-encoded, so reverse(reverse(s)) == s for any s.
func reverse(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); {
		_, size := utf8.DecodeRuneInString(s[i:])
		copy(out[len(s)-i-size:], s[i:i+size])
		i += size
	}
	return string(out)
}
