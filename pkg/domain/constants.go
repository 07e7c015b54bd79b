package domain

// DefaultMarker is the synthetic label carried by transitions leaving the start state.
const DefaultMarker = "^"

// MatchMode selects how the backward matcher compares labels against the reversed input.
type MatchMode string

const (
	// MatchReversed compares the reversed input against reversed labels. Correct for any label.
	MatchReversed MatchMode = "reversed"
	// MatchLiteral compares the reversed input against labels as written.
	// Only sound when every label is a palindrome; automatons are validated accordingly.
	MatchLiteral MatchMode = "literal"
)

// Valid reports whether m is a known mode. The zero value is treated as MatchReversed.
func (m MatchMode) Valid() bool {
	switch m {
	case "", MatchReversed, MatchLiteral:
		return true
	}
	return false
}
