// Package harness checks an automaton against itself and against reference
// patterns.
//
// A run samples strings with the generator and then reports three things:
//
//   - Self check: every sample must be accepted by the matcher.
//   - Pattern tallies: for each configured pattern, how many samples contain
//     a match (search semantics, as in a line-oriented grep).
//   - Reference equivalence: random strings over the automaton's alphabet are
//     fed to both the matcher and an anchored reference pattern, and every
//     disagreement is counted.
//
// Patterns use github.com/dlclark/regexp2, a backtracking engine with
// Perl/Python syntax.
package harness
