package automaton_test

import (
	"testing"

	"github.com/aretw0/fsg/pkg/automaton"
	"github.com/aretw0/fsg/pkg/domain"
	"github.com/stretchr/testify/require"
)

// demoPattern is the regular expression equivalent to demoDefinition.
// \z is used instead of $ so a trailing newline is not forgiven.
const demoPattern = `^((g(ss|ff|g))|fs)*(s|((f|gs)?gg))\z`

func demoDefinition() *domain.Definition {
	return &domain.Definition{
		Name: "demo",
		States: []domain.StateDef{
			{ID: "^", Start: true},
			{ID: "qa"},
			{ID: "qb"},
			{ID: "qc"},
			{ID: "qd", End: true},
		},
		Transitions: []domain.TransitionDef{
			{From: "^", To: "qa"},
			{From: "qa", To: "qb", Label: "f"},
			{From: "qa", To: "qd", Label: "s"},
			{From: "qa", To: "qc", Label: "g"},
			{From: "qb", To: "qd", Label: "gg"},
			{From: "qb", To: "qa", Label: "s"},
			{From: "qc", To: "qa", Label: "ff"},
			{From: "qc", To: "qa", Label: "g"},
			{From: "qc", To: "qb", Label: "s"},
			{From: "qc", To: "qd", Label: "g"},
		},
	}
}

func newDemo(t testing.TB, opts ...automaton.Option) *automaton.Automaton {
	t.Helper()
	a, err := automaton.FromDefinition(demoDefinition(), opts...)
	require.NoError(t, err)
	return a
}

// linear builds ^ -> q -> end with a single labelled edge q -> end.
func linear(t testing.TB, label string, opts ...automaton.Option) *automaton.Automaton {
	t.Helper()
	a := automaton.New(opts...)
	start, err := a.AddState(domain.StateDef{ID: "^", Start: true})
	require.NoError(t, err)
	q, err := a.AddState(domain.StateDef{ID: "q"})
	require.NoError(t, err)
	end, err := a.AddState(domain.StateDef{ID: "end", End: true})
	require.NoError(t, err)
	require.NoError(t, a.AddTransition(start, q, ""))
	require.NoError(t, a.AddTransition(q, end, label))
	return a
}
