package dsl

import (
	"testing"

	"github.com/aretw0/fsg/pkg/automaton"
	"github.com/aretw0/fsg/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_DemoFlow(t *testing.T) {
	// 1. Build the automaton using the DSL
	b := New("demo")

	b.Start("^").Go("qa")

	b.Add("qa").
		On("f", "qb").
		On("s", "qd").
		On("g", "qc")

	b.Add("qb").
		On("gg", "qd").
		On("s", "qa")

	b.Add("qc").
		On("ff", "qa").
		On("g", "qa").
		On("s", "qb").
		On("g", "qd")

	b.End("qd").Describe("accepting state")

	// 2. Verify the definition keeps declaration order
	def := b.Definition()
	ids := make([]string, 0, len(def.States))
	for _, s := range def.States {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"^", "qa", "qb", "qd", "qc"}, ids)
	assert.Len(t, def.Transitions, 10)
	assert.Equal(t, domain.TransitionDef{From: "^", To: "qa"}, def.Transitions[0])

	// 3. Compile
	a, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "demo", a.Name())

	m := automaton.NewMatcher(a)
	assert.True(t, m.Matches("s"))
	assert.True(t, m.Matches("fgg"))
	assert.True(t, m.Matches("gg"))
	assert.False(t, m.Matches("xyz"))
	assert.False(t, m.Matches(""))

	end, err := a.State(a.End())
	require.NoError(t, err)
	assert.Equal(t, "qd", end.Name)
	assert.Equal(t, "accepting state", a.Definition().States[3].Description)
}

func TestBuilder_Options(t *testing.T) {
	b := New("mirror").Marker("#").Mode(domain.MatchLiteral)
	b.Start("s").Go("q")
	b.Add("q").On("aba", "e")
	b.End("e")

	a, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "#", a.Marker())
	assert.Equal(t, domain.MatchLiteral, a.Mode())
	assert.True(t, automaton.NewMatcher(a).Matches("aba"))
}

func TestBuilder_Errors(t *testing.T) {
	t.Run("missing end", func(t *testing.T) {
		b := New("broken")
		b.Start("^").Go("q")
		b.Add("q").On("x", "q")

		_, err := b.Build()
		assert.ErrorIs(t, err, domain.ErrNoEndState)
		assert.ErrorContains(t, err, "broken")
	})

	t.Run("labelled start edge", func(t *testing.T) {
		b := New("broken")
		b.Start("^").On("x", "e")
		b.End("e")

		_, err := b.Build()
		assert.ErrorIs(t, err, domain.ErrStartLabel)
	})

	t.Run("asymmetric label in literal mode", func(t *testing.T) {
		b := New("broken").Mode(domain.MatchLiteral)
		b.Start("^").Go("q")
		b.Add("q").On("ab", "e")
		b.End("e")

		_, err := b.Build()
		assert.ErrorIs(t, err, domain.ErrAsymmetricLabel)
	})

	t.Run("add returns the existing state", func(t *testing.T) {
		b := New("x")
		first := b.Add("q")
		assert.Same(t, first, b.Add("q"))
		assert.Same(t, first, first.State("q"))
	})
}
