package compiler

import (
	"testing"

	"github.com/aretw0/fsg/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoYAML = `
name: demo
states:
  - {id: "^", start: true}
  - id: qa
  - id: qd
    end: true
transitions:
  - {from: "^", to: qa}
  - {from: qa, to: qd, label: s}
`

func TestParser_Parse(t *testing.T) {
	p := NewParser()

	t.Run("yaml", func(t *testing.T) {
		def, err := p.Parse([]byte(demoYAML))
		require.NoError(t, err)

		assert.Equal(t, "demo", def.Name)
		assert.Equal(t, "^", def.StartState())
		assert.Equal(t, "qd", def.EndState())
		require.Len(t, def.Transitions, 2)
		assert.Equal(t, domain.TransitionDef{From: "qa", To: "qd", Label: "s"}, def.Transitions[1])
		assert.Equal(t, domain.MatchReversed, def.EffectiveMode())
	})

	t.Run("json", func(t *testing.T) {
		def, err := p.Parse([]byte(`{
			"name": "j",
			"mode": "literal",
			"marker": "#",
			"states": [{"id": "s", "start": true}, {"id": "e", "end": true}],
			"transitions": [{"from": "s", "to": "e"}]
		}`))
		require.NoError(t, err)
		assert.Equal(t, domain.MatchLiteral, def.Mode)
		assert.Equal(t, "#", def.EffectiveMarker())
	})

	t.Run("round trip", func(t *testing.T) {
		def, err := p.Parse([]byte(demoYAML))
		require.NoError(t, err)

		out, err := Marshal(def)
		require.NoError(t, err)

		again, err := p.Parse(out)
		require.NoError(t, err)
		assert.Equal(t, def, again)
	})
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", "   \n"},
		{"not a mapping", "- a\n- b\n"},
		{"no states", "name: x\n"},
		{"unknown field", "states: [{id: a}]\ncolour: blue\n"},
		{"bad mode", "mode: sideways\nstates: [{id: a}]\n"},
		{"state without id", "states: [{start: true}]\n"},
		{"dangling transition", "states: [{id: a}]\ntransitions: [{from: a}]\n"},
	}

	p := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, domain.ErrInvalidDefinition)
		})
	}

	t.Run("lenient ignores unknown fields", func(t *testing.T) {
		_, err := NewParser(WithLenient()).Parse([]byte("states: [{id: a}]\ncolour: blue\n"))
		assert.NoError(t, err)
	})
}
