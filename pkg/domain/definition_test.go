package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sample() *Definition {
	return &Definition{
		Name:   "sample",
		Marker: "<go>",
		States: []StateDef{
			{ID: "begin", Start: true},
			{ID: "mid"},
			{ID: "done", End: true},
		},
		Transitions: []TransitionDef{
			{From: "begin", To: "mid", Label: "<go>"},
			{From: "mid", To: "mid", Label: "ab"},
			{From: "mid", To: "done", Label: "bγa"},
		},
	}
}

func TestDefinition_Alphabet(t *testing.T) {
	assert.Equal(t, []rune{'a', 'b', 'γ'}, sample().Alphabet(), "marker runes are excluded")
	assert.Empty(t, (&Definition{}).Alphabet())
}

func TestDefinition_Defaults(t *testing.T) {
	def := sample()
	assert.Equal(t, "begin", def.StartState())
	assert.Equal(t, "done", def.EndState())
	assert.Equal(t, "<go>", def.EffectiveMarker())
	assert.Equal(t, MatchReversed, def.EffectiveMode())

	empty := &Definition{}
	assert.Equal(t, DefaultMarker, empty.EffectiveMarker())
	assert.Empty(t, empty.StartState())
	assert.Empty(t, empty.EndState())
}

func TestDefinition_Clone(t *testing.T) {
	def := sample()
	c := def.Clone()
	c.States[0].ID = "changed"
	c.Transitions[0].Label = "changed"

	assert.Equal(t, "begin", def.States[0].ID)
	assert.Equal(t, "<go>", def.Transitions[0].Label)
	assert.Nil(t, (*Definition)(nil).Clone())
}
