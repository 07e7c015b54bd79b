package domain

// Definition is the serializable description of an automaton.
// It is what loaders produce and what the automaton package compiles.
type Definition struct {
	Name   string    `json:"name,omitempty" yaml:"name,omitempty"`
	Marker string    `json:"marker,omitempty" yaml:"marker,omitempty"`
	Mode   MatchMode `json:"mode,omitempty" yaml:"mode,omitempty"`

	States      []StateDef      `json:"states" yaml:"states"`
	Transitions []TransitionDef `json:"transitions" yaml:"transitions"`
}

// EffectiveMarker returns the configured marker or DefaultMarker.
func (d *Definition) EffectiveMarker() string {
	if d.Marker == "" {
		return DefaultMarker
	}
	return d.Marker
}

// EffectiveMode returns the configured match mode or MatchReversed.
func (d *Definition) EffectiveMode() MatchMode {
	if d.Mode == "" {
		return MatchReversed
	}
	return d.Mode
}

// StartState returns the ID of the first state flagged start, or "".
func (d *Definition) StartState() string {
	for _, s := range d.States {
		if s.Start {
			return s.ID
		}
	}
	return ""
}

// EndState returns the ID of the first state flagged end, or "".
func (d *Definition) EndState() string {
	for _, s := range d.States {
		if s.End {
			return s.ID
		}
	}
	return ""
}

// Alphabet returns the distinct characters used by all labels, in first-seen order.
// The marker is excluded.
func (d *Definition) Alphabet() []rune {
	start := d.StartState()
	seen := make(map[rune]bool)
	var runes []rune
	for _, t := range d.Transitions {
		if t.From == start {
			continue
		}
		for _, r := range t.Label {
			if !seen[r] {
				seen[r] = true
				runes = append(runes, r)
			}
		}
	}
	return runes
}

// Clone returns a deep copy of the definition.
func (d *Definition) Clone() *Definition {
	if d == nil {
		return nil
	}
	c := *d
	c.States = append([]StateDef(nil), d.States...)
	c.Transitions = append([]TransitionDef(nil), d.Transitions...)
	return &c
}
