package domain

// TransitionDef defines a labelled edge between two states.
type TransitionDef struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`

	// Label is the text consumed when the edge is traversed.
	// Transitions leaving the start state may omit it; they carry the marker.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}
