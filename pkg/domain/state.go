package domain

// StateDef describes a single state of an automaton.
type StateDef struct {
	ID    string `json:"id" yaml:"id"`
	Start bool   `json:"start,omitempty" yaml:"start,omitempty"`
	End   bool   `json:"end,omitempty" yaml:"end,omitempty"`

	// Description is free text shown by visualization tools.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}
