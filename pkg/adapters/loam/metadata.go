package loam

// StateMetadata is the frontmatter of a state document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type StateMetadata struct {
	ID          string `json:"id" mapstructure:"id"`
	Start       bool   `json:"start" mapstructure:"start"`
	End         bool   `json:"end" mapstructure:"end"`
	Description string `json:"description" mapstructure:"description"`

	// Transitions holds outbound edges. Each entry is either a mapping
	// decoded into LoaderTransition or a bare target ID (an unlabelled edge,
	// only meaningful from the start state).
	Transitions []any `json:"transitions" mapstructure:"transitions"`
}

// LoaderTransition is one outbound edge in frontmatter.
type LoaderTransition struct {
	To string `json:"to" mapstructure:"to"`
	// ToFull is accepted as an alias of To.
	ToFull string `json:"to_state" mapstructure:"to_state"`
	Label  string `json:"label" mapstructure:"label"`
}
