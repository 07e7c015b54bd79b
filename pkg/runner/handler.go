package runner

import "context"

// Kind classifies a Response.
type Kind string

const (
	KindMatch   Kind = "match"
	KindSamples Kind = "samples"
	KindGraph   Kind = "graph"
	KindInfo    Kind = "info"
	KindError   Kind = "error"
)

// Match is the verdict for one input line.
type Match struct {
	Input    string   `json:"input"`
	Accepted bool     `json:"accepted"`
	Path     []string `json:"path,omitempty"`
	Calls    int      `json:"calls"`
}

// Response is what the loop produces for one line of input.
type Response struct {
	Kind    Kind     `json:"kind"`
	Match   *Match   `json:"match,omitempty"`
	Samples []string `json:"samples,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (CLI/TUI) and JSON (Structured) modes.
type IOHandler interface {
	// Output presents one response.
	Output(ctx context.Context, resp Response) error

	// Input reads the next line. It returns io.EOF when the source is exhausted.
	Input(ctx context.Context) (string, error)
}
