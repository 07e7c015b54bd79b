package harness

import "errors"

var (
	// ErrInvalidConfig indicates a malformed harness config.
	ErrInvalidConfig = errors.New("invalid harness config")
	// ErrInvalidPattern indicates a pattern that does not compile.
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrEmptyAlphabet indicates that reference inputs cannot be drawn.
	ErrEmptyAlphabet = errors.New("empty alphabet")
)
