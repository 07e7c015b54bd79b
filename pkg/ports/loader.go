package ports

import (
	"context"

	"github.com/aretw0/fsg/pkg/domain"
)

// DefinitionLoader defines how the engine retrieves the automaton definition.
// This allows the storage layer (Loam, file, memory) to be decoupled.
type DefinitionLoader interface {
	// Load returns the definition. Implementations return a fresh copy on each
	// call; callers may keep it.
	Load(ctx context.Context) (*domain.Definition, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
// Used by `fsg serve --watch` to reload the engine.
type Watchable interface {
	// Watch returns a channel that receives the changed source (file or document
	// ID) whenever the underlying definition changes. It is closed when ctx ends.
	Watch(ctx context.Context) (<-chan string, error)
}
