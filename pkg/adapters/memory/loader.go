package memory

import (
	"context"
	"fmt"

	"github.com/aretw0/fsg/pkg/domain"
)

// Loader implements ports.DefinitionLoader over a definition held in memory.
type Loader struct {
	def *domain.Definition
}

// NewLoader creates a new in-memory loader. The definition is copied.
func NewLoader(def *domain.Definition) *Loader {
	return &Loader{def: def.Clone()}
}

// Load returns a copy of the definition.
func (l *Loader) Load(ctx context.Context) (*domain.Definition, error) {
	if l.def == nil {
		return nil, fmt.Errorf("%w: no definition loaded", domain.ErrInvalidDefinition)
	}
	return l.def.Clone(), nil
}
