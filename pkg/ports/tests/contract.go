package tests

import (
	"context"
	"testing"

	"github.com/aretw0/fsg/pkg/automaton"
	"github.com/aretw0/fsg/pkg/domain"
	"github.com/aretw0/fsg/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DefinitionLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.DefinitionLoader.
// expected is the definition the loader was seeded with; states and transitions are compared in order.
func DefinitionLoaderContractTest(t *testing.T, loader ports.DefinitionLoader, expected *domain.Definition) {
	t.Helper()
	ctx := context.Background()

	// 1. Load returns the seeded definition
	t.Run("Load", func(t *testing.T) {
		def, err := loader.Load(ctx)
		require.NoError(t, err)

		assert.Equal(t, expected.StartState(), def.StartState())
		assert.Equal(t, expected.EndState(), def.EndState())
		assert.Equal(t, expected.States, def.States)
		assert.Equal(t, expected.Transitions, def.Transitions)
	})

	// 2. Load returns independent copies
	t.Run("Load_Isolation", func(t *testing.T) {
		first, err := loader.Load(ctx)
		require.NoError(t, err)
		first.States[0].ID = "mutated"

		second, err := loader.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, expected.States[0].ID, second.States[0].ID)
	})

	// 3. The definition compiles
	t.Run("Compile", func(t *testing.T) {
		def, err := loader.Load(ctx)
		require.NoError(t, err)

		_, err = automaton.FromDefinition(def)
		assert.NoError(t, err)
	})
}
