package conversation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLoadUnknownThreadIsEmpty(t *testing.T) {
	store := NewMemoryStore()

	state, err := store.Load(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "t1", state.ThreadID)
	assert.Empty(t, state.Turns)
}

func TestMemoryStoreSaveLoadRoundTrip(t *testing.T) {
	store := NewMemoryStore()

	state := NewState("t1")
	state.Append(
		Turn{Role: RoleUser, Content: "¿Qué es la ONAT?"},
		Turn{Role: RoleAssistant, Content: "La Oficina Nacional de Administración Tributaria."},
	)
	require.NoError(t, store.Save(context.Background(), state))

	loaded, err := store.Load(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, state.Turns, loaded.Turns)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore()

	state := NewState("t1")
	state.Append(Turn{Role: RoleUser, Content: "hola"})
	require.NoError(t, store.Save(context.Background(), state))

	// Mutating what Load returned must not leak into the store.
	first, err := store.Load(context.Background(), "t1")
	require.NoError(t, err)
	first.Append(Turn{Role: RoleAssistant, Content: "intruso"})

	second, err := store.Load(context.Background(), "t1")
	require.NoError(t, err)
	assert.Len(t, second.Turns, 1)
}

func TestMemoryStoreThreadsAreIndependent(t *testing.T) {
	store := NewMemoryStore()

	a := NewState("a")
	a.Append(Turn{Role: RoleUser, Content: "pregunta"})
	require.NoError(t, store.Save(context.Background(), a))

	b, err := store.Load(context.Background(), "b")
	require.NoError(t, err)
	assert.Empty(t, b.Turns)
}
