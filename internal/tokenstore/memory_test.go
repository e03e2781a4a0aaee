package tokenstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	_, ok, err := store.Load(ctx, "client-a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save(ctx, "client-a", "tok-a"))
	require.NoError(t, store.Save(ctx, "client-b", "tok-b"))

	cred, ok, err := store.Load(ctx, "client-a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-a", cred)

	require.NoError(t, store.Clear(ctx, "client-a"))
	_, ok, err = store.Load(ctx, "client-a")
	require.NoError(t, err)
	assert.False(t, ok)

	// Other clients are untouched.
	cred, ok, err = store.Load(ctx, "client-b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-b", cred)
}

func TestMemoryStore_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	require.NoError(t, store.Save(ctx, "client-a", "old"))
	require.NoError(t, store.Save(ctx, "client-a", "new"))

	cred, ok, err := store.Load(ctx, "client-a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "new", cred)
}
