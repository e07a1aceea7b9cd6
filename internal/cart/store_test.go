package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	c := New()
	c.Add(Line{ProductID: 1, Name: "Phone", Price: 45000, Quantity: 1})
	c.Add(Line{ProductID: 2, Name: "Charger", Price: 1500, Quantity: 2})
	require.NoError(t, store.Save(ctx, "sess-1", c))

	loaded, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, c.Lines(), loaded.Lines())
	assert.Equal(t, c.TotalPrice(), loaded.TotalPrice())
}

func TestMemoryStoreUnknownSessionIsEmptyCart(t *testing.T) {
	loaded, err := NewMemoryStore().Load(context.Background(), "nope")
	require.NoError(t, err)
	assert.True(t, loaded.Empty())
}

func TestMemoryStoreClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	c := New()
	c.Add(Line{ProductID: 1, Price: 100, Quantity: 1})
	require.NoError(t, store.Save(ctx, "sess-1", c))
	require.NoError(t, store.Clear(ctx, "sess-1"))

	loaded, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, loaded.Empty())
}

func TestMemoryStoreSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	a := New()
	a.Add(Line{ProductID: 1, Price: 100, Quantity: 1})
	require.NoError(t, store.Save(ctx, "a", a))

	b, err := store.Load(ctx, "b")
	require.NoError(t, err)
	assert.True(t, b.Empty())
}

func TestSnapshotVersionMismatchYieldsEmptyCart(t *testing.T) {
	snap := Snapshot{
		Version: SnapshotVersion + 1,
		Lines:   []Line{{ProductID: 1, Price: 100, Quantity: 3}},
	}
	assert.True(t, FromSnapshot(snap).Empty())
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := New()
	c.Add(Line{ProductID: 7, Name: "Laptop", Price: 89000, Quantity: 1})

	restored := FromSnapshot(c.Snapshot())
	assert.Equal(t, c.Lines(), restored.Lines())
}
