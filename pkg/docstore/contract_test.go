package docstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// runContract exercises behaviour every Store implementation must share.
func runContract(t *testing.T, store Store, collection string) {
	t.Helper()
	ctx := context.Background()

	t.Run("add then get", func(t *testing.T) {
		id, err := store.Add(ctx, collection, map[string]any{"name": "Tee", "price": 19.5, "tags": []any{"a", "b"}})
		require.NoError(t, err)
		require.NotEmpty(t, id)

		doc, err := store.Get(ctx, collection, id)
		require.NoError(t, err)
		require.Equal(t, id, doc.ID)
		require.Equal(t, "Tee", doc.Data["name"])
		require.Equal(t, 19.5, doc.Data["price"])
		require.Equal(t, []any{"a", "b"}, doc.Data["tags"])
	})

	t.Run("update merges top-level keys", func(t *testing.T) {
		id, err := store.Add(ctx, collection, map[string]any{"name": "Pants", "price": 40.0})
		require.NoError(t, err)

		require.NoError(t, store.Update(ctx, collection, id, map[string]any{"price": 35.0, "is_active": false}))

		doc, err := store.Get(ctx, collection, id)
		require.NoError(t, err)
		require.Equal(t, "Pants", doc.Data["name"])
		require.Equal(t, 35.0, doc.Data["price"])
		require.Equal(t, false, doc.Data["is_active"])
	})

	t.Run("missing documents", func(t *testing.T) {
		_, err := store.Get(ctx, collection, "does-not-exist")
		require.True(t, errors.Is(err, ErrNotFound), "get: %v", err)
		require.True(t, errors.Is(store.Update(ctx, collection, "does-not-exist", map[string]any{"x": 1}), ErrNotFound))
		require.True(t, errors.Is(store.Delete(ctx, collection, "does-not-exist"), ErrNotFound))
		_, err = store.Get(ctx, collection, "")
		require.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("delete removes and list reflects it", func(t *testing.T) {
		before, err := store.List(ctx, collection)
		require.NoError(t, err)

		id, err := store.Add(ctx, collection, map[string]any{"name": "Cap"})
		require.NoError(t, err)

		during, err := store.List(ctx, collection)
		require.NoError(t, err)
		require.Len(t, during, len(before)+1)

		require.NoError(t, store.Delete(ctx, collection, id))
		after, err := store.List(ctx, collection)
		require.NoError(t, err)
		require.Len(t, after, len(before))

		_, err = store.Get(ctx, collection, id)
		require.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("ping", func(t *testing.T) {
		require.NoError(t, store.Ping(ctx))
	})
}
