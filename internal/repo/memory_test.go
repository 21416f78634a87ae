package repo

import (
	"context"
	"testing"

	"github.com/grubdash-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreFind(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(&model.Dish{ID: "a"}, &model.Dish{ID: "b"})

	dish, idx, err := store.Find(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "b", dish.ID)

	_, idx, err = store.Find(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, -1, idx)
}

func TestMemoryStoreFindReturnsStoredRecord(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(&model.Dish{ID: "a", Name: "Taco"})

	dish, _, err := store.Find(ctx, "a")
	require.NoError(t, err)
	dish.Name = "Burrito"

	again, _, err := store.Find(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Burrito", again.Name)
}

func TestMemoryStoreInsertKeepsOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore[*model.Order]()

	for _, id := range []string{"1", "2", "3"} {
		require.NoError(t, store.Insert(ctx, &model.Order{ID: id}))
	}

	all, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "1", all[0].ID)
	assert.Equal(t, "3", all[2].ID)
}

func TestMemoryStoreInsertRejectsEmptyID(t *testing.T) {
	store := NewMemoryStore[*model.Dish]()

	err := store.Insert(context.Background(), &model.Dish{Name: "nameless"})
	assert.ErrorIs(t, err, ErrEmptyID)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStoreRemoveAt(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(&model.Order{ID: "1"}, &model.Order{ID: "2"}, &model.Order{ID: "3"})

	require.NoError(t, store.RemoveAt(ctx, 1))

	all, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "1", all[0].ID)
	assert.Equal(t, "3", all[1].ID)

	assert.ErrorIs(t, store.RemoveAt(ctx, 5), ErrOutOfRange)
	assert.ErrorIs(t, store.RemoveAt(ctx, -1), ErrOutOfRange)
}

func TestMemoryStoreAllIsSnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(&model.Dish{ID: "a"})

	all, err := store.All(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Insert(ctx, &model.Dish{ID: "b"}))

	assert.Len(t, all, 1)
	assert.Equal(t, 2, store.Len())
}
