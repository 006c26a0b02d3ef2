package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fabhomes/internal/models"
)

func (f *fixture) favoriteService() *FavoriteService {
	return &FavoriteService{Favorites: f.store.Favorites(), Properties: f.store.Properties()}
}

func TestFavoriteToggle(t *testing.T) {
	f := newFixture(t)
	svc := f.favoriteService()
	ctx := context.Background()

	on, err := svc.Toggle(ctx, f.buyer.ID, &f.property.ID)
	require.NoError(t, err)
	assert.True(t, on.IsFavorite)
	assert.True(t, on.Created)
	assert.Equal(t, 1, f.store.FavoriteCount(f.buyer.ID, f.property.ID))

	off, err := svc.Toggle(ctx, f.buyer.ID, &f.property.ID)
	require.NoError(t, err)
	assert.False(t, off.IsFavorite)
	assert.Zero(t, f.store.FavoriteCount(f.buyer.ID, f.property.ID))

	_, err = svc.Toggle(ctx, f.buyer.ID, nil)
	var verr *models.ValidationError
	assert.True(t, errors.As(err, &verr))

	_, err = svc.Toggle(ctx, f.buyer.ID, ptr(uuid.New()))
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestFavoriteToggleConcurrentKeepsOneRow(t *testing.T) {
	f := newFixture(t)
	svc := f.favoriteService()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Toggle(context.Background(), f.buyer.ID, &f.property.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, f.store.FavoriteCount(f.buyer.ID, f.property.ID), 1)
}

func TestFavoriteAddListRemove(t *testing.T) {
	f := newFixture(t)
	svc := f.favoriteService()
	ctx := context.Background()

	view, err := svc.Add(ctx, f.buyer.ID, &f.property.ID)
	require.NoError(t, err)
	assert.Equal(t, f.property.ID, view.Property.ID)

	_, err = svc.Add(ctx, f.buyer.ID, &f.property.ID)
	assert.ErrorIs(t, err, models.ErrConflict)

	_, err = svc.Add(ctx, f.buyer.ID, ptr(uuid.New()))
	var verr *models.ValidationError
	assert.True(t, errors.As(err, &verr))

	items, count, err := svc.List(ctx, f.buyer.ID, models.PageRequest{Number: 1, Size: 12})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, view.ID, items[0].ID)

	assert.ErrorIs(t, svc.Remove(ctx, f.seller.ID, view.ID), models.ErrNotFound, "only the owner can remove")
	require.NoError(t, svc.Remove(ctx, f.buyer.ID, view.ID))
	assert.Zero(t, f.store.FavoriteCount(f.buyer.ID, f.property.ID))
}
