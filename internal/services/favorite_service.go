package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"fabhomes/internal/models"
)

type FavoriteService struct {
	Favorites  FavoriteStore
	Properties PropertyStore
}

func (s *FavoriteService) List(ctx context.Context, userID uuid.UUID, page models.PageRequest) ([]models.FavoriteView, int, error) {
	items, count, err := s.Favorites.ListByUser(ctx, userID, page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	if err := checkPage(page, count); err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

// Toggle flips the caller's membership for a property. Removal is tried
// first; the unique (user, property) key settles concurrent inserts.
func (s *FavoriteService) Toggle(ctx context.Context, userID uuid.UUID, propertyID *uuid.UUID) (models.ToggleResult, error) {
	if propertyID == nil {
		return models.ToggleResult{}, models.NewValidationError("property_id", "required", "property_id is required")
	}
	if _, err := s.Properties.GetByID(ctx, *propertyID); err != nil {
		return models.ToggleResult{}, err
	}

	removed, err := s.Favorites.Remove(ctx, userID, *propertyID)
	if err != nil {
		return models.ToggleResult{}, err
	}
	if removed {
		return models.ToggleResult{IsFavorite: false, PropertyID: *propertyID}, nil
	}

	err = s.Favorites.Add(ctx, newFavorite(userID, *propertyID))
	switch {
	case errors.Is(err, models.ErrConflict):
		return models.ToggleResult{IsFavorite: true, PropertyID: *propertyID}, nil
	case err != nil:
		return models.ToggleResult{}, err
	}
	return models.ToggleResult{IsFavorite: true, PropertyID: *propertyID, Created: true}, nil
}

// Add favorites a property explicitly; an existing pair is a conflict.
func (s *FavoriteService) Add(ctx context.Context, userID uuid.UUID, propertyID *uuid.UUID) (models.FavoriteView, error) {
	if propertyID == nil {
		return models.FavoriteView{}, models.NewValidationError("property_id", "required", "property_id is required")
	}
	summary, err := s.Properties.GetSummary(ctx, *propertyID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.FavoriteView{}, models.NewValidationError("property_id", "does_not_exist", "Invalid pk - object does not exist.")
		}
		return models.FavoriteView{}, err
	}

	f := newFavorite(userID, *propertyID)
	if err := s.Favorites.Add(ctx, f); err != nil {
		return models.FavoriteView{}, err
	}
	summary.FavoritesCount++
	return models.FavoriteView{ID: f.ID, Property: summary, CreatedAt: f.CreatedAt}, nil
}

func (s *FavoriteService) Remove(ctx context.Context, userID, id uuid.UUID) error {
	return s.Favorites.DeleteByID(ctx, id, userID)
}

func newFavorite(userID, propertyID uuid.UUID) models.Favorite {
	return models.Favorite{
		ID:         uuid.New(),
		UserID:     userID,
		PropertyID: propertyID,
		CreatedAt:  time.Now().UTC(),
	}
}
