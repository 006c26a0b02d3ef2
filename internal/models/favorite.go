package models

import (
	"time"

	"github.com/google/uuid"
)

type Favorite struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"-"`
	PropertyID uuid.UUID `json:"property_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// FavoriteView nests the favorited listing's summary.
type FavoriteView struct {
	ID        uuid.UUID       `json:"id"`
	Property  PropertySummary `json:"property"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToggleResult reports the membership state after a toggle.
type ToggleResult struct {
	IsFavorite bool      `json:"is_favorite"`
	PropertyID uuid.UUID `json:"property_id"`
	// Created is true when this call inserted the row.
	Created bool `json:"-"`
}
