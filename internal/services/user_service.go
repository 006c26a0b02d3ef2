package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fabhomes/internal/models"
)

type UserService struct {
	Users UserStore
}

// ResolveCaller maps verified identity claims onto the local user, creating
// the account and a buyer profile the first time a uid is seen.
func (s *UserService) ResolveCaller(ctx context.Context, claims models.IdentityClaims) (models.User, error) {
	if claims.UID == "" {
		return models.User{}, models.ErrUnauthenticated
	}
	u, err := s.Users.GetByFirebaseUID(ctx, claims.UID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return models.User{}, err
	}

	now := time.Now().UTC()
	first, last := models.SplitName(claims.Name)
	u = models.User{
		ID:        uuid.New(),
		Email:     claims.Email,
		FirstName: first,
		LastName:  last,
		CreatedAt: now,
		UpdatedAt: now,
	}
	profile := models.UserProfile{
		ID:          uuid.New(),
		UserID:      u.ID,
		FirebaseUID: claims.UID,
		Role:        models.RoleBuyer,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.Users.CreateWithProfile(ctx, u, profile)
	if errors.Is(err, models.ErrConflict) {
		// another request created the same uid first
		return s.Users.GetByFirebaseUID(ctx, claims.UID)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("create local user: %w", err)
	}
	return s.Users.GetByID(ctx, u.ID)
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (models.User, error) {
	return s.Users.GetByID(ctx, id)
}
