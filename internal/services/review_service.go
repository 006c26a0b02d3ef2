package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"fabhomes/internal/models"
)

type ReviewService struct {
	Reviews    ReviewStore
	Users      UserStore
	Agencies   AgencyStore
	Properties PropertyStore
}

func (s *ReviewService) List(ctx context.Context, target models.ReviewTarget) ([]models.ReviewView, error) {
	return s.Reviews.ListByTarget(ctx, target, 0)
}

func (s *ReviewService) Create(ctx context.Context, reviewer models.User, in models.ReviewInput) (models.ReviewView, error) {
	target, err := models.TargetFromRefs(in.Agent, in.Agency, in.Property)
	if err != nil {
		return models.ReviewView{}, models.NewValidationError("non_field_errors", "invalid_target",
			"Exactly one of agent, agency or property must be set.")
	}
	if err := s.targetExists(ctx, target); err != nil {
		return models.ReviewView{}, err
	}

	now := time.Now().UTC()
	r := models.Review{
		ID:         uuid.New(),
		ReviewerID: reviewer.ID,
		Target:     target,
		Rating:     in.Rating,
		Comment:    strings.TrimSpace(in.Comment),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Reviews.Create(ctx, r); err != nil {
		return models.ReviewView{}, err
	}
	return models.ReviewView{
		ID:           r.ID,
		ReviewerName: reviewer.FullName(),
		Target:       r.Target,
		Rating:       r.Rating,
		Comment:      r.Comment,
		CreatedAt:    r.CreatedAt,
	}, nil
}

func (s *ReviewService) targetExists(ctx context.Context, target models.ReviewTarget) error {
	var err error
	switch target.Kind() {
	case models.ReviewTargetAgent:
		_, err = s.Users.GetByID(ctx, target.ID())
	case models.ReviewTargetAgency:
		_, err = s.Agencies.GetByID(ctx, target.ID())
	case models.ReviewTargetProperty:
		_, err = s.Properties.GetByID(ctx, target.ID())
	}
	if errors.Is(err, models.ErrNotFound) {
		return models.NewValidationError(string(target.Kind()), "does_not_exist", "Invalid pk - object does not exist.")
	}
	return err
}
