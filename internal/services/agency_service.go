package services

import (
	"context"

	"github.com/google/uuid"

	"fabhomes/internal/models"
)

// AgencyService exposes verified agencies only.
type AgencyService struct {
	Agencies AgencyStore
	Listings PropertyStore
	Users    UserStore
}

func (s *AgencyService) List(ctx context.Context, page models.PageRequest) ([]models.Agency, int, error) {
	items, count, err := s.Agencies.ListVerified(ctx, page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	if err := checkPage(page, count); err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

func (s *AgencyService) Get(ctx context.Context, id uuid.UUID) (models.Agency, error) {
	return s.Agencies.GetVerified(ctx, id)
}

// Properties lists the agency's available listings, newest first.
func (s *AgencyService) Properties(ctx context.Context, id uuid.UUID) ([]models.PropertySummary, error) {
	if _, err := s.Agencies.GetVerified(ctx, id); err != nil {
		return nil, err
	}
	return s.Listings.List(ctx, models.PropertyFilter{
		AgencyID: &id,
		Status:   models.StatusAvailable,
	})
}

func (s *AgencyService) Agents(ctx context.Context, id uuid.UUID) ([]models.UserProfile, error) {
	if _, err := s.Agencies.GetVerified(ctx, id); err != nil {
		return nil, err
	}
	return s.Users.AgentsByAgency(ctx, id)
}
