package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"fabhomes/internal/models"
)

type InquiryService struct {
	Inquiries  InquiryStore
	Properties PropertyStore
	Users      UserStore
}

// List returns the inquiries the caller sent or received. Anonymous callers
// get an empty page.
func (s *InquiryService) List(ctx context.Context, caller *models.User, page models.PageRequest) ([]models.InquirySummary, int, error) {
	if caller == nil {
		if err := checkPage(page, 0); err != nil {
			return nil, 0, err
		}
		return []models.InquirySummary{}, 0, nil
	}
	items, count, err := s.Inquiries.ListForCaller(ctx, caller.ID, page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	if err := checkPage(page, count); err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

func (s *InquiryService) Get(ctx context.Context, caller *models.User, id uuid.UUID) (models.InquiryDetail, error) {
	if caller == nil {
		return models.InquiryDetail{}, models.ErrNotFound
	}
	i, err := s.Inquiries.GetForCaller(ctx, id, caller.ID)
	if err != nil {
		return models.InquiryDetail{}, err
	}

	d := models.InquiryDetail{
		ID:          i.ID,
		Name:        i.Name,
		Email:       i.Email,
		Phone:       i.Phone,
		Message:     i.Message,
		InquiryType: i.InquiryType,
		Status:      i.Status,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
	summary, err := s.Properties.GetSummary(ctx, i.PropertyID)
	if err != nil {
		return models.InquiryDetail{}, fmt.Errorf("load inquiry property: %w", err)
	}
	d.Property = &summary
	if i.UserID != nil {
		u, err := s.Users.GetByID(ctx, *i.UserID)
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return models.InquiryDetail{}, fmt.Errorf("load inquiry user: %w", err)
		}
		if err == nil {
			d.User = &u
		}
	}
	return d, nil
}

// Create records an inquiry. A nil caller makes it a guest inquiry.
func (s *InquiryService) Create(ctx context.Context, caller *models.User, in models.InquiryInput) (models.InquirySummary, error) {
	if _, err := s.Properties.GetByID(ctx, *in.Property); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.InquirySummary{}, models.NewValidationError("property", "does_not_exist", "Invalid pk - object does not exist.")
		}
		return models.InquirySummary{}, err
	}

	now := time.Now().UTC()
	i := models.Inquiry{
		ID:          uuid.New(),
		PropertyID:  *in.Property,
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.TrimSpace(in.Email),
		Phone:       strings.TrimSpace(in.Phone),
		Message:     in.Message,
		InquiryType: in.InquiryType,
		Status:      models.InquiryStatusNew,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if i.InquiryType == "" {
		i.InquiryType = models.InquiryGeneral
	}
	if caller != nil {
		id := caller.ID
		i.UserID = &id
	}
	if err := s.Inquiries.Create(ctx, i); err != nil {
		return models.InquirySummary{}, err
	}
	return s.Inquiries.GetSummary(ctx, i.ID)
}

// UpdateStatus moves an inquiry the caller can see to a new workflow state.
func (s *InquiryService) UpdateStatus(ctx context.Context, caller *models.User, id uuid.UUID, status string) (models.InquirySummary, error) {
	if !models.ValidInquiryStatus(status) {
		return models.InquirySummary{}, models.NewValidationError("status", "invalid_choice",
			fmt.Sprintf("%q is not a valid choice.", status))
	}
	if caller == nil {
		return models.InquirySummary{}, models.ErrNotFound
	}
	if _, err := s.Inquiries.GetForCaller(ctx, id, caller.ID); err != nil {
		return models.InquirySummary{}, err
	}
	if err := s.Inquiries.UpdateStatus(ctx, id, status); err != nil {
		return models.InquirySummary{}, err
	}
	return s.Inquiries.GetSummary(ctx, id)
}
