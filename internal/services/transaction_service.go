package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"fabhomes/internal/models"
)

type TransactionService struct {
	Transactions TransactionStore
	Properties   PropertyStore
}

func (s *TransactionService) List(ctx context.Context, userID uuid.UUID, page models.PageRequest) ([]models.Transaction, int, error) {
	items, count, err := s.Transactions.ListForUser(ctx, userID, page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	if err := checkPage(page, count); err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

func (s *TransactionService) Get(ctx context.Context, userID, id uuid.UUID) (models.Transaction, error) {
	return s.Transactions.GetForUser(ctx, id, userID)
}

// Create opens a negotiation with the caller as buyer. Seller and agent are
// taken from the listing.
func (s *TransactionService) Create(ctx context.Context, buyerID uuid.UUID, in models.TransactionInput) (models.Transaction, error) {
	p, err := s.Properties.GetByID(ctx, *in.Property)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.Transaction{}, models.NewValidationError("property", "does_not_exist", "Invalid pk - object does not exist.")
		}
		return models.Transaction{}, err
	}
	if p.SellerID == buyerID {
		return models.Transaction{}, models.NewValidationError("property", "own_listing", "You cannot open a transaction on your own listing.")
	}

	now := time.Now().UTC()
	buyer := buyerID
	t := models.Transaction{
		ID:              uuid.New(),
		PropertyID:      p.ID,
		BuyerID:         &buyer,
		SellerID:        p.SellerID,
		AgentID:         p.AgentID,
		TransactionType: in.TransactionType,
		OfferPrice:      in.OfferPrice,
		Status:          models.TransactionNegotiating,
		Notes:           strings.TrimSpace(in.Notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Transactions.Create(ctx, t); err != nil {
		return models.Transaction{}, err
	}
	return s.Transactions.GetForUser(ctx, t.ID, buyerID)
}
