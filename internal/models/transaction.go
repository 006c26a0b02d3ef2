package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TransactionSale   = "sale"
	TransactionRental = "rental"

	TransactionNegotiating = "negotiating"
	TransactionAccepted    = "accepted"
	TransactionCompleted   = "completed"
	TransactionCancelled   = "cancelled"
)

type Transaction struct {
	ID              uuid.UUID  `json:"id"`
	PropertyID      uuid.UUID  `json:"property"`
	PropertyTitle   string     `json:"property_title"`
	BuyerID         *uuid.UUID `json:"-"`
	SellerID        uuid.UUID  `json:"-"`
	AgentID         *uuid.UUID `json:"-"`
	BuyerName       string     `json:"buyer_name"`
	SellerName      string     `json:"seller_name"`
	TransactionType string     `json:"transaction_type"`
	OfferPrice      *float64   `json:"offer_price"`
	FinalPrice      *float64   `json:"final_price"`
	Status          string     `json:"status"`
	TransactionDate *time.Time `json:"transaction_date"`
	ClosingDate     *time.Time `json:"closing_date"`
	Notes           string     `json:"notes"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TransactionInput opens a negotiation on a listing.
type TransactionInput struct {
	Property        *uuid.UUID `json:"property" validate:"required"`
	TransactionType string     `json:"transaction_type" validate:"required,oneof=sale rental"`
	OfferPrice      *float64   `json:"offer_price" validate:"required,gt=0"`
	Notes           string     `json:"notes" validate:"max=2000"`
}
