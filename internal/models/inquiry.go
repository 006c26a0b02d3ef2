package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	InquiryGeneral        = "general"
	InquiryViewingRequest = "viewing_request"
	InquiryOffer          = "offer"

	InquiryStatusNew       = "new"
	InquiryStatusContacted = "contacted"
	InquiryStatusResolved  = "resolved"
	InquiryStatusClosed    = "closed"
)

// ValidInquiryStatus reports whether s is one of the inquiry workflow states.
func ValidInquiryStatus(s string) bool {
	switch s {
	case InquiryStatusNew, InquiryStatusContacted, InquiryStatusResolved, InquiryStatusClosed:
		return true
	}
	return false
}

type Inquiry struct {
	ID          uuid.UUID  `json:"id"`
	PropertyID  uuid.UUID  `json:"property"`
	UserID      *uuid.UUID `json:"user"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Message     string     `json:"message"`
	InquiryType string     `json:"inquiry_type"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// InquiryInput is accepted from guests and signed-in users alike.
type InquiryInput struct {
	Property    *uuid.UUID `json:"property" validate:"required"`
	Name        string     `json:"name" validate:"required,max=200"`
	Email       string     `json:"email" validate:"required,email"`
	Phone       string     `json:"phone" validate:"max=20"`
	Message     string     `json:"message" validate:"required"`
	InquiryType string     `json:"inquiry_type" validate:"omitempty,oneof=general viewing_request offer"`
}

// InquirySummary is the list projection.
type InquirySummary struct {
	ID            uuid.UUID  `json:"id"`
	PropertyID    uuid.UUID  `json:"property"`
	PropertyTitle string     `json:"property_title"`
	UserID        *uuid.UUID `json:"user"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	InquiryType   string     `json:"inquiry_type"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// InquiryDetail nests the property summary and the linked user, if any.
type InquiryDetail struct {
	ID          uuid.UUID        `json:"id"`
	Property    *PropertySummary `json:"property"`
	User        *User            `json:"user"`
	Name        string           `json:"name"`
	Email       string           `json:"email"`
	Phone       string           `json:"phone"`
	Message     string           `json:"message"`
	InquiryType string           `json:"inquiry_type"`
	Status      string           `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
