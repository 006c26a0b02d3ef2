package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

type Agency struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	LogoURL            string    `json:"logo_url"`
	Description        string    `json:"description"`
	Address            string    `json:"address"`
	Website            string    `json:"website"`
	VerificationStatus string    `json:"verification_status"`
	AgentsCount        int       `json:"agents_count"`
	PropertiesCount    int       `json:"properties_count"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
