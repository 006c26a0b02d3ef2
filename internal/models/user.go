package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAgent  = "agent"
	RoleAdmin  = "admin"
)

// User is the local account record. Accounts are owned by the identity
// provider; this row only mirrors what the service needs to link records.
type User struct {
	ID        uuid.UUID    `json:"id"`
	Email     string       `json:"email"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Profile   *UserProfile `json:"profile,omitempty"`
	CreatedAt time.Time    `json:"-"`
	UpdatedAt time.Time    `json:"-"`
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type UserProfile struct {
	ID              uuid.UUID  `json:"-"`
	UserID          uuid.UUID  `json:"-"`
	FirebaseUID     string     `json:"-"`
	UserEmail       string     `json:"user_email"`
	UserName        string     `json:"user_name"`
	Phone           string     `json:"phone"`
	ProfileImageURL string     `json:"profile_image_url"`
	Bio             string     `json:"bio"`
	Role            string     `json:"role"`
	IsVerified      bool       `json:"is_verified"`
	IsAgent         bool       `json:"is_agent"`
	AgencyID        *uuid.UUID `json:"agency"`
	CreatedAt       time.Time  `json:"-"`
	UpdatedAt       time.Time  `json:"-"`
}

// IdentityClaims is what a verified bearer credential tells us about the caller.
type IdentityClaims struct {
	UID   string
	Email string
	Name  string
}

// SplitName breaks a display name into first and last name.
func SplitName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}
	first, last, _ := strings.Cut(name, " ")
	return first, strings.TrimSpace(last)
}
