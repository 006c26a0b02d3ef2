package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ReviewTargetKind string

const (
	ReviewTargetAgent    ReviewTargetKind = "agent"
	ReviewTargetAgency   ReviewTargetKind = "agency"
	ReviewTargetProperty ReviewTargetKind = "property"
)

// ReviewTarget is what a review is about: exactly one agent, agency or
// property. The zero value is invalid; build one with the constructors.
type ReviewTarget struct {
	kind ReviewTargetKind
	id   uuid.UUID
}

func AgentTarget(id uuid.UUID) ReviewTarget    { return ReviewTarget{kind: ReviewTargetAgent, id: id} }
func AgencyTarget(id uuid.UUID) ReviewTarget   { return ReviewTarget{kind: ReviewTargetAgency, id: id} }
func PropertyTarget(id uuid.UUID) ReviewTarget { return ReviewTarget{kind: ReviewTargetProperty, id: id} }

// NewReviewTarget builds a target from a kind name.
func NewReviewTarget(kind ReviewTargetKind, id uuid.UUID) (ReviewTarget, error) {
	if id == uuid.Nil {
		return ReviewTarget{}, ErrInvalidReviewTarget
	}
	switch kind {
	case ReviewTargetAgent, ReviewTargetAgency, ReviewTargetProperty:
		return ReviewTarget{kind: kind, id: id}, nil
	}
	return ReviewTarget{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidReviewTarget, kind)
}

// TargetFromRefs accepts the three nullable references used on the wire and
// in storage and fails unless exactly one is set.
func TargetFromRefs(agent, agency, property *uuid.UUID) (ReviewTarget, error) {
	var (
		target ReviewTarget
		set    int
	)
	if agent != nil {
		target, set = AgentTarget(*agent), set+1
	}
	if agency != nil {
		target, set = AgencyTarget(*agency), set+1
	}
	if property != nil {
		target, set = PropertyTarget(*property), set+1
	}
	if set != 1 || target.id == uuid.Nil {
		return ReviewTarget{}, ErrInvalidReviewTarget
	}
	return target, nil
}

func (t ReviewTarget) Kind() ReviewTargetKind { return t.kind }
func (t ReviewTarget) ID() uuid.UUID          { return t.id }
func (t ReviewTarget) Valid() bool            { return t.kind != "" && t.id != uuid.Nil }

// Refs spreads the target back into the three nullable references.
func (t ReviewTarget) Refs() (agent, agency, property *uuid.UUID) {
	id := t.id
	switch t.kind {
	case ReviewTargetAgent:
		agent = &id
	case ReviewTargetAgency:
		agency = &id
	case ReviewTargetProperty:
		property = &id
	}
	return
}

func (t ReviewTarget) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(struct {
		Type ReviewTargetKind `json:"type"`
		ID   uuid.UUID        `json:"id"`
	}{t.kind, t.id})
}

type Review struct {
	ID         uuid.UUID    `json:"id"`
	ReviewerID uuid.UUID    `json:"reviewer"`
	Target     ReviewTarget `json:"target"`
	Rating     int          `json:"rating"`
	Comment    string       `json:"comment"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// ReviewInput is the create payload.
type ReviewInput struct {
	Agent    *uuid.UUID `json:"agent"`
	Agency   *uuid.UUID `json:"agency"`
	Property *uuid.UUID `json:"property"`
	Rating   int        `json:"rating" validate:"required,min=1,max=5"`
	Comment  string     `json:"comment" validate:"max=2000"`
}

// ReviewView is the public projection.
type ReviewView struct {
	ID           uuid.UUID    `json:"id"`
	ReviewerName string       `json:"reviewer_name"`
	Target       ReviewTarget `json:"target"`
	Rating       int          `json:"rating"`
	Comment      string       `json:"comment"`
	CreatedAt    time.Time    `json:"created_at"`
}
