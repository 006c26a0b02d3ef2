package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fabhomes/internal/models"
)

// The store interfaces are satisfied by the MySQL repositories and by the
// in-memory memstore used in tests.

type PropertyStore interface {
	Create(ctx context.Context, p models.Property) error
	GetByID(ctx context.Context, id uuid.UUID) (models.Property, error)
	Update(ctx context.Context, p models.Property) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) (int64, error)
	List(ctx context.Context, f models.PropertyFilter) ([]models.PropertySummary, error)
	Count(ctx context.Context, f models.PropertyFilter) (int, error)
	GetSummary(ctx context.Context, id uuid.UUID) (models.PropertySummary, error)
	Engagement(ctx context.Context, id uuid.UUID) (favorites, newInquiries int, err error)
}

type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (models.User, error)
	GetByFirebaseUID(ctx context.Context, uid string) (models.User, error)
	CreateWithProfile(ctx context.Context, u models.User, p models.UserProfile) error
	AgentsByAgency(ctx context.Context, agencyID uuid.UUID) ([]models.UserProfile, error)
}

type AgencyStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (models.Agency, error)
	GetVerified(ctx context.Context, id uuid.UUID) (models.Agency, error)
	ListVerified(ctx context.Context, limit, offset int) ([]models.Agency, int, error)
}

type InquiryStore interface {
	Create(ctx context.Context, i models.Inquiry) error
	ListForCaller(ctx context.Context, caller uuid.UUID, limit, offset int) ([]models.InquirySummary, int, error)
	GetForCaller(ctx context.Context, id, caller uuid.UUID) (models.Inquiry, error)
	GetSummary(ctx context.Context, id uuid.UUID) (models.InquirySummary, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type FavoriteStore interface {
	Add(ctx context.Context, f models.Favorite) error
	Remove(ctx context.Context, userID, propertyID uuid.UUID) (bool, error)
	DeleteByID(ctx context.Context, id, userID uuid.UUID) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (models.Favorite, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.FavoriteView, int, error)
}

type ReviewStore interface {
	Create(ctx context.Context, r models.Review) error
	ListByTarget(ctx context.Context, target models.ReviewTarget, limit int) ([]models.ReviewView, error)
}

type TransactionStore interface {
	Create(ctx context.Context, t models.Transaction) error
	ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Transaction, int, error)
	GetForUser(ctx context.Context, id, userID uuid.UUID) (models.Transaction, error)
}

type AnalyticsStore interface {
	Counts(ctx context.Context) (models.Analytics, error)
}

// Cache is an optional JSON cache. A nil Cache disables caching.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error
}

// ImageStore uploads listing images and returns their public URL.
type ImageStore interface {
	Upload(ctx context.Context, key, contentType string, body []byte) (string, error)
}
