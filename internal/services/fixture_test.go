package services

import (
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"fabhomes/internal/models"
	"fabhomes/internal/repositories/memstore"
)

// fixture seeds a verified agency with one agent, a seller, a buyer and one
// available listing owned by the seller and handled by the agent.
type fixture struct {
	store    *memstore.Store
	seller   models.User
	buyer    models.User
	agent    models.User
	agency   models.Agency
	property models.Property
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{store: memstore.New()}
	now := time.Now().UTC()

	f.agency = models.Agency{ID: uuid.New(), Name: "Lone Star Realty", Email: "hello@lonestar.test",
		VerificationStatus: models.VerificationVerified, CreatedAt: now, UpdatedAt: now}
	f.store.PutAgency(f.agency)

	f.seller = f.putUser("Sam", "Seller", models.RoleSeller, nil)
	f.buyer = f.putUser("Bea", "Buyer", models.RoleBuyer, nil)
	f.agent = f.putUser("Ann", "Agent", models.RoleAgent, &f.agency.ID)

	f.property = f.putProperty(func(p *models.Property) {
		p.AgentID = &f.agent.ID
		p.AgencyID = &f.agency.ID
	})
	return f
}

func (f *fixture) putUser(first, last, role string, agency *uuid.UUID) models.User {
	now := time.Now().UTC()
	u := models.User{ID: uuid.New(), Email: first + "@example.com", FirstName: first, LastName: last, CreatedAt: now, UpdatedAt: now}
	f.store.PutUser(u, &models.UserProfile{
		ID:          uuid.New(),
		FirebaseUID: "uid-" + u.ID.String(),
		Role:        role,
		IsAgent:     role == models.RoleAgent,
		AgencyID:    agency,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	return u
}

// putProperty seeds an available Austin house for sale owned by the seller.
func (f *fixture) putProperty(edit func(*models.Property)) models.Property {
	now := time.Now().UTC()
	p := models.Property{
		ID:               uuid.New(),
		Title:            "Craftsman bungalow",
		Description:      "Three bedrooms near the park",
		PropertyType:     models.PropertyTypeHouse,
		ListingType:      models.ListingSale,
		Status:           models.StatusAvailable,
		Price:            450000,
		Location:         "12 Oak Ln",
		City:             "Austin",
		State:            "TX",
		Bedrooms:         3,
		Bathrooms:        2,
		TotalArea:        1800,
		PropertyFeatures: []string{},
		Utilities:        []string{},
		ImageURLs:        []string{},
		SellerID:         f.seller.ID,
		CreatedAt:        now,
		UpdatedAt:        now,
		ListedAt:         now,
	}
	if edit != nil {
		edit(&p)
	}
	f.store.PutProperty(p)
	return p
}

func (f *fixture) propertyService() *PropertyService {
	return &PropertyService{
		Properties: f.store.Properties(),
		Users:      f.store.Users(),
		Agencies:   f.store.Agencies(),
		Reviews:    f.store.Reviews(),
	}
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func ptr[T any](v T) *T { return &v }
