package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fabhomes/internal/models"
)

func TestResolveCaller(t *testing.T) {
	f := newFixture(t)
	svc := &UserService{Users: f.store.Users()}
	ctx := context.Background()

	_, err := svc.ResolveCaller(ctx, models.IdentityClaims{})
	assert.ErrorIs(t, err, models.ErrUnauthenticated)

	claims := models.IdentityClaims{UID: "firebase-123", Email: "new@example.com", Name: "Nia Newcomer"}
	created, err := svc.ResolveCaller(ctx, claims)
	require.NoError(t, err)
	assert.Equal(t, "Nia", created.FirstName)
	assert.Equal(t, "Newcomer", created.LastName)
	require.NotNil(t, created.Profile)
	assert.Equal(t, models.RoleBuyer, created.Profile.Role)

	again, err := svc.ResolveCaller(ctx, claims)
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID, "the uid maps to the same local user")

	existing, err := svc.ResolveCaller(ctx, models.IdentityClaims{UID: "uid-" + f.seller.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, f.seller.ID, existing.ID)
}

func TestAgencyService(t *testing.T) {
	f := newFixture(t)
	pending := models.Agency{ID: uuid.New(), Name: "Pending Homes", VerificationStatus: models.VerificationPending}
	f.store.PutAgency(pending)
	svc := &AgencyService{Agencies: f.store.Agencies(), Listings: f.store.Properties(), Users: f.store.Users()}
	ctx := context.Background()

	items, count, err := svc.List(ctx, models.PageRequest{Number: 1, Size: 12})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, items[0].AgentsCount)
	assert.Equal(t, 1, items[0].PropertiesCount)

	_, err = svc.Get(ctx, pending.ID)
	assert.ErrorIs(t, err, models.ErrNotFound, "unverified agencies are hidden")

	listings, err := svc.Properties(ctx, f.agency.ID)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, f.property.ID, listings[0].ID)

	agents, err := svc.Agents(ctx, f.agency.ID)
	require.NoError(t, err)
	require.Len(t, agents, 1)
	assert.Equal(t, "Ann Agent", agents[0].UserName)
}
