package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fabhomes/internal/models"
)

func seedSeller(s *Store) models.User {
	u := models.User{ID: uuid.New(), Email: "seller@example.com", FirstName: "Sam", LastName: "Seller"}
	s.PutUser(u, &models.UserProfile{ID: uuid.New(), FirebaseUID: "uid-seller", Role: models.RoleSeller})
	return u
}

func listing(seller uuid.UUID, created time.Time, price float64) models.Property {
	return models.Property{
		ID:           uuid.New(),
		Title:        "Loft",
		PropertyType: models.PropertyTypeApartment,
		ListingType:  models.ListingSale,
		Status:       models.StatusAvailable,
		Price:        price,
		City:         "Denver",
		SellerID:     seller,
		CreatedAt:    created,
	}
}

func TestPropertyListOrdering(t *testing.T) {
	s := New()
	seller := seedSeller(s)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	old := listing(seller.ID, base, 300)
	mid := listing(seller.ID, base.Add(time.Hour), 100)
	recent := listing(seller.ID, base.Add(2*time.Hour), 200)
	for _, p := range []models.Property{old, mid, recent} {
		s.PutProperty(p)
	}
	repo := s.Properties()
	ctx := context.Background()

	ids := func(items []models.PropertySummary) []uuid.UUID {
		out := make([]uuid.UUID, 0, len(items))
		for _, it := range items {
			out = append(out, it.ID)
		}
		return out
	}

	got, err := repo.List(ctx, models.PropertyFilter{})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{recent.ID, mid.ID, old.ID}, ids(got))

	got, err = repo.List(ctx, models.PropertyFilter{Ordering: "price"})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{mid.ID, recent.ID, old.ID}, ids(got))

	got, err = repo.List(ctx, models.PropertyFilter{Ordering: "bogus", Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{mid.ID}, ids(got))

	n, err := repo.Count(ctx, models.PropertyFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestMatches(t *testing.T) {
	p := models.Property{
		Title:        "Sunny loft",
		Description:  "Open plan",
		PropertyType: models.PropertyTypeApartment,
		ListingType:  models.ListingRent,
		City:         "Denver",
		State:        "CO",
		Bedrooms:     2,
		Price:        0,
		MonthlyRent:  ptr(2100.0),
	}

	assert.True(t, Matches(models.PropertyFilter{}, p))
	assert.True(t, Matches(models.PropertyFilter{City: " denver "}, p))
	assert.True(t, Matches(models.PropertyFilter{Search: "co"}, p))
	assert.True(t, Matches(models.PropertyFilter{Query: "OPEN"}, p))
	assert.False(t, Matches(models.PropertyFilter{Query: "CO"}, p), "query does not look at state")
	assert.False(t, Matches(models.PropertyFilter{MinBedrooms: ptr(3)}, p))
	assert.True(t, Matches(models.PropertyFilter{MinRent: ptr(2000.0), MaxRent: ptr(2500.0)}, p))

	p.MonthlyRent = nil
	assert.False(t, Matches(models.PropertyFilter{MinRent: ptr(1.0)}, p), "rent bounds exclude listings without rent")
}

func TestPropertyDeleteCascades(t *testing.T) {
	s := New()
	seller := seedSeller(s)
	buyer := models.User{ID: uuid.New(), FirstName: "Bea", LastName: "Buyer"}
	s.PutUser(buyer, nil)
	p := listing(seller.ID, time.Now(), 100)
	s.PutProperty(p)
	ctx := context.Background()

	require.NoError(t, s.Favorites().Add(ctx, models.Favorite{ID: uuid.New(), UserID: buyer.ID, PropertyID: p.ID}))
	require.NoError(t, s.Reviews().Create(ctx, models.Review{
		ID: uuid.New(), ReviewerID: buyer.ID, Target: models.PropertyTarget(p.ID), Rating: 4,
	}))

	require.NoError(t, s.Properties().Delete(ctx, p.ID))
	assert.Zero(t, s.FavoriteCount(buyer.ID, p.ID))
	reviews, err := s.Reviews().ListByTarget(ctx, models.PropertyTarget(p.ID), 10)
	require.NoError(t, err)
	assert.Empty(t, reviews)

	assert.ErrorIs(t, s.Properties().Delete(ctx, p.ID), models.ErrNotFound)
}

func TestFavoriteAddRejectsDuplicatePair(t *testing.T) {
	s := New()
	seller := seedSeller(s)
	p := listing(seller.ID, time.Now(), 100)
	s.PutProperty(p)
	ctx := context.Background()
	favs := s.Favorites()

	require.NoError(t, favs.Add(ctx, models.Favorite{ID: uuid.New(), UserID: seller.ID, PropertyID: p.ID}))
	assert.ErrorIs(t, favs.Add(ctx, models.Favorite{ID: uuid.New(), UserID: seller.ID, PropertyID: p.ID}), models.ErrConflict)
	assert.ErrorIs(t, favs.Add(ctx, models.Favorite{ID: uuid.New(), UserID: seller.ID, PropertyID: uuid.New()}), models.ErrNotFound)
	assert.Equal(t, 1, s.FavoriteCount(seller.ID, p.ID))
}

func TestCreateWithProfileRejectsDuplicateUID(t *testing.T) {
	s := New()
	users := s.Users()
	ctx := context.Background()

	require.NoError(t, users.CreateWithProfile(ctx, models.User{ID: uuid.New()}, models.UserProfile{ID: uuid.New(), FirebaseUID: "abc"}))
	err := users.CreateWithProfile(ctx, models.User{ID: uuid.New()}, models.UserProfile{ID: uuid.New(), FirebaseUID: "abc"})
	assert.ErrorIs(t, err, models.ErrConflict)

	u, err := users.GetByFirebaseUID(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, u.Profile)
	assert.Equal(t, "abc", u.Profile.FirebaseUID)
}

func ptr[T any](v T) *T { return &v }
