package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fabhomes/internal/models"
)

func (f *fixture) inquiryService() *InquiryService {
	return &InquiryService{Inquiries: f.store.Inquiries(), Properties: f.store.Properties(), Users: f.store.Users()}
}

func inquiryInput(property uuid.UUID) models.InquiryInput {
	return models.InquiryInput{Property: &property, Name: "Bea", Email: "bea@example.com", Message: "Is it still available?"}
}

func TestInquiryCreate(t *testing.T) {
	f := newFixture(t)
	svc := f.inquiryService()
	ctx := context.Background()

	guest, err := svc.Create(ctx, nil, inquiryInput(f.property.ID))
	require.NoError(t, err)
	assert.Nil(t, guest.UserID)
	assert.Equal(t, models.InquiryGeneral, guest.InquiryType)
	assert.Equal(t, models.InquiryStatusNew, guest.Status)
	assert.Equal(t, f.property.Title, guest.PropertyTitle)

	signedIn, err := svc.Create(ctx, &f.buyer, inquiryInput(f.property.ID))
	require.NoError(t, err)
	require.NotNil(t, signedIn.UserID)
	assert.Equal(t, f.buyer.ID, *signedIn.UserID)

	_, err = svc.Create(ctx, nil, inquiryInput(uuid.New()))
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "property", verr.Fields[0].Field)
}

func TestInquiryVisibility(t *testing.T) {
	f := newFixture(t)
	svc := f.inquiryService()
	ctx := context.Background()
	page := models.PageRequest{Number: 1, Size: 12}
	stranger := f.putUser("Sue", "Stranger", models.RoleBuyer, nil)

	created, err := svc.Create(ctx, &f.buyer, inquiryInput(f.property.ID))
	require.NoError(t, err)

	for name, caller := range map[string]*models.User{"sender": &f.buyer, "seller": &f.seller} {
		t.Run(name, func(t *testing.T) {
			items, count, err := svc.List(ctx, caller, page)
			require.NoError(t, err)
			assert.Equal(t, 1, count)
			assert.Equal(t, created.ID, items[0].ID)

			d, err := svc.Get(ctx, caller, created.ID)
			require.NoError(t, err)
			require.NotNil(t, d.Property)
			assert.Equal(t, f.property.ID, d.Property.ID)
			require.NotNil(t, d.User)
			assert.Equal(t, f.buyer.ID, d.User.ID)
		})
	}

	t.Run("stranger", func(t *testing.T) {
		items, count, err := svc.List(ctx, &stranger, page)
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.Empty(t, items)

		_, err = svc.Get(ctx, &stranger, created.ID)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("anonymous", func(t *testing.T) {
		items, count, err := svc.List(ctx, nil, page)
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.Empty(t, items)

		_, err = svc.Get(ctx, nil, created.ID)
		assert.ErrorIs(t, err, models.ErrNotFound)

		_, _, err = svc.List(ctx, nil, models.PageRequest{Number: 2, Size: 12})
		assert.ErrorIs(t, err, models.ErrInvalidPage)
	})
}

func TestInquiryUpdateStatus(t *testing.T) {
	f := newFixture(t)
	svc := f.inquiryService()
	ctx := context.Background()

	created, err := svc.Create(ctx, nil, inquiryInput(f.property.ID))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, &f.seller, created.ID, "archived")
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "status", verr.Fields[0].Field)

	_, err = svc.UpdateStatus(ctx, nil, created.ID, models.InquiryStatusContacted)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = svc.UpdateStatus(ctx, &f.buyer, created.ID, models.InquiryStatusContacted)
	assert.ErrorIs(t, err, models.ErrNotFound, "a guest inquiry is invisible to other users")

	updated, err := svc.UpdateStatus(ctx, &f.seller, created.ID, models.InquiryStatusContacted)
	require.NoError(t, err)
	assert.Equal(t, models.InquiryStatusContacted, updated.Status)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}
