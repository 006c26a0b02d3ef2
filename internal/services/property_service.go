package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"fabhomes/internal/models"
)

const (
	FeaturedLimit      = 10
	SimilarLimit       = 5
	DetailReviewsLimit = 5
)

type PropertyService struct {
	Properties PropertyStore
	Users      UserStore
	Agencies   AgencyStore
	Reviews    ReviewStore
	// Images is nil when object storage is not configured.
	Images ImageStore
}

// checkPage rejects page numbers outside [1, last page].
func checkPage(page models.PageRequest, count int) error {
	if page.Number < 1 || page.Number > page.LastPage(count) {
		return models.ErrInvalidPage
	}
	return nil
}

func (s *PropertyService) List(ctx context.Context, f models.PropertyFilter, page models.PageRequest) ([]models.PropertySummary, int, error) {
	count, err := s.Properties.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	if err := checkPage(page, count); err != nil {
		return nil, 0, err
	}
	f.Limit, f.Offset = page.Size, page.Offset()
	items, err := s.Properties.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

// Featured returns the most viewed available listings.
func (s *PropertyService) Featured(ctx context.Context) ([]models.PropertySummary, error) {
	return s.Properties.List(ctx, models.PropertyFilter{
		Status:   models.StatusAvailable,
		Ordering: "-views_count",
		Limit:    FeaturedLimit,
	})
}

// Similar returns other available listings of the same type, city and
// listing type.
func (s *PropertyService) Similar(ctx context.Context, id uuid.UUID) ([]models.PropertySummary, error) {
	p, err := s.Properties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Properties.List(ctx, models.PropertyFilter{
		Status:       models.StatusAvailable,
		PropertyType: p.PropertyType,
		ListingType:  p.ListingType,
		City:         p.City,
		ExcludeID:    &p.ID,
		Limit:        SimilarLimit,
	})
}

func (s *PropertyService) Detail(ctx context.Context, id uuid.UUID) (models.PropertyDetail, error) {
	p, err := s.Properties.GetByID(ctx, id)
	if err != nil {
		return models.PropertyDetail{}, err
	}
	return s.detail(ctx, p)
}

func (s *PropertyService) detail(ctx context.Context, p models.Property) (models.PropertyDetail, error) {
	d := models.PropertyDetail{Property: p}

	seller, err := s.Users.GetByID(ctx, p.SellerID)
	if err != nil {
		return models.PropertyDetail{}, fmt.Errorf("load seller: %w", err)
	}
	d.Seller = &seller

	if p.AgentID != nil {
		agent, err := s.Users.GetByID(ctx, *p.AgentID)
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return models.PropertyDetail{}, fmt.Errorf("load agent: %w", err)
		}
		if err == nil {
			d.Agent = &agent
		}
	}
	if p.AgencyID != nil {
		agency, err := s.Agencies.GetByID(ctx, *p.AgencyID)
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return models.PropertyDetail{}, fmt.Errorf("load agency: %w", err)
		}
		if err == nil {
			d.Agency = &agency
		}
	}

	d.FavoritesCount, d.InquiriesCount, err = s.Properties.Engagement(ctx, p.ID)
	if err != nil {
		return models.PropertyDetail{}, err
	}
	d.Reviews, err = s.Reviews.ListByTarget(ctx, models.PropertyTarget(p.ID), DetailReviewsLimit)
	if err != nil {
		return models.PropertyDetail{}, err
	}
	return d, nil
}

// Create lists a new property with the caller as seller.
func (s *PropertyService) Create(ctx context.Context, sellerID uuid.UUID, in models.PropertyInput) (models.PropertyDetail, error) {
	now := time.Now().UTC()
	p := models.Property{
		ID:        uuid.New(),
		SellerID:  sellerID,
		CreatedAt: now,
		UpdatedAt: now,
		ListedAt:  now,
	}
	if err := s.checkReferences(ctx, in); err != nil {
		return models.PropertyDetail{}, err
	}
	in.Apply(&p)
	if err := s.Properties.Create(ctx, p); err != nil {
		return models.PropertyDetail{}, err
	}
	return s.detail(ctx, p)
}

// Update loads the listing, checks the caller may edit it, lets edit fill in
// the input starting from the stored values and saves the result.
func (s *PropertyService) Update(ctx context.Context, callerID, id uuid.UUID, edit func(*models.PropertyInput) error) (models.PropertyDetail, error) {
	p, err := s.editable(ctx, callerID, id)
	if err != nil {
		return models.PropertyDetail{}, err
	}
	in := models.InputFromProperty(p)
	if err := edit(&in); err != nil {
		return models.PropertyDetail{}, err
	}
	if err := s.checkReferences(ctx, in); err != nil {
		return models.PropertyDetail{}, err
	}
	in.Apply(&p)
	p.UpdatedAt = time.Now().UTC()
	if err := s.Properties.Update(ctx, p); err != nil {
		return models.PropertyDetail{}, err
	}
	return s.detail(ctx, p)
}

func (s *PropertyService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	if _, err := s.editable(ctx, callerID, id); err != nil {
		return err
	}
	return s.Properties.Delete(ctx, id)
}

func (s *PropertyService) IncrementViews(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.Properties.IncrementViews(ctx, id)
}

// UploadImage stores an image and appends its URL to the listing. The first
// image also becomes the featured image.
func (s *PropertyService) UploadImage(ctx context.Context, callerID, id uuid.UUID, filename, contentType string, body []byte) (models.PropertyDetail, error) {
	if s.Images == nil {
		return models.PropertyDetail{}, models.ErrStorageDisabled
	}
	p, err := s.editable(ctx, callerID, id)
	if err != nil {
		return models.PropertyDetail{}, err
	}

	key := fmt.Sprintf("properties/%s/%s%s", p.ID, uuid.New(), strings.ToLower(path.Ext(filename)))
	url, err := s.Images.Upload(ctx, key, contentType, body)
	if err != nil {
		return models.PropertyDetail{}, fmt.Errorf("upload property image: %w", err)
	}

	p.ImageURLs = append(p.ImageURLs, url)
	if p.FeaturedImageURL == "" {
		p.FeaturedImageURL = url
	}
	p.UpdatedAt = time.Now().UTC()
	if err := s.Properties.Update(ctx, p); err != nil {
		return models.PropertyDetail{}, err
	}
	return s.detail(ctx, p)
}

func (s *PropertyService) editable(ctx context.Context, callerID, id uuid.UUID) (models.Property, error) {
	p, err := s.Properties.GetByID(ctx, id)
	if err != nil {
		return models.Property{}, err
	}
	if !p.CanEdit(callerID) {
		return models.Property{}, models.ErrForbidden
	}
	return p, nil
}

// checkReferences rejects agent and agency ids that do not exist.
func (s *PropertyService) checkReferences(ctx context.Context, in models.PropertyInput) error {
	verr := &models.ValidationError{}
	if in.Agent != nil {
		if _, err := s.Users.GetByID(ctx, *in.Agent); errors.Is(err, models.ErrNotFound) {
			verr.Add("agent", "does_not_exist", "Invalid pk - object does not exist.")
		} else if err != nil {
			return err
		}
	}
	if in.Agency != nil {
		if _, err := s.Agencies.GetByID(ctx, *in.Agency); errors.Is(err, models.ErrNotFound) {
			verr.Add("agency", "does_not_exist", "Invalid pk - object does not exist.")
		} else if err != nil {
			return err
		}
	}
	return verr.OrNil()
}
