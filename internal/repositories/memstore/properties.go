package memstore

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"fabhomes/internal/models"
)

type PropertyRepository struct{ s *Store }

func (r *PropertyRepository) checkRefsLocked(p models.Property) error {
	if _, ok := r.s.users[p.SellerID]; !ok {
		return models.ErrInvalidReference
	}
	if p.AgentID != nil {
		if _, ok := r.s.users[*p.AgentID]; !ok {
			return models.ErrInvalidReference
		}
	}
	if p.AgencyID != nil {
		if _, ok := r.s.agencies[*p.AgencyID]; !ok {
			return models.ErrInvalidReference
		}
	}
	return nil
}

func (r *PropertyRepository) Create(_ context.Context, p models.Property) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.properties[p.ID]; ok {
		return models.ErrConflict
	}
	if err := r.checkRefsLocked(p); err != nil {
		return err
	}
	r.s.properties[p.ID] = p
	return nil
}

func (r *PropertyRepository) GetByID(_ context.Context, id uuid.UUID) (models.Property, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.properties[id]
	if !ok {
		return models.Property{}, notFound("get property")
	}
	return p, nil
}

func (r *PropertyRepository) Update(_ context.Context, p models.Property) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.properties[p.ID]
	if !ok {
		return notFound("update property")
	}
	if err := r.checkRefsLocked(p); err != nil {
		return err
	}
	p.ViewsCount = cur.ViewsCount
	p.SellerID = cur.SellerID
	p.CreatedAt = cur.CreatedAt
	p.ListedAt = cur.ListedAt
	r.s.properties[p.ID] = p
	return nil
}

// Delete cascades to favorites, inquiries, reviews and transactions like the
// schema's ON DELETE CASCADE.
func (r *PropertyRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.properties[id]; !ok {
		return notFound("delete property")
	}
	delete(r.s.properties, id)
	for k, f := range r.s.favorites {
		if f.PropertyID == id {
			delete(r.s.favorites, k)
		}
	}
	for k, i := range r.s.inquiries {
		if i.PropertyID == id {
			delete(r.s.inquiries, k)
		}
	}
	for k, rv := range r.s.reviews {
		if rv.Target.Kind() == models.ReviewTargetProperty && rv.Target.ID() == id {
			delete(r.s.reviews, k)
		}
	}
	for k, t := range r.s.transactions {
		if t.PropertyID == id {
			delete(r.s.transactions, k)
		}
	}
	return nil
}

func (r *PropertyRepository) IncrementViews(_ context.Context, id uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.properties[id]
	if !ok {
		return 0, notFound("increment views")
	}
	p.ViewsCount++
	r.s.properties[id] = p
	return p.ViewsCount, nil
}

func (r *PropertyRepository) List(_ context.Context, f models.PropertyFilter) ([]models.PropertySummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	matched := r.matchLocked(f)
	sortProperties(matched, f.Ordering)
	matched = window(matched, f.Limit, f.Offset)

	out := make([]models.PropertySummary, 0, len(matched))
	for _, p := range matched {
		out = append(out, r.s.summaryLocked(p))
	}
	return out, nil
}

func (r *PropertyRepository) Count(_ context.Context, f models.PropertyFilter) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.matchLocked(f)), nil
}

func (r *PropertyRepository) GetSummary(_ context.Context, id uuid.UUID) (models.PropertySummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.properties[id]
	if !ok {
		return models.PropertySummary{}, notFound("get property summary")
	}
	return r.s.summaryLocked(p), nil
}

func (r *PropertyRepository) Engagement(_ context.Context, id uuid.UUID) (int, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var favorites, inquiries int
	for _, f := range r.s.favorites {
		if f.PropertyID == id {
			favorites++
		}
	}
	for _, i := range r.s.inquiries {
		if i.PropertyID == id && i.Status == models.InquiryStatusNew {
			inquiries++
		}
	}
	return favorites, inquiries, nil
}

func (r *PropertyRepository) matchLocked(f models.PropertyFilter) []models.Property {
	out := []models.Property{}
	for _, p := range r.s.properties {
		if Matches(f, p) {
			out = append(out, p)
		}
	}
	return out
}

// Matches reports whether p satisfies every predicate in f.
func Matches(f models.PropertyFilter, p models.Property) bool {
	switch {
	case f.PropertyType != "" && p.PropertyType != f.PropertyType,
		f.ListingType != "" && p.ListingType != f.ListingType,
		f.Status != "" && p.Status != f.Status,
		f.MinBedrooms != nil && p.Bedrooms < *f.MinBedrooms,
		f.MaxBedrooms != nil && p.Bedrooms > *f.MaxBedrooms,
		f.MinBathrooms != nil && p.Bathrooms < *f.MinBathrooms,
		f.MaxBathrooms != nil && p.Bathrooms > *f.MaxBathrooms,
		f.MinArea != nil && p.TotalArea < *f.MinArea,
		f.MaxArea != nil && p.TotalArea > *f.MaxArea,
		f.MinPrice != nil && p.Price < *f.MinPrice,
		f.MaxPrice != nil && p.Price > *f.MaxPrice,
		f.MinRent != nil && (p.MonthlyRent == nil || *p.MonthlyRent < *f.MinRent),
		f.MaxRent != nil && (p.MonthlyRent == nil || *p.MonthlyRent > *f.MaxRent),
		f.AgencyID != nil && (p.AgencyID == nil || *p.AgencyID != *f.AgencyID),
		f.ExcludeID != nil && p.ID == *f.ExcludeID:
		return false
	}
	if city := strings.TrimSpace(f.City); city != "" && !strings.EqualFold(p.City, city) {
		return false
	}
	if !anyContains(f.Search, p.Title, p.Description, p.Location, p.City, p.State) {
		return false
	}
	return anyContains(f.Query, p.Title, p.Description, p.Location)
}

func anyContains(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func sortProperties(items []models.Property, ordering string) {
	if _, ok := models.PropertyOrderings[ordering]; !ok {
		ordering = models.DefaultPropertyOrdering
	}
	desc := strings.HasPrefix(ordering, "-")
	key := strings.TrimPrefix(ordering, "-")

	order := func(a, b models.Property) int {
		switch key {
		case "price":
			return compare(a.Price, b.Price)
		case "views_count":
			return compare(a.ViewsCount, b.ViewsCount)
		default:
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		c := order(items[i], items[j])
		if desc {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		return items[i].ID.String() < items[j].ID.String()
	})
}

func compare[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
