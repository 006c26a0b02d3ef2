package memstore

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"fabhomes/internal/models"
)

type UserRepository struct{ s *Store }

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.userLocked(id)
	if !ok {
		return models.User{}, notFound("get user")
	}
	return u, nil
}

func (r *UserRepository) GetByFirebaseUID(_ context.Context, uid string) (models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for userID, p := range r.s.profiles {
		if p.FirebaseUID == uid {
			u, _ := r.s.userLocked(userID)
			return u, nil
		}
	}
	return models.User{}, notFound("get user by firebase uid")
}

func (r *UserRepository) CreateWithProfile(_ context.Context, u models.User, p models.UserProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; ok {
		return models.ErrConflict
	}
	for _, existing := range r.s.profiles {
		if p.FirebaseUID != "" && existing.FirebaseUID == p.FirebaseUID {
			return models.ErrConflict
		}
	}
	u.Profile = nil
	p.UserID = u.ID
	r.s.users[u.ID] = u
	r.s.profiles[u.ID] = p
	return nil
}

func (r *UserRepository) AgentsByAgency(_ context.Context, agencyID uuid.UUID) ([]models.UserProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	agents := []models.UserProfile{}
	for userID, p := range r.s.profiles {
		if p.IsAgent && p.AgencyID != nil && *p.AgencyID == agencyID {
			u, _ := r.s.userLocked(userID)
			agents = append(agents, *u.Profile)
		}
	}
	sort.Slice(agents, func(i, j int) bool { return agents[i].UserName < agents[j].UserName })
	return agents, nil
}

type AgencyRepository struct{ s *Store }

func (r *AgencyRepository) withCountsLocked(a models.Agency) models.Agency {
	a.AgentsCount, a.PropertiesCount = 0, 0
	for _, p := range r.s.profiles {
		if p.IsAgent && p.AgencyID != nil && *p.AgencyID == a.ID {
			a.AgentsCount++
		}
	}
	for _, p := range r.s.properties {
		if p.AgencyID != nil && *p.AgencyID == a.ID {
			a.PropertiesCount++
		}
	}
	return a
}

func (r *AgencyRepository) GetByID(_ context.Context, id uuid.UUID) (models.Agency, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.agencies[id]
	if !ok {
		return models.Agency{}, notFound("get agency")
	}
	return r.withCountsLocked(a), nil
}

func (r *AgencyRepository) GetVerified(_ context.Context, id uuid.UUID) (models.Agency, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.agencies[id]
	if !ok || a.VerificationStatus != models.VerificationVerified {
		return models.Agency{}, notFound("get verified agency")
	}
	return r.withCountsLocked(a), nil
}

func (r *AgencyRepository) ListVerified(_ context.Context, limit, offset int) ([]models.Agency, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Agency{}
	for _, a := range r.s.agencies {
		if a.VerificationStatus == models.VerificationVerified {
			out = append(out, r.withCountsLocked(a))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return window(out, limit, offset), len(out), nil
}

type InquiryRepository struct{ s *Store }

func (r *InquiryRepository) Create(_ context.Context, i models.Inquiry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.properties[i.PropertyID]; !ok {
		return models.ErrInvalidReference
	}
	r.s.inquiries[i.ID] = i
	return nil
}

func (r *InquiryRepository) visibleLocked(i models.Inquiry, caller uuid.UUID) bool {
	if i.UserID != nil && *i.UserID == caller {
		return true
	}
	p, ok := r.s.properties[i.PropertyID]
	return ok && p.SellerID == caller
}

func (r *InquiryRepository) summaryLocked(i models.Inquiry) models.InquirySummary {
	return models.InquirySummary{
		ID:            i.ID,
		PropertyID:    i.PropertyID,
		PropertyTitle: r.s.properties[i.PropertyID].Title,
		UserID:        i.UserID,
		Name:          i.Name,
		Email:         i.Email,
		Phone:         i.Phone,
		InquiryType:   i.InquiryType,
		Status:        i.Status,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

func (r *InquiryRepository) ListForCaller(_ context.Context, caller uuid.UUID, limit, offset int) ([]models.InquirySummary, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.InquirySummary{}
	for _, i := range r.s.inquiries {
		if r.visibleLocked(i, caller) {
			out = append(out, r.summaryLocked(i))
		}
	}
	newestFirst(out,
		func(s models.InquirySummary) int64 { return s.CreatedAt.UnixNano() },
		func(s models.InquirySummary) uuid.UUID { return s.ID })
	return window(out, limit, offset), len(out), nil
}

func (r *InquiryRepository) GetForCaller(_ context.Context, id, caller uuid.UUID) (models.Inquiry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i, ok := r.s.inquiries[id]
	if !ok || !r.visibleLocked(i, caller) {
		return models.Inquiry{}, notFound("get inquiry for caller")
	}
	return i, nil
}

func (r *InquiryRepository) GetSummary(_ context.Context, id uuid.UUID) (models.InquirySummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i, ok := r.s.inquiries[id]
	if !ok {
		return models.InquirySummary{}, notFound("get inquiry summary")
	}
	return r.summaryLocked(i), nil
}

func (r *InquiryRepository) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i, ok := r.s.inquiries[id]
	if !ok {
		return notFound("update inquiry status")
	}
	i.Status = status
	r.s.inquiries[id] = i
	return nil
}

type FavoriteRepository struct{ s *Store }

// Add enforces the unique (user, property) pair under the store lock.
func (r *FavoriteRepository) Add(_ context.Context, f models.Favorite) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.properties[f.PropertyID]; !ok {
		return notFound("add favorite")
	}
	for _, existing := range r.s.favorites {
		if existing.UserID == f.UserID && existing.PropertyID == f.PropertyID {
			return models.ErrConflict
		}
	}
	r.s.favorites[f.ID] = f
	return nil
}

func (r *FavoriteRepository) Remove(_ context.Context, userID, propertyID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	removed := false
	for k, f := range r.s.favorites {
		if f.UserID == userID && f.PropertyID == propertyID {
			delete(r.s.favorites, k)
			removed = true
		}
	}
	return removed, nil
}

func (r *FavoriteRepository) DeleteByID(_ context.Context, id, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.favorites[id]
	if !ok || f.UserID != userID {
		return notFound("delete favorite")
	}
	delete(r.s.favorites, id)
	return nil
}

func (r *FavoriteRepository) GetByID(_ context.Context, id, userID uuid.UUID) (models.Favorite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.favorites[id]
	if !ok || f.UserID != userID {
		return models.Favorite{}, notFound("get favorite")
	}
	return f, nil
}

func (r *FavoriteRepository) ListByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]models.FavoriteView, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.FavoriteView{}
	for _, f := range r.s.favorites {
		if f.UserID != userID {
			continue
		}
		p, ok := r.s.properties[f.PropertyID]
		if !ok {
			continue
		}
		out = append(out, models.FavoriteView{ID: f.ID, Property: r.s.summaryLocked(p), CreatedAt: f.CreatedAt})
	}
	newestFirst(out,
		func(v models.FavoriteView) int64 { return v.CreatedAt.UnixNano() },
		func(v models.FavoriteView) uuid.UUID { return v.ID })
	return window(out, limit, offset), len(out), nil
}

type ReviewRepository struct{ s *Store }

func (r *ReviewRepository) Create(_ context.Context, rv models.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[rv.ReviewerID]; !ok {
		return models.ErrInvalidReference
	}
	var exists bool
	switch rv.Target.Kind() {
	case models.ReviewTargetAgent:
		_, exists = r.s.users[rv.Target.ID()]
	case models.ReviewTargetAgency:
		_, exists = r.s.agencies[rv.Target.ID()]
	case models.ReviewTargetProperty:
		_, exists = r.s.properties[rv.Target.ID()]
	default:
		return models.ErrInvalidReviewTarget
	}
	if !exists {
		return notFound("create review")
	}
	r.s.reviews[rv.ID] = rv
	return nil
}

func (r *ReviewRepository) ListByTarget(_ context.Context, target models.ReviewTarget, limit int) ([]models.ReviewView, error) {
	if !target.Valid() {
		return nil, models.ErrInvalidReviewTarget
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.ReviewView{}
	for _, rv := range r.s.reviews {
		if rv.Target != target {
			continue
		}
		out = append(out, models.ReviewView{
			ID:           rv.ID,
			ReviewerName: r.s.fullNameLocked(rv.ReviewerID),
			Target:       rv.Target,
			Rating:       rv.Rating,
			Comment:      rv.Comment,
			CreatedAt:    rv.CreatedAt,
		})
	}
	newestFirst(out,
		func(v models.ReviewView) int64 { return v.CreatedAt.UnixNano() },
		func(v models.ReviewView) uuid.UUID { return v.ID })
	return window(out, limit, 0), nil
}

type TransactionRepository struct{ s *Store }

func (r *TransactionRepository) Create(_ context.Context, t models.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.properties[t.PropertyID]; !ok {
		return models.ErrInvalidReference
	}
	r.s.transactions[t.ID] = t
	return nil
}

func (r *TransactionRepository) partyLocked(t models.Transaction, userID uuid.UUID) bool {
	return t.SellerID == userID ||
		(t.BuyerID != nil && *t.BuyerID == userID) ||
		(t.AgentID != nil && *t.AgentID == userID)
}

func (r *TransactionRepository) viewLocked(t models.Transaction) models.Transaction {
	t.PropertyTitle = r.s.properties[t.PropertyID].Title
	t.SellerName = r.s.fullNameLocked(t.SellerID)
	if t.BuyerID != nil {
		t.BuyerName = r.s.fullNameLocked(*t.BuyerID)
	}
	return t
}

func (r *TransactionRepository) ListForUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]models.Transaction, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Transaction{}
	for _, t := range r.s.transactions {
		if r.partyLocked(t, userID) {
			out = append(out, r.viewLocked(t))
		}
	}
	newestFirst(out,
		func(t models.Transaction) int64 { return t.CreatedAt.UnixNano() },
		func(t models.Transaction) uuid.UUID { return t.ID })
	return window(out, limit, offset), len(out), nil
}

func (r *TransactionRepository) GetForUser(_ context.Context, id, userID uuid.UUID) (models.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.transactions[id]
	if !ok || !r.partyLocked(t, userID) {
		return models.Transaction{}, notFound("get transaction")
	}
	return r.viewLocked(t), nil
}

// PutTransaction seeds a transaction in any state.
func (s *Store) PutTransaction(t models.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions[t.ID] = t
}

type AnalyticsRepository struct{ s *Store }

func (r *AnalyticsRepository) Counts(_ context.Context) (models.Analytics, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a := models.Analytics{
		TotalProperties: len(r.s.properties),
		TotalInquiries:  len(r.s.inquiries),
		TotalUsers:      len(r.s.users),
		TotalReviews:    len(r.s.reviews),
	}
	for _, p := range r.s.properties {
		if p.Status != models.StatusAvailable {
			continue
		}
		a.AvailableProperties++
		switch p.ListingType {
		case models.ListingSale:
			a.ForSale++
		case models.ListingRent:
			a.ForRent++
		}
	}
	for _, ag := range r.s.agencies {
		if ag.VerificationStatus == models.VerificationVerified {
			a.VerifiedAgencies++
		}
	}
	for _, t := range r.s.transactions {
		if t.Status == models.TransactionCompleted {
			a.CompletedTransactions++
		}
	}
	return a, nil
}
