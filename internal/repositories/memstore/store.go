// Package memstore is an in-memory implementation of the service stores. It
// enforces the same uniqueness and reference rules as the MySQL schema and is
// used by service and handler tests.
package memstore

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"fabhomes/internal/models"
)

type Store struct {
	mu           sync.Mutex
	users        map[uuid.UUID]models.User
	profiles     map[uuid.UUID]models.UserProfile // keyed by user id
	agencies     map[uuid.UUID]models.Agency
	properties   map[uuid.UUID]models.Property
	inquiries    map[uuid.UUID]models.Inquiry
	favorites    map[uuid.UUID]models.Favorite
	reviews      map[uuid.UUID]models.Review
	transactions map[uuid.UUID]models.Transaction
}

func New() *Store {
	return &Store{
		users:        map[uuid.UUID]models.User{},
		profiles:     map[uuid.UUID]models.UserProfile{},
		agencies:     map[uuid.UUID]models.Agency{},
		properties:   map[uuid.UUID]models.Property{},
		inquiries:    map[uuid.UUID]models.Inquiry{},
		favorites:    map[uuid.UUID]models.Favorite{},
		reviews:      map[uuid.UUID]models.Review{},
		transactions: map[uuid.UUID]models.Transaction{},
	}
}

func (s *Store) Properties() *PropertyRepository { return &PropertyRepository{s} }
func (s *Store) Users() *UserRepository { return &UserRepository{s} }
func (s *Store) Agencies() *AgencyRepository { return &AgencyRepository{s} }
func (s *Store) Inquiries() *InquiryRepository { return &InquiryRepository{s} }
func (s *Store) Favorites() *FavoriteRepository { return &FavoriteRepository{s} }
func (s *Store) Reviews() *ReviewRepository { return &ReviewRepository{s} }
func (s *Store) Transactions() *TransactionRepository { return &TransactionRepository{s} }
func (s *Store) Analytics() *AnalyticsRepository { return &AnalyticsRepository{s} }

// PutAgency seeds an agency; agencies have no write API.
func (s *Store) PutAgency(a models.Agency) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agencies[a.ID] = a
}

// PutUser seeds a user and, when profile is non-nil, its profile.
func (s *Store) PutUser(u models.User, profile *models.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.Profile = nil
	s.users[u.ID] = u
	if profile != nil {
		p := *profile
		p.UserID = u.ID
		s.profiles[u.ID] = p
	}
}

// PutProperty seeds a property without reference checks.
func (s *Store) PutProperty(p models.Property) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties[p.ID] = p
}

// FavoriteCount returns how many rows exist for the pair.
func (s *Store) FavoriteCount(userID, propertyID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, f := range s.favorites {
		if f.UserID == userID && f.PropertyID == propertyID {
			n++
		}
	}
	return n
}

func notFound(op string) error {
	return fmt.Errorf("%s: %w", op, models.ErrNotFound)
}

// userLocked joins the profile onto the user. Callers hold s.mu.
func (s *Store) userLocked(id uuid.UUID) (models.User, bool) {
	u, ok := s.users[id]
	if !ok {
		return models.User{}, false
	}
	if p, ok := s.profiles[id]; ok {
		p.UserEmail = u.Email
		p.UserName = u.FullName()
		u.Profile = &p
	}
	return u, true
}

func (s *Store) fullNameLocked(id uuid.UUID) string {
	if u, ok := s.users[id]; ok {
		return u.FullName()
	}
	return ""
}

func (s *Store) summaryLocked(p models.Property) models.PropertySummary {
	sum := models.PropertySummary{
		ID:               p.ID,
		Title:            p.Title,
		PropertyType:     p.PropertyType,
		ListingType:      p.ListingType,
		Price:            p.Price,
		Location:         p.Location,
		City:             p.City,
		Bedrooms:         p.Bedrooms,
		Bathrooms:        p.Bathrooms,
		TotalArea:        p.TotalArea,
		FeaturedImageURL: p.FeaturedImageURL,
		SellerName:       s.fullNameLocked(p.SellerID),
		ViewsCount:       p.ViewsCount,
		Status:           p.Status,
		CreatedAt:        p.CreatedAt,
	}
	if p.AgentID != nil {
		if u, ok := s.users[*p.AgentID]; ok {
			name := u.FullName()
			sum.AgentName = &name
		}
	}
	if p.AgencyID != nil {
		if a, ok := s.agencies[*p.AgencyID]; ok {
			name := a.Name
			sum.AgencyName = &name
		}
	}
	for _, f := range s.favorites {
		if f.PropertyID == p.ID {
			sum.FavoritesCount++
		}
	}
	return sum
}

func window[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// newestFirst sorts by created time descending with the id as tiebreaker.
func newestFirst[T any](items []T, created func(T) int64, id func(T) uuid.UUID) {
	sort.Slice(items, func(i, j int) bool {
		ci, cj := created(items[i]), created(items[j])
		if ci != cj {
			return ci > cj
		}
		return id(items[i]).String() < id(items[j]).String()
	})
}
