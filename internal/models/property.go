package models

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	PropertyTypeHouse     = "house"
	PropertyTypeApartment = "apartment"
	PropertyTypeCondo     = "condo"
	PropertyTypeTownhouse = "townhouse"
	PropertyTypeLand      = "land"

	ListingSale = "sale"
	ListingRent = "rent"

	StatusAvailable = "available"
	StatusSold      = "sold"
	StatusPending   = "pending"
	StatusRented    = "rented"
)

// Property is the stored listing.
type Property struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	PropertyType     string     `json:"property_type"`
	ListingType      string     `json:"listing_type"`
	Status           string     `json:"status"`
	Price            float64    `json:"price"`
	MonthlyRent      *float64   `json:"monthly_rent"`
	SecurityDeposit  *float64   `json:"security_deposit"`
	LeaseTerm        string     `json:"lease_term"`
	Location         string     `json:"location"`
	City             string     `json:"city"`
	State            string     `json:"state"`
	ZipCode          string     `json:"zip_code"`
	Country          string     `json:"country"`
	Latitude         *float64   `json:"latitude"`
	Longitude        *float64   `json:"longitude"`
	Bedrooms         int        `json:"bedrooms"`
	Bathrooms        float64    `json:"bathrooms"`
	TotalArea        int        `json:"total_area"`
	GarageSpaces     int        `json:"garage_spaces"`
	YearBuilt        *int       `json:"year_built"`
	Furnishing       string     `json:"furnishing"`
	PropertyFeatures []string   `json:"property_features"`
	Utilities        []string   `json:"utilities"`
	FeaturedImageURL string     `json:"featured_image_url"`
	ImageURLs        []string   `json:"image_urls"`
	ViewsCount       int64      `json:"views_count"`
	SellerID         uuid.UUID  `json:"-"`
	AgentID          *uuid.UUID `json:"-"`
	AgencyID         *uuid.UUID `json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	ListedAt         time.Time  `json:"listed_at"`
}

// CanEdit reports whether the user is the listing's seller or its agent.
func (p Property) CanEdit(userID uuid.UUID) bool {
	if p.SellerID == userID {
		return true
	}
	return p.AgentID != nil && *p.AgentID == userID
}

// PropertyInput is the writable subset of a listing accepted on create and update.
type PropertyInput struct {
	Title            string     `json:"title" validate:"required,notblank,max=200"`
	Description      string     `json:"description" validate:"required,notblank"`
	PropertyType     string     `json:"property_type" validate:"required,oneof=house apartment condo townhouse land"`
	ListingType      string     `json:"listing_type" validate:"required,oneof=sale rent"`
	Status           string     `json:"status" validate:"omitempty,oneof=available sold pending rented"`
	Price            *float64   `json:"price" validate:"required,gte=0"`
	MonthlyRent      *float64   `json:"monthly_rent" validate:"omitempty,gte=0"`
	SecurityDeposit  *float64   `json:"security_deposit" validate:"omitempty,gte=0"`
	LeaseTerm        string     `json:"lease_term" validate:"max=50"`
	Location         string     `json:"location" validate:"required,notblank,max=200"`
	City             string     `json:"city" validate:"required,notblank,max=100"`
	State            string     `json:"state" validate:"max=100"`
	ZipCode          string     `json:"zip_code" validate:"max=20"`
	Country          string     `json:"country" validate:"max=100"`
	Latitude         *float64   `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude        *float64   `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Bedrooms         *int       `json:"bedrooms" validate:"required,gte=0"`
	Bathrooms        *float64   `json:"bathrooms" validate:"required,gte=0"`
	TotalArea        int        `json:"total_area" validate:"gte=0"`
	GarageSpaces     int        `json:"garage_spaces" validate:"gte=0"`
	YearBuilt        *int       `json:"year_built" validate:"omitempty,gte=1800,lte=2100"`
	Furnishing       string     `json:"furnishing" validate:"omitempty,oneof=furnished semi_furnished unfurnished"`
	PropertyFeatures []string   `json:"property_features" validate:"omitempty,dive,required,max=100"`
	Utilities        []string   `json:"utilities" validate:"omitempty,dive,required,max=100"`
	FeaturedImageURL string     `json:"featured_image_url" validate:"omitempty,url"`
	ImageURLs        []string   `json:"image_urls" validate:"omitempty,dive,url"`
	Agent            *uuid.UUID `json:"agent"`
	Agency           *uuid.UUID `json:"agency"`
}

// InputFromProperty seeds an input with the current values so a partial
// update only overwrites the fields present in the request body.
func InputFromProperty(p Property) PropertyInput {
	price, bedrooms, bathrooms := p.Price, p.Bedrooms, p.Bathrooms
	return PropertyInput{
		Title:            p.Title,
		Description:      p.Description,
		PropertyType:     p.PropertyType,
		ListingType:      p.ListingType,
		Status:           p.Status,
		Price:            &price,
		MonthlyRent:      p.MonthlyRent,
		SecurityDeposit:  p.SecurityDeposit,
		LeaseTerm:        p.LeaseTerm,
		Location:         p.Location,
		City:             p.City,
		State:            p.State,
		ZipCode:          p.ZipCode,
		Country:          p.Country,
		Latitude:         p.Latitude,
		Longitude:        p.Longitude,
		Bedrooms:         &bedrooms,
		Bathrooms:        &bathrooms,
		TotalArea:        p.TotalArea,
		GarageSpaces:     p.GarageSpaces,
		YearBuilt:        p.YearBuilt,
		Furnishing:       p.Furnishing,
		PropertyFeatures: p.PropertyFeatures,
		Utilities:        p.Utilities,
		FeaturedImageURL: p.FeaturedImageURL,
		ImageURLs:        p.ImageURLs,
		Agent:            p.AgentID,
		Agency:           p.AgencyID,
	}
}

// Apply copies the input onto the property. Identity, ownership, counters and
// timestamps are left untouched.
func (in PropertyInput) Apply(p *Property) {
	p.Title = strings.TrimSpace(in.Title)
	p.Description = in.Description
	p.PropertyType = in.PropertyType
	p.ListingType = in.ListingType
	if in.Status != "" {
		p.Status = in.Status
	}
	if p.Status == "" {
		p.Status = StatusAvailable
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	p.MonthlyRent = in.MonthlyRent
	p.SecurityDeposit = in.SecurityDeposit
	p.LeaseTerm = in.LeaseTerm
	p.Location = strings.TrimSpace(in.Location)
	p.City = strings.TrimSpace(in.City)
	p.State = strings.TrimSpace(in.State)
	p.ZipCode = in.ZipCode
	p.Country = in.Country
	p.Latitude = in.Latitude
	p.Longitude = in.Longitude
	if in.Bedrooms != nil {
		p.Bedrooms = *in.Bedrooms
	}
	if in.Bathrooms != nil {
		p.Bathrooms = *in.Bathrooms
	}
	p.TotalArea = in.TotalArea
	p.GarageSpaces = in.GarageSpaces
	p.YearBuilt = in.YearBuilt
	p.Furnishing = in.Furnishing
	p.PropertyFeatures = NormalizeSet(in.PropertyFeatures)
	p.Utilities = NormalizeSet(in.Utilities)
	p.FeaturedImageURL = in.FeaturedImageURL
	p.ImageURLs = in.ImageURLs
	if p.ImageURLs == nil {
		p.ImageURLs = []string{}
	}
	p.AgentID = in.Agent
	p.AgencyID = in.Agency
}

// NormalizeSet trims, de-duplicates and sorts a string set. Features and
// utilities carry no order, so storing them sorted keeps equal sets equal.
func NormalizeSet(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// PropertySummary is the list projection.
type PropertySummary struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	PropertyType     string    `json:"property_type"`
	ListingType      string    `json:"listing_type"`
	Price            float64   `json:"price"`
	Location         string    `json:"location"`
	City             string    `json:"city"`
	Bedrooms         int       `json:"bedrooms"`
	Bathrooms        float64   `json:"bathrooms"`
	TotalArea        int       `json:"total_area"`
	FeaturedImageURL string    `json:"featured_image_url"`
	SellerName       string    `json:"seller_name"`
	AgentName        *string   `json:"agent_name"`
	AgencyName       *string   `json:"agency_name"`
	ViewsCount       int64     `json:"views_count"`
	FavoritesCount   int       `json:"favorites_count"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// PropertyDetail is the full projection returned by retrieve, create and update.
type PropertyDetail struct {
	Property
	Seller         *User        `json:"seller"`
	Agent          *User        `json:"agent"`
	Agency         *Agency      `json:"agency"`
	FavoritesCount int          `json:"favorites_count"`
	InquiriesCount int          `json:"inquiries_count"`
	Reviews        []ReviewView `json:"reviews"`
}

// PropertyFilter carries every list/search predicate. Nil pointers and empty
// strings mean "no constraint".
type PropertyFilter struct {
	PropertyType string
	ListingType  string
	Status       string
	MinBedrooms  *int
	MaxBedrooms  *int
	MinBathrooms *float64
	MaxBathrooms *float64
	MinArea      *int
	MaxArea      *int
	City         string
	MinPrice     *float64
	MaxPrice     *float64
	MinRent      *float64
	MaxRent      *float64
	// Search matches title, description, location, city and state.
	Search string
	// Query matches title, description and location.
	Query     string
	AgencyID  *uuid.UUID
	ExcludeID *uuid.UUID
	Ordering  string
	Limit     int
	Offset    int
}

// Orderings accepted by the list endpoint; a leading "-" means descending.
var PropertyOrderings = map[string]string{
	"created_at":   "created_at ASC",
	"-created_at":  "created_at DESC",
	"price":        "price ASC",
	"-price":       "price DESC",
	"views_count":  "views_count ASC",
	"-views_count": "views_count DESC",
}

const DefaultPropertyOrdering = "-created_at"
