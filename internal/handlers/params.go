package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"fabhomes/internal/models"
)

// getParam returns a path or query parameter value regardless of whether
// the router stores it with a leading colon or not. It also supports the
// standard net/http PathValue API available in recent Go versions.
func getParam(r *http.Request, name string) string {
	if r == nil {
		return ""
	}

	if val := r.URL.Query().Get(":" + name); val != "" {
		return val
	}

	if val := r.URL.Query().Get(name); val != "" {
		return val
	}

	return r.PathValue(name)
}

// pathID parses the ":id" route parameter. Malformed ids cannot match any
// record, so they are reported as not found.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(getParam(r, "id"))
	if err != nil {
		return uuid.Nil, models.ErrNotFound
	}
	return id, nil
}

// parsePage reads page and page_size. A bad page number is an invalid page;
// a bad page_size falls back to the default and is capped at the maximum.
func parsePage(r *http.Request) (models.PageRequest, error) {
	q := r.URL.Query()
	page := models.PageRequest{Number: 1, Size: models.DefaultPageSize}

	if raw := strings.TrimSpace(q.Get("page")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return models.PageRequest{}, models.ErrInvalidPage
		}
		page.Number = n
	}
	if raw := strings.TrimSpace(q.Get("page_size")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page.Size = min(n, models.MaxPageSize)
		}
	}
	return page, nil
}

// queryParams collects typed query values and the field errors for those
// that fail to parse.
type queryParams struct {
	r    *http.Request
	errs *models.ValidationError
}

func newQueryParams(r *http.Request) *queryParams {
	return &queryParams{r: r, errs: &models.ValidationError{}}
}

func (q *queryParams) str(name string) string {
	return strings.TrimSpace(q.r.URL.Query().Get(name))
}

func (q *queryParams) intPtr(name string) *int {
	raw := q.str(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		q.errs.Add(name, "validation_number", "Enter a whole number.")
		return nil
	}
	return &v
}

func (q *queryParams) floatPtr(name string) *float64 {
	raw := q.str(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		q.errs.Add(name, "validation_number", "Enter a number.")
		return nil
	}
	return &v
}

func (q *queryParams) uuidPtr(name string) *uuid.UUID {
	raw := q.str(name)
	if raw == "" {
		return nil
	}
	v, err := uuid.Parse(raw)
	if err != nil {
		q.errs.Add(name, "validation_uuid", "Enter a valid UUID.")
		return nil
	}
	return &v
}

// choice accepts an empty value or one of allowed.
func (q *queryParams) choice(name string, allowed ...string) string {
	raw := q.str(name)
	if raw == "" {
		return ""
	}
	for _, a := range allowed {
		if raw == a {
			return raw
		}
	}
	q.errs.Add(name, "validation_oneof", "Select a valid choice. "+raw+" is not one of the available choices.")
	return ""
}

func queryBool(r *http.Request, name string) bool {
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get(name))) {
	case "true", "1", "yes":
		return true
	}
	return false
}

func (q *queryParams) err() error {
	return q.errs.OrNil()
}

var (
	propertyTypes = []string{
		models.PropertyTypeHouse, models.PropertyTypeApartment, models.PropertyTypeCondo,
		models.PropertyTypeTownhouse, models.PropertyTypeLand,
	}
	listingTypes     = []string{models.ListingSale, models.ListingRent}
	propertyStatuses = []string{models.StatusAvailable, models.StatusSold, models.StatusPending, models.StatusRented}
)

// propertyFilterFromQuery reads the list endpoint's filters.
func propertyFilterFromQuery(r *http.Request) (models.PropertyFilter, error) {
	q := newQueryParams(r)
	f := models.PropertyFilter{
		PropertyType: q.choice("property_type", propertyTypes...),
		ListingType:  q.choice("listing_type", listingTypes...),
		Status:       q.choice("status", propertyStatuses...),
		MinBedrooms:  q.intPtr("min_bedrooms"),
		MaxBedrooms:  q.intPtr("max_bedrooms"),
		MinBathrooms: q.floatPtr("min_bathrooms"),
		MaxBathrooms: q.floatPtr("max_bathrooms"),
		MinArea:      q.intPtr("min_area"),
		MaxArea:      q.intPtr("max_area"),
		City:         q.str("city"),
		MinPrice:     q.floatPtr("min_price"),
		MaxPrice:     q.floatPtr("max_price"),
		MinRent:      q.floatPtr("min_rent"),
		MaxRent:      q.floatPtr("max_rent"),
		Search:       q.str("search"),
		Ordering:     q.str("ordering"),
	}
	return f, q.err()
}

// searchFilterFromQuery reads the search endpoint's discrete parameters.
func searchFilterFromQuery(r *http.Request) (models.PropertyFilter, error) {
	q := newQueryParams(r)
	f := models.PropertyFilter{
		Query:        q.str("q"),
		PropertyType: q.choice("type", propertyTypes...),
		ListingType:  q.choice("listing", listingTypes...),
		MinPrice:     q.floatPtr("min_price"),
		MaxPrice:     q.floatPtr("max_price"),
		City:         q.str("city"),
		Ordering:     q.str("ordering"),
	}
	return f, q.err()
}
