package repositories

import (
	"strings"

	"fabhomes/internal/models"
)

// whereBuilder accumulates AND-ed predicates with their placeholder args.
type whereBuilder struct {
	clauses []string
	args    []interface{}
}

func (b *whereBuilder) add(clause string, args ...interface{}) {
	b.clauses = append(b.clauses, clause)
	b.args = append(b.args, args...)
}

func (b *whereBuilder) String() string {
	if len(b.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.clauses, " AND ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-folded LIKE pattern matching s anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(s))) + "%"
}

// anyColumnContains matches the pattern against each column, OR-ed together.
func (b *whereBuilder) anyColumnContains(term string, columns ...string) {
	pattern := containsPattern(term)
	parts := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		parts[i] = "LOWER(" + col + ") LIKE ?"
		args[i] = pattern
	}
	b.add("("+strings.Join(parts, " OR ")+")", args...)
}

func buildPropertyWhere(f models.PropertyFilter) *whereBuilder {
	b := &whereBuilder{}

	if f.PropertyType != "" {
		b.add("p.property_type = ?", f.PropertyType)
	}
	if f.ListingType != "" {
		b.add("p.listing_type = ?", f.ListingType)
	}
	if f.Status != "" {
		b.add("p.status = ?", f.Status)
	}
	if f.MinBedrooms != nil {
		b.add("p.bedrooms >= ?", *f.MinBedrooms)
	}
	if f.MaxBedrooms != nil {
		b.add("p.bedrooms <= ?", *f.MaxBedrooms)
	}
	if f.MinBathrooms != nil {
		b.add("p.bathrooms >= ?", *f.MinBathrooms)
	}
	if f.MaxBathrooms != nil {
		b.add("p.bathrooms <= ?", *f.MaxBathrooms)
	}
	if f.MinArea != nil {
		b.add("p.total_area >= ?", *f.MinArea)
	}
	if f.MaxArea != nil {
		b.add("p.total_area <= ?", *f.MaxArea)
	}
	if city := strings.TrimSpace(f.City); city != "" {
		b.add("LOWER(p.city) = ?", strings.ToLower(city))
	}
	if f.MinPrice != nil {
		b.add("p.price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		b.add("p.price <= ?", *f.MaxPrice)
	}
	if f.MinRent != nil {
		b.add("p.monthly_rent >= ?", *f.MinRent)
	}
	if f.MaxRent != nil {
		b.add("p.monthly_rent <= ?", *f.MaxRent)
	}
	if strings.TrimSpace(f.Search) != "" {
		b.anyColumnContains(f.Search, "p.title", "p.description", "p.location", "p.city", "p.state")
	}
	if strings.TrimSpace(f.Query) != "" {
		b.anyColumnContains(f.Query, "p.title", "p.description", "p.location")
	}
	if f.AgencyID != nil {
		b.add("p.agency_id = ?", *f.AgencyID)
	}
	if f.ExcludeID != nil {
		b.add("p.id <> ?", *f.ExcludeID)
	}
	return b
}

// propertyOrderBy falls back to newest-first for unknown orderings. The id
// tiebreaker keeps pages stable when the sort key repeats.
func propertyOrderBy(ordering string) string {
	clause, ok := models.PropertyOrderings[ordering]
	if !ok {
		clause = models.PropertyOrderings[models.DefaultPropertyOrdering]
	}
	return " ORDER BY p." + clause + ", p.id ASC"
}
