package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"fabhomes/internal/models"
)

type PropertyRepository struct {
	DB *sql.DB
}

const propertyColumns = `
	p.id, p.title, p.description, p.property_type, p.listing_type, p.status,
	p.price, p.monthly_rent, p.security_deposit, p.lease_term,
	p.location, p.city, p.state, p.zip_code, p.country, p.latitude, p.longitude,
	p.bedrooms, p.bathrooms, p.total_area, p.garage_spaces, p.year_built, p.furnishing,
	p.property_features, p.utilities, p.featured_image_url, p.image_urls,
	p.views_count, p.seller_id, p.agent_id, p.agency_id,
	p.created_at, p.updated_at, p.listed_at`

const propertySummarySelect = `
	SELECT p.id, p.title, p.property_type, p.listing_type, p.price, p.location, p.city,
	       p.bedrooms, p.bathrooms, p.total_area, p.featured_image_url,
	       TRIM(CONCAT(s.first_name, ' ', s.last_name)),
	       CASE WHEN a.id IS NULL THEN NULL ELSE TRIM(CONCAT(a.first_name, ' ', a.last_name)) END,
	       ag.name,
	       p.views_count,
	       (SELECT COUNT(*) FROM favorites f WHERE f.property_id = p.id),
	       p.status, p.created_at
	FROM properties p
	JOIN users s ON s.id = p.seller_id
	LEFT JOIN users a ON a.id = p.agent_id
	LEFT JOIN agencies ag ON ag.id = p.agency_id`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProperty(row rowScanner) (models.Property, error) {
	var p models.Property
	var featuresJSON, utilitiesJSON, imagesJSON []byte
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.PropertyType, &p.ListingType, &p.Status,
		&p.Price, &p.MonthlyRent, &p.SecurityDeposit, &p.LeaseTerm,
		&p.Location, &p.City, &p.State, &p.ZipCode, &p.Country, &p.Latitude, &p.Longitude,
		&p.Bedrooms, &p.Bathrooms, &p.TotalArea, &p.GarageSpaces, &p.YearBuilt, &p.Furnishing,
		&featuresJSON, &utilitiesJSON, &p.FeaturedImageURL, &imagesJSON,
		&p.ViewsCount, &p.SellerID, &p.AgentID, &p.AgencyID,
		&p.CreatedAt, &p.UpdatedAt, &p.ListedAt,
	)
	if err != nil {
		return models.Property{}, err
	}
	if p.PropertyFeatures, err = decodeStringList(featuresJSON); err != nil {
		return models.Property{}, fmt.Errorf("failed to decode property_features json: %w", err)
	}
	if p.Utilities, err = decodeStringList(utilitiesJSON); err != nil {
		return models.Property{}, fmt.Errorf("failed to decode utilities json: %w", err)
	}
	if p.ImageURLs, err = decodeStringList(imagesJSON); err != nil {
		return models.Property{}, fmt.Errorf("failed to decode image_urls json: %w", err)
	}
	return p, nil
}

func scanPropertySummary(row rowScanner) (models.PropertySummary, error) {
	var s models.PropertySummary
	err := row.Scan(
		&s.ID, &s.Title, &s.PropertyType, &s.ListingType, &s.Price, &s.Location, &s.City,
		&s.Bedrooms, &s.Bathrooms, &s.TotalArea, &s.FeaturedImageURL,
		&s.SellerName, &s.AgentName, &s.AgencyName,
		&s.ViewsCount, &s.FavoritesCount, &s.Status, &s.CreatedAt,
	)
	return s, err
}

func decodeStringList(data []byte) ([]string, error) {
	out := []string{}
	if len(data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func encodeStringList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	return string(data), err
}

func (r *PropertyRepository) Create(ctx context.Context, p models.Property) error {
	query := `
    INSERT INTO properties (id, title, description, property_type, listing_type, status,
        price, monthly_rent, security_deposit, lease_term,
        location, city, state, zip_code, country, latitude, longitude,
        bedrooms, bathrooms, total_area, garage_spaces, year_built, furnishing,
        property_features, utilities, featured_image_url, image_urls,
        views_count, seller_id, agent_id, agency_id, created_at, updated_at, listed_at)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`
	features, utilities, images, err := encodePropertyLists(p)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		p.ID, p.Title, p.Description, p.PropertyType, p.ListingType, p.Status,
		p.Price, p.MonthlyRent, p.SecurityDeposit, p.LeaseTerm,
		p.Location, p.City, p.State, p.ZipCode, p.Country, p.Latitude, p.Longitude,
		p.Bedrooms, p.Bathrooms, p.TotalArea, p.GarageSpaces, p.YearBuilt, p.Furnishing,
		features, utilities, p.FeaturedImageURL, images,
		p.ViewsCount, p.SellerID, p.AgentID, p.AgencyID, p.CreatedAt, p.UpdatedAt, p.ListedAt,
	)
	return translateError("create property", err)
}

func encodePropertyLists(p models.Property) (features, utilities, images string, err error) {
	if features, err = encodeStringList(p.PropertyFeatures); err != nil {
		return "", "", "", fmt.Errorf("failed to marshal property_features: %w", err)
	}
	if utilities, err = encodeStringList(p.Utilities); err != nil {
		return "", "", "", fmt.Errorf("failed to marshal utilities: %w", err)
	}
	if images, err = encodeStringList(p.ImageURLs); err != nil {
		return "", "", "", fmt.Errorf("failed to marshal image_urls: %w", err)
	}
	return features, utilities, images, nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties p WHERE p.id = ?`
	p, err := scanProperty(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return models.Property{}, translateError("get property", err)
	}
	return p, nil
}

// Update writes every editable column. views_count is owned by IncrementViews
// and is never written here.
func (r *PropertyRepository) Update(ctx context.Context, p models.Property) error {
	query := `
    UPDATE properties
    SET title = ?, description = ?, property_type = ?, listing_type = ?, status = ?,
        price = ?, monthly_rent = ?, security_deposit = ?, lease_term = ?,
        location = ?, city = ?, state = ?, zip_code = ?, country = ?, latitude = ?, longitude = ?,
        bedrooms = ?, bathrooms = ?, total_area = ?, garage_spaces = ?, year_built = ?, furnishing = ?,
        property_features = ?, utilities = ?, featured_image_url = ?, image_urls = ?,
        agent_id = ?, agency_id = ?, updated_at = ?
    WHERE id = ?
`
	features, utilities, images, err := encodePropertyLists(p)
	if err != nil {
		return err
	}
	result, err := r.DB.ExecContext(ctx, query,
		p.Title, p.Description, p.PropertyType, p.ListingType, p.Status,
		p.Price, p.MonthlyRent, p.SecurityDeposit, p.LeaseTerm,
		p.Location, p.City, p.State, p.ZipCode, p.Country, p.Latitude, p.Longitude,
		p.Bedrooms, p.Bathrooms, p.TotalArea, p.GarageSpaces, p.YearBuilt, p.Furnishing,
		features, utilities, p.FeaturedImageURL, images,
		p.AgentID, p.AgencyID, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return translateError("update property", err)
	}
	return requireAffected("update property", result)
}

// Delete removes the listing together with its reviews. The other dependent
// rows go through ON DELETE CASCADE; review target columns cannot, because
// MySQL forbids referential actions on columns used by a CHECK constraint.
func (r *PropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete property: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE property_id = ?`, id); err != nil {
		return translateError("delete property reviews", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM properties WHERE id = ?`, id)
	if err != nil {
		return translateError("delete property", err)
	}
	if err := requireAffected("delete property", result); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete property: commit: %w", err)
	}
	return nil
}

func requireAffected(op string, result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return nil
}

// IncrementViews bumps the counter in a single statement. LAST_INSERT_ID(expr)
// makes the new value come back in this statement's own result.
func (r *PropertyRepository) IncrementViews(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE properties SET views_count = LAST_INSERT_ID(views_count + 1) WHERE id = ?`, id)
	if err != nil {
		return 0, translateError("increment views", err)
	}
	if err := requireAffected("increment views", result); err != nil {
		return 0, err
	}
	count, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("increment views: %w", err)
	}
	return count, nil
}

func (r *PropertyRepository) List(ctx context.Context, f models.PropertyFilter) ([]models.PropertySummary, error) {
	where := buildPropertyWhere(f)
	query := propertySummarySelect + where.String() + propertyOrderBy(f.Ordering)
	args := where.args
	if f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError("list properties", err)
	}
	defer rows.Close()

	summaries := []models.PropertySummary{}
	for rows.Next() {
		s, err := scanPropertySummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan property summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("property rows error: %w", err)
	}
	return summaries, nil
}

func (r *PropertyRepository) Count(ctx context.Context, f models.PropertyFilter) (int, error) {
	where := buildPropertyWhere(f)
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM properties p`+where.String(), where.args...).Scan(&count)
	if err != nil {
		return 0, translateError("count properties", err)
	}
	return count, nil
}

func (r *PropertyRepository) GetSummary(ctx context.Context, id uuid.UUID) (models.PropertySummary, error) {
	s, err := scanPropertySummary(r.DB.QueryRowContext(ctx, propertySummarySelect+` WHERE p.id = ?`, id))
	if err != nil {
		return models.PropertySummary{}, translateError("get property summary", err)
	}
	return s, nil
}

// Engagement returns the favorites count and the number of inquiries still in
// the "new" state.
func (r *PropertyRepository) Engagement(ctx context.Context, id uuid.UUID) (favorites, newInquiries int, err error) {
	query := `
    SELECT (SELECT COUNT(*) FROM favorites WHERE property_id = ?),
           (SELECT COUNT(*) FROM inquiries WHERE property_id = ? AND status = ?)`
	err = r.DB.QueryRowContext(ctx, query, id, id, models.InquiryStatusNew).Scan(&favorites, &newInquiries)
	if err != nil {
		return 0, 0, translateError("property engagement", err)
	}
	return favorites, newInquiries, nil
}
