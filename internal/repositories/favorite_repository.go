package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"fabhomes/internal/models"
)

type FavoriteRepository struct {
	DB *sql.DB
}

// Add inserts the (user, property) pair. The unique key on the pair turns a
// concurrent duplicate into models.ErrConflict.
func (r *FavoriteRepository) Add(ctx context.Context, f models.Favorite) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO favorites (id, user_id, property_id, created_at) VALUES (?, ?, ?, ?)`,
		f.ID, f.UserID, f.PropertyID, f.CreatedAt)
	if isForeignKeyConstraintError(err) {
		return fmt.Errorf("add favorite: %w", models.ErrNotFound)
	}
	return translateError("add favorite", err)
}

// Remove deletes the pair and reports whether a row existed.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = ? AND property_id = ?`, userID, propertyID)
	if err != nil {
		return false, translateError("remove favorite", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove favorite: %w", err)
	}
	return rows > 0, nil
}

// DeleteByID removes a favorite owned by userID.
func (r *FavoriteRepository) DeleteByID(ctx context.Context, id, userID uuid.UUID) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM favorites WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return translateError("delete favorite", err)
	}
	return requireAffected("delete favorite", result)
}

func (r *FavoriteRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (models.Favorite, error) {
	var f models.Favorite
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, user_id, property_id, created_at FROM favorites WHERE id = ? AND user_id = ?`, id, userID).
		Scan(&f.ID, &f.UserID, &f.PropertyID, &f.CreatedAt)
	if err != nil {
		return models.Favorite{}, translateError("get favorite", err)
	}
	return f, nil
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.FavoriteView, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM favorites WHERE user_id = ?`, userID).Scan(&total); err != nil {
		return nil, 0, translateError("count favorites", err)
	}

	query := `
	SELECT fav.id, fav.created_at,
	       p.id, p.title, p.property_type, p.listing_type, p.price, p.location, p.city,
	       p.bedrooms, p.bathrooms, p.total_area, p.featured_image_url,
	       TRIM(CONCAT(s.first_name, ' ', s.last_name)),
	       CASE WHEN a.id IS NULL THEN NULL ELSE TRIM(CONCAT(a.first_name, ' ', a.last_name)) END,
	       ag.name,
	       p.views_count,
	       (SELECT COUNT(*) FROM favorites f WHERE f.property_id = p.id),
	       p.status, p.created_at
	FROM favorites fav
	JOIN properties p ON p.id = fav.property_id
	JOIN users s ON s.id = p.seller_id
	LEFT JOIN users a ON a.id = p.agent_id
	LEFT JOIN agencies ag ON ag.id = p.agency_id
	WHERE fav.user_id = ?
	ORDER BY fav.created_at DESC, fav.id ASC
	LIMIT ? OFFSET ?`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, translateError("list favorites", err)
	}
	defer rows.Close()

	favorites := []models.FavoriteView{}
	for rows.Next() {
		var v models.FavoriteView
		s := &v.Property
		err := rows.Scan(&v.ID, &v.CreatedAt,
			&s.ID, &s.Title, &s.PropertyType, &s.ListingType, &s.Price, &s.Location, &s.City,
			&s.Bedrooms, &s.Bathrooms, &s.TotalArea, &s.FeaturedImageURL,
			&s.SellerName, &s.AgentName, &s.AgencyName,
			&s.ViewsCount, &s.FavoritesCount, &s.Status, &s.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan favorite: %w", err)
		}
		favorites = append(favorites, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("favorite rows error: %w", err)
	}
	return favorites, total, nil
}
