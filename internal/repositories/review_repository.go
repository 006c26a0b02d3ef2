package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"fabhomes/internal/models"
)

type ReviewRepository struct {
	DB *sql.DB
}

func (r *ReviewRepository) Create(ctx context.Context, rv models.Review) error {
	agent, agency, property := rv.Target.Refs()
	query := `
    INSERT INTO reviews (id, reviewer_id, agent_id, agency_id, property_id, rating, comment, created_at, updated_at)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`
	_, err := r.DB.ExecContext(ctx, query,
		rv.ID, rv.ReviewerID, agent, agency, property, rv.Rating, rv.Comment, rv.CreatedAt, rv.UpdatedAt)
	if isForeignKeyConstraintError(err) {
		return fmt.Errorf("create review: %w", models.ErrNotFound)
	}
	return translateError("create review", err)
}

func reviewTargetColumn(kind models.ReviewTargetKind) (string, error) {
	switch kind {
	case models.ReviewTargetAgent:
		return "r.agent_id", nil
	case models.ReviewTargetAgency:
		return "r.agency_id", nil
	case models.ReviewTargetProperty:
		return "r.property_id", nil
	}
	return "", models.ErrInvalidReviewTarget
}

// ListByTarget returns the newest reviews first. A non-positive limit returns
// every review.
func (r *ReviewRepository) ListByTarget(ctx context.Context, target models.ReviewTarget, limit int) ([]models.ReviewView, error) {
	column, err := reviewTargetColumn(target.Kind())
	if err != nil {
		return nil, err
	}
	query := `
	SELECT r.id, TRIM(CONCAT(u.first_name, ' ', u.last_name)), r.agent_id, r.agency_id, r.property_id,
	       r.rating, r.comment, r.created_at
	FROM reviews r
	JOIN users u ON u.id = r.reviewer_id
	WHERE ` + column + ` = ?
	ORDER BY r.created_at DESC, r.id ASC`
	args := []interface{}{target.ID()}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError("list reviews", err)
	}
	defer rows.Close()

	reviews := []models.ReviewView{}
	for rows.Next() {
		var (
			v                       models.ReviewView
			agent, agency, property *uuid.UUID
		)
		if err := rows.Scan(&v.ID, &v.ReviewerName, &agent, &agency, &property, &v.Rating, &v.Comment, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		v.Target, err = models.TargetFromRefs(agent, agency, property)
		if err != nil {
			return nil, fmt.Errorf("review %s: %w", v.ID, err)
		}
		reviews = append(reviews, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("review rows error: %w", err)
	}
	return reviews, nil
}
