package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fabhomes/internal/models"
)

type InquiryRepository struct {
	DB *sql.DB
}

// inquiryScope limits rows to those the caller sent or received as seller.
const inquiryScope = `(i.user_id = ? OR p.seller_id = ?)`

const inquirySummarySelect = `
	SELECT i.id, i.property_id, p.title, i.user_id, i.name, i.email, i.phone,
	       i.inquiry_type, i.status, i.created_at, i.updated_at
	FROM inquiries i
	JOIN properties p ON p.id = i.property_id`

func scanInquirySummary(row rowScanner) (models.InquirySummary, error) {
	var s models.InquirySummary
	err := row.Scan(&s.ID, &s.PropertyID, &s.PropertyTitle, &s.UserID, &s.Name, &s.Email, &s.Phone,
		&s.InquiryType, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *InquiryRepository) Create(ctx context.Context, i models.Inquiry) error {
	query := `
    INSERT INTO inquiries (id, property_id, user_id, name, email, phone, message, inquiry_type, status, created_at, updated_at)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`
	_, err := r.DB.ExecContext(ctx, query,
		i.ID, i.PropertyID, i.UserID, i.Name, i.Email, i.Phone, i.Message, i.InquiryType, i.Status, i.CreatedAt, i.UpdatedAt)
	return translateError("create inquiry", err)
}

func (r *InquiryRepository) ListForCaller(ctx context.Context, caller uuid.UUID, limit, offset int) ([]models.InquirySummary, int, error) {
	var total int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM inquiries i JOIN properties p ON p.id = i.property_id WHERE `+inquiryScope,
		caller, caller).Scan(&total)
	if err != nil {
		return nil, 0, translateError("count inquiries", err)
	}

	rows, err := r.DB.QueryContext(ctx,
		inquirySummarySelect+` WHERE `+inquiryScope+` ORDER BY i.created_at DESC, i.id ASC LIMIT ? OFFSET ?`,
		caller, caller, limit, offset)
	if err != nil {
		return nil, 0, translateError("list inquiries", err)
	}
	defer rows.Close()

	inquiries := []models.InquirySummary{}
	for rows.Next() {
		s, err := scanInquirySummary(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan inquiry: %w", err)
		}
		inquiries = append(inquiries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("inquiry rows error: %w", err)
	}
	return inquiries, total, nil
}

// GetForCaller loads an inquiry only if it is within the caller's scope.
func (r *InquiryRepository) GetForCaller(ctx context.Context, id, caller uuid.UUID) (models.Inquiry, error) {
	var i models.Inquiry
	err := r.DB.QueryRowContext(ctx, `
    SELECT i.id, i.property_id, i.user_id, i.name, i.email, i.phone, i.message, i.inquiry_type, i.status, i.created_at, i.updated_at
    FROM inquiries i
    JOIN properties p ON p.id = i.property_id
    WHERE i.id = ? AND `+inquiryScope, id, caller, caller).Scan(
		&i.ID, &i.PropertyID, &i.UserID, &i.Name, &i.Email, &i.Phone, &i.Message, &i.InquiryType, &i.Status, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return models.Inquiry{}, translateError("get inquiry for caller", err)
	}
	return i, nil
}

func (r *InquiryRepository) GetSummary(ctx context.Context, id uuid.UUID) (models.InquirySummary, error) {
	s, err := scanInquirySummary(r.DB.QueryRowContext(ctx, inquirySummarySelect+` WHERE i.id = ?`, id))
	if err != nil {
		return models.InquirySummary{}, translateError("get inquiry summary", err)
	}
	return s, nil
}

func (r *InquiryRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE inquiries SET status = ?, updated_at = ? WHERE id = ?`, status, time.Now().UTC(), id)
	if err != nil {
		return translateError("update inquiry status", err)
	}
	return requireAffected("update inquiry status", result)
}
