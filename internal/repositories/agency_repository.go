package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"fabhomes/internal/models"
)

type AgencyRepository struct {
	DB *sql.DB
}

const agencySelect = `
	SELECT a.id, a.name, a.email, a.phone, a.logo_url, a.description, a.address, a.website,
	       a.verification_status,
	       (SELECT COUNT(*) FROM user_profiles up WHERE up.agency_id = a.id AND up.is_agent = TRUE),
	       (SELECT COUNT(*) FROM properties p WHERE p.agency_id = a.id),
	       a.created_at, a.updated_at
	FROM agencies a`

func scanAgency(row rowScanner) (models.Agency, error) {
	var a models.Agency
	err := row.Scan(
		&a.ID, &a.Name, &a.Email, &a.Phone, &a.LogoURL, &a.Description, &a.Address, &a.Website,
		&a.VerificationStatus, &a.AgentsCount, &a.PropertiesCount, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (r *AgencyRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Agency, error) {
	a, err := scanAgency(r.DB.QueryRowContext(ctx, agencySelect+` WHERE a.id = ?`, id))
	if err != nil {
		return models.Agency{}, translateError("get agency", err)
	}
	return a, nil
}

// GetVerified returns the agency only when it has passed verification.
func (r *AgencyRepository) GetVerified(ctx context.Context, id uuid.UUID) (models.Agency, error) {
	a, err := scanAgency(r.DB.QueryRowContext(ctx, agencySelect+` WHERE a.id = ? AND a.verification_status = ?`,
		id, models.VerificationVerified))
	if err != nil {
		return models.Agency{}, translateError("get verified agency", err)
	}
	return a, nil
}

func (r *AgencyRepository) ListVerified(ctx context.Context, limit, offset int) ([]models.Agency, int, error) {
	var total int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM agencies WHERE verification_status = ?`,
		models.VerificationVerified).Scan(&total)
	if err != nil {
		return nil, 0, translateError("count agencies", err)
	}

	rows, err := r.DB.QueryContext(ctx,
		agencySelect+` WHERE a.verification_status = ? ORDER BY a.name ASC, a.id ASC LIMIT ? OFFSET ?`,
		models.VerificationVerified, limit, offset)
	if err != nil {
		return nil, 0, translateError("list agencies", err)
	}
	defer rows.Close()

	agencies := []models.Agency{}
	for rows.Next() {
		a, err := scanAgency(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan agency: %w", err)
		}
		agencies = append(agencies, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("agency rows error: %w", err)
	}
	return agencies, total, nil
}
