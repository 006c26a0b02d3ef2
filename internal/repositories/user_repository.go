package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"fabhomes/internal/models"
)

type UserRepository struct {
	DB *sql.DB
}

const userWithProfileSelect = `
	SELECT u.id, u.email, u.first_name, u.last_name, u.created_at, u.updated_at,
	       up.id, up.firebase_uid, up.phone, up.profile_image_url, up.bio, up.role,
	       up.is_verified, up.is_agent, up.agency_id, up.created_at, up.updated_at
	FROM users u
	LEFT JOIN user_profiles up ON up.user_id = u.id`

func scanUserWithProfile(row rowScanner) (models.User, error) {
	var (
		u         models.User
		profileID *uuid.UUID
		uid       sql.NullString
		phone     sql.NullString
		image     sql.NullString
		bio       sql.NullString
		role      sql.NullString
		verified  sql.NullBool
		isAgent   sql.NullBool
		agencyID  *uuid.UUID
		created   sql.NullTime
		updated   sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt,
		&profileID, &uid, &phone, &image, &bio, &role,
		&verified, &isAgent, &agencyID, &created, &updated,
	)
	if err != nil {
		return models.User{}, err
	}
	if profileID != nil {
		u.Profile = &models.UserProfile{
			ID:              *profileID,
			UserID:          u.ID,
			FirebaseUID:     uid.String,
			UserEmail:       u.Email,
			UserName:        u.FullName(),
			Phone:           phone.String,
			ProfileImageURL: image.String,
			Bio:             bio.String,
			Role:            role.String,
			IsVerified:      verified.Bool,
			IsAgent:         isAgent.Bool,
			AgencyID:        agencyID,
			CreatedAt:       created.Time,
			UpdatedAt:       updated.Time,
		}
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	u, err := scanUserWithProfile(r.DB.QueryRowContext(ctx, userWithProfileSelect+` WHERE u.id = ?`, id))
	if err != nil {
		return models.User{}, translateError("get user", err)
	}
	return u, nil
}

func (r *UserRepository) GetByFirebaseUID(ctx context.Context, uid string) (models.User, error) {
	u, err := scanUserWithProfile(r.DB.QueryRowContext(ctx, userWithProfileSelect+` WHERE up.firebase_uid = ?`, uid))
	if err != nil {
		return models.User{}, translateError("get user by firebase uid", err)
	}
	return u, nil
}

// CreateWithProfile inserts the account and its profile atomically. A second
// caller racing on the same firebase uid gets models.ErrConflict.
func (r *UserRepository) CreateWithProfile(ctx context.Context, u models.User, p models.UserProfile) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create user: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (id, email, first_name, last_name, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.FirstName, u.LastName, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return translateError("create user", err)
	}

	_, err = tx.ExecContext(ctx, `
    INSERT INTO user_profiles (id, user_id, firebase_uid, phone, profile_image_url, bio, role, is_verified, is_agent, agency_id, created_at, updated_at)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, u.ID, p.FirebaseUID, p.Phone, p.ProfileImageURL, p.Bio, p.Role, p.IsVerified, p.IsAgent, p.AgencyID, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return translateError("create user profile", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create user: %w", err)
	}
	return nil
}

// AgentsByAgency lists the agent profiles attached to an agency.
func (r *UserRepository) AgentsByAgency(ctx context.Context, agencyID uuid.UUID) ([]models.UserProfile, error) {
	query := userWithProfileSelect + ` WHERE up.agency_id = ? AND up.is_agent = TRUE ORDER BY u.first_name, u.last_name`
	rows, err := r.DB.QueryContext(ctx, query, agencyID)
	if err != nil {
		return nil, translateError("list agency agents", err)
	}
	defer rows.Close()

	agents := []models.UserProfile{}
	for rows.Next() {
		u, err := scanUserWithProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan agent: %w", err)
		}
		if u.Profile != nil {
			agents = append(agents, *u.Profile)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("agent rows error: %w", err)
	}
	return agents, nil
}
