package repositories

import (
	"context"
	"database/sql"

	"fabhomes/internal/models"
)

type AnalyticsRepository struct {
	DB *sql.DB
}

// Counts computes every platform total in one round trip so the figures come
// from a single consistent read.
func (r *AnalyticsRepository) Counts(ctx context.Context) (models.Analytics, error) {
	query := `
    SELECT
        (SELECT COUNT(*) FROM properties),
        (SELECT COUNT(*) FROM inquiries),
        (SELECT COUNT(*) FROM properties WHERE status = ?),
        (SELECT COUNT(*) FROM properties WHERE status = ? AND listing_type = ?),
        (SELECT COUNT(*) FROM properties WHERE status = ? AND listing_type = ?),
        (SELECT COUNT(*) FROM users),
        (SELECT COUNT(*) FROM agencies WHERE verification_status = ?),
        (SELECT COUNT(*) FROM reviews),
        (SELECT COUNT(*) FROM transactions WHERE status = ?)`

	var a models.Analytics
	err := r.DB.QueryRowContext(ctx, query,
		models.StatusAvailable,
		models.StatusAvailable, models.ListingSale,
		models.StatusAvailable, models.ListingRent,
		models.VerificationVerified, models.TransactionCompleted,
	).Scan(
		&a.TotalProperties, &a.TotalInquiries, &a.AvailableProperties, &a.ForSale, &a.ForRent,
		&a.TotalUsers, &a.VerifiedAgencies, &a.TotalReviews, &a.CompletedTransactions,
	)
	if err != nil {
		return models.Analytics{}, translateError("analytics counts", err)
	}
	return a, nil
}
