package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"fabhomes/internal/models"
)

type TransactionRepository struct {
	DB *sql.DB
}

const transactionSelect = `
	SELECT t.id, t.property_id, p.title, t.buyer_id, t.seller_id, t.agent_id,
	       COALESCE(TRIM(CONCAT(b.first_name, ' ', b.last_name)), ''),
	       TRIM(CONCAT(s.first_name, ' ', s.last_name)),
	       t.transaction_type, t.offer_price, t.final_price, t.status,
	       t.transaction_date, t.closing_date, t.notes, t.created_at, t.updated_at
	FROM transactions t
	JOIN properties p ON p.id = t.property_id
	JOIN users s ON s.id = t.seller_id
	LEFT JOIN users b ON b.id = t.buyer_id`

// transactionScope limits rows to those where the user is a party.
const transactionScope = `(t.buyer_id = ? OR t.seller_id = ? OR t.agent_id = ?)`

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var t models.Transaction
	var txDate, closing sql.NullTime
	err := row.Scan(&t.ID, &t.PropertyID, &t.PropertyTitle, &t.BuyerID, &t.SellerID, &t.AgentID,
		&t.BuyerName, &t.SellerName,
		&t.TransactionType, &t.OfferPrice, &t.FinalPrice, &t.Status,
		&txDate, &closing, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return models.Transaction{}, err
	}
	if txDate.Valid {
		t.TransactionDate = &txDate.Time
	}
	if closing.Valid {
		t.ClosingDate = &closing.Time
	}
	return t, nil
}

func (r *TransactionRepository) Create(ctx context.Context, t models.Transaction) error {
	query := `
    INSERT INTO transactions (id, property_id, buyer_id, seller_id, agent_id, transaction_type,
        offer_price, final_price, status, transaction_date, closing_date, notes, created_at, updated_at)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`
	_, err := r.DB.ExecContext(ctx, query,
		t.ID, t.PropertyID, t.BuyerID, t.SellerID, t.AgentID, t.TransactionType,
		t.OfferPrice, t.FinalPrice, t.Status, t.TransactionDate, t.ClosingDate, t.Notes, t.CreatedAt, t.UpdatedAt)
	return translateError("create transaction", err)
}

func (r *TransactionRepository) ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Transaction, int, error) {
	var total int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions t WHERE `+transactionScope,
		userID, userID, userID).Scan(&total)
	if err != nil {
		return nil, 0, translateError("count transactions", err)
	}

	rows, err := r.DB.QueryContext(ctx,
		transactionSelect+` WHERE `+transactionScope+` ORDER BY t.created_at DESC, t.id ASC LIMIT ? OFFSET ?`,
		userID, userID, userID, limit, offset)
	if err != nil {
		return nil, 0, translateError("list transactions", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("transaction rows error: %w", err)
	}
	return transactions, total, nil
}

func (r *TransactionRepository) GetForUser(ctx context.Context, id, userID uuid.UUID) (models.Transaction, error) {
	t, err := scanTransaction(r.DB.QueryRowContext(ctx,
		transactionSelect+` WHERE t.id = ? AND `+transactionScope, id, userID, userID, userID))
	if err != nil {
		return models.Transaction{}, translateError("get transaction", err)
	}
	return t, nil
}
