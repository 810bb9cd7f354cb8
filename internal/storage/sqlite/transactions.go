package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/moneybook/internal/models"
)

// CreateTransaction inserts a new ledger entry.
// The amount is stored as its exact decimal string.
func (s *SQLiteStore) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, type, category, amount, description, counterparty, notes, transaction_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		tx.ID,
		tx.UserID,
		string(tx.Type),
		tx.Category,
		tx.Amount.String(),
		tx.Description,
		tx.Counterparty,
		tx.Notes,
		tx.TransactionDate,
		tx.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// GetTransaction retrieves a single ledger entry by ID.
func (s *SQLiteStore) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	query := `
		SELECT id, user_id, type, category, amount, description, counterparty, notes, transaction_date, created_at
		FROM transactions
		WHERE id = ?
	`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil // Transaction not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return tx, nil
}

// ListTransactions returns all entries owned by the user, newest
// transaction date first.
func (s *SQLiteStore) ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, type, category, amount, description, counterparty, notes, transaction_date, created_at
		FROM transactions
		WHERE user_id = ?
		ORDER BY transaction_date DESC, created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, *tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return txs, nil
}

// UpdateTransaction rewrites the mutable fields of an existing entry.
// The type and owner are intentionally not updatable.
func (s *SQLiteStore) UpdateTransaction(ctx context.Context, tx *models.Transaction) error {
	query := `
		UPDATE transactions
		SET category = ?, amount = ?, description = ?, counterparty = ?, notes = ?, transaction_date = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		tx.Category,
		tx.Amount.String(),
		tx.Description,
		tx.Counterparty,
		tx.Notes,
		tx.TransactionDate,
		tx.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction not found: %s", tx.ID)
	}

	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (*models.Transaction, error) {
	tx := &models.Transaction{}
	var typ, amount string

	if err := row.Scan(
		&tx.ID,
		&tx.UserID,
		&typ,
		&tx.Category,
		&amount,
		&tx.Description,
		&tx.Counterparty,
		&tx.Notes,
		&tx.TransactionDate,
		&tx.CreatedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = models.TransactionType(typ)

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid stored amount %q: %w", amount, err)
	}
	tx.Amount = dec

	return tx, nil
}
