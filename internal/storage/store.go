// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/moneybook/internal/models"
)

// ErrDuplicateEmail is returned by CreateUser when the email is already
// taken. The UNIQUE constraint in the store is the final authority on
// email uniqueness, so even callers that pre-check must handle this.
var ErrDuplicateEmail = errors.New("email already registered")

// Store defines the interface for user and transaction persistence.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type Store interface {
	// CreateUser persists a new user. Returns ErrDuplicateEmail if a
	// user with the same email already exists.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email.
	// Returns (nil, nil) when no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// CreateTransaction persists a new ledger entry.
	CreateTransaction(ctx context.Context, tx *models.Transaction) error

	// GetTransaction retrieves a single entry by ID.
	// Returns (nil, nil) when no such entry exists.
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)

	// ListTransactions returns all entries owned by the given user,
	// newest transaction date first.
	ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error)

	// UpdateTransaction rewrites an existing entry.
	UpdateTransaction(ctx context.Context, tx *models.Transaction) error

	// Close releases any resources held by the store.
	Close() error
}
