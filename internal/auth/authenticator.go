package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mmynk/moneybook/internal/models"
	"github.com/mmynk/moneybook/internal/storage"
)

// UserStore defines the persistence operations the authenticator needs.
// This keeps it independent of the storage implementation.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// PasswordAuthenticator implements registration and login on top of a
// user store and an argon2id password hasher.
type PasswordAuthenticator struct {
	store  UserStore
	hasher *PasswordHasher

	// dummyHash is verified against when a login targets an unknown
	// email, so that unknown-user and wrong-password failures take the
	// same time and cannot be told apart.
	dummyHash string
}

// NewPasswordAuthenticator creates a password-based authenticator.
func NewPasswordAuthenticator(store UserStore, hasher *PasswordHasher) (*PasswordAuthenticator, error) {
	dummyHash, err := hasher.Hash(uuid.New().String())
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}
	return &PasswordAuthenticator{
		store:     store,
		hasher:    hasher,
		dummyHash: dummyHash,
	}, nil
}

// NormalizeEmail lowercases and trims an email address. All lookups and
// writes go through this, so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user account with a hashed password.
// Returns ErrEmailExists if the normalized email is already taken.
//
// The existence check and the insert are not atomic; the UNIQUE
// constraint on the users table is the real authority, and a losing
// racer surfaces as ErrEmailExists too.
func (a *PasswordAuthenticator) Register(ctx context.Context, email, firstName, lastName, password string) (*models.User, error) {
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}

	email = NormalizeEmail(email)

	existing, err := a.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	passwordHash, err := a.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(email, strings.TrimSpace(firstName), strings.TrimSpace(lastName), passwordHash)

	if err := a.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies the email and password, returning the user if valid.
// Unknown email and wrong password both fail with ErrInvalidCredentials
// and cost the same amount of work.
func (a *PasswordAuthenticator) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := a.store.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		a.hasher.Verify(password, a.dummyHash)
		return nil, ErrInvalidCredentials
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
