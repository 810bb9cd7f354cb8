package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the user's email address, stored lowercase.
	// Unique across all users; used for login.
	Email string

	// FirstName and LastName are display fields, embedded in issued
	// tokens so the client can greet the user without another lookup.
	FirstName string
	LastName  string

	// PasswordHash is the argon2id encoded hash of the user's password.
	// Never exposed outside the auth and storage layers.
	PasswordHash string

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}

// NewUser creates a User with a fresh ID and timestamps.
// The email must already be normalized (lowercase, trimmed).
func NewUser(email, firstName, lastName, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
