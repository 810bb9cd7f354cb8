package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/mmynk/moneybook/internal/models"
	"github.com/mmynk/moneybook/internal/storage"
)

// fakeUserStore is an in-memory UserStore keyed by email.
type fakeUserStore struct {
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *models.User) error {
	if _, exists := f.users[user.Email]; exists {
		return storage.ErrDuplicateEmail
	}
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return f.users[email], nil
}

func newTestAuthenticator(t *testing.T) (*PasswordAuthenticator, *fakeUserStore) {
	t.Helper()
	store := newFakeUserStore()
	a, err := NewPasswordAuthenticator(store, NewPasswordHasher(testParams()))
	if err != nil {
		t.Fatalf("NewPasswordAuthenticator failed: %v", err)
	}
	return a, store
}

func TestRegisterAndLogin(t *testing.T) {
	a, store := newTestAuthenticator(t)
	ctx := context.Background()

	user, err := a.Register(ctx, "  Jane.Doe@Example.COM ", " Jane ", " Doe ", "password123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Email != "jane.doe@example.com" {
		t.Errorf("email = %q, want normalized lowercase", user.Email)
	}
	if user.FirstName != "Jane" || user.LastName != "Doe" {
		t.Errorf("names = %q %q, want trimmed Jane Doe", user.FirstName, user.LastName)
	}
	if user.PasswordHash == "" || user.PasswordHash == "password123" {
		t.Error("password was not hashed")
	}
	if store.users["jane.doe@example.com"] == nil {
		t.Fatal("user was not persisted under the normalized email")
	}

	got, err := a.Login(ctx, "JANE.DOE@example.com", "password123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("Login returned user %q, want %q", got.ID, user.ID)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	a, _ := newTestAuthenticator(t)
	ctx := context.Background()

	if _, err := a.Register(ctx, "jane@example.com", "Jane", "Doe", "password123"); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	// Same email, different case.
	if _, err := a.Register(ctx, "JANE@EXAMPLE.COM", "Jane", "Doe", "password456"); !errors.Is(err, ErrEmailExists) {
		t.Errorf("Register error = %v, want ErrEmailExists", err)
	}
}

// racingStore reports no user on lookup but rejects the insert, like a
// concurrent registration winning between check and insert.
type racingStore struct{}

func (racingStore) GetUserByEmail(context.Context, string) (*models.User, error) {
	return nil, nil
}

func (racingStore) CreateUser(context.Context, *models.User) error {
	return storage.ErrDuplicateEmail
}

func TestRegister_StoreEnforcesUniqueness(t *testing.T) {
	// Losing the check-then-insert race still surfaces as ErrEmailExists:
	// the store's UNIQUE constraint is the authority.
	a, err := NewPasswordAuthenticator(racingStore{}, NewPasswordHasher(testParams()))
	if err != nil {
		t.Fatalf("NewPasswordAuthenticator failed: %v", err)
	}

	if _, err := a.Register(context.Background(), "jane@example.com", "Jane", "Doe", "password123"); !errors.Is(err, ErrEmailExists) {
		t.Errorf("Register error = %v, want ErrEmailExists", err)
	}
}

func TestRegister_WeakPassword(t *testing.T) {
	a, _ := newTestAuthenticator(t)

	if _, err := a.Register(context.Background(), "jane@example.com", "Jane", "Doe", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("Register error = %v, want ErrWeakPassword", err)
	}
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	a, _ := newTestAuthenticator(t)
	ctx := context.Background()

	if _, err := a.Register(ctx, "jane@example.com", "Jane", "Doe", "password123"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, unknownErr := a.Login(ctx, "nobody@example.com", "password123")
	_, wrongErr := a.Login(ctx, "jane@example.com", "wrong-password")

	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", unknownErr)
	}
	if !errors.Is(wrongErr, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Errorf("failure messages differ: %q vs %q", unknownErr, wrongErr)
	}
}
