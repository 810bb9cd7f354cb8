package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mmynk/moneybook/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// userEmailKey is the context key for the authenticated user's email.
const userEmailKey contextKey = "user_email"

// WithUserEmail returns a copy of ctx carrying the authenticated
// user's email.
func WithUserEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, userEmailKey, email)
}

// GetUserEmail extracts the authenticated user's email from the context.
// Returns empty string if the request carried no valid token.
func GetUserEmail(ctx context.Context) string {
	email, _ := ctx.Value(userEmailKey).(string)
	return email
}

// Authenticate returns middleware that projects a bearer token into the
// request context. It is purely an identity-projection step: a missing,
// malformed or invalid token leaves the context empty and the request
// proceeds unchanged. Enforcement is RequireUser's job, so routes that
// never mount RequireUser stay reachable anonymously.
func Authenticate(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.Validate(parts[1])
			if err != nil {
				// Expired vs tampered vs garbled only matters for logs.
				slog.Debug("Token rejected", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserEmail(r.Context(), claims.Subject)))
		})
	}
}

// RequireUser is the authorization gate for protected routes: it
// rejects any request whose context carries no authenticated user.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserEmail(r.Context()) == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": auth.ErrMissingToken.Error()})
			return
		}
		next.ServeHTTP(w, r)
	})
}
