package service

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mmynk/moneybook/internal/auth"
	"github.com/mmynk/moneybook/internal/metrics"
)

// AuthService serves the /auth endpoints.
type AuthService struct {
	authenticator *auth.PasswordAuthenticator
	tokens        *auth.TokenManager
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator *auth.PasswordAuthenticator, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		tokens:        tokens,
	}
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Register handles POST /auth/register.
func (s *AuthService) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		writeError(w, http.StatusBadRequest, "firstName, lastName, email and password are required")
		return
	}

	user, err := s.authenticator.Register(r.Context(), req.Email, req.FirstName, req.LastName, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			metrics.Registrations.WithLabelValues("conflict").Inc()
			writeError(w, http.StatusConflict, "Email already registered")
		case errors.Is(err, auth.ErrWeakPassword):
			metrics.Registrations.WithLabelValues("failure").Inc()
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			metrics.Registrations.WithLabelValues("failure").Inc()
			internalError(w, err)
		}
		return
	}

	metrics.Registrations.WithLabelValues("success").Inc()
	slog.Info("User registered", "user_id", user.ID, "email", user.Email)
	w.WriteHeader(http.StatusCreated)
}

// Login handles POST /auth/login. All credential failures surface as
// the same generic 401; only genuine internal faults become 500.
func (s *AuthService) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.authenticator.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			metrics.LoginAttempts.WithLabelValues("failure").Inc()
			slog.Warn("Login failed", "email", auth.NormalizeEmail(req.Email))
			writeError(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
			return
		}
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		internalError(w, err)
		return
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		internalError(w, err)
		return
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	slog.Info("User logged in", "user_id", user.ID, "email", user.Email)
	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}
