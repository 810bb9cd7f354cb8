// Package service implements the HTTP handlers and route assembly for
// the Moneybook API.
package service

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmynk/moneybook/internal/auth"
	"github.com/mmynk/moneybook/internal/metrics"
	"github.com/mmynk/moneybook/internal/middleware"
	"github.com/mmynk/moneybook/internal/storage"
)

// NewRouter assembles the full HTTP surface.
//
// The auth endpoints, health check, metrics and CORS preflight are
// public. Everything under /transactions runs behind two stages:
// Authenticate projects a bearer token into the request context
// (never rejecting), and RequireUser is the gate that denies requests
// without an established identity.
func NewRouter(store storage.Store, authenticator *auth.PasswordAuthenticator, tokens *auth.TokenManager, corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS(corsOrigins))
	r.Use(metrics.Instrument)
	r.Use(middleware.Logging)

	authSvc := NewAuthService(authenticator, tokens)
	txSvc := NewTransactionService(store)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authSvc.Register)
		r.Post("/login", authSvc.Login)
	})

	r.Route("/transactions", func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens))
		r.Use(middleware.RequireUser)

		r.Post("/", txSvc.Create)
		r.Get("/", txSvc.List)
		r.Get("/types", txSvc.Types)
		r.Get("/summary", txSvc.Summary)
		r.Get("/{id}", txSvc.Get)
		r.Put("/{id}", txSvc.Update)
	})

	return r
}
