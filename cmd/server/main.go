package main

import (
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/moneybook/internal/auth"
	"github.com/mmynk/moneybook/internal/config"
	"github.com/mmynk/moneybook/internal/service"
	"github.com/mmynk/moneybook/internal/storage/sqlite"
	"github.com/mmynk/moneybook/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	hasher := auth.NewPasswordHasher(auth.Argon2Params{
		Memory:      cfg.Argon2Memory,
		Iterations:  cfg.Argon2Iterations,
		Parallelism: cfg.Argon2Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})

	authenticator, err := auth.NewPasswordAuthenticator(store, hasher)
	if err != nil {
		slog.Error("Failed to initialize authenticator", "error", err)
		os.Exit(1)
	}

	tokens := auth.NewTokenManager([]byte(cfg.JWTSecret), cfg.TokenTTL)

	handler := service.NewRouter(store, authenticator, tokens, cfg.CORSAllowedOrigins)

	// h2c enables HTTP/2 without TLS for clients and proxies that want it.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	slog.Info("Server starting", "address", cfg.Addr, "token_ttl", cfg.TokenTTL)
	if err := http.ListenAndServe(cfg.Addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
