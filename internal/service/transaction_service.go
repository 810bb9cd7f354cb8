package service

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/moneybook/internal/ledger"
	"github.com/mmynk/moneybook/internal/middleware"
	"github.com/mmynk/moneybook/internal/models"
	"github.com/mmynk/moneybook/internal/storage"
)

// TransactionService serves the /transactions endpoints. Every handler
// scopes its data access to the user projected into the request context
// by the authentication middleware.
type TransactionService struct {
	store storage.Store
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(store storage.Store) *TransactionService {
	return &TransactionService{store: store}
}

type transactionRequest struct {
	Type            models.TransactionType `json:"type"`
	Category        string                 `json:"category"`
	Amount          decimal.Decimal        `json:"amount"`
	Description     string                 `json:"description"`
	Counterparty    string                 `json:"counterparty"`
	Notes           string                 `json:"notes"`
	TransactionDate string                 `json:"transactionDate"`
}

// currentUser resolves the authenticated principal to its user row.
// RequireUser guarantees the email is present, so a missing row means
// the account vanished after the token was issued.
func (s *TransactionService) currentUser(r *http.Request) (*models.User, error) {
	email := middleware.GetUserEmail(r.Context())
	if email == "" {
		return nil, errors.New("no authenticated user in context")
	}
	user, err := s.store.GetUserByEmail(r.Context(), email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("authenticated user no longer exists")
	}
	return user, nil
}

// validateEntry checks the invariants shared by create and update.
func validateEntry(typ models.TransactionType, amount decimal.Decimal, counterparty, date string) string {
	if amount.IsNegative() {
		return "amount must not be negative"
	}
	if typ.RequiresCounterparty() && counterparty == "" {
		return "counterparty required for loan, recovery and settlement transactions"
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "transactionDate must be in YYYY-MM-DD format"
	}
	return ""
}

// Create handles POST /transactions.
func (s *TransactionService) Create(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		internalError(w, err)
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Type.Valid() {
		writeError(w, http.StatusBadRequest, "unknown transaction type")
		return
	}
	if msg := validateEntry(req.Type, req.Amount, req.Counterparty, req.TransactionDate); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	tx := &models.Transaction{
		ID:              uuid.New().String(),
		UserID:          user.ID,
		Type:            req.Type,
		Category:        req.Category,
		Amount:          req.Amount,
		Description:     req.Description,
		Counterparty:    req.Counterparty,
		Notes:           req.Notes,
		TransactionDate: req.TransactionDate,
		CreatedAt:       time.Now().Unix(),
	}

	if err := s.store.CreateTransaction(r.Context(), tx); err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tx)
}

// List handles GET /transactions.
func (s *TransactionService) List(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		internalError(w, err)
		return
	}

	txs, err := s.store.ListTransactions(r.Context(), user.ID)
	if err != nil {
		internalError(w, err)
		return
	}
	if txs == nil {
		txs = []models.Transaction{}
	}

	writeJSON(w, http.StatusOK, txs)
}

// Types handles GET /transactions/types.
func (s *TransactionService) Types(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.TransactionTypes())
}

// Get handles GET /transactions/{id}.
func (s *TransactionService) Get(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		internalError(w, err)
		return
	}

	tx, err := s.store.GetTransaction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		internalError(w, err)
		return
	}
	if tx == nil {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}
	if tx.UserID != user.ID {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	writeJSON(w, http.StatusOK, tx)
}

// Update handles PUT /transactions/{id}. The transaction type is
// immutable: whatever type the request carries is ignored and the
// stored type kept, matching the counterparty rule against it.
func (s *TransactionService) Update(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		internalError(w, err)
		return
	}

	tx, err := s.store.GetTransaction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		internalError(w, err)
		return
	}
	if tx == nil {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}
	if tx.UserID != user.ID {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateEntry(tx.Type, req.Amount, req.Counterparty, req.TransactionDate); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	tx.Category = req.Category
	tx.Amount = req.Amount
	tx.Description = req.Description
	tx.Counterparty = req.Counterparty
	tx.Notes = req.Notes
	tx.TransactionDate = req.TransactionDate

	if err := s.store.UpdateTransaction(r.Context(), tx); err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tx)
}

// Summary handles GET /transactions/summary: the ledger aggregation
// over the current user's full history.
func (s *TransactionService) Summary(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		internalError(w, err)
		return
	}

	txs, err := s.store.ListTransactions(r.Context(), user.ID)
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ledger.Summarize(txs))
}
