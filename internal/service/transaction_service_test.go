package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/moneybook/internal/models"
)

func decodeTransaction(t *testing.T, body []byte) models.Transaction {
	t.Helper()
	var tx models.Transaction
	if err := json.Unmarshal(body, &tx); err != nil {
		t.Fatalf("failed to decode transaction: %v", err)
	}
	return tx
}

func TestTransactions_Flow(t *testing.T) {
	handler, _ := newTestRouter(t)
	token := registerAndLogin(t, handler, "jane@example.com")

	var createdID string

	t.Run("create income", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/transactions", token,
			`{"type":"INCOME","category":"Salary","amount":1000,"transactionDate":"2026-09-01"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
		}
		tx := decodeTransaction(t, rec.Body.Bytes())
		if tx.ID == "" || tx.UserID == "" {
			t.Errorf("created transaction missing IDs: %+v", tx)
		}
		createdID = tx.ID
	})

	t.Run("create expense", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/transactions", token,
			`{"type":"EXPENSE","category":"Rent","amount":400,"transactionDate":"2026-09-02"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
		}
	})

	t.Run("list returns both entries", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/transactions", token, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
		}
		var txs []models.Transaction
		if err := json.Unmarshal(rec.Body.Bytes(), &txs); err != nil {
			t.Fatalf("failed to decode list: %v", err)
		}
		if len(txs) != 2 {
			t.Errorf("list length = %d, want 2", len(txs))
		}
	})

	t.Run("summary aggregates the ledger", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/transactions/summary", token, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
		}
		var summary struct {
			Balance      decimal.Decimal `json:"balance"`
			NetLoanTaken decimal.Decimal `json:"netLoanTaken"`
			NetLoanGiven decimal.Decimal `json:"netLoanGiven"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
			t.Fatalf("failed to decode summary: %v", err)
		}
		if !summary.Balance.Equal(decimal.NewFromInt(600)) {
			t.Errorf("balance = %s, want 600", summary.Balance)
		}
	})

	t.Run("get by id", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/transactions/"+createdID, token, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
		}
		tx := decodeTransaction(t, rec.Body.Bytes())
		if !tx.Amount.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("amount = %s, want 1000", tx.Amount)
		}
	})

	t.Run("update keeps the type", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPut, "/transactions/"+createdID, token,
			`{"type":"EXPENSE","category":"Bonus","amount":1500,"transactionDate":"2026-09-01"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
		}
		tx := decodeTransaction(t, rec.Body.Bytes())
		if tx.Type != models.TypeIncome {
			t.Errorf("type = %q, the stored type must be immutable", tx.Type)
		}
		if !tx.Amount.Equal(decimal.NewFromInt(1500)) {
			t.Errorf("amount = %s, want 1500", tx.Amount)
		}
	})

	t.Run("get missing id", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/transactions/does-not-exist", token, "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestTransactions_Validation(t *testing.T) {
	handler, _ := newTestRouter(t)
	token := registerAndLogin(t, handler, "jane@example.com")

	tests := []struct {
		name string
		body string
	}{
		{"unknown type", `{"type":"GAMBLING","amount":10,"transactionDate":"2026-09-01"}`},
		{"negative amount", `{"type":"INCOME","amount":-10,"transactionDate":"2026-09-01"}`},
		{"loan without counterparty", `{"type":"LOAN_TAKEN","amount":500,"transactionDate":"2026-09-01"}`},
		{"settlement without counterparty", `{"type":"SETTLEMENT","amount":100,"transactionDate":"2026-09-01"}`},
		{"bad date", `{"type":"INCOME","amount":10,"transactionDate":"September 1st"}`},
		{"not json", `{nope`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, handler, http.MethodPost, "/transactions", token, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400, body %s", rec.Code, rec.Body)
			}
		})
	}

	t.Run("loan with counterparty is accepted", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/transactions", token,
			`{"type":"LOAN_TAKEN","amount":500,"counterparty":"Bank","transactionDate":"2026-09-01"}`)
		if rec.Code != http.StatusCreated {
			t.Errorf("status = %d, want 201, body %s", rec.Code, rec.Body)
		}
	})
}

func TestTransactions_AccessControl(t *testing.T) {
	handler, _ := newTestRouter(t)
	janeToken := registerAndLogin(t, handler, "jane@example.com")
	johnToken := registerAndLogin(t, handler, "john@example.com")

	rec := doJSON(t, handler, http.MethodPost, "/transactions", janeToken,
		`{"type":"INCOME","amount":100,"transactionDate":"2026-09-01"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}
	janeTx := decodeTransaction(t, rec.Body.Bytes())

	t.Run("no token is denied by the gate", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/transactions", "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("tampered token is denied", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/transactions", janeToken+"x", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("another user's transaction is forbidden", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/transactions/"+janeTx.ID, johnToken, "")
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("lists are scoped per user", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/transactions", johnToken, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var txs []models.Transaction
		if err := json.Unmarshal(rec.Body.Bytes(), &txs); err != nil {
			t.Fatalf("failed to decode list: %v", err)
		}
		if len(txs) != 0 {
			t.Errorf("john sees %d of jane's transactions", len(txs))
		}
	})

	t.Run("preflight bypasses authentication", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/transactions", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rr.Code)
		}
	})
}

func TestTransactions_Types(t *testing.T) {
	handler, _ := newTestRouter(t)
	token := registerAndLogin(t, handler, "jane@example.com")

	rec := doJSON(t, handler, http.MethodGet, "/transactions/types", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var types []models.TransactionType
	if err := json.Unmarshal(rec.Body.Bytes(), &types); err != nil {
		t.Fatalf("failed to decode types: %v", err)
	}
	if len(types) != 6 {
		t.Errorf("got %d types, want 6", len(types))
	}
}
