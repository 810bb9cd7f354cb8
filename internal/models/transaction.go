package models

import "github.com/shopspring/decimal"

// TransactionType classifies a ledger entry. The type decides the sign
// of the amount during aggregation and which fields are required.
type TransactionType string

const (
	TypeIncome     TransactionType = "INCOME"
	TypeExpense    TransactionType = "EXPENSE"
	TypeLoanTaken  TransactionType = "LOAN_TAKEN"
	TypeLoanGiven  TransactionType = "LOAN_GIVEN"
	TypeRecovery   TransactionType = "RECOVERY"
	TypeSettlement TransactionType = "SETTLEMENT"
)

// TransactionTypes returns all valid transaction types, in display order.
func TransactionTypes() []TransactionType {
	return []TransactionType{
		TypeIncome,
		TypeExpense,
		TypeLoanTaken,
		TypeLoanGiven,
		TypeRecovery,
		TypeSettlement,
	}
}

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeLoanTaken, TypeLoanGiven, TypeRecovery, TypeSettlement:
		return true
	}
	return false
}

// RequiresCounterparty reports whether entries of this type must name
// the other party (loans and their repayments).
func (t TransactionType) RequiresCounterparty() bool {
	switch t {
	case TypeLoanTaken, TypeLoanGiven, TypeRecovery, TypeSettlement:
		return true
	}
	return false
}

// Transaction represents a single ledger entry owned by a user.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string `json:"id"`

	// UserID references the owning user. Entries are only ever visible
	// to their owner.
	UserID string `json:"userId"`

	// Type classifies the entry; immutable after creation.
	Type TransactionType `json:"type"`

	// Category is a free-form label (e.g., "Groceries", "Salary").
	Category string `json:"category,omitempty"`

	// Amount is the non-negative magnitude of the entry. Exact decimal,
	// no binary floating point.
	Amount decimal.Decimal `json:"amount"`

	// Description is an optional human-readable note.
	Description string `json:"description,omitempty"`

	// Counterparty names the other party; required for loan, recovery
	// and settlement entries.
	Counterparty string `json:"counterparty,omitempty"`

	// Notes holds additional free-form text.
	Notes string `json:"notes,omitempty"`

	// TransactionDate is the date the entry applies to, ISO format
	// (YYYY-MM-DD).
	TransactionDate string `json:"transactionDate"`

	// CreatedAt is the Unix timestamp when the entry was recorded.
	CreatedAt int64 `json:"createdAt"`
}
