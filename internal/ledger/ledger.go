// Package ledger computes summary figures from a transaction history.
// All arithmetic is exact decimal; no I/O, no state.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/moneybook/internal/models"
)

// Summary holds the aggregate positions derived from a user's ledger.
type Summary struct {
	// Balance is the net of all entries: income, loans taken and
	// recoveries count positive; expenses, loans given and settlements
	// count negative.
	Balance decimal.Decimal `json:"balance"`

	// NetLoanTaken is the outstanding amount the user still owes:
	// loans taken minus settlements paid back.
	NetLoanTaken decimal.Decimal `json:"netLoanTaken"`

	// NetLoanGiven is the outstanding amount owed to the user:
	// loans given minus recoveries received.
	NetLoanGiven decimal.Decimal `json:"netLoanGiven"`
}

// Summarize aggregates a transaction history into a Summary.
// Amounts are non-negative magnitudes; the sign of each contribution is
// derived from the transaction type here and nowhere else. Entries with
// an unknown type are ignored. An empty history yields all zeros.
func Summarize(txs []models.Transaction) Summary {
	balance := decimal.Zero
	loanTaken := decimal.Zero
	settled := decimal.Zero
	loanGiven := decimal.Zero
	recovered := decimal.Zero

	for _, tx := range txs {
		switch tx.Type {
		case models.TypeIncome:
			balance = balance.Add(tx.Amount)
		case models.TypeExpense:
			balance = balance.Sub(tx.Amount)
		case models.TypeLoanTaken:
			balance = balance.Add(tx.Amount)
			loanTaken = loanTaken.Add(tx.Amount)
		case models.TypeLoanGiven:
			balance = balance.Sub(tx.Amount)
			loanGiven = loanGiven.Add(tx.Amount)
		case models.TypeRecovery:
			balance = balance.Add(tx.Amount)
			recovered = recovered.Add(tx.Amount)
		case models.TypeSettlement:
			balance = balance.Sub(tx.Amount)
			settled = settled.Add(tx.Amount)
		}
	}

	return Summary{
		Balance:      balance,
		NetLoanTaken: loanTaken.Sub(settled),
		NetLoanGiven: loanGiven.Sub(recovered),
	}
}
