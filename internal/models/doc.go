// Package models defines the core domain models for Moneybook.
//
// The two persistent entities are:
//   - User: a registered account, looked up by email at login
//   - Transaction: a single ledger entry owned by a user
//
// Transaction amounts are stored as non-negative magnitudes. Whether an
// amount increases or decreases the balance is derived from the
// transaction type at aggregation time (see the ledger package), never
// stored on the entity itself.
package models
