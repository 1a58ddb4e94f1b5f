// Package model contains domain entities used across layers.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Transaction statuses.
const (
	StatusPending = "pending"
	StatusSettled = "settled"
	StatusFailed  = "failed"
)

// Account is a ledger account holding money in a single currency.
type Account struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Transaction is a single money movement on an account.
// AmountMinor is signed and expressed in minor units (cents).
type Transaction struct {
	ID          int64     `json:"id"`
	AccountID   int64     `json:"account_id"`
	Reference   uuid.UUID `json:"reference"`
	AmountMinor int64     `json:"amount_minor"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"` // pending, settled, failed
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TransactionFilter narrows account transaction listings.
// An empty Status matches every status.
type TransactionFilter struct {
	Status string
}
