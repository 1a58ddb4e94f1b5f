// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/ledger-service/internal/model"
	"github.com/maxviazov/ledger-service/internal/repository"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// NewInvalidInputError builds an aggregated validation error, or nil when fe is empty.
func NewInvalidInputError(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	var v *invalidInputError
	if errors.As(err, &v) {
		return v.Fields()
	}
	return nil
}

// PageRequest is a 1-based page number and page size as received from a client.
// Zero values mean "use the default".
type PageRequest struct {
	Number int
	Size   int
}

// PageLimits bounds page sizes for list use cases.
type PageLimits struct {
	DefaultSize int
	MaxSize     int
}

// AccountService defines account-oriented use cases.
type AccountService interface {
	CreateAccount(ctx context.Context, name, currency string) (model.Account, error)
	GetAccount(ctx context.Context, id int64) (model.Account, error)
	// ListAccounts returns the page and the normalized request it was fetched with.
	ListAccounts(ctx context.Context, req PageRequest) (repository.PageResult[model.Account], PageRequest, error)
}

// TransactionService defines transaction-oriented use cases.
type TransactionService interface {
	RecordTransaction(ctx context.Context, in RecordTransactionInput) (model.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (model.Transaction, error)
	ListTransactions(ctx context.Context, accountID int64, status string, req PageRequest) (repository.PageResult[model.Transaction], PageRequest, error)
}

// RecordTransactionInput carries client data for a new transaction.
type RecordTransactionInput struct {
	AccountID   int64
	AmountMinor int64
	Currency    string
	Status      string
	Description string
}
