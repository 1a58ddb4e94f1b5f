package repository

import (
	"context"

	"github.com/maxviazov/ledger-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// AccountRepository declares persistence operations for accounts.
// Implementations return the domain errors from errors.go rather than driver codes.
type AccountRepository interface {
	Create(ctx context.Context, a model.Account) (model.Account, error)
	GetByID(ctx context.Context, id int64) (model.Account, error)
	List(ctx context.Context, p Page) (PageResult[model.Account], error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// TransactionRepository declares persistence operations for transactions.
type TransactionRepository interface {
	Create(ctx context.Context, t model.Transaction) (model.Transaction, error)
	GetByID(ctx context.Context, id int64) (model.Transaction, error)
	// ListByAccount returns the newest transactions first.
	ListByAccount(ctx context.Context, accountID int64, f model.TransactionFilter, p Page) (PageResult[model.Transaction], error)
}
