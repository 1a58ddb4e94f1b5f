package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/ledger-service/internal/model"
	"github.com/maxviazov/ledger-service/internal/repository"
)

type transactionRepository struct{ pool *pgxpool.Pool }

func NewTransactionRepository(pool *pgxpool.Pool) repository.TransactionRepository {
	return &transactionRepository{pool: pool}
}

const transactionColumns = `id, account_id, reference, amount_minor, currency, status, description, created_at, updated_at`

func scanTransaction(row pgx.Row, out *model.Transaction, extra ...any) error {
	dest := append([]any{
		&out.ID, &out.AccountID, &out.Reference, &out.AmountMinor, &out.Currency,
		&out.Status, &out.Description, &out.CreatedAt, &out.UpdatedAt,
	}, extra...)
	return row.Scan(dest...)
}

func (r *transactionRepository) Create(ctx context.Context, t model.Transaction) (model.Transaction, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Transaction{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO transactions (account_id, reference, amount_minor, currency, status, description)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+transactionColumns,
		t.AccountID, t.Reference, t.AmountMinor, t.Currency, t.Status, t.Description,
	)
	var out model.Transaction
	if err := scanTransaction(row, &out); err != nil {
		return model.Transaction{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id int64) (model.Transaction, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Transaction{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)
	var out model.Transaction
	if err := scanTransaction(row, &out); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Transaction{}, repository.ErrNotFound
		}
		return model.Transaction{}, repository.MapPgError(err)
	}
	return out, nil
}

// ListByAccount pages through an account's transactions, newest first.
// A NULL status argument disables the status filter.
func (r *transactionRepository) ListByAccount(ctx context.Context, accountID int64, f model.TransactionFilter, p repository.Page) (repository.PageResult[model.Transaction], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Transaction]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	var status *string
	if f.Status != "" {
		status = &f.Status
	}

	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT `+transactionColumns+`, COUNT(*) OVER() AS total
		 FROM transactions
		 WHERE account_id = $1 AND ($2::TEXT IS NULL OR status = $2)
		 ORDER BY created_at DESC, id DESC
		 LIMIT $3 OFFSET $4`,
		accountID, status, limit, offset,
	)
	if err != nil {
		return repository.PageResult[model.Transaction]{}, repository.MapPgError(err)
	}
	defer rows.Close()

	res := repository.PageResult[model.Transaction]{Items: make([]model.Transaction, 0, limit)}
	for rows.Next() {
		var t model.Transaction
		if err := scanTransaction(rows, &t, &res.Total); err != nil {
			return repository.PageResult[model.Transaction]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, t)
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.Transaction]{}, repository.MapPgError(err)
	}

	if len(res.Items) == 0 && offset > 0 {
		total, err := countRows(ctx, exec,
			`SELECT COUNT(*) FROM transactions WHERE account_id = $1 AND ($2::TEXT IS NULL OR status = $2)`,
			accountID, status,
		)
		if err != nil {
			return repository.PageResult[model.Transaction]{}, err
		}
		res.Total = total
	}
	return res, nil
}

var _ repository.TransactionRepository = (*transactionRepository)(nil)
