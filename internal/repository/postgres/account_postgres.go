package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/ledger-service/internal/model"
	"github.com/maxviazov/ledger-service/internal/repository"
)

type accountRepository struct{ pool *pgxpool.Pool }

func NewAccountRepository(pool *pgxpool.Pool) repository.AccountRepository {
	return &accountRepository{pool: pool}
}

const accountColumns = `id, name, currency, created_at, updated_at`

func scanAccount(row pgx.Row, out *model.Account, extra ...any) error {
	dest := append([]any{&out.ID, &out.Name, &out.Currency, &out.CreatedAt, &out.UpdatedAt}, extra...)
	return row.Scan(dest...)
}

func (r *accountRepository) Create(ctx context.Context, a model.Account) (model.Account, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Account{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO accounts (name, currency) VALUES ($1, $2)
		 RETURNING `+accountColumns,
		a.Name, a.Currency,
	)
	var out model.Account
	if err := scanAccount(row, &out); err != nil {
		return model.Account{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (model.Account, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Account{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	var out model.Account
	if err := scanAccount(row, &out); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, repository.ErrNotFound
		}
		return model.Account{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *accountRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.Account], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Account]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT `+accountColumns+`, COUNT(*) OVER() AS total
		 FROM accounts
		 ORDER BY id
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return repository.PageResult[model.Account]{}, repository.MapPgError(err)
	}
	defer rows.Close()

	res := repository.PageResult[model.Account]{Items: make([]model.Account, 0, limit)}
	for rows.Next() {
		var a model.Account
		if err := scanAccount(rows, &a, &res.Total); err != nil {
			return repository.PageResult[model.Account]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, a)
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.Account]{}, repository.MapPgError(err)
	}

	if len(res.Items) == 0 && offset > 0 {
		total, err := countRows(ctx, exec, `SELECT COUNT(*) FROM accounts`)
		if err != nil {
			return repository.PageResult[model.Account]{}, err
		}
		res.Total = total
	}
	return res, nil
}

// Exists performs a lightweight check to see if an account with the given ID exists.
func (r *accountRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if err := ensurePool(r.pool); err != nil {
		return false, err
	}
	var exists bool
	exec := getQ(ctx, r.pool)
	err := exec.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, repository.MapPgError(err)
	}
	return exists, nil
}

var _ repository.AccountRepository = (*accountRepository)(nil)
