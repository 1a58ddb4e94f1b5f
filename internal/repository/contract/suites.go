// Package contract holds storage-agnostic test suites that every repository
// implementation must pass. Backends wire them up with their own factories.
package contract

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/maxviazov/ledger-service/internal/model"
	"github.com/maxviazov/ledger-service/internal/repository"
)

type AccountFactory func(t *testing.T) (repository.AccountRepository, func())

type TransactionFactory func(t *testing.T) (repo repository.TransactionRepository, createAccount func(ctx context.Context, name string) (int64, error), cleanup func())

type TxFactory func(t *testing.T) (tx repository.TxManager, accounts repository.AccountRepository, cleanup func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

func RunAccountRepositoryContract(t *testing.T, makeRepo AccountFactory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, model.Account{Name: "Operating", Currency: "EUR"})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.ID != created.ID || got.Name != "Operating" || got.Currency != "EUR" {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), 999999)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list_pagination_total", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		for i := 0; i < 7; i++ {
			if _, err := repo.Create(ctx, model.Account{Name: fmt.Sprintf("acc-%d", i), Currency: "USD"}); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		res, err := repo.List(ctx, repository.PageFor(1, 3))
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 3 || res.Total != 7 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
		last, err := repo.List(ctx, repository.PageFor(3, 3))
		if err != nil {
			t.Fatalf("list last: %v", err)
		}
		if len(last.Items) != 1 || last.Total != 7 {
			t.Fatalf("unexpected last page: len=%d total=%d", len(last.Items), last.Total)
		}
	})

	t.Run("list_past_end_keeps_total", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		for i := 0; i < 2; i++ {
			if _, err := repo.Create(ctx, model.Account{Name: fmt.Sprintf("acc-%d", i), Currency: "USD"}); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		res, err := repo.List(ctx, repository.PageFor(5, 10))
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 0 || res.Total != 2 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
	})

	t.Run("exists", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		a, err := repo.Create(ctx, model.Account{Name: "Exists", Currency: "GBP"})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		if ok, err := repo.Exists(ctx, a.ID); err != nil || !ok {
			t.Fatalf("expected account to exist: ok=%v err=%v", ok, err)
		}
		if ok, err := repo.Exists(ctx, a.ID+1000); err != nil || ok {
			t.Fatalf("expected account to be absent: ok=%v err=%v", ok, err)
		}
	})

	t.Run("create_duplicate_name_conflict", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if _, err := repo.Create(ctx, model.Account{Name: "Dup", Currency: "EUR"}); err != nil {
			t.Fatalf("seed: %v", err)
		}
		_, err := repo.Create(ctx, model.Account{Name: "Dup", Currency: "EUR"})
		if !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})
}

func RunTransactionRepositoryContract(t *testing.T, makeRepo TransactionFactory) {
	t.Helper()

	newTxn := func(accountID int64, amount int64, status string) model.Transaction {
		return model.Transaction{
			AccountID:   accountID,
			Reference:   uuid.New(),
			AmountMinor: amount,
			Currency:    "EUR",
			Status:      status,
		}
	}

	t.Run("create_and_get", func(t *testing.T) {
		repo, mkAccount, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		accID, err := mkAccount(ctx, "Main")
		if err != nil {
			t.Fatalf("seed account: %v", err)
		}
		in := newTxn(accID, -1250, model.StatusSettled)
		in.Description = "card fee"
		created, err := repo.Create(ctx, in)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Reference != in.Reference || got.AmountMinor != -1250 || got.Description != "card fee" {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), 42424242)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list_by_account_filter_and_order", func(t *testing.T) {
		repo, mkAccount, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		accID, err := mkAccount(ctx, "Filtered")
		if err != nil {
			t.Fatalf("seed account: %v", err)
		}
		otherID, err := mkAccount(ctx, "Other")
		if err != nil {
			t.Fatalf("seed other account: %v", err)
		}
		for i := 0; i < 5; i++ {
			status := model.StatusSettled
			if i%2 == 1 {
				status = model.StatusPending
			}
			if _, err := repo.Create(ctx, newTxn(accID, int64(100+i), status)); err != nil {
				t.Fatalf("seed txn %d: %v", i, err)
			}
		}
		if _, err := repo.Create(ctx, newTxn(otherID, 1, model.StatusSettled)); err != nil {
			t.Fatalf("seed other txn: %v", err)
		}

		all, err := repo.ListByAccount(ctx, accID, model.TransactionFilter{}, repository.PageFor(1, 2))
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(all.Items) != 2 || all.Total != 5 {
			t.Fatalf("unexpected page: len=%d total=%d", len(all.Items), all.Total)
		}
		if all.Items[0].ID < all.Items[1].ID {
			t.Fatalf("expected newest first, got ids %d,%d", all.Items[0].ID, all.Items[1].ID)
		}

		settled, err := repo.ListByAccount(ctx, accID, model.TransactionFilter{Status: model.StatusSettled}, repository.PageFor(1, 10))
		if err != nil {
			t.Fatalf("list settled: %v", err)
		}
		if len(settled.Items) != 3 || settled.Total != 3 {
			t.Fatalf("unexpected settled page: len=%d total=%d", len(settled.Items), settled.Total)
		}

		past, err := repo.ListByAccount(ctx, accID, model.TransactionFilter{Status: model.StatusPending}, repository.PageFor(4, 10))
		if err != nil {
			t.Fatalf("list past end: %v", err)
		}
		if len(past.Items) != 0 || past.Total != 2 {
			t.Fatalf("unexpected past-end page: len=%d total=%d", len(past.Items), past.Total)
		}
	})

	t.Run("create_fk_violation_conflict", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.Create(context.Background(), newTxn(9999999, 1, model.StatusPending))
		if !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("expected ErrConflict on FK violation, got %v", err)
		}
	})

	t.Run("duplicate_reference_already_exists", func(t *testing.T) {
		repo, mkAccount, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		accID, err := mkAccount(ctx, "Dup ref")
		if err != nil {
			t.Fatalf("seed account: %v", err)
		}
		in := newTxn(accID, 5, model.StatusPending)
		if _, err := repo.Create(ctx, in); err != nil {
			t.Fatalf("seed: %v", err)
		}
		if _, err := repo.Create(ctx, in); !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})
}

func RunTxManagerContract(t *testing.T, makeTx TxFactory) {
	t.Helper()

	t.Run("commit_on_nil_error", func(t *testing.T) {
		tx, accounts, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID int64
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := accounts.Create(ctx, model.Account{Name: "TxCommit", Currency: "EUR"})
			if err != nil {
				return err
			}
			createdID = out.ID
			return nil
		})
		if err != nil {
			t.Fatalf("WithinTx: %v", err)
		}
		if _, err := accounts.GetByID(ctx, createdID); err != nil {
			t.Fatalf("expected committed row visible, got err=%v", err)
		}
	})

	t.Run("rollback_on_error", func(t *testing.T) {
		tx, accounts, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID int64
		errMarker := errors.New("boom")
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := accounts.Create(ctx, model.Account{Name: "TxRollback", Currency: "EUR"})
			if err != nil {
				return err
			}
			createdID = out.ID
			return errMarker
		})
		if !errors.Is(err, errMarker) {
			t.Fatalf("expected marker error, got %v", err)
		}
		if _, err := accounts.GetByID(ctx, createdID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after rollback, got %v", err)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("expected ping ok, got %v", err)
		}
	})
}
