package postgres

import (
	"context"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/maxviazov/ledger-service/internal/model"
	"github.com/maxviazov/ledger-service/internal/repository"
	"github.com/maxviazov/ledger-service/internal/repository/contract"
	"github.com/maxviazov/ledger-service/migrations"
)

var (
	pool   *pgxpool.Pool
	skippy bool
)

func TestMain(m *testing.M) {
	if os.Getenv("CONTRACT_TESTS") != "1" {
		// allow skipping contract tests unless explicitly enabled
		skippy = true
		os.Exit(m.Run())
	}
	os.Exit(runContract(m))
}

func runContract(m *testing.M) int {
	ctx := context.Background()

	dsn := buildDSNFromEnv()
	if dsn == "" {
		container, err := tcpostgres.Run(ctx,
			"postgres:16-alpine",
			tcpostgres.WithDatabase("ledger_test"),
			tcpostgres.WithUsername("ledger"),
			tcpostgres.WithPassword("ledger"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
		if err != nil {
			fmt.Println("[contract] failed to start postgres container:", err)
			return 1
		}
		defer func() { _ = container.Terminate(ctx) }()

		dsn, err = container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			fmt.Println("[contract] connection string error:", err)
			return 1
		}
	}

	var err error
	pool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		fmt.Println("[contract] pgxpool new error:", err)
		return 1
	}
	defer pool.Close()

	if err := repository.ApplyMigrations(ctx, pool, migrations.FS, zerolog.New(io.Discard)); err != nil {
		fmt.Println("[contract] migrations error:", err)
		return 1
	}

	return m.Run()
}

func skipIfNeeded(t *testing.T) {
	if skippy {
		t.Skip("contract tests skipped; set CONTRACT_TESTS=1 (DATABASE_URL optional, a container is started otherwise)")
	}
}

func buildDSNFromEnv() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}
	user := firstNonEmpty(os.Getenv("APP_POSTGRES_USER"), os.Getenv("POSTGRES_USER"))
	pass := firstNonEmpty(os.Getenv("APP_POSTGRES_PASSWORD"), os.Getenv("POSTGRES_PASSWORD"))
	host := firstNonEmpty(os.Getenv("APP_POSTGRES_HOST"), os.Getenv("POSTGRES_HOST"), "localhost")
	port := firstNonEmpty(os.Getenv("APP_POSTGRES_PORT"), os.Getenv("POSTGRES_PORT"), "5432")
	db := firstNonEmpty(os.Getenv("APP_POSTGRES_DB"), os.Getenv("POSTGRES_DB"))
	ssl := firstNonEmpty(os.Getenv("APP_POSTGRES_SSLMODE"), "disable")
	if user == "" || pass == "" || db == "" {
		return ""
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, pass, host, port, db, ssl)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncateAll(t *testing.T) {
	t.Helper()
	if _, err := pool.Exec(context.Background(), "TRUNCATE TABLE transactions, accounts RESTART IDENTITY CASCADE"); err != nil {
		t.Fatalf("truncate failed: %v", err)
	}
}

// Factories used by contract suites

func makeAccountRepo(t *testing.T) (repository.AccountRepository, func()) {
	skipIfNeeded(t)
	truncateAll(t)
	return NewAccountRepository(pool), func() { truncateAll(t) }
}

func makeTransactionRepo(t *testing.T) (repository.TransactionRepository, func(ctx context.Context, name string) (int64, error), func()) {
	skipIfNeeded(t)
	truncateAll(t)
	accounts := NewAccountRepository(pool)
	mkAccount := func(ctx context.Context, name string) (int64, error) {
		a, err := accounts.Create(ctx, model.Account{Name: name, Currency: "EUR"})
		if err != nil {
			return 0, err
		}
		return a.ID, nil
	}
	return NewTransactionRepository(pool), mkAccount, func() { truncateAll(t) }
}

func makeTx(t *testing.T) (repository.TxManager, repository.AccountRepository, func()) {
	skipIfNeeded(t)
	truncateAll(t)
	return NewTxManager(pool), NewAccountRepository(pool), func() { truncateAll(t) }
}

func makePinger(t *testing.T) (repository.Pinger, func()) {
	skipIfNeeded(t)
	return NewPinger(pool), func() {}
}

func TestAccountRepository_PostgresContract(t *testing.T) {
	contract.RunAccountRepositoryContract(t, makeAccountRepo)
}

func TestTransactionRepository_PostgresContract(t *testing.T) {
	contract.RunTransactionRepositoryContract(t, makeTransactionRepo)
}

func TestTxManager_PostgresContract(t *testing.T) {
	contract.RunTxManagerContract(t, makeTx)
}

func TestPinger_PostgresContract(t *testing.T) {
	contract.RunPingerContract(t, makePinger)
}

func TestNilPoolIsRejected(t *testing.T) {
	_, err := NewAccountRepository(nil).GetByID(context.Background(), 1)
	if err == nil {
		t.Fatalf("expected error for nil pool")
	}
	if err := NewTxManager(nil).WithinTx(context.Background(), func(context.Context) error { return nil }); err == nil {
		t.Fatalf("expected error for nil pool in tx manager")
	}
}
