package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/maxviazov/ledger-service/internal/config"
	"github.com/maxviazov/ledger-service/internal/handler"
	"github.com/maxviazov/ledger-service/internal/logger"
	"github.com/maxviazov/ledger-service/internal/middleware"
	"github.com/maxviazov/ledger-service/internal/repository"
	"github.com/maxviazov/ledger-service/internal/repository/postgres"
	"github.com/maxviazov/ledger-service/internal/service"
	"github.com/maxviazov/ledger-service/migrations"
)

func main() {
	cfgPath := os.Getenv("APP_CONFIG")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config loading failed: %v", err)
	}

	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("logger initialization failed: %v", err)
	}

	if err := run(cfg, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("service stopped with error")
	}
	appLogger.Info().Msg("service stopped")
}

func run(cfg *config.Config, appLogger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.New(ctx, cfg, &appLogger)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer db.Close()

	if cfg.Postgres.AutoMigrate {
		if err := db.Migrate(ctx, migrations.FS, appLogger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	pool := db.Pool()
	accounts := postgres.NewAccountRepository(pool)
	limits := service.PageLimits{DefaultSize: cfg.Pagination.DefaultPerPage, MaxSize: cfg.Pagination.MaxPerPage}
	accountSvc := service.NewAccountService(accounts, limits, appLogger)
	txnSvc := service.NewTransactionService(postgres.NewTxManager(pool), accounts, postgres.NewTransactionRepository(pool), limits, appLogger)

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return fmt.Errorf("trusted proxies: %w", err)
	}
	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(appLogger),
		middleware.RateLimit(cfg.HTTP.RateLimit),
	)
	handler.Register(engine, postgres.NewPinger(pool), accountSvc, txnSvc, cfg.Pagination.XMLRoot)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info().Str("addr", srv.Addr).Str("version", cfg.App.Version).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	appLogger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownTimeout)*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
