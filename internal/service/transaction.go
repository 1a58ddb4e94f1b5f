package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/maxviazov/ledger-service/internal/model"
	"github.com/maxviazov/ledger-service/internal/repository"
)

type transactionService struct {
	txm      repository.TxManager
	accounts repository.AccountRepository
	repo     repository.TransactionRepository
	limits   PageLimits
	newRef   func() uuid.UUID
	log      zerolog.Logger
}

func NewTransactionService(txm repository.TxManager, accounts repository.AccountRepository, repo repository.TransactionRepository, limits PageLimits, logger zerolog.Logger) TransactionService {
	l := logger.With().Str("module", "service").Str("component", "transaction").Logger()
	return &transactionService{txm: txm, accounts: accounts, repo: repo, limits: limits, newRef: uuid.New, log: l}
}

// RecordTransaction validates the input, then checks the account and inserts inside one
// transaction so the currency check and the insert see the same account row.
func (s *transactionService) RecordTransaction(ctx context.Context, in RecordTransactionInput) (model.Transaction, error) {
	start := time.Now()
	in.Currency = normalizeCurrency(in.Currency)
	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
	in.Description = strings.TrimSpace(in.Description)
	if in.Status == "" {
		in.Status = model.StatusPending
	}

	var ferrs []FieldError
	if in.AccountID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "account_id", Message: "must be > 0"})
	}
	if in.AmountMinor == 0 {
		ferrs = append(ferrs, FieldError{Field: "amount_minor", Message: "must not be zero"})
	}
	if !isValidCurrency(in.Currency) {
		ferrs = append(ferrs, FieldError{Field: "currency", Message: "must be a three-letter ISO 4217 code"})
	}
	if !isValidStatus(in.Status) {
		ferrs = append(ferrs, FieldError{Field: "status", Message: "must be one of pending, settled, failed"})
	}
	if len([]rune(in.Description)) > maxDescription {
		ferrs = append(ferrs, FieldError{Field: "description", Message: "must be at most 255 characters"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		s.log.Debug().Int64("account_id", in.AccountID).Interface("field_errors", ferrs).Msg("transaction validation failed")
		return model.Transaction{}, err
	}

	var out model.Transaction
	err := s.txm.WithinTx(ctx, func(ctx context.Context) error {
		acc, err := s.accounts.GetByID(ctx, in.AccountID)
		if err != nil {
			return err
		}
		if acc.Currency != in.Currency {
			return NewInvalidInputError([]FieldError{{Field: "currency", Message: "must match account currency " + acc.Currency}})
		}
		out, err = s.repo.Create(ctx, model.Transaction{
			AccountID:   in.AccountID,
			Reference:   s.newRef(),
			AmountMinor: in.AmountMinor,
			Currency:    in.Currency,
			Status:      in.Status,
			Description: in.Description,
		})
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrInvalidInput) && !errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Err(err).Int64("account_id", in.AccountID).Msg("record transaction failed")
		}
		return model.Transaction{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("transaction_id", out.ID).Str("reference", out.Reference.String()).Msg("transaction recorded")
	return out, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, id int64) (model.Transaction, error) {
	if id <= 0 {
		return model.Transaction{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return s.repo.GetByID(ctx, id)
}

// ListTransactions 404s for unknown accounts so an empty page always means "no transactions".
func (s *transactionService) ListTransactions(ctx context.Context, accountID int64, status string, req PageRequest) (repository.PageResult[model.Transaction], PageRequest, error) {
	var empty repository.PageResult[model.Transaction]
	status = strings.ToLower(strings.TrimSpace(status))

	var ferrs []FieldError
	if accountID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "account_id", Message: "must be > 0"})
	}
	if status != "" && !isValidStatus(status) {
		ferrs = append(ferrs, FieldError{Field: "status", Message: "must be one of pending, settled, failed"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return empty, PageRequest{}, err
	}
	req, err := s.limits.normalize(req)
	if err != nil {
		return empty, PageRequest{}, err
	}

	exists, err := s.accounts.Exists(ctx, accountID)
	if err != nil {
		s.log.Error().Err(err).Int64("account_id", accountID).Msg("account lookup failed")
		return empty, PageRequest{}, err
	}
	if !exists {
		return empty, PageRequest{}, repository.ErrNotFound
	}

	res, err := s.repo.ListByAccount(ctx, accountID, model.TransactionFilter{Status: status}, repository.PageFor(req.Number, req.Size))
	if err != nil {
		s.log.Error().Err(err).Int64("account_id", accountID).Int("page", req.Number).Msg("list transactions failed")
		return empty, PageRequest{}, err
	}
	return res, req, nil
}
