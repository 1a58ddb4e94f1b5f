package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/ledger-service/internal/model"
	"github.com/maxviazov/ledger-service/internal/repository"
)

// accountService holds account use-case logic: validation + orchestration, no transport / SQL details.
type accountService struct {
	repo   repository.AccountRepository
	limits PageLimits
	log    zerolog.Logger
}

func NewAccountService(repo repository.AccountRepository, limits PageLimits, logger zerolog.Logger) AccountService {
	l := logger.With().Str("module", "service").Str("component", "account").Logger()
	return &accountService{repo: repo, limits: limits, log: l}
}

func (s *accountService) CreateAccount(ctx context.Context, name, currency string) (model.Account, error) {
	start := time.Now()
	name = strings.TrimSpace(name)
	currency = normalizeCurrency(currency)

	var ferrs []FieldError
	if name == "" {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "must not be empty"})
	} else if ln := len([]rune(name)); ln < 2 || ln > 100 {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "length must be between 2 and 100"})
	}
	if !isValidCurrency(currency) {
		ferrs = append(ferrs, FieldError{Field: "currency", Message: "must be a three-letter ISO 4217 code"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		s.log.Debug().Str("name", name).Interface("field_errors", ferrs).Msg("account validation failed")
		return model.Account{}, err
	}

	out, err := s.repo.Create(ctx, model.Account{Name: name, Currency: currency})
	if err != nil {
		// Repository surfaces domain-level errors already, do not wrap.
		s.log.Error().Err(err).Str("name", name).Msg("create account failed")
		return model.Account{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("account_id", out.ID).Msg("account created")
	return out, nil
}

func (s *accountService) GetAccount(ctx context.Context, id int64) (model.Account, error) {
	if id <= 0 {
		return model.Account{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return s.repo.GetByID(ctx, id)
}

func (s *accountService) ListAccounts(ctx context.Context, req PageRequest) (repository.PageResult[model.Account], PageRequest, error) {
	req, err := s.limits.normalize(req)
	if err != nil {
		return repository.PageResult[model.Account]{}, PageRequest{}, err
	}
	res, err := s.repo.List(ctx, repository.PageFor(req.Number, req.Size))
	if err != nil {
		s.log.Error().Err(err).Int("page", req.Number).Int("per_page", req.Size).Msg("list accounts failed")
		return repository.PageResult[model.Account]{}, PageRequest{}, err
	}
	return res, req, nil
}
