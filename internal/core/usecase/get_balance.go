package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"banking-service/internal/core/domain/ports"
)

var ErrAccountNotFound = errors.New("account not found")

type (
	BalanceOutput struct {
		AccountID uuid.UUID
		Balance   decimal.Decimal
		Cached    bool
	}

	// GetBalanceUseCase reads through the cache: hit returns
	// immediately, miss falls back to the ledger and repopulates the
	// cache with a fresh TTL.
	GetBalanceUseCase struct {
		accounts ports.AccountRepository
		cache    ports.BalanceCache
		logger   *slog.Logger
	}
)

func NewGetBalanceUseCase(accounts ports.AccountRepository, cache ports.BalanceCache, logger *slog.Logger) *GetBalanceUseCase {
	return &GetBalanceUseCase{accounts: accounts, cache: cache, logger: logger}
}

func (uc *GetBalanceUseCase) Execute(ctx context.Context, accountID uuid.UUID) (*BalanceOutput, error) {
	cached, err := uc.cache.GetBalance(ctx, accountID)
	if err != nil {
		uc.logger.WarnContext(ctx, "balance cache read failed",
			slog.String("account_id", accountID.String()),
			slog.String("error", err.Error()),
		)
	}
	if cached != nil {
		return &BalanceOutput{AccountID: accountID, Balance: *cached, Cached: true}, nil
	}

	account, err := uc.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	if err := uc.cache.SetBalance(ctx, accountID, account.Balance); err != nil {
		uc.logger.WarnContext(ctx, "balance cache write failed",
			slog.String("account_id", accountID.String()),
			slog.String("error", err.Error()),
		)
	}

	return &BalanceOutput{AccountID: accountID, Balance: account.Balance}, nil
}
