package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"banking-service/internal/core/domain/entity"
	"banking-service/internal/core/domain/ports"
)

const defaultHistoryLimit = 50

type GetBalanceHistoryUseCase struct {
	accounts ports.AccountRepository
}

func NewGetBalanceHistoryUseCase(accounts ports.AccountRepository) *GetBalanceHistoryUseCase {
	return &GetBalanceHistoryUseCase{accounts: accounts}
}

func (uc *GetBalanceHistoryUseCase) Execute(ctx context.Context, accountID uuid.UUID, limit int) ([]*entity.BalanceHistory, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	history, err := uc.accounts.BalanceHistory(ctx, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("balance history: %w", err)
	}

	return history, nil
}
