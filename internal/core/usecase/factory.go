package usecase

import (
	"log/slog"

	"banking-service/internal/core/domain/ports"
)

type Factory struct {
	Stage   *StageTransactionUseCase
	Status  *GetTransactionStatusUseCase
	Balance *GetBalanceUseCase
	History *GetBalanceHistoryUseCase
}

func NewFactory(
	transactions ports.TransactionRepository,
	accounts ports.AccountRepository,
	cache ports.BalanceCache,
	publisher ports.EventPublisher,
	transactionsRoutingKey string,
	logger *slog.Logger,
) *Factory {
	return &Factory{
		Stage:   NewStageTransactionUseCase(transactions, cache, publisher, transactionsRoutingKey, logger),
		Status:  NewGetTransactionStatusUseCase(transactions),
		Balance: NewGetBalanceUseCase(accounts, cache, logger),
		History: NewGetBalanceHistoryUseCase(accounts),
	}
}
