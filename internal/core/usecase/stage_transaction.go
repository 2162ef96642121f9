package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"banking-service/internal/core/domain/entity"
	"banking-service/internal/core/domain/ports"
)

type (
	StageInput struct {
		FromAccountID *uuid.UUID
		ToAccountID   *uuid.UUID
		Amount        decimal.Decimal
	}

	StageOutput struct {
		ID     uuid.UUID
		Status string
	}

	// StageTransactionUseCase is the synchronous half of the two-phase
	// flow: validate the movement, persist it as PENDING, enqueue it
	// for the executor. The caller gets the staged id back and is never
	// blocked on ledger execution.
	StageTransactionUseCase struct {
		transactions ports.TransactionRepository
		cache        ports.BalanceCache
		publisher    ports.EventPublisher
		routingKey   string
		logger       *slog.Logger
	}
)

func NewStageTransactionUseCase(
	transactions ports.TransactionRepository,
	cache ports.BalanceCache,
	publisher ports.EventPublisher,
	routingKey string,
	logger *slog.Logger,
) *StageTransactionUseCase {
	return &StageTransactionUseCase{
		transactions: transactions,
		cache:        cache,
		publisher:    publisher,
		routingKey:   routingKey,
		logger:       logger,
	}
}

func (uc *StageTransactionUseCase) Execute(ctx context.Context, input StageInput) (*StageOutput, error) {
	tx, err := entity.NewTransaction(input.FromAccountID, input.ToAccountID, input.Amount)
	if err != nil {
		return nil, err
	}

	// Soft pre-check against the cache. A miss is logged and lets the
	// request through; the authoritative check happens at execution
	// time under the row lock.
	if input.FromAccountID != nil {
		balance, cacheErr := uc.cache.GetBalance(ctx, *input.FromAccountID)
		switch {
		case cacheErr != nil:
			uc.logger.WarnContext(ctx, "balance cache read failed",
				slog.String("account_id", input.FromAccountID.String()),
				slog.String("error", cacheErr.Error()),
			)
		case balance == nil:
			uc.logger.InfoContext(ctx, "balance not in cache",
				slog.String("account_id", input.FromAccountID.String()),
			)
		case balance.LessThan(input.Amount):
			uc.logger.WarnContext(ctx, "staging rejected by cached balance",
				slog.String("account_id", input.FromAccountID.String()),
				slog.String("balance", balance.String()),
				slog.String("amount", input.Amount.String()),
			)
			return nil, entity.ErrInsufficientFunds
		}
	}

	if err := uc.transactions.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("persist transaction: %w", err)
	}

	body, err := json.Marshal(tx.Message())
	if err != nil {
		return nil, fmt.Errorf("encode transaction message: %w", err)
	}

	if err := uc.publisher.Publish(ctx, uc.routingKey, body); err != nil {
		// The PENDING row stays behind for reconciliation; nothing has
		// touched a balance yet.
		uc.logger.ErrorContext(ctx, "enqueue staged transaction failed",
			slog.String("transaction_id", tx.ID.String()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("enqueue transaction: %w", err)
	}

	uc.logger.InfoContext(ctx, "transaction staged",
		slog.String("transaction_id", tx.ID.String()),
		slog.String("amount", tx.Amount.String()),
	)

	return &StageOutput{ID: tx.ID, Status: string(tx.Status)}, nil
}
