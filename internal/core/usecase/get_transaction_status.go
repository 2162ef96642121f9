package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"banking-service/internal/core/domain/ports"
)

var ErrTransactionNotFound = errors.New("transaction not found")

type GetTransactionStatusOutput struct {
	ID            uuid.UUID
	Status        string
	FailureReason *string
}

type GetTransactionStatusUseCase struct {
	transactions ports.TransactionRepository
}

func NewGetTransactionStatusUseCase(transactions ports.TransactionRepository) *GetTransactionStatusUseCase {
	return &GetTransactionStatusUseCase{transactions: transactions}
}

func (uc *GetTransactionStatusUseCase) Execute(ctx context.Context, id uuid.UUID) (*GetTransactionStatusOutput, error) {
	tx, err := uc.transactions.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	if tx == nil {
		return nil, ErrTransactionNotFound
	}

	return &GetTransactionStatusOutput{
		ID:            tx.ID,
		Status:        string(tx.Status),
		FailureReason: tx.FailureReason,
	}, nil
}
