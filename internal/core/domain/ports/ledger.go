package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"banking-service/internal/core/domain/entity"
)

// LedgerStore is the authoritative relational store of accounts,
// transactions and balance history.
type LedgerStore interface {
	// Begin opens an atomic unit of work. Everything done through the
	// returned LedgerTx commits or rolls back together.
	Begin(ctx context.Context) (LedgerTx, error)
	// FindTransaction loads a transaction row, nil if absent.
	FindTransaction(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
}

// LedgerTx is a single unit of work against the ledger. AccountForUpdate
// takes an exclusive row lock held until Commit or Rollback.
type LedgerTx interface {
	AccountForUpdate(ctx context.Context, id uuid.UUID) (*entity.Account, error)
	UpdateAccountBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
	AddBalanceHistory(ctx context.Context, history *entity.BalanceHistory) error
	SetTransactionStatus(ctx context.Context, id uuid.UUID, status entity.TransactionStatus, reason *string) error
	Commit() error
	Rollback() error
}

// TransactionRepository is the stager's write/read surface.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
}

// AccountRepository serves the read-side endpoints; no locking.
type AccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)
	BalanceHistory(ctx context.Context, accountID uuid.UUID, limit int) ([]*entity.BalanceHistory, error)
}

// DeadLetterRepository records messages that could not be applied.
type DeadLetterRepository interface {
	Save(ctx context.Context, message, reason string) error
}
