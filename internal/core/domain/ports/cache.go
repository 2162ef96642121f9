package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceCache is a best-effort read accelerator for account balances.
// It is never authoritative: a nil result means "not cached", and a
// cached value may lag the ledger by up to its TTL.
type BalanceCache interface {
	GetBalance(ctx context.Context, accountID uuid.UUID) (*decimal.Decimal, error)
	SetBalance(ctx context.Context, accountID uuid.UUID, balance decimal.Decimal) error
}
