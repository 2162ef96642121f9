package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is a ledger account row. Balance is mutated only by the
// executor, under a row lock, and never goes negative on commit.
// OwnerName is denormalized from the owning user when the row is
// loaded, so notifications need no extra round-trip.
type Account struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	AccountNumber string
	OwnerName     string
	Balance       decimal.Decimal
	CreatedAt     time.Time
}
