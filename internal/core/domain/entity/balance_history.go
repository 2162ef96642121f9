package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceHistory is an append-only snapshot of an account's balance
// right after a completed transaction touched it. Written inside the
// same commit as the balance mutation.
type BalanceHistory struct {
	ID            uuid.UUID
	AccountID     uuid.UUID
	TransactionID uuid.UUID
	NewBalance    decimal.Decimal
	CreatedAt     time.Time
}

func NewBalanceHistory(accountID, transactionID uuid.UUID, newBalance decimal.Decimal) *BalanceHistory {
	return &BalanceHistory{
		ID:            uuid.New(),
		AccountID:     accountID,
		TransactionID: transactionID,
		NewBalance:    newBalance,
		CreatedAt:     time.Now().UTC(),
	}
}
