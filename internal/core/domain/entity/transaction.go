package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusFailed    TransactionStatus = "FAILED"
)

var (
	ErrNoAccounts           = errors.New("transaction requires at least one account")
	ErrSameAccount          = errors.New("from and to account cannot be the same")
	ErrAmountMustBePositive = errors.New("amount must be greater than zero")
	ErrInsufficientFunds    = errors.New("insufficient funds")
)

// Transaction is a single money movement. A deposit has only a
// destination account, a withdrawal only a source, a transfer both.
// Status leaves PENDING exactly once; COMPLETED and FAILED are terminal.
type Transaction struct {
	ID            uuid.UUID
	FromAccountID *uuid.UUID
	ToAccountID   *uuid.UUID
	Amount        decimal.Decimal
	Status        TransactionStatus
	FailureReason *string
	CreatedAt     time.Time
}

func NewTransaction(fromAccountID, toAccountID *uuid.UUID, amount decimal.Decimal) (*Transaction, error) {
	if fromAccountID == nil && toAccountID == nil {
		return nil, ErrNoAccounts
	}
	if fromAccountID != nil && toAccountID != nil && *fromAccountID == *toAccountID {
		return nil, ErrSameAccount
	}
	if !amount.IsPositive() {
		return nil, ErrAmountMustBePositive
	}

	return &Transaction{
		ID:            uuid.New(),
		FromAccountID: fromAccountID,
		ToAccountID:   toAccountID,
		Amount:        amount,
		Status:        StatusPending,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// TransactionMessage is the wire format carried on the transactions
// queue between the stager and the executor.
type TransactionMessage struct {
	ID            uuid.UUID       `json:"id"`
	FromAccountID *uuid.UUID      `json:"fromAccountId"`
	ToAccountID   *uuid.UUID      `json:"toAccountId"`
	Amount        decimal.Decimal `json:"amount"`
	CreatedAt     time.Time       `json:"createdAt"`
	Status        string          `json:"status"`
}

func (t *Transaction) Message() TransactionMessage {
	return TransactionMessage{
		ID:            t.ID,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		Amount:        t.Amount,
		CreatedAt:     t.CreatedAt,
		Status:        string(t.Status),
	}
}
