package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NotificationEvent describes a settled movement to the owners of the
// affected accounts. It is built purely from the account views already
// loaded during execution and carried on the notifications queue.
type NotificationEvent struct {
	FromUserID         *uuid.UUID       `json:"fromUserId"`
	ToUserID           *uuid.UUID       `json:"toUserId"`
	Amount             decimal.Decimal  `json:"amount"`
	FromAccountNumber  *string          `json:"fromAccountNumber"`
	ToAccountNumber    *string          `json:"toAccountNumber"`
	FromUserName       *string          `json:"fromUserName"`
	ToUserName         *string          `json:"toUserName"`
	FromAccountBalance *decimal.Decimal `json:"fromAccountBalance"`
	ToAccountBalance   *decimal.Decimal `json:"toAccountBalance"`
	Timestamp          time.Time        `json:"timestamp"`
}

// NewNotificationEvent captures the post-transaction state of the two
// (possibly nil) involved accounts.
func NewNotificationEvent(from, to *Account, amount decimal.Decimal) *NotificationEvent {
	e := &NotificationEvent{
		Amount:    amount,
		Timestamp: time.Now().UTC(),
	}

	if from != nil {
		e.FromUserID = &from.UserID
		e.FromAccountNumber = &from.AccountNumber
		e.FromUserName = &from.OwnerName
		balance := from.Balance
		e.FromAccountBalance = &balance
	}
	if to != nil {
		e.ToUserID = &to.UserID
		e.ToAccountNumber = &to.AccountNumber
		e.ToUserName = &to.OwnerName
		balance := to.Balance
		e.ToAccountBalance = &balance
	}

	return e
}
