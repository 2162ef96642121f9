package entity

import (
	"time"

	"github.com/google/uuid"
)

// FailedTransaction is a dead-letter row: the raw queue message that
// could not (or must not) be applied, plus why. Append-only, kept for
// operator inspection and replay; the executor never reads it back.
type FailedTransaction struct {
	ID        uuid.UUID
	Message   string
	Reason    string
	CreatedAt time.Time
}

func NewFailedTransaction(message, reason string) *FailedTransaction {
	return &FailedTransaction{
		ID:        uuid.New(),
		Message:   message,
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	}
}
