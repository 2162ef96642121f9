package ports

import (
	"context"

	"github.com/google/uuid"
)

// NotificationSink delivers a human-readable message to a user.
// Delivery is best-effort and outside the consistency boundary.
type NotificationSink interface {
	Send(ctx context.Context, userID uuid.UUID, message string) error
}
