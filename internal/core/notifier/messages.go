package notifier

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"banking-service/internal/core/domain/entity"
)

type Message struct {
	UserID uuid.UUID
	Text   string
}

// Messages renders one human-readable message per affected account
// owner, purely from the event. The sender of a transfer and the
// holder of a withdrawal account see their side; the receiver of a
// transfer and the holder of a deposit account see theirs.
func Messages(e *entity.NotificationEvent) []Message {
	var messages []Message

	if e.FromUserID != nil {
		var text string
		if e.ToUserID != nil {
			text = fmt.Sprintf("You sent %s to %s. Current balance is %s.",
				e.Amount, deref(e.ToUserName), derefDecimal(e.FromAccountBalance))
		} else {
			text = fmt.Sprintf("Withdrawal of %s from account %s. Current balance is %s.",
				e.Amount, deref(e.FromAccountNumber), derefDecimal(e.FromAccountBalance))
		}
		messages = append(messages, Message{UserID: *e.FromUserID, Text: text})
	}

	if e.ToUserID != nil {
		var text string
		if e.FromUserID != nil {
			text = fmt.Sprintf("You received %s from %s. Current balance is %s.",
				e.Amount, deref(e.FromUserName), derefDecimal(e.ToAccountBalance))
		} else {
			text = fmt.Sprintf("Your account %s received %s. Current balance is %s.",
				deref(e.ToAccountNumber), e.Amount, derefDecimal(e.ToAccountBalance))
		}
		messages = append(messages, Message{UserID: *e.ToUserID, Text: text})
	}

	return messages
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefDecimal(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
