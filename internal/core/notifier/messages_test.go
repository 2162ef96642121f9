package notifier_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"banking-service/internal/core/domain/entity"
	"banking-service/internal/core/notifier"
)

func event(fromUser, toUser *uuid.UUID) *entity.NotificationEvent {
	e := &entity.NotificationEvent{Amount: decimal.NewFromInt(50)}
	if fromUser != nil {
		e.FromUserID = fromUser
		number, name := "ACC-001", "Alice"
		balance := decimal.NewFromInt(150)
		e.FromAccountNumber = &number
		e.FromUserName = &name
		e.FromAccountBalance = &balance
	}
	if toUser != nil {
		e.ToUserID = toUser
		number, name := "ACC-002", "Bob"
		balance := decimal.NewFromInt(200)
		e.ToAccountNumber = &number
		e.ToUserName = &name
		e.ToAccountBalance = &balance
	}
	return e
}

func TestMessages_Transfer(t *testing.T) {
	fromUser, toUser := uuid.New(), uuid.New()
	messages := notifier.Messages(event(&fromUser, &toUser))

	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].UserID != fromUser {
		t.Fatalf("expected first message for the sender, got %s", messages[0].UserID)
	}
	if want := "You sent 50 to Bob. Current balance is 150."; messages[0].Text != want {
		t.Fatalf("unexpected sender text %q", messages[0].Text)
	}
	if messages[1].UserID != toUser {
		t.Fatalf("expected second message for the receiver, got %s", messages[1].UserID)
	}
	if want := "You received 50 from Alice. Current balance is 200."; messages[1].Text != want {
		t.Fatalf("unexpected receiver text %q", messages[1].Text)
	}
}

func TestMessages_Withdrawal(t *testing.T) {
	fromUser := uuid.New()
	messages := notifier.Messages(event(&fromUser, nil))

	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}
	if want := "Withdrawal of 50 from account ACC-001. Current balance is 150."; messages[0].Text != want {
		t.Fatalf("unexpected text %q", messages[0].Text)
	}
}

func TestMessages_Deposit(t *testing.T) {
	toUser := uuid.New()
	messages := notifier.Messages(event(nil, &toUser))

	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}
	if want := "Your account ACC-002 received 50. Current balance is 200."; messages[0].Text != want {
		t.Fatalf("unexpected text %q", messages[0].Text)
	}
}

type sinkStub struct {
	sendFn func(ctx context.Context, userID uuid.UUID, message string) error
}

func (s *sinkStub) Send(ctx context.Context, userID uuid.UUID, message string) error {
	if s.sendFn != nil {
		return s.sendFn(ctx, userID, message)
	}
	return nil
}

func TestServiceHandle_DeliversEachMessage(t *testing.T) {
	fromUser, toUser := uuid.New(), uuid.New()
	body, err := json.Marshal(event(&fromUser, &toUser))
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}

	var delivered []uuid.UUID
	sink := &sinkStub{
		sendFn: func(_ context.Context, userID uuid.UUID, _ string) error {
			delivered = append(delivered, userID)
			return nil
		},
	}

	svc := notifier.NewService(sink, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.Handle(context.Background(), body)

	if len(delivered) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(delivered))
	}
}

func TestServiceHandle_SendFailureDoesNotStopOthers(t *testing.T) {
	fromUser, toUser := uuid.New(), uuid.New()
	body, err := json.Marshal(event(&fromUser, &toUser))
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}

	calls := 0
	sink := &sinkStub{
		sendFn: func(context.Context, uuid.UUID, string) error {
			calls++
			if calls == 1 {
				return errors.New("subscriber gone")
			}
			return nil
		},
	}

	svc := notifier.NewService(sink, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.Handle(context.Background(), body)

	if calls != 2 {
		t.Fatalf("expected both sends attempted, got %d", calls)
	}
}
