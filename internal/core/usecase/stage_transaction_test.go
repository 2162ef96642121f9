package usecase_test

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
	"banking-service/internal/core/usecase"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type transactionRepositoryStub struct {
	createFn   func(ctx context.Context, tx *entity.Transaction) error
	findByIDFn func(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
}

func (s *transactionRepositoryStub) Create(ctx context.Context, tx *entity.Transaction) error {
	if s.createFn != nil {
		return s.createFn(ctx, tx)
	}
	return nil
}

func (s *transactionRepositoryStub) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	if s.findByIDFn != nil {
		return s.findByIDFn(ctx, id)
	}
	return nil, nil
}

type balanceCacheStub struct {
	getFn func(ctx context.Context, id uuid.UUID) (*decimal.Decimal, error)
	setFn func(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
}

func (s *balanceCacheStub) GetBalance(ctx context.Context, id uuid.UUID) (*decimal.Decimal, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return nil, nil
}

func (s *balanceCacheStub) SetBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	if s.setFn != nil {
		return s.setFn(ctx, id, balance)
	}
	return nil
}

type publisherStub struct {
	publishFn func(ctx context.Context, routingKey string, body []byte) error
}

func (s *publisherStub) Publish(ctx context.Context, routingKey string, body []byte) error {
	if s.publishFn != nil {
		return s.publishFn(ctx, routingKey, body)
	}
	return nil
}

func TestStageTransaction_PersistsThenPublishes(t *testing.T) {
	var created *entity.Transaction
	var publishedKey string
	var publishedBody []byte

	repo := &transactionRepositoryStub{
		createFn: func(_ context.Context, tx *entity.Transaction) error {
			created = tx
			return nil
		},
	}
	publisher := &publisherStub{
		publishFn: func(_ context.Context, routingKey string, body []byte) error {
			if created == nil {
				t.Fatal("published before the transaction was persisted")
			}
			publishedKey = routingKey
			publishedBody = body
			return nil
		},
	}

	uc := usecase.NewStageTransactionUseCase(repo, &balanceCacheStub{}, publisher, "transactions", testLogger())

	to := uuid.New()
	out, err := uc.Execute(context.Background(), usecase.StageInput{
		ToAccountID: &to,
		Amount:      decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Status != string(entity.StatusPending) {
		t.Fatalf("expected PENDING, got %s", out.Status)
	}
	if out.ID != created.ID {
		t.Fatalf("expected output id %s, got %s", created.ID, out.ID)
	}
	if publishedKey != "transactions" {
		t.Fatalf("unexpected routing key %q", publishedKey)
	}

	var msg entity.TransactionMessage
	if err := json.Unmarshal(publishedBody, &msg); err != nil {
		t.Fatalf("unmarshal published message: %v", err)
	}
	if msg.ID != created.ID {
		t.Fatalf("expected message id %s, got %s", created.ID, msg.ID)
	}
}

func TestStageTransaction_ValidationSkipsRepository(t *testing.T) {
	repo := &transactionRepositoryStub{
		createFn: func(context.Context, *entity.Transaction) error {
			t.Fatal("repository must not be touched on validation failure")
			return nil
		},
	}

	uc := usecase.NewStageTransactionUseCase(repo, &balanceCacheStub{}, &publisherStub{}, "transactions", testLogger())

	_, err := uc.Execute(context.Background(), usecase.StageInput{Amount: decimal.NewFromInt(10)})
	if !errors.Is(err, entity.ErrNoAccounts) {
		t.Fatalf("expected ErrNoAccounts, got %v", err)
	}
}

func TestStageTransaction_CachedBalanceRejects(t *testing.T) {
	from := uuid.New()
	low := decimal.NewFromInt(5)

	cache := &balanceCacheStub{
		getFn: func(context.Context, uuid.UUID) (*decimal.Decimal, error) {
			return &low, nil
		},
	}
	repo := &transactionRepositoryStub{
		createFn: func(context.Context, *entity.Transaction) error {
			t.Fatal("repository must not be touched when the cached balance rejects")
			return nil
		},
	}

	uc := usecase.NewStageTransactionUseCase(repo, cache, &publisherStub{}, "transactions", testLogger())

	_, err := uc.Execute(context.Background(), usecase.StageInput{
		FromAccountID: &from,
		Amount:        decimal.NewFromInt(50),
	})
	if !errors.Is(err, entity.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestStageTransaction_CacheMissProceeds(t *testing.T) {
	from := uuid.New()
	published := false

	uc := usecase.NewStageTransactionUseCase(
		&transactionRepositoryStub{},
		&balanceCacheStub{}, // always a miss
		&publisherStub{publishFn: func(context.Context, string, []byte) error {
			published = true
			return nil
		}},
		"transactions",
		testLogger(),
	)

	_, err := uc.Execute(context.Background(), usecase.StageInput{
		FromAccountID: &from,
		Amount:        decimal.NewFromInt(50),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !published {
		t.Fatal("expected a cache miss to let the withdrawal through")
	}
}

func TestStageTransaction_CacheErrorProceeds(t *testing.T) {
	from := uuid.New()

	cache := &balanceCacheStub{
		getFn: func(context.Context, uuid.UUID) (*decimal.Decimal, error) {
			return nil, errors.New("redis down")
		},
	}

	uc := usecase.NewStageTransactionUseCase(&transactionRepositoryStub{}, cache, &publisherStub{}, "transactions", testLogger())

	if _, err := uc.Execute(context.Background(), usecase.StageInput{
		FromAccountID: &from,
		Amount:        decimal.NewFromInt(50),
	}); err != nil {
		t.Fatalf("expected cache failure to be soft, got %v", err)
	}
}

func TestStageTransaction_RepositoryErrorSkipsPublish(t *testing.T) {
	repo := &transactionRepositoryStub{
		createFn: func(context.Context, *entity.Transaction) error {
			return errors.New("db down")
		},
	}
	publisher := &publisherStub{
		publishFn: func(context.Context, string, []byte) error {
			t.Fatal("nothing may be enqueued when the row was not persisted")
			return nil
		},
	}

	uc := usecase.NewStageTransactionUseCase(repo, &balanceCacheStub{}, publisher, "transactions", testLogger())

	to := uuid.New()
	_, err := uc.Execute(context.Background(), usecase.StageInput{
		ToAccountID: &to,
		Amount:      decimal.NewFromInt(100),
	})
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestStageTransaction_PublishErrorSurfaces(t *testing.T) {
	publisher := &publisherStub{
		publishFn: func(context.Context, string, []byte) error {
			return errors.New("broker down")
		},
	}

	uc := usecase.NewStageTransactionUseCase(&transactionRepositoryStub{}, &balanceCacheStub{}, publisher, "transactions", testLogger())

	to := uuid.New()
	_, err := uc.Execute(context.Background(), usecase.StageInput{
		ToAccountID: &to,
		Amount:      decimal.NewFromInt(100),
	})
	if err == nil {
		t.Fatal("expected an error")
	}
}
