package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"banking-service/internal/core/domain/entity"
	"banking-service/internal/core/domain/ports"
	apperrors "banking-service/internal/core/errors"
)

// Dead-letter reasons. These also settle the transaction to FAILED
// where a row exists to settle.
const (
	reasonMalformed        = "malformed transaction message"
	reasonNotFound         = "transaction not found"
	reasonAlreadyProcessed = "transaction already processed"
	reasonAccountNotFound  = "account not found"
	reasonInsufficient     = "insufficient funds"
)

type Options struct {
	MaxRetries int
	RetryDelay time.Duration
}

// Executor applies queued transactions to the ledger. Per message it
// runs the idempotency gate, then lock-mutate-commit with bounded
// retry on transient contention, then best-effort cache and
// notification propagation. Multiple executors may consume the same
// queue concurrently; the row locks are the only ordering mechanism.
type Executor struct {
	ledger           ports.LedgerStore
	deadLetters      ports.DeadLetterRepository
	cache            ports.BalanceCache
	publisher        ports.EventPublisher
	notificationsKey string
	maxRetries       int
	retryDelay       time.Duration
	logger           *slog.Logger
}

func New(
	ledger ports.LedgerStore,
	deadLetters ports.DeadLetterRepository,
	cache ports.BalanceCache,
	publisher ports.EventPublisher,
	notificationsKey string,
	opts Options,
	logger *slog.Logger,
) *Executor {
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	return &Executor{
		ledger:           ledger,
		deadLetters:      deadLetters,
		cache:            cache,
		publisher:        publisher,
		notificationsKey: notificationsKey,
		maxRetries:       opts.MaxRetries,
		retryDelay:       opts.RetryDelay,
		logger:           logger,
	}
}

// ProcessMessage settles one delivery. It returns a non-nil error only
// when shutdown interrupted the attempt: the transaction is still
// PENDING and the caller must requeue instead of acking, so redelivery
// lands in the idempotency gate. Every other outcome, including
// failures, is final and the message must be acked.
func (e *Executor) ProcessMessage(ctx context.Context, body []byte) error {
	var msg entity.TransactionMessage
	if err := json.Unmarshal(body, &msg); err != nil || msg.ID == uuid.Nil {
		e.deadLetter(ctx, body, reasonMalformed)
		return nil
	}

	log := e.logger.With(slog.String("transaction_id", msg.ID.String()))

	// Idempotency gate: only a PENDING row may be applied. This is
	// what turns at-least-once delivery into at-most-one ledger effect.
	txn, err := e.ledger.FindTransaction(ctx, msg.ID)
	if err != nil {
		log.ErrorContext(ctx, "loading transaction failed", slog.String("error", err.Error()))
		e.deadLetter(ctx, body, "loading transaction: "+err.Error())
		return nil
	}
	if txn == nil {
		log.WarnContext(ctx, "transaction not found")
		e.deadLetter(ctx, body, reasonNotFound)
		return nil
	}
	if txn.Status != entity.StatusPending {
		log.WarnContext(ctx, "duplicate delivery", slog.String("status", string(txn.Status)))
		e.deadLetter(ctx, body, reasonAlreadyProcessed)
		return nil
	}

	var lastErr error
	for attempt := 1; attempt <= e.maxRetries; attempt++ {
		result, err := e.attempt(ctx, txn)
		if err == nil {
			if result.failureReason != "" {
				log.WarnContext(ctx, "transaction failed", slog.String("reason", result.failureReason))
				e.deadLetter(ctx, body, result.failureReason)
				transactionsProcessed.WithLabelValues("failed").Inc()
				return nil
			}
			e.propagate(ctx, txn, result)
			log.InfoContext(ctx, "transaction completed", slog.Int("attempt", attempt))
			transactionsProcessed.WithLabelValues("completed").Inc()
			return nil
		}

		lastErr = err
		if !apperrors.IsTransient(err) {
			break
		}
		if attempt == e.maxRetries {
			break
		}

		log.WarnContext(ctx, "transient error, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_retries", e.maxRetries),
			slog.String("error", err.Error()),
		)
		transactionRetries.Inc()

		select {
		case <-time.After(e.retryDelay):
		case <-ctx.Done():
			// Shutdown mid-retry: leave PENDING, requeue.
			return ctx.Err()
		}
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	// Retries exhausted or a non-transient failure: settle to FAILED so
	// the terminal state is auditable, then dead-letter.
	reason := "processing failed: " + lastErr.Error()
	if apperrors.IsTransient(lastErr) {
		reason = "retries exhausted: " + lastErr.Error()
	}
	log.ErrorContext(ctx, "transaction unresolved", slog.String("error", lastErr.Error()))
	e.settleFailed(ctx, txn.ID, reason)
	e.deadLetter(ctx, body, reason)
	transactionsProcessed.WithLabelValues("failed").Inc()
	return nil
}

type attemptResult struct {
	from, to      *entity.Account // post-transaction views
	failureReason string          // permanent business failure, already committed
}

func (e *Executor) attempt(ctx context.Context, txn *entity.Transaction) (*attemptResult, error) {
	tx, err := e.ledger.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var from, to *entity.Account
	for _, id := range lockOrder(txn.FromAccountID, txn.ToAccountID) {
		account, err := tx.AccountForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if account == nil {
			return e.settleInTx(ctx, tx, txn.ID, reasonAccountNotFound)
		}
		if txn.FromAccountID != nil && id == *txn.FromAccountID {
			from = account
		} else {
			to = account
		}
	}

	// Authoritative funds check, under the lock.
	if from != nil && from.Balance.LessThan(txn.Amount) {
		return e.settleInTx(ctx, tx, txn.ID, reasonInsufficient)
	}

	if from != nil {
		from.Balance = from.Balance.Sub(txn.Amount)
		if err := e.applyBalance(ctx, tx, from, txn.ID); err != nil {
			return nil, err
		}
	}
	if to != nil {
		to.Balance = to.Balance.Add(txn.Amount)
		if err := e.applyBalance(ctx, tx, to, txn.ID); err != nil {
			return nil, err
		}
	}

	if err := tx.SetTransactionStatus(ctx, txn.ID, entity.StatusCompleted, nil); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &attemptResult{from: from, to: to}, nil
}

func (e *Executor) applyBalance(ctx context.Context, tx ports.LedgerTx, account *entity.Account, txnID uuid.UUID) error {
	if err := tx.UpdateAccountBalance(ctx, account.ID, account.Balance); err != nil {
		return err
	}
	return tx.AddBalanceHistory(ctx, entity.NewBalanceHistory(account.ID, txnID, account.Balance))
}

// settleInTx commits a status-only FAILED transition inside the open
// unit of work. No balance was mutated.
func (e *Executor) settleInTx(ctx context.Context, tx ports.LedgerTx, id uuid.UUID, reason string) (*attemptResult, error) {
	if err := tx.SetTransactionStatus(ctx, id, entity.StatusFailed, &reason); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &attemptResult{failureReason: reason}, nil
}

// settleFailed marks an unresolved transaction FAILED in its own unit
// of work. Best-effort: a failure here leaves the row PENDING for
// manual reconciliation and is only logged.
func (e *Executor) settleFailed(ctx context.Context, id uuid.UUID, reason string) {
	tx, err := e.ledger.Begin(ctx)
	if err != nil {
		e.logger.ErrorContext(ctx, "settling failed transaction", slog.String("error", err.Error()))
		return
	}
	defer tx.Rollback()

	if err := tx.SetTransactionStatus(ctx, id, entity.StatusFailed, &reason); err != nil {
		e.logger.ErrorContext(ctx, "settling failed transaction", slog.String("error", err.Error()))
		return
	}
	if err := tx.Commit(); err != nil {
		e.logger.ErrorContext(ctx, "settling failed transaction", slog.String("error", err.Error()))
	}
}

// propagate pushes fresh balances to the cache and emits the
// notification event. Runs strictly after commit; failures are logged,
// never rolled back, and never re-trigger the mutation.
func (e *Executor) propagate(ctx context.Context, txn *entity.Transaction, result *attemptResult) {
	for _, account := range []*entity.Account{result.from, result.to} {
		if account == nil {
			continue
		}
		if err := e.cache.SetBalance(ctx, account.ID, account.Balance); err != nil {
			e.logger.WarnContext(ctx, "balance cache update failed",
				slog.String("account_id", account.ID.String()),
				slog.String("error", err.Error()),
			)
		}
	}

	event := entity.NewNotificationEvent(result.from, result.to, txn.Amount)
	body, err := json.Marshal(event)
	if err != nil {
		e.logger.ErrorContext(ctx, "encoding notification event failed", slog.String("error", err.Error()))
		return
	}
	if err := e.publisher.Publish(ctx, e.notificationsKey, body); err != nil {
		e.logger.WarnContext(ctx, "publishing notification event failed", slog.String("error", err.Error()))
	}
}

func (e *Executor) deadLetter(ctx context.Context, body []byte, reason string) {
	if err := e.deadLetters.Save(ctx, string(body), reason); err != nil {
		e.logger.ErrorContext(ctx, "saving dead letter failed",
			slog.String("reason", reason),
			slog.String("error", err.Error()),
		)
	}
	deadLetters.Inc()
}

// lockOrder returns the involved account ids in ascending identity
// order, regardless of from/to role, so concurrent transactions over
// the same pair of accounts never deadlock on each other.
func lockOrder(from, to *uuid.UUID) []uuid.UUID {
	ids := make([]uuid.UUID, 0, 2)
	if from != nil {
		ids = append(ids, *from)
	}
	if to != nil {
		ids = append(ids, *to)
	}
	if len(ids) == 2 && bytes.Compare(ids[0][:], ids[1][:]) > 0 {
		ids[0], ids[1] = ids[1], ids[0]
	}
	return ids
}
