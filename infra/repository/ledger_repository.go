package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"banking-service/internal/core/domain/entity"
	"banking-service/internal/core/domain/ports"
)

// PostgresLedgerStore is the executor's unit-of-work surface over
// postgres. Every transient error it surfaces is already classified.
type PostgresLedgerStore struct {
	db *sql.DB
}

func NewLedgerStore(db *sql.DB) *PostgresLedgerStore {
	return &PostgresLedgerStore{db: db}
}

func (s *PostgresLedgerStore) Begin(ctx context.Context) (ports.LedgerTx, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, classify(fmt.Errorf("begin unit of work: %w", err))
	}
	return &ledgerTx{tx: tx}, nil
}

func (s *PostgresLedgerStore) FindTransaction(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	const query = `
		SELECT id, from_account_id, to_account_id, amount, status, failure_reason, created_at
		FROM transactions
		WHERE id = $1
	`
	row := s.db.QueryRowContext(ctx, query, id)

	txn, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, classify(fmt.Errorf("find transaction: %w", err))
	}
	return txn, nil
}

type ledgerTx struct {
	tx *sql.Tx
}

// AccountForUpdate locks the account row exclusively for the rest of
// the unit of work. The owner join rides along so notification text
// needs no extra query.
func (l *ledgerTx) AccountForUpdate(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	const query = `
		SELECT a.id, a.user_id, a.account_number, u.full_name, a.balance, a.created_at
		FROM accounts a
		JOIN users u ON u.id = a.user_id
		WHERE a.id = $1
		FOR UPDATE OF a
	`
	var account entity.Account
	err := l.tx.QueryRowContext(ctx, query, id).Scan(
		&account.ID, &account.UserID, &account.AccountNumber,
		&account.OwnerName, &account.Balance, &account.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, classify(fmt.Errorf("lock account %s: %w", id, err))
	}
	return &account, nil
}

func (l *ledgerTx) UpdateAccountBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	const query = `UPDATE accounts SET balance = $1 WHERE id = $2`
	if _, err := l.tx.ExecContext(ctx, query, balance, id); err != nil {
		return classify(fmt.Errorf("update balance of %s: %w", id, err))
	}
	return nil
}

func (l *ledgerTx) AddBalanceHistory(ctx context.Context, history *entity.BalanceHistory) error {
	const query = `
		INSERT INTO balance_history (id, account_id, transaction_id, new_balance, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := l.tx.ExecContext(ctx, query,
		history.ID, history.AccountID, history.TransactionID, history.NewBalance, history.CreatedAt,
	)
	if err != nil {
		return classify(fmt.Errorf("insert balance history: %w", err))
	}
	return nil
}

// SetTransactionStatus performs the single allowed transition out of
// PENDING. Zero rows affected means another consumer settled the
// transaction first, which aborts this unit of work.
func (l *ledgerTx) SetTransactionStatus(ctx context.Context, id uuid.UUID, status entity.TransactionStatus, reason *string) error {
	const query = `
		UPDATE transactions SET status = $1, failure_reason = $2
		WHERE id = $3 AND status = $4
	`
	res, err := l.tx.ExecContext(ctx, query, string(status), reason, id, string(entity.StatusPending))
	if err != nil {
		return classify(fmt.Errorf("set transaction %s status: %w", id, err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return classify(err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %s is not pending", id)
	}
	return nil
}

func (l *ledgerTx) Commit() error {
	if err := l.tx.Commit(); err != nil {
		return classify(fmt.Errorf("commit unit of work: %w", err))
	}
	return nil
}

func (l *ledgerTx) Rollback() error {
	return l.tx.Rollback()
}

// scanTransaction reads a transactions row from either *sql.Row or
// *sql.Rows via the shared Scan signature.
func scanTransaction(row interface {
	Scan(dest ...any) error
}) (*entity.Transaction, error) {
	var (
		txn    entity.Transaction
		from   uuid.NullUUID
		to     uuid.NullUUID
		status string
		reason sql.NullString
	)
	err := row.Scan(&txn.ID, &from, &to, &txn.Amount, &status, &reason, &txn.CreatedAt)
	if err != nil {
		return nil, err
	}

	if from.Valid {
		txn.FromAccountID = &from.UUID
	}
	if to.Valid {
		txn.ToAccountID = &to.UUID
	}
	if reason.Valid {
		txn.FailureReason = &reason.String
	}
	txn.Status = entity.TransactionStatus(status)

	return &txn, nil
}
