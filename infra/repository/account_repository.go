package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"banking-service/internal/core/domain/entity"
)

type PostgresAccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

func (r *PostgresAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	const query = `
		SELECT a.id, a.user_id, a.account_number, u.full_name, a.balance, a.created_at
		FROM accounts a
		JOIN users u ON u.id = a.user_id
		WHERE a.id = $1
	`
	var account entity.Account
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID, &account.UserID, &account.AccountNumber,
		&account.OwnerName, &account.Balance, &account.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	return &account, nil
}

func (r *PostgresAccountRepository) BalanceHistory(ctx context.Context, accountID uuid.UUID, limit int) ([]*entity.BalanceHistory, error) {
	const query = `
		SELECT id, account_id, transaction_id, new_balance, created_at
		FROM balance_history
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("query balance history: %w", err)
	}
	defer rows.Close()

	var history []*entity.BalanceHistory
	for rows.Next() {
		var h entity.BalanceHistory
		if err := rows.Scan(&h.ID, &h.AccountID, &h.TransactionID, &h.NewBalance, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan balance history: %w", err)
		}
		history = append(history, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}
