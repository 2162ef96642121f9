package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"banking-service/internal/core/domain/entity"
)

type PostgresTransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *PostgresTransactionRepository {
	return &PostgresTransactionRepository{db: db}
}

func (r *PostgresTransactionRepository) Create(ctx context.Context, tx *entity.Transaction) error {
	const query = `
		INSERT INTO transactions (id, from_account_id, to_account_id, amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		tx.ID, nullableUUID(tx.FromAccountID), nullableUUID(tx.ToAccountID),
		tx.Amount, string(tx.Status), tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (r *PostgresTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	const query = `
		SELECT id, from_account_id, to_account_id, amount, status, failure_reason, created_at
		FROM transactions
		WHERE id = $1
	`
	txn, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	return txn, nil
}

func nullableUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
