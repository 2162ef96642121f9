package repository

import (
	"context"
	"database/sql"
	"fmt"

	"banking-service/internal/core/domain/entity"
)

// PostgresDeadLetterRepository appends unprocessable messages to the
// failed_transactions table for operator inspection and replay.
type PostgresDeadLetterRepository struct {
	db *sql.DB
}

func NewDeadLetterRepository(db *sql.DB) *PostgresDeadLetterRepository {
	return &PostgresDeadLetterRepository{db: db}
}

func (r *PostgresDeadLetterRepository) Save(ctx context.Context, message, reason string) error {
	failed := entity.NewFailedTransaction(message, reason)

	const query = `
		INSERT INTO failed_transactions (id, message, reason, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, failed.ID, failed.Message, failed.Reason, failed.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert dead letter: %w", err)
	}
	return nil
}
