package db

import "database/sql"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id uuid PRIMARY KEY,
		full_name text NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS accounts (
		id uuid PRIMARY KEY,
		user_id uuid NOT NULL REFERENCES users (id),
		account_number varchar(20) NOT NULL,
		balance numeric(19, 4) NOT NULL DEFAULT 0,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id uuid PRIMARY KEY,
		from_account_id uuid REFERENCES accounts (id),
		to_account_id uuid REFERENCES accounts (id),
		amount numeric(19, 4) NOT NULL,
		status text NOT NULL,
		failure_reason text,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS balance_history (
		id uuid PRIMARY KEY,
		account_id uuid NOT NULL REFERENCES accounts (id),
		transaction_id uuid NOT NULL REFERENCES transactions (id),
		new_balance numeric(19, 4) NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS failed_transactions (
		id uuid PRIMARY KEY,
		message text,
		reason text,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_balance_history_account
		ON balance_history (account_id, created_at DESC)`,
}

func setup(database *sql.DB) error {
	for _, stmt := range schema {
		if _, err := database.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
