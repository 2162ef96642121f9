package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const maxOpenConns = 25

func Connect(host string, port int, user, password, dbname string) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname,
	)

	database, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	database.SetMaxOpenConns(maxOpenConns)

	if err := database.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := setup(database); err != nil {
		return nil, fmt.Errorf("setup schema: %w", err)
	}

	return database, nil
}
