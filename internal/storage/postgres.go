package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/lib/pq"
)

type PostgresSlot struct {
	db *sql.DB
}

func NewPostgresSlot(connStr string) (*PostgresSlot, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	slot := &PostgresSlot{db: db}
	if err := slot.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	return slot, nil
}

func (s *PostgresSlot) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS slots (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *PostgresSlot) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *PostgresSlot) SetItem(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO slots (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(ctx, query, key, value, time.Now().UTC())
	return err
}

func (s *PostgresSlot) RemoveItem(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM slots WHERE key = $1`, key)
	return err
}

func (s *PostgresSlot) Close() error {
	return s.db.Close()
}
