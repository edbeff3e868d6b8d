package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// postgresStore implements Store on a single upsert table. Used when the
// kiosk shares durable state with the shop's local database instead of the
// device file system.
type postgresStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresStore creates a postgres-backed store and ensures its schema.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) (Store, error) {
	s := &postgresStore{
		pool:   pool,
		logger: logger.With().Str("store", "postgres").Logger(),
	}

	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS kiosk_state (
			key VARCHAR(100) PRIMARY KEY,
			data BYTEA NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure kiosk_state table: %w", err)
	}

	return s, nil
}

func (s *postgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, "SELECT data FROM kiosk_state WHERE key = $1", key).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state for %s: %w", key, err)
	}
	return data, nil
}

func (s *postgresStore) Set(ctx context.Context, key string, data []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO kiosk_state (key, data, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE
		SET data = EXCLUDED.data, updated_at = CURRENT_TIMESTAMP
	`, key, data)
	if err != nil {
		return fmt.Errorf("failed to write state for %s: %w", key, err)
	}
	return nil
}
