package profilestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists profile documents in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	_, err = pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS user_profiles (
		user_id TEXT PRIMARY KEY,
		preferences JSONB NOT NULL DEFAULT '{}'::jsonb
	);`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init profile schema: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) UserData(ctx context.Context, userID string) (Document, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT preferences FROM user_profiles WHERE user_id=$1`, userID,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return Document{UserID: userID, Preferences: map[string]string{}}, nil
	}
	if err != nil {
		return Document{}, fmt.Errorf("query profile: %w", err)
	}

	prefs := make(map[string]string)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &prefs); err != nil {
			return Document{}, fmt.Errorf("decode preferences: %w", err)
		}
	}
	return Document{UserID: userID, Preferences: prefs}, nil
}

func (s *PostgresStore) SavePreferences(ctx context.Context, userID string, prefs map[string]string) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO user_profiles (user_id, preferences) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET preferences = user_profiles.preferences || EXCLUDED.preferences`,
		userID, raw,
	)
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
