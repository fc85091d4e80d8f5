package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"turndown/infras/postgres"
	"turndown/shared/timezone"
)

const (
	querySelectSnapshot = `SELECT document FROM state_snapshots WHERE key = $1`
	queryUpsertSnapshot = `
		INSERT INTO state_snapshots (key, document, saved_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key)
		DO UPDATE SET document = EXCLUDED.document, saved_at = EXCLUDED.saved_at`
)

type postgresStore struct {
	db  *postgres.Connection
	key string
}

func NewPostgresStore(db *postgres.Connection, key string) Store {
	return &postgresStore{
		db:  db,
		key: key,
	}
}

func (s *postgresStore) Load(ctx context.Context) ([]byte, error) {
	var document []byte

	err := s.db.DB.GetContext(ctx, &document, querySelectSnapshot, s.key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("loading snapshot from postgres: %w", err)
	}

	return document, nil
}

func (s *postgresStore) Save(ctx context.Context, document []byte) error {
	_, err := s.db.DB.ExecContext(ctx, queryUpsertSnapshot, s.key, document, timezone.Now())
	if err != nil {
		return fmt.Errorf("saving snapshot to postgres: %w", err)
	}

	return nil
}
