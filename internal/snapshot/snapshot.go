// Package snapshot persists the in-memory housekeeping state as a single
// JSON document so a restart can pick up where the previous process left
// off. The document is opaque to this package.
package snapshot

//go:generate go run go.uber.org/mock/mockgen -source=./snapshot.go -destination=./mocks/snapshot_mock.go -package=mocks

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"turndown/config"
	"turndown/infras/postgres"
	"turndown/shared/constant"
)

type Store interface {
	// Load returns the last saved document, or (nil, nil) when none exists.
	Load(ctx context.Context) ([]byte, error)
	// Save replaces the document atomically.
	Save(ctx context.Context, document []byte) error
}

// New selects the backend from SNAPSHOT_DRIVER. An unknown or empty driver
// disables persistence rather than failing startup.
func New(conf *config.Config, redisClient *redis.Client, db *postgres.Connection) Store {
	key := conf.Snapshot.Key
	if key == "" {
		key = constant.DefaultSnapshotKey
	}

	switch conf.Snapshot.Driver {
	case constant.SnapshotDriverRedis:
		return NewRedisStore(redisClient, key)
	case constant.SnapshotDriverPostgres:
		return NewPostgresStore(db, key)
	default:
		log.Warn().Str("driver", conf.Snapshot.Driver).Msg("Snapshot persistence disabled")

		return noopStore{}
	}
}

type noopStore struct{}

func (noopStore) Load(context.Context) ([]byte, error) { return nil, nil }
func (noopStore) Save(context.Context, []byte) error   { return nil }
