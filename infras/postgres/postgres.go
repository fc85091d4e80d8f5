package postgres

//nolint:revive
import (
	"fmt"
	"net"
	"time"
	"turndown/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
)

// Connection wraps the single snapshot-document pool. The workflow state is
// authoritative in memory; postgres only holds the persisted snapshot.
type Connection struct {
	DB *sqlx.DB
}

func New(config *config.Config) *Connection {
	pg := config.DB.Postgres

	descriptor := fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		pg.Username,
		pg.Password,
		net.JoinHostPort(pg.Host, pg.Port),
		pg.Name,
		pg.SSLMode,
	)

	db, err := connectWithRetry(descriptor, pg.MaxRetry, pg.RetryWaitTime)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Postgres")
	}

	db.SetMaxIdleConns(postgresMaxIdleConnection)
	db.SetMaxOpenConns(postgresMaxOpenConnection)

	log.Info().
		Str("host", pg.Host).
		Str("port", pg.Port).
		Str("name", pg.Name).
		Msg("Connected to Postgres")

	return &Connection{DB: db}
}

func connectWithRetry(descriptor string, maxRetry, waitSeconds int) (*sqlx.DB, error) {
	if maxRetry <= 0 {
		maxRetry = 1
	}

	var (
		db  *sqlx.DB
		err error
	)

	for attempt := 1; attempt <= maxRetry; attempt++ {
		db, err = sqlx.Connect("postgres", descriptor)
		if err == nil {
			return db, nil
		}

		log.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_retry", maxRetry).
			Msg("Postgres connection failed, retrying")

		time.Sleep(time.Duration(waitSeconds) * time.Second)
	}

	return nil, fmt.Errorf("connecting to postgres after %d attempts: %w", maxRetry, err)
}
