package postgres

//nolint:revive
import (
	"net"
	"net/url"
	"resto/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// Connection splits reads from writes. Both point at the same pool when no replica is configured.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	write := connect("write", cfg, cfg.DB.Postgres.Write)

	if cfg.DB.Postgres.Read.Host == "" {
		log.Info().Msg("No read replica configured, reads use the write connection")

		return &Connection{Read: write, Write: write}
	}

	return &Connection{
		Read:  connect("read", cfg, cfg.DB.Postgres.Read),
		Write: write,
	}
}

func (c *Connection) Close() {
	if c.Read != nil && c.Read != c.Write {
		if err := c.Read.Close(); err != nil {
			log.Error().Err(err).Msg("Failed closing read connection")
		}
	}

	if c.Write != nil {
		if err := c.Write.Close(); err != nil {
			log.Error().Err(err).Msg("Failed closing write connection")
		}
	}
}

// DSN renders the lib/pq URL for an endpoint, applying the configured database prefix.
// Extra query parameters are appended as given.
func DSN(cfg *config.Config, endpoint config.PostgresEndpoint, extra url.Values) string {
	query := url.Values{}
	query.Set("sslmode", endpoint.SSLMode)

	for key, values := range extra {
		for _, v := range values {
			query.Add(key, v)
		}
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(endpoint.Username, endpoint.Password),
		Host:     net.JoinHostPort(endpoint.Host, endpoint.Port),
		Path:     "/" + cfg.DB.Postgres.Prefix + endpoint.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func connect(name string, cfg *config.Config, endpoint config.PostgresEndpoint) *sqlx.DB {
	pg := cfg.DB.Postgres
	dsn := DSN(cfg, endpoint, nil)
	dbName := pg.Prefix + endpoint.Name

	attempts := max(pg.MaxRetry, 1)

	for attempt := 1; attempt <= attempts; attempt++ {
		db, err := sqlx.Connect("postgres", dsn)
		if err == nil {
			db.SetMaxOpenConns(pg.MaxOpenConns)
			db.SetMaxIdleConns(pg.MaxIdleConns)
			db.SetConnMaxLifetime(time.Duration(pg.ConnMaxLifeMin) * time.Minute)

			log.Info().
				Str("name", name).
				Str("host", endpoint.Host).
				Str("dbName", dbName).
				Msg("Connected to database")

			return db
		}

		log.Error().
			Err(err).
			Str("name", name).
			Str("host", endpoint.Host).
			Str("dbName", dbName).
			Int("attempt", attempt).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(pg.RetryWaitTime) * time.Second)
	}

	log.Fatal().Str("name", name).Int("attempts", attempts).Msgf("Giving up on %s database", name)

	return nil
}
