package redis

import (
	"context"
	"net"
	"resto/config"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const retryWait = time.Second

// Options maps the primary cache settings onto the client options.
func Options(cfg *config.Config) *goRedis.Options {
	primary := cfg.Cache.Redis.Primary

	return &goRedis.Options{
		Addr:        net.JoinHostPort(primary.Host, primary.Port),
		Password:    primary.Password,
		DB:          primary.DB,
		PoolSize:    primary.PoolSize,
		DialTimeout: time.Duration(primary.DialTimeoutSec) * time.Second,
	}
}

func New(cfg *config.Config) *goRedis.Client {
	opts := Options(cfg)
	client := goRedis.NewClient(opts)

	attempts := max(cfg.Cache.Redis.Primary.MaxRetry, 1)

	for attempt := 1; attempt <= attempts; attempt++ {
		err := client.Ping(context.Background()).Err()
		if err == nil {
			log.Info().Int("db", opts.DB).Str("addr", opts.Addr).Msg("Connected to Redis")

			return client
		}

		log.Error().Err(err).Str("addr", opts.Addr).Int("attempt", attempt).Msg("Failed connecting to Redis, retrying")
		time.Sleep(retryWait)
	}

	log.Fatal().Str("addr", opts.Addr).Msg("Giving up on Redis")

	return nil
}
