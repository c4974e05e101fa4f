package redisconn

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr       string
	Password   string
	DB         int
	MaxRetries int
}

// Open connects and pings with exponential backoff capped at 30s.
func Open(ctx context.Context, cfg Config, log *slog.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = 1
	}

	for i := 0; i < retries; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err == nil {
			log.Info("connected to redis", slog.String("addr", cfg.Addr), slog.Int("db", cfg.DB))
			return rdb, nil
		}

		if i == retries-1 {
			_ = rdb.Close()
			return nil, fmt.Errorf("redis %s unreachable after %d attempts: %w", cfg.Addr, retries, err)
		}

		backoff := min(time.Duration(1<<i)*time.Second, 30*time.Second)
		log.Warn("redis not ready", slog.Duration("retry_in", backoff), slog.Int("attempt", i+1))
		select {
		case <-ctx.Done():
			_ = rdb.Close()
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
	return rdb, nil
}
