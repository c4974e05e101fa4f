package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dwikikusuma/food-storefront/internal/cart/app"
	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "cart:"

type CartStore struct {
	rdb *goredis.Client
	key string
	ttl time.Duration
}

// NewCartStore binds the mirror slot of one session. A zero ttl keeps the
// slot until it is deleted.
func NewCartStore(rdb *goredis.Client, sessionID string, ttl time.Duration) *CartStore {
	return &CartStore{
		rdb: rdb,
		key: keyPrefix + sessionID,
		ttl: ttl,
	}
}

func (s *CartStore) Load(ctx context.Context) ([]byte, error) {
	data, err := s.rdb.Get(ctx, s.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, app.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return data, nil
}

func (s *CartStore) Save(ctx context.Context, data []byte) error {
	if err := s.rdb.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

func (s *CartStore) Delete(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", s.key, err)
	}
	return nil
}

// Factory returns a per-session store constructor over a shared client.
func Factory(rdb *goredis.Client, ttl time.Duration) func(sessionID string) app.Store {
	return func(sessionID string) app.Store {
		return NewCartStore(rdb, sessionID, ttl)
	}
}
