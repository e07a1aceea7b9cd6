package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Carts outlive page loads but not abandoned sessions.
const cartTTL = 7 * 24 * time.Hour

// RedisStore persists cart snapshots in Redis, one key per session.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (*Cart, error) {
	raw, err := s.rdb.Get(ctx, cartKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return New(), nil
		}
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		// Unreadable snapshot, start the session over.
		return New(), nil
	}
	return FromSnapshot(snap), nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, c *Cart) error {
	raw, err := json.Marshal(c.Snapshot())
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, cartKey(sessionID), raw, cartTTL).Err()
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, cartKey(sessionID)).Err()
}
