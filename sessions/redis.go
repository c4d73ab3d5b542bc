package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "session:"

// RedisStore shares sessions between portal instances. Platform tokens are
// sealed before they are written.
type RedisStore struct {
	rdb    *redis.Client
	sealer *Sealer
}

func NewRedisStore(ctx context.Context, redisURL string, sealer *Sealer) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{rdb: rdb, sealer: sealer}, nil
}

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return r.Delete(ctx, s.ID)
	}
	data, err := r.encode(s)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, keyPrefix+s.ID, data, ttl).Err()
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	val, err := r.rdb.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return r.decode(val)
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, keyPrefix+id).Err()
}

func (r *RedisStore) Close() error {
	return r.rdb.Close()
}

func (r *RedisStore) encode(s *Session) ([]byte, error) {
	sealed := *s
	var err error
	if sealed.AccessToken, err = r.sealer.Seal(s.AccessToken); err != nil {
		return nil, err
	}
	if sealed.TempToken, err = r.sealer.Seal(s.TempToken); err != nil {
		return nil, err
	}
	data, err := json.Marshal(sealed)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	return data, nil
}

func (r *RedisStore) decode(data []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	var err error
	if s.AccessToken, err = r.sealer.Open(s.AccessToken); err != nil {
		return nil, err
	}
	if s.TempToken, err = r.sealer.Open(s.TempToken); err != nil {
		return nil, err
	}
	return &s, nil
}
