// internal/session/redis.go
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tutorlink-client/internal/common/config"
	"tutorlink-client/internal/common/errors"
)

const redisSessionKey = "tutorlink:session"

// RedisStore persists the session in Redis with a TTL, so a restarted client
// process keeps its signed-in state until the session expires.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(cfg config.RedisConfig, ttl time.Duration) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	return &RedisStore{client: rdb, ttl: ttl}
}

// NewRedisStoreWithClient wraps an existing client; tests inject mocks here.
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Ping tests the Redis connection.
func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (r *RedisStore) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

func (r *RedisStore) Save(ctx context.Context, sess *Session) error {
	if sess.ExpiresAt.IsZero() && r.ttl > 0 {
		sess.ExpiresAt = time.Now().Add(r.ttl)
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := r.client.Set(ctx, redisSessionKey, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (r *RedisStore) Load(ctx context.Context) (*Session, error) {
	raw, err := r.client.Get(ctx, redisSessionKey).Result()
	if err == redis.Nil {
		return nil, errors.NewUnauthorizedError("no session")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if sess.IsExpired() {
		_ = r.client.Del(ctx, redisSessionKey).Err()
		return nil, errors.NewUnauthorizedError("session expired")
	}
	return &sess, nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	return r.client.Del(ctx, redisSessionKey).Err()
}
