// internal/session/redis_test.go
package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorlink-client/internal/common/errors"
)

func newMiniredisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStoreWithClient(client, ttl)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newMiniredisStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &Session{
		AccessToken: "token-abc",
		UserID:      "u1",
		UserRole:    "tutor",
		CreatedAt:   time.Now(),
	}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "token-abc", loaded.AccessToken)
	assert.Equal(t, "tutor", loaded.UserRole)
	assert.False(t, loaded.ExpiresAt.IsZero(), "save stamps the expiry from the ttl")
}

func TestRedisStoreLoadWithoutSession(t *testing.T) {
	store, _ := newMiniredisStore(t, time.Hour)

	_, err := store.Load(context.Background())

	require.Error(t, err)
	assert.True(t, errors.IsUnauthorized(err))
}

func TestRedisStoreKeyExpiry(t *testing.T) {
	store, mr := newMiniredisStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &Session{AccessToken: "token-abc", UserID: "u1"}))

	mr.FastForward(2 * time.Minute)

	_, err := store.Load(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsUnauthorized(err))
}

func TestRedisStoreStaleBodyIsDeleted(t *testing.T) {
	store, mr := newMiniredisStore(t, 0)
	ctx := context.Background()

	// A session whose embedded expiry passed while the key itself survived.
	require.NoError(t, store.Save(ctx, &Session{
		AccessToken: "token-abc",
		UserID:      "u1",
		ExpiresAt:   time.Now().Add(-time.Minute),
	}))

	_, err := store.Load(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsUnauthorized(err))
	assert.False(t, mr.Exists(redisSessionKey), "stale session is removed on read")
}

func TestRedisStoreClear(t *testing.T) {
	store, mr := newMiniredisStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &Session{AccessToken: "token-abc", UserID: "u1"}))
	require.NoError(t, store.Clear(ctx))
	assert.False(t, mr.Exists(redisSessionKey))
}

func TestRedisStoreLoadTransportError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStoreWithClient(client, time.Hour)

	mock.ExpectGet(redisSessionKey).SetErr(context.DeadlineExceeded)

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.False(t, errors.IsUnauthorized(err), "transport failures are not auth failures")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStorePing(t *testing.T) {
	store, mr := newMiniredisStore(t, time.Hour)
	require.NoError(t, store.Ping(context.Background()))

	mr.Close()
	assert.Error(t, store.Ping(context.Background()))
}
