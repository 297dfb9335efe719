package redis

import (
	"context"
	"telehealth-service/internal/app/contracts"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) (*miniredis.Miniredis, *redisRepository) {
	t.Helper()
	server := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })
	return server, &redisRepository{client: client}
}

func TestRedisRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Set Get Delete", func(t *testing.T) {
		_, repo := newTestRepository(t)

		require.NoError(t, repo.Set(ctx, "session:revoked:abc", "1", time.Minute))

		value, err := repo.Get(ctx, "session:revoked:abc")
		require.NoError(t, err)
		assert.Equal(t, `"1"`, value, "values are stored json encoded")

		exists, err := repo.Exists(ctx, "session:revoked:abc")
		require.NoError(t, err)
		assert.True(t, exists)

		require.NoError(t, repo.Delete(ctx, "session:revoked:abc"))
		exists, err = repo.Exists(ctx, "session:revoked:abc")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Missing Key Is Empty", func(t *testing.T) {
		_, repo := newTestRepository(t)

		value, err := repo.Get(ctx, "nope")
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("Expiry Honoured", func(t *testing.T) {
		server, repo := newTestRepository(t)

		require.NoError(t, repo.Set(ctx, "short", "v", time.Second))
		server.FastForward(2 * time.Second)

		exists, err := repo.Exists(ctx, "short")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("TrySetNX Only Once", func(t *testing.T) {
		_, repo := newTestRepository(t)

		first, err := repo.TrySetNX(ctx, "lock", "a", time.Minute)
		require.NoError(t, err)
		second, err := repo.TrySetNX(ctx, "lock", "b", time.Minute)
		require.NoError(t, err)

		assert.True(t, first)
		assert.False(t, second)
	})

	t.Run("CompareAndDelete", func(t *testing.T) {
		server, repo := newTestRepository(t)
		require.NoError(t, repo.Set(ctx, "lock", "owner-a", time.Minute))

		result, err := repo.CompareAndDelete(ctx, "lock", "owner-b")
		require.NoError(t, err)
		assert.Equal(t, contracts.CompareMismatch, result)
		assert.True(t, server.Exists("lock"))

		result, err = repo.CompareAndDelete(ctx, "lock", "owner-a")
		require.NoError(t, err)
		assert.Equal(t, contracts.CompareMatched, result)
		assert.False(t, server.Exists("lock"))

		result, err = repo.CompareAndDelete(ctx, "lock", "owner-a")
		require.NoError(t, err)
		assert.Equal(t, contracts.CompareMissing, result)
	})

	t.Run("CompareAndExpire", func(t *testing.T) {
		server, repo := newTestRepository(t)
		require.NoError(t, repo.Set(ctx, "leader", "owner-a", 2*time.Second))

		result, err := repo.CompareAndExpire(ctx, "leader", "owner-b", time.Hour)
		require.NoError(t, err)
		assert.Equal(t, contracts.CompareMismatch, result)

		result, err = repo.CompareAndExpire(ctx, "leader", "owner-a", time.Hour)
		require.NoError(t, err)
		assert.Equal(t, contracts.CompareMatched, result)
		assert.Equal(t, time.Hour, server.TTL("leader"))
	})
}
