package locker

import (
	"context"
	"telehealth-service/internal/app/services/shared/redis"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestLocker(t *testing.T) (*miniredis.Miniredis, *lockService) {
	t.Helper()
	server := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })
	return server, &lockService{redisRepo: redis.NewRedisRepository(client), Log: zap.NewNop()}
}

func TestLockService(t *testing.T) {
	ctx := context.Background()

	t.Run("Second Caller Does Not Acquire", func(t *testing.T) {
		_, locker := newTestLocker(t)

		ok, token, err := locker.TryLock(ctx, "lock:appointment:1", time.Minute)
		require.NoError(t, err)
		require.True(t, ok)
		assert.NotEmpty(t, token)

		ok, _, err = locker.TryLock(ctx, "lock:appointment:1", time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Unlock Releases Lock", func(t *testing.T) {
		_, locker := newTestLocker(t)

		_, token, err := locker.TryLock(ctx, "k", time.Minute)
		require.NoError(t, err)
		require.NoError(t, locker.Unlock(ctx, "k", token))

		ok, _, err := locker.TryLock(ctx, "k", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Unlock By Non Owner Fails", func(t *testing.T) {
		_, locker := newTestLocker(t)

		_, _, err := locker.TryLock(ctx, "k", time.Minute)
		require.NoError(t, err)

		assert.Error(t, locker.Unlock(ctx, "k", "someone-else"))
	})

	t.Run("Unlock Missing Lock Is Noop", func(t *testing.T) {
		_, locker := newTestLocker(t)
		assert.NoError(t, locker.Unlock(ctx, "gone", "token"))
	})

	t.Run("Refresh Extends TTL", func(t *testing.T) {
		server, locker := newTestLocker(t)

		_, token, err := locker.TryLock(ctx, "leader", 2*time.Second)
		require.NoError(t, err)

		server.FastForward(time.Second)
		require.NoError(t, locker.Refresh(ctx, "leader", token, 10*time.Second))
		server.FastForward(5 * time.Second)

		assert.True(t, server.Exists("leader"))
	})

	t.Run("Refresh After Expiry Fails", func(t *testing.T) {
		server, locker := newTestLocker(t)

		_, token, err := locker.TryLock(ctx, "leader", time.Second)
		require.NoError(t, err)
		server.FastForward(2 * time.Second)

		assert.Error(t, locker.Refresh(ctx, "leader", token, time.Minute))
	})

	t.Run("Refresh By Non Owner Fails", func(t *testing.T) {
		server, locker := newTestLocker(t)

		_, _, err := locker.TryLock(ctx, "leader", time.Minute)
		require.NoError(t, err)

		assert.Error(t, locker.Refresh(ctx, "leader", "someone-else", time.Hour))
		assert.Equal(t, time.Minute, server.TTL("leader"))
	})
}
