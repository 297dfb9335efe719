package redis

import (
	"context"
	"errors"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/pkg/exceptions"

	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Both scripts answer 0 for a missing key, 1 when the stored value matched
// and the action ran, 2 when somebody else's value is stored.
var (
	compareAndDeleteScript = redis.NewScript(`
local current = redis.call("GET", KEYS[1])
if not current then return 0 end
if current ~= ARGV[1] then return 2 end
redis.call("DEL", KEYS[1])
return 1
`)

	compareAndExpireScript = redis.NewScript(`
local current = redis.call("GET", KEYS[1])
if not current then return 0 end
if current ~= ARGV[1] then return 2 end
redis.call("PEXPIRE", KEYS[1], ARGV[2])
return 1
`)
)

type redisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) contracts.RedisRepository {
	return &redisRepository{client: client}
}

func (r *redisRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return exceptions.ErrRedisDelete(err)
	}
	return nil
}

// Set stores value JSON encoded; a zero exp keeps the key forever.
func (r *redisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	if err := r.client.Set(ctx, key, encoded, exp).Err(); err != nil {
		return exceptions.ErrRedisSet(err)
	}
	return nil
}

// Get returns "" without error for a missing key.
func (r *redisRepository) Get(ctx context.Context, key string) (string, error) {
	data, err := r.client.Get(ctx, key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", nil
	case err != nil:
		return "", exceptions.ErrRedisGet(err)
	}
	return data, nil
}

func (r *redisRepository) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, exceptions.ErrRedisGet(err)
	}
	return n > 0, nil
}

func (r *redisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return false, exceptions.ErrCannotMarshalJSON(err)
	}

	acquired, err := r.client.SetNX(ctx, key, encoded, exp).Result()
	if err != nil {
		return false, exceptions.ErrRedisSet(err)
	}
	return acquired, nil
}

func (r *redisRepository) CompareAndDelete(ctx context.Context, key string, expected interface{}) (contracts.CompareResult, error) {
	encoded, err := json.Marshal(expected)
	if err != nil {
		return contracts.CompareMissing, exceptions.ErrCannotMarshalJSON(err)
	}

	code, err := compareAndDeleteScript.Run(ctx, r.client, []string{key}, string(encoded)).Int64()
	if err != nil {
		return contracts.CompareMissing, exceptions.ErrRedisDelete(err)
	}
	return contracts.CompareResult(code), nil
}

func (r *redisRepository) CompareAndExpire(ctx context.Context, key string, expected interface{}, exp time.Duration) (contracts.CompareResult, error) {
	encoded, err := json.Marshal(expected)
	if err != nil {
		return contracts.CompareMissing, exceptions.ErrCannotMarshalJSON(err)
	}

	code, err := compareAndExpireScript.Run(ctx, r.client, []string{key}, string(encoded), exp.Milliseconds()).Int64()
	if err != nil {
		return contracts.CompareMissing, exceptions.ErrRedisExpire(err)
	}
	return contracts.CompareResult(code), nil
}
