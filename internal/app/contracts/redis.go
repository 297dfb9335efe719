package contracts

import (
	"context"
	"time"
)

// CompareResult is the outcome of a compare-and-act call on a key.
type CompareResult int

const (
	CompareMissing CompareResult = iota
	CompareMatched
	CompareMismatch
)

type RedisRepository interface {
	Delete(ctx context.Context, key string) error
	Set(ctx context.Context, key string, value interface{}, exp time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Exists(ctx context.Context, key string) (bool, error)
	TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error)
	// CompareAndDelete deletes key only while it still holds expected.
	CompareAndDelete(ctx context.Context, key string, expected interface{}) (CompareResult, error)
	// CompareAndExpire resets the TTL of key only while it still holds expected.
	CompareAndExpire(ctx context.Context, key string, expected interface{}, exp time.Duration) (CompareResult, error)
}

type LockerService interface {
	TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error)
	Unlock(ctx context.Context, key, lockValue string) error
	// Refresh extends the TTL of a lock if owned by lockValue
	Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error
}
