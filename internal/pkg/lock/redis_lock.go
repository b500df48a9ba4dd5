// FILE: internal/pkg/lock/redis_lock.go
package lock

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Locker serializes a critical section across replicas. Used to guard the
// per-user quota rollover so two concurrent requests cannot both archive
// the same expired period.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
}

// RedisLocker implements Locker with SETNX + TTL. The TTL bounds how long a
// crashed holder can block others; the critical section here is a handful
// of row writes, so a few seconds is plenty.
type RedisLocker struct {
	client *redis.Client
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client}
}

func (l *RedisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, "lock:"+key, 1, ttl).Result()
}

func (l *RedisLocker) Unlock(ctx context.Context, key string) error {
	return l.client.Del(ctx, "lock:"+key).Err()
}
