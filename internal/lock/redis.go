// Package lock provides the short-lived mutex that serializes seat
// writes. The storage layer's partial unique index remains the final
// authority; the lock just keeps concurrent requests for the same seat
// from racing the read-check-write and surfacing as index violations.
package lock

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "lock:seat:"

type Locker interface {
	LockSeat(ctx context.Context, seat int, ttl time.Duration) (bool, error)
	UnlockSeat(ctx context.Context, seat int) error
}

type RedisLock struct {
	client *redis.Client
}

func NewRedisLock(redisAddr string) (*RedisLock, error) {
	const op = "lock.NewRedisLock"

	client := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &RedisLock{client: client}, nil
}

func (r *RedisLock) LockSeat(ctx context.Context, seat int, ttl time.Duration) (bool, error) {
	const op = "lock.RedisLock.LockSeat"

	ok, err := r.client.SetNX(ctx, keyPrefix+strconv.Itoa(seat), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return ok, nil
}

func (r *RedisLock) UnlockSeat(ctx context.Context, seat int) error {
	const op = "lock.RedisLock.UnlockSeat"

	if err := r.client.Del(ctx, keyPrefix+strconv.Itoa(seat)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *RedisLock) Close() error {
	return r.client.Close()
}
