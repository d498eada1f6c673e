package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrLockTimeout signals the store lock could not be acquired within the
// bounded wait. Callers surface it as a retryable failure.
var ErrLockTimeout = errors.New("timed out acquiring action lock")

// ActionLock serializes lifecycle actions across the whole record store.
// Correctness depends on serialization, not granularity, so one coarse lock
// covers every business-unit table.
type ActionLock interface {
	Acquire(ctx context.Context) (release func(), err error)
}

// RedisActionLock implements ActionLock on a single redis key with a token
// value, polled acquisition, and a TTL guarding against an unreleased lock.
type RedisActionLock struct {
	client *redis.Client
	logger *zap.Logger
	key    string
	ttl    time.Duration
	wait   time.Duration
	poll   time.Duration
}

// NewRedisActionLock builds the lock around an existing client.
func NewRedisActionLock(r *Redis, logger *zap.Logger, key string, wait, ttl time.Duration) *RedisActionLock {
	if key == "" {
		key = "hr:requests:action-lock"
	}
	if wait <= 0 {
		wait = 5 * time.Second
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisActionLock{
		client: r.Client,
		logger: logger,
		key:    key,
		ttl:    ttl,
		wait:   wait,
		poll:   50 * time.Millisecond,
	}
}

// Acquire blocks up to the configured wait for the lock. On success the
// returned release func must be called; on failure the lock is never held.
func (l *RedisActionLock) Acquire(ctx context.Context) (func(), error) {
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() { l.release(token) }, nil
		}
		if time.Now().After(deadline) {
			return nil, ErrLockTimeout
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.poll):
		}
	}
}

// release deletes the key only while it still carries our token, so an
// expired-and-reacquired lock is never clobbered.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0`)

func (l *RedisActionLock) release(token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := releaseScript.Run(ctx, l.client, []string{l.key}, token).Err(); err != nil && l.logger != nil {
		l.logger.Warn("failed to release action lock", zap.Error(err))
	}
}

// LocalActionLock is an in-process ActionLock used in tests and when redis is
// not configured.
type LocalActionLock struct {
	sem  chan struct{}
	wait time.Duration
}

// NewLocalActionLock builds the lock with the given bounded wait.
func NewLocalActionLock(wait time.Duration) *LocalActionLock {
	if wait <= 0 {
		wait = 5 * time.Second
	}
	return &LocalActionLock{sem: make(chan struct{}, 1), wait: wait}
}

func (l *LocalActionLock) Acquire(ctx context.Context) (func(), error) {
	timer := time.NewTimer(l.wait)
	defer timer.Stop()
	select {
	case l.sem <- struct{}{}:
		return func() { <-l.sem }, nil
	case <-timer.C:
		return nil, ErrLockTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
