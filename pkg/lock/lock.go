// Package lock serializes work on the same key. Generation and reassignment
// of an outing take the lock for "group:date" so that two requests cannot
// build the same outing at once.
package lock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v4"
	"go.uber.org/zap"

	"github.com/ray8844/saida-de-campo/pkg/redis"
)

// ErrLockTimeout is returned when the lock could not be taken before the
// context ended.
var ErrLockTimeout = errors.New("lock: timed out waiting for key")

// Locker hands out exclusive per-key locks.
type Locker interface {
	// Lock blocks until key is held or ctx is done. The returned func
	// releases the lock and is safe to call once.
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// ── In-process ──

// Memory is a Locker for a single process. A key's slot lives only while
// someone holds or waits for it.
type Memory struct {
	slots *xsync.Map[string, *slot]
}

// slot is mutated only inside Compute, which runs under the key's bucket lock.
type slot struct {
	ch   chan struct{}
	refs int
}

// NewMemory creates an in-process locker.
func NewMemory() *Memory {
	return &Memory{slots: xsync.NewMap[string, *slot]()}
}

func (m *Memory) Lock(ctx context.Context, key string) (func(), error) {
	s, _ := m.slots.Compute(key, func(old *slot, loaded bool) (*slot, xsync.ComputeOp) {
		if !loaded {
			old = &slot{ch: make(chan struct{}, 1)}
		}
		old.refs++
		return old, xsync.UpdateOp
	})

	select {
	case s.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-s.ch
				m.release(key)
			})
		}, nil
	case <-ctx.Done():
		m.release(key)
		return nil, ErrLockTimeout
	}
}

func (m *Memory) release(key string) {
	m.slots.Compute(key, func(old *slot, loaded bool) (*slot, xsync.ComputeOp) {
		if !loaded {
			return old, xsync.CancelOp
		}
		old.refs--
		if old.refs == 0 {
			return old, xsync.DeleteOp
		}
		return old, xsync.UpdateOp
	})
}

// keys reports how many slots are live.
func (m *Memory) keys() int {
	return m.slots.Size()
}

// ── Redis ──

// Redis is a Locker shared by every replica that talks to the same Redis.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	retry  time.Duration
	logger *zap.Logger
}

// NewRedis creates a distributed locker. ttl bounds how long a crashed
// holder can keep the key.
func NewRedis(client *redis.Client, ttl time.Duration, logger *zap.Logger) *Redis {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &Redis{client: client, ttl: ttl, retry: 50 * time.Millisecond, logger: logger}
}

func (r *Redis) Lock(ctx context.Context, key string) (func(), error) {
	ticker := time.NewTicker(r.retry)
	defer ticker.Stop()

	for {
		token, err := r.client.TryLock(ctx, key, r.ttl)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ErrLockTimeout
			}
			return nil, err
		}
		if token != "" {
			return func() {
				// Release even when the request context is already cancelled.
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				if err := r.client.Unlock(ctx, key, token); err != nil {
					r.logger.Warn("release lock failed", zap.String("key", key), zap.Error(err))
				}
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ErrLockTimeout
		case <-ticker.C:
		}
	}
}
