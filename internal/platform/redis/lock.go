package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"

	"ixcbridge/pkg/platform/sentinel"
)

// Locker hands out short-lived exclusive locks keyed by name.
type Locker struct {
	client *redislock.Client
	ttl    time.Duration
	prefix string
}

// NewLocker builds a Locker whose locks expire after ttl unless released.
func NewLocker(c *Client, ttl time.Duration) *Locker {
	return &Locker{
		client: redislock.New(c.Client),
		ttl:    ttl,
		prefix: "ixcbridge:lock:",
	}
}

// Acquire obtains the named lock without waiting. A lock already held
// elsewhere yields sentinel.ErrConflict.
func (l *Locker) Acquire(ctx context.Context, key string) (func(context.Context) error, error) {
	lock, err := l.client.Obtain(ctx, l.prefix+key, l.ttl, nil)
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, fmt.Errorf("lock %s: %w", key, sentinel.ErrConflict)
		}
		return nil, fmt.Errorf("obtain lock %s: %w", key, err)
	}
	return func(ctx context.Context) error {
		if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			return fmt.Errorf("release lock %s: %w", key, err)
		}
		return nil
	}, nil
}
