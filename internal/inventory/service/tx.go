package service

import (
	"context"
	"sync"
	"time"

	dErrors "ixcbridge/pkg/domain-errors"
)

// StoreTx provides a transactional boundary for multi-step equipment mutations
// (state change plus its history entry). Implementations may wrap a database
// transaction or, in-memory, a coarse lock.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, store Store) error) error
}

// defaultTxTimeout is the maximum duration for an equipment transaction.
const defaultTxTimeout = 5 * time.Second

type lockedTx struct {
	mu      sync.Mutex
	store   Store
	timeout time.Duration
}

// NewLockedTx serializes transactions over store with a single mutex.
func NewLockedTx(store Store) StoreTx {
	return &lockedTx{store: store}
}

func (t *lockedTx) RunInTx(ctx context.Context, fn func(ctx context.Context, store Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Check again after acquiring lock
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	return fn(ctx, t.store)
}
