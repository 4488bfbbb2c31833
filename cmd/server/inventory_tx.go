package main

import (
	"context"
	"database/sql"
	"time"

	inventoryservice "ixcbridge/internal/inventory/service"
	"ixcbridge/internal/platform/postgres"
	dErrors "ixcbridge/pkg/domain-errors"
)

const defaultInventoryTxTimeout = 5 * time.Second

// inventoryPostgresTx runs equipment mutations in one database transaction.
// The store joins the transaction carried by ctx.
type inventoryPostgresTx struct {
	db      *sql.DB
	store   inventoryservice.Store
	timeout time.Duration
}

func newInventoryPostgresTx(db *sql.DB, store inventoryservice.Store) *inventoryPostgresTx {
	return &inventoryPostgresTx{db: db, store: store}
}

func (t *inventoryPostgresTx) RunInTx(ctx context.Context, fn func(ctx context.Context, store inventoryservice.Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultInventoryTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	return postgres.RunInTx(ctx, t.db, func(ctx context.Context) error {
		return fn(ctx, t.store)
	})
}
