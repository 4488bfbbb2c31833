// Package bulksync copies a tenant's active upstream customers into the local
// catalog, page by page.
//
// The first page of every run is written with replace semantics, so a run
// that fails later still leaves the tenant with fresh page-one data and no
// rows from an older run. Later pages accumulate and are appended once the
// batch threshold is reached, and once more at the end of the run.
package bulksync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ixcbridge/internal/bulksync/metrics"
	"ixcbridge/internal/catalog/models"
	"ixcbridge/internal/upstream"
	"ixcbridge/pkg/clock"
	id "ixcbridge/pkg/domain"
)

const (
	DefaultPageSize  = 100
	DefaultBatchSize = 500
)

// CustomerPager fetches one page of the active-customer listing.
type CustomerPager interface {
	ActiveCustomersPage(ctx context.Context, tenant upstream.TenantContext, page, pageSize int) (*upstream.CustomerPage, error)
}

// CatalogWriter persists a batch. firstBatch replaces the tenant's catalog.
type CatalogWriter interface {
	ReplaceAndAppend(ctx context.Context, tenantID id.TenantID, records []*models.Customer, firstBatch bool) error
}

// ProgressFunc receives (fetched so far, reported grand total) after every
// page. A total of 0 means the upstream has not reported one.
type ProgressFunc func(fetched, total int)

type Orchestrator struct {
	pager     CustomerPager
	writer    CatalogWriter
	pageSize  int
	batchSize int
	clock     clock.Clock
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

type Option func(*Orchestrator)

func WithPageSize(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.pageSize = n
		}
	}
}

func WithBatchSize(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.batchSize = n
		}
	}
}

func WithClock(c clock.Clock) Option {
	return func(o *Orchestrator) {
		o.clock = c
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

func New(pager CustomerPager, writer CatalogWriter, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		pager:     pager,
		writer:    writer,
		pageSize:  DefaultPageSize,
		batchSize: DefaultBatchSize,
		clock:     clock.Real(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run syncs every active customer of tenant and returns how many were fetched.
// A page or write failure aborts the run; batches already written stay.
func (o *Orchestrator) Run(ctx context.Context, tenant upstream.TenantContext, progress ProgressFunc) (int, error) {
	start := o.clock.Now()
	syncedAt := start.UTC()

	o.logger.InfoContext(ctx, "customer sync started", "tenant_id", tenant.TenantID.String())

	var (
		page       = 1
		grandTotal int
		fetched    int
		batch      []*models.Customer
		firstBatch = true
	)

	for {
		if err := ctx.Err(); err != nil {
			return o.fail(ctx, tenant, fetched, start, err)
		}

		result, err := o.pager.ActiveCustomersPage(ctx, tenant, page, o.pageSize)
		if err != nil {
			return o.fail(ctx, tenant, fetched, start, fmt.Errorf("fetch page %d: %w", page, err))
		}
		// a blank total keeps the last one reported
		if result.Total > 0 {
			grandTotal = result.Total
		}
		for _, c := range result.Customers {
			batch = append(batch, ToCatalog(tenant.TenantID, c, syncedAt))
		}
		fetched += len(result.Customers)

		if progress != nil {
			progress(fetched, grandTotal)
		}

		if firstBatch || len(batch) >= o.batchSize {
			if err := o.writer.ReplaceAndAppend(ctx, tenant.TenantID, batch, firstBatch); err != nil {
				return o.fail(ctx, tenant, fetched, start, fmt.Errorf("write batch after page %d: %w", page, err))
			}
			firstBatch = false
			batch = nil
		}

		if len(result.Customers) < o.pageSize || (grandTotal > 0 && fetched >= grandTotal) {
			break
		}
		page++
	}

	if len(batch) > 0 {
		if err := o.writer.ReplaceAndAppend(ctx, tenant.TenantID, batch, false); err != nil {
			return o.fail(ctx, tenant, fetched, start, fmt.Errorf("write final batch: %w", err))
		}
	}

	elapsed := o.clock.Now().Sub(start)
	o.logger.InfoContext(ctx, "customer sync finished",
		"tenant_id", tenant.TenantID.String(),
		"fetched", fetched,
		"pages", page,
		"duration_ms", elapsed.Milliseconds(),
	)
	if o.metrics != nil {
		o.metrics.ObserveRun("ok", fetched, elapsed)
	}
	return fetched, nil
}

func (o *Orchestrator) fail(ctx context.Context, tenant upstream.TenantContext, fetched int, start time.Time, err error) (int, error) {
	o.logger.ErrorContext(ctx, "customer sync failed",
		"tenant_id", tenant.TenantID.String(),
		"fetched", fetched,
		"error", err,
	)
	if o.metrics != nil {
		o.metrics.ObserveRun("error", fetched, o.clock.Now().Sub(start))
	}
	return fetched, err
}
