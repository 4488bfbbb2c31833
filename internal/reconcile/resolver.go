// Package reconcile decides, per customer, whether deployed equipment still
// sits behind an active upstream service.
//
// The customer id stored on equipment is a local copy and is not trusted:
// every check re-derives the upstream id from the customer's name in the
// synchronized catalog, and only queries services with the resolved id.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"ixcbridge/internal/inventory/models"
	"ixcbridge/internal/reconcile/metrics"
	"ixcbridge/internal/upstream"
	id "ixcbridge/pkg/domain"
	"ixcbridge/pkg/platform/sentinel"
)

// UnknownCustomerName labels alerts for equipment without a stored name.
const UnknownCustomerName = "Unknown"

// CatalogLookup resolves a legal name to an upstream customer id.
// It returns sentinel.ErrNotFound when the catalog has no exact match.
type CatalogLookup interface {
	FindIDByName(ctx context.Context, tenantID id.TenantID, name string) (string, error)
}

// ServiceFetcher lists a customer's upstream service contracts.
type ServiceFetcher interface {
	ServicesByCustomer(ctx context.Context, tenant upstream.TenantContext, customerID string) ([]upstream.ServiceContract, error)
}

// LinkCorrector rewrites an equipment's stored customer link.
type LinkCorrector interface {
	CorrectLink(ctx context.Context, equipmentID int64, customerID, customerName string) error
}

// Verdict is the outcome of one customer check.
type Verdict struct {
	CachedID   string
	ResolvedID string
	Name       string
	// Skipped is set when the customer is not in the synchronized catalog;
	// no upstream call was made and no alert is raised.
	Skipped bool
	// Reason is nil when at least one service is active.
	Reason *Reason
}

// Alert flags one piece of equipment deployed at a customer without an active service.
type Alert struct {
	Equipment          *models.Equipment `json:"equipment"`
	CustomerName       string            `json:"customer_name"`
	CustomerID         string            `json:"customer_id"`
	UpstreamCustomerID string            `json:"upstream_customer_id"`
	Reason             Reason            `json:"reason"`
}

// CustomerFunc is called before each customer is checked.
type CustomerFunc func(name string)

type Resolver struct {
	catalog     CatalogLookup
	services    ServiceFetcher
	corrector   LinkCorrector
	concurrency int
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

type Option func(*Resolver)

// WithConcurrency bounds how many customers are checked at once. The default is 1.
func WithConcurrency(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithLinkCorrector enables rewriting stale equipment links to the resolved id.
func WithLinkCorrector(c LinkCorrector) Option {
	return func(r *Resolver) {
		r.corrector = c
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

func New(catalog CatalogLookup, services ServiceFetcher, opts ...Option) *Resolver {
	r := &Resolver{
		catalog:     catalog,
		services:    services,
		concurrency: 1,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Check resolves the customer of eq and classifies its services.
func (r *Resolver) Check(ctx context.Context, tenant upstream.TenantContext, eq *models.Equipment) (*Verdict, error) {
	v := &Verdict{CachedID: eq.CustomerID(), Name: eq.CustomerName()}

	if v.Name == "" {
		v.ResolvedID = v.CachedID
	} else {
		resolved, err := r.catalog.FindIDByName(ctx, tenant.TenantID, v.Name)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				v.Skipped = true
				return v, nil
			}
			return nil, fmt.Errorf("resolve customer %q: %w", v.Name, err)
		}
		v.ResolvedID = resolved
	}
	if v.ResolvedID == "" {
		v.Skipped = true
		return v, nil
	}

	services, err := r.services.ServicesByCustomer(ctx, tenant, v.ResolvedID)
	if err != nil {
		return nil, fmt.Errorf("fetch services for customer %s: %w", v.ResolvedID, err)
	}
	v.Reason = Classify(services)
	return v, nil
}

type customerGroup struct {
	cachedID  string
	equipment []*models.Equipment
	alerts    []Alert
}

// CheckAll checks each distinct customer among equipment once and returns
// alerts in input order. Failures for one customer are logged and do not
// affect the others.
func (r *Resolver) CheckAll(ctx context.Context, tenant upstream.TenantContext, equipment []*models.Equipment, onCustomer CustomerFunc) []Alert {
	groups := groupByCustomer(equipment)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for _, grp := range groups {
		g.Go(func() error {
			grp.alerts = r.checkGroup(gctx, tenant, grp, onCustomer)
			return nil
		})
	}
	_ = g.Wait()

	var alerts []Alert
	for _, grp := range groups {
		alerts = append(alerts, grp.alerts...)
	}
	return alerts
}

func (r *Resolver) checkGroup(ctx context.Context, tenant upstream.TenantContext, grp *customerGroup, onCustomer CustomerFunc) []Alert {
	lead := grp.equipment[0]
	if onCustomer != nil {
		onCustomer(lead.CustomerName())
	}

	v, err := r.Check(ctx, tenant, lead)
	if err != nil {
		r.logger.WarnContext(ctx, "customer check failed",
			"tenant_id", tenant.TenantID.String(),
			"customer_id", grp.cachedID,
			"error", err,
		)
		r.observe("error")
		return nil
	}
	if v.Skipped {
		r.logger.DebugContext(ctx, "customer not in catalog, skipped",
			"tenant_id", tenant.TenantID.String(),
			"customer_id", grp.cachedID,
		)
		r.observe("skipped")
		return nil
	}

	if r.corrector != nil && v.ResolvedID != v.CachedID {
		r.correctLinks(ctx, tenant, grp, v)
	}

	if v.Reason == nil {
		r.observe("active")
		return nil
	}
	r.observe("alert")

	alerts := make([]Alert, 0, len(grp.equipment))
	for _, eq := range grp.equipment {
		name := eq.CustomerName()
		if name == "" {
			name = UnknownCustomerName
		}
		alerts = append(alerts, Alert{
			Equipment:          eq,
			CustomerName:       name,
			CustomerID:         grp.cachedID,
			UpstreamCustomerID: v.ResolvedID,
			Reason:             *v.Reason,
		})
	}
	return alerts
}

func (r *Resolver) correctLinks(ctx context.Context, tenant upstream.TenantContext, grp *customerGroup, v *Verdict) {
	for _, eq := range grp.equipment {
		if err := r.corrector.CorrectLink(ctx, eq.ID, v.ResolvedID, v.Name); err != nil {
			r.logger.WarnContext(ctx, "equipment link correction failed",
				"tenant_id", tenant.TenantID.String(),
				"equipment_id", eq.ID,
				"error", err,
			)
			continue
		}
		r.logger.InfoContext(ctx, "equipment link corrected",
			"tenant_id", tenant.TenantID.String(),
			"equipment_id", eq.ID,
			"from", v.CachedID,
			"to", v.ResolvedID,
		)
	}
}

func (r *Resolver) observe(outcome string) {
	if r.metrics != nil {
		r.metrics.IncChecked(outcome)
	}
}

// groupByCustomer keys on the cached id, preserving first-seen order.
func groupByCustomer(equipment []*models.Equipment) []*customerGroup {
	index := make(map[string]*customerGroup)
	var groups []*customerGroup
	for _, eq := range equipment {
		if eq == nil {
			continue
		}
		key := eq.CustomerID()
		grp, ok := index[key]
		if !ok {
			grp = &customerGroup{cachedID: key}
			index[key] = grp
			groups = append(groups, grp)
		}
		grp.equipment = append(grp.equipment, eq)
	}
	return groups
}
