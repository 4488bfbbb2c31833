// Package monitor runs the recurring contract check: sync the active tenant's
// customer catalog, reconcile deployed equipment against upstream services and
// keep the resulting alert set for operators.
package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"ixcbridge/internal/bulksync"
	"ixcbridge/internal/inventory/models"
	"ixcbridge/internal/monitor/metrics"
	"ixcbridge/internal/reconcile"
	"ixcbridge/internal/upstream"
	"ixcbridge/pkg/clock"
	id "ixcbridge/pkg/domain"
	"ixcbridge/pkg/platform/sentinel"
)

const (
	DefaultWarmUp   = 10 * time.Second
	DefaultInterval = 30 * time.Minute
)

var (
	// ErrRunInProgress is returned when a run is requested while another is in flight.
	ErrRunInProgress = errors.New("contract monitor run already in progress")
	// ErrNoActiveTenant is returned by a TenantSource with nothing to monitor.
	ErrNoActiveTenant = errors.New("no active tenant configured")
)

const (
	outcomeSuccess   = "success"
	outcomeNoTenant  = "no_tenant"
	outcomeSyncError = "sync_error"
	outcomeLocked    = "locked"
	outcomeError     = "error"
)

// TenantSource yields the tenant to monitor, or ErrNoActiveTenant.
type TenantSource interface {
	ActiveTenant(ctx context.Context) (upstream.TenantContext, error)
}

// Syncer refreshes a tenant's customer catalog.
type Syncer interface {
	Run(ctx context.Context, tenant upstream.TenantContext, progress bulksync.ProgressFunc) (int, error)
}

// EquipmentLister lists equipment deployed at customers.
type EquipmentLister interface {
	ListDeployed(ctx context.Context) ([]*models.Equipment, error)
}

// Checker reconciles deployed equipment against upstream services.
type Checker interface {
	CheckAll(ctx context.Context, tenant upstream.TenantContext, equipment []*models.Equipment, onCustomer reconcile.CustomerFunc) []reconcile.Alert
}

// Locker guards a tenant's run across server replicas. Acquire returns
// sentinel.ErrConflict when another holder has the lock.
type Locker interface {
	Acquire(ctx context.Context, key string) (func(context.Context) error, error)
}

// Broadcaster fans state changes out to live subscribers.
type Broadcaster interface {
	Broadcast(v any)
}

// Publisher emits each published alert set as an event.
type Publisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

// AlertEvent is the payload published after every completed cycle.
type AlertEvent struct {
	TenantID   id.TenantID       `json:"tenant_id"`
	CheckedAt  time.Time         `json:"checked_at"`
	AlertCount int               `json:"alert_count"`
	Alerts     []reconcile.Alert `json:"alerts"`
}

type Monitor struct {
	tenants   TenantSource
	syncer    Syncer
	equipment EquipmentLister
	checker   Checker
	locker    Locker
	feed      Broadcaster
	publisher Publisher
	clock     clock.Clock
	logger    *slog.Logger
	metrics   *metrics.Metrics
	warmUp    time.Duration
	interval  time.Duration

	inFlight atomic.Bool
	runs     sync.WaitGroup

	mu sync.RWMutex
	st state

	lifecycle sync.Mutex
	timer     clock.Timer
	ticker    clock.Ticker
	stop      chan struct{}
	loopDone  chan struct{}
}

type Option func(*Monitor)

func WithLocker(l Locker) Option {
	return func(m *Monitor) {
		m.locker = l
	}
}

func WithFeed(b Broadcaster) Option {
	return func(m *Monitor) {
		m.feed = b
	}
}

func WithPublisher(p Publisher) Option {
	return func(m *Monitor) {
		m.publisher = p
	}
}

func WithClock(c clock.Clock) Option {
	return func(m *Monitor) {
		m.clock = c
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *Monitor) {
		m.logger = logger
	}
}

func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Monitor) {
		m.metrics = mt
	}
}

// WithSchedule overrides the warm-up delay and the recurring interval.
// Non-positive values keep the defaults.
func WithSchedule(warmUp, interval time.Duration) Option {
	return func(m *Monitor) {
		if warmUp > 0 {
			m.warmUp = warmUp
		}
		if interval > 0 {
			m.interval = interval
		}
	}
}

func New(tenants TenantSource, syncer Syncer, equipment EquipmentLister, checker Checker, opts ...Option) *Monitor {
	m := &Monitor{
		tenants:   tenants,
		syncer:    syncer,
		equipment: equipment,
		checker:   checker,
		clock:     clock.Real(),
		logger:    slog.Default(),
		warmUp:    DefaultWarmUp,
		interval:  DefaultInterval,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start schedules the first run after the warm-up delay and then one run per
// interval. Calling Start on a started monitor does nothing.
func (m *Monitor) Start(ctx context.Context) {
	m.lifecycle.Lock()
	defer m.lifecycle.Unlock()
	if m.stop != nil {
		return
	}

	runCtx := context.WithoutCancel(ctx)
	stop := make(chan struct{})
	done := make(chan struct{})
	warm := make(chan struct{}, 1)
	m.stop, m.loopDone = stop, done
	m.timer = m.clock.AfterFunc(m.warmUp, func() {
		select {
		case warm <- struct{}{}:
		default:
		}
	})
	ticker := m.clock.NewTicker(m.interval)
	m.ticker = ticker

	go func() {
		defer close(done)
		for {
			select {
			case <-warm:
				m.scheduled(runCtx)
			case <-ticker.C():
				m.scheduled(runCtx)
			case <-stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	m.logger.InfoContext(ctx, "contract monitor started",
		"warm_up", m.warmUp.String(),
		"interval", m.interval.String(),
	)
}

// Stop cancels the warm-up timer and the recurring schedule. A run already in
// flight is left to complete; use Wait to block on it.
func (m *Monitor) Stop() {
	m.lifecycle.Lock()
	if m.stop == nil {
		m.lifecycle.Unlock()
		return
	}
	m.timer.Stop()
	m.ticker.Stop()
	close(m.stop)
	done := m.loopDone
	m.stop, m.loopDone, m.timer, m.ticker = nil, nil, nil, nil
	m.lifecycle.Unlock()
	<-done
}

// Wait blocks until no run is in flight.
func (m *Monitor) Wait() {
	m.runs.Wait()
}

// Run executes one cycle synchronously. It returns ErrRunInProgress when
// another cycle is in flight.
func (m *Monitor) Run(ctx context.Context) error {
	if !m.begin() {
		return ErrRunInProgress
	}
	defer m.end()
	m.cycle(ctx)
	return nil
}

// Trigger starts one cycle in the background, detached from ctx cancellation.
func (m *Monitor) Trigger(ctx context.Context) error {
	if !m.begin() {
		return ErrRunInProgress
	}
	runCtx := context.WithoutCancel(ctx)
	go func() {
		defer m.end()
		m.cycle(runCtx)
	}()
	return nil
}

// Snapshot returns a copy of the current state.
func (m *Monitor) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.st.snapshot()
}

// Dismiss hides the alert panel until a later cycle produces alerts again.
func (m *Monitor) Dismiss() Snapshot {
	return m.update(func(s *state) {
		s.dismissed = true
	})
}

func (m *Monitor) begin() bool {
	if !m.inFlight.CompareAndSwap(false, true) {
		return false
	}
	m.runs.Add(1)
	return true
}

func (m *Monitor) end() {
	m.inFlight.Store(false)
	m.runs.Done()
}

// scheduled claims the run slot on the loop goroutine and runs the cycle off
// it, so Stop never waits on a cycle.
func (m *Monitor) scheduled(ctx context.Context) {
	if !m.begin() {
		m.logger.DebugContext(ctx, "scheduled contract check skipped", "error", ErrRunInProgress)
		return
	}
	go func() {
		defer m.end()
		m.cycle(ctx)
	}()
}

func (m *Monitor) cycle(ctx context.Context) {
	start := m.clock.Now()
	m.update(func(s *state) {
		s.running = true
		s.statusLine = "Starting automatic sync..."
	})

	outcome := m.runCycle(ctx)

	m.update(func(s *state) {
		s.running = false
	})
	if m.metrics != nil {
		m.metrics.ObserveCycle(outcome, m.clock.Now().Sub(start))
	}
}

func (m *Monitor) runCycle(ctx context.Context) string {
	tenant, err := m.tenants.ActiveTenant(ctx)
	if err != nil {
		if errors.Is(err, ErrNoActiveTenant) {
			m.logger.InfoContext(ctx, "contract check skipped, no active tenant")
			m.setStatus("No active tenant configured.")
			return outcomeNoTenant
		}
		m.logger.ErrorContext(ctx, "failed to load active tenant", "error", err)
		m.setStatus("Could not load the active tenant.")
		return outcomeError
	}
	tenantID := tenant.TenantID.String()

	if m.locker != nil {
		release, err := m.locker.Acquire(ctx, "monitor:"+tenantID)
		switch {
		case errors.Is(err, sentinel.ErrConflict):
			m.logger.InfoContext(ctx, "contract check running on another instance", "tenant_id", tenantID)
			m.setStatus("Another instance is checking contracts.")
			return outcomeLocked
		case err != nil:
			m.logger.WarnContext(ctx, "run lock unavailable, continuing without it",
				"tenant_id", tenantID,
				"error", err,
			)
		default:
			defer func() {
				if err := release(context.WithoutCancel(ctx)); err != nil {
					m.logger.WarnContext(ctx, "failed to release run lock", "tenant_id", tenantID, "error", err)
				}
			}()
		}
	}

	m.setStatus("Syncing customers...")
	synced, err := m.syncer.Run(ctx, tenant, func(fetched, total int) {
		m.setStatus(fmt.Sprintf("Syncing customers: %d / %d", fetched, total))
	})
	if err != nil {
		m.logger.ErrorContext(ctx, "contract check sync failed",
			"tenant_id", tenantID,
			"error", err,
		)
		m.setStatus("Sync error, retry in " + formatInterval(m.interval))
		return outcomeSyncError
	}
	m.setStatus(fmt.Sprintf("%d customers synced. Checking contracts...", synced))

	deployed, err := m.equipment.ListDeployed(ctx)
	if err != nil {
		m.logger.ErrorContext(ctx, "failed to list deployed equipment",
			"tenant_id", tenantID,
			"error", err,
		)
		m.setStatus("Equipment check failed, retry in " + formatInterval(m.interval))
		return outcomeError
	}
	if len(deployed) == 0 {
		m.publish(ctx, tenant, nil, fmt.Sprintf("Sync OK (%d customers). No equipment deployed.", synced))
		return outcomeSuccess
	}

	alerts := m.checker.CheckAll(ctx, tenant, deployed, func(name string) {
		if name == "" {
			name = reconcile.UnknownCustomerName
		}
		m.setStatus("Checking contracts for customer " + name + "...")
	})
	m.publish(ctx, tenant, alerts, fmt.Sprintf("Sync complete. %d customers, %d equipment checked, %d alerts.",
		synced, len(deployed), len(alerts)))
	m.logger.InfoContext(ctx, "contract check completed",
		"tenant_id", tenantID,
		"customers_synced", synced,
		"equipment_checked", len(deployed),
		"alerts", len(alerts),
	)
	return outcomeSuccess
}

// publish replaces the alert set in one step. New alerts re-open a dismissed
// panel; an empty set clears it.
func (m *Monitor) publish(ctx context.Context, tenant upstream.TenantContext, alerts []reconcile.Alert, line string) {
	now := m.clock.Now()
	m.update(func(s *state) {
		if len(alerts) > 0 {
			s.alerts = alerts
			s.dismissed = false
		} else {
			s.alerts = nil
		}
		s.statusLine = line
		s.lastSuccess = &now
	})
	if m.metrics != nil {
		m.metrics.SetAlerts(len(alerts))
	}
	if m.publisher == nil {
		return
	}

	if alerts == nil {
		alerts = []reconcile.Alert{}
	}
	payload, err := json.Marshal(AlertEvent{
		TenantID:   tenant.TenantID,
		CheckedAt:  now,
		AlertCount: len(alerts),
		Alerts:     alerts,
	})
	if err != nil {
		m.logger.ErrorContext(ctx, "failed to encode alert event", "error", err)
		return
	}
	if err := m.publisher.Publish(ctx, tenant.TenantID.String(), payload); err != nil {
		m.logger.WarnContext(ctx, "failed to publish alert event",
			"tenant_id", tenant.TenantID.String(),
			"error", err,
		)
	}
}

func (m *Monitor) setStatus(line string) {
	m.update(func(s *state) {
		s.statusLine = line
	})
}

func (m *Monitor) update(fn func(*state)) Snapshot {
	m.mu.Lock()
	fn(&m.st)
	snap := m.st.snapshot()
	m.mu.Unlock()

	if m.feed != nil {
		m.feed.Broadcast(snap)
	}
	return snap
}

func formatInterval(d time.Duration) string {
	if d >= time.Minute && d%time.Minute == 0 {
		return fmt.Sprintf("%d min", int(d/time.Minute))
	}
	return d.String()
}
