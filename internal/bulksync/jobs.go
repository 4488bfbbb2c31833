package bulksync

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"ixcbridge/internal/upstream"
	id "ixcbridge/pkg/domain"
)

// ErrSyncInProgress is returned when a tenant already has a sync running.
var ErrSyncInProgress = errors.New("sync already in progress for tenant")

// Status is the last known state of a tenant's sync.
type Status struct {
	TenantID   id.TenantID `json:"tenant_id"`
	Running    bool        `json:"running"`
	Fetched    int         `json:"fetched"`
	Total      int         `json:"total"`
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt *time.Time  `json:"finished_at,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Jobs admits at most one sync per tenant and remembers each tenant's last run.
type Jobs struct {
	orchestrator *Orchestrator
	logger       *slog.Logger

	mu     sync.Mutex
	states map[id.TenantID]*Status
	wg     sync.WaitGroup
}

func NewJobs(o *Orchestrator, logger *slog.Logger) *Jobs {
	if logger == nil {
		logger = slog.Default()
	}
	return &Jobs{
		orchestrator: o,
		logger:       logger,
		states:       make(map[id.TenantID]*Status),
	}
}

// Run syncs tenant in the caller's goroutine, forwarding progress.
func (j *Jobs) Run(ctx context.Context, tenant upstream.TenantContext, progress ProgressFunc) (int, error) {
	if err := j.begin(tenant.TenantID); err != nil {
		return 0, err
	}
	return j.run(ctx, tenant, progress)
}

// Start runs a sync in the background. The run is detached from ctx
// cancellation so it survives the request that started it.
func (j *Jobs) Start(ctx context.Context, tenant upstream.TenantContext) error {
	if err := j.begin(tenant.TenantID); err != nil {
		return err
	}
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		_, _ = j.run(context.WithoutCancel(ctx), tenant, nil)
	}()
	return nil
}

// Status returns a copy of the tenant's last known state.
func (j *Jobs) Status(tenantID id.TenantID) (Status, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	st, ok := j.states[tenantID]
	if !ok {
		return Status{}, false
	}
	return *st, true
}

// Forget drops the remembered state of a tenant that is not syncing.
func (j *Jobs) Forget(tenantID id.TenantID) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if st, ok := j.states[tenantID]; ok && !st.Running {
		delete(j.states, tenantID)
	}
}

// Wait blocks until background runs started with Start have finished.
func (j *Jobs) Wait() {
	j.wg.Wait()
}

func (j *Jobs) begin(tenantID id.TenantID) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if st, ok := j.states[tenantID]; ok && st.Running {
		return ErrSyncInProgress
	}
	j.states[tenantID] = &Status{
		TenantID:  tenantID,
		Running:   true,
		StartedAt: j.orchestrator.clock.Now().UTC(),
	}
	return nil
}

func (j *Jobs) run(ctx context.Context, tenant upstream.TenantContext, progress ProgressFunc) (int, error) {
	fetched, err := j.orchestrator.Run(ctx, tenant, func(fetched, total int) {
		j.mu.Lock()
		if st, ok := j.states[tenant.TenantID]; ok {
			st.Fetched, st.Total = fetched, total
		}
		j.mu.Unlock()
		if progress != nil {
			progress(fetched, total)
		}
	})

	j.mu.Lock()
	defer j.mu.Unlock()
	if st, ok := j.states[tenant.TenantID]; ok {
		finished := j.orchestrator.clock.Now().UTC()
		st.Running = false
		st.Fetched = fetched
		st.FinishedAt = &finished
		st.Error = ""
		if err != nil {
			st.Error = err.Error()
		}
	}
	return fetched, err
}
