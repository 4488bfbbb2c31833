package bulksync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ixcbridge/internal/catalog/store"
	"ixcbridge/internal/upstream"
	"ixcbridge/pkg/clock"
	id "ixcbridge/pkg/domain"
)

// gatedPager blocks the first page until release is closed.
type gatedPager struct {
	started chan struct{}
	release chan struct{}
	err     error
}

func (p *gatedPager) ActiveCustomersPage(_ context.Context, _ upstream.TenantContext, _, _ int) (*upstream.CustomerPage, error) {
	close(p.started)
	<-p.release
	if p.err != nil {
		return nil, p.err
	}
	return &upstream.CustomerPage{Total: 3, Customers: customers(0, 3)}, nil
}

func newJobs(p CustomerPager) *Jobs {
	fake := clock.NewFake(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	return NewJobs(New(p, store.NewInMemory(), WithLogger(discard), WithClock(fake)), discard)
}

func TestJobs_RejectsOverlappingRuns(t *testing.T) {
	pager := &gatedPager{started: make(chan struct{}), release: make(chan struct{})}
	jobs := newJobs(pager)
	tenant := upstream.TenantContext{TenantID: id.TenantID(uuid.New())}

	require.NoError(t, jobs.Start(context.Background(), tenant))
	<-pager.started

	st, ok := jobs.Status(tenant.TenantID)
	require.True(t, ok)
	assert.True(t, st.Running)

	require.ErrorIs(t, jobs.Start(context.Background(), tenant), ErrSyncInProgress)
	_, err := jobs.Run(context.Background(), tenant, nil)
	require.ErrorIs(t, err, ErrSyncInProgress)

	close(pager.release)
	jobs.Wait()

	st, ok = jobs.Status(tenant.TenantID)
	require.True(t, ok)
	assert.False(t, st.Running)
	assert.Equal(t, 3, st.Fetched)
	assert.Equal(t, 3, st.Total)
	assert.NotNil(t, st.FinishedAt)
	assert.Empty(t, st.Error)
}

func TestJobs_StartOutlivesRequestContext(t *testing.T) {
	pager := &gatedPager{started: make(chan struct{}), release: make(chan struct{})}
	jobs := newJobs(pager)
	tenant := upstream.TenantContext{TenantID: id.TenantID(uuid.New())}

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, jobs.Start(ctx, tenant))
	<-pager.started
	cancel()
	close(pager.release)
	jobs.Wait()

	st, _ := jobs.Status(tenant.TenantID)
	assert.Empty(t, st.Error)
	assert.Equal(t, 3, st.Fetched)
}

func TestJobs_RecordsFailure(t *testing.T) {
	pager := &gatedPager{started: make(chan struct{}), release: make(chan struct{}), err: errors.New("relay down")}
	close(pager.release)
	jobs := newJobs(pager)
	tenant := upstream.TenantContext{TenantID: id.TenantID(uuid.New())}

	var calls int
	_, err := jobs.Run(context.Background(), tenant, func(int, int) { calls++ })
	require.Error(t, err)
	assert.Zero(t, calls)

	st, ok := jobs.Status(tenant.TenantID)
	require.True(t, ok)
	assert.False(t, st.Running)
	assert.Contains(t, st.Error, "relay down")

	jobs.Forget(tenant.TenantID)
	_, ok = jobs.Status(tenant.TenantID)
	assert.False(t, ok)
}
