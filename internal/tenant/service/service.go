// Package service manages upstream connection profiles. Each operator account
// owns its configs and has at most one active at a time.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"ixcbridge/internal/bulksync"
	"ixcbridge/internal/tenant/metrics"
	"ixcbridge/internal/tenant/models"
	"ixcbridge/internal/upstream"
	"ixcbridge/pkg/clock"
	id "ixcbridge/pkg/domain"
	dErrors "ixcbridge/pkg/domain-errors"
	"ixcbridge/pkg/platform/sentinel"
)

type Store interface {
	Create(ctx context.Context, cfg *models.TenantConfig) error
	Update(ctx context.Context, cfg *models.TenantConfig) error
	Delete(ctx context.Context, tenantID id.TenantID) error
	FindByID(ctx context.Context, tenantID id.TenantID) (*models.TenantConfig, error)
	ListByOwner(ctx context.Context, owner id.AccountID) ([]*models.TenantConfig, error)
	Activate(ctx context.Context, owner id.AccountID, tenantID id.TenantID) error
	Active(ctx context.Context, owner id.AccountID) (*models.TenantConfig, error)
}

// CatalogCleaner removes a tenant's synchronized customers.
type CatalogCleaner interface {
	DeleteTenant(ctx context.Context, tenantID id.TenantID) error
}

// ConnectionTester probes an upstream with the given profile.
type ConnectionTester interface {
	TestConnection(ctx context.Context, tenant upstream.TenantContext) upstream.ConnectionResult
}

// SyncRunner starts background catalog syncs and reports their state.
type SyncRunner interface {
	Start(ctx context.Context, tenant upstream.TenantContext) error
	Status(tenantID id.TenantID) (bulksync.Status, bool)
	Forget(tenantID id.TenantID)
}

// Transactor runs fn in one transaction carried by ctx.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type noTx struct{}

func (noTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type Service struct {
	store    Store
	catalog  CatalogCleaner
	tester   ConnectionTester
	syncs    SyncRunner
	tx       Transactor
	validate *validator.Validate
	clock    clock.Clock
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Service)

func WithConnectionTester(t ConnectionTester) Option {
	return func(s *Service) {
		s.tester = t
	}
}

func WithSyncRunner(r SyncRunner) Option {
	return func(s *Service) {
		s.syncs = r
	}
}

func WithTransactor(tx Transactor) Option {
	return func(s *Service) {
		s.tx = tx
	}
}

func WithClock(c clock.Clock) Option {
	return func(s *Service) {
		s.clock = c
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(store Store, catalog CatalogCleaner, opts ...Option) *Service {
	s := &Service{
		store:    store,
		catalog:  catalog,
		tx:       noTx{},
		validate: validator.New(validator.WithRequiredStructEnabled()),
		clock:    clock.Real(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ConfigInput is the editable part of a TenantConfig.
type ConfigInput struct {
	DisplayName string `json:"display_name" validate:"required,max=128"`
	BaseURL     string `json:"base_url" validate:"required,http_url"`
	Credential  string `json:"credential" validate:"required"`
}

func (s *Service) validateInput(in *ConfigInput) error {
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	in.BaseURL = strings.TrimRight(strings.TrimSpace(in.BaseURL), "/")
	in.Credential = strings.TrimSpace(in.Credential)
	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, strings.ToLower(fe.Field())+" ("+fe.Tag()+")")
			}
			return dErrors.New(dErrors.CodeValidation, "invalid fields: "+strings.Join(fields, ", "))
		}
		return dErrors.Wrap(err, dErrors.CodeValidation, "invalid tenant config")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, owner id.AccountID, in ConfigInput) (*models.TenantConfig, error) {
	if err := s.validateInput(&in); err != nil {
		return nil, err
	}
	now := s.clock.Now().UTC()
	cfg := &models.TenantConfig{
		ID:          id.TenantID(uuid.New()),
		OwnerID:     owner,
		DisplayName: in.DisplayName,
		BaseURL:     in.BaseURL,
		Credential:  in.Credential,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Create(ctx, cfg); err != nil {
		return nil, translate(err)
	}
	if s.metrics != nil {
		s.metrics.IncrementTenantCreated()
	}
	s.logger.InfoContext(ctx, "tenant config created",
		"tenant_id", cfg.ID.String(),
		"owner_id", owner.String(),
	)
	return cfg, nil
}

// Update edits a config. A blank credential keeps the stored one.
func (s *Service) Update(ctx context.Context, owner id.AccountID, tenantID id.TenantID, in ConfigInput) (*models.TenantConfig, error) {
	cfg, err := s.Get(ctx, owner, tenantID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Credential) == "" {
		in.Credential = cfg.Credential
	}
	if err := s.validateInput(&in); err != nil {
		return nil, err
	}
	cfg.DisplayName = in.DisplayName
	cfg.BaseURL = in.BaseURL
	cfg.Credential = in.Credential
	cfg.UpdatedAt = s.clock.Now().UTC()
	if err := s.store.Update(ctx, cfg); err != nil {
		return nil, translate(err)
	}
	return cfg, nil
}

// Delete removes the config and its synchronized catalog together. It is
// refused while a sync for the tenant is still writing to the catalog.
func (s *Service) Delete(ctx context.Context, owner id.AccountID, tenantID id.TenantID) error {
	if _, err := s.Get(ctx, owner, tenantID); err != nil {
		return err
	}
	if s.syncs != nil {
		if st, ok := s.syncs.Status(tenantID); ok && st.Running {
			return dErrors.New(dErrors.CodeConflict, "a sync is running for this tenant, retry when it finishes")
		}
	}
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.catalog.DeleteTenant(ctx, tenantID); err != nil {
			return err
		}
		return s.store.Delete(ctx, tenantID)
	})
	if err != nil {
		return translate(err)
	}
	if s.syncs != nil {
		s.syncs.Forget(tenantID)
	}
	s.logger.InfoContext(ctx, "tenant config deleted", "tenant_id", tenantID.String())
	return nil
}

// Get returns the config only when owner owns it.
func (s *Service) Get(ctx context.Context, owner id.AccountID, tenantID id.TenantID) (*models.TenantConfig, error) {
	cfg, err := s.store.FindByID(ctx, tenantID)
	if err != nil {
		return nil, translate(err)
	}
	if cfg.OwnerID != owner {
		return nil, dErrors.New(dErrors.CodeNotFound, "tenant config not found")
	}
	return cfg, nil
}

func (s *Service) List(ctx context.Context, owner id.AccountID) ([]*models.TenantConfig, error) {
	out, err := s.store.ListByOwner(ctx, owner)
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// Activate makes tenantID the owner's only active config.
func (s *Service) Activate(ctx context.Context, owner id.AccountID, tenantID id.TenantID) (*models.TenantConfig, error) {
	if err := s.store.Activate(ctx, owner, tenantID); err != nil {
		return nil, translate(err)
	}
	s.logger.InfoContext(ctx, "tenant config activated",
		"tenant_id", tenantID.String(),
		"owner_id", owner.String(),
	)
	return s.Get(ctx, owner, tenantID)
}

// Active returns the owner's active config, or a not_found error when none is.
func (s *Service) Active(ctx context.Context, owner id.AccountID) (*models.TenantConfig, error) {
	cfg, err := s.store.Active(ctx, owner)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "no active tenant configured")
		}
		return nil, translate(err)
	}
	return cfg, nil
}

// TestConnection probes the upstream with the stored profile.
func (s *Service) TestConnection(ctx context.Context, owner id.AccountID, tenantID id.TenantID) (upstream.ConnectionResult, error) {
	if s.tester == nil {
		return upstream.ConnectionResult{}, dErrors.New(dErrors.CodeUnavailable, "connection testing is not configured")
	}
	cfg, err := s.Get(ctx, owner, tenantID)
	if err != nil {
		return upstream.ConnectionResult{}, err
	}
	result := s.tester.TestConnection(ctx, cfg.UpstreamContext())
	if s.metrics != nil {
		s.metrics.ObserveConnectionTest(result.OK)
	}
	return result, nil
}

// Sync starts a background catalog sync for the config.
func (s *Service) Sync(ctx context.Context, owner id.AccountID, tenantID id.TenantID) error {
	if s.syncs == nil {
		return dErrors.New(dErrors.CodeUnavailable, "sync is not configured")
	}
	cfg, err := s.Get(ctx, owner, tenantID)
	if err != nil {
		return err
	}
	if err := s.syncs.Start(ctx, cfg.UpstreamContext()); err != nil {
		if errors.Is(err, bulksync.ErrSyncInProgress) {
			return dErrors.Wrap(err, dErrors.CodeConflict, "a sync is already running for this tenant")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to start sync")
	}
	return nil
}

// SyncStatus reports the tenant's current or last sync.
func (s *Service) SyncStatus(ctx context.Context, owner id.AccountID, tenantID id.TenantID) (*bulksync.Status, error) {
	if s.syncs == nil {
		return nil, dErrors.New(dErrors.CodeUnavailable, "sync is not configured")
	}
	if _, err := s.Get(ctx, owner, tenantID); err != nil {
		return nil, err
	}
	st, ok := s.syncs.Status(tenantID)
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "no sync has run for this tenant")
	}
	return &st, nil
}

func translate(err error) error {
	var de *dErrors.Error
	switch {
	case errors.As(err, &de):
		return err
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, "tenant config not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, "a tenant config with this name already exists")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "tenant config operation failed")
	}
}
