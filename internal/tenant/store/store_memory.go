package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"ixcbridge/internal/tenant/models"
	id "ixcbridge/pkg/domain"
	"ixcbridge/pkg/platform/sentinel"
)

// InMemory stores tenant configs in a map guarded by one lock, which also
// makes Activate atomic.
type InMemory struct {
	mu      sync.RWMutex
	configs map[id.TenantID]*models.TenantConfig
}

func NewInMemory() *InMemory {
	return &InMemory{configs: make(map[id.TenantID]*models.TenantConfig)}
}

func (s *InMemory) Create(_ context.Context, cfg *models.TenantConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.configs[cfg.ID]; ok {
		return sentinel.ErrConflict
	}
	if s.nameTaken(cfg) {
		return sentinel.ErrConflict
	}
	c := *cfg
	s.configs[cfg.ID] = &c
	return nil
}

// Update replaces the editable fields. The Active flag only changes through Activate.
func (s *InMemory) Update(_ context.Context, cfg *models.TenantConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.configs[cfg.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if s.nameTaken(cfg) {
		return sentinel.ErrConflict
	}
	c := *cfg
	c.Active = current.Active
	s.configs[cfg.ID] = &c
	return nil
}

func (s *InMemory) nameTaken(cfg *models.TenantConfig) bool {
	for _, other := range s.configs {
		if other.ID != cfg.ID && other.OwnerID == cfg.OwnerID && strings.EqualFold(other.DisplayName, cfg.DisplayName) {
			return true
		}
	}
	return false
}

func (s *InMemory) Delete(_ context.Context, tenantID id.TenantID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.configs[tenantID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.configs, tenantID)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, tenantID id.TenantID) (*models.TenantConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, ok := s.configs[tenantID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	c := *cfg
	return &c, nil
}

func (s *InMemory) ListByOwner(_ context.Context, owner id.AccountID) ([]*models.TenantConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.TenantConfig, 0)
	for _, cfg := range s.configs {
		if cfg.OwnerID == owner {
			c := *cfg
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (s *InMemory) Activate(_ context.Context, owner id.AccountID, tenantID id.TenantID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	target, ok := s.configs[tenantID]
	if !ok || target.OwnerID != owner {
		return sentinel.ErrNotFound
	}
	for _, cfg := range s.configs {
		if cfg.OwnerID == owner {
			cfg.Active = cfg.ID == tenantID
		}
	}
	return nil
}

func (s *InMemory) Active(_ context.Context, owner id.AccountID) (*models.TenantConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, cfg := range s.configs {
		if cfg.OwnerID == owner && cfg.Active {
			c := *cfg
			return &c, nil
		}
	}
	return nil, sentinel.ErrNotFound
}
