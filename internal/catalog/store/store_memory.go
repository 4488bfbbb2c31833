package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"ixcbridge/internal/catalog/models"
	id "ixcbridge/pkg/domain"
	"ixcbridge/pkg/platform/sentinel"
)

// InMemory keeps each tenant's catalog in its own map. A first-batch write
// builds the replacement map before swapping it in, so readers never see the
// tenant empty mid-replace.
type InMemory struct {
	mu      sync.RWMutex
	tenants map[id.TenantID]map[string]*models.Customer
}

func NewInMemory() *InMemory {
	return &InMemory{tenants: make(map[id.TenantID]map[string]*models.Customer)}
}

func (s *InMemory) ReplaceAndAppend(_ context.Context, tenantID id.TenantID, records []*models.Customer, firstBatch bool) error {
	fresh := make(map[string]*models.Customer, len(records))
	for _, r := range records {
		if r == nil || r.UpstreamID == "" {
			continue
		}
		c := *r
		c.TenantID = tenantID
		fresh[c.UpstreamID] = &c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if firstBatch {
		s.tenants[tenantID] = fresh
		return nil
	}
	current, ok := s.tenants[tenantID]
	if !ok {
		current = make(map[string]*models.Customer, len(fresh))
		s.tenants[tenantID] = current
	}
	for k, v := range fresh {
		current[k] = v
	}
	return nil
}

func (s *InMemory) List(_ context.Context, tenantID id.TenantID, q models.Query) (*models.ListResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(q.Search))
	matches := make([]*models.Customer, 0)
	for _, c := range s.tenants[tenantID] {
		if needle == "" || matchesSearch(c, needle) {
			cp := *c
			matches = append(matches, &cp)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].LegalName != matches[j].LegalName {
			return matches[i].LegalName < matches[j].LegalName
		}
		return matches[i].UpstreamID < matches[j].UpstreamID
	})

	result := &models.ListResult{Total: len(matches), Records: matches}
	if limit := q.NormalizedLimit(); len(matches) > limit {
		result.Records = matches[:limit]
	}
	return result, nil
}

func matchesSearch(c *models.Customer, needle string) bool {
	for _, field := range []string{c.LegalName, c.TaxID, c.MobilePhone, c.Landline} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// FindIDByName returns the upstream id of the customer whose legal name matches
// exactly. Ties resolve to the lowest upstream id.
func (s *InMemory) FindIDByName(_ context.Context, tenantID id.TenantID, name string) (string, error) {
	if name == "" {
		return "", sentinel.ErrNotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := ""
	for _, c := range s.tenants[tenantID] {
		if c.LegalName != name {
			continue
		}
		if found == "" || c.UpstreamID < found {
			found = c.UpstreamID
		}
	}
	if found == "" {
		return "", sentinel.ErrNotFound
	}
	return found, nil
}

func (s *InMemory) DeleteTenant(_ context.Context, tenantID id.TenantID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tenants, tenantID)
	return nil
}

func (s *InMemory) Count(_ context.Context, tenantID id.TenantID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tenants[tenantID]), nil
}
