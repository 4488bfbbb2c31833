package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"ixcbridge/internal/inventory/models"
	"ixcbridge/pkg/platform/sentinel"
)

// InMemory keeps equipment and history in process memory. Records are copied
// on the way in and out so callers never share pointers with the store.
type InMemory struct {
	mu            sync.RWMutex
	equipment     map[int64]*models.Equipment
	history       map[int64][]*models.HistoryEntry
	nextID        int64
	nextHistoryID int64
}

func NewInMemory() *InMemory {
	return &InMemory{
		equipment: make(map[int64]*models.Equipment),
		history:   make(map[int64][]*models.HistoryEntry),
	}
}

func (s *InMemory) List(_ context.Context, f models.Filter) ([]*models.Equipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]*models.Equipment, 0, len(s.equipment))
	for _, e := range s.equipment {
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		if needle != "" && !matches(e, needle) {
			continue
		}
		out = append(out, clone(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func matches(e *models.Equipment, needle string) bool {
	for _, field := range []string{e.Model, e.SerialNumber, e.MACAddress, e.CustomerName()} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func (s *InMemory) Get(_ context.Context, equipmentID int64) (*models.Equipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.equipment[equipmentID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(e), nil
}

func (s *InMemory) Create(_ context.Context, e *models.Equipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.SerialNumber != "" {
		for _, existing := range s.equipment {
			if existing.SerialNumber == e.SerialNumber {
				return sentinel.ErrConflict
			}
		}
	}
	s.nextID++
	e.ID = s.nextID
	s.equipment[e.ID] = clone(e)
	return nil
}

func (s *InMemory) Update(_ context.Context, e *models.Equipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.equipment[e.ID]; !ok {
		return sentinel.ErrNotFound
	}
	if e.SerialNumber != "" {
		for otherID, existing := range s.equipment {
			if otherID != e.ID && existing.SerialNumber == e.SerialNumber {
				return sentinel.ErrConflict
			}
		}
	}
	s.equipment[e.ID] = clone(e)
	return nil
}

func (s *InMemory) Delete(_ context.Context, equipmentID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.equipment[equipmentID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.equipment, equipmentID)
	delete(s.history, equipmentID)
	return nil
}

func (s *InMemory) AppendHistory(_ context.Context, h *models.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.equipment[h.EquipmentID]; !ok {
		return sentinel.ErrNotFound
	}
	s.nextHistoryID++
	h.ID = s.nextHistoryID
	entry := *h
	s.history[h.EquipmentID] = append(s.history[h.EquipmentID], &entry)
	return nil
}

// History returns entries newest first.
func (s *InMemory) History(_ context.Context, equipmentID int64) ([]*models.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.history[equipmentID]
	out := make([]*models.HistoryEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		entry := *entries[i]
		out = append(out, &entry)
	}
	return out, nil
}

func clone(e *models.Equipment) *models.Equipment {
	c := *e
	if e.LinkedCustomerID != nil {
		v := *e.LinkedCustomerID
		c.LinkedCustomerID = &v
	}
	if e.LinkedCustomerName != nil {
		v := *e.LinkedCustomerName
		c.LinkedCustomerName = &v
	}
	return &c
}
