package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"ixcbridge/internal/tenant/models"
	id "ixcbridge/pkg/domain"
	"ixcbridge/pkg/platform/sentinel"
)

type tenantStore interface {
	Create(ctx context.Context, cfg *models.TenantConfig) error
	Update(ctx context.Context, cfg *models.TenantConfig) error
	Delete(ctx context.Context, tenantID id.TenantID) error
	FindByID(ctx context.Context, tenantID id.TenantID) (*models.TenantConfig, error)
	ListByOwner(ctx context.Context, owner id.AccountID) ([]*models.TenantConfig, error)
	Activate(ctx context.Context, owner id.AccountID, tenantID id.TenantID) error
	Active(ctx context.Context, owner id.AccountID) (*models.TenantConfig, error)
}

// StoreSuite runs the same behaviour checks against every store implementation.
type StoreSuite struct {
	suite.Suite
	newStore func() tenantStore
	store    tenantStore
	ctx      context.Context
	owner    id.AccountID
	base     time.Time
}

func (s *StoreSuite) SetupTest() {
	s.store = s.newStore()
	s.ctx = context.Background()
	s.owner = id.AccountID(uuid.New())
	s.base = time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
}

func (s *StoreSuite) newConfig(owner id.AccountID, name string, offset time.Duration) *models.TenantConfig {
	return &models.TenantConfig{
		ID:          id.TenantID(uuid.New()),
		OwnerID:     owner,
		DisplayName: name,
		BaseURL:     "https://erp.example.com",
		Credential:  "12:secret",
		CreatedAt:   s.base.Add(offset),
		UpdatedAt:   s.base.Add(offset),
	}
}

func (s *StoreSuite) TestCreateAndFind() {
	cfg := s.newConfig(s.owner, "alpha", 0)
	s.Require().NoError(s.store.Create(s.ctx, cfg))

	found, err := s.store.FindByID(s.ctx, cfg.ID)
	s.Require().NoError(err)
	s.Equal("alpha", found.DisplayName)
	s.Equal(s.owner, found.OwnerID)
	s.False(found.Active)

	_, err = s.store.FindByID(s.ctx, id.TenantID(uuid.New()))
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.ErrorIs(s.store.Create(s.ctx, s.newConfig(s.owner, "ALPHA", time.Second)), sentinel.ErrConflict)
}

func (s *StoreSuite) TestListByOwnerOrdersByCreation() {
	second := s.newConfig(s.owner, "second", time.Minute)
	first := s.newConfig(s.owner, "first", 0)
	s.Require().NoError(s.store.Create(s.ctx, second))
	s.Require().NoError(s.store.Create(s.ctx, first))
	s.Require().NoError(s.store.Create(s.ctx, s.newConfig(id.AccountID(uuid.New()), "foreign", 0)))

	list, err := s.store.ListByOwner(s.ctx, s.owner)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("first", list[0].DisplayName)
	s.Equal("second", list[1].DisplayName)
}

func (s *StoreSuite) TestActivateIsExclusivePerOwner() {
	a := s.newConfig(s.owner, "a", 0)
	b := s.newConfig(s.owner, "b", time.Second)
	otherOwner := id.AccountID(uuid.New())
	c := s.newConfig(otherOwner, "c", 0)
	for _, cfg := range []*models.TenantConfig{a, b, c} {
		s.Require().NoError(s.store.Create(s.ctx, cfg))
	}

	_, err := s.store.Active(s.ctx, s.owner)
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.Require().NoError(s.store.Activate(s.ctx, s.owner, a.ID))
	s.Require().NoError(s.store.Activate(s.ctx, otherOwner, c.ID))
	s.Require().NoError(s.store.Activate(s.ctx, s.owner, b.ID))

	active, err := s.store.Active(s.ctx, s.owner)
	s.Require().NoError(err)
	s.Equal(b.ID, active.ID)

	foundA, err := s.store.FindByID(s.ctx, a.ID)
	s.Require().NoError(err)
	s.False(foundA.Active)

	other, err := s.store.Active(s.ctx, otherOwner)
	s.Require().NoError(err)
	s.Equal(c.ID, other.ID, "activation does not cross owners")

	s.ErrorIs(s.store.Activate(s.ctx, s.owner, c.ID), sentinel.ErrNotFound)
	active, err = s.store.Active(s.ctx, s.owner)
	s.Require().NoError(err)
	s.Equal(b.ID, active.ID, "failed activation leaves the previous one active")
}

func (s *StoreSuite) TestUpdateKeepsActiveFlag() {
	cfg := s.newConfig(s.owner, "alpha", 0)
	s.Require().NoError(s.store.Create(s.ctx, cfg))
	s.Require().NoError(s.store.Activate(s.ctx, s.owner, cfg.ID))

	cfg.DisplayName = "renamed"
	cfg.Active = false
	s.Require().NoError(s.store.Update(s.ctx, cfg))

	found, err := s.store.FindByID(s.ctx, cfg.ID)
	s.Require().NoError(err)
	s.Equal("renamed", found.DisplayName)
	s.True(found.Active)

	missing := s.newConfig(s.owner, "missing", 0)
	s.ErrorIs(s.store.Update(s.ctx, missing), sentinel.ErrNotFound)
}

func (s *StoreSuite) TestDelete() {
	cfg := s.newConfig(s.owner, "alpha", 0)
	s.Require().NoError(s.store.Create(s.ctx, cfg))
	s.Require().NoError(s.store.Delete(s.ctx, cfg.ID))
	s.ErrorIs(s.store.Delete(s.ctx, cfg.ID), sentinel.ErrNotFound)
}
