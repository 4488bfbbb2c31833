package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"ixcbridge/internal/catalog/models"
	id "ixcbridge/pkg/domain"
	"ixcbridge/pkg/platform/sentinel"
)

type catalogStore interface {
	ReplaceAndAppend(ctx context.Context, tenantID id.TenantID, records []*models.Customer, firstBatch bool) error
	List(ctx context.Context, tenantID id.TenantID, q models.Query) (*models.ListResult, error)
	FindIDByName(ctx context.Context, tenantID id.TenantID, name string) (string, error)
	DeleteTenant(ctx context.Context, tenantID id.TenantID) error
	Count(ctx context.Context, tenantID id.TenantID) (int, error)
}

// StoreSuite runs the same behaviour checks against every store implementation.
type StoreSuite struct {
	suite.Suite
	newStore func() catalogStore
	store    catalogStore
	ctx      context.Context
	tenant   id.TenantID
	other    id.TenantID
	synced   time.Time
}

func (s *StoreSuite) SetupTest() {
	s.store = s.newStore()
	s.ctx = context.Background()
	s.tenant = id.TenantID(uuid.New())
	s.other = id.TenantID(uuid.New())
	s.synced = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *StoreSuite) customer(upstreamID, name string) *models.Customer {
	return &models.Customer{
		UpstreamID: upstreamID,
		LegalName:  name,
		ActiveFlag: "S",
		PersonType: "F",
		SyncedAt:   s.synced,
	}
}

func (s *StoreSuite) TestFirstBatchReplacesTenantRows() {
	s.Require().NoError(s.store.ReplaceAndAppend(s.ctx, s.tenant, []*models.Customer{
		s.customer("1", "OLD ONE"),
		s.customer("2", "OLD TWO"),
	}, true))
	s.Require().NoError(s.store.ReplaceAndAppend(s.ctx, s.other, []*models.Customer{
		s.customer("1", "OTHER TENANT"),
	}, true))

	s.Require().NoError(s.store.ReplaceAndAppend(s.ctx, s.tenant, []*models.Customer{
		s.customer("3", "NEW THREE"),
	}, true))

	n, err := s.store.Count(s.ctx, s.tenant)
	s.Require().NoError(err)
	s.Equal(1, n)

	_, err = s.store.FindIDByName(s.ctx, s.tenant, "OLD ONE")
	s.ErrorIs(err, sentinel.ErrNotFound)

	n, err = s.store.Count(s.ctx, s.other)
	s.Require().NoError(err)
	s.Equal(1, n, "other tenants are untouched")
}

func (s *StoreSuite) TestLaterBatchesAppendAndUpsert() {
	s.Require().NoError(s.store.ReplaceAndAppend(s.ctx, s.tenant, []*models.Customer{
		s.customer("1", "FIRST"),
	}, true))
	s.Require().NoError(s.store.ReplaceAndAppend(s.ctx, s.tenant, []*models.Customer{
		s.customer("1", "FIRST RENAMED"),
		s.customer("2", "SECOND"),
		{UpstreamID: "", LegalName: "NO ID"},
	}, false))

	n, err := s.store.Count(s.ctx, s.tenant)
	s.Require().NoError(err)
	s.Equal(2, n)

	got, err := s.store.FindIDByName(s.ctx, s.tenant, "FIRST RENAMED")
	s.Require().NoError(err)
	s.Equal("1", got)
}

func (s *StoreSuite) TestListSearchOrderAndLimit() {
	s.Require().NoError(s.store.ReplaceAndAppend(s.ctx, s.tenant, []*models.Customer{
		s.customer("10", "CHARLIE"),
		{UpstreamID: "11", LegalName: "ALFA", TaxID: "123.456.789-00", SyncedAt: s.synced},
		{UpstreamID: "12", LegalName: "BRAVO", Landline: "(11) 3333-4444", SyncedAt: s.synced},
	}, true))

	res, err := s.store.List(s.ctx, s.tenant, models.Query{})
	s.Require().NoError(err)
	s.Equal(3, res.Total)
	s.Require().Len(res.Records, 3)
	s.Equal("ALFA", res.Records[0].LegalName)
	s.Equal(s.tenant, res.Records[0].TenantID)

	res, err = s.store.List(s.ctx, s.tenant, models.Query{Search: "3333"})
	s.Require().NoError(err)
	s.Require().Len(res.Records, 1)
	s.Equal("12", res.Records[0].UpstreamID)

	res, err = s.store.List(s.ctx, s.tenant, models.Query{Search: "456.789"})
	s.Require().NoError(err)
	s.Equal(1, res.Total)

	res, err = s.store.List(s.ctx, s.tenant, models.Query{Limit: 2})
	s.Require().NoError(err)
	s.Equal(3, res.Total)
	s.Len(res.Records, 2)

	res, err = s.store.List(s.ctx, s.tenant, models.Query{Search: "100%"})
	s.Require().NoError(err)
	s.Zero(res.Total)
}

func (s *StoreSuite) TestFindIDByNameIsExact() {
	s.Require().NoError(s.store.ReplaceAndAppend(s.ctx, s.tenant, []*models.Customer{
		s.customer("7", "ACME LTDA"),
		s.customer("5", "ACME LTDA"),
	}, true))

	got, err := s.store.FindIDByName(s.ctx, s.tenant, "ACME LTDA")
	s.Require().NoError(err)
	s.Equal("5", got, "ties resolve to the lowest upstream id")

	_, err = s.store.FindIDByName(s.ctx, s.tenant, "acme ltda")
	s.ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.FindIDByName(s.ctx, s.tenant, "")
	s.ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.FindIDByName(s.ctx, s.other, "ACME LTDA")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *StoreSuite) TestDeleteTenant() {
	s.Require().NoError(s.store.ReplaceAndAppend(s.ctx, s.tenant, []*models.Customer{s.customer("1", "A")}, true))
	s.Require().NoError(s.store.DeleteTenant(s.ctx, s.tenant))

	n, err := s.store.Count(s.ctx, s.tenant)
	s.Require().NoError(err)
	s.Zero(n)
	s.NoError(s.store.DeleteTenant(s.ctx, s.tenant), "deleting an empty catalog is not an error")
}
