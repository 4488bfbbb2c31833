package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"ixcbridge/internal/inventory/models"
	"ixcbridge/internal/inventory/store"
	"ixcbridge/pkg/clock"
	dErrors "ixcbridge/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	store   *store.InMemory
	clock   *clock.Fake
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = store.NewInMemory()
	s.clock = clock.NewFake(time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC))
	s.service = New(s.store,
		WithClock(s.clock),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	s.ctx = context.Background()
}

func (s *ServiceSuite) register(serial string) *models.Equipment {
	e, err := s.service.Create(s.ctx, Details{
		Category:     "ONU",
		Model:        "HG8245",
		SerialNumber: serial,
		MACAddress:   "aa:bb:cc:dd:ee:ff",
		CostPrice:    decimal.RequireFromString("150.00"),
	})
	s.Require().NoError(err)
	return e
}

func (s *ServiceSuite) TestCreateStartsInStockWithHistory() {
	e := s.register("SN1")

	s.Equal(models.StatusInStock, e.Status)
	s.Equal("AA:BB:CC:DD:EE:FF", e.MACAddress)
	s.NotZero(e.ID)

	history, err := s.service.History(s.ctx, e.ID)
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Equal(models.ActionCreated, history[0].Action)
	s.Equal(s.clock.Now(), history[0].RecordedAt)
}

func (s *ServiceSuite) TestCreateValidation() {
	_, err := s.service.Create(s.ctx, Details{Model: "X"})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = s.service.Create(s.ctx, Details{Category: "ONU", Model: "X", CostPrice: decimal.NewFromInt(-1)})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestDuplicateSerialConflicts() {
	s.register("SN1")
	_, err := s.service.Create(s.ctx, Details{Category: "ONU", Model: "X", SerialNumber: "SN1"})
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *ServiceSuite) TestProvisionAndReturn() {
	e := s.register("SN1")

	deployed, err := s.service.Provision(s.ctx, e.ID, Provisioning{
		CustomerID:   "42",
		CustomerName: "ACME LTDA",
		MonthlyFee:   decimal.RequireFromString("19.90"),
	})
	s.Require().NoError(err)
	s.Equal(models.StatusAtCustomer, deployed.Status)
	s.True(deployed.Deployed())
	s.Equal("42", deployed.CustomerID())

	_, err = s.service.Provision(s.ctx, e.ID, Provisioning{CustomerID: "43"})
	s.True(dErrors.HasCode(err, dErrors.CodeConflict), "already deployed")

	s.clock.Advance(time.Hour)
	returned, err := s.service.ReturnToStock(s.ctx, e.ID, "contract ended")
	s.Require().NoError(err)
	s.Equal(models.StatusInStock, returned.Status)
	s.Nil(returned.LinkedCustomerID)
	s.True(returned.MonthlyFee.IsZero())

	history, err := s.service.History(s.ctx, e.ID)
	s.Require().NoError(err)
	s.Require().Len(history, 3)
	s.Equal(models.ActionReturned, history[0].Action)
	s.Equal("42", history[0].CustomerID, "return entry names the previous customer")
	s.Equal("contract ended", history[0].Notes)
	s.Equal(models.ActionProvisioned, history[1].Action)
}

func (s *ServiceSuite) TestProvisionRequiresCustomer() {
	e := s.register("SN1")
	_, err := s.service.Provision(s.ctx, e.ID, Provisioning{CustomerName: "ACME"})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestChangeStatus() {
	e := s.register("SN1")

	_, err := s.service.ChangeStatus(s.ctx, e.ID, models.StatusAtCustomer, "")
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))

	damaged, err := s.service.ChangeStatus(s.ctx, e.ID, models.StatusDamaged, "lightning")
	s.Require().NoError(err)
	s.Equal(models.StatusDamaged, damaged.Status)

	_, err = s.service.ChangeStatus(s.ctx, e.ID, models.StatusDamaged, "")
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	_, err = s.service.ChangeStatus(s.ctx, 999, models.StatusDiscarded, "")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestChangeStatusFromCustomerClearsLink() {
	e := s.register("SN1")
	_, err := s.service.Provision(s.ctx, e.ID, Provisioning{CustomerID: "42", CustomerName: "ACME"})
	s.Require().NoError(err)

	out, err := s.service.ChangeStatus(s.ctx, e.ID, models.StatusInMaintenance, "")
	s.Require().NoError(err)
	s.Equal("", out.CustomerID())
}

func (s *ServiceSuite) TestCorrectLink() {
	e := s.register("SN1")
	_, err := s.service.Provision(s.ctx, e.ID, Provisioning{CustomerID: "999", CustomerName: "ACME LTDA"})
	s.Require().NoError(err)

	s.Require().NoError(s.service.CorrectLink(s.ctx, e.ID, "42", "ACME LTDA"))

	got, err := s.service.Get(s.ctx, e.ID)
	s.Require().NoError(err)
	s.Equal("42", got.CustomerID())
	s.Equal(models.StatusAtCustomer, got.Status)

	history, err := s.service.History(s.ctx, e.ID)
	s.Require().NoError(err)
	s.Equal(models.ActionLinkCorrected, history[0].Action)
	s.Contains(history[0].Notes, "999")
}

func (s *ServiceSuite) TestListDeployedAndStats() {
	a := s.register("SN1")
	b := s.register("SN2")
	c := s.register("SN3")
	_, err := s.service.Provision(s.ctx, a.ID, Provisioning{CustomerID: "1", MonthlyFee: decimal.RequireFromString("10.50")})
	s.Require().NoError(err)
	_, err = s.service.Provision(s.ctx, b.ID, Provisioning{CustomerID: "2", MonthlyFee: decimal.RequireFromString("20.25")})
	s.Require().NoError(err)
	_, err = s.service.ChangeStatus(s.ctx, c.ID, models.StatusDiscarded, "")
	s.Require().NoError(err)

	deployed, err := s.service.ListDeployed(s.ctx)
	s.Require().NoError(err)
	s.Len(deployed, 2)

	st, err := s.service.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, st.Total)
	s.Equal(2, st.ByStatus[models.StatusAtCustomer])
	s.Equal(1, st.ByStatus[models.StatusDiscarded])
	s.True(decimal.RequireFromString("30.75").Equal(st.RecurringRevenue))
	s.True(decimal.RequireFromString("300").Equal(st.InventoryValue))
}

func (s *ServiceSuite) TestDelete() {
	e := s.register("SN1")
	s.Require().NoError(s.service.Delete(s.ctx, e.ID))
	_, err := s.service.Get(s.ctx, e.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.True(dErrors.HasCode(s.service.Delete(s.ctx, e.ID), dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestCancelledContextAbortsTransaction() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	_, err := s.service.Create(ctx, Details{Category: "ONU", Model: "X"})
	s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
}
