// Package service implements tracked-equipment operations. Every state change
// writes its history entry in the same transaction.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"ixcbridge/internal/inventory/models"
	"ixcbridge/pkg/clock"
	dErrors "ixcbridge/pkg/domain-errors"
	"ixcbridge/pkg/platform/sentinel"
)

type Store interface {
	List(ctx context.Context, f models.Filter) ([]*models.Equipment, error)
	Get(ctx context.Context, equipmentID int64) (*models.Equipment, error)
	Create(ctx context.Context, e *models.Equipment) error
	Update(ctx context.Context, e *models.Equipment) error
	Delete(ctx context.Context, equipmentID int64) error
	AppendHistory(ctx context.Context, h *models.HistoryEntry) error
	History(ctx context.Context, equipmentID int64) ([]*models.HistoryEntry, error)
}

type Service struct {
	store  Store
	tx     StoreTx
	clock  clock.Clock
	logger *slog.Logger
}

type Option func(*Service)

// WithTx replaces the default in-process lock, e.g. with a database transaction.
func WithTx(tx StoreTx) Option {
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

func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		clock:  clock.Real(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tx == nil {
		s.tx = NewLockedTx(store)
	}
	return s
}

// Details are the operator-editable attributes of a piece of equipment.
type Details struct {
	Category           string          `json:"category"`
	Model              string          `json:"model"`
	SerialNumber       string          `json:"serial_number"`
	MACAddress         string          `json:"mac_address"`
	CostPrice          decimal.Decimal `json:"cost_price"`
	ExternalUpstreamID string          `json:"external_upstream_id"`
	Notes              string          `json:"notes"`
}

func (d *Details) normalize() error {
	d.Category = strings.TrimSpace(d.Category)
	d.Model = strings.TrimSpace(d.Model)
	d.SerialNumber = strings.TrimSpace(d.SerialNumber)
	d.MACAddress = strings.ToUpper(strings.TrimSpace(d.MACAddress))
	if d.Category == "" {
		return dErrors.New(dErrors.CodeValidation, "category is required")
	}
	if d.Model == "" {
		return dErrors.New(dErrors.CodeValidation, "model is required")
	}
	if d.CostPrice.IsNegative() {
		return dErrors.New(dErrors.CodeValidation, "cost_price cannot be negative")
	}
	return nil
}

// Provisioning links equipment to an upstream customer.
type Provisioning struct {
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	MonthlyFee   decimal.Decimal `json:"monthly_fee"`
	Notes        string          `json:"notes"`
}

func (s *Service) List(ctx context.Context, f models.Filter) ([]*models.Equipment, error) {
	out, err := s.store.List(ctx, f)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list equipment")
	}
	return out, nil
}

// ListDeployed returns equipment at a customer with a non-empty customer link.
func (s *Service) ListDeployed(ctx context.Context) ([]*models.Equipment, error) {
	all, err := s.store.List(ctx, models.Filter{Status: models.StatusAtCustomer})
	if err != nil {
		return nil, fmt.Errorf("list deployed equipment: %w", err)
	}
	out := all[:0]
	for _, e := range all {
		if e.Deployed() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, equipmentID int64) (*models.Equipment, error) {
	e, err := s.store.Get(ctx, equipmentID)
	if err != nil {
		return nil, translate(err)
	}
	return e, nil
}

func (s *Service) History(ctx context.Context, equipmentID int64) ([]*models.HistoryEntry, error) {
	if _, err := s.Get(ctx, equipmentID); err != nil {
		return nil, err
	}
	entries, err := s.store.History(ctx, equipmentID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load history")
	}
	return entries, nil
}

// Create registers equipment in stock.
func (s *Service) Create(ctx context.Context, d Details) (*models.Equipment, error) {
	if err := d.normalize(); err != nil {
		return nil, err
	}
	e := &models.Equipment{
		Category:           d.Category,
		Model:              d.Model,
		SerialNumber:       d.SerialNumber,
		MACAddress:         d.MACAddress,
		Status:             models.StatusInStock,
		CostPrice:          d.CostPrice,
		ExternalUpstreamID: d.ExternalUpstreamID,
		Notes:              d.Notes,
	}
	err := s.tx.RunInTx(ctx, func(ctx context.Context, store Store) error {
		if err := store.Create(ctx, e); err != nil {
			return err
		}
		return store.AppendHistory(ctx, s.entry(e, models.ActionCreated, d.Notes))
	})
	if err != nil {
		return nil, translate(err)
	}
	s.logger.InfoContext(ctx, "equipment registered", "equipment_id", e.ID, "model", e.Model)
	return e, nil
}

// UpdateDetails edits descriptive fields. Status and customer link change only
// through the dedicated operations.
func (s *Service) UpdateDetails(ctx context.Context, equipmentID int64, d Details) (*models.Equipment, error) {
	if err := d.normalize(); err != nil {
		return nil, err
	}
	return s.mutate(ctx, equipmentID, func(e *models.Equipment) (models.Action, string, error) {
		e.Category = d.Category
		e.Model = d.Model
		e.SerialNumber = d.SerialNumber
		e.MACAddress = d.MACAddress
		e.CostPrice = d.CostPrice
		e.ExternalUpstreamID = d.ExternalUpstreamID
		e.Notes = d.Notes
		return models.ActionUpdated, d.Notes, nil
	})
}

func (s *Service) Delete(ctx context.Context, equipmentID int64) error {
	if err := s.store.Delete(ctx, equipmentID); err != nil {
		return translate(err)
	}
	s.logger.InfoContext(ctx, "equipment deleted", "equipment_id", equipmentID)
	return nil
}

// Provision moves equipment from stock to a customer.
func (s *Service) Provision(ctx context.Context, equipmentID int64, p Provisioning) (*models.Equipment, error) {
	customerID := strings.TrimSpace(p.CustomerID)
	name := strings.TrimSpace(p.CustomerName)
	if customerID == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "customer_id is required")
	}
	if p.MonthlyFee.IsNegative() {
		return nil, dErrors.New(dErrors.CodeValidation, "monthly_fee cannot be negative")
	}
	return s.mutate(ctx, equipmentID, func(e *models.Equipment) (models.Action, string, error) {
		if e.Status != models.StatusInStock {
			return "", "", fmt.Errorf("equipment is %s: %w", e.Status, sentinel.ErrInvalidState)
		}
		e.Status = models.StatusAtCustomer
		e.LinkedCustomerID = &customerID
		e.LinkedCustomerName = &name
		e.MonthlyFee = p.MonthlyFee
		return models.ActionProvisioned, p.Notes, nil
	})
}

// ReturnToStock brings deployed equipment back and clears its customer link.
func (s *Service) ReturnToStock(ctx context.Context, equipmentID int64, notes string) (*models.Equipment, error) {
	return s.mutate(ctx, equipmentID, func(e *models.Equipment) (models.Action, string, error) {
		if e.Status != models.StatusAtCustomer {
			return "", "", fmt.Errorf("equipment is %s: %w", e.Status, sentinel.ErrInvalidState)
		}
		e.Status = models.StatusInStock
		e.LinkedCustomerID = nil
		e.LinkedCustomerName = nil
		e.MonthlyFee = decimal.Zero
		return models.ActionReturned, notes, nil
	})
}

// ChangeStatus moves equipment between non-customer states. Deployment goes
// through Provision so a customer link is always set.
func (s *Service) ChangeStatus(ctx context.Context, equipmentID int64, status models.Status, notes string) (*models.Equipment, error) {
	if status == models.StatusAtCustomer {
		return nil, dErrors.New(dErrors.CodeBadRequest, "use provision to deploy equipment at a customer")
	}
	if _, err := models.ParseStatus(string(status)); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, err.Error())
	}
	return s.mutate(ctx, equipmentID, func(e *models.Equipment) (models.Action, string, error) {
		if e.Status == status {
			return "", "", fmt.Errorf("equipment already %s: %w", status, sentinel.ErrInvalidState)
		}
		if e.Status == models.StatusAtCustomer {
			e.LinkedCustomerID = nil
			e.LinkedCustomerName = nil
			e.MonthlyFee = decimal.Zero
		}
		e.Status = status
		return models.ActionStatusChanged, notes, nil
	})
}

// CorrectLink repoints equipment at the customer id the catalog resolves for
// its name. The previous id is kept in the history notes.
func (s *Service) CorrectLink(ctx context.Context, equipmentID int64, customerID, customerName string) error {
	_, err := s.mutate(ctx, equipmentID, func(e *models.Equipment) (models.Action, string, error) {
		previous := e.CustomerID()
		e.LinkedCustomerID = &customerID
		if customerName != "" {
			e.LinkedCustomerName = &customerName
		}
		return models.ActionLinkCorrected, "previous customer id " + previous, nil
	})
	return err
}

// Stats summarizes counts per status, recurring revenue and stock value.
func (s *Service) Stats(ctx context.Context) (*models.Stats, error) {
	all, err := s.store.List(ctx, models.Filter{})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list equipment")
	}
	st := &models.Stats{
		Total:            len(all),
		ByStatus:         make(map[models.Status]int),
		RecurringRevenue: decimal.Zero,
		InventoryValue:   decimal.Zero,
	}
	for _, e := range all {
		st.ByStatus[e.Status]++
		if e.Status == models.StatusAtCustomer {
			st.RecurringRevenue = st.RecurringRevenue.Add(e.MonthlyFee)
		}
		if e.Status != models.StatusDiscarded {
			st.InventoryValue = st.InventoryValue.Add(e.CostPrice)
		}
	}
	return st, nil
}

// mutate loads, changes and saves equipment and appends the history entry
// returned by change, all in one transaction. When change clears the customer
// link, the entry names the customer it was cleared from.
func (s *Service) mutate(ctx context.Context, equipmentID int64, change func(e *models.Equipment) (models.Action, string, error)) (*models.Equipment, error) {
	var updated *models.Equipment
	err := s.tx.RunInTx(ctx, func(ctx context.Context, store Store) error {
		e, err := store.Get(ctx, equipmentID)
		if err != nil {
			return err
		}
		prevID, prevName := e.CustomerID(), e.CustomerName()
		action, notes, err := change(e)
		if err != nil {
			return err
		}
		if err := store.Update(ctx, e); err != nil {
			return err
		}
		entry := s.entry(e, action, notes)
		if entry.CustomerID == "" {
			entry.CustomerID, entry.CustomerName = prevID, prevName
		}
		if err := store.AppendHistory(ctx, entry); err != nil {
			return err
		}
		updated = e
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	s.logger.InfoContext(ctx, "equipment updated",
		"equipment_id", updated.ID,
		"status", string(updated.Status),
	)
	return updated, nil
}

func (s *Service) entry(e *models.Equipment, action models.Action, notes string) *models.HistoryEntry {
	return &models.HistoryEntry{
		EquipmentID:  e.ID,
		RecordedAt:   s.clock.Now().UTC(),
		Action:       action,
		CustomerID:   e.CustomerID(),
		CustomerName: e.CustomerName(),
		Notes:        notes,
	}
}

func translate(err error) error {
	var de *dErrors.Error
	switch {
	case errors.As(err, &de):
		return err
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, "equipment not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, "serial number already registered")
	case errors.Is(err, sentinel.ErrInvalidState):
		return dErrors.Wrap(err, dErrors.CodeConflict, err.Error())
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "equipment operation failed")
	}
}
