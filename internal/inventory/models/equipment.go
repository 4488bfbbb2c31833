package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status is where a tracked piece of equipment currently is.
type Status string

const (
	StatusInStock       Status = "in_stock"
	StatusAtCustomer    Status = "at_customer"
	StatusInMaintenance Status = "in_maintenance"
	StatusDamaged       Status = "damaged"
	StatusDiscarded     Status = "discarded"
)

var statuses = map[Status]struct{}{
	StatusInStock:       {},
	StatusAtCustomer:    {},
	StatusInMaintenance: {},
	StatusDamaged:       {},
	StatusDiscarded:     {},
}

// ParseStatus accepts the canonical snake_case values, case-insensitively.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := statuses[st]; !ok {
		return "", fmt.Errorf("unknown equipment status %q", s)
	}
	return st, nil
}

// Equipment is a locally tracked device (ONU, router, radio).
// LinkedCustomerID is a locally stored copy and may be a surrogate rather than
// the upstream's id; reconciliation re-derives the real id from the name.
type Equipment struct {
	ID                 int64           `json:"id"`
	Category           string          `json:"category"`
	Model              string          `json:"model"`
	SerialNumber       string          `json:"serial_number"`
	MACAddress         string          `json:"mac_address"`
	Status             Status          `json:"status"`
	LinkedCustomerID   *string         `json:"linked_customer_id"`
	LinkedCustomerName *string         `json:"linked_customer_name"`
	MonthlyFee         decimal.Decimal `json:"monthly_fee"`
	CostPrice          decimal.Decimal `json:"cost_price"`
	ExternalUpstreamID string          `json:"external_upstream_id"`
	Notes              string          `json:"notes"`
}

func (e *Equipment) CustomerID() string {
	if e.LinkedCustomerID == nil {
		return ""
	}
	return strings.TrimSpace(*e.LinkedCustomerID)
}

func (e *Equipment) CustomerName() string {
	if e.LinkedCustomerName == nil {
		return ""
	}
	return *e.LinkedCustomerName
}

// Deployed reports equipment sitting at a customer with a link to check.
func (e *Equipment) Deployed() bool {
	return e.Status == StatusAtCustomer && e.CustomerID() != ""
}

// Action names a history event.
type Action string

const (
	ActionCreated       Action = "created"
	ActionUpdated       Action = "updated"
	ActionProvisioned   Action = "provisioned"
	ActionReturned      Action = "returned"
	ActionStatusChanged Action = "status_changed"
	ActionLinkCorrected Action = "link_corrected"
)

// HistoryEntry is an append-only record of a status-affecting event.
type HistoryEntry struct {
	ID           int64     `json:"id"`
	EquipmentID  int64     `json:"equipment_id"`
	RecordedAt   time.Time `json:"recorded_at"`
	Action       Action    `json:"action"`
	CustomerID   string    `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	Notes        string    `json:"notes"`
}

// Filter narrows an equipment listing. Zero values match everything.
type Filter struct {
	Status Status
	Search string
}

// Stats summarizes the inventory. Recurring revenue sums the monthly fee of
// equipment at customers; inventory value sums cost prices of everything not discarded.
type Stats struct {
	Total            int             `json:"total"`
	ByStatus         map[Status]int  `json:"by_status"`
	RecurringRevenue decimal.Decimal `json:"recurring_revenue"`
	InventoryValue   decimal.Decimal `json:"inventory_value"`
}
