package models

import (
	"time"

	id "ixcbridge/pkg/domain"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// Customer is one upstream customer copied into the tenant's local catalog.
// Rows are written only by sync runs; (UpstreamID, TenantID) is unique.
type Customer struct {
	UpstreamID   string      `json:"id"`
	TenantID     id.TenantID `json:"tenant_id"`
	LegalName    string      `json:"razao"`
	TaxID        string      `json:"tax_id"`
	MobilePhone  string      `json:"mobile_phone"`
	Landline     string      `json:"landline"`
	Email        string      `json:"email"`
	ActiveFlag   string      `json:"active_flag"`
	City         string      `json:"city"`
	Neighborhood string      `json:"neighborhood"`
	Street       string      `json:"street"`
	StreetNumber string      `json:"street_number"`
	PersonType   string      `json:"person_type"`
	MonthlyFee   string      `json:"monthly_fee,omitempty"`
	SyncedAt     time.Time   `json:"synced_at"`
}

// Query filters a catalog listing. Search matches name, tax id and both phones.
type Query struct {
	Search string
	Limit  int
}

// NormalizedLimit clamps Limit into [1, MaxListLimit], defaulting to DefaultListLimit.
func (q Query) NormalizedLimit() int {
	switch {
	case q.Limit <= 0:
		return DefaultListLimit
	case q.Limit > MaxListLimit:
		return MaxListLimit
	default:
		return q.Limit
	}
}

// ListResult carries one page of matches plus the unpaged match count.
type ListResult struct {
	Total   int         `json:"total"`
	Records []*Customer `json:"registros"`
}
