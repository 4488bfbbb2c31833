package models

import (
	"strings"
	"time"

	"ixcbridge/internal/upstream"
	id "ixcbridge/pkg/domain"
)

// TenantConfig is one upstream connection profile owned by an operator account.
//
// Invariants:
//   - at most one config per owner is Active; activating one deactivates the rest
//   - DisplayName is unique per owner
//   - deleting a config also deletes its synchronized catalog
type TenantConfig struct {
	ID          id.TenantID  `json:"id"`
	OwnerID     id.AccountID `json:"owner_id"`
	DisplayName string       `json:"display_name"`
	BaseURL     string       `json:"base_url"`
	Credential  string       `json:"-"`
	Active      bool         `json:"active"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// UpstreamContext is the explicit connection profile passed to upstream calls.
func (t *TenantConfig) UpstreamContext() upstream.TenantContext {
	return upstream.TenantContext{
		TenantID:   t.ID,
		BaseURL:    t.BaseURL,
		Credential: t.Credential,
	}
}

// MaskedCredential shows only the last four characters.
func (t *TenantConfig) MaskedCredential() string {
	c := t.Credential
	if len(c) <= 4 {
		return strings.Repeat("*", len(c))
	}
	return strings.Repeat("*", len(c)-4) + c[len(c)-4:]
}
