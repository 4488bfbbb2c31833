// Package domain holds typed identifiers shared across modules.
//
// Typed IDs keep an account id from being passed where a tenant id is expected.
// Construct them with the Parse functions at trust boundaries (HTTP params,
// token claims); direct conversion from uuid.UUID is reserved for stores and tests.
package domain

import (
	"github.com/google/uuid"

	dErrors "ixcbridge/pkg/domain-errors"
)

// AccountID identifies the operator account that owns tenant configurations.
type AccountID uuid.UUID

// TenantID identifies one upstream connection profile and its synchronized catalog.
type TenantID uuid.UUID

func (id AccountID) String() string { return uuid.UUID(id).String() }
func (id AccountID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func (id TenantID) String() string { return uuid.UUID(id).String() }
func (id TenantID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

// Text marshalling keeps ids as canonical strings in JSON.

func (id AccountID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id TenantID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }

func (id *AccountID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *TenantID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

// ParseAccountID parses a non-nil UUID into an AccountID.
func ParseAccountID(s string) (AccountID, error) {
	u, err := parseUUID(s, "account ID")
	return AccountID(u), err
}

// ParseTenantID parses a non-nil UUID into a TenantID.
func ParseTenantID(s string) (TenantID, error) {
	u, err := parseUUID(s, "tenant ID")
	return TenantID(u), err
}

func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be nil")
	}
	return u, nil
}
