package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally wrapped)
// so services can translate them into coded domain errors.
//
// - ErrNotFound: entity does not exist in store (an unknown customer name is a skip, not a failure)
// - ErrConflict: unique constraint hit (duplicate serial number, duplicate tenant name)
// - ErrInvalidState: entity in wrong state for requested operation (provisioning deployed equipment)
// - ErrUnavailable: backing service temporarily unavailable
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
