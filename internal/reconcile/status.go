package reconcile

import (
	"strings"

	"ixcbridge/internal/upstream"
)

// ServiceStatus is the normalized lifecycle of an upstream service contract.
type ServiceStatus int

const (
	StatusUnknown ServiceStatus = iota
	StatusActive
	StatusBlocked
	StatusInactive
)

func (s ServiceStatus) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusBlocked:
		return "blocked"
	case StatusInactive:
		return "inactive"
	default:
		return "unknown"
	}
}

// Normalize maps the upstream's free-form status codes. Installations report
// either single letters or full words.
func Normalize(raw string) ServiceStatus {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "A", "ATIVO", "S":
		return StatusActive
	case "B", "BLOQUEADO":
		return StatusBlocked
	case "I", "INATIVO", "C", "CANCELADO":
		return StatusInactive
	default:
		return StatusUnknown
	}
}

// IsActive reports whether either status field of the contract reads active.
func IsActive(s upstream.ServiceContract) bool {
	return Normalize(string(s.Status)) == StatusActive || Normalize(string(s.ContractStatus)) == StatusActive
}
