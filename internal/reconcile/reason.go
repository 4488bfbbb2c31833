package reconcile

import (
	"encoding/json"
	"strings"

	"ixcbridge/internal/upstream"
)

// ReasonCode classifies why a customer's service is considered not active.
type ReasonCode string

const (
	ReasonNoActiveService     ReasonCode = "no_active_service"
	ReasonBlocked             ReasonCode = "blocked"
	ReasonCancelledOrInactive ReasonCode = "cancelled_or_inactive"
	ReasonOther               ReasonCode = "other"
)

// Reason is attached to every alert. Statuses carries the raw upstream
// values verbatim for ReasonOther.
type Reason struct {
	Code     ReasonCode
	Statuses []string
}

// Message is the operator-facing text.
func (r Reason) Message() string {
	switch r.Code {
	case ReasonNoActiveService:
		return "No active contract found"
	case ReasonBlocked:
		return "Contract blocked"
	case ReasonCancelledOrInactive:
		return "Contract cancelled / inactive"
	default:
		return "Contract status: " + strings.Join(r.Statuses, ", ")
	}
}

func (r Reason) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Code     ReasonCode `json:"code"`
		Message  string     `json:"message"`
		Statuses []string   `json:"statuses,omitempty"`
	}{r.Code, r.Message(), r.Statuses})
}

// Classify returns nil when any service is active. Otherwise blocked wins
// over inactive, which wins over everything else.
func Classify(services []upstream.ServiceContract) *Reason {
	if len(services) == 0 {
		return &Reason{Code: ReasonNoActiveService}
	}
	raw := make([]string, 0, len(services))
	var blocked, inactive bool
	for _, s := range services {
		if IsActive(s) {
			return nil
		}
		status := s.RawStatus()
		raw = append(raw, status)
		switch Normalize(status) {
		case StatusBlocked:
			blocked = true
		case StatusInactive:
			inactive = true
		}
	}
	switch {
	case blocked:
		return &Reason{Code: ReasonBlocked}
	case inactive:
		return &Reason{Code: ReasonCancelledOrInactive}
	default:
		return &Reason{Code: ReasonOther, Statuses: raw}
	}
}
