package monitor

import (
	"time"

	"ixcbridge/internal/reconcile"
)

// Group collects the alerts of one customer, one entry per affected equipment.
type Group struct {
	CustomerID   string            `json:"customer_id"`
	CustomerName string            `json:"customer_name"`
	Reason       reconcile.Reason  `json:"reason"`
	Alerts       []reconcile.Alert `json:"alerts"`
}

// Snapshot is a consistent copy of the monitor state.
type Snapshot struct {
	Running     bool              `json:"running"`
	StatusLine  string            `json:"status_line"`
	LastSuccess *time.Time        `json:"last_success,omitempty"`
	Alerts      []reconcile.Alert `json:"alerts"`
	Dismissed   bool              `json:"dismissed"`
	Groups      []Group           `json:"groups"`
	AlertCount  int               `json:"alert_count"`
	// PanelVisible is set while alerts exist and the operator has not dismissed them.
	PanelVisible bool `json:"panel_visible"`
}

type state struct {
	running     bool
	statusLine  string
	lastSuccess *time.Time
	alerts      []reconcile.Alert
	dismissed   bool
}

func (s *state) snapshot() Snapshot {
	alerts := make([]reconcile.Alert, len(s.alerts))
	copy(alerts, s.alerts)

	snap := Snapshot{
		Running:      s.running,
		StatusLine:   s.statusLine,
		Alerts:       alerts,
		Dismissed:    s.dismissed,
		Groups:       groupAlerts(alerts),
		AlertCount:   len(alerts),
		PanelVisible: len(alerts) > 0 && !s.dismissed,
	}
	if s.lastSuccess != nil {
		t := *s.lastSuccess
		snap.LastSuccess = &t
	}
	return snap
}

// groupAlerts keys on the customer id in first-seen order.
func groupAlerts(alerts []reconcile.Alert) []Group {
	groups := make([]Group, 0)
	index := make(map[string]int)
	for _, a := range alerts {
		i, ok := index[a.CustomerID]
		if !ok {
			i = len(groups)
			index[a.CustomerID] = i
			groups = append(groups, Group{
				CustomerID:   a.CustomerID,
				CustomerName: a.CustomerName,
				Reason:       a.Reason,
			})
		}
		groups[i].Alerts = append(groups[i].Alerts, a)
	}
	return groups
}
