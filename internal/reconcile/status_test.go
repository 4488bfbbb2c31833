package reconcile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ixcbridge/internal/upstream"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want ServiceStatus
	}{
		{"A", StatusActive},
		{"ativo", StatusActive},
		{" S ", StatusActive},
		{"B", StatusBlocked},
		{"Bloqueado", StatusBlocked},
		{"I", StatusInactive},
		{"INATIVO", StatusInactive},
		{"c", StatusInactive},
		{"CANCELADO", StatusInactive},
		{"", StatusUnknown},
		{"P", StatusUnknown},
		{"N", StatusUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func services(statuses ...string) []upstream.ServiceContract {
	out := make([]upstream.ServiceContract, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, upstream.ServiceContract{Status: upstream.Text(s)})
	}
	return out
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		services []upstream.ServiceContract
		want     *Reason
	}{
		{"blocked", services("B"), &Reason{Code: ReasonBlocked}},
		{"inactive", services("I"), &Reason{Code: ReasonCancelledOrInactive}},
		{"mixed active and blocked is active", services("A", "B"), nil},
		{"no services", services(), &Reason{Code: ReasonNoActiveService}},
		{"blocked wins over inactive", services("I", "B"), &Reason{Code: ReasonBlocked}},
		{"inactive wins over unknown", services("P", "CANCELADO"), &Reason{Code: ReasonCancelledOrInactive}},
		{"unknown keeps raw statuses", services("P", "D"), &Reason{Code: ReasonOther, Statuses: []string{"P", "D"}}},
		{
			"contract status field counts as active",
			[]upstream.ServiceContract{{Status: "X", ContractStatus: "A"}},
			nil,
		},
		{
			"contract status used when status is blank",
			[]upstream.ServiceContract{{ContractStatus: "B"}},
			&Reason{Code: ReasonBlocked},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.services))
		})
	}
}

func TestReasonMessage(t *testing.T) {
	assert.Equal(t, "No active contract found", Reason{Code: ReasonNoActiveService}.Message())
	assert.Equal(t, "Contract blocked", Reason{Code: ReasonBlocked}.Message())
	assert.Equal(t, "Contract cancelled / inactive", Reason{Code: ReasonCancelledOrInactive}.Message())
	assert.Equal(t, "Contract status: P, D", Reason{Code: ReasonOther, Statuses: []string{"P", "D"}}.Message())

	raw, err := json.Marshal(Reason{Code: ReasonBlocked})
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"blocked","message":"Contract blocked"}`, string(raw))
}
