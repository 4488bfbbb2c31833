package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ixcbridge/internal/inventory/models"
	"ixcbridge/internal/inventory/service"
	"ixcbridge/internal/inventory/store"
	"ixcbridge/pkg/testutil"
)

func newRouter() http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	New(service.New(store.NewInMemory(), service.WithLogger(logger)), logger).Register(r)
	return r
}

func TestEquipmentLifecycle(t *testing.T) {
	router := newRouter()

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/inventory/equipment", map[string]any{
		"category":      "ONU",
		"model":         "HG8245",
		"serial_number": "SN1",
		"cost_price":    "150.00",
	}))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	created := testutil.UnmarshalResponse[models.Equipment](t, rr)
	require.NotZero(t, created.ID)
	assert.Equal(t, models.StatusInStock, created.Status)

	base := "/inventory/equipment/" + itoa(created.ID)

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, base+"/provision", map[string]any{
		"customer_id":   "42",
		"customer_name": "ACME LTDA",
		"monthly_fee":   "19.90",
	}))
	testutil.AssertStatusOK(t, rr)
	testutil.AssertJSONContains(t, rr, "status", "at_customer")
	testutil.AssertJSONContains(t, rr, "linked_customer_id", "42")

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/inventory/equipment?status=at_customer"))
	testutil.AssertStatusOK(t, rr)
	testutil.AssertJSONContains(t, rr, "total", float64(1))

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, base+"/return", map[string]string{"notes": "cancelled"}))
	testutil.AssertStatusOK(t, rr)
	testutil.AssertJSONContains(t, rr, "status", "in_stock")

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, base+"/history"))
	testutil.AssertStatusOK(t, rr)
	history := testutil.UnmarshalResponse[[]models.HistoryEntry](t, rr)
	require.Len(t, *history, 3)
	assert.Equal(t, models.ActionReturned, (*history)[0].Action)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/inventory/stats"))
	testutil.AssertStatusOK(t, rr)
	testutil.AssertJSONContains(t, rr, "total", float64(1))

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodDelete, base))
	testutil.AssertStatus(t, rr, http.StatusNoContent)
}

func TestEquipmentErrors(t *testing.T) {
	router := newRouter()

	tests := []struct {
		name   string
		req    func(t *testing.T) *http.Request
		status int
		code   string
	}{
		{
			name: "invalid id",
			req: func(t *testing.T) *http.Request {
				return testutil.NewRequest(t, http.MethodGet, "/inventory/equipment/abc")
			},
			status: http.StatusBadRequest,
			code:   "bad_request",
		},
		{
			name: "unknown equipment",
			req: func(t *testing.T) *http.Request {
				return testutil.NewRequest(t, http.MethodGet, "/inventory/equipment/99")
			},
			status: http.StatusNotFound,
			code:   "not_found",
		},
		{
			name: "malformed body",
			req: func(t *testing.T) *http.Request {
				return testutil.NewRequestWithBody(t, http.MethodPost, "/inventory/equipment", "{")
			},
			status: http.StatusBadRequest,
			code:   "bad_request",
		},
		{
			name: "missing model",
			req: func(t *testing.T) *http.Request {
				return testutil.NewJSONRequest(t, http.MethodPost, "/inventory/equipment", map[string]string{"category": "ONU"})
			},
			status: http.StatusBadRequest,
			code:   "validation_error",
		},
		{
			name: "unknown status filter",
			req: func(t *testing.T) *http.Request {
				return testutil.NewRequest(t, http.MethodGet, "/inventory/equipment?status=lost")
			},
			status: http.StatusBadRequest,
			code:   "bad_request",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := testutil.DoRequest(router, tt.req(t))
			testutil.AssertStatusAndError(t, rr, tt.status, tt.code)
		})
	}
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
