package httptransport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"ixcbridge/internal/proxy"
	"ixcbridge/pkg/platform/middleware/auth"
	"ixcbridge/pkg/platform/middleware/request"
	"ixcbridge/pkg/requestcontext"
	"ixcbridge/pkg/testutil"
)

type stubValidator struct {
	accountID string
}

func (s stubValidator) ValidateToken(token string) (*auth.JWTClaims, error) {
	if token != "good" {
		return nil, errors.New("invalid token")
	}
	return &auth.JWTClaims{AccountID: s.accountID}, nil
}

type whoami struct{}

func (whoami) Register(r chi.Router) {
	r.Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(requestcontext.AccountID(r.Context()).String()))
	})
}

func newTestRouter(checks map[string]HealthCheck) (http.Handler, string) {
	accountID := uuid.NewString()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(Config{
		Logger:    logger,
		Validator: stubValidator{accountID: accountID},
		Relay:     proxy.New(proxy.WithLogger(logger)).Mount(RelayPrefix),
		Checks:    checks,
		Handlers:  []Registrar{whoami{}},
	}), accountID
}

func TestAuthenticatedRoutes(t *testing.T) {
	router, accountID := newTestRouter(nil)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/whoami"))
	testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")

	req := testutil.NewRequest(t, http.MethodGet, "/whoami")
	req.Header.Set("Authorization", "Bearer good")
	rr = testutil.DoRequest(router, req)
	testutil.AssertStatusOK(t, rr)
	assert.Equal(t, accountID, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get(request.HeaderRequestID))
}

func TestRelayIsMountedWithoutAuth(t *testing.T) {
	router, _ := newTestRouter(nil)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodPost, RelayPrefix+"/tenant-1/webservice/v1/cliente"))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	testutil.AssertJSONHasKey(t, rr, "error")
}

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		router, _ := newTestRouter(map[string]HealthCheck{
			"postgres": func(context.Context) error { return nil },
		})
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/health"))
		testutil.AssertStatusOK(t, rr)
		testutil.AssertJSONContains(t, rr, "postgres", "ok")
	})

	t.Run("degraded", func(t *testing.T) {
		router, _ := newTestRouter(map[string]HealthCheck{
			"redis": func(context.Context) error { return errors.New("connection refused") },
		})
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/health"))
		testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
		testutil.AssertJSONContains(t, rr, "status", "degraded")
		testutil.AssertJSONContains(t, rr, "redis", "connection refused")
	})
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(nil)
	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/metrics"))
	testutil.AssertStatusOK(t, rr)
}
