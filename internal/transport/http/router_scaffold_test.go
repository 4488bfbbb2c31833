package httptransport

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"ixcbridge/pkg/testutil"
)

func TestRouterScaffold(t *testing.T) {
	testutil.Given(t, "a router without a relay", func(t *testing.T) {
		router := NewRouter(Config{
			Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
			Validator: stubValidator{accountID: "unused"},
			Handlers:  []Registrar{whoami{}},
		})

		testutil.When(t, "calling the relay prefix", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodPost, RelayPrefix+"/tenant-1/webservice/v1/cliente"))

			testutil.Then(t, "it should respond with not found", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusNotFound)
			})
		})

		testutil.When(t, "calling an API route with a rejected token", func(t *testing.T) {
			req := testutil.NewRequest(t, http.MethodGet, "/whoami")
			req.Header.Set("Authorization", "Bearer expired")
			rr := testutil.DoRequest(router, req)

			testutil.Then(t, "it should respond with unauthorized", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
			})
		})
	})
}
