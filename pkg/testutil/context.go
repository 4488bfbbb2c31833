package testutil

import (
	"net/http"

	id "ixcbridge/pkg/domain"
	"ixcbridge/pkg/requestcontext"
)

// WithAccountID adds an account ID to the request context, simulating what the
// auth middleware does for authenticated requests. Invalid IDs are ignored.
func WithAccountID(req *http.Request, accountID string) *http.Request {
	parsed, err := id.ParseAccountID(accountID)
	if err != nil {
		return req
	}
	return req.WithContext(requestcontext.WithAccountID(req.Context(), parsed))
}
