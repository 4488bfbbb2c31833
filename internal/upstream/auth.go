package upstream

import (
	"encoding/base64"
	"strings"
)

// DefaultPrincipal is prepended to bare API keys.
const DefaultPrincipal = "1"

// AuthorizationHeader builds the Basic credential for a tenant.
//
// A credential already starting with "Basic " is used verbatim. A credential
// containing ":" is treated as principal:key and encoded as-is. Anything else
// is a bare key and gets DefaultPrincipal prepended.
func AuthorizationHeader(credential string) string {
	credential = strings.TrimSpace(credential)
	if strings.HasPrefix(credential, "Basic ") {
		return credential
	}
	pair := credential
	if !strings.Contains(pair, ":") {
		pair = DefaultPrincipal + ":" + pair
	}
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(pair))
}
