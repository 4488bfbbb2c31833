package proxy

import (
	"net/http"
	"strings"
)

// Mount serves the relay under prefix, e.g. "/api/ixc".
func (p *Proxy) Mount(prefix string) http.Handler {
	return http.StripPrefix(strings.TrimRight(prefix, "/"), p)
}

// Intercept is the development deployment: requests under prefix are relayed
// exactly as Mount would, everything else goes to next.
func (p *Proxy) Intercept(prefix string, next http.Handler) http.Handler {
	prefix = strings.TrimRight(prefix, "/")
	mounted := p.Mount(prefix)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == prefix || strings.HasPrefix(r.URL.Path, prefix+"/") {
			mounted.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
