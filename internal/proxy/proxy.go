// Package proxy relays requests to the upstream host named by the caller.
//
// An inbound path /<route-segment>/<rest...> is forwarded to
// <x-ixc-target without trailing slash>/<rest...> with the query preserved.
// The same Proxy serves the production mount and the development intercept.
package proxy

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"ixcbridge/internal/proxy/metrics"
)

// HeaderTarget names the upstream base URL to relay to.
const HeaderTarget = "x-ixc-target"

const (
	msgMissingTarget = "Missing x-ixc-target header"
	msgInvalidTarget = "Invalid x-ixc-target header"
)

type targetKey struct{}

type relayState struct {
	target *url.URL
	start  time.Time
}

// Proxy is an http.Handler relaying to a per-request target.
type Proxy struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	rp      *httputil.ReverseProxy
}

type Option func(*Proxy)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Proxy) {
		p.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Proxy) {
		p.metrics = m
	}
}

// WithTransport overrides the round tripper used to reach tenant hosts.
func WithTransport(rt http.RoundTripper) Option {
	return func(p *Proxy) {
		p.rp.Transport = rt
	}
}

func New(opts ...Option) *Proxy {
	p := &Proxy{logger: slog.Default()}
	p.rp = &httputil.ReverseProxy{
		Rewrite:        p.rewrite,
		ModifyResponse: p.modifyResponse,
		ErrorHandler:   p.handleError,
		// flush immediately so paged listings stream through
		FlushInterval: -1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.Header.Get(HeaderTarget))
	if raw == "" {
		p.reject(w, "missing_target", msgMissingTarget)
		return
	}
	target, err := ResolveTarget(raw, r.URL)
	if err != nil {
		p.logger.WarnContext(r.Context(), "relay target rejected", "target", raw, "error", err)
		p.reject(w, "invalid_target", msgInvalidTarget)
		return
	}

	ctx := context.WithValue(r.Context(), targetKey{}, &relayState{target: target, start: time.Now()})
	p.rp.ServeHTTP(w, r.WithContext(ctx))
}

// ResolveTarget builds the outbound URL: the first path segment of in is
// dropped and the remainder appended to base with its trailing slash trimmed.
func ResolveTarget(base string, in *url.URL) (*url.URL, error) {
	joined := strings.TrimRight(base, "/") + StripRouteSegment(in.EscapedPath())
	out, err := url.Parse(joined)
	if err != nil {
		return nil, err
	}
	if (out.Scheme != "http" && out.Scheme != "https") || out.Host == "" {
		return nil, &url.Error{Op: "parse", URL: base, Err: errUnsupportedTarget}
	}
	out.RawQuery = in.RawQuery
	return out, nil
}

// StripRouteSegment removes the leading "/<segment>" from path.
func StripRouteSegment(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		return trimmed[i:]
	}
	return ""
}

func (p *Proxy) rewrite(pr *httputil.ProxyRequest) {
	state := pr.In.Context().Value(targetKey{}).(*relayState)
	pr.Out.URL = state.target
	pr.Out.Host = state.target.Host
}

func (p *Proxy) modifyResponse(resp *http.Response) error {
	resp.Header.Del("WWW-Authenticate")
	resp.Header.Set("Access-Control-Allow-Origin", "*")
	if state, ok := resp.Request.Context().Value(targetKey{}).(*relayState); ok && p.metrics != nil {
		p.metrics.ObserveRelayed(resp.StatusCode, state.start)
	}
	return nil
}

func (p *Proxy) handleError(w http.ResponseWriter, r *http.Request, err error) {
	target := ""
	if state, ok := r.Context().Value(targetKey{}).(*relayState); ok {
		target = state.target.String()
		if p.metrics != nil {
			p.metrics.ObserveRelayed(http.StatusBadGateway, state.start)
		}
	}
	p.logger.ErrorContext(r.Context(), "relay to upstream failed",
		"target", target,
		"method", r.Method,
		"error", err,
	)
	writeJSONError(w, http.StatusBadGateway, err.Error())
}

func (p *Proxy) reject(w http.ResponseWriter, reason, msg string) {
	if p.metrics != nil {
		p.metrics.IncRejected(reason)
	}
	writeJSONError(w, http.StatusBadRequest, msg)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
