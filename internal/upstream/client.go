// Package upstream talks to the ISP management platform through the relay.
//
// Every call is a POST to {relay}/{tenant}/webservice/v1/{resource} carrying the
// tenant's real host in the x-ixc-target header; the client never dials the
// tenant host directly.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"ixcbridge/internal/upstream/metrics"
)

// Header names of the upstream convention.
const (
	HeaderTarget = "x-ixc-target"
	HeaderAction = "ixcsoft"
	actionList   = "listar"
)

// HTTPDoer is the transport used for relay calls.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues listing queries against a tenant's upstream.
type Client struct {
	relayBase string
	http      HTTPDoer
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

type Option func(*Client)

func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.http = doer
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(c *Client) {
		c.tracer = t
	}
}

// New constructs a Client that sends every request through the relay mounted at relayBase
// (for example "http://127.0.0.1:8080/api/ixc").
func New(relayBase string, opts ...Option) (*Client, error) {
	relayBase = strings.TrimRight(strings.TrimSpace(relayBase), "/")
	if relayBase == "" {
		return nil, errors.New("relay base URL is required")
	}
	if _, err := url.ParseRequestURI(relayBase); err != nil {
		return nil, fmt.Errorf("invalid relay base URL: %w", err)
	}
	c := &Client{
		relayBase: relayBase,
		http:      &http.Client{},
		logger:    slog.Default(),
		tracer:    otel.Tracer("ixcbridge/internal/upstream"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Query runs one listing query and decodes the response envelope.
func (c *Client) Query(ctx context.Context, tenant TenantContext, resource Resource, filter Filter) (*Page, error) {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, "upstream.query", trace.WithAttributes(
		attribute.String("upstream.resource", string(resource)),
		attribute.String("upstream.tenant_id", tenant.TenantID.String()),
		attribute.Int("upstream.page", filter.Page),
	))
	defer span.End()

	page, err := c.query(ctx, tenant, resource, filter)
	outcome := "ok"
	if err != nil {
		outcome = string(GetCategory(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	} else {
		span.SetAttributes(attribute.Int("upstream.records", len(page.Records)))
	}
	if c.metrics != nil {
		c.metrics.ObserveRequest(string(resource), outcome, start)
	}
	return page, err
}

func (c *Client) query(ctx context.Context, tenant TenantContext, resource Resource, filter Filter) (*Page, error) {
	payload, err := json.Marshal(newQueryBody(resource, filter))
	if err != nil {
		return nil, NewError(CategoryInternal, resource, "encode query", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(tenant, resource), bytes.NewReader(payload))
	if err != nil {
		return nil, NewError(CategoryInternal, resource, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderAction, actionList)
	req.Header.Set("Authorization", AuthorizationHeader(tenant.Credential))
	req.Header.Set(HeaderTarget, tenant.Target())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, NewError(CategoryUnreachable, resource, "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewError(CategoryUnreachable, resource, "read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.WarnContext(ctx, "upstream returned non-success status",
			"tenant_id", tenant.TenantID.String(),
			"resource", string(resource),
			"status", resp.StatusCode,
		)
		return nil, newHTTPError(resource, resp.StatusCode, body)
	}

	if isHTML(resp.Header.Get("Content-Type"), body) || !json.Valid(body) {
		e := NewError(CategoryProtocol, resource, "response is not JSON; check the upstream base URL", nil)
		e.Status = resp.StatusCode
		e.Body = excerpt(body)
		return nil, e
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		e := NewError(CategoryProtocol, resource, "unexpected response shape", err)
		e.Body = excerpt(body)
		return nil, e
	}
	if strings.EqualFold(env.Type, "error") {
		msg := env.Message
		if msg == "" {
			msg = "upstream rejected the query"
		}
		return nil, NewError(CategoryRejected, resource, msg, nil)
	}

	return &Page{Total: parseTotal(env.Total), Records: env.Registros}, nil
}

func (c *Client) endpoint(tenant TenantContext, resource Resource) string {
	return fmt.Sprintf("%s/%s/webservice/v1/%s", c.relayBase, url.PathEscape(tenant.TenantID.String()), resource)
}

func isHTML(contentType string, body []byte) bool {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil && mediaType == "text/html" {
		return true
	}
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && trimmed[0] == '<'
}

// decodeRecords unmarshals raw records into typed values.
func decodeRecords[T any](resource Resource, raw []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(raw))
	for _, r := range raw {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			return nil, NewError(CategoryProtocol, resource, "decode record", err)
		}
		out = append(out, v)
	}
	return out, nil
}
