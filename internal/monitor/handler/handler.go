package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ixcbridge/internal/monitor"
	dErrors "ixcbridge/pkg/domain-errors"
	"ixcbridge/pkg/platform/httputil"
	"ixcbridge/pkg/platform/middleware/request"
)

// Monitor is the contract monitor surface exposed over HTTP.
type Monitor interface {
	Snapshot() monitor.Snapshot
	Trigger(ctx context.Context) error
	Dismiss() monitor.Snapshot
}

// Feed upgrades a request into a live subscription.
type Feed interface {
	Serve(w http.ResponseWriter, r *http.Request, greeting any)
}

type Handler struct {
	logger  *slog.Logger
	monitor Monitor
	feed    Feed
}

// New builds the handler. feed may be nil, in which case the websocket route
// answers 503.
func New(m Monitor, feed Feed, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, monitor: m, feed: feed}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/monitor", func(r chi.Router) {
		r.Get("/", h.handleSnapshot)
		r.Post("/run", h.handleRun)
		r.Post("/dismiss", h.handleDismiss)
		r.Get("/feed", h.handleFeed)
	})
}

func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.monitor.Snapshot())
}

// handleRun starts an immediate cycle and answers before it completes.
func (h *Handler) handleRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.monitor.Trigger(ctx); err != nil {
		if errors.Is(err, monitor.ErrRunInProgress) {
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeConflict, "a contract check is already running"))
			return
		}
		h.logger.ErrorContext(ctx, "failed to trigger contract check",
			"request_id", request.GetRequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to trigger contract check"))
		return
	}
	h.logger.InfoContext(ctx, "contract check triggered manually",
		"request_id", request.GetRequestID(ctx),
	)
	httputil.WriteJSON(w, http.StatusAccepted, h.monitor.Snapshot())
}

func (h *Handler) handleDismiss(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.monitor.Dismiss())
}

func (h *Handler) handleFeed(w http.ResponseWriter, r *http.Request) {
	if h.feed == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnavailable, "live feed is not enabled"))
		return
	}
	h.feed.Serve(w, r, h.monitor.Snapshot())
}
