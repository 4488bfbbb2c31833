package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ixcbridge/internal/bulksync"
	"ixcbridge/internal/tenant/models"
	"ixcbridge/internal/tenant/service"
	"ixcbridge/internal/upstream"
	id "ixcbridge/pkg/domain"
	dErrors "ixcbridge/pkg/domain-errors"
	"ixcbridge/pkg/platform/httputil"
	"ixcbridge/pkg/platform/middleware/request"
	"ixcbridge/pkg/requestcontext"
)

// Service defines the tenant config operations exposed over HTTP.
type Service interface {
	Create(ctx context.Context, owner id.AccountID, in service.ConfigInput) (*models.TenantConfig, error)
	Update(ctx context.Context, owner id.AccountID, tenantID id.TenantID, in service.ConfigInput) (*models.TenantConfig, error)
	Delete(ctx context.Context, owner id.AccountID, tenantID id.TenantID) error
	Get(ctx context.Context, owner id.AccountID, tenantID id.TenantID) (*models.TenantConfig, error)
	List(ctx context.Context, owner id.AccountID) ([]*models.TenantConfig, error)
	Activate(ctx context.Context, owner id.AccountID, tenantID id.TenantID) (*models.TenantConfig, error)
	Active(ctx context.Context, owner id.AccountID) (*models.TenantConfig, error)
	TestConnection(ctx context.Context, owner id.AccountID, tenantID id.TenantID) (upstream.ConnectionResult, error)
	Sync(ctx context.Context, owner id.AccountID, tenantID id.TenantID) error
	SyncStatus(ctx context.Context, owner id.AccountID, tenantID id.TenantID) (*bulksync.Status, error)
}

// Handler serves the operator's tenant configs.
type Handler struct {
	logger  *slog.Logger
	tenants Service
}

func New(tenants Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, tenants: tenants}
}

// Register registers the tenant routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/tenants", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/active", h.handleActive)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleUpdate)
			r.Delete("/", h.handleDelete)
			r.Post("/activate", h.handleActivate)
			r.Post("/test", h.handleTest)
			r.Post("/sync", h.handleSync)
			r.Get("/sync", h.handleSyncStatus)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	configs, err := h.tenants.List(r.Context(), owner)
	if err != nil {
		h.fail(w, r, "list tenant configs", err)
		return
	}
	out := make([]ConfigResponse, 0, len(configs))
	for _, cfg := range configs {
		out = append(out, toResponse(cfg))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	cfg, err := h.tenants.Create(r.Context(), owner, req.Input())
	if err != nil {
		h.fail(w, r, "create tenant config", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(cfg))
}

func (h *Handler) handleActive(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	cfg, err := h.tenants.Active(r.Context(), owner)
	if err != nil {
		h.fail(w, r, "active tenant config", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(cfg))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	owner, tenantID, ok := h.scope(w, r)
	if !ok {
		return
	}
	cfg, err := h.tenants.Get(r.Context(), owner, tenantID)
	if err != nil {
		h.fail(w, r, "get tenant config", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(cfg))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	owner, tenantID, ok := h.scope(w, r)
	if !ok {
		return
	}
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	cfg, err := h.tenants.Update(r.Context(), owner, tenantID, req.Input())
	if err != nil {
		h.fail(w, r, "update tenant config", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(cfg))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	owner, tenantID, ok := h.scope(w, r)
	if !ok {
		return
	}
	if err := h.tenants.Delete(r.Context(), owner, tenantID); err != nil {
		h.fail(w, r, "delete tenant config", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleActivate(w http.ResponseWriter, r *http.Request) {
	owner, tenantID, ok := h.scope(w, r)
	if !ok {
		return
	}
	cfg, err := h.tenants.Activate(r.Context(), owner, tenantID)
	if err != nil {
		h.fail(w, r, "activate tenant config", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(cfg))
}

func (h *Handler) handleTest(w http.ResponseWriter, r *http.Request) {
	owner, tenantID, ok := h.scope(w, r)
	if !ok {
		return
	}
	result, err := h.tenants.TestConnection(r.Context(), owner, tenantID)
	if err != nil {
		h.fail(w, r, "test tenant connection", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleSync(w http.ResponseWriter, r *http.Request) {
	owner, tenantID, ok := h.scope(w, r)
	if !ok {
		return
	}
	if err := h.tenants.Sync(r.Context(), owner, tenantID); err != nil {
		h.fail(w, r, "start tenant sync", err)
		return
	}
	httputil.WriteJSON(w, http.StatusAccepted, map[string]string{"status": "started"})
}

func (h *Handler) handleSyncStatus(w http.ResponseWriter, r *http.Request) {
	owner, tenantID, ok := h.scope(w, r)
	if !ok {
		return
	}
	st, err := h.tenants.SyncStatus(r.Context(), owner, tenantID)
	if err != nil {
		h.fail(w, r, "tenant sync status", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, st)
}

func (h *Handler) owner(w http.ResponseWriter, r *http.Request) (id.AccountID, bool) {
	owner := requestcontext.AccountID(r.Context())
	if owner.IsNil() {
		// RequireAuth sets the account; reaching here means the route was mounted without it
		h.logger.ErrorContext(r.Context(), "account missing from context despite auth middleware",
			"request_id", request.GetRequestID(r.Context()),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return id.AccountID{}, false
	}
	return owner, true
}

func (h *Handler) scope(w http.ResponseWriter, r *http.Request) (id.AccountID, id.TenantID, bool) {
	owner, ok := h.owner(w, r)
	if !ok {
		return id.AccountID{}, id.TenantID{}, false
	}
	tenantID, err := id.ParseTenantID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.AccountID{}, id.TenantID{}, false
	}
	return owner, tenantID, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (*ConfigRequest, bool) {
	var req ConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(r.Context(), "invalid tenant config request",
			"request_id", request.GetRequestID(r.Context()),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return nil, false
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return nil, false
	}
	return &req, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	level := slog.LevelWarn
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		level = slog.LevelError
	}
	h.logger.Log(r.Context(), level, op+" failed",
		"request_id", request.GetRequestID(r.Context()),
		"error", err.Error(),
	)
	httputil.WriteError(w, err)
}
