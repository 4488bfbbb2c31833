// Package handler exposes the synchronized customer catalog of the caller's
// active tenant.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ixcbridge/internal/catalog/models"
	tenantmodels "ixcbridge/internal/tenant/models"
	id "ixcbridge/pkg/domain"
	dErrors "ixcbridge/pkg/domain-errors"
	"ixcbridge/pkg/platform/httputil"
	"ixcbridge/pkg/platform/middleware/request"
	"ixcbridge/pkg/requestcontext"
)

// Lister reads one tenant's catalog.
type Lister interface {
	List(ctx context.Context, tenantID id.TenantID, q models.Query) (*models.ListResult, error)
}

// ActiveTenants resolves the caller's active tenant config.
type ActiveTenants interface {
	Active(ctx context.Context, owner id.AccountID) (*tenantmodels.TenantConfig, error)
}

type Handler struct {
	logger  *slog.Logger
	catalog Lister
	tenants ActiveTenants
}

func New(catalog Lister, tenants ActiveTenants, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, catalog: catalog, tenants: tenants}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/customers", h.handleList)
}

// handleList serves GET /customers?q=&limit=.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	owner := requestcontext.AccountID(ctx)
	if owner.IsNil() {
		h.logger.ErrorContext(ctx, "account missing from context despite auth middleware",
			"request_id", requestID,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}

	q := models.Query{Search: r.URL.Query().Get("q")}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be an integer"))
			return
		}
		q.Limit = limit
	}

	tenant, err := h.tenants.Active(ctx, owner)
	if err != nil {
		h.logger.WarnContext(ctx, "no active tenant for catalog listing",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	result, err := h.catalog.List(ctx, tenant.ID, q)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list customers",
			"request_id", requestID,
			"tenant_id", tenant.ID.String(),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list customers"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}
