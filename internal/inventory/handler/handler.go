package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ixcbridge/internal/inventory/models"
	"ixcbridge/internal/inventory/service"
	dErrors "ixcbridge/pkg/domain-errors"
	"ixcbridge/pkg/platform/httputil"
	"ixcbridge/pkg/platform/middleware/request"
)

// Service defines the equipment operations exposed over HTTP.
type Service interface {
	List(ctx context.Context, f models.Filter) ([]*models.Equipment, error)
	Get(ctx context.Context, equipmentID int64) (*models.Equipment, error)
	Create(ctx context.Context, d service.Details) (*models.Equipment, error)
	UpdateDetails(ctx context.Context, equipmentID int64, d service.Details) (*models.Equipment, error)
	Delete(ctx context.Context, equipmentID int64) error
	History(ctx context.Context, equipmentID int64) ([]*models.HistoryEntry, error)
	Provision(ctx context.Context, equipmentID int64, p service.Provisioning) (*models.Equipment, error)
	ReturnToStock(ctx context.Context, equipmentID int64, notes string) (*models.Equipment, error)
	ChangeStatus(ctx context.Context, equipmentID int64, status models.Status, notes string) (*models.Equipment, error)
	Stats(ctx context.Context) (*models.Stats, error)
}

// Handler serves the tracked-equipment endpoints.
type Handler struct {
	logger    *slog.Logger
	inventory Service
}

func New(inventory Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, inventory: inventory}
}

// Register registers the inventory routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/inventory", func(r chi.Router) {
		r.Get("/stats", h.handleStats)
		r.Get("/equipment", h.handleList)
		r.Post("/equipment", h.handleCreate)
		r.Route("/equipment/{id}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleUpdate)
			r.Delete("/", h.handleDelete)
			r.Get("/history", h.handleHistory)
			r.Post("/provision", h.handleProvision)
			r.Post("/return", h.handleReturn)
			r.Post("/status", h.handleChangeStatus)
		})
	})
}

type notesRequest struct {
	Notes string `json:"notes"`
}

type statusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

type listResponse struct {
	Total     int                 `json:"total"`
	Equipment []*models.Equipment `json:"equipment"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	f := models.Filter{Search: r.URL.Query().Get("q")}
	if raw := r.URL.Query().Get("status"); raw != "" {
		st, err := models.ParseStatus(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, err.Error()))
			return
		}
		f.Status = st
	}
	out, err := h.inventory.List(r.Context(), f)
	if err != nil {
		h.fail(w, r, "list equipment", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{Total: len(out), Equipment: out})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var d service.Details
	if !h.decode(w, r, &d) {
		return
	}
	e, err := h.inventory.Create(r.Context(), d)
	if err != nil {
		h.fail(w, r, "create equipment", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, e)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	equipmentID, ok := h.equipmentID(w, r)
	if !ok {
		return
	}
	e, err := h.inventory.Get(r.Context(), equipmentID)
	if err != nil {
		h.fail(w, r, "get equipment", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	equipmentID, ok := h.equipmentID(w, r)
	if !ok {
		return
	}
	var d service.Details
	if !h.decode(w, r, &d) {
		return
	}
	e, err := h.inventory.UpdateDetails(r.Context(), equipmentID, d)
	if err != nil {
		h.fail(w, r, "update equipment", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	equipmentID, ok := h.equipmentID(w, r)
	if !ok {
		return
	}
	if err := h.inventory.Delete(r.Context(), equipmentID); err != nil {
		h.fail(w, r, "delete equipment", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	equipmentID, ok := h.equipmentID(w, r)
	if !ok {
		return
	}
	entries, err := h.inventory.History(r.Context(), equipmentID)
	if err != nil {
		h.fail(w, r, "equipment history", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entries)
}

func (h *Handler) handleProvision(w http.ResponseWriter, r *http.Request) {
	equipmentID, ok := h.equipmentID(w, r)
	if !ok {
		return
	}
	var p service.Provisioning
	if !h.decode(w, r, &p) {
		return
	}
	e, err := h.inventory.Provision(r.Context(), equipmentID, p)
	if err != nil {
		h.fail(w, r, "provision equipment", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) handleReturn(w http.ResponseWriter, r *http.Request) {
	equipmentID, ok := h.equipmentID(w, r)
	if !ok {
		return
	}
	var req notesRequest
	if r.ContentLength != 0 && !h.decode(w, r, &req) {
		return
	}
	e, err := h.inventory.ReturnToStock(r.Context(), equipmentID, req.Notes)
	if err != nil {
		h.fail(w, r, "return equipment", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) handleChangeStatus(w http.ResponseWriter, r *http.Request) {
	equipmentID, ok := h.equipmentID(w, r)
	if !ok {
		return
	}
	var req statusRequest
	if !h.decode(w, r, &req) {
		return
	}
	st, err := models.ParseStatus(req.Status)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, err.Error()))
		return
	}
	e, err := h.inventory.ChangeStatus(r.Context(), equipmentID, st, req.Notes)
	if err != nil {
		h.fail(w, r, "change equipment status", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.inventory.Stats(r.Context())
	if err != nil {
		h.fail(w, r, "inventory stats", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, st)
}

func (h *Handler) equipmentID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	equipmentID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || equipmentID <= 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid equipment id"))
		return 0, false
	}
	return equipmentID, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.logger.WarnContext(r.Context(), "invalid inventory request",
			"request_id", request.GetRequestID(r.Context()),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return false
	}
	return true
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
