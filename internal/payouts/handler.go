package payouts

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dashel-erp/dashel-erp/internal/platform/httpx"
)

// Handler wires HTTP endpoints for the payouts module.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a payouts handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers payout routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.CreateDraft)
	r.Post("/export", h.Export)
}

// List returns bank payments with an optional ?status= filter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	status := Status(r.URL.Query().Get("status"))
	payments, err := h.service.List(r.Context(), status)
	if err != nil {
		h.logger.Error("list bank payments", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, payments)
}

// CreateDraft creates a bank payment draft.
func (h *Handler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	var req CreateDraftRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.Validationf("invalid JSON body"))
		return
	}
	id, err := h.service.CreateDraft(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, "Bank payment draft created", id)
}

// Export renders selected drafts as CSV and marks them exported.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.Validationf("invalid JSON body"))
		return
	}
	result, err := h.service.ExportBatch(r.Context(), req)
	if err != nil {
		h.logger.Error("export bank payments", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("bank payment batch exported",
		slog.String("batch_id", result.BatchID),
		slog.Int("count", result.Count))
	httpx.OK(w, map[string]any{"csv": result.CSV, "batch_id": result.BatchID})
}
