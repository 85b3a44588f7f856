package search

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dashel-erp/dashel-erp/internal/platform/httpx"
)

// Handler wires the search endpoint.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a search handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers the search route.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.Search)
}

// Search handles GET ?q=<query>.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, results)
}
