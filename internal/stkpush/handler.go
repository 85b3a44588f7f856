package stkpush

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dashel-erp/dashel-erp/internal/platform/httpx"
)

// Handler wires HTTP endpoints for mobile-money collection.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs an stkpush handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers push initiation and history routes. The gateway
// callback is mounted separately since it must bypass the API key guard.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.Initiate)
	r.Get("/history", h.History)
}

// Initiate starts a collection attempt.
func (h *Handler) Initiate(w http.ResponseWriter, r *http.Request) {
	var req InitiateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.Validationf("invalid JSON body"))
		return
	}
	resp, err := h.service.Initiate(r.Context(), req)
	if err != nil {
		// A declined push still carries the gateway response body.
		if errors.Is(err, httpx.ErrValidation) && resp.ResponseCode != "" {
			httpx.JSON(w, http.StatusBadRequest, httpx.Envelope{Success: false, Message: "STK push failed", Data: resp})
			return
		}
		h.logger.Error("initiate stk push", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, httpx.Envelope{Success: true, Message: "STK push sent successfully", Data: resp})
}

// History lists recent collection attempts.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	pushes, err := h.service.History(r.Context())
	if err != nil {
		h.logger.Error("stk history", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if pushes == nil {
		pushes = []Push{}
	}
	httpx.OK(w, pushes)
}

// Callback receives the gateway's asynchronous result. It always responds
// with the accepted acknowledgement; internal failures are logged, never
// surfaced to the gateway.
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	var env CallbackEnvelope
	if err := httpx.DecodeJSON(r, &env); err != nil {
		h.logger.Error("decode stk callback", slog.Any("error", err))
	} else if err := h.service.HandleCallback(r.Context(), env); err != nil {
		h.logger.Error("handle stk callback", slog.Any("error", err))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"ResultCode": 0, "ResultDesc": "Accepted"})
}
