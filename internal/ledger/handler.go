package ledger

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dashel-erp/dashel-erp/internal/platform/httpx"
)

// Handler wires HTTP endpoints for the ledger module.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a ledger handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers ledger routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/invoices", h.RecordInvoice)
	r.Post("/payments", h.RecordPayment)
	r.Get("/entries", h.Ledger)
	r.Get("/balances", h.Balances)
}

// RecordInvoice records a supplier invoice.
func (h *Handler) RecordInvoice(w http.ResponseWriter, r *http.Request) {
	var req RecordInvoiceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.Validationf("invalid JSON body"))
		return
	}
	id, err := h.service.RecordInvoice(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, "Invoice recorded", id)
}

// RecordPayment records a supplier payment.
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req RecordPaymentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.Validationf("invalid JSON body"))
		return
	}
	id, err := h.service.RecordPayment(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Created(w, "Payment recorded", id)
}

// Ledger returns the merged invoice/payment history for one supplier.
func (h *Handler) Ledger(w http.ResponseWriter, r *http.Request) {
	supplierID, _ := strconv.ParseInt(r.URL.Query().Get("supplier_id"), 10, 64)
	if supplierID <= 0 {
		httpx.RespondError(w, httpx.Validationf("supplier_id is required"))
		return
	}
	entries, err := h.service.Ledger(r.Context(), supplierID)
	if err != nil {
		h.logger.Error("supplier ledger", slog.Any("error", err), slog.Int64("supplier_id", supplierID))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, entries)
}

// Balances returns per-supplier owed totals.
func (h *Handler) Balances(w http.ResponseWriter, r *http.Request) {
	balances, err := h.service.Balances(r.Context())
	if err != nil {
		h.logger.Error("supplier balances", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, balances)
}
