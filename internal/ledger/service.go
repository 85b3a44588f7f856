package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dashel-erp/dashel-erp/internal/platform/httpx"
)

// Service provides business logic for the supplier financial ledger.
type Service struct {
	repo Repository
}

// NewService constructs a ledger service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RecordInvoice appends a supplier invoice.
func (s *Service) RecordInvoice(ctx context.Context, req RecordInvoiceRequest) (int64, error) {
	if err := s.validate(ctx, req.SupplierID, req.Amount); err != nil {
		return 0, err
	}
	id, err := s.repo.InsertInvoice(ctx, Invoice{
		SupplierID:  req.SupplierID,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, ErrUnknownSupplier) {
			return 0, httpx.Validationf("supplier %d does not exist", req.SupplierID)
		}
		return 0, fmt.Errorf("record invoice: %w", err)
	}
	return id, nil
}

// RecordPayment appends a supplier payment.
func (s *Service) RecordPayment(ctx context.Context, req RecordPaymentRequest) (int64, error) {
	if err := s.validate(ctx, req.SupplierID, req.Amount); err != nil {
		return 0, err
	}
	id, err := s.repo.InsertPayment(ctx, Payment{
		SupplierID: req.SupplierID,
		Amount:     req.Amount,
		Method:     req.Method,
		Reference:  req.Reference,
	})
	if err != nil {
		if errors.Is(err, ErrUnknownSupplier) {
			return 0, httpx.Validationf("supplier %d does not exist", req.SupplierID)
		}
		return 0, fmt.Errorf("record payment: %w", err)
	}
	return id, nil
}

// Ledger merges a supplier's invoices and payments into one sequence sorted
// by creation time descending. Equal timestamps keep their relative order.
func (s *Service) Ledger(ctx context.Context, supplierID int64) ([]Entry, error) {
	if supplierID <= 0 {
		return nil, httpx.MissingFields("supplier_id")
	}

	invoices, err := s.repo.ListInvoices(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	payments, err := s.repo.ListPayments(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	entries := make([]Entry, 0, len(invoices)+len(payments))
	for _, inv := range invoices {
		entries = append(entries, Entry{
			ID:          inv.ID,
			Type:        EntryInvoice,
			Amount:      inv.Amount,
			Description: inv.Description,
			CreatedAt:   inv.CreatedAt,
		})
	}
	for _, pay := range payments {
		entries = append(entries, Entry{
			ID:        pay.ID,
			Type:      EntryPayment,
			Amount:    pay.Amount,
			Method:    pay.Method,
			Reference: pay.Reference,
			CreatedAt: pay.CreatedAt,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

// Balances recomputes invoices_total, payments_total and owed for every
// active supplier.
func (s *Service) Balances(ctx context.Context) ([]Balance, error) {
	return s.repo.Balances(ctx)
}

func (s *Service) validate(ctx context.Context, supplierID int64, amount float64) error {
	var missing []string
	if supplierID <= 0 {
		missing = append(missing, "supplier_id")
	}
	if amount == 0 {
		missing = append(missing, "amount")
	}
	if len(missing) > 0 {
		return httpx.MissingFields(missing...)
	}
	if amount < 0 {
		return httpx.Validationf("amount must be positive")
	}

	ok, err := s.repo.SupplierExists(ctx, supplierID)
	if err != nil {
		return fmt.Errorf("check supplier: %w", err)
	}
	if !ok {
		return httpx.Validationf("supplier %d does not exist", supplierID)
	}
	return nil
}
