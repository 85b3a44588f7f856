package suppliers

import (
	"context"
	"fmt"
	"strings"

	"github.com/dashel-erp/dashel-erp/internal/platform/httpx"
)

// Service provides business logic for supplier management.
type Service struct {
	repo Repository
}

// NewService constructs a supplier service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListActive returns all active suppliers ordered by name.
func (s *Service) ListActive(ctx context.Context) ([]Supplier, error) {
	return s.repo.ListActive(ctx)
}

// Create inserts a new active supplier.
func (s *Service) Create(ctx context.Context, req CreateSupplierRequest) (int64, error) {
	var missing []string
	if strings.TrimSpace(req.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(req.Phone) == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return 0, httpx.MissingFields(missing...)
	}
	if err := httpx.ValidateStruct(req); err != nil {
		return 0, err
	}

	supplier := Supplier{
		Name:             req.Name,
		Phone:            req.Phone,
		Email:            req.Email,
		Address:          req.Address,
		ProductsSupplied: req.ProductsSupplied,
		PaymentTerms:     req.PaymentTerms,
		BankName:         req.BankName,
		BankAccount:      req.BankAccount,
		BankBranch:       req.BankBranch,
		IsActive:         true,
	}

	id, err := s.repo.Create(ctx, supplier)
	if err != nil {
		return 0, fmt.Errorf("create supplier: %w", err)
	}
	return id, nil
}
