package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dashel-erp/dashel-erp/internal/platform/httpx"
)

// ItemRepository is the persistence contract for the inventory service.
type ItemRepository interface {
	List(ctx context.Context) ([]Item, error)
	Insert(ctx context.Context, item Item) (int64, error)
}

// Service provides business logic for inventory items.
type Service struct {
	repo ItemRepository
}

// NewService constructs an inventory service.
func NewService(repo ItemRepository) *Service {
	return &Service{repo: repo}
}

// List returns all items alphabetically by product name.
func (s *Service) List(ctx context.Context) ([]Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	return items, nil
}

// Add inserts a new item, defaulting reorder_level when omitted.
func (s *Service) Add(ctx context.Context, req AddItemRequest) (int64, error) {
	if strings.TrimSpace(req.ProductName) == "" {
		return 0, httpx.MissingFields("product_name")
	}
	if err := httpx.ValidateStruct(req); err != nil {
		return 0, err
	}

	reorder := DefaultReorderLevel
	if req.ReorderLevel != nil {
		reorder = *req.ReorderLevel
	}

	id, err := s.repo.Insert(ctx, Item{
		ProductName:  req.ProductName,
		Quantity:     req.Quantity,
		BuyingPrice:  req.BuyingPrice,
		SellingPrice: req.SellingPrice,
		SupplierID:   req.SupplierID,
		ReorderLevel: reorder,
		Description:  req.Description,
	})
	if err != nil {
		if errors.Is(err, ErrUnknownSupplier) {
			return 0, httpx.Validationf("supplier_id does not reference an existing supplier")
		}
		return 0, fmt.Errorf("add inventory item: %w", err)
	}
	return id, nil
}
