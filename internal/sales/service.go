package sales

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dashel-erp/dashel-erp/internal/platform/httpx"
)

// CacheBumper invalidates derived analytics after a write. Nil disables
// invalidation.
type CacheBumper interface {
	Bump(ctx context.Context) error
}

// SaleRepository is the persistence contract for the sales service.
type SaleRepository interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	List(ctx context.Context, page, limit int) ([]Sale, int64, error)
}

// Service provides business logic for recording and listing sales.
type Service struct {
	repo   SaleRepository
	bumper CacheBumper
	logger *slog.Logger
}

// NewService constructs a sales service.
func NewService(repo SaleRepository, bumper CacheBumper, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, bumper: bumper, logger: logger}
}

// RecordSale inserts the sale and decrements the matching inventory row in
// one transaction; either both writes land or neither does.
func (s *Service) RecordSale(ctx context.Context, req RecordSaleRequest) (int64, error) {
	var missing []string
	if strings.TrimSpace(req.ProductName) == "" {
		missing = append(missing, "product_name")
	}
	if req.Quantity == 0 {
		missing = append(missing, "quantity")
	}
	if req.UnitPrice == 0 {
		missing = append(missing, "unit_price")
	}
	if strings.TrimSpace(req.SaleDate) == "" {
		missing = append(missing, "sale_date")
	}
	if len(missing) > 0 {
		return 0, httpx.MissingFields(missing...)
	}
	if err := httpx.ValidateStruct(req); err != nil {
		return 0, err
	}
	saleDate, err := time.Parse("2006-01-02", req.SaleDate)
	if err != nil {
		return 0, httpx.Validationf("sale_date must be YYYY-MM-DD")
	}

	sale := Sale{
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		TotalPrice:  req.Quantity * req.UnitPrice,
		SaleDate:    saleDate,
		Notes:       req.Notes,
	}

	var id int64
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		var err error
		id, err = tx.InsertSale(ctx, sale)
		if err != nil {
			return err
		}
		return tx.DecrementStock(ctx, sale.ProductName, sale.Quantity)
	})
	if err != nil {
		return 0, fmt.Errorf("record sale: %w", err)
	}

	if s.bumper != nil {
		if err := s.bumper.Bump(ctx); err != nil {
			s.logger.Warn("analytics cache bump failed", slog.Any("error", err))
		}
	}
	return id, nil
}

// List returns one page of sales with pagination metadata.
func (s *Service) List(ctx context.Context, page int) ([]Sale, Pagination, error) {
	if page < 1 {
		page = 1
	}
	sales, total, err := s.repo.List(ctx, page, PageSize)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("list sales: %w", err)
	}
	pages := (total + PageSize - 1) / PageSize
	return sales, Pagination{Page: page, Limit: PageSize, Total: total, Pages: pages}, nil
}
