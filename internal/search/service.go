package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/dashel-erp/dashel-erp/internal/platform/httpx"
)

// SearchRepository is the query contract for the search service.
type SearchRepository interface {
	Products(ctx context.Context, query string) ([]Result, error)
	Suppliers(ctx context.Context, query string) ([]Result, error)
}

// Service validates and runs searches.
type Service struct {
	repo SearchRepository
}

// NewService constructs a search service.
func NewService(repo SearchRepository) *Service {
	return &Service{repo: repo}
}

// Search runs a case-insensitive substring search over product and active
// supplier names. Queries shorter than two characters are rejected.
func (s *Service) Search(ctx context.Context, query string) (Results, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return Results{}, httpx.Validationf("query must be at least 2 characters")
	}

	products, err := s.repo.Products(ctx, query)
	if err != nil {
		return Results{}, fmt.Errorf("search products: %w", err)
	}
	suppliers, err := s.repo.Suppliers(ctx, query)
	if err != nil {
		return Results{}, fmt.Errorf("search suppliers: %w", err)
	}

	if products == nil {
		products = []Result{}
	}
	if suppliers == nil {
		suppliers = []Result{}
	}
	return Results{Products: products, Suppliers: suppliers}, nil
}
