package analytics

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// StatsRepository is the query contract the service aggregates over.
type StatsRepository interface {
	SalesBuckets(ctx context.Context, filter AggregateFilter) ([]Bucket, error)
	SalesTotals(ctx context.Context) (sales, profit float64, err error)
	InventoryTotals(ctx context.Context) (value float64, lowStock, products int64, err error)
	SupplierCount(ctx context.Context) (int64, error)
	RecentSales(ctx context.Context, limit int) ([]RecentSale, error)
}

// Service coordinates analytics query execution with the cache layer.
type Service struct {
	repo  StatsRepository
	cache *Cache
}

// NewService wires a StatsRepository with a Cache helper.
func NewService(repo StatsRepository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// SalesAnalytics returns the bucketed sales, cost and profit series.
func (s *Service) SalesAnalytics(ctx context.Context, filter AggregateFilter) ([]Bucket, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		return s.repo.SalesBuckets(ctx, filter)
	}

	key, err := s.cache.BuildKey(ctx, keySales(filter))
	if err != nil {
		return nil, fmt.Errorf("sales analytics cache key: %w", err)
	}
	var buckets []Bucket
	if err := s.cache.FetchJSON(ctx, key, &buckets, loader); err != nil {
		return nil, fmt.Errorf("sales analytics: %w", err)
	}
	return buckets, nil
}

// Dashboard loads the KPI block, fanning the independent queries out
// concurrently.
func (s *Service) Dashboard(ctx context.Context) (DashboardStats, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		var stats DashboardStats
		g, ctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			sales, profit, err := s.repo.SalesTotals(ctx)
			if err != nil {
				return err
			}
			stats.TotalSales = sales
			stats.Profit = profit
			return nil
		})

		g.Go(func() error {
			value, lowStock, products, err := s.repo.InventoryTotals(ctx)
			if err != nil {
				return err
			}
			stats.TotalInventoryValue = value
			stats.LowStockItems = lowStock
			stats.TotalProducts = products
			return nil
		})

		g.Go(func() error {
			n, err := s.repo.SupplierCount(ctx)
			if err != nil {
				return err
			}
			stats.TotalSuppliers = n
			return nil
		})

		g.Go(func() error {
			recent, err := s.repo.RecentSales(ctx, recentSalesLimit)
			if err != nil {
				return err
			}
			stats.RecentSales = recent
			return nil
		})

		if err := g.Wait(); err != nil {
			return DashboardStats{}, err
		}
		if stats.RecentSales == nil {
			stats.RecentSales = []RecentSale{}
		}
		return stats, nil
	}

	key, err := s.cache.BuildKey(ctx, keyDashboard())
	if err != nil {
		return DashboardStats{}, fmt.Errorf("dashboard cache key: %w", err)
	}
	var stats DashboardStats
	if err := s.cache.FetchJSON(ctx, key, &stats, loader); err != nil {
		return DashboardStats{}, fmt.Errorf("dashboard: %w", err)
	}
	return stats, nil
}
