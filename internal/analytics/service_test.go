package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	buckets     []Bucket
	bucketCalls int
	sales       float64
	profit      float64
	invValue    float64
	lowStock    int64
	products    int64
	suppliers   int64
	recent      []RecentSale
}

func (f *fakeRepo) SalesBuckets(context.Context, AggregateFilter) ([]Bucket, error) {
	f.bucketCalls++
	return f.buckets, nil
}

func (f *fakeRepo) SalesTotals(context.Context) (float64, float64, error) {
	return f.sales, f.profit, nil
}

func (f *fakeRepo) InventoryTotals(context.Context) (float64, int64, int64, error) {
	return f.invValue, f.lowStock, f.products, nil
}

func (f *fakeRepo) SupplierCount(context.Context) (int64, error) {
	return f.suppliers, nil
}

func (f *fakeRepo) RecentSales(context.Context, int) ([]RecentSale, error) {
	return f.recent, nil
}

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute)
}

func TestSalesAnalyticsCachesUntilBump(t *testing.T) {
	repo := &fakeRepo{buckets: []Bucket{{Period: "2025-01", SalesTotal: 150, CostTotal: 90, Profit: 60}}}
	cache := newTestCache(t)
	svc := NewService(repo, cache)
	ctx := context.Background()
	filter := AggregateFilter{Granularity: Monthly}

	first, err := svc.SalesAnalytics(ctx, filter)
	require.NoError(t, err)
	require.Equal(t, repo.buckets, first)

	_, err = svc.SalesAnalytics(ctx, filter)
	require.NoError(t, err)
	require.Equal(t, 1, repo.bucketCalls)

	require.NoError(t, cache.Bump(ctx))
	_, err = svc.SalesAnalytics(ctx, filter)
	require.NoError(t, err)
	require.Equal(t, 2, repo.bucketCalls)
}

func TestSalesAnalyticsWithoutCache(t *testing.T) {
	repo := &fakeRepo{buckets: []Bucket{{Period: "2025", SalesTotal: 10}}}
	svc := NewService(repo, nil)

	buckets, err := svc.SalesAnalytics(context.Background(), AggregateFilter{Granularity: Yearly})
	require.NoError(t, err)
	require.Len(t, buckets, 1)
}

func TestDashboardAggregatesAllStats(t *testing.T) {
	repo := &fakeRepo{
		sales:     1500,
		profit:    420,
		invValue:  9800,
		lowStock:  2,
		products:  14,
		suppliers: 6,
		recent:    []RecentSale{{ID: 9, ProductName: "Hammer", Quantity: 1, TotalPrice: 650}},
	}
	svc := NewService(repo, newTestCache(t))

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	require.InDelta(t, 1500, stats.TotalSales, 0.001)
	require.InDelta(t, 420, stats.Profit, 0.001)
	require.InDelta(t, 9800, stats.TotalInventoryValue, 0.001)
	require.Equal(t, int64(2), stats.LowStockItems)
	require.Equal(t, int64(14), stats.TotalProducts)
	require.Equal(t, int64(6), stats.TotalSuppliers)
	require.Len(t, stats.RecentSales, 1)
}

func TestDashboardRecentSalesNeverNil(t *testing.T) {
	svc := NewService(&fakeRepo{}, nil)
	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	require.NotNil(t, stats.RecentSales)
}

func TestParseGranularity(t *testing.T) {
	require.Equal(t, Daily, ParseGranularity("daily"))
	require.Equal(t, Quarterly, ParseGranularity("quarterly"))
	require.Equal(t, Monthly, ParseGranularity(""))
	require.Equal(t, Monthly, ParseGranularity("weekly"))
}
