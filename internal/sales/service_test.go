package sales

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dashel-erp/dashel-erp/internal/platform/httpx"
)

type memoryRepo struct {
	sales     []Sale
	stock     map[string]float64
	nextID    int64
	failStock bool
}

type memoryTx struct {
	repo    *memoryRepo
	inserts []Sale
	decs    map[string]float64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{stock: map[string]float64{}}
}

func (r *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	tx := &memoryTx{repo: r, decs: map[string]float64{}}
	if err := fn(ctx, tx); err != nil {
		// Nothing staged in tx is applied; mirrors a rollback.
		return err
	}
	r.sales = append(r.sales, tx.inserts...)
	for name, qty := range tx.decs {
		r.stock[name] -= qty
	}
	return nil
}

func (r *memoryRepo) List(_ context.Context, page, limit int) ([]Sale, int64, error) {
	total := int64(len(r.sales))
	start := (page - 1) * limit
	if start >= len(r.sales) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(r.sales) {
		end = len(r.sales)
	}
	return r.sales[start:end], total, nil
}

func (tx *memoryTx) InsertSale(_ context.Context, sale Sale) (int64, error) {
	tx.repo.nextID++
	sale.ID = tx.repo.nextID
	tx.inserts = append(tx.inserts, sale)
	return sale.ID, nil
}

func (tx *memoryTx) DecrementStock(_ context.Context, productName string, quantity float64) error {
	if tx.repo.failStock {
		return errors.New("stock table unavailable")
	}
	tx.decs[productName] += quantity
	return nil
}

type countingBumper struct{ n int }

func (b *countingBumper) Bump(context.Context) error {
	b.n++
	return nil
}

func TestRecordSaleComputesTotalAndDecrementsStock(t *testing.T) {
	repo := newMemoryRepo()
	repo.stock["Hammer"] = 3
	bumper := &countingBumper{}
	svc := NewService(repo, bumper, nil)

	id, err := svc.RecordSale(context.Background(), RecordSaleRequest{
		ProductName: "Hammer", Quantity: 5, UnitPrice: 10.0, SaleDate: "2025-01-15",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), id)
	require.Len(t, repo.sales, 1)
	require.InDelta(t, 50.0, repo.sales[0].TotalPrice, 0.001)
	require.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), repo.sales[0].SaleDate)

	// Stock goes below zero; there is no floor check.
	require.InDelta(t, -2.0, repo.stock["Hammer"], 0.001)
	require.Equal(t, 1, bumper.n)
}

func TestRecordSaleRollsBackOnStockFailure(t *testing.T) {
	repo := newMemoryRepo()
	repo.failStock = true
	svc := NewService(repo, nil, nil)

	_, err := svc.RecordSale(context.Background(), RecordSaleRequest{
		ProductName: "Hammer", Quantity: 1, UnitPrice: 10, SaleDate: "2025-01-15",
	})
	require.Error(t, err)
	require.Empty(t, repo.sales)
}

func TestRecordSaleValidation(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil, nil)
	ctx := context.Background()

	_, err := svc.RecordSale(ctx, RecordSaleRequest{Quantity: 1, UnitPrice: 1, SaleDate: "2025-01-15"})
	require.ErrorIs(t, err, httpx.ErrValidation)
	require.Contains(t, err.Error(), "product_name")

	_, err = svc.RecordSale(ctx, RecordSaleRequest{ProductName: "Hammer", UnitPrice: 1, SaleDate: "2025-01-15"})
	require.ErrorIs(t, err, httpx.ErrValidation)
	require.Contains(t, err.Error(), "quantity")

	_, err = svc.RecordSale(ctx, RecordSaleRequest{ProductName: "Hammer", Quantity: 1, UnitPrice: 1, SaleDate: "15/01/2025"})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestListPagination(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	for i := 0; i < 45; i++ {
		_, err := svc.RecordSale(ctx, RecordSaleRequest{
			ProductName: "Nails", Quantity: 1, UnitPrice: 5, SaleDate: "2025-02-01",
		})
		require.NoError(t, err)
	}

	sales, pagination, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, sales, PageSize)
	require.Equal(t, int64(45), pagination.Total)
	require.Equal(t, int64(3), pagination.Pages)

	sales, pagination, err = svc.List(ctx, 3)
	require.NoError(t, err)
	require.Len(t, sales, 5)
	require.Equal(t, 3, pagination.Page)
}
