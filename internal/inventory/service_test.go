package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dashel-erp/dashel-erp/internal/platform/httpx"
)

type memoryRepo struct {
	items     []Item
	suppliers map[int64]bool
	nextID    int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{suppliers: map[int64]bool{}}
}

func (r *memoryRepo) List(context.Context) ([]Item, error) {
	return r.items, nil
}

func (r *memoryRepo) Insert(_ context.Context, item Item) (int64, error) {
	if item.SupplierID != nil && !r.suppliers[*item.SupplierID] {
		return 0, ErrUnknownSupplier
	}
	r.nextID++
	item.ID = r.nextID
	r.items = append(r.items, item)
	return item.ID, nil
}

func TestAddDefaultsReorderLevel(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	id, err := svc.Add(context.Background(), AddItemRequest{
		ProductName: "Hammer", Quantity: 12, BuyingPrice: 400, SellingPrice: 650,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), id)
	require.Equal(t, DefaultReorderLevel, repo.items[0].ReorderLevel)
	require.Nil(t, repo.items[0].SupplierID)
}

func TestAddKeepsExplicitReorderLevel(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	level := 3
	_, err := svc.Add(context.Background(), AddItemRequest{
		ProductName: "Nails 2in", ReorderLevel: &level,
	})
	require.NoError(t, err)
	require.Equal(t, 3, repo.items[0].ReorderLevel)
}

func TestAddValidation(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Add(ctx, AddItemRequest{})
	require.ErrorIs(t, err, httpx.ErrValidation)
	require.Contains(t, err.Error(), "product_name")

	_, err = svc.Add(ctx, AddItemRequest{ProductName: "Hammer", Quantity: -1})
	require.ErrorIs(t, err, httpx.ErrValidation)

	missing := int64(99)
	_, err = svc.Add(ctx, AddItemRequest{ProductName: "Hammer", SupplierID: &missing})
	require.ErrorIs(t, err, httpx.ErrValidation)
	require.Empty(t, repo.items)
}
