package suppliers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dashel-erp/dashel-erp/internal/platform/httpx"
)

type memoryRepo struct {
	suppliers []Supplier
	nextID    int64
}

func (r *memoryRepo) ListActive(context.Context) ([]Supplier, error) {
	var active []Supplier
	for _, s := range r.suppliers {
		if s.IsActive {
			active = append(active, s)
		}
	}
	return active, nil
}

func (r *memoryRepo) Create(_ context.Context, supplier Supplier) (int64, error) {
	r.nextID++
	supplier.ID = r.nextID
	r.suppliers = append(r.suppliers, supplier)
	return supplier.ID, nil
}

func (r *memoryRepo) Exists(_ context.Context, id int64) (bool, error) {
	for _, s := range r.suppliers {
		if s.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func TestCreateMarksSupplierActive(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewService(repo)

	id, err := svc.Create(context.Background(), CreateSupplierRequest{
		Name: "Kamau Hardware", Phone: "+254712000001",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), id)
	require.True(t, repo.suppliers[0].IsActive)
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(&memoryRepo{})
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateSupplierRequest{})
	require.ErrorIs(t, err, httpx.ErrValidation)
	require.Contains(t, err.Error(), "name")
	require.Contains(t, err.Error(), "phone")

	bad := "not-an-email"
	_, err = svc.Create(ctx, CreateSupplierRequest{Name: "X Ltd", Phone: "0700", Email: &bad})
	require.ErrorIs(t, err, httpx.ErrValidation)
}
