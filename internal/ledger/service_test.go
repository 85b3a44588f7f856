package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dashel-erp/dashel-erp/internal/platform/httpx"
)

type memoryRepo struct {
	suppliers map[int64]string
	invoices  []Invoice
	payments  []Payment
	nextID    int64
	clock     time.Time
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		suppliers: map[int64]string{},
		clock:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *memoryRepo) addSupplier(id int64, name string) {
	r.suppliers[id] = name
}

func (r *memoryRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Minute)
	return r.clock
}

func (r *memoryRepo) InsertInvoice(_ context.Context, inv Invoice) (int64, error) {
	if _, ok := r.suppliers[inv.SupplierID]; !ok {
		return 0, ErrUnknownSupplier
	}
	r.nextID++
	inv.ID = r.nextID
	inv.CreatedAt = r.tick()
	r.invoices = append(r.invoices, inv)
	return inv.ID, nil
}

func (r *memoryRepo) InsertPayment(_ context.Context, pay Payment) (int64, error) {
	if _, ok := r.suppliers[pay.SupplierID]; !ok {
		return 0, ErrUnknownSupplier
	}
	r.nextID++
	pay.ID = r.nextID
	pay.CreatedAt = r.tick()
	r.payments = append(r.payments, pay)
	return pay.ID, nil
}

func (r *memoryRepo) ListInvoices(_ context.Context, supplierID int64) ([]Invoice, error) {
	var out []Invoice
	for _, inv := range r.invoices {
		if inv.SupplierID == supplierID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *memoryRepo) ListPayments(_ context.Context, supplierID int64) ([]Payment, error) {
	var out []Payment
	for _, pay := range r.payments {
		if pay.SupplierID == supplierID {
			out = append(out, pay)
		}
	}
	return out, nil
}

func (r *memoryRepo) Balances(_ context.Context) ([]Balance, error) {
	var out []Balance
	for id, name := range r.suppliers {
		b := Balance{SupplierID: id, SupplierName: name}
		for _, inv := range r.invoices {
			if inv.SupplierID == id {
				b.InvoicesTotal += inv.Amount
			}
		}
		for _, pay := range r.payments {
			if pay.SupplierID == id {
				b.PaymentsTotal += pay.Amount
			}
		}
		b.Owed = b.InvoicesTotal - b.PaymentsTotal
		out = append(out, b)
	}
	return out, nil
}

func (r *memoryRepo) SupplierExists(_ context.Context, supplierID int64) (bool, error) {
	_, ok := r.suppliers[supplierID]
	return ok, nil
}

func strPtr(s string) *string { return &s }

func TestOwedEqualsInvoicesMinusPayments(t *testing.T) {
	repo := newMemoryRepo()
	repo.addSupplier(1, "Kamau Hardware Supplies")
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.RecordInvoice(ctx, RecordInvoiceRequest{SupplierID: 1, Amount: 15000})
	require.NoError(t, err)
	_, err = svc.RecordInvoice(ctx, RecordInvoiceRequest{SupplierID: 1, Amount: 4500.50})
	require.NoError(t, err)
	_, err = svc.RecordPayment(ctx, RecordPaymentRequest{SupplierID: 1, Amount: 10000, Method: strPtr("bank")})
	require.NoError(t, err)

	balances, err := svc.Balances(ctx)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	require.InDelta(t, 19500.50, balances[0].InvoicesTotal, 0.001)
	require.InDelta(t, 10000, balances[0].PaymentsTotal, 0.001)
	require.InDelta(t, 9500.50, balances[0].Owed, 0.001)
}

func TestOwedMayGoNegative(t *testing.T) {
	repo := newMemoryRepo()
	repo.addSupplier(7, "Overpaid Ltd")
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.RecordInvoice(ctx, RecordInvoiceRequest{SupplierID: 7, Amount: 100})
	require.NoError(t, err)
	_, err = svc.RecordPayment(ctx, RecordPaymentRequest{SupplierID: 7, Amount: 250})
	require.NoError(t, err)

	balances, err := svc.Balances(ctx)
	require.NoError(t, err)
	require.InDelta(t, -150, balances[0].Owed, 0.001)
}

func TestRecordInvoiceValidation(t *testing.T) {
	repo := newMemoryRepo()
	repo.addSupplier(1, "Kamau Hardware Supplies")
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.RecordInvoice(ctx, RecordInvoiceRequest{SupplierID: 1})
	require.ErrorIs(t, err, httpx.ErrValidation)
	require.Contains(t, err.Error(), "amount")

	_, err = svc.RecordInvoice(ctx, RecordInvoiceRequest{Amount: 10})
	require.ErrorIs(t, err, httpx.ErrValidation)
	require.Contains(t, err.Error(), "supplier_id")

	_, err = svc.RecordInvoice(ctx, RecordInvoiceRequest{SupplierID: 99, Amount: 10})
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.RecordInvoice(ctx, RecordInvoiceRequest{SupplierID: 1, Amount: -5})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestLedgerMergedDescending(t *testing.T) {
	repo := newMemoryRepo()
	repo.addSupplier(1, "Kamau Hardware Supplies")
	svc := NewService(repo)
	ctx := context.Background()

	invID, err := svc.RecordInvoice(ctx, RecordInvoiceRequest{SupplierID: 1, Amount: 500})
	require.NoError(t, err)
	payID, err := svc.RecordPayment(ctx, RecordPaymentRequest{SupplierID: 1, Amount: 200})
	require.NoError(t, err)
	inv2ID, err := svc.RecordInvoice(ctx, RecordInvoiceRequest{SupplierID: 1, Amount: 300})
	require.NoError(t, err)

	entries, err := svc.Ledger(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first, types interleaved.
	require.Equal(t, inv2ID, entries[0].ID)
	require.Equal(t, EntryInvoice, entries[0].Type)
	require.Equal(t, payID, entries[1].ID)
	require.Equal(t, EntryPayment, entries[1].Type)
	require.Equal(t, invID, entries[2].ID)
	require.True(t, entries[0].CreatedAt.After(entries[2].CreatedAt))
}
