package payouts

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dashel-erp/dashel-erp/internal/platform/httpx"
)

type memoryRepo struct {
	payments []BankPayment
	nextID   int64
	clock    time.Time
}

type memoryTx struct {
	repo *memoryRepo
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{clock: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (r *memoryRepo) Insert(_ context.Context, p BankPayment) (int64, error) {
	r.nextID++
	p.ID = r.nextID
	p.Status = StatusDraft
	r.clock = r.clock.Add(time.Minute)
	p.CreatedAt = r.clock
	if p.SupplierName == "" {
		p.SupplierName = "Supplier"
	}
	r.payments = append(r.payments, p)
	return p.ID, nil
}

func (r *memoryRepo) List(_ context.Context, status Status) ([]BankPayment, error) {
	var out []BankPayment
	for _, p := range r.payments {
		if status == "" || p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return fn(ctx, &memoryTx{repo: r})
}

func (tx *memoryTx) SelectDraftsForUpdate(_ context.Context, ids []int64) ([]BankPayment, error) {
	wanted := map[int64]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	var out []BankPayment
	for _, p := range tx.repo.payments {
		if p.Status != StatusDraft {
			continue
		}
		if len(ids) > 0 && !wanted[p.ID] {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (tx *memoryTx) MarkExported(_ context.Context, ids []int64, batchID string, exportedAt time.Time) (int64, error) {
	var affected int64
	for _, id := range ids {
		for i := range tx.repo.payments {
			p := &tx.repo.payments[i]
			if p.ID == id && p.Status == StatusDraft {
				p.Status = StatusExported
				b := batchID
				at := exportedAt
				p.BatchID = &b
				p.ExportedAt = &at
				affected++
			}
		}
	}
	return affected, nil
}

func draft(t *testing.T, svc *Service, supplierID int64, amount float64) int64 {
	t.Helper()
	id, err := svc.CreateDraft(context.Background(), CreateDraftRequest{SupplierID: supplierID, Amount: amount})
	require.NoError(t, err)
	return id
}

func TestExportMarksDraftsExported(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	a := draft(t, svc, 1, 1000)
	b := draft(t, svc, 2, 2500.5)
	draft(t, svc, 3, 99)

	result, err := svc.ExportBatch(ctx, ExportRequest{IDs: []int64{a, b}})
	require.NoError(t, err)
	require.Equal(t, 2, result.Count)
	require.NotEmpty(t, result.BatchID)

	drafts, err := svc.List(ctx, StatusDraft)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	for _, p := range drafts {
		require.NotEqual(t, a, p.ID)
		require.NotEqual(t, b, p.ID)
	}

	exported, err := svc.List(ctx, StatusExported)
	require.NoError(t, err)
	require.Len(t, exported, 2)
	for _, p := range exported {
		require.NotNil(t, p.BatchID)
		require.Equal(t, result.BatchID, *p.BatchID)
		require.NotNil(t, p.ExportedAt)
	}
}

func TestExportedRowsNeverReExported(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	a := draft(t, svc, 1, 100)
	first, err := svc.ExportBatch(ctx, ExportRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, first.Count)

	// Explicitly naming an exported id selects nothing.
	_, err = svc.ExportBatch(ctx, ExportRequest{IDs: []int64{a}})
	require.ErrorIs(t, err, httpx.ErrValidation)

	b := draft(t, svc, 2, 200)
	second, err := svc.ExportBatch(ctx, ExportRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, second.Count)
	require.NotEqual(t, first.BatchID, second.BatchID)

	exported, err := svc.List(ctx, StatusExported)
	require.NoError(t, err)
	require.Len(t, exported, 2)
	_ = b
}

func TestExportEmptySelectionFailsWithoutStateChange(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.ExportBatch(ctx, ExportRequest{})
	require.ErrorIs(t, err, httpx.ErrValidation)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestCreateDraftValidation(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.CreateDraft(ctx, CreateDraftRequest{Amount: 10})
	require.ErrorIs(t, err, httpx.ErrValidation)
	require.Contains(t, err.Error(), "supplier_id")

	_, err = svc.CreateDraft(ctx, CreateDraftRequest{SupplierID: 1})
	require.ErrorIs(t, err, httpx.ErrValidation)
	require.Contains(t, err.Error(), "amount")
}

func TestExportCSVFormat(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	bank := "Equity Bank"
	account := "0123456789"
	branch := "Westlands"
	_, err := svc.CreateDraft(ctx, CreateDraftRequest{
		SupplierID: 1, Amount: 1234.5, BankName: &bank, AccountNumber: &account, Branch: &branch,
	})
	require.NoError(t, err)
	repo.payments[0].SupplierName = `O'Brien "Tools"`

	result, err := svc.ExportBatch(ctx, ExportRequest{})
	require.NoError(t, err)

	lines := strings.Split(result.CSV, "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "SupplierName,BankName,AccountNumber,Branch,Amount,Currency,Reference", lines[0])

	fields := strings.Split(lines[1], ",")
	require.Equal(t, `"O'Brien ""Tools"""`, fields[0])
	require.Equal(t, `"Equity Bank"`, fields[1])
	require.Equal(t, `"0123456789"`, fields[2])
	require.Equal(t, `"Westlands"`, fields[3])
	require.Equal(t, "1234.50", fields[4])
	require.Equal(t, "KES", fields[5])
	require.True(t, strings.HasPrefix(fields[6], `"BP-`))
}
