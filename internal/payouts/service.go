package payouts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dashel-erp/dashel-erp/internal/platform/httpx"
)

// ListRepository is the read side used outside the export transaction.
type ListRepository interface {
	Insert(ctx context.Context, p BankPayment) (int64, error)
	List(ctx context.Context, status Status) ([]BankPayment, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// Service drives the bank payout batch workflow.
type Service struct {
	repo ListRepository
	now  func() time.Time
}

// NewService constructs a payouts service.
func NewService(repo ListRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// CreateDraft inserts a bank payment in draft status.
func (s *Service) CreateDraft(ctx context.Context, req CreateDraftRequest) (int64, error) {
	var missing []string
	if req.SupplierID <= 0 {
		missing = append(missing, "supplier_id")
	}
	if req.Amount == 0 {
		missing = append(missing, "amount")
	}
	if len(missing) > 0 {
		return 0, httpx.MissingFields(missing...)
	}
	if req.Amount < 0 {
		return 0, httpx.Validationf("amount must be positive")
	}

	currency := req.Currency
	if currency == "" {
		currency = "KES"
	}
	id, err := s.repo.Insert(ctx, BankPayment{
		SupplierID:    req.SupplierID,
		Amount:        req.Amount,
		Currency:      currency,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		Branch:        req.Branch,
	})
	if err != nil {
		return 0, fmt.Errorf("create bank payment draft: %w", err)
	}
	return id, nil
}

// List returns bank payments, optionally filtered by status.
func (s *Service) List(ctx context.Context, status Status) ([]BankPayment, error) {
	if status != "" && status != StatusDraft && status != StatusExported {
		return nil, httpx.Validationf("unknown status %q", status)
	}
	return s.repo.List(ctx, status)
}

// ExportBatch renders the selected drafts (or all drafts when ids is empty)
// as CSV and marks them exported under one shared batch id. The select and
// the update run in a single transaction with the rows locked, so two
// concurrent exports can never claim the same draft.
func (s *Service) ExportBatch(ctx context.Context, req ExportRequest) (ExportResult, error) {
	batchID := uuid.NewString()
	var result ExportResult

	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		rows, err := tx.SelectDraftsForUpdate(ctx, req.IDs)
		if err != nil {
			return fmt.Errorf("select drafts: %w", err)
		}
		if len(rows) == 0 {
			return httpx.Validationf("no bank payments found to export")
		}

		references := make([]string, len(rows))
		ids := make([]int64, len(rows))
		for i, row := range rows {
			references[i] = fmt.Sprintf("BP-%s-%d", batchID[:8], row.ID)
			ids[i] = row.ID
		}
		csv := renderCSV(rows, references)

		affected, err := tx.MarkExported(ctx, ids, batchID, s.now())
		if err != nil {
			return fmt.Errorf("mark exported: %w", err)
		}
		if affected != int64(len(ids)) {
			return fmt.Errorf("exported %d of %d selected rows", affected, len(ids))
		}

		result = ExportResult{BatchID: batchID, CSV: csv, Count: len(rows)}
		return nil
	})
	if err != nil {
		return ExportResult{}, err
	}
	return result, nil
}
