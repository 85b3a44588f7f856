package payouts

import (
	"time"
)

// Status enumerates the bank payment lifecycle. A payment is created as a
// draft and transitions exactly once to exported; there is no way back.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusExported Status = "exported"
)

// BankPayment is one payout line destined for a bank transfer file.
// BatchID and ExportedAt are set iff Status is exported.
type BankPayment struct {
	ID            int64      `json:"id"`
	SupplierID    int64      `json:"supplier_id"`
	SupplierName  string     `json:"supplier_name"`
	Amount        float64    `json:"amount"`
	Currency      string     `json:"currency"`
	BankName      *string    `json:"bank_name,omitempty"`
	AccountNumber *string    `json:"account_number,omitempty"`
	Branch        *string    `json:"branch,omitempty"`
	Status        Status     `json:"status"`
	BatchID       *string    `json:"batch_id,omitempty"`
	ExportedAt    *time.Time `json:"exported_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CreateDraftRequest is the payload for drafting a bank payment.
type CreateDraftRequest struct {
	SupplierID    int64   `json:"supplier_id" validate:"required,gt=0"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Currency      string  `json:"currency,omitempty" validate:"omitempty,len=3"`
	BankName      *string `json:"bank_name,omitempty"`
	AccountNumber *string `json:"account_number,omitempty"`
	Branch        *string `json:"branch,omitempty"`
}

// ExportRequest selects which drafts to export. An empty id list means
// every remaining draft.
type ExportRequest struct {
	IDs []int64 `json:"ids,omitempty"`
}

// ExportResult carries the rendered CSV and the shared batch identifier.
type ExportResult struct {
	BatchID string `json:"batch_id"`
	CSV     string `json:"csv"`
	Count   int    `json:"count"`
}
