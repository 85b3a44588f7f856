package ledger

import (
	"time"
)

// EntryType distinguishes ledger rows.
type EntryType string

const (
	EntryInvoice EntryType = "invoice"
	EntryPayment EntryType = "payment"
)

// Invoice is an amount a supplier has billed the business. Immutable once
// created.
type Invoice struct {
	ID          int64     `json:"id"`
	SupplierID  int64     `json:"supplier_id"`
	Amount      float64   `json:"amount"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Payment is an amount the business has paid a supplier. Immutable once
// created.
type Payment struct {
	ID         int64     `json:"id"`
	SupplierID int64     `json:"supplier_id"`
	Amount     float64   `json:"amount"`
	Method     *string   `json:"method,omitempty"`
	Reference  *string   `json:"reference,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Entry is one row of the merged supplier ledger.
type Entry struct {
	ID          int64     `json:"id"`
	Type        EntryType `json:"type"`
	Amount      float64   `json:"amount"`
	Description *string   `json:"description,omitempty"`
	Method      *string   `json:"method,omitempty"`
	Reference   *string   `json:"reference,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Balance is the derived position for one supplier. Owed may be negative
// when the supplier has been overpaid.
type Balance struct {
	SupplierID    int64   `json:"id"`
	SupplierName  string  `json:"name"`
	InvoicesTotal float64 `json:"invoices_total"`
	PaymentsTotal float64 `json:"payments_total"`
	Owed          float64 `json:"owed"`
}

// RecordInvoiceRequest is the payload for recording a supplier invoice.
type RecordInvoiceRequest struct {
	SupplierID  int64   `json:"supplier_id" validate:"required,gt=0"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description *string `json:"description,omitempty"`
}

// RecordPaymentRequest is the payload for recording a supplier payment.
type RecordPaymentRequest struct {
	SupplierID int64   `json:"supplier_id" validate:"required,gt=0"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	Method     *string `json:"method,omitempty"`
	Reference  *string `json:"reference,omitempty"`
}
