package suppliers

import (
	"time"
)

// Supplier represents a supplier with contact and optional bank details.
type Supplier struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Phone            string    `json:"phone"`
	Email            *string   `json:"email,omitempty"`
	Address          *string   `json:"address,omitempty"`
	ProductsSupplied *string   `json:"products_supplied,omitempty"`
	PaymentTerms     *string   `json:"payment_terms,omitempty"`
	BankName         *string   `json:"bank_name,omitempty"`
	BankAccount      *string   `json:"bank_account,omitempty"`
	BankBranch       *string   `json:"bank_branch,omitempty"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreateSupplierRequest is the payload for adding a supplier.
type CreateSupplierRequest struct {
	Name             string  `json:"name" validate:"required,max=200"`
	Phone            string  `json:"phone" validate:"required,max=50"`
	Email            *string `json:"email,omitempty" validate:"omitempty,email"`
	Address          *string `json:"address,omitempty"`
	ProductsSupplied *string `json:"products_supplied,omitempty"`
	PaymentTerms     *string `json:"payment_terms,omitempty"`
	BankName         *string `json:"bank_name,omitempty"`
	BankAccount      *string `json:"bank_account,omitempty"`
	BankBranch       *string `json:"bank_branch,omitempty"`
}
