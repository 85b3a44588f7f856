package sales

import (
	"time"
)

// Sale is one recorded sale line. TotalPrice is fixed at creation time as
// quantity times unit price and never re-derived.
type Sale struct {
	ID          int64     `json:"id"`
	ProductName string    `json:"product_name"`
	Quantity    float64   `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	TotalPrice  float64   `json:"total_price"`
	SaleDate    time.Time `json:"sale_date"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// RecordSaleRequest is the payload for recording a sale.
type RecordSaleRequest struct {
	ProductName string  `json:"product_name" validate:"required,max=200"`
	Quantity    float64 `json:"quantity" validate:"required,gt=0"`
	UnitPrice   float64 `json:"unit_price" validate:"required,gte=0"`
	SaleDate    string  `json:"sale_date" validate:"required,datetime=2006-01-02"`
	Notes       *string `json:"notes,omitempty"`
}

// Pagination is the page metadata attached to sale listings.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// PageSize is the fixed sales page length.
const PageSize = 20
