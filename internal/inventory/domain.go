package inventory

import "time"

// Item is one stocked product. ProductName doubles as the join key sales
// use when decrementing stock, so it is effectively unique.
type Item struct {
	ID           int64     `json:"id"`
	ProductName  string    `json:"product_name"`
	Quantity     float64   `json:"quantity"`
	BuyingPrice  float64   `json:"buying_price"`
	SellingPrice float64   `json:"selling_price"`
	SupplierID   *int64    `json:"supplier_id,omitempty"`
	SupplierName *string   `json:"supplier_name,omitempty"`
	ReorderLevel int       `json:"reorder_level"`
	Description  *string   `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AddItemRequest is the payload for adding an inventory item.
type AddItemRequest struct {
	ProductName  string  `json:"product_name" validate:"required,max=200"`
	Quantity     float64 `json:"quantity" validate:"gte=0"`
	BuyingPrice  float64 `json:"buying_price" validate:"gte=0"`
	SellingPrice float64 `json:"selling_price" validate:"gte=0"`
	SupplierID   *int64  `json:"supplier_id,omitempty"`
	ReorderLevel *int    `json:"reorder_level,omitempty" validate:"omitempty,gte=0"`
	Description  *string `json:"description,omitempty"`
}

// DefaultReorderLevel applies when the request omits reorder_level.
const DefaultReorderLevel = 10
