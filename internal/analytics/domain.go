package analytics

import "time"

// Granularity selects the period bucket size for sales aggregation.
type Granularity string

const (
	Daily     Granularity = "daily"
	Monthly   Granularity = "monthly"
	Quarterly Granularity = "quarterly"
	Yearly    Granularity = "yearly"
)

// ParseGranularity normalises the query value. Anything unrecognised,
// including the empty string, falls back to monthly.
func ParseGranularity(s string) Granularity {
	switch Granularity(s) {
	case Daily, Monthly, Quarterly, Yearly:
		return Granularity(s)
	default:
		return Monthly
	}
}

// periodFormat returns the to_char pattern producing the bucket key.
// The keys are zero padded so lexical sort equals chronological sort.
func (g Granularity) periodFormat() string {
	switch g {
	case Daily:
		return "YYYY-MM-DD"
	case Quarterly:
		return `YYYY-"Q"Q`
	case Yearly:
		return "YYYY"
	default:
		return "YYYY-MM"
	}
}

// Bucket is one aggregated sales period.
type Bucket struct {
	Period     string  `json:"period"`
	SalesTotal float64 `json:"sales_total"`
	CostTotal  float64 `json:"cost_total"`
	Profit     float64 `json:"profit"`
}

// AggregateFilter scopes a sales aggregation query. From and To are
// inclusive bounds on sale_date; nil means unbounded.
type AggregateFilter struct {
	Granularity Granularity
	From        *time.Time
	To          *time.Time
}

// RecentSale is the trimmed sale row shown on the dashboard.
type RecentSale struct {
	ID          int64     `json:"id"`
	ProductName string    `json:"product_name"`
	Quantity    float64   `json:"quantity"`
	TotalPrice  float64   `json:"total_price"`
	SaleDate    time.Time `json:"sale_date"`
}

// DashboardStats is the KPI block for the landing dashboard.
type DashboardStats struct {
	TotalSales          float64      `json:"totalSales"`
	Profit              float64      `json:"profit"`
	TotalInventoryValue float64      `json:"totalInventoryValue"`
	LowStockItems       int64        `json:"lowStockItems"`
	TotalProducts       int64        `json:"totalProducts"`
	TotalSuppliers      int64        `json:"totalSuppliers"`
	RecentSales         []RecentSale `json:"recentSales"`
}

// recentSalesLimit caps the dashboard sale list.
const recentSalesLimit = 5
