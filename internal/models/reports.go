package models

// Aggregation results produced by the reporting engine. These are read-only
// projections; none of them is persisted.

// CategoryCount is the number of products in one category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// StatusCount is the number of orders in one status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// CustomerTotals summarizes one customer's orders: total spent across all
// their orders and total units across all their line items.
type CustomerTotals struct {
	CustomerID    string  `json:"customer_id"`
	Name          string  `json:"name"`
	TotalSpent    float64 `json:"totalSpent"`
	TotalQuantity int64   `json:"totalQuantity"`
}

// ProductSales is the aggregate quantity sold for one product.
type ProductSales struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	QuantitySold int64  `json:"quantitySold"`
}

// ProductStock is one product's current stock level.
type ProductStock struct {
	Name  string `json:"name"`
	Stock int64  `json:"stock"`
}

// StockSummary is the grand stock total plus the per-product listing.
type StockSummary struct {
	TotalStock int64          `json:"totalStock"`
	Products   []ProductStock `json:"products"`
}

// MonthlyRevenue is the revenue for one calendar month (1-12). Orders from
// different years falling in the same month are merged.
type MonthlyRevenue struct {
	Month   int     `json:"month"`
	Revenue float64 `json:"revenue"`
}
