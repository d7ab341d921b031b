package repositories

import (
	"cuahang/internal/models"
)

// ReportRepository defines the read-only aggregation queries used by the
// reporting engine. Implementations never mutate anything.
type ReportRepository interface {
	ProductsByCategory() ([]models.CategoryCount, error)
	TotalRevenue() (float64, error)
	OrdersByStatus() ([]models.StatusCount, error)
	CustomersWithTotals() ([]models.CustomerTotals, error)
	TopSellingProducts() ([]models.ProductSales, error)
	StockSummary() (*models.StockSummary, error)
	MonthlyRevenue() ([]models.MonthlyRevenue, error)
}
