package repositories

import (
	"fmt"
	"sort"
	"time"

	"cuahang/internal/models"

	"gorm.io/gorm"
)

// GORMReportRepository implements ReportRepository with GORM aggregation
// queries. Every method is a pure read.
type GORMReportRepository struct {
	db *gorm.DB
}

// NewGORMReportRepository creates a new instance of GORMReportRepository.
func NewGORMReportRepository(db *gorm.DB) *GORMReportRepository {
	return &GORMReportRepository{
		db: db,
	}
}

// ProductsByCategory counts products grouped by their category field.
func (r *GORMReportRepository) ProductsByCategory() ([]models.CategoryCount, error) {
	var counts []models.CategoryCount
	err := r.db.Model(&models.Product{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count products by category: %w", err)
	}
	return counts, nil
}

// TotalRevenue sums totalPrice across all orders; zero orders yield 0.
func (r *GORMReportRepository) TotalRevenue() (float64, error) {
	var total float64
	err := r.db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute total revenue: %w", err)
	}
	return total, nil
}

// OrdersByStatus counts orders grouped by status.
func (r *GORMReportRepository) OrdersByStatus() ([]models.StatusCount, error) {
	var counts []models.StatusCount
	err := r.db.Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}
	return counts, nil
}

// CustomersWithTotals joins each customer's name with the sum of their orders'
// totalPrice and the sum of quantities across all their line items. Two
// grouped queries are merged here; a single join over both orders and
// order_items would multiply order rows per item and overcount revenue.
func (r *GORMReportRepository) CustomersWithTotals() ([]models.CustomerTotals, error) {
	var totals []models.CustomerTotals
	err := r.db.Model(&models.Customer{}).
		Select("customers.id AS customer_id, customers.name, COALESCE(SUM(orders.total_price), 0) AS total_spent").
		Joins("LEFT JOIN orders ON orders.customer_id = customers.id").
		Group("customers.id, customers.name").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum order totals per customer: %w", err)
	}

	var quantities []struct {
		CustomerID string
		Quantity   int64
	}
	err = r.db.Model(&models.Order{}).
		Select("orders.customer_id AS customer_id, COALESCE(SUM(order_items.quantity), 0) AS quantity").
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Group("orders.customer_id").
		Scan(&quantities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum line item quantities per customer: %w", err)
	}

	byCustomer := make(map[string]int64, len(quantities))
	for _, q := range quantities {
		byCustomer[q.CustomerID] = q.Quantity
	}
	for i := range totals {
		totals[i].TotalQuantity = byCustomer[totals[i].CustomerID]
	}
	return totals, nil
}

// TopSellingProducts sums quantities sold per product across all orders,
// sorted descending by quantity. The join is against order_items, so products
// deleted after being ordered still appear (with an empty name).
func (r *GORMReportRepository) TopSellingProducts() ([]models.ProductSales, error) {
	var sales []models.ProductSales
	err := r.db.Model(&models.OrderItem{}).
		Select("order_items.product_id AS product_id, COALESCE(products.name, '') AS name, SUM(order_items.quantity) AS quantity_sold").
		Joins("LEFT JOIN products ON products.id = order_items.product_id").
		Group("order_items.product_id, products.name").
		Order("quantity_sold DESC").
		Scan(&sales).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute top selling products: %w", err)
	}
	return sales, nil
}

// StockSummary reports the grand total of stock plus a per-product listing.
func (r *GORMReportRepository) StockSummary() (*models.StockSummary, error) {
	summary := &models.StockSummary{}
	err := r.db.Model(&models.Product{}).
		Select("COALESCE(SUM(stock), 0)").
		Scan(&summary.TotalStock).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum product stock: %w", err)
	}
	err = r.db.Model(&models.Product{}).
		Select("name, stock").
		Scan(&summary.Products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list product stock: %w", err)
	}
	return summary, nil
}

// MonthlyRevenue groups order revenue by calendar month (1-12), years merged,
// sorted ascending by month. Month extraction is done as an in-process fold
// so SQLite and Postgres produce identical results.
func (r *GORMReportRepository) MonthlyRevenue() ([]models.MonthlyRevenue, error) {
	var rows []struct {
		CreatedAt  time.Time
		TotalPrice float64
	}
	err := r.db.Model(&models.Order{}).
		Select("created_at, total_price").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load orders for monthly revenue: %w", err)
	}

	byMonth := make(map[int]float64)
	for _, row := range rows {
		byMonth[int(row.CreatedAt.Month())] += row.TotalPrice
	}

	revenue := make([]models.MonthlyRevenue, 0, len(byMonth))
	for month, total := range byMonth {
		revenue = append(revenue, models.MonthlyRevenue{Month: month, Revenue: total})
	}
	sort.Slice(revenue, func(i, j int) bool { return revenue[i].Month < revenue[j].Month })
	return revenue, nil
}
