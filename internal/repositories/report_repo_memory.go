package repositories

import (
	"sort"

	"cuahang/internal/models"
)

// MemoryReportRepository implements ReportRepository as in-process folds over
// the in-memory stores. It mirrors the aggregation queries of the GORM
// implementation for the DSN-less dev mode.
type MemoryReportRepository struct {
	products  ProductRepository
	customers CustomerRepository
	orders    OrderRepository
}

// NewMemoryReportRepository creates a new instance of MemoryReportRepository.
func NewMemoryReportRepository(products ProductRepository, customers CustomerRepository, orders OrderRepository) *MemoryReportRepository {
	return &MemoryReportRepository{
		products:  products,
		customers: customers,
		orders:    orders,
	}
}

// ProductsByCategory counts products grouped by their category field.
func (r *MemoryReportRepository) ProductsByCategory() ([]models.CategoryCount, error) {
	products, err := r.products.GetAll()
	if err != nil {
		return nil, err
	}
	byCategory := make(map[string]int64)
	for _, p := range products {
		byCategory[p.Category]++
	}
	counts := make([]models.CategoryCount, 0, len(byCategory))
	for category, count := range byCategory {
		counts = append(counts, models.CategoryCount{Category: category, Count: count})
	}
	return counts, nil
}

// TotalRevenue sums totalPrice across all orders; zero orders yield 0.
func (r *MemoryReportRepository) TotalRevenue() (float64, error) {
	orders, err := r.orders.GetAll()
	if err != nil {
		return 0, err
	}
	var total float64
	for _, o := range orders {
		total += o.TotalPrice
	}
	return total, nil
}

// OrdersByStatus counts orders grouped by status.
func (r *MemoryReportRepository) OrdersByStatus() ([]models.StatusCount, error) {
	orders, err := r.orders.GetAll()
	if err != nil {
		return nil, err
	}
	byStatus := make(map[string]int64)
	for _, o := range orders {
		byStatus[o.Status]++
	}
	counts := make([]models.StatusCount, 0, len(byStatus))
	for status, count := range byStatus {
		counts = append(counts, models.StatusCount{Status: status, Count: count})
	}
	return counts, nil
}

// CustomersWithTotals joins each customer's name with their order revenue and
// line item quantity sums.
func (r *MemoryReportRepository) CustomersWithTotals() ([]models.CustomerTotals, error) {
	customers, err := r.customers.GetAll()
	if err != nil {
		return nil, err
	}
	orders, err := r.orders.GetAll()
	if err != nil {
		return nil, err
	}

	spent := make(map[string]float64)
	quantity := make(map[string]int64)
	for _, o := range orders {
		spent[o.CustomerID] += o.TotalPrice
		for _, item := range o.Items {
			quantity[o.CustomerID] += int64(item.Quantity)
		}
	}

	totals := make([]models.CustomerTotals, 0, len(customers))
	for _, c := range customers {
		totals = append(totals, models.CustomerTotals{
			CustomerID:    c.ID,
			Name:          c.Name,
			TotalSpent:    spent[c.ID],
			TotalQuantity: quantity[c.ID],
		})
	}
	return totals, nil
}

// TopSellingProducts sums quantities sold per product, sorted descending.
func (r *MemoryReportRepository) TopSellingProducts() ([]models.ProductSales, error) {
	orders, err := r.orders.GetAll()
	if err != nil {
		return nil, err
	}
	sold := make(map[string]int64)
	for _, o := range orders {
		for _, item := range o.Items {
			sold[item.ProductID] += int64(item.Quantity)
		}
	}

	sales := make([]models.ProductSales, 0, len(sold))
	for productID, quantitySold := range sold {
		name := ""
		if product, err := r.products.GetByID(productID); err == nil {
			name = product.Name
		}
		sales = append(sales, models.ProductSales{
			ProductID:    productID,
			Name:         name,
			QuantitySold: quantitySold,
		})
	}
	sort.Slice(sales, func(i, j int) bool { return sales[i].QuantitySold > sales[j].QuantitySold })
	return sales, nil
}

// StockSummary reports the grand total of stock plus a per-product listing.
func (r *MemoryReportRepository) StockSummary() (*models.StockSummary, error) {
	products, err := r.products.GetAll()
	if err != nil {
		return nil, err
	}
	summary := &models.StockSummary{Products: make([]models.ProductStock, 0, len(products))}
	for _, p := range products {
		summary.TotalStock += int64(p.Stock)
		summary.Products = append(summary.Products, models.ProductStock{Name: p.Name, Stock: int64(p.Stock)})
	}
	return summary, nil
}

// MonthlyRevenue groups order revenue by calendar month (1-12), years merged,
// sorted ascending by month.
func (r *MemoryReportRepository) MonthlyRevenue() ([]models.MonthlyRevenue, error) {
	orders, err := r.orders.GetAll()
	if err != nil {
		return nil, err
	}
	byMonth := make(map[int]float64)
	for _, o := range orders {
		byMonth[int(o.CreatedAt.Month())] += o.TotalPrice
	}
	revenue := make([]models.MonthlyRevenue, 0, len(byMonth))
	for month, total := range byMonth {
		revenue = append(revenue, models.MonthlyRevenue{Month: month, Revenue: total})
	}
	sort.Slice(revenue, func(i, j int) bool { return revenue[i].Month < revenue[j].Month })
	return revenue, nil
}
