package services

import (
	"cuahang/internal/models"
	"cuahang/internal/repositories"
)

// ReportService exposes the read-only sales and inventory aggregations.
type ReportService struct {
	repo repositories.ReportRepository
}

// NewReportService creates a new ReportService.
func NewReportService(repo repositories.ReportRepository) *ReportService {
	return &ReportService{
		repo: repo,
	}
}

// ProductsByCategory counts products grouped by category.
func (s *ReportService) ProductsByCategory() ([]models.CategoryCount, error) {
	return s.repo.ProductsByCategory()
}

// TotalRevenue sums totalPrice across all orders.
func (s *ReportService) TotalRevenue() (float64, error) {
	return s.repo.TotalRevenue()
}

// OrdersByStatus counts orders grouped by status.
func (s *ReportService) OrdersByStatus() ([]models.StatusCount, error) {
	return s.repo.OrdersByStatus()
}

// CustomersWithTotals reports per-customer revenue and unit totals.
func (s *ReportService) CustomersWithTotals() ([]models.CustomerTotals, error) {
	return s.repo.CustomersWithTotals()
}

// TopSellingProducts reports per-product quantities sold, best sellers first.
func (s *ReportService) TopSellingProducts() ([]models.ProductSales, error) {
	return s.repo.TopSellingProducts()
}

// StockSummary reports total and per-product stock levels.
func (s *ReportService) StockSummary() (*models.StockSummary, error) {
	return s.repo.StockSummary()
}

// MonthlyRevenue reports revenue per calendar month, ascending.
func (s *ReportService) MonthlyRevenue() ([]models.MonthlyRevenue, error) {
	return s.repo.MonthlyRevenue()
}
