package handlers

import (
	"cuahang/internal/services"

	"github.com/gofiber/fiber/v2"
)

// StatsHandler handles HTTP requests for the reporting engine.
type StatsHandler struct {
	service *services.ReportService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(service *services.ReportService) *StatsHandler {
	return &StatsHandler{
		service: service,
	}
}

// RegisterRoutes registers the statistics routes with the Fiber app.
func (h *StatsHandler) RegisterRoutes(router fiber.Router) {
	statsRoutes := router.Group("/statistics")
	statsRoutes.Get("/products-by-category", h.HandleProductsByCategory)
	statsRoutes.Get("/total-revenue", h.HandleTotalRevenue)
	statsRoutes.Get("/orders-by-status", h.HandleOrdersByStatus)
	statsRoutes.Get("/customers-total-orders", h.HandleCustomersWithTotals)
	statsRoutes.Get("/top-selling-products", h.HandleTopSellingProducts)
	statsRoutes.Get("/total-stock", h.HandleStockSummary)
	statsRoutes.Get("/monthly-revenue", h.HandleMonthlyRevenue)
}

// HandleProductsByCategory reports product counts per category.
func (h *StatsHandler) HandleProductsByCategory(c *fiber.Ctx) error {
	counts, err := h.service.ProductsByCategory()
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(counts)
}

// HandleTotalRevenue reports the sum of totalPrice across all orders.
func (h *StatsHandler) HandleTotalRevenue(c *fiber.Ctx) error {
	total, err := h.service.TotalRevenue()
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(fiber.Map{
		"totalRevenue": total,
	})
}

// HandleOrdersByStatus reports order counts per status.
func (h *StatsHandler) HandleOrdersByStatus(c *fiber.Ctx) error {
	counts, err := h.service.OrdersByStatus()
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(counts)
}

// HandleCustomersWithTotals reports per-customer revenue and unit totals.
func (h *StatsHandler) HandleCustomersWithTotals(c *fiber.Ctx) error {
	totals, err := h.service.CustomersWithTotals()
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(totals)
}

// HandleTopSellingProducts reports quantities sold per product, best sellers
// first.
func (h *StatsHandler) HandleTopSellingProducts(c *fiber.Ctx) error {
	sales, err := h.service.TopSellingProducts()
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(sales)
}

// HandleStockSummary reports total and per-product stock levels.
func (h *StatsHandler) HandleStockSummary(c *fiber.Ctx) error {
	summary, err := h.service.StockSummary()
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(summary)
}

// HandleMonthlyRevenue reports revenue per calendar month.
func (h *StatsHandler) HandleMonthlyRevenue(c *fiber.Ctx) error {
	revenue, err := h.service.MonthlyRevenue()
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(revenue)
}
