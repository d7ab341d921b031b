package handlers

import (
	"log"

	"cuahang/internal/models"
	"cuahang/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CreateOrderRequest is the payload accepted by POST /orders.
type CreateOrderRequest struct {
	CustomerID     string             `json:"customerId" validate:"required"`
	Products       []models.OrderItem `json:"products" validate:"required,min=1,dive"`
	Address        string             `json:"address" validate:"required"`
	Phone          string             `json:"phone" validate:"required"`
	Note           string             `json:"note"`
	TotalPrice     float64            `json:"totalPrice" validate:"gte=0"`
	ShippingMethod string             `json:"shippingMethod"`
	PaymentMethod  string             `json:"paymentMethod"`
	ShippingFee    float64            `json:"shippingFee"`
}

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Post("/", h.HandleCreateOrder)
	// Fixed-prefix routes must come before the id routes.
	orderRoutes.Get("/contains-product/:productId", h.HandleGetOrdersByProduct)
	orderRoutes.Put("/status/:id", h.HandleUpdateOrderStatus)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Put("/:id", h.HandleUpdateOrder)
	orderRoutes.Delete("/:id", h.HandleDeleteOrder)
}

// HandleGetOrders retrieves all orders with customer and line items populated.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		return respondError(c, err, "Order not found")
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrderByID(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Order not found")
	}
	return c.JSON(order)
}

// HandleGetOrdersByProduct retrieves all orders containing the given product,
// including orders whose product has since been deleted from the catalog.
func (h *OrderHandler) HandleGetOrdersByProduct(c *fiber.Ctx) error {
	orders, err := h.service.GetOrdersByProduct(c.Params("productId"))
	if err != nil {
		return respondError(c, err, "Order not found")
	}
	return c.JSON(orders)
}

// HandleCreateOrder creates a new order through the order workflow.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing order request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	order := &models.Order{
		CustomerID:     req.CustomerID,
		Items:          req.Products,
		Address:        req.Address,
		Phone:          req.Phone,
		Note:           req.Note,
		TotalPrice:     req.TotalPrice,
		ShippingMethod: req.ShippingMethod,
		PaymentMethod:  req.PaymentMethod,
		ShippingFee:    req.ShippingFee,
	}

	created, err := h.service.CreateOrder(order)
	if err != nil {
		return respondError(c, err, "Customer not found")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdateOrderStatus transitions an order into a new status.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var updateData struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		log.Printf("Error parsing status update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	order, err := h.service.UpdateOrderStatus(c.Params("id"), updateData.Status)
	if err != nil {
		return respondError(c, err, "Order not found")
	}
	return c.JSON(order)
}

// HandleUpdateOrder edits an order, cascading a supplied customer reference
// into that customer's own record.
func (h *OrderHandler) HandleUpdateOrder(c *fiber.Ctx) error {
	var req services.UpdateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing order update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	order, err := h.service.UpdateOrder(c.Params("id"), req)
	if err != nil {
		return respondError(c, err, "Order not found")
	}
	return c.JSON(order)
}

// HandleDeleteOrder removes an order and its line items.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	if err := h.service.DeleteOrder(c.Params("id")); err != nil {
		return respondError(c, err, "Order not found")
	}
	return c.JSON(fiber.Map{
		"message": "Order deleted successfully",
	})
}
