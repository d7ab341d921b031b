package handlers

import (
	"log"

	"cuahang/internal/models"
	"cuahang/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CustomerHandler handles HTTP requests for customers.
type CustomerHandler struct {
	service  *services.CustomerService
	validate *validator.Validate
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(service *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the customer routes with the Fiber app.
func (h *CustomerHandler) RegisterRoutes(router fiber.Router) {
	customerRoutes := router.Group("/customers")
	customerRoutes.Get("/", h.HandleGetCustomers)
	customerRoutes.Post("/", h.HandleCreateCustomer)
	customerRoutes.Get("/email/:email", h.HandleGetCustomerByEmail)
	customerRoutes.Put("/:id", h.HandleUpdateCustomer)
}

// HandleGetCustomers retrieves all customers.
func (h *CustomerHandler) HandleGetCustomers(c *fiber.Ctx) error {
	customers, err := h.service.GetAllCustomers()
	if err != nil {
		return respondError(c, err, "Customer not found")
	}
	return c.JSON(customers)
}

// HandleCreateCustomer creates a new customer.
func (h *CustomerHandler) HandleCreateCustomer(c *fiber.Ctx) error {
	var customer models.Customer
	if err := c.BodyParser(&customer); err != nil {
		log.Printf("Error parsing customer request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := h.validate.Struct(customer); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := h.service.CreateCustomer(&customer); err != nil {
		return respondError(c, err, "Customer not found")
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// HandleGetCustomerByEmail retrieves a customer by their email address.
func (h *CustomerHandler) HandleGetCustomerByEmail(c *fiber.Ctx) error {
	customer, err := h.service.GetCustomerByEmail(c.Params("email"))
	if err != nil {
		return respondError(c, err, "Customer not found")
	}
	return c.JSON(customer)
}

// HandleUpdateCustomer applies the supplied fields to an existing customer.
func (h *CustomerHandler) HandleUpdateCustomer(c *fiber.Ctx) error {
	var req services.UpdateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing customer update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	customer, err := h.service.UpdateCustomer(c.Params("id"), req)
	if err != nil {
		return respondError(c, err, "Customer not found")
	}
	return c.JSON(customer)
}
