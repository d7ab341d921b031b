package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"cuahang/internal/models"
	"cuahang/internal/repositories"
	"cuahang/pkg/mailer"
	"cuahang/pkg/rabbitmq"
)

// ErrInvalidStatus is returned when a status transition names a value outside
// the closed status set.
var ErrInvalidStatus = errors.New("invalid order status")

// ErrInsufficientStock is returned when a delivery transition would drive a
// product's stock below zero. No stock is decremented in that case.
var ErrInsufficientStock = errors.New("insufficient stock")

// UpdateOrderRequest carries an order edit. Nil fields are left untouched on
// the stored order (merge semantics).
type UpdateOrderRequest struct {
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
	Status   *string `json:"status"`
	Customer *string `json:"customer"`
}

// OrderService orchestrates the order lifecycle: creation with the customer
// back-link and confirmation mail, status transitions with stock deduction,
// and edits that cascade into the linked customer.
type OrderService struct {
	orderRepo    repositories.OrderRepository
	customerRepo repositories.CustomerRepository
	productRepo  repositories.ProductRepository
	sender       mailer.Sender
	mqClient     *rabbitmq.Client
}

// NewOrderService creates a new OrderService. sender and mqClient may be nil;
// confirmation mail and event publication are then skipped with a log line.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	customerRepo repositories.CustomerRepository,
	productRepo repositories.ProductRepository,
	sender mailer.Sender,
	mqClient *rabbitmq.Client,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		sender:       sender,
		mqClient:     mqClient,
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// GetOrdersByProduct retrieves all orders containing a line item for the given
// product. Historical orders keep reporting a product even after it has been
// deleted from the catalog.
func (s *OrderService) GetOrdersByProduct(productID string) ([]models.Order, error) {
	return s.orderRepo.GetByProduct(productID)
}

// CreateOrder persists a new pending order, appends its id to the customer's
// order list, and hands off the confirmation mail and the order.created
// event. The order counts as created once the customer link is written;
// notification failures are logged and never surface.
func (s *OrderService) CreateOrder(order *models.Order) (*models.Order, error) {
	customer, err := s.customerRepo.GetByID(order.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve customer for order: %w", err)
	}

	order.Status = models.StatusPending
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.customerRepo.AppendOrder(customer.ID, order.ID); err != nil {
		// Compensate: take the already written order back out so no
		// half-linked order stays reachable.
		if delErr := s.orderRepo.Delete(order.ID); delErr != nil {
			log.Printf("Failed to roll back order %s after link failure: %v", order.ID, delErr)
		}
		return nil, fmt.Errorf("failed to link order %s to customer %s: %w", order.ID, customer.ID, err)
	}

	s.sendConfirmation(customer, order)
	s.publishEvent("order.created", order)

	return order, nil
}

// UpdateOrderStatus transitions an order into the given status. A transition
// to delivered first batch-validates every resolvable line item against its
// product's stock, then decrements each product individually. Re-delivering
// the same order decrements stock again; the per-line writes are not atomic.
func (s *OrderService) UpdateOrderStatus(id string, status string) (*models.Order, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if status == models.StatusDelivered {
		if err := s.deductStock(order); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}

	updated, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	s.publishEvent("order.updated", updated)
	return updated, nil
}

// deductStock decrements each line item's product stock by the ordered
// quantity. Every line is validated before any product is written; a line
// whose product no longer exists is skipped.
func (s *OrderService) deductStock(order *models.Order) error {
	type deduction struct {
		product  *models.Product
		quantity int
	}
	deductions := make([]deduction, 0, len(order.Items))
	for _, item := range order.Items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				log.Printf("Skipping stock deduction for missing product %s on order %s", item.ProductID, order.ID)
				continue
			}
			return fmt.Errorf("failed to load product %s for delivery: %w", item.ProductID, err)
		}
		if product.Stock < item.Quantity {
			return fmt.Errorf("%w: product %s has %d, order %s needs %d",
				ErrInsufficientStock, product.ID, product.Stock, order.ID, item.Quantity)
		}
		deductions = append(deductions, deduction{product: product, quantity: item.Quantity})
	}

	for _, d := range deductions {
		d.product.Stock -= d.quantity
		if err := s.productRepo.Save(d.product); err != nil {
			return fmt.Errorf("failed to persist stock of product %s: %w", d.product.ID, err)
		}
	}
	return nil
}

// UpdateOrder edits an order. A supplied customer reference first cascades
// the address/phone change into that customer's own record; an unresolvable
// reference leaves the order unmodified. Only supplied order fields are
// written.
func (s *OrderService) UpdateOrder(id string, req UpdateOrderRequest) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil && !models.ValidStatus(*req.Status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, *req.Status)
	}

	if req.Customer != nil {
		customerFields := map[string]interface{}{}
		if req.Address != nil {
			customerFields["address"] = *req.Address
		}
		if req.Phone != nil {
			customerFields["phone"] = *req.Phone
		}
		if len(customerFields) > 0 {
			if _, err := s.customerRepo.Update(*req.Customer, customerFields); err != nil {
				return nil, fmt.Errorf("failed to update customer %s for order %s: %w", *req.Customer, id, err)
			}
		} else if _, err := s.customerRepo.GetByID(*req.Customer); err != nil {
			return nil, fmt.Errorf("failed to resolve customer %s for order %s: %w", *req.Customer, id, err)
		}
	}

	orderFields := map[string]interface{}{}
	if req.Status != nil {
		orderFields["status"] = *req.Status
	}
	if req.Address != nil {
		orderFields["address"] = *req.Address
	}
	if req.Phone != nil {
		orderFields["phone"] = *req.Phone
	}
	if req.Customer != nil {
		orderFields["customer_id"] = *req.Customer
	}
	if len(orderFields) == 0 {
		return order, nil
	}

	updated, err := s.orderRepo.Update(id, orderFields)
	if err != nil {
		return nil, err
	}
	if req.Status != nil {
		s.publishEvent("order.updated", updated)
	}
	return updated, nil
}

// DeleteOrder removes an order and its line items.
func (s *OrderService) DeleteOrder(id string) error {
	return s.orderRepo.Delete(id)
}

// sendConfirmation resolves the order's line items to product names and
// prices, builds the confirmation mail, and enqueues it. Failures are logged
// only; the order is already created.
func (s *OrderService) sendConfirmation(customer *models.Customer, order *models.Order) {
	if s.sender == nil {
		log.Println("Mail sender is not configured, skipping order confirmation")
		return
	}

	var lines []string
	for _, item := range order.Items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			log.Printf("Skipping confirmation line for product %s on order %s: %v", item.ProductID, order.ID, err)
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: %d x %.2f", product.Name, item.Quantity, product.Price))
	}

	var body strings.Builder
	body.WriteString("Thank you for your order!\n\n")
	body.WriteString("Your order has been confirmed.\n\nOrder details:\n")
	body.WriteString(strings.Join(lines, "\n"))
	fmt.Fprintf(&body, "\n\nShipping fee: %.2f\nTotal: %.2f\n\n", order.ShippingFee, order.TotalPrice)
	fmt.Fprintf(&body, "Customer: %s\nPhone: %s\nAddress: %s\n", customer.Name, order.Phone, order.Address)

	s.sender.Enqueue(mailer.Message{
		To:      customer.Email,
		Subject: "Order confirmation",
		Text:    body.String(),
	})
}

// publishEvent publishes an order lifecycle event when a client is wired in.
func (s *OrderService) publishEvent(event string, order *models.Order) {
	if s.mqClient == nil {
		log.Println("RabbitMQ client is not initialized, skipping event publication")
		return
	}
	if err := s.mqClient.PublishOrderEvent(event, order); err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", event, order.ID, err)
		return
	}
	log.Printf("Published %s event for order %s", event, order.ID)
}
