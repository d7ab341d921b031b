package repositories

import (
	"fmt"
	"sync"
	"time"

	"cuahang/internal/models"

	"github.com/google/uuid"
)

// MemoryOrderRepository is an in-memory implementation of OrderRepository.
// When a customer repository is attached, reads populate the order's customer
// the way the GORM implementation preloads it.
type MemoryOrderRepository struct {
	orders    map[string]models.Order
	customers CustomerRepository
	mu        sync.RWMutex
}

// NewMemoryOrderRepository creates a new instance of MemoryOrderRepository.
// customers may be nil; orders are then returned without the customer
// populated.
func NewMemoryOrderRepository(customers CustomerRepository) *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders:    make(map[string]models.Order),
		customers: customers,
	}
}

func (r *MemoryOrderRepository) populate(order models.Order) models.Order {
	if r.customers != nil {
		if customer, err := r.customers.GetByID(order.CustomerID); err == nil {
			order.Customer = customer
		}
	}
	return order
}

// GetAll returns all orders.
func (r *MemoryOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orderList = append(orderList, r.populate(order))
	}
	return orderList, nil
}

// GetByID returns an order by its ID.
func (r *MemoryOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	order = r.populate(order)
	return &order, nil
}

// GetByProduct returns all orders with a line item referencing productID.
func (r *MemoryOrderRepository) GetByProduct(productID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orderList []models.Order
	for _, order := range r.orders {
		for _, item := range order.Items {
			if item.ProductID == productID {
				orderList = append(orderList, r.populate(order))
				break
			}
		}
	}
	return orderList, nil
}

// Create adds a new order.
func (r *MemoryOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.Status == "" {
		order.Status = models.StatusPending
	}
	// Like GORM, only fill timestamps the caller left zero.
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	order.UpdatedAt = time.Now()
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	r.orders[order.ID] = *order
	return nil
}

// Update applies only the supplied order fields (merge semantics).
func (r *MemoryOrderRepository) Update(id string, fields map[string]interface{}) (*models.Order, error) {
	r.mu.Lock()
	order, ok := r.orders[id]
	if !ok {
		r.mu.Unlock()
		return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	for key, value := range fields {
		switch key {
		case "status":
			order.Status = value.(string)
		case "address":
			order.Address = value.(string)
		case "phone":
			order.Phone = value.(string)
		case "note":
			order.Note = value.(string)
		case "customer_id":
			order.CustomerID = value.(string)
		}
	}
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	r.mu.Unlock()

	return r.GetByID(id)
}

// UpdateStatus updates the status of an order.
func (r *MemoryOrderRepository) UpdateStatus(id string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// Delete removes an order and its line items.
func (r *MemoryOrderRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	delete(r.orders, id)
	return nil
}
