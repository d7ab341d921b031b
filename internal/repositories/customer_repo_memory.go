package repositories

import (
	"fmt"
	"sync"
	"time"

	"cuahang/internal/models"

	"github.com/google/uuid"
)

// MemoryCustomerRepository is an in-memory implementation of
// CustomerRepository.
type MemoryCustomerRepository struct {
	customers map[string]models.Customer
	mu        sync.RWMutex
}

// NewMemoryCustomerRepository creates a new instance of
// MemoryCustomerRepository.
func NewMemoryCustomerRepository() *MemoryCustomerRepository {
	return &MemoryCustomerRepository{
		customers: make(map[string]models.Customer),
	}
}

// GetAll returns all customers.
func (r *MemoryCustomerRepository) GetAll() ([]models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customerList := make([]models.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		customerList = append(customerList, c)
	}
	return customerList, nil
}

// GetByID returns a customer by their ID.
func (r *MemoryCustomerRepository) GetByID(id string) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.customers[id]
	if !ok {
		return nil, fmt.Errorf("customer %s: %w", id, ErrNotFound)
	}
	return &customer, nil
}

// GetByEmail returns a customer by their email.
func (r *MemoryCustomerRepository) GetByEmail(email string) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.customers {
		if c.Email == email {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("customer with email %s: %w", email, ErrNotFound)
}

// Create adds a new customer, enforcing email uniqueness.
func (r *MemoryCustomerRepository) Create(customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.customers {
		if c.Email == customer.Email {
			return fmt.Errorf("customer with email %s already exists", customer.Email)
		}
	}
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	customer.CreatedAt = time.Now()
	r.customers[customer.ID] = *customer
	return nil
}

// Update applies only the supplied fields to an existing customer.
func (r *MemoryCustomerRepository) Update(id string, fields map[string]interface{}) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	customer, ok := r.customers[id]
	if !ok {
		return nil, fmt.Errorf("customer %s: %w", id, ErrNotFound)
	}
	for key, value := range fields {
		switch key {
		case "name":
			customer.Name = value.(string)
		case "email":
			customer.Email = value.(string)
		case "phone":
			customer.Phone = value.(string)
		case "address":
			customer.Address = value.(string)
		}
	}
	r.customers[id] = customer
	return &customer, nil
}

// AppendOrder appends orderID to the customer's order list, preserving
// insertion order.
func (r *MemoryCustomerRepository) AppendOrder(customerID, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	customer, ok := r.customers[customerID]
	if !ok {
		return fmt.Errorf("customer %s: %w", customerID, ErrNotFound)
	}
	customer.OrderIDs = append(customer.OrderIDs, orderID)
	r.customers[customerID] = customer
	return nil
}
