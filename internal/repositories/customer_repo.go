package repositories

import (
	"cuahang/internal/models"
)

// CustomerRepository defines the interface for customer data access.
type CustomerRepository interface {
	GetAll() ([]models.Customer, error)
	GetByID(id string) (*models.Customer, error)
	GetByEmail(email string) (*models.Customer, error)
	Create(customer *models.Customer) error
	// Update applies only the supplied fields, leaving the rest untouched.
	Update(id string, fields map[string]interface{}) (*models.Customer, error)
	// AppendOrder appends orderID to the customer's order list.
	AppendOrder(customerID, orderID string) error
}
