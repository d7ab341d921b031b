package repositories

import (
	"cuahang/internal/models"
)

// OrderRepository defines the interface for order data access. GetAll and
// GetByID return orders with their line items and customer populated.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetByProduct(productID string) ([]models.Order, error)
	Create(order *models.Order) error
	// Update applies only the supplied order fields (merge semantics).
	Update(id string, fields map[string]interface{}) (*models.Order, error)
	UpdateStatus(id string, status string) error
	Delete(id string) error
}
