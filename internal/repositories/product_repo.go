package repositories

import (
	"cuahang/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetByCategory(category string) ([]models.Product, error)
	Create(product *models.Product) error
	Update(id string, fields map[string]interface{}) (*models.Product, error)
	Save(product *models.Product) error
	Delete(id string) error
}
