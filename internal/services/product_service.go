package services

import (
	"time"

	"cuahang/internal/models"
	"cuahang/internal/repositories"
)

// UpdateProductRequest carries a product edit. Nil fields are left untouched.
type UpdateProductRequest struct {
	Name           *string    `json:"name"`
	Category       *string    `json:"category"`
	Price          *float64   `json:"price"`
	Stock          *int       `json:"stock"`
	Description    *string    `json:"description"`
	Images         *[]string  `json:"images"`
	ProductCode    *string    `json:"productCode"`
	ExpirationDate *time.Time `json:"expirationDate"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// GetProductsByCategory retrieves all products in the given category.
func (s *ProductService) GetProductsByCategory(category string) ([]models.Product, error) {
	return s.repo.GetByCategory(category)
}

// CreateProduct creates a new product.
func (s *ProductService) CreateProduct(product *models.Product) error {
	return s.repo.Create(product)
}

// UpdateProduct applies the supplied fields to an existing product and
// returns the updated record.
func (s *ProductService) UpdateProduct(id string, req UpdateProductRequest) (*models.Product, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Stock != nil {
		fields["stock"] = *req.Stock
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Images != nil {
		fields["images"] = *req.Images
	}
	if req.ProductCode != nil {
		fields["product_code"] = *req.ProductCode
	}
	if req.ExpirationDate != nil {
		fields["expiration_date"] = req.ExpirationDate
	}
	if len(fields) == 0 {
		return s.repo.GetByID(id)
	}
	return s.repo.Update(id, fields)
}

// DeleteProduct deletes a product by its ID. References from existing order
// items are left in place.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}
