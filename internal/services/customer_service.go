package services

import (
	"cuahang/internal/models"
	"cuahang/internal/repositories"
)

// UpdateCustomerRequest carries a customer edit. Nil fields are left
// untouched.
type UpdateCustomerRequest struct {
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
}

// CustomerService handles business logic related to customers.
type CustomerService struct {
	repo repositories.CustomerRepository
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(repo repositories.CustomerRepository) *CustomerService {
	return &CustomerService{
		repo: repo,
	}
}

// GetAllCustomers retrieves all customers.
func (s *CustomerService) GetAllCustomers() ([]models.Customer, error) {
	return s.repo.GetAll()
}

// GetCustomerByEmail retrieves a customer by their email address.
func (s *CustomerService) GetCustomerByEmail(email string) (*models.Customer, error) {
	return s.repo.GetByEmail(email)
}

// CreateCustomer creates a new customer. Email uniqueness is enforced by the
// store.
func (s *CustomerService) CreateCustomer(customer *models.Customer) error {
	return s.repo.Create(customer)
}

// UpdateCustomer applies the supplied fields to an existing customer and
// returns the updated record.
func (s *CustomerService) UpdateCustomer(id string, req UpdateCustomerRequest) (*models.Customer, error) {
	fields := map[string]interface{}{}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if len(fields) == 0 {
		return s.repo.GetByID(id)
	}
	return s.repo.Update(id, fields)
}
