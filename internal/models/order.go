package models

import "time"

// Order statuses. Pending is the initial state; Delivered is the only
// transition with a side effect (stock deduction).
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusDelivered  = "delivered"
	StatusCompleted  = "completed"
	StatusCanceled   = "canceled"
)

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusDelivered, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// OrderItem is a single line item within an order. Items keep their own rows
// so reporting can aggregate over them; they reference products by id only,
// so deleting a product leaves historical items in place.
type OrderItem struct {
	ID        uint   `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID   string `json:"-" gorm:"index;type:varchar(36)"`
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// Order represents a customer order.
type Order struct {
	ID             string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CustomerID     string      `json:"customer_id" gorm:"index;type:varchar(36)" validate:"required"`
	Customer       *Customer   `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Items          []OrderItem `json:"products" gorm:"foreignKey:OrderID" validate:"required,min=1,dive"`
	Address        string      `json:"address"`
	Phone          string      `json:"phone"`
	Note           string      `json:"note,omitempty"`
	TotalPrice     float64     `json:"totalPrice"`
	ShippingMethod string      `json:"shippingMethod,omitempty"`
	PaymentMethod  string      `json:"paymentMethod,omitempty"`
	ShippingFee    float64     `json:"shippingFee"`
	Status         string      `json:"status"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}
