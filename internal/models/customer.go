package models

import "time"

// Customer represents a customer of the store.
//
// OrderIDs is a denormalized back-reference: every order created for this
// customer appends its id here, in insertion order. It is stored as a JSON
// column rather than an association so that the list keeps its order and
// survives order-side edits untouched.
type Customer struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Phone     string    `json:"phone" validate:"required"`
	Address   string    `json:"address,omitempty"`
	OrderIDs  []string  `json:"orders" gorm:"serializer:json"`
	CreatedAt time.Time `json:"createdAt"`
}
