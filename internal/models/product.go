package models

import "time"

// Product represents a product in the catalog.
type Product struct {
	ID             string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name           string     `json:"name" validate:"required"`
	Category       string     `json:"category" gorm:"index" validate:"required"`
	Price          float64    `json:"price" validate:"gte=0"`
	Stock          int        `json:"stock"`
	Description    string     `json:"description,omitempty"`
	Images         []string   `json:"images" gorm:"serializer:json"`
	ProductCode    string     `json:"productCode" validate:"required"`
	ExpirationDate *time.Time `json:"expirationDate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
