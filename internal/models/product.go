package models

import "time"

// Category groups catalogue entries on the storefront.
type Category string

const (
	CategoryCoffee    Category = "coffee"
	CategoryNonCoffee Category = "non-coffee"
)

// Product is a catalogue entry. Price is an integer amount in rupiah with no
// minor unit. There is no ownership field: any seller can edit any product.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(64)"`
	Name        string    `json:"name" validate:"required,min=3,max=100"`
	Price       int64     `json:"price" validate:"required,gt=0"`
	Category    Category  `json:"category" validate:"required,oneof=coffee non-coffee"`
	Image       string    `json:"image" validate:"omitempty,url"`
	Description string    `json:"description" validate:"omitempty,max=500"`
	CreatedAt   time.Time `json:"createdAt"`
}
