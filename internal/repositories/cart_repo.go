package repositories

import "kedai/internal/models"

// CartRepository defines the interface for cart row data access.
type CartRepository interface {
	GetAll() ([]models.CartItem, error)
	FindByUser(userID string) ([]models.CartItem, error)
	GetByID(id string) (*models.CartItem, error)
	Create(item *models.CartItem) error
	Update(item *models.CartItem) error
	Delete(id string) error
}
