package repositories

import "kedai/internal/models"

// UserRepository defines the interface for user data access. FindByEmail has
// list semantics to match the backend's equality query filter.
type UserRepository interface {
	GetAll() ([]models.User, error)
	FindByEmail(email string) ([]models.User, error)
	GetByID(id string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(id string) error
}
