// Package api is the remote resource client for the storefront backend: four
// REST collections (/users, /products, /cart, /orders) exchanging JSON, with
// equality query filters and no retry or backoff. Stores depend on the
// per-resource interfaces below so tests can substitute mocks.
package api

import (
	"errors"

	"kedai/internal/models"
)

// ErrNotFound is wrapped into any operation error caused by a 404.
var ErrNotFound = errors.New("resource not found")

// UserAPI covers the /users collection.
type UserAPI interface {
	ListUsers() ([]models.User, error)
	ListUsersByEmail(email string) ([]models.User, error)
	GetUser(id string) (*models.User, error)
	CreateUser(user models.User) (*models.User, error)
	UpdateUser(user models.User) (*models.User, error)
	DeleteUser(id string) error
}

// ProductAPI covers the /products collection.
type ProductAPI interface {
	ListProducts() ([]models.Product, error)
	ListProductsByCategory(category models.Category) ([]models.Product, error)
	GetProduct(id string) (*models.Product, error)
	CreateProduct(product models.Product) (*models.Product, error)
	UpdateProduct(product models.Product) (*models.Product, error)
	DeleteProduct(id string) error
}

// CartAPI covers the /cart collection.
type CartAPI interface {
	ListCartByUser(userID string) ([]models.CartItem, error)
	CreateCartItem(item models.CartItem) (*models.CartItem, error)
	UpdateCartItem(item models.CartItem) (*models.CartItem, error)
	DeleteCartItem(id string) error
}

// OrderAPI covers the /orders collection.
type OrderAPI interface {
	ListOrders() ([]models.Order, error)
	ListOrdersByUser(userID string) ([]models.Order, error)
	GetOrder(id string) (*models.Order, error)
	CreateOrder(order models.Order) (*models.Order, error)
	UpdateOrder(order models.Order) (*models.Order, error)
	DeleteOrder(id string) error
}
