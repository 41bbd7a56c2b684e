package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"kedai/internal/api"
	"kedai/internal/models"
)

// ProductStore caches the product catalogue. Load replaces the whole cache
// with the backend's list; concurrent loads are not coalesced, so the last
// one to finish wins.
type ProductStore struct {
	client   api.ProductAPI
	validate *validator.Validate

	mu       sync.RWMutex
	products []models.Product
}

// NewProductStore creates a ProductStore backed by the given client.
func NewProductStore(client api.ProductAPI) *ProductStore {
	return &ProductStore{
		client:   client,
		validate: validator.New(),
	}
}

// Load replaces the cached catalogue with the backend's full product list.
func (s *ProductStore) Load() ([]models.Product, error) {
	products, err := s.client.ListProducts()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
	return s.Products(), nil
}

// LoadByCategory fetches one category's products without touching the cache.
func (s *ProductStore) LoadByCategory(category models.Category) ([]models.Product, error) {
	return s.client.ListProductsByCategory(category)
}

// Products returns a copy of the cached catalogue.
func (s *ProductStore) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Get finds a cached product by id.
func (s *ProductStore) Get(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// Fetch retrieves one product from the backend, bypassing the cache.
func (s *ProductStore) Fetch(id string) (*models.Product, error) {
	return s.client.GetProduct(id)
}

// Create adds a product to the catalogue. Only sellers may call it. The id
// and creation time are stamped client-side; the cache is appended to only
// after the backend confirms.
func (s *ProductStore) Create(actor *models.User, product models.Product) (*models.Product, error) {
	if actor == nil || !actor.IsSeller() {
		return nil, ErrSellerOnly
	}
	if product.ID == "" {
		product.ID = newID("prod")
	}
	product.CreatedAt = time.Now()
	if err := s.validate.Struct(product); err != nil {
		return nil, fmt.Errorf("invalid product: %w", err)
	}

	created, err := s.client.CreateProduct(product)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.products = append(s.products, *created)
	s.mu.Unlock()
	return created, nil
}

// Update replaces a product. Only sellers may call it; there is no ownership
// check because the catalogue is a flat namespace.
func (s *ProductStore) Update(actor *models.User, product models.Product) (*models.Product, error) {
	if actor == nil || !actor.IsSeller() {
		return nil, ErrSellerOnly
	}
	if err := s.validate.Struct(product); err != nil {
		return nil, fmt.Errorf("invalid product: %w", err)
	}

	updated, err := s.client.UpdateProduct(product)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for i := range s.products {
		if s.products[i].ID == updated.ID {
			s.products[i] = *updated
			break
		}
	}
	s.mu.Unlock()
	return updated, nil
}

// Remove deletes a product. Historical order snapshots are unaffected; cart
// rows that still reference it simply stop resolving.
func (s *ProductStore) Remove(actor *models.User, id string) error {
	if actor == nil || !actor.IsSeller() {
		return ErrSellerOnly
	}
	if err := s.client.DeleteProduct(id); err != nil {
		return err
	}

	s.mu.Lock()
	kept := s.products[:0]
	for _, p := range s.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.products = kept
	s.mu.Unlock()
	return nil
}
