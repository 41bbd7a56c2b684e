package store

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"kedai/internal/api"
	"kedai/internal/models"
)

// CartStore caches cart rows. The one invariant it owns: at most one row per
// (userId, productId) pair, enforced by the find-or-create-then-increment
// path in AddItem.
type CartStore struct {
	client   api.CartAPI
	validate *validator.Validate

	mu    sync.RWMutex
	items []models.CartItem
}

// NewCartStore creates a CartStore backed by the given client.
func NewCartStore(client api.CartAPI) *CartStore {
	return &CartStore{
		client:   client,
		validate: validator.New(),
	}
}

// Load replaces the cache with one user's cart rows from the backend.
func (s *CartStore) Load(userID string) ([]models.CartItem, error) {
	items, err := s.client.ListCartByUser(userID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return s.Items(), nil
}

// Items returns a copy of all cached cart rows.
func (s *CartStore) Items() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// ForUser returns the cached rows belonging to one user.
func (s *CartStore) ForUser(userID string) []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.CartItem
	for _, item := range s.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out
}

// AddItem puts quantity units of a product into a user's cart. If a row for
// the pair already exists its quantity is incremented; otherwise a new row is
// created. The cache changes only after the backend confirms.
func (s *CartStore) AddItem(userID, productID string, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("invalid cart item: quantity must be positive")
	}

	s.mu.RLock()
	var existing *models.CartItem
	for i := range s.items {
		if s.items[i].UserID == userID && s.items[i].ProductID == productID {
			item := s.items[i]
			existing = &item
			break
		}
	}
	s.mu.RUnlock()

	if existing != nil {
		return s.UpdateQuantity(existing.ID, existing.Quantity+quantity)
	}

	item := models.CartItem{
		ID:        newID("cart"),
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.validate.Struct(item); err != nil {
		return nil, fmt.Errorf("invalid cart item: %w", err)
	}

	created, err := s.client.CreateCartItem(item)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.items = append(s.items, *created)
	s.mu.Unlock()
	return created, nil
}

// UpdateQuantity sets a row's quantity. A quantity of zero or below removes
// the row instead of leaving it at zero.
func (s *CartStore) UpdateQuantity(itemID string, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, s.RemoveItem(itemID)
	}

	s.mu.RLock()
	var current *models.CartItem
	for i := range s.items {
		if s.items[i].ID == itemID {
			item := s.items[i]
			current = &item
			break
		}
	}
	s.mu.RUnlock()
	if current == nil {
		return nil, fmt.Errorf("failed to update cart: %w", api.ErrNotFound)
	}

	current.Quantity = quantity
	updated, err := s.client.UpdateCartItem(*current)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == updated.ID {
			s.items[i] = *updated
			break
		}
	}
	s.mu.Unlock()
	return updated, nil
}

// RemoveItem deletes one cart row.
func (s *CartStore) RemoveItem(itemID string) error {
	if err := s.client.DeleteCartItem(itemID); err != nil {
		return err
	}

	s.mu.Lock()
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.mu.Unlock()
	return nil
}

// Clear deletes all of a user's cart rows, one sequential call per row. Each
// delete is independently failable: rows removed before a failure stay
// removed, the failing row and everything after it stay in place, and the
// error is returned to the caller.
func (s *CartStore) Clear(userID string) error {
	for _, item := range s.ForUser(userID) {
		if err := s.RemoveItem(item.ID); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
	}
	return nil
}
