package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"kedai/internal/api"
	"kedai/internal/models"
)

// DefaultDeliveryFee is the flat delivery charge in rupiah, frozen into an
// order at checkout. Dine-in orders ship for free.
const DefaultDeliveryFee int64 = 10000

// CheckoutRequest carries everything checkout needs beyond the cart itself.
// For dine-in orders Address holds the table number.
type CheckoutRequest struct {
	UserID       string           `validate:"required"`
	OrderType    models.OrderType `validate:"required,oneof=dine-in delivery"`
	FullName     string           `validate:"required"`
	Address      string           `validate:"required"`
	Phone        string           `validate:"required"`
	PaymentProof string           `validate:"required,url"`
}

// OrderStore caches orders and owns checkout and the order status state
// machine. It reads the cart and product stores to build checkout snapshots;
// the composition root wires all three together.
type OrderStore struct {
	client      api.OrderAPI
	carts       *CartStore
	products    *ProductStore
	validate    *validator.Validate
	deliveryFee int64
	transitions models.TransitionTable

	mu     sync.RWMutex
	orders []models.Order
}

// NewOrderStore creates an OrderStore. A nil transition table falls back to
// models.DefaultTransitions; a non-positive fee falls back to
// DefaultDeliveryFee.
func NewOrderStore(client api.OrderAPI, carts *CartStore, products *ProductStore, deliveryFee int64, transitions models.TransitionTable) *OrderStore {
	if transitions == nil {
		transitions = models.DefaultTransitions()
	}
	if deliveryFee <= 0 {
		deliveryFee = DefaultDeliveryFee
	}
	return &OrderStore{
		client:      client,
		carts:       carts,
		products:    products,
		validate:    validator.New(),
		deliveryFee: deliveryFee,
		transitions: transitions,
	}
}

// Load replaces the cache with the backend's full order list.
func (s *OrderStore) Load() ([]models.Order, error) {
	orders, err := s.client.ListOrders()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()
	return s.Orders(), nil
}

// LoadForUser fetches one user's orders without touching the cache.
func (s *OrderStore) LoadForUser(userID string) ([]models.Order, error) {
	return s.client.ListOrdersByUser(userID)
}

// Orders returns a copy of the cached order list.
func (s *OrderStore) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// Get retrieves one order from the backend, bypassing the cache.
func (s *OrderStore) Get(id string) (*models.Order, error) {
	return s.client.GetOrder(id)
}

// Checkout turns a user's cart into an order. Item name, price and quantity
// are copied by value at this moment; later product edits or deletions do
// not touch the stored order. Cart rows whose product no longer resolves
// contribute nothing and are dropped from the snapshot.
//
// Order creation and cart clearing are two independent remote calls with no
// compensating rollback: if clearing fails after the order was created, the
// created order is returned together with a non-nil error and the cart keeps
// its unremoved rows.
func (s *OrderStore) Checkout(req CheckoutRequest) (*models.Order, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid checkout request: %w", err)
	}

	cartItems := s.carts.ForUser(req.UserID)
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	var items []models.OrderItem
	var subtotal int64
	for _, row := range cartItems {
		product, ok := s.products.Get(row.ProductID)
		if !ok {
			continue
		}
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  row.Quantity,
		})
		subtotal += product.Price * int64(row.Quantity)
	}

	var shippingCost int64
	locationType := "Table Number"
	if req.OrderType == models.OrderDelivery {
		shippingCost = s.deliveryFee
		locationType = "Delivery Address"
	}

	now := time.Now()
	order := models.Order{
		ID:           newID("order"),
		UserID:       req.UserID,
		Items:        items,
		Subtotal:     subtotal,
		ShippingCost: shippingCost,
		Total:        subtotal + shippingCost,
		Status:       models.StatusPending,
		OrderType:    req.OrderType,
		ShippingDetails: models.ShippingDetails{
			FullName:     req.FullName,
			Address:      req.Address,
			Phone:        req.Phone,
			LocationType: locationType,
		},
		PaymentProof: req.PaymentProof,
		Date:         now,
		UpdatedAt:    now,
	}

	created, err := s.client.CreateOrder(order)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.orders = append(s.orders, *created)
	s.mu.Unlock()

	if err := s.carts.Clear(req.UserID); err != nil {
		return created, fmt.Errorf("order %s created but cart not cleared: %w", created.ID, err)
	}
	return created, nil
}

// UpdateStatus moves an order through the state machine. Transitions the
// table does not list are rejected before any network call.
func (s *OrderStore) UpdateStatus(id string, to models.OrderStatus) (*models.Order, error) {
	current, err := s.find(id)
	if err != nil {
		return nil, err
	}

	if !s.transitions.Allows(current.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, to)
	}

	current.Status = to
	current.UpdatedAt = time.Now()
	updated, err := s.client.UpdateOrder(*current)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	replaced := false
	for i := range s.orders {
		if s.orders[i].ID == updated.ID {
			s.orders[i] = *updated
			replaced = true
			break
		}
	}
	if !replaced {
		s.orders = append(s.orders, *updated)
	}
	s.mu.Unlock()
	return updated, nil
}

// Remove deletes an order outright. Status-based cancellation should go
// through UpdateStatus instead.
func (s *OrderStore) Remove(id string) error {
	if err := s.client.DeleteOrder(id); err != nil {
		return err
	}

	s.mu.Lock()
	kept := s.orders[:0]
	for _, order := range s.orders {
		if order.ID != id {
			kept = append(kept, order)
		}
	}
	s.orders = kept
	s.mu.Unlock()
	return nil
}

// find looks the order up locally first and falls back to the backend.
func (s *OrderStore) find(id string) (*models.Order, error) {
	s.mu.RLock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			order := s.orders[i]
			s.mu.RUnlock()
			return &order, nil
		}
	}
	s.mu.RUnlock()
	return s.client.GetOrder(id)
}
