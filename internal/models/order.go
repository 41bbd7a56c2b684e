package models

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// OrderType decides the shipping cost: dine-in orders ship for free,
// delivery orders carry a fixed fee frozen into the order at checkout.
type OrderType string

const (
	OrderDineIn   OrderType = "dine-in"
	OrderDelivery OrderType = "delivery"
)

// TransitionTable maps each status to the statuses it may move to. A status
// with no entry is terminal.
type TransitionTable map[OrderStatus][]OrderStatus

// DefaultTransitions returns the storefront's transition table: a pending
// order can complete or cancel, and both of those are terminal.
func DefaultTransitions() TransitionTable {
	return TransitionTable{
		StatusPending: {StatusCompleted, StatusCancelled},
	}
}

// Allows reports whether the table permits moving from one status to another.
func (t TransitionTable) Allows(from, to OrderStatus) bool {
	for _, next := range t[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OrderItem is a copy-by-value snapshot of a product at order time. Later
// edits or deletions of the product do not touch it.
type OrderItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// ShippingDetails captures where an order goes. For dine-in orders Address
// holds the table number and LocationType says so.
type ShippingDetails struct {
	FullName     string `json:"fullName"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	LocationType string `json:"locationType"`
}

// Order is a checkout snapshot. Subtotal, ShippingCost and Total are frozen
// at creation time and never recomputed.
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Items           []OrderItem     `json:"items"`
	Subtotal        int64           `json:"subtotal"`
	ShippingCost    int64           `json:"shippingCost"`
	Total           int64           `json:"total"`
	Status          OrderStatus     `json:"status"`
	OrderType       OrderType       `json:"orderType"`
	ShippingDetails ShippingDetails `json:"shippingDetails"`
	PaymentProof    string          `json:"paymentProof"`
	Date            time.Time       `json:"date"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
