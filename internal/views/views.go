// Package views holds pure projections over store snapshots: filtered lists
// and totals, recomputed on every call with no cache of their own.
package views

import (
	"sort"

	"kedai/internal/models"
)

// CartForUser returns the cart rows belonging to one user.
func CartForUser(items []models.CartItem, userID string) []models.CartItem {
	var out []models.CartItem
	for _, item := range items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out
}

// CartTotal sums price*quantity over a user's cart joined against the
// catalogue. A row whose product is missing contributes 0 rather than
// raising an error, so deleting a referenced product silently shrinks the
// total.
func CartTotal(items []models.CartItem, products []models.Product, userID string) int64 {
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var total int64
	for _, item := range items {
		if item.UserID != userID {
			continue
		}
		if product, ok := byID[item.ProductID]; ok {
			total += product.Price * int64(item.Quantity)
		}
	}
	return total
}

// OrdersForUser returns one user's orders, newest first.
func OrdersForUser(orders []models.Order, userID string) []models.Order {
	var out []models.Order
	for _, order := range orders {
		if order.UserID == userID {
			out = append(out, order)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// OrderTotal is subtotal plus the shipping cost frozen at checkout. It never
// recomputes from current product prices.
func OrderTotal(order models.Order) int64 {
	return order.Subtotal + order.ShippingCost
}
