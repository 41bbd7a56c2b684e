// Package store holds the client-side entity stores: one in-memory cached
// sequence per resource type, synchronized one-way from the backend through
// the api interfaces. Mutation is pessimistic: local state changes only
// after the remote call confirms, so a failed call leaves the cache exactly
// as it was and no rollback path exists.
package store

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrSellerOnly rejects catalogue mutations by non-seller identities.
	ErrSellerOnly = errors.New("only sellers can manage products")
	// ErrInvalidTransition rejects order status changes the transition
	// table does not permit.
	ErrInvalidTransition = errors.New("invalid order status transition")
	// ErrEmptyCart rejects checkout of a cart with no rows.
	ErrEmptyCart = errors.New("cart is empty")
)

// newID builds a client-side identifier in the storefront's historical
// prefix_<timestamp> form. Ids are opaque strings and are not
// collision-checked; the backend assigns its own id when this one is left
// empty.
func newID(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}
