// Package repositories is the mock backend's storage layer: one repository
// interface per resource collection, with in-memory implementations for all
// four and GORM-backed ones for products and users.
package repositories

import "errors"

// ErrNotFound is returned when a record does not exist. Handlers translate
// it to a 404.
var ErrNotFound = errors.New("record not found")
