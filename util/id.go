// Package util provides utility functions for the inventory system.
package util

import "github.com/google/uuid"

// NewID returns a random RFC4122 v4 identifier for a new product.
func NewID() string {
	return uuid.NewString()
}
