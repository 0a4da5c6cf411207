// Package domain defines error types for the inventory system.
package domain

import (
	"errors"
	"fmt"
)

// ProductNotFoundError is returned when a product with the given ID is not found
type ProductNotFoundError struct {
	ProductID string
}

// Error implements the error interface for ProductNotFoundError
func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: id=%s", e.ProductID)
}

// Is allows proper error type checking with errors.Is()
func (e *ProductNotFoundError) Is(target error) bool {
	_, ok := target.(*ProductNotFoundError)
	return ok
}

// InvalidProductError is returned when product validation fails
type InvalidProductError struct {
	Field  string
	Reason string
	Value  interface{}
}

// Error implements the error interface for InvalidProductError
func (e *InvalidProductError) Error() string {
	return fmt.Sprintf("invalid product: field=%s, reason=%s, value=%v", e.Field, e.Reason, e.Value)
}

// Is allows proper error type checking with errors.Is()
func (e *InvalidProductError) Is(target error) bool {
	_, ok := target.(*InvalidProductError)
	return ok
}

// DuplicateProductError is returned when a product ID or name is already taken.
type DuplicateProductError struct {
	ProductID string
	Name      string
}

// Error implements the error interface for DuplicateProductError
func (e *DuplicateProductError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("duplicate product: name=%s already exists", e.Name)
	}
	return fmt.Sprintf("duplicate product: id=%s already exists", e.ProductID)
}

// Is allows proper error type checking with errors.Is()
func (e *DuplicateProductError) Is(target error) bool {
	_, ok := target.(*DuplicateProductError)
	return ok
}

// InvalidArgumentError is returned when a caller passes an argument outside
// its contract, such as a negative demand or a NaN cost.
type InvalidArgumentError struct {
	Field  string
	Reason string // empty means "must be non-negative"
	Value  interface{}
}

// Error implements the error interface for InvalidArgumentError
func (e *InvalidArgumentError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "must be non-negative"
	}
	return fmt.Sprintf("invalid argument: %s=%v %s", e.Field, e.Value, reason)
}

// Is allows proper error type checking with errors.Is()
func (e *InvalidArgumentError) Is(target error) bool {
	_, ok := target.(*InvalidArgumentError)
	return ok
}

// Helper functions for creating errors with context

// NewProductNotFoundError creates a new ProductNotFoundError
func NewProductNotFoundError(productID string) error {
	return &ProductNotFoundError{ProductID: productID}
}

// NewInvalidProductError creates a new InvalidProductError
func NewInvalidProductError(field, reason string, value interface{}) error {
	return &InvalidProductError{
		Field:  field,
		Reason: reason,
		Value:  value,
	}
}

// NewDuplicateProductError creates a new DuplicateProductError
func NewDuplicateProductError(productID string) error {
	return &DuplicateProductError{ProductID: productID}
}

// NewDuplicateProductNameError reports a name collision.
func NewDuplicateProductNameError(name string) error {
	return &DuplicateProductError{Name: name}
}

// NewInvalidArgumentError creates a new InvalidArgumentError
func NewInvalidArgumentError(field string, value interface{}) error {
	return &InvalidArgumentError{Field: field, Value: value}
}

// NewNonFiniteArgumentError reports a NaN or infinite numeric argument.
func NewNonFiniteArgumentError(field string, value float64) error {
	return &InvalidArgumentError{Field: field, Reason: "must be finite", Value: value}
}

// Type assertion helpers for use with errors.As()

// IsProductNotFoundError checks if an error is a ProductNotFoundError
func IsProductNotFoundError(err error) bool {
	var pnf *ProductNotFoundError
	return errors.As(err, &pnf)
}

// IsInvalidProductError checks if an error is an InvalidProductError
func IsInvalidProductError(err error) bool {
	var ipe *InvalidProductError
	return errors.As(err, &ipe)
}

// IsDuplicateProductError checks if an error is a DuplicateProductError
func IsDuplicateProductError(err error) bool {
	var dpe *DuplicateProductError
	return errors.As(err, &dpe)
}

// IsInvalidArgumentError checks if an error is an InvalidArgumentError
func IsInvalidArgumentError(err error) bool {
	var iae *InvalidArgumentError
	return errors.As(err, &iae)
}
