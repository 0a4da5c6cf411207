// Package domain defines core business types and interfaces.
package domain

import (
	"context"
	"math"
	"strings"
)

// Product represents an inventory product
type Product struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	PurchaseCost    float64 `json:"purchase_cost"`
	SaleCost        float64 `json:"sale_cost"`
	Quantity        int     `json:"quantity"`
	Threshold       float64 `json:"threshold"`
	StorageCost     float64 `json:"storage_cost"`
	EstimatedDemand int     `json:"estimated_demand"`
}

// StockValue is the purchase value of the units on hand.
func (p Product) StockValue() float64 {
	return float64(p.Quantity) * p.PurchaseCost
}

// StorageCostTotal is the holding cost of the units on hand for one period.
func (p Product) StorageCostTotal() float64 {
	return p.StorageCost * float64(p.Quantity)
}

// BelowThreshold reports whether stock is at or under the configured threshold.
func (p Product) BelowThreshold() bool {
	return float64(p.Quantity) <= p.Threshold
}

// ValidateProduct checks the fields every stored product must satisfy.
func ValidateProduct(p Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return NewInvalidProductError("name", "cannot be empty", p.Name)
	}
	for _, f := range []struct {
		field string
		value float64
	}{
		{"purchase_cost", p.PurchaseCost},
		{"sale_cost", p.SaleCost},
		{"threshold", p.Threshold},
		{"storage_cost", p.StorageCost},
	} {
		if !IsFinite(f.value) {
			return NewInvalidProductError(f.field, "must be finite", f.value)
		}
	}
	if p.PurchaseCost < 0 {
		return NewInvalidProductError("purchase_cost", "must be non-negative", p.PurchaseCost)
	}
	if p.Quantity < 0 {
		return NewInvalidProductError("quantity", "must be non-negative", p.Quantity)
	}
	if p.Threshold < 0 {
		return NewInvalidProductError("threshold", "must be non-negative", p.Threshold)
	}
	if p.EstimatedDemand < 0 {
		return NewInvalidProductError("estimated_demand", "must be non-negative", p.EstimatedDemand)
	}
	return nil
}

// IsFinite reports whether f is neither NaN nor an infinity.
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ValidateNewProduct applies ValidateProduct plus the rules that only hold
// when a product is first registered.
func ValidateNewProduct(p Product) error {
	if err := ValidateProduct(p); err != nil {
		return err
	}
	if p.SaleCost <= p.PurchaseCost {
		return NewInvalidProductError("sale_cost", "must be greater than purchase_cost", p.SaleCost)
	}
	return nil
}

// ListFilter allows filtering and sorting results from List
type ListFilter struct {
	Name       string // case-insensitive substring
	AlertsOnly bool   // only products with quantity <= threshold
	MinPrice   *float64
	MaxPrice   *float64
	SortBy     string // "name", "price", "cost", "quantity", "demand"
	Order      string // "asc" or "desc"
}

// ProductStore defines the storage interface for products
type ProductStore interface {
	Create(ctx context.Context, product Product) error
	Get(ctx context.Context, id string) (Product, error)
	FindByName(ctx context.Context, name string) (Product, error)
	Update(ctx context.Context, id string, product Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]Product, error)
	BulkImport(ctx context.Context, products []Product) error
}
