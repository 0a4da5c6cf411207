package domain

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductNotFoundError(t *testing.T) {
	err := NewProductNotFoundError("prod-123")
	assert.Equal(t, "product not found: id=prod-123", err.Error())
	assert.True(t, errors.Is(err, &ProductNotFoundError{}))

	var pnf *ProductNotFoundError
	require.True(t, errors.As(err, &pnf))
	assert.Equal(t, "prod-123", pnf.ProductID)
	assert.True(t, IsProductNotFoundError(err))
}

func TestInvalidProductError(t *testing.T) {
	err := NewInvalidProductError("purchase_cost", "must be non-negative", -10.5)
	assert.Equal(t, "invalid product: field=purchase_cost, reason=must be non-negative, value=-10.5", err.Error())
	assert.True(t, errors.Is(err, &InvalidProductError{}))

	var ipe *InvalidProductError
	require.True(t, errors.As(err, &ipe))
	assert.Equal(t, "purchase_cost", ipe.Field)
	assert.True(t, IsInvalidProductError(err))
}

func TestDuplicateProductError(t *testing.T) {
	t.Run("by id", func(t *testing.T) {
		err := NewDuplicateProductError("prod-001")
		assert.Equal(t, "duplicate product: id=prod-001 already exists", err.Error())
		assert.True(t, IsDuplicateProductError(err))
	})

	t.Run("by name", func(t *testing.T) {
		err := NewDuplicateProductNameError("Webcam HD")
		assert.Equal(t, "duplicate product: name=Webcam HD already exists", err.Error())
		assert.True(t, errors.Is(err, &DuplicateProductError{}))
	})
}

func TestNonFiniteArgumentError(t *testing.T) {
	err := NewNonFiniteArgumentError("storage_cost", math.NaN())
	assert.Equal(t, "invalid argument: storage_cost=NaN must be finite", err.Error())
	assert.True(t, IsInvalidArgumentError(fmt.Errorf("simulate: %w", err)))
}

func TestInvalidArgumentError(t *testing.T) {
	err := NewInvalidArgumentError("demand", -3)
	assert.Equal(t, "invalid argument: demand=-3 must be non-negative", err.Error())

	wrapped := fmt.Errorf("recommend p-1: %w", err)
	assert.True(t, IsInvalidArgumentError(wrapped))

	var iae *InvalidArgumentError
	require.True(t, errors.As(wrapped, &iae))
	assert.Equal(t, "demand", iae.Field)
}

func TestErrorTypeDiscrimination(t *testing.T) {
	errs := map[string]error{
		"not_found": NewProductNotFoundError("prod-1"),
		"invalid":   NewInvalidProductError("name", "cannot be empty", ""),
		"duplicate": NewDuplicateProductError("prod-2"),
		"argument":  NewInvalidArgumentError("quantity", -1),
	}
	checks := map[string]func(error) bool{
		"not_found": IsProductNotFoundError,
		"invalid":   IsInvalidProductError,
		"duplicate": IsDuplicateProductError,
		"argument":  IsInvalidArgumentError,
	}

	for errKind, err := range errs {
		for checkKind, check := range checks {
			assert.Equal(t, errKind == checkKind, check(err), "%s checked as %s", errKind, checkKind)
		}
	}
}
