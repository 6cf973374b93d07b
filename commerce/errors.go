/*
errors.go - Centralized error types for the commerce engine

PURPOSE:
  All domain error values in one place. The api package maps these onto
  HTTP status codes; storage backends wrap their own failures with %w so
  errors.Is keeps working across layers.

ERROR CATEGORIES:
  1. Invalid input  - rejected before any effect is applied
  2. Not found      - reversal of a sale that does not exist
  3. Storage        - persistence failure inside an atomic unit; the unit
                      rolls back completely, so no compensation is needed

USAGE:
  if commerce.IsInvalidInput(err) { ... 400 ... }
  if commerce.IsNotFound(err)     { ... 404 ... }
*/
package commerce

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrEmptyCart is returned when a commit is attempted with no cart lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidQuantity is returned when a cart line has a non-positive quantity.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrProductNotFound is returned when a cart line references an unknown product.
	ErrProductNotFound = errors.New("product not found")

	// ErrClientNotFound is returned when a commit references an unknown client.
	ErrClientNotFound = errors.New("client not found")

	// ErrSaleNotFound is returned when reversing a sale that does not exist.
	ErrSaleNotFound = errors.New("sale not found")

	// ErrWalkInClientProtected is returned when deleting the reserved default client.
	ErrWalkInClientProtected = errors.New("default walk-in client cannot be deleted")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// UnknownProductError identifies which cart line failed product resolution.
type UnknownProductError struct {
	ProductID int64
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

func (e *UnknownProductError) Unwrap() error { return ErrProductNotFound }

// UnknownClientError identifies the missing client reference of a commit.
type UnknownClientError struct {
	ClientID int64
}

func (e *UnknownClientError) Error() string {
	return fmt.Sprintf("client %d not found", e.ClientID)
}

func (e *UnknownClientError) Unwrap() error { return ErrClientNotFound }

// InvalidQuantityError identifies the offending cart line.
type InvalidQuantityError struct {
	ProductID int64
	Qty       int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %d for product %d", e.Qty, e.ProductID)
}

func (e *InvalidQuantityError) Unwrap() error { return ErrInvalidQuantity }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsInvalidInput returns true if the error is due to invalid caller input.
// These errors are reported before any state is touched.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrEmptyCart) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrClientNotFound) ||
		errors.Is(err, ErrWalkInClientProtected)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSaleNotFound)
}
