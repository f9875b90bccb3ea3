package inventory

import (
	"context"
	"errors"

	"github.com/mu7ammad-3li/swiftcart/internal/domain"
)

var (
	ErrProductNotFound   = errors.New("product has no inventory record")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Ledger holds the available quantity per product. Reserve and
// Release are atomic increments, so concurrent checkouts on the same
// product never lose updates. SetQuantity is an admin overwrite.
type Ledger interface {
	// Reserve atomically decrements the available quantity. When the
	// stored quantity is lower than qty it fails without mutating.
	Reserve(ctx context.Context, productID string, qty int) error
	// Release is the compensating inverse of Reserve; it never fails
	// for business reasons.
	Release(ctx context.Context, productID string, qty int) error
	// Get returns the current record.
	Get(ctx context.Context, productID string) (*domain.InventoryRecord, error)
	// SetQuantity overwrites the quantity (seeding and admin use).
	SetQuantity(ctx context.Context, productID string, qty int) error
}
