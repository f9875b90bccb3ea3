package catalog

import (
	"context"
	"errors"

	"github.com/mu7ammad-3li/swiftcart/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// ProductReader defines the catalog read interface the checkout
// pipeline consumes. Consumers define this interface, not the
// MongoDB implementation.
type ProductReader interface {
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
}
