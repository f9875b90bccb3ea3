package customer

import (
	"context"
	"errors"

	"github.com/mu7ammad-3li/swiftcart/internal/domain"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrInvalidPhone     = errors.New("phone number does not match the national format")
)

// Repository defines the customer data operations the resolver needs.
type Repository interface {
	// GetByID reads the customer stored at the canonical phone key.
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	// CreateIfAbsent writes the customer at its id. When a concurrent
	// writer got there first it returns the already stored record and
	// no error, so duplicate submissions converge on one document.
	CreateIfAbsent(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	// UpdateContact deliberately overwrites name/address/contact
	// attributes of an existing customer.
	UpdateContact(ctx context.Context, c *domain.Customer) error
}
