package order

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyCart     = errors.New("cart is empty, nothing to check out")
	ErrOrderNotFound = errors.New("order not found")
	// ErrTerminalState is returned when a transition is requested out
	// of a state that does not permit it.
	ErrTerminalState = errors.New("order status does not permit this transition")
	// ErrStatusConflict signals a concurrent writer changed the order
	// status between read and update.
	ErrStatusConflict = errors.New("order status changed concurrently")
	// ErrInvalidProductPrice signals a catalog entry whose price does
	// not resolve to a positive number at commit time.
	ErrInvalidProductPrice = errors.New("product price resolves to an invalid value")
)

// ValidationError names every missing or invalid contact field so the
// UI can show them inline. It carries no side effects: validation
// happens before any write.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(e.Fields, ", "))
}

// InsufficientStockError names the offending product. By the time it
// is returned every reservation taken for the same order has been
// released again.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (%s)", e.ProductName, e.ProductID)
}
