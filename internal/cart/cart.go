// Package cart holds the in-progress order for one browsing session.
// The store is single-owner and synchronous: exactly one logical
// caller drives it, so no locking is required.
package cart

import (
	"errors"

	"github.com/mu7ammad-3li/swiftcart/internal/domain"
	"github.com/mu7ammad-3li/swiftcart/internal/pricing"
)

var ErrInvalidPrice = errors.New("product price is invalid, item not added")

// Line is one product entry with its unit price snapshotted at
// add-time. The snapshot is fixed once set: later catalog price
// changes do not alter a line already present.
type Line struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   float64
}

// Snapshot is the read-only view of the cart handed to checkout.
type Snapshot struct {
	Lines []Line
}

type Store struct {
	lines []Line
}

func NewStore() *Store {
	return &Store{}
}

// AddItem resolves the effective unit price now and snapshots it.
// A price that resolves to 0 or below rejects the add: a corrupt
// catalog entry must not enter the cart at price 0. If the product is
// already present quantities are summed and the original snapshotted
// price is kept (first-write-wins).
func (s *Store) AddItem(product domain.Product, quantity int) error {
	if quantity <= 0 {
		return nil
	}

	price := pricing.EffectivePrice(product)
	if price <= 0 {
		return ErrInvalidPrice
	}

	for i := range s.lines {
		if s.lines[i].ProductID == product.ID {
			s.lines[i].Quantity += quantity
			return nil
		}
	}

	s.lines = append(s.lines, Line{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    quantity,
		UnitPrice:   price,
	})
	return nil
}

func (s *Store) RemoveItem(productID string) {
	for i, line := range s.lines {
		if line.ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the quantity of an existing line. A quantity of
// zero or below removes the line.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(productID)
		return
	}
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity = quantity
			return
		}
	}
}

func (s *Store) Clear() {
	s.lines = nil
}

// TotalPrice is derived from the current lines on every call; there
// is no cached aggregate to go stale.
func (s *Store) TotalPrice() float64 {
	var total float64
	for _, line := range s.lines {
		total += line.UnitPrice * float64(line.Quantity)
	}
	return total
}

func (s *Store) ItemCount() int {
	var count int
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

func (s *Store) Quantity(productID string) int {
	for _, line := range s.lines {
		if line.ProductID == productID {
			return line.Quantity
		}
	}
	return 0
}

// Snapshot copies the current lines so checkout works on a stable
// view even if the session keeps mutating the cart.
func (s *Store) Snapshot() Snapshot {
	lines := make([]Line, len(s.lines))
	copy(lines, s.lines)
	return Snapshot{Lines: lines}
}
