package customer

import (
	"context"
	"fmt"

	"github.com/mu7ammad-3li/swiftcart/internal/domain"
	"github.com/mu7ammad-3li/swiftcart/internal/phone"
)

// Draft carries the contact details collected at checkout, before
// identity resolution. Phone fields may still be raw user input.
type Draft struct {
	FullName    string
	Email       string
	Phone       string
	SecondPhone string
	Address     domain.Address
}

// Resolver maps a contact draft to a durable customer id. The
// normalized phone number is the identity key, so repeated calls with
// equivalent input always resolve to the same customer.
type Resolver struct {
	repo Repository
}

func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

// FindOrCreate normalizes and validates the draft's phone number,
// then reads or creates the customer record stored at that key.
// Validation happens before any write. An existing record is never
// overwritten here: the order carries its own shipping snapshot, and
// deliberate edits go through UpdateContact.
func (r *Resolver) FindOrCreate(ctx context.Context, draft Draft) (string, error) {
	key := phone.Normalize(draft.Phone)
	if !phone.Valid(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, key)
	}

	second := phone.Normalize(draft.SecondPhone)
	if draft.SecondPhone != "" && !phone.Valid(second) {
		return "", fmt.Errorf("%w: secondary %q", ErrInvalidPhone, second)
	}

	c := &domain.Customer{
		ID:          key,
		FullName:    draft.FullName,
		Email:       draft.Email,
		Phone:       key,
		SecondPhone: second,
		Address:     draft.Address,
		Status:      domain.CustomerStatusActive,
	}

	stored, err := r.repo.CreateIfAbsent(ctx, c)
	if err != nil {
		return "", fmt.Errorf("failed to find or create customer: %w", err)
	}

	return stored.ID, nil
}

// UpdateContact overwrites the stored contact attributes of an
// existing customer. Unlike FindOrCreate this is an explicit edit.
func (r *Resolver) UpdateContact(ctx context.Context, draft Draft) error {
	key := phone.Normalize(draft.Phone)
	if !phone.Valid(key) {
		return fmt.Errorf("%w: %q", ErrInvalidPhone, key)
	}

	return r.repo.UpdateContact(ctx, &domain.Customer{
		ID:          key,
		FullName:    draft.FullName,
		Email:       draft.Email,
		SecondPhone: phone.Normalize(draft.SecondPhone),
		Address:     draft.Address,
	})
}
