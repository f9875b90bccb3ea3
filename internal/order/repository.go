package order

import (
	"context"

	"github.com/mu7ammad-3li/swiftcart/internal/domain"
)

// Repository defines the order persistence operations the saga needs.
// internal_notes is append-only at this boundary: there is no way to
// rewrite or reorder notes, only to push one.
type Repository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, orderID string) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	// UpdateStatus moves the order to a new status and appends the
	// transition's audit note in the same atomic update. The write is
	// conditional on the current status being one of from; when the
	// condition fails it returns ErrStatusConflict (or ErrOrderNotFound
	// when no such order exists).
	UpdateStatus(ctx context.Context, orderID string, from []domain.OrderStatus, to domain.OrderStatus, note domain.AuditNote) error
	// AppendNote pushes one audit note without touching status.
	AppendNote(ctx context.Context, orderID string, note domain.AuditNote) error
}
