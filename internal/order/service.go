package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mu7ammad-3li/swiftcart/internal/cart"
	"github.com/mu7ammad-3li/swiftcart/internal/catalog"
	"github.com/mu7ammad-3li/swiftcart/internal/customer"
	"github.com/mu7ammad-3li/swiftcart/internal/domain"
	"github.com/mu7ammad-3li/swiftcart/internal/events"
	"github.com/mu7ammad-3li/swiftcart/internal/inventory"
	"github.com/mu7ammad-3li/swiftcart/internal/phone"
	"github.com/mu7ammad-3li/swiftcart/internal/pricing"
)

// ShippingPolicy is the threshold rule: free shipping at or above
// FreeThreshold of items total, flat Fee otherwise.
type ShippingPolicy struct {
	FreeThreshold float64
	Fee           float64
}

func (p ShippingPolicy) Cost(itemsTotal float64) float64 {
	if itemsTotal >= p.FreeThreshold {
		return 0
	}
	return p.Fee
}

// Service orchestrates the checkout saga: validate cart, resolve
// customer, re-price from the catalog, reserve inventory, persist the
// order with its first audit note. It also owns the compensating
// cancellation path and forward status transitions.
type Service struct {
	catalog    catalog.ProductReader
	customers  *customer.Resolver
	ledger     inventory.Ledger
	repo       Repository
	dispatcher *events.Dispatcher
	shipping   ShippingPolicy
}

func NewService(
	cat catalog.ProductReader,
	customers *customer.Resolver,
	ledger inventory.Ledger,
	repo Repository,
	dispatcher *events.Dispatcher,
	shipping ShippingPolicy,
) *Service {
	return &Service{
		catalog:    cat,
		customers:  customers,
		ledger:     ledger,
		repo:       repo,
		dispatcher: dispatcher,
		shipping:   shipping,
	}
}

// PlaceOrder runs the saga steps strictly in sequence. Validation and
// identity resolution take no inventory side effects; reservations
// taken before a failing line are released before the error returns.
// A failure after reservation but before the order write is surfaced
// as retryable to the caller; the idempotent customer key makes the
// retry safe.
func (s *Service) PlaceOrder(ctx context.Context, snapshot cart.Snapshot, draft customer.Draft, notes string) (string, error) {
	if len(snapshot.Lines) == 0 {
		return "", ErrEmptyCart
	}

	// Line quantities are client-supplied. A non-positive quantity
	// would corrupt the items total and, worse, pass the ledger's
	// conditional decrement as an increment.
	for _, line := range snapshot.Lines {
		if line.Quantity <= 0 {
			return "", &ValidationError{Fields: []string{"quantity"}}
		}
	}

	if err := validateDraft(draft); err != nil {
		return "", err
	}

	s.dispatcher.Dispatch(events.Event{
		Type:    events.EventCheckoutStarted,
		Payload: map[string]interface{}{"item_count": len(snapshot.Lines)},
	})

	customerID, err := s.customers.FindOrCreate(ctx, draft)
	if err != nil {
		if errors.Is(err, customer.ErrInvalidPhone) {
			return "", &ValidationError{Fields: []string{"phone"}}
		}
		return "", fmt.Errorf("failed to resolve customer: %w", err)
	}

	// Prices come from the catalog at commit time, never from the
	// client-supplied cart lines.
	items, itemsTotal, err := s.priceItems(ctx, snapshot.Lines)
	if err != nil {
		return "", err
	}

	shippingCost := s.shipping.Cost(itemsTotal)
	totalAmount := itemsTotal + shippingCost

	if err := s.reserveAll(ctx, items); err != nil {
		return "", err
	}

	now := time.Now()
	o := &domain.Order{
		ID:           uuid.New().String(),
		CustomerID:   customerID,
		Items:        items,
		OrderDate:    now,
		ItemsTotal:   itemsTotal,
		ShippingCost: shippingCost,
		TotalAmount:  totalAmount,
		Status:       domain.OrderStatusPending,
		ShippingAddress: domain.ShippingAddress{
			Governorate: draft.Address.Governorate,
			City:        draft.Address.City,
			Landmark:    draft.Address.Landmark,
			FullAddress: draft.Address.FullAddress,
		},
		Notes: notes,
		InternalNotes: []domain.AuditNote{
			{
				Title:     "Order Placed via Checkout",
				Summary:   placementSummary(draft, notes),
				CreatedBy: "system",
				Timestamp: now, // same instant as OrderDate
			},
		},
		PaymentMethod: domain.PaymentMethod{Type: domain.PaymentCashOnDelivery},
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		// Inventory stays reserved: the caller retries with the same
		// idempotent customer id, and reservation/order divergence is
		// alerted on instead of compensated here.
		slog.Error("order write failed after inventory reservation", "order_id", o.ID, "error", err)
		return "", fmt.Errorf("failed to persist order: %w", err)
	}

	s.dispatcher.Dispatch(events.Event{
		Type:       events.EventOrderPlaced,
		OrderID:    o.ID,
		CustomerID: customerID,
		Payload: map[string]interface{}{
			"total_amount": totalAmount,
			"item_count":   len(items),
		},
	})

	return o.ID, nil
}

func (s *Service) priceItems(ctx context.Context, lines []cart.Line) ([]domain.OrderItem, float64, error) {
	items := make([]domain.OrderItem, 0, len(lines))
	var itemsTotal float64

	for _, line := range lines {
		product, err := s.catalog.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to get product %s: %w", line.ProductID, err)
		}

		originalPrice := pricing.ParsePrice(product.Price)
		effectivePrice := pricing.EffectivePrice(*product)
		if effectivePrice <= 0 {
			return nil, 0, fmt.Errorf("%w: product %s", ErrInvalidProductPrice, product.ID)
		}
		wasOnSale := product.OnSale && effectivePrice < originalPrice

		items = append(items, domain.OrderItem{
			ProductID:       product.ID,
			ProductName:     product.Name,
			Quantity:        line.Quantity,
			OriginalPrice:   originalPrice,
			PriceAtPurchase: effectivePrice,
			WasOnSale:       wasOnSale,
		})
		itemsTotal += effectivePrice * float64(line.Quantity)
	}

	return items, itemsTotal, nil
}

// reserveAll reserves every line in order. On the first failure the
// reservations already taken for this order are rolled back before
// the error returns, so a multi-line order is never partially held.
func (s *Service) reserveAll(ctx context.Context, items []domain.OrderItem) error {
	for i, item := range items {
		err := s.ledger.Reserve(ctx, item.ProductID, item.Quantity)
		if err == nil {
			continue
		}

		s.releaseItems(ctx, items[:i])

		if errors.Is(err, inventory.ErrInsufficientStock) || errors.Is(err, inventory.ErrProductNotFound) {
			return &InsufficientStockError{ProductID: item.ProductID, ProductName: item.ProductName}
		}
		return fmt.Errorf("failed to reserve inventory for %s: %w", item.ProductID, err)
	}
	return nil
}

func (s *Service) releaseItems(ctx context.Context, items []domain.OrderItem) {
	for _, item := range items {
		if err := s.ledger.Release(ctx, item.ProductID, item.Quantity); err != nil {
			slog.Error("failed to release reservation", "product_id", item.ProductID, "quantity", item.Quantity, "error", err)
		}
	}
}

// Cancel reverses an order: it claims the cancelled status first via
// compare-and-set and only then releases inventory, so a double click
// can never double-release. Cancelling an already-cancelled order is
// a no-op success.
func (s *Service) Cancel(ctx context.Context, orderID, reason, actor string) error {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	if o.Status == domain.OrderStatusCancelled {
		return nil
	}
	if !domain.CanTransitionTo(o.Status, domain.OrderStatusCancelled) {
		return fmt.Errorf("%w: cannot cancel order in status %s", ErrTerminalState, o.Status)
	}

	note := domain.AuditNote{
		Title:     "Order Cancelled",
		Summary:   reason,
		CreatedBy: actor,
		Timestamp: time.Now(),
	}
	from := []domain.OrderStatus{domain.OrderStatusPending, domain.OrderStatusProcessing}
	err = s.repo.UpdateStatus(ctx, orderID, from, domain.OrderStatusCancelled, note)
	if err != nil {
		if errors.Is(err, ErrStatusConflict) {
			// Lost the race. If the winner cancelled, that walk
			// already released the stock and we are done.
			current, errGet := s.repo.GetByID(ctx, orderID)
			if errGet != nil {
				return errGet
			}
			if current.Status == domain.OrderStatusCancelled {
				return nil
			}
			return fmt.Errorf("%w: cannot cancel order in status %s", ErrTerminalState, current.Status)
		}
		return err
	}

	// Releases are atomic increments and best-effort after the status
	// claim: a transient failure here is alerted on, not retried via a
	// second Cancel (which is a no-op by then).
	s.releaseItems(ctx, o.Items)

	s.dispatcher.Dispatch(events.Event{
		Type:       events.EventOrderCancelled,
		OrderID:    orderID,
		CustomerID: o.CustomerID,
		Payload:    map[string]interface{}{"reason": reason},
	})

	return nil
}

// UpdateStatus applies a forward transition (pending -> processing ->
// shipped -> delivered) and appends the transition note in the same
// write. Cancellation goes through Cancel, which also compensates
// inventory.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, to domain.OrderStatus, actor, summary string) error {
	if to == domain.OrderStatusCancelled {
		return s.Cancel(ctx, orderID, summary, actor)
	}

	var from []domain.OrderStatus
	for _, status := range []domain.OrderStatus{
		domain.OrderStatusPending,
		domain.OrderStatusProcessing,
		domain.OrderStatusShipped,
	} {
		if domain.CanTransitionTo(status, to) {
			from = append(from, status)
		}
	}
	if len(from) == 0 {
		return fmt.Errorf("%w: no status may transition to %s", ErrTerminalState, to)
	}

	if summary == "" {
		summary = fmt.Sprintf("Status updated to %s", to)
	}
	note := domain.AuditNote{
		Title:     "Status Changed",
		Summary:   summary,
		CreatedBy: actor,
		Timestamp: time.Now(),
	}

	err := s.repo.UpdateStatus(ctx, orderID, from, to, note)
	if errors.Is(err, ErrStatusConflict) {
		return fmt.Errorf("%w: order may not move to %s", ErrTerminalState, to)
	}
	return err
}

// AddNote appends a free-form audit note to an order's internal
// history. Notes are append-only and never change status.
func (s *Service) AddNote(ctx context.Context, orderID, title, summary, actor string) error {
	if strings.TrimSpace(summary) == "" {
		return &ValidationError{Fields: []string{"summary"}}
	}
	if title == "" {
		title = "Internal Note"
	}

	return s.repo.AppendNote(ctx, orderID, domain.AuditNote{
		Title:     title,
		Summary:   summary,
		CreatedBy: actor,
		Timestamp: time.Now(),
	})
}

func (s *Service) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, orderID)
}

func (s *Service) ListOrders(ctx context.Context, customerID string) ([]domain.Order, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

func validateDraft(draft customer.Draft) error {
	var missing []string
	if strings.TrimSpace(draft.FullName) == "" {
		missing = append(missing, "full_name")
	}
	if strings.TrimSpace(draft.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(draft.Address.Governorate) == "" {
		missing = append(missing, "governorate")
	}
	if strings.TrimSpace(draft.Address.City) == "" {
		missing = append(missing, "city")
	}
	if strings.TrimSpace(draft.Address.FullAddress) == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}

	if !phone.Valid(phone.Normalize(draft.Phone)) {
		return &ValidationError{Fields: []string{"phone"}}
	}
	if draft.SecondPhone != "" && !phone.Valid(phone.Normalize(draft.SecondPhone)) {
		return &ValidationError{Fields: []string{"second_phone"}}
	}
	return nil
}

// placementSummary snapshots the contact details into the first audit
// note so support can see them even if the customer record changes.
func placementSummary(draft customer.Draft, notes string) string {
	second := ""
	if draft.SecondPhone != "" {
		second = " / " + phone.Normalize(draft.SecondPhone)
	}
	landmark := draft.Address.Landmark
	if landmark == "" {
		landmark = "N/A"
	}
	if notes == "" {
		notes = "None"
	}

	return fmt.Sprintf(
		"Name: %s\nPhone: %s%s\nAddress: %s, %s, %s\nLandmark: %s\nUser Notes: %s",
		draft.FullName,
		phone.Normalize(draft.Phone), second,
		draft.Address.FullAddress, draft.Address.City, draft.Address.Governorate,
		landmark,
		notes,
	)
}
