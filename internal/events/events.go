// Package events fans domain events out to external trackers. The
// contract with every sink is best-effort: failures are logged and
// never reach the caller, so a broken tracker can never fail or roll
// back a checkout.
package events

import (
	"context"
	"time"
)

type EventType string

const (
	EventCheckoutStarted EventType = "checkout_started"
	EventOrderPlaced     EventType = "order_placed"
	EventOrderCancelled  EventType = "order_cancelled"
)

type Event struct {
	Type       EventType              `json:"type"`
	OrderID    string                 `json:"order_id,omitempty"`
	CustomerID string                 `json:"customer_id,omitempty"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// Sink accepts an event and attempts delivery. Errors are reported to
// the dispatcher for logging only.
type Sink interface {
	Publish(ctx context.Context, event Event) error
	Name() string
}
