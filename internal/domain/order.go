package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsTerminal reports whether no further transition is permitted.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo validates the order status state machine:
// pending -> processing -> shipped -> delivered, and
// pending|processing -> cancelled. Terminal states allow nothing.
func CanTransitionTo(from, to OrderStatus) bool {
	switch from {
	case OrderStatusPending:
		return to == OrderStatusProcessing || to == OrderStatusCancelled
	case OrderStatusProcessing:
		return to == OrderStatusShipped || to == OrderStatusCancelled
	case OrderStatusShipped:
		return to == OrderStatusDelivered
	default:
		return false
	}
}

// OrderItem is a line of an order with prices re-resolved from the
// catalog at commit time, never taken from the client-supplied cart.
type OrderItem struct {
	ProductID       string  `bson:"product_id" json:"product_id"`
	ProductName     string  `bson:"product_name" json:"product_name"`
	Quantity        int     `bson:"quantity" json:"quantity"`
	OriginalPrice   float64 `bson:"original_price" json:"original_price"`
	PriceAtPurchase float64 `bson:"price_at_purchase" json:"price_at_purchase"`
	WasOnSale       bool    `bson:"was_on_sale" json:"was_on_sale"`
}

// AuditNote is one append-only entry in an order's internal history.
// The timestamp is assigned once by the writer that creates the note.
type AuditNote struct {
	Title     string    `bson:"title" json:"title"`
	Summary   string    `bson:"summary" json:"summary"`
	CreatedBy string    `bson:"created_by" json:"created_by"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

type PaymentMethod struct {
	Type    string            `bson:"type" json:"type"`
	Details map[string]string `bson:"details,omitempty" json:"details,omitempty"`
}

const PaymentCashOnDelivery = "cash_on_delivery"

type ShippingAddress struct {
	Governorate string `bson:"governorate" json:"governorate"`
	City        string `bson:"city" json:"city"`
	Landmark    string `bson:"landmark" json:"landmark"`
	FullAddress string `bson:"full_address" json:"full_address"`
}

type Order struct {
	ID              string          `bson:"_id" json:"id"`
	CustomerID      string          `bson:"customer_id" json:"customer_id"`
	Items           []OrderItem     `bson:"items" json:"items"`
	OrderDate       time.Time       `bson:"order_date" json:"order_date"`
	ItemsTotal      float64         `bson:"items_total" json:"items_total"`
	ShippingCost    float64         `bson:"shipping_cost" json:"shipping_cost"`
	TotalAmount     float64         `bson:"total_amount" json:"total_amount"`
	Status          OrderStatus     `bson:"status" json:"status"`
	ShippingAddress ShippingAddress `bson:"shipping_address" json:"shipping_address"`
	Notes           string          `bson:"notes,omitempty" json:"notes,omitempty"`
	InternalNotes   []AuditNote     `bson:"internal_notes" json:"internal_notes"`
	PaymentMethod   PaymentMethod   `bson:"payment_method" json:"payment_method"`
	UpdatedAt       time.Time       `bson:"updated_at" json:"updated_at"`
}
