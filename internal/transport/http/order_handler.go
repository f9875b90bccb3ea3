package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mu7ammad-3li/swiftcart/internal/cart"
	"github.com/mu7ammad-3li/swiftcart/internal/catalog"
	"github.com/mu7ammad-3li/swiftcart/internal/customer"
	"github.com/mu7ammad-3li/swiftcart/internal/domain"
	"github.com/mu7ammad-3li/swiftcart/internal/order"
)

// OrderService is the slice of the saga the transport layer needs.
type OrderService interface {
	PlaceOrder(ctx context.Context, snapshot cart.Snapshot, draft customer.Draft, notes string) (string, error)
	Cancel(ctx context.Context, orderID, reason, actor string) error
	UpdateStatus(ctx context.Context, orderID string, to domain.OrderStatus, actor, summary string) error
	AddNote(ctx context.Context, orderID, title, summary, actor string) error
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, customerID string) ([]domain.Order, error)
}

type OrderHandler struct {
	service OrderService
	timeout time.Duration
}

func NewOrderHandler(service OrderService, timeout time.Duration) *OrderHandler {
	return &OrderHandler{
		service: service,
		timeout: timeout,
	}
}

type CartLineDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type AddressDTO struct {
	Governorate string `json:"governorate"`
	City        string `json:"city"`
	Landmark    string `json:"landmark"`
	FullAddress string `json:"full_address"`
}

type PlaceOrderRequestDTO struct {
	Items       []CartLineDTO `json:"items"`
	FullName    string        `json:"full_name"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone"`
	SecondPhone string        `json:"second_phone"`
	Address     AddressDTO    `json:"address"`
	Notes       string        `json:"notes"`
}

type PlaceOrderResponseDTO struct {
	OrderID string `json:"order_id"`
}

// POST /api/v1/orders
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req PlaceOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	snapshot := cart.Snapshot{Lines: make([]cart.Line, 0, len(req.Items))}
	for _, item := range req.Items {
		snapshot.Lines = append(snapshot.Lines, cart.Line{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	draft := customer.Draft{
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		SecondPhone: req.SecondPhone,
		Address: domain.Address{
			Governorate: req.Address.Governorate,
			City:        req.Address.City,
			Landmark:    req.Address.Landmark,
			FullAddress: req.Address.FullAddress,
		},
	}

	orderID, err := h.service.PlaceOrder(ctx, snapshot, draft, req.Notes)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, PlaceOrderResponseDTO{OrderID: orderID})
}

type CancelOrderRequestDTO struct {
	Reason string `json:"reason"`
}

// POST /api/v1/orders/{order_id}/cancel
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderID := chi.URLParam(r, "order_id")

	var req CancelOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Reason == "" {
		respondError(w, http.StatusBadRequest, "missing_reason", "a cancellation reason is required")
		return
	}

	if err := h.service.Cancel(ctx, orderID, req.Reason, "customer"); err != nil {
		h.handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": string(domain.OrderStatusCancelled)})
}

type UpdateStatusRequestDTO struct {
	Status  string `json:"status"`
	Actor   string `json:"actor"`
	Summary string `json:"summary"`
}

// PATCH /api/v1/orders/{order_id}/status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderID := chi.URLParam(r, "order_id")

	var req UpdateStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	actor := req.Actor
	if actor == "" {
		actor = "system"
	}

	err := h.service.UpdateStatus(ctx, orderID, domain.OrderStatus(req.Status), actor, req.Summary)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

type AddNoteRequestDTO struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Actor   string `json:"actor"`
}

// POST /api/v1/orders/{order_id}/notes
func (h *OrderHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderID := chi.URLParam(r, "order_id")

	var req AddNoteRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	actor := req.Actor
	if actor == "" {
		actor = "system"
	}

	if err := h.service.AddNote(ctx, orderID, req.Title, req.Summary, actor); err != nil {
		h.handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"order_id": orderID})
}

// GET /api/v1/orders/{order_id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderID := chi.URLParam(r, "order_id")

	o, err := h.service.GetOrder(ctx, orderID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, o)
}

// GET /api/v1/customers/{customer_id}/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	customerID := chi.URLParam(r, "customer_id")

	orders, err := h.service.ListOrders(ctx, customerID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}

	respondJSON(w, http.StatusOK, orders)
}

// handleError maps the saga's error taxonomy to HTTP. Anything not in
// the taxonomy is treated as a transient store problem: the client
// gets a generic retry message, never a raw internal error.
func (h *OrderHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *order.ValidationError
	var stockErr *order.InsufficientStockError

	switch {
	case errors.As(err, &validationErr):
		respondError(w, http.StatusBadRequest, "validation_failed",
			"some required fields are missing or invalid", validationErr.Fields...)
	case errors.Is(err, order.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", "the cart is empty")
	case errors.As(err, &stockErr):
		respondError(w, http.StatusConflict, "insufficient_stock",
			"not enough stock for "+stockErr.ProductName, stockErr.ProductID)
	case errors.Is(err, order.ErrTerminalState):
		respondError(w, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, order.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "order_not_found", "order not found")
	case errors.Is(err, catalog.ErrProductNotFound):
		respondError(w, http.StatusBadRequest, "unknown_product", "an item in the cart no longer exists")
	case errors.Is(err, order.ErrInvalidProductPrice):
		respondError(w, http.StatusConflict, "unsellable_product", "an item in the cart cannot be priced")
	default:
		slog.Error("order request failed", "request_id", getRequestID(r.Context()), "error", err)
		respondError(w, http.StatusServiceUnavailable, "temporarily_unavailable", "please retry in a moment")
	}
}
