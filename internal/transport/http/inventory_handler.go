package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mu7ammad-3li/swiftcart/internal/domain"
	"github.com/mu7ammad-3li/swiftcart/internal/inventory"
)

// InventoryHandler exposes the stock admin surface: reads and
// quantity overwrites. Reservations happen only through checkout.
type InventoryHandler struct {
	ledger  inventory.Ledger
	timeout time.Duration
}

func NewInventoryHandler(ledger inventory.Ledger, timeout time.Duration) *InventoryHandler {
	return &InventoryHandler{
		ledger:  ledger,
		timeout: timeout,
	}
}

type SetQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

// GET /api/v1/inventory/{product_id}
func (h *InventoryHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID := chi.URLParam(r, "product_id")

	record, err := h.ledger.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, inventory.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "product_not_found", "no stock record for this product")
			return
		}
		respondError(w, http.StatusServiceUnavailable, "temporarily_unavailable", "please retry in a moment")
		return
	}

	respondJSON(w, http.StatusOK, record)
}

// PUT /api/v1/inventory/{product_id}
func (h *InventoryHandler) SetStock(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID := chi.URLParam(r, "product_id")

	var req SetQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity < 0 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must not be negative")
		return
	}

	if err := h.ledger.SetQuantity(ctx, productID, req.Quantity); err != nil {
		respondError(w, http.StatusServiceUnavailable, "temporarily_unavailable", "please retry in a moment")
		return
	}

	respondJSON(w, http.StatusOK, domain.InventoryRecord{ProductID: productID, Quantity: req.Quantity})
}
