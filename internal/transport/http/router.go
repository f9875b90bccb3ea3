package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(orders *OrderHandler, stock *InventoryHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/orders", orders.PlaceOrder)
		r.Get("/orders/{order_id}", orders.GetOrder)
		r.Post("/orders/{order_id}/cancel", orders.CancelOrder)
		r.Patch("/orders/{order_id}/status", orders.UpdateStatus)
		r.Post("/orders/{order_id}/notes", orders.AddNote)
		r.Get("/customers/{customer_id}/orders", orders.ListOrders)
		r.Get("/inventory/{product_id}", stock.GetStock)
		r.Put("/inventory/{product_id}", stock.SetStock)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}
