package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Products *ProductHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Payment  *PaymentHandler
	Orders   *OrdersHandler
}

func NewRouter(h Handlers, requestTimeout time.Duration) chi.Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(SessionMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Products.List)
			r.Get("/{slug}", h.Products.GetBySlug)
		})
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.GetCart)
			r.Post("/items", h.Products.AddToCart)
			r.Put("/items", h.Cart.UpdateItem)
		})
		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", h.Checkout.Begin)
			r.Post("/", h.Checkout.Submit)
		})
		r.Route("/payment/{orderID}", func(r chi.Router) {
			r.Get("/", h.Payment.GetSummary)
			r.Post("/", h.Payment.Submit)
		})
		r.Get("/confirmation", h.Orders.Confirm)
		r.Get("/tracking", h.Orders.Track)
	})

	return r
}
