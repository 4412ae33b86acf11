package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Cheertaboi/storefront-service/internal/api/handlers"
	"github.com/Cheertaboi/storefront-service/internal/api/middleware"
	"github.com/Cheertaboi/storefront-service/internal/auth"
	"github.com/Cheertaboi/storefront-service/internal/metrics"
	"github.com/Cheertaboi/storefront-service/internal/service"
)

type Deps struct {
	Services Services
	Issuer   *auth.Issuer
	Logger   zerolog.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer // serves /metrics when set

	// RateLimit guards the public write endpoints. Nil disables it.
	RateLimit func(http.Handler) http.Handler
}

type Services struct {
	Checkout  *service.CheckoutService
	Carts     *service.CartService
	Orders    *service.OrderService
	Discounts *service.DiscountService
}

// NewRouter builds the HTTP router for the storefront service
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger(d.Logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics(d.Metrics))

	checkout := handlers.NewCheckoutHandler(d.Services.Checkout)
	carts := handlers.NewCartHandler(d.Services.Carts)
	orders := handlers.NewOrderHandler(d.Services.Orders)
	discounts := handlers.NewDiscountHandler(d.Services.Discounts)

	limited := func(h http.HandlerFunc) http.Handler {
		if d.RateLimit == nil {
			return h
		}
		return d.RateLimit(h)
	}
	requireAuth := middleware.RequireAuth(d.Issuer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			// Public checkout endpoints
			r.Method(http.MethodPost, "/checkout", limited(checkout.Checkout))
			r.Method(http.MethodPost, "/validate-coupon", limited(checkout.ValidateCoupon))

			// Admin read access
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/orders", orders.ListOrders)
				r.Get("/orders/{id}", orders.GetOrder)
				r.Put("/orders/{id}", orders.UpdateOrder)
				r.Delete("/orders/{id}", orders.DeleteOrder)
				r.Get("/orders/{id}/receipt", orders.GetOrderReceipt)
				r.Get("/receipts/{id}", orders.GetReceipt)
				r.Put("/receipts/{id}", orders.UpdateReceipt)
			})
		})

		r.Route("/carts", func(r chi.Router) {
			r.Method(http.MethodPost, "/", limited(carts.Create))
			r.Get("/", carts.List)
			r.Get("/code/{code}", carts.GetByCode)
			r.Get("/{id}", carts.Get)
			r.Put("/{id}", carts.Update)
			r.Delete("/{id}", carts.Delete)
		})

		r.Route("/discounts", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", discounts.List)
			r.Post("/", discounts.Create)
			r.Get("/{id}", discounts.Get)
			r.Put("/{id}", discounts.Update)
			r.Delete("/{id}", discounts.Delete)
			r.Get("/{id}/usage", discounts.Usage)
		})
	})

	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	// health
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
