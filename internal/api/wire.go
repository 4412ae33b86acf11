package api

import (
	"database/sql"

	"github.com/Cheertaboi/storefront-service/internal/metrics"
	"github.com/Cheertaboi/storefront-service/internal/repository"
	"github.com/Cheertaboi/storefront-service/internal/service"
)

// NewServices wires the Postgres repositories into the services. The db
// handle is owned by the caller.
func NewServices(db *sql.DB, m *metrics.Metrics) Services {
	discountRepo := repository.NewDiscountRepo(db)
	usageRepo := repository.NewUsageRepo(db)
	orderRepo := repository.NewOrderRepo(db, usageRepo)
	receiptRepo := repository.NewReceiptRepo(db)
	cartRepo := repository.NewCartRepo(db)

	coupons := service.NewCouponService(discountRepo, m)

	return Services{
		Checkout:  service.NewCheckoutService(coupons, orderRepo, m),
		Carts:     service.NewCartService(cartRepo, service.RandomCode),
		Orders:    service.NewOrderService(orderRepo, receiptRepo),
		Discounts: service.NewDiscountService(discountRepo, usageRepo, service.RandomCode),
	}
}
