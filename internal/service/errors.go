package service

import "github.com/pkg/errors"

// Error kinds returned by the services. Handlers map them to HTTP statuses
// by identity, so wrap them rather than replacing them.
var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidOrderType      = errors.New("order_type must be one of customer, cashier")

	ErrInvalidCoupon      = errors.New("invalid or inactive coupon code")
	ErrCouponNotStarted   = errors.New("coupon is not active yet")
	ErrCouponExpired      = errors.New("coupon has expired")
	ErrMinimumOrderNotMet = errors.New("minimum order amount not met")

	ErrInvalidDiscount   = errors.New("invalid discount")
	ErrDiscountCodeTaken = errors.New("discount code already exists")

	ErrCartNotFound     = errors.New("cart not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrReceiptNotFound  = errors.New("receipt not found")
	ErrDiscountNotFound = errors.New("discount not found")

	ErrExhaustedRetries = errors.New("could not generate a unique code")
)
