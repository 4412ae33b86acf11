package models

import "github.com/shopspring/decimal"

// CheckoutRequest is the body of POST /api/products/checkout. Pointer fields
// distinguish "absent" from zero.
type CheckoutRequest struct {
	Products         LineItems        `json:"products"`
	Price            *decimal.Decimal `json:"price"`
	Discount         *decimal.Decimal `json:"discount"`
	DiscountCode     *string          `json:"discount_code"`
	TotalPrice       *decimal.Decimal `json:"total_price"`
	OrderType        string           `json:"order_type"`
	CustomerID       *int64           `json:"customer_id"`
	CashierID        *int64           `json:"cashier_id"`
	Shipping         bool             `json:"shipping"`
	ShippingLocation *string          `json:"shipping_location"`
	PaymentMethod    *string          `json:"payment_method"`
	PricePaid        *decimal.Decimal `json:"price_paid"`
}

type ValidateCouponRequest struct {
	Coupon   string           `json:"coupon"`
	Products LineItems        `json:"products"`
	Price    *decimal.Decimal `json:"price"`
}

type ValidateCouponResponse struct {
	Discount decimal.Decimal `json:"discount"`
}

type UpdateShippingRequest struct {
	Shipping         *bool   `json:"shipping"`
	ShippingLocation *string `json:"shipping_location"`
}

type UpdateReceiptRequest struct {
	PaymentMethod *string          `json:"payment_method"`
	PricePaid     *decimal.Decimal `json:"price_paid"`
}
