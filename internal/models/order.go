package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderTypeCustomer = "customer"
	OrderTypeCashier  = "cashier"

	PaymentMethodUnpaid = "unpaid"
)

type Order struct {
	ID               int64           `json:"id"`
	CustomerID       *int64          `json:"customer_id"`
	CashierID        *int64          `json:"cashier_id"`
	OrderType        string          `json:"order_type"`
	Products         LineItems       `json:"products"`
	Price            decimal.Decimal `json:"price"`
	Discount         decimal.Decimal `json:"discount"`
	DiscountCode     *string         `json:"discount_code"`
	Shipping         bool            `json:"shipping"`
	ShippingLocation *string         `json:"shipping_location"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	ReceiptID        *int64          `json:"receipt_id"`
	CreatedAt        time.Time       `json:"created_at"`
}

type Receipt struct {
	ID            int64           `json:"id"`
	OrderID       int64           `json:"order_id"`
	PaymentMethod string          `json:"payment_method"`
	PricePaid     decimal.Decimal `json:"price_paid"`
	CreatedAt     time.Time       `json:"created_at"`
}

type OrderWithReceipt struct {
	Order   Order   `json:"order"`
	Receipt Receipt `json:"receipt"`
}

// NewOrder is a finalized order ready to persist. Discount and TotalPrice are
// already computed by the checkout flow.
type NewOrder struct {
	CustomerID       *int64
	CashierID        *int64
	OrderType        string
	Products         LineItems
	Price            decimal.Decimal
	Discount         decimal.Decimal
	DiscountCode     *string
	DiscountID       *int64
	Shipping         bool
	ShippingLocation *string
	TotalPrice       decimal.Decimal
	PaymentMethod    string
	PricePaid        decimal.Decimal
}
