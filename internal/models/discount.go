package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"

	AppliesToAll        = "all"
	AppliesToProducts   = "products"
	AppliesToCategories = "categories"
)

type Discount struct {
	ID                    int64               `json:"id"`
	Code                  string              `json:"code"`
	Name                  string              `json:"name"`
	Description           string              `json:"description"`
	Type                  string              `json:"type"`
	Value                 decimal.Decimal     `json:"value"`
	MinimumOrderAmount    decimal.NullDecimal `json:"minimum_order_amount"`
	MaximumDiscountAmount decimal.NullDecimal `json:"maximum_discount_amount"`
	UsageLimit            *int                `json:"usage_limit"`
	UsageLimitPerUser     *int                `json:"usage_limit_per_user"`
	StartDate             *time.Time          `json:"start_date"`
	EndDate               *time.Time          `json:"end_date"`
	IsActive              bool                `json:"is_active"`
	AppliesTo             string              `json:"applies_to"`
	ApplicationID         *int64              `json:"application_id"`
	CreatedBy             *int64              `json:"created_by"`
	CreatedAt             time.Time           `json:"created_at"`
	UpdatedAt             time.Time           `json:"updated_at"`
}

// DiscountUsage is one redemption recorded alongside an order.
type DiscountUsage struct {
	DiscountID int64
	OrderID    int64
	UserID     *int64
	Amount     decimal.Decimal
}

// DiscountInput is the admin write payload for create and update.
type DiscountInput struct {
	Code                  string              `json:"code"`
	Name                  string              `json:"name"`
	Description           string              `json:"description"`
	Type                  string              `json:"type"`
	Value                 decimal.Decimal     `json:"value"`
	MinimumOrderAmount    decimal.NullDecimal `json:"minimum_order_amount"`
	MaximumDiscountAmount decimal.NullDecimal `json:"maximum_discount_amount"`
	UsageLimit            *int                `json:"usage_limit"`
	UsageLimitPerUser     *int                `json:"usage_limit_per_user"`
	StartDate             *time.Time          `json:"start_date"`
	EndDate               *time.Time          `json:"end_date"`
	IsActive              *bool               `json:"is_active"`
	AppliesTo             string              `json:"applies_to"`
	ApplicationID         *int64              `json:"application_id"`
}
