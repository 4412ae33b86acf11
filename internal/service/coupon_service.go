package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/storefront-service/internal/metrics"
	"github.com/Cheertaboi/storefront-service/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Amounts are stored as NUMERIC(12,2).
const centPlaces = 2

// DiscountFinder resolves a code to its active discount row. (nil, nil) means
// the code is unknown or inactive.
type DiscountFinder interface {
	FindActiveByCode(ctx context.Context, code string) (*models.Discount, error)
}

type CouponService struct {
	discounts DiscountFinder
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewCouponService(discounts DiscountFinder, m *metrics.Metrics) *CouponService {
	return &CouponService{
		discounts: discounts,
		metrics:   m,
		now:       time.Now,
	}
}

// ValidateCoupon returns the discount amount code grants on subtotal. A nil
// subtotal means the order total is not known yet.
func (s *CouponService) ValidateCoupon(ctx context.Context, code string, items models.LineItems, subtotal *decimal.Decimal) (decimal.Decimal, error) {
	_, amount, err := s.Apply(ctx, code, items, subtotal)
	return amount, err
}

// Apply is ValidateCoupon that also hands back the matched discount row.
// It reads only; nothing is recorded.
//
// items is accepted for scope checks but applies_to is not enforced, so a
// coupon applies storewide.
func (s *CouponService) Apply(ctx context.Context, code string, items models.LineItems, subtotal *decimal.Decimal) (*models.Discount, decimal.Decimal, error) {
	d, err := s.discounts.FindActiveByCode(ctx, code)
	if err != nil {
		s.metrics.CouponValidated("error")
		return nil, decimal.Zero, err
	}

	if err := s.check(d, subtotal); err != nil {
		s.metrics.CouponValidated(resultLabel(err))
		zerolog.Ctx(ctx).Debug().Str("coupon", code).Err(err).Msg("coupon rejected")
		return nil, decimal.Zero, err
	}

	s.metrics.CouponValidated("ok")
	return d, DiscountAmount(d, subtotal), nil
}

func (s *CouponService) check(d *models.Discount, subtotal *decimal.Decimal) error {
	if d == nil {
		return ErrInvalidCoupon
	}

	now := s.now()
	if d.StartDate != nil && now.Before(*d.StartDate) {
		return ErrCouponNotStarted
	}
	if d.EndDate != nil && now.After(*d.EndDate) {
		return ErrCouponExpired
	}
	if d.MinimumOrderAmount.Valid && subtotal != nil && subtotal.LessThan(d.MinimumOrderAmount.Decimal) {
		return errors.WithMessagef(ErrMinimumOrderNotMet, "minimum order amount is %s", d.MinimumOrderAmount.Decimal.StringFixed(2))
	}
	return nil
}

// DiscountAmount computes what d takes off subtotal: a percentage of the
// subtotal or a fixed value, rounded half away from zero to the cent and
// capped by the maximum discount amount when one is set. Unknown types yield
// zero.
func DiscountAmount(d *models.Discount, subtotal *decimal.Decimal) decimal.Decimal {
	var amount decimal.Decimal
	switch d.Type {
	case models.DiscountTypePercentage:
		if subtotal != nil {
			amount = subtotal.Mul(d.Value).Div(hundred)
		}
	case models.DiscountTypeFixed:
		amount = d.Value
	default:
		return decimal.Zero
	}
	amount = amount.Round(centPlaces)

	if d.MaximumDiscountAmount.Valid && amount.GreaterThan(d.MaximumDiscountAmount.Decimal) {
		amount = d.MaximumDiscountAmount.Decimal
	}
	return amount
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCoupon):
		return "invalid"
	case errors.Is(err, ErrCouponNotStarted):
		return "not_started"
	case errors.Is(err, ErrCouponExpired):
		return "expired"
	case errors.Is(err, ErrMinimumOrderNotMet):
		return "minimum_not_met"
	default:
		return "error"
	}
}
