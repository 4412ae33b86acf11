package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/storefront-service/internal/metrics"
	"github.com/Cheertaboi/storefront-service/internal/models"
)

// OrderWriter persists an order and its receipt as one unit.
type OrderWriter interface {
	CreateWithReceipt(ctx context.Context, in models.NewOrder) (*models.OrderWithReceipt, error)
}

type CheckoutService struct {
	coupons *CouponService
	orders  OrderWriter
	metrics *metrics.Metrics
}

func NewCheckoutService(coupons *CouponService, orders OrderWriter, m *metrics.Metrics) *CheckoutService {
	return &CheckoutService{coupons: coupons, orders: orders, metrics: m}
}

// ValidateCoupon previews a coupon for the "apply coupon" box.
func (s *CheckoutService) ValidateCoupon(ctx context.Context, code string, items models.LineItems, price *decimal.Decimal) (decimal.Decimal, error) {
	if code == "" {
		return decimal.Zero, errors.WithMessage(ErrMissingRequiredFields, "coupon is required")
	}
	return s.coupons.ValidateCoupon(ctx, code, items, price)
}

// Checkout finalizes an order. A submitted discount code is validated again
// here and its amount replaces whatever discount the client sent. Amounts are
// rounded to the cent before the total is derived, so the stored total is
// always exactly price minus discount.
func (s *CheckoutService) Checkout(ctx context.Context, req models.CheckoutRequest) (*models.OrderWithReceipt, error) {
	log := zerolog.Ctx(ctx)

	in, err := s.prepare(ctx, req)
	if err != nil {
		s.metrics.CheckoutCompleted("rejected")
		return nil, err
	}

	out, err := s.orders.CreateWithReceipt(ctx, in)
	if err != nil {
		s.metrics.CheckoutCompleted("error")
		log.Error().Err(err).Msg("checkout persist failed")
		return nil, err
	}

	s.metrics.CheckoutCompleted("ok")
	log.Info().
		Int64("order_id", out.Order.ID).
		Int64("receipt_id", out.Receipt.ID).
		Str("total_price", out.Order.TotalPrice.String()).
		Str("discount", out.Order.Discount.String()).
		Msg("order created")
	return out, nil
}

func (s *CheckoutService) prepare(ctx context.Context, req models.CheckoutRequest) (models.NewOrder, error) {
	if req.Products == nil || req.TotalPrice == nil || req.OrderType == "" {
		return models.NewOrder{}, errors.WithMessage(ErrMissingRequiredFields, "products, total_price and order_type are required")
	}
	if req.OrderType != models.OrderTypeCustomer && req.OrderType != models.OrderTypeCashier {
		return models.NewOrder{}, ErrInvalidOrderType
	}

	discount := decimal.Zero
	if req.Discount != nil {
		discount = req.Discount.Round(centPlaces)
	}

	price := req.TotalPrice.Round(centPlaces).Add(discount)
	if req.Price != nil {
		price = req.Price.Round(centPlaces)
	}

	in := models.NewOrder{
		CustomerID:       req.CustomerID,
		OrderType:        req.OrderType,
		Products:         req.Products,
		Price:            price,
		Shipping:         req.Shipping,
		ShippingLocation: req.ShippingLocation,
		PaymentMethod:    models.PaymentMethodUnpaid,
		PricePaid:        decimal.Zero,
	}
	if req.OrderType == models.OrderTypeCashier {
		in.CashierID = req.CashierID
	}
	if req.PaymentMethod != nil && *req.PaymentMethod != "" {
		in.PaymentMethod = *req.PaymentMethod
	}
	if req.PricePaid != nil {
		in.PricePaid = req.PricePaid.Round(centPlaces)
	}

	if req.DiscountCode != nil && strings.TrimSpace(*req.DiscountCode) != "" {
		code := *req.DiscountCode
		d, amount, err := s.coupons.Apply(ctx, code, req.Products, &price)
		if err != nil {
			return models.NewOrder{}, err
		}
		if !amount.Equal(discount) {
			zerolog.Ctx(ctx).Warn().
				Str("coupon", code).
				Str("submitted", discount.String()).
				Str("computed", amount.String()).
				Msg("client discount differs from server, using server value")
		}
		discount = amount
		in.DiscountCode = &code
		in.DiscountID = &d.ID
	}

	in.Discount = discount
	in.TotalPrice = price.Sub(discount)
	return in, nil
}
