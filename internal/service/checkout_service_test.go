package service

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

func newTestCheckout(ds ...*models.Discount) (*CheckoutService, *fakeOrderWriter) {
	w := &fakeOrderWriter{}
	return NewCheckoutService(newTestCouponService(ds...), w, nil), w
}

func save10() *models.Discount {
	return &models.Discount{Code: "SAVE10", Type: models.DiscountTypePercentage, Value: dec("10"), IsActive: true}
}

func TestCheckoutReplacesClientDiscount(t *testing.T) {
	s, w := newTestCheckout(save10())

	out, err := s.Checkout(context.Background(), models.CheckoutRequest{
		Products:     models.LineItems{"1": 2},
		Price:        decPtr("100"),
		Discount:     decPtr("999"),
		DiscountCode: strPtr("SAVE10"),
		TotalPrice:   decPtr("-899"),
		OrderType:    models.OrderTypeCustomer,
	})
	if err != nil {
		t.Fatal(err)
	}

	got := w.got[0]
	if !got.Discount.Equal(dec("10")) {
		t.Fatalf("discount = %s, want 10", got.Discount)
	}
	if !got.TotalPrice.Equal(dec("90")) {
		t.Fatalf("total = %s, want 90", got.TotalPrice)
	}
	if got.DiscountID == nil || *got.DiscountID != 1 {
		t.Fatalf("discount id = %v, want 1", got.DiscountID)
	}
	if got.DiscountCode == nil || *got.DiscountCode != "SAVE10" {
		t.Fatalf("discount code = %v", got.DiscountCode)
	}
	if out.Receipt.OrderID != out.Order.ID || *out.Order.ReceiptID != out.Receipt.ID {
		t.Fatalf("order and receipt not linked: %+v", out)
	}
}

func TestCheckoutAmountsAreCentExact(t *testing.T) {
	save15 := &models.Discount{Code: "SAVE15", Type: models.DiscountTypePercentage, Value: dec("15"), IsActive: true}

	tests := []struct {
		name      string
		req       models.CheckoutRequest
		wantPrice string
		wantDisc  string
		wantTotal string
	}{
		{
			name:      "half cent coupon discount",
			req:       models.CheckoutRequest{Price: decPtr("12.35"), DiscountCode: strPtr("SAVE10"), TotalPrice: decPtr("11.115")},
			wantPrice: "12.35", wantDisc: "1.24", wantTotal: "11.11",
		},
		{
			name:      "coupon discount rounds to whole amount",
			req:       models.CheckoutRequest{Price: decPtr("33.33"), DiscountCode: strPtr("SAVE15"), TotalPrice: decPtr("28.33")},
			wantPrice: "33.33", wantDisc: "5", wantTotal: "28.33",
		},
		{
			name:      "client discount with sub-cent digits",
			req:       models.CheckoutRequest{Price: decPtr("10"), Discount: decPtr("1.005"), TotalPrice: decPtr("8.995")},
			wantPrice: "10", wantDisc: "1.01", wantTotal: "8.99",
		},
		{
			name:      "price derived from sub-cent total",
			req:       models.CheckoutRequest{Discount: decPtr("0.5"), TotalPrice: decPtr("9.994")},
			wantPrice: "10.49", wantDisc: "0.5", wantTotal: "9.99",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, w := newTestCheckout(save10(), save15)
			req := tt.req
			req.Products = models.LineItems{"1": 1}
			req.OrderType = models.OrderTypeCustomer

			out, err := s.Checkout(context.Background(), req)
			if err != nil {
				t.Fatal(err)
			}
			got := w.got[0]
			if !got.Price.Equal(dec(tt.wantPrice)) || !got.Discount.Equal(dec(tt.wantDisc)) || !got.TotalPrice.Equal(dec(tt.wantTotal)) {
				t.Fatalf("price/discount/total = %s/%s/%s, want %s/%s/%s",
					got.Price, got.Discount, got.TotalPrice, tt.wantPrice, tt.wantDisc, tt.wantTotal)
			}
			for _, amt := range []string{got.Price.String(), got.Discount.String(), got.TotalPrice.String()} {
				a := dec(amt)
				if !a.Equal(a.Round(2)) {
					t.Fatalf("amount %s would be rounded by a NUMERIC(12,2) column", amt)
				}
			}
			if !got.TotalPrice.Equal(got.Price.Sub(got.Discount)) {
				t.Fatalf("total %s != price %s - discount %s", got.TotalPrice, got.Price, got.Discount)
			}
			if !out.Order.Discount.Equal(got.Discount) {
				t.Fatalf("response discount %s differs from written %s", out.Order.Discount, got.Discount)
			}
		})
	}
}

func TestCheckoutWithoutCodeKeepsClientDiscount(t *testing.T) {
	tests := []struct {
		name      string
		req       models.CheckoutRequest
		wantPrice string
		wantDisc  string
		wantTotal string
	}{
		{
			name:      "price and discount given",
			req:       models.CheckoutRequest{Price: decPtr("50"), Discount: decPtr("5"), TotalPrice: decPtr("45")},
			wantPrice: "50", wantDisc: "5", wantTotal: "45",
		},
		{
			name:      "price defaults to total plus discount",
			req:       models.CheckoutRequest{Discount: decPtr("5"), TotalPrice: decPtr("45")},
			wantPrice: "50", wantDisc: "5", wantTotal: "45",
		},
		{
			name:      "discount defaults to zero",
			req:       models.CheckoutRequest{TotalPrice: decPtr("45")},
			wantPrice: "45", wantDisc: "0", wantTotal: "45",
		},
		{
			name:      "client total is recomputed",
			req:       models.CheckoutRequest{Price: decPtr("50"), Discount: decPtr("5"), TotalPrice: decPtr("1")},
			wantPrice: "50", wantDisc: "5", wantTotal: "45",
		},
		{
			name:      "blank code is ignored",
			req:       models.CheckoutRequest{Price: decPtr("50"), Discount: decPtr("5"), TotalPrice: decPtr("45"), DiscountCode: strPtr("  ")},
			wantPrice: "50", wantDisc: "5", wantTotal: "45",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, w := newTestCheckout(save10())
			req := tt.req
			req.Products = models.LineItems{"1": 1}
			req.OrderType = models.OrderTypeCustomer

			if _, err := s.Checkout(context.Background(), req); err != nil {
				t.Fatal(err)
			}
			got := w.got[0]
			if !got.Price.Equal(dec(tt.wantPrice)) || !got.Discount.Equal(dec(tt.wantDisc)) || !got.TotalPrice.Equal(dec(tt.wantTotal)) {
				t.Fatalf("price/discount/total = %s/%s/%s, want %s/%s/%s",
					got.Price, got.Discount, got.TotalPrice, tt.wantPrice, tt.wantDisc, tt.wantTotal)
			}
			if got.DiscountID != nil || got.DiscountCode != nil {
				t.Fatalf("no coupon expected, got id=%v code=%v", got.DiscountID, got.DiscountCode)
			}
		})
	}
}

func TestCheckoutRejectsBeforeWriting(t *testing.T) {
	expired := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	old := &models.Discount{Code: "OLD", Type: models.DiscountTypeFixed, Value: dec("5"), IsActive: true, EndDate: &expired}
	minOrder := &models.Discount{Code: "MIN100", Type: models.DiscountTypeFixed, Value: dec("5"), IsActive: true, MinimumOrderAmount: nullDec("100")}

	valid := func() models.CheckoutRequest {
		return models.CheckoutRequest{
			Products:   models.LineItems{"1": 1},
			TotalPrice: decPtr("50"),
			OrderType:  models.OrderTypeCustomer,
		}
	}

	tests := []struct {
		name   string
		mutate func(*models.CheckoutRequest)
		want   error
	}{
		{"missing products", func(r *models.CheckoutRequest) { r.Products = nil }, ErrMissingRequiredFields},
		{"missing total", func(r *models.CheckoutRequest) { r.TotalPrice = nil }, ErrMissingRequiredFields},
		{"missing order type", func(r *models.CheckoutRequest) { r.OrderType = "" }, ErrMissingRequiredFields},
		{"bad order type", func(r *models.CheckoutRequest) { r.OrderType = "guest" }, ErrInvalidOrderType},
		{"unknown coupon", func(r *models.CheckoutRequest) { r.DiscountCode = strPtr("NOPE") }, ErrInvalidCoupon},
		{"expired coupon", func(r *models.CheckoutRequest) { r.DiscountCode = strPtr("OLD") }, ErrCouponExpired},
		{"minimum not met", func(r *models.CheckoutRequest) { r.DiscountCode = strPtr("MIN100") }, ErrMinimumOrderNotMet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, w := newTestCheckout(old, minOrder)
			req := valid()
			tt.mutate(&req)

			_, err := s.Checkout(context.Background(), req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if len(w.got) != 0 {
				t.Fatalf("order written despite rejection: %+v", w.got)
			}
		})
	}
}

func TestCheckoutCashierID(t *testing.T) {
	cashier := int64(7)
	customer := int64(3)

	for _, orderType := range []string{models.OrderTypeCustomer, models.OrderTypeCashier} {
		t.Run(orderType, func(t *testing.T) {
			s, w := newTestCheckout()
			_, err := s.Checkout(context.Background(), models.CheckoutRequest{
				Products:   models.LineItems{"1": 1},
				TotalPrice: decPtr("10"),
				OrderType:  orderType,
				CustomerID: &customer,
				CashierID:  &cashier,
			})
			if err != nil {
				t.Fatal(err)
			}
			got := w.got[0]
			if orderType == models.OrderTypeCashier && (got.CashierID == nil || *got.CashierID != 7) {
				t.Fatalf("cashier order lost cashier_id: %v", got.CashierID)
			}
			if orderType == models.OrderTypeCustomer && got.CashierID != nil {
				t.Fatalf("customer order kept cashier_id: %v", *got.CashierID)
			}
			if got.CustomerID == nil || *got.CustomerID != 3 {
				t.Fatalf("customer_id = %v", got.CustomerID)
			}
		})
	}
}

func TestCheckoutReceiptDefaults(t *testing.T) {
	s, w := newTestCheckout()
	out, err := s.Checkout(context.Background(), models.CheckoutRequest{
		Products:   models.LineItems{"1": 1},
		TotalPrice: decPtr("10"),
		OrderType:  models.OrderTypeCustomer,
	})
	if err != nil {
		t.Fatal(err)
	}
	if w.got[0].PaymentMethod != models.PaymentMethodUnpaid || !w.got[0].PricePaid.IsZero() {
		t.Fatalf("payment defaults = %q, %s", w.got[0].PaymentMethod, w.got[0].PricePaid)
	}
	if out.Receipt.PaymentMethod != models.PaymentMethodUnpaid {
		t.Fatalf("receipt payment method = %q", out.Receipt.PaymentMethod)
	}

	_, err = s.Checkout(context.Background(), models.CheckoutRequest{
		Products:      models.LineItems{"1": 1},
		TotalPrice:    decPtr("10"),
		OrderType:     models.OrderTypeCashier,
		PaymentMethod: strPtr("cash"),
		PricePaid:     decPtr("10"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if w.got[1].PaymentMethod != "cash" || !w.got[1].PricePaid.Equal(dec("10")) {
		t.Fatalf("payment = %q, %s", w.got[1].PaymentMethod, w.got[1].PricePaid)
	}
}

func TestCheckoutPersistError(t *testing.T) {
	s, w := newTestCheckout()
	w.err = errors.New("tx aborted")

	_, err := s.Checkout(context.Background(), models.CheckoutRequest{
		Products:   models.LineItems{"1": 1},
		TotalPrice: decPtr("10"),
		OrderType:  models.OrderTypeCustomer,
	})
	if err == nil || err.Error() != "tx aborted" {
		t.Fatalf("err = %v", err)
	}
}

func TestCheckoutValidateCouponRequiresCode(t *testing.T) {
	s, _ := newTestCheckout(save10())

	if _, err := s.ValidateCoupon(context.Background(), "", nil, decPtr("10")); !errors.Is(err, ErrMissingRequiredFields) {
		t.Fatalf("err = %v", err)
	}
	got, err := s.ValidateCoupon(context.Background(), "SAVE10", models.LineItems{"1": 1}, decPtr("80"))
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(dec("8")) {
		t.Fatalf("discount = %s, want 8", got)
	}
}
