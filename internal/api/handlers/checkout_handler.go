package handlers

import (
	"net/http"

	"github.com/Cheertaboi/storefront-service/internal/models"
	"github.com/Cheertaboi/storefront-service/internal/service"
)

type CheckoutHandler struct {
	checkout *service.CheckoutService
}

func NewCheckoutHandler(checkout *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// Checkout handles POST /api/products/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req models.CheckoutRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	out, err := h.checkout.Checkout(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

// ValidateCoupon handles POST /api/products/validate-coupon
func (h *CheckoutHandler) ValidateCoupon(w http.ResponseWriter, r *http.Request) {
	var req models.ValidateCouponRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	discount, err := h.checkout.ValidateCoupon(r.Context(), req.Coupon, req.Products, req.Price)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.ValidateCouponResponse{Discount: discount})
}
