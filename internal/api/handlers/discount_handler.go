package handlers

import (
	"net/http"
	"strconv"

	"github.com/Cheertaboi/storefront-service/internal/auth"
	"github.com/Cheertaboi/storefront-service/internal/models"
	"github.com/Cheertaboi/storefront-service/internal/service"
)

type DiscountHandler struct {
	discounts *service.DiscountService
}

func NewDiscountHandler(discounts *service.DiscountService) *DiscountHandler {
	return &DiscountHandler{discounts: discounts}
}

// Create handles POST /api/discounts. The creator is the authenticated user.
func (h *DiscountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.DiscountInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	var createdBy *int64
	if c := auth.FromContext(r.Context()); c != nil {
		createdBy = &c.UserID
	}

	d, err := h.discounts.Create(r.Context(), in, createdBy)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (h *DiscountHandler) List(w http.ResponseWriter, r *http.Request) {
	discounts, err := h.discounts.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, discounts)
}

func (h *DiscountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	d, err := h.discounts.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *DiscountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in models.DiscountInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	d, err := h.discounts.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *DiscountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.discounts.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "discount deleted"})
}

// Usage handles GET /api/discounts/{id}/usage?user_id=
func (h *DiscountHandler) Usage(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var userID *int64
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		uid, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, r, errBadID)
			return
		}
		userID = &uid
	}

	usage, err := h.discounts.Usage(r.Context(), id, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, usage)
}
