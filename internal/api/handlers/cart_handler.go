package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Cheertaboi/storefront-service/internal/models"
	"github.com/Cheertaboi/storefront-service/internal/service"
)

type CartHandler struct {
	carts *service.CartService
}

func NewCartHandler(carts *service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// Create handles POST /api/carts
func (h *CartHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCartRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	cart, err := h.carts.Create(r.Context(), req.UserID, req.Products)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, cart)
}

func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	carts, err := h.carts.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, carts)
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	cart, err := h.carts.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.GetByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req models.UpdateCartRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	cart, err := h.carts.Update(r.Context(), id, req.Products)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	removed, err := h.carts.Delete(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !removed {
		writeError(w, r, service.ErrCartNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "cart deleted"})
}
