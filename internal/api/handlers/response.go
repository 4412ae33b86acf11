package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/Cheertaboi/storefront-service/internal/service"
)

var errBadRequestBody = errors.New("invalid request body")
var errBadID = errors.New("invalid id")

// errorStatus is the one place an error kind gets its HTTP status, used by
// every endpoint. Anything unlisted is a 500.
var errorStatus = []struct {
	kind   error
	status int
}{
	{errBadRequestBody, http.StatusBadRequest},
	{errBadID, http.StatusBadRequest},
	{service.ErrMissingRequiredFields, http.StatusBadRequest},
	{service.ErrInvalidOrderType, http.StatusBadRequest},
	{service.ErrInvalidDiscount, http.StatusBadRequest},
	{service.ErrInvalidCoupon, http.StatusBadRequest},
	{service.ErrCouponNotStarted, http.StatusBadRequest},
	{service.ErrCouponExpired, http.StatusBadRequest},
	{service.ErrMinimumOrderNotMet, http.StatusBadRequest},
	{service.ErrDiscountCodeTaken, http.StatusConflict},
	{service.ErrCartNotFound, http.StatusNotFound},
	{service.ErrOrderNotFound, http.StatusNotFound},
	{service.ErrReceiptNotFound, http.StatusNotFound},
	{service.ErrDiscountNotFound, http.StatusNotFound},
}

func statusFor(err error) int {
	for _, e := range errorStatus {
		if errors.Is(err, e.kind) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
	}
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.WithMessage(errBadRequestBody, err.Error())
	}
	return nil
}

func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errBadID
	}
	return id, nil
}
