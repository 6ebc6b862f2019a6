package handler

import (
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/checkout-engine/internal/domain/coupon"
	"github.com/xenking/checkout-engine/internal/domain/order"
	"github.com/xenking/checkout-engine/internal/domain/pricing"
)

// handleQuote prices a cart with an optional coupon and returns the
// breakdown. It is side-effect-free and safe to call on every cart change.
func (h *Handler) handleQuote(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading request body")
		return
	}

	req, err := decodeQuoteRequest(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	quote, err := h.service.Quote(req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.metrics.countQuote(r.Context(), quote.Applied != nil)

	var e jx.Encoder
	e.ObjStart()
	encodeBreakdownFields(&e, quote.Breakdown)
	if quote.Applied != nil {
		e.FieldStart("appliedCoupon")
		e.ObjStart()
		e.FieldStart("code")
		e.Str(quote.Applied.Code)
		e.FieldStart("kind")
		e.Str(string(quote.Applied.Rule.Kind))
		if quote.Applied.Rule.Description != "" {
			e.FieldStart("description")
			e.Str(quote.Applied.Rule.Description)
		}
		e.ObjEnd()
	}
	e.ObjEnd()

	writeJSON(w, http.StatusOK, &e)
}

// writeServiceError maps domain errors to HTTP responses. Coupon rejections
// and cart validation failures are client errors; anything else is logged
// and reported as a 500.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, order.ErrEmptyItems):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, coupon.ErrUnknownCode):
		h.metrics.countRejection(r.Context(), "unknown_code")
		writeError(w, http.StatusUnprocessableEntity, "unknown coupon code")
	case errors.Is(err, coupon.ErrCouponExpired):
		h.metrics.countRejection(r.Context(), "expired")
		writeError(w, http.StatusUnprocessableEntity, "coupon expired")
	default:
		var belowMin *coupon.BelowMinimumError
		if errors.As(err, &belowMin) {
			h.metrics.countRejection(r.Context(), "below_minimum")
			writeError(w, http.StatusUnprocessableEntity, belowMin.Error())
			return
		}
		var invalidItem *pricing.InvalidLineItemError
		if errors.As(err, &invalidItem) {
			writeError(w, http.StatusUnprocessableEntity, invalidItem.Error())
			return
		}
		zctx.From(r.Context()).Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
