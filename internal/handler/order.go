package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/go-faster/jx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// handleCheckout places an order: it prices the cart one final time,
// freezes the result into an order record, and persists it. The caller is
// expected to submit once per checkout click.
func (h *Handler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading request body")
		return
	}

	req, err := decodeCheckoutRequest(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.service.Checkout(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.metrics.countOrder(r.Context(), string(o.PaymentMethod))
	trace.SpanFromContext(r.Context()).SetAttributes(
		attribute.String("order.id", o.ID),
		attribute.String("order.total", o.Breakdown.Total.StringFixed(2)),
	)

	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("id")
	e.Str(o.ID)
	e.FieldStart("createdAt")
	e.Str(o.CreatedAt.Format(time.RFC3339))
	e.FieldStart("paymentMethod")
	e.Str(string(o.PaymentMethod))
	if o.CouponCode != "" {
		e.FieldStart("couponCode")
		e.Str(o.CouponCode)
	}
	encodeBreakdownFields(&e, o.Breakdown)
	e.FieldStart("items")
	encodeCart(&e, o.Items)
	e.ObjEnd()

	writeJSON(w, http.StatusCreated, &e)
}
