// Package handler exposes the pricing engine over HTTP. Request and response
// bodies are encoded with go-faster/jx; errors follow a flat
// {"code": ..., "message": ...} shape.
package handler

import (
	"net/http"

	"go.opentelemetry.io/otel/metric"

	"github.com/xenking/checkout-engine/internal/domain/auth"
	"github.com/xenking/checkout-engine/internal/domain/order"
)

// Config holds non-dependency configuration for the Handler.
type Config struct {
	// APIKeyPepper is the HMAC key used to hash client API keys before the
	// repository lookup.
	APIKeyPepper string
}

// Handler serves the quote and checkout endpoints, delegating business logic
// to the order service.
type Handler struct {
	service *order.Service
	apikeys auth.Repository
	pepper  []byte
	metrics *metrics
}

// New constructs a Handler with the required dependencies.
func New(cfg Config, service *order.Service, apikeys auth.Repository, mp metric.MeterProvider) *Handler {
	return &Handler{
		service: service,
		apikeys: apikeys,
		pepper:  []byte(cfg.APIKeyPepper),
		metrics: newMetrics(mp),
	}
}

// Routes returns the route table. Quotes are open: they are hit on every
// cart mutation and coupon keystroke. Checkout is API-key protected.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/quote", h.handleQuote)
	mux.Handle("POST /api/orders", h.requireAPIKey(http.HandlerFunc(h.handleCheckout)))
	return mux
}
