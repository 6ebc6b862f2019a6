package order

import (
	"context"
	"fmt"

	"github.com/xenking/checkout-engine/internal/domain/coupon"
	"github.com/xenking/checkout-engine/internal/domain/pricing"
)

// ErrEmptyItems is returned when a checkout is attempted with no line items.
var ErrEmptyItems = fmt.Errorf("items required")

// QuoteRequest asks for a pricing preview of a cart with an optional coupon.
type QuoteRequest struct {
	Items      pricing.Cart
	CouponCode string
}

// Quote is a pricing preview: the breakdown plus the coupon that was
// actually applied (nil when the code was empty). Quotes are cheap,
// side-effect-free, and recomputed on every cart or coupon change.
type Quote struct {
	Breakdown pricing.Breakdown
	Applied   *coupon.AppliedCoupon
}

// CheckoutRequest holds the input for placing an order.
type CheckoutRequest struct {
	Items         pricing.Cart
	CouponCode    string
	ShippingInfo  ShippingInfo
	PaymentMethod PaymentMethod
}

// Service orchestrates the pricing pipeline: coupon resolution, aggregation,
// and order assembly. Quote runs the read-only half; Checkout runs the whole
// pipeline once and persists the result.
type Service struct {
	coupons   coupon.Resolver
	orders    Repository
	assembler *Assembler
}

// NewService creates a Service with the required domain dependencies.
func NewService(coupons coupon.Resolver, orders Repository, assembler *Assembler) *Service {
	return &Service{
		coupons:   coupons,
		orders:    orders,
		assembler: assembler,
	}
}

// Quote validates the cart, resolves the coupon, and prices the order
// without persisting anything. Coupon rejections are returned as-is so the
// caller can surface the reason.
func (s *Service) Quote(req QuoteRequest) (*Quote, error) {
	if err := pricing.ValidateCart(req.Items); err != nil {
		return nil, err
	}

	applied, err := s.coupons.Resolve(req.CouponCode, pricing.Subtotal(req.Items))
	if err != nil {
		return nil, err
	}

	return &Quote{
		Breakdown: pricing.PriceOrder(req.Items, applied),
		Applied:   applied,
	}, nil
}

// Checkout prices the cart and freezes the result into a persisted order.
// It must be called once per checkout; deduplicating repeated submissions is
// the caller's job.
func (s *Service) Checkout(ctx context.Context, req CheckoutRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}

	quote, err := s.Quote(QuoteRequest{Items: req.Items, CouponCode: req.CouponCode})
	if err != nil {
		return nil, err
	}

	couponCode := ""
	if quote.Applied != nil {
		couponCode = quote.Applied.Code
	}

	o := s.assembler.Assemble(req.Items, req.ShippingInfo, req.PaymentMethod, couponCode, quote.Breakdown)
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return o, nil
}
