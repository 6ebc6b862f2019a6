package order

import (
	"context"
	"time"

	"github.com/xenking/checkout-engine/internal/domain/pricing"
)

// PaymentMethod identifies how the customer settled the order. The engine
// records the method; capture happens in the external payment layer.
type PaymentMethod string

const (
	PaymentCard           PaymentMethod = "card"
	PaymentPayPal         PaymentMethod = "paypal"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
)

// ShippingInfo is the delivery address captured at checkout.
type ShippingInfo struct {
	Name       string
	Address    string
	City       string
	PostalCode string
	Phone      string
}

// Order is the immutable record of a successful checkout: the cart snapshot,
// the pricing breakdown, and the order metadata frozen at placement time.
// It is created exactly once and never mutated afterwards.
type Order struct {
	ID            string
	CreatedAt     time.Time
	ShippingInfo  ShippingInfo
	PaymentMethod PaymentMethod
	Items         pricing.Cart
	CouponCode    string
	Breakdown     pricing.Breakdown
}

// Repository defines the append-only persistence for completed orders.
type Repository interface {
	Create(ctx context.Context, order *Order) error
}
