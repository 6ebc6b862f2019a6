package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/xenking/checkout-engine/internal/domain/pricing"
)

// Assembler freezes a priced checkout into an Order. ID generation and the
// clock are injectable for deterministic tests; the defaults are random
// UUIDv4 ids and time.Now.
//
// Assemble is one-shot per checkout: the caller is responsible for not
// invoking it twice for the same checkout click, the assembler itself does
// not deduplicate.
type Assembler struct {
	newID func() string
	now   func() time.Time
}

// NewAssembler creates an Assembler with UUID ids and the wall clock.
func NewAssembler() *Assembler {
	return &Assembler{
		newID: func() string { return uuid.New().String() },
		now:   time.Now,
	}
}

// Assemble snapshots the cart, shipping details, payment method, and pricing
// breakdown into an immutable Order with a fresh id and timestamp. The cart
// is copied so later mutations of the caller's slice cannot leak into the
// persisted record.
func (a *Assembler) Assemble(
	cart pricing.Cart,
	shipping ShippingInfo,
	payment PaymentMethod,
	couponCode string,
	breakdown pricing.Breakdown,
) *Order {
	snapshot := make(pricing.Cart, len(cart))
	copy(snapshot, cart)

	return &Order{
		ID:            a.newID(),
		CreatedAt:     a.now().UTC(),
		ShippingInfo:  shipping,
		PaymentMethod: payment,
		Items:         snapshot,
		CouponCode:    couponCode,
		Breakdown:     breakdown,
	}
}
