package coupon

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Kind enumerates the supported coupon discount rules.
type Kind string

const (
	// KindPercentage takes a percentage off the cart subtotal.
	KindPercentage Kind = "percentage"
	// KindFixed subtracts a fixed amount from the cart subtotal.
	KindFixed Kind = "fixed"
	// KindFreeShipping waives the flat shipping charge.
	KindFreeShipping Kind = "free_shipping"
	// KindFirstPurchase takes a percentage off, intended for first orders.
	KindFirstPurchase Kind = "first_purchase"
	// KindCategory takes a percentage off items in a single category.
	KindCategory Kind = "category"
	// KindSeasonal takes a percentage off until the rule's expiry.
	KindSeasonal Kind = "seasonal"
	// KindMinimumPurchase takes a percentage off once the subtotal reaches
	// the rule's minimum amount.
	KindMinimumPurchase Kind = "minimum_purchase"
)

var (
	// ErrUnknownCode is returned when a coupon code is not in the catalog.
	// Matching is case-sensitive against the catalog's uppercase keys.
	ErrUnknownCode = errors.New("unknown coupon code")
	// ErrCouponExpired is returned when a seasonal coupon is resolved after
	// its expiry.
	ErrCouponExpired = errors.New("coupon expired")
)

// BelowMinimumError indicates a minimum_purchase coupon resolved against a
// cart whose subtotal does not reach the rule's minimum amount.
type BelowMinimumError struct {
	Code      string
	MinAmount decimal.Decimal
	Subtotal  decimal.Decimal
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("coupon %s requires a minimum purchase of %s, cart subtotal is %s",
		e.Code, e.MinAmount, e.Subtotal)
}

// Rule defines a coupon's discount behaviour. Rules are immutable once
// loaded into a catalog.
//
// Value is a percentage (0..100) for every kind except fixed, where it is a
// monetary amount, and free_shipping, where it is ignored. Category is set
// only for category rules, MinAmount only for minimum_purchase, Expiry only
// for seasonal.
type Rule struct {
	Code        string
	Kind        Kind
	Value       decimal.Decimal
	Category    string
	MinAmount   decimal.Decimal
	Expiry      *time.Time
	Description string
}

// AppliedCoupon is the coupon currently selected for an order. At most one
// coupon is applied at a time; applying a new code replaces the old one.
type AppliedCoupon struct {
	Code string
	Rule Rule
}

// Source supplies the raw catalog entries at startup, typically from a
// database or an embedded seed file.
type Source interface {
	LoadRules(ctx context.Context) ([]Rule, error)
}
