package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/xenking/checkout-engine/internal/domain/coupon"
)

// BaseShippingCost is the flat shipping charge applied to every order,
// independent of cart size or weight. Compatibility with the historical
// checkout depends on this exact value; do not derive it from config.
var BaseShippingCost = decimal.NewFromInt(5)

// Breakdown is the itemized result of pricing a cart. All fields are rounded
// to 2 decimal places at construction; it is derived state and never
// persisted on its own.
type Breakdown struct {
	Subtotal       decimal.Decimal
	ShippingCost   decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
}

// PriceOrder combines the cart, the flat shipping policy, and an optional
// resolved coupon into a final breakdown. It is total over its domain: any
// cart and any resolved-or-absent coupon produce a breakdown, never an error.
//
// The free_shipping case keeps a quirk of the historical engine: the
// displayed discount equals the flat shipping constant even though shipping
// is simultaneously zeroed. That discount line is display-only; it is never
// subtracted from the subtotal, so the total nets out to the same figure as
// simply not charging shipping.
func PriceOrder(cart Cart, applied *coupon.AppliedCoupon) Breakdown {
	subtotal := Subtotal(cart)

	shipping := BaseShippingCost
	freeShipping := applied != nil && applied.Rule.Kind == coupon.KindFreeShipping
	if freeShipping {
		shipping = decimal.Zero
	}

	discount := discountAmount(cart, subtotal, applied)

	deduction := discount
	if freeShipping {
		deduction = decimal.Zero
	}

	// Discount can never push the total below the shipping floor.
	afterDiscount := subtotal.Sub(deduction)
	if afterDiscount.IsNegative() {
		afterDiscount = decimal.Zero
	}

	return Breakdown{
		Subtotal:       subtotal.Round(2),
		ShippingCost:   shipping.Round(2),
		DiscountAmount: discount.Round(2),
		Total:          afterDiscount.Add(shipping).Round(2),
	}
}

func discountAmount(cart Cart, subtotal decimal.Decimal, applied *coupon.AppliedCoupon) decimal.Decimal {
	if applied == nil {
		return decimal.Zero
	}

	rule := applied.Rule
	switch rule.Kind {
	case coupon.KindPercentage, coupon.KindFirstPurchase, coupon.KindSeasonal, coupon.KindMinimumPurchase:
		return subtotal.Mul(rule.Value).Div(hundred)
	case coupon.KindFixed:
		return rule.Value
	case coupon.KindFreeShipping:
		return BaseShippingCost
	case coupon.KindCategory:
		return categorySubtotal(cart, rule.Category).Mul(rule.Value).Div(hundred)
	default:
		// Unknown kinds are quarantined at catalog load; an applied coupon
		// can only carry one of the kinds above. Yield zero rather than fail.
		return decimal.Zero
	}
}

// categorySubtotal sums net line totals of the items in the given category.
// A category coupon over a cart with no matching items simply discounts zero.
func categorySubtotal(cart Cart, category string) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range cart {
		if item.Category == category {
			sum = sum.Add(LineTotal(item))
		}
	}
	return sum
}
