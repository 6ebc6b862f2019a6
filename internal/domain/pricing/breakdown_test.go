package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xenking/checkout-engine/internal/domain/coupon"
)

func applied(rule coupon.Rule) *coupon.AppliedCoupon {
	return &coupon.AppliedCoupon{Code: rule.Code, Rule: rule}
}

func singleItemCart(price string) Cart {
	return Cart{{ID: "p1", Name: "Widget", UnitPrice: d(price), Quantity: 1}}
}

func assertBreakdown(t *testing.T, got Breakdown, subtotal, shipping, discount, total string) {
	t.Helper()
	assert.True(t, d(subtotal).Equal(got.Subtotal), "subtotal: expected %s, got %s", subtotal, got.Subtotal)
	assert.True(t, d(shipping).Equal(got.ShippingCost), "shippingCost: expected %s, got %s", shipping, got.ShippingCost)
	assert.True(t, d(discount).Equal(got.DiscountAmount), "discountAmount: expected %s, got %s", discount, got.DiscountAmount)
	assert.True(t, d(total).Equal(got.Total), "total: expected %s, got %s", total, got.Total)
}

func TestPriceOrder_NoCoupon(t *testing.T) {
	got := PriceOrder(singleItemCart("100.00"), nil)
	assertBreakdown(t, got, "100.00", "5.00", "0.00", "105.00")
}

func TestPriceOrder_Percentage(t *testing.T) {
	rule := coupon.Rule{Code: "SAVE10", Kind: coupon.KindPercentage, Value: d("10")}
	got := PriceOrder(singleItemCart("100.00"), applied(rule))
	assertBreakdown(t, got, "100.00", "5.00", "10.00", "95.00")
}

func TestPriceOrder_FreeShipping(t *testing.T) {
	// The displayed discount equals the flat shipping constant while shipping
	// is simultaneously zeroed; the total still nets out to subtotal.
	rule := coupon.Rule{Code: "FREESHIP", Kind: coupon.KindFreeShipping, Value: d("5")}
	got := PriceOrder(singleItemCart("100.00"), applied(rule))
	assertBreakdown(t, got, "100.00", "0.00", "5.00", "100.00")
}

func TestPriceOrder_AllKinds(t *testing.T) {
	cart := Cart{
		{ID: "p1", Name: "Leash", Category: "pets", UnitPrice: d("40.00"), Quantity: 1},
		{ID: "p2", Name: "Mug", Category: "kitchen", UnitPrice: d("60.00"), Quantity: 1},
	}

	tests := []struct {
		name     string
		rule     coupon.Rule
		subtotal string
		shipping string
		discount string
		total    string
	}{
		{
			name:     "percentage",
			rule:     coupon.Rule{Code: "SAVE10", Kind: coupon.KindPercentage, Value: d("10")},
			subtotal: "100.00", shipping: "5.00", discount: "10.00", total: "95.00",
		},
		{
			name:     "fixed",
			rule:     coupon.Rule{Code: "TENOFF", Kind: coupon.KindFixed, Value: d("10")},
			subtotal: "100.00", shipping: "5.00", discount: "10.00", total: "95.00",
		},
		{
			name:     "free shipping",
			rule:     coupon.Rule{Code: "FREESHIP", Kind: coupon.KindFreeShipping},
			subtotal: "100.00", shipping: "0.00", discount: "5.00", total: "100.00",
		},
		{
			name:     "first purchase",
			rule:     coupon.Rule{Code: "WELCOME15", Kind: coupon.KindFirstPurchase, Value: d("15")},
			subtotal: "100.00", shipping: "5.00", discount: "15.00", total: "90.00",
		},
		{
			name:     "category only discounts matching items",
			rule:     coupon.Rule{Code: "PETS15", Kind: coupon.KindCategory, Value: d("15"), Category: "pets"},
			subtotal: "100.00", shipping: "5.00", discount: "6.00", total: "99.00",
		},
		{
			name:     "category with no matching items discounts zero",
			rule:     coupon.Rule{Code: "TOYS20", Kind: coupon.KindCategory, Value: d("20"), Category: "toys"},
			subtotal: "100.00", shipping: "5.00", discount: "0.00", total: "105.00",
		},
		{
			name:     "seasonal",
			rule:     coupon.Rule{Code: "WINTER25", Kind: coupon.KindSeasonal, Value: d("25")},
			subtotal: "100.00", shipping: "5.00", discount: "25.00", total: "80.00",
		},
		{
			name:     "minimum purchase",
			rule:     coupon.Rule{Code: "SPEND50", Kind: coupon.KindMinimumPurchase, Value: d("20"), MinAmount: d("50")},
			subtotal: "100.00", shipping: "5.00", discount: "20.00", total: "85.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PriceOrder(cart, applied(tt.rule))
			assertBreakdown(t, got, tt.subtotal, tt.shipping, tt.discount, tt.total)
		})
	}
}

func TestPriceOrder_FixedClampsAtShippingFloor(t *testing.T) {
	// A fixed discount larger than the subtotal is still displayed in full,
	// but the total never drops below the shipping cost.
	rule := coupon.Rule{Code: "BIG", Kind: coupon.KindFixed, Value: d("200")}
	got := PriceOrder(singleItemCart("50.00"), applied(rule))
	assertBreakdown(t, got, "50.00", "5.00", "200.00", "5.00")
}

func TestPriceOrder_RoundsAtBoundaryOnly(t *testing.T) {
	cart := Cart{{ID: "p1", UnitPrice: d("9.99"), Quantity: 3}}
	rule := coupon.Rule{Code: "SAVE15", Kind: coupon.KindPercentage, Value: d("15")}

	got := PriceOrder(cart, applied(rule))
	// subtotal = 29.97, discount = 4.4955 -> 4.50 displayed,
	// total = 29.97 - 4.4955 + 5 = 30.4745 -> 30.47.
	assertBreakdown(t, got, "29.97", "5.00", "4.50", "30.47")
}

func TestPriceOrder_EmptyCart(t *testing.T) {
	got := PriceOrder(nil, nil)
	assertBreakdown(t, got, "0.00", "5.00", "0.00", "5.00")
}

func TestPriceOrder_Idempotent(t *testing.T) {
	cart := Cart{
		{ID: "p1", Category: "pets", UnitPrice: d("19.99"), ItemDiscountPercent: d("5"), Quantity: 3},
		{ID: "p2", Category: "kitchen", UnitPrice: d("7.45"), Quantity: 2},
	}
	rule := coupon.Rule{Code: "PETS15", Kind: coupon.KindCategory, Value: d("15"), Category: "pets"}

	first := PriceOrder(cart, applied(rule))
	second := PriceOrder(cart, applied(rule))

	assert.Equal(t, first.Subtotal.String(), second.Subtotal.String())
	assert.Equal(t, first.ShippingCost.String(), second.ShippingCost.String())
	assert.Equal(t, first.DiscountAmount.String(), second.DiscountAmount.String())
	assert.Equal(t, first.Total.String(), second.Total.String())
}
