package order

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/checkout-engine/internal/domain/pricing"
)

func fixedAssembler(id string, at time.Time) *Assembler {
	return &Assembler{
		newID: func() string { return id },
		now:   func() time.Time { return at },
	}
}

func TestAssemble(t *testing.T) {
	at := time.Date(2026, time.February, 3, 12, 30, 0, 0, time.UTC)
	a := fixedAssembler("order-1", at)

	cart := pricing.Cart{
		{ID: "p1", Name: "Widget", UnitPrice: decimal.NewFromInt(100), Quantity: 1},
	}
	shipping := ShippingInfo{Name: "Ada Lovelace", Address: "1 Analytical Way", City: "London", PostalCode: "EC1", Phone: "+44 20 0000 0000"}
	breakdown := pricing.PriceOrder(cart, nil)

	o := a.Assemble(cart, shipping, PaymentCard, "SAVE10", breakdown)

	assert.Equal(t, "order-1", o.ID)
	assert.Equal(t, at, o.CreatedAt)
	assert.Equal(t, shipping, o.ShippingInfo)
	assert.Equal(t, PaymentCard, o.PaymentMethod)
	assert.Equal(t, "SAVE10", o.CouponCode)
	assert.Equal(t, breakdown, o.Breakdown)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "p1", o.Items[0].ID)
}

func TestAssemble_SnapshotsCart(t *testing.T) {
	a := fixedAssembler("order-2", time.Now())

	cart := pricing.Cart{
		{ID: "p1", Name: "Widget", UnitPrice: decimal.NewFromInt(10), Quantity: 1},
	}

	o := a.Assemble(cart, ShippingInfo{}, PaymentPayPal, "", pricing.Breakdown{})

	cart[0].ID = "mutated"
	cart[0].Quantity = 99

	assert.Equal(t, "p1", o.Items[0].ID)
	assert.Equal(t, 1, o.Items[0].Quantity)
}

func TestAssemble_NormalizesTimestampToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	at := time.Date(2026, time.February, 3, 15, 30, 0, 0, loc)
	a := fixedAssembler("order-3", at)

	o := a.Assemble(nil, ShippingInfo{}, PaymentCashOnDelivery, "", pricing.Breakdown{})

	assert.Equal(t, time.UTC, o.CreatedAt.Location())
	assert.True(t, o.CreatedAt.Equal(at))
}

func TestNewAssembler_GeneratesUniqueIDs(t *testing.T) {
	a := NewAssembler()

	first := a.Assemble(nil, ShippingInfo{}, PaymentCard, "", pricing.Breakdown{})
	second := a.Assemble(nil, ShippingInfo{}, PaymentCard, "", pricing.Breakdown{})

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
}
