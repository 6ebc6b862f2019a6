package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// LineItem is a single product entry in a cart. UnitPrice is the gross unit
// price before the item-level discount; Category is used for category-scoped
// coupon matching.
type LineItem struct {
	ID                  string
	Name                string
	Category            string
	UnitPrice           decimal.Decimal
	ItemDiscountPercent decimal.Decimal
	Quantity            int
}

// Cart is an ordered snapshot of line items. The engine only reads it;
// mutation happens upstream.
type Cart []LineItem

// InvalidLineItemError indicates a line item with a negative price or
// quantity, or a discount percent whose absolute value exceeds 100.
type InvalidLineItemError struct {
	ItemID string
	Reason string
}

func (e *InvalidLineItemError) Error() string {
	return fmt.Sprintf("invalid line item %s: %s", e.ItemID, e.Reason)
}

// ValidateCart checks every line item for negative prices, negative
// quantities, and discount percents whose absolute value exceeds 100.
// It returns the first violation found, in cart order.
func ValidateCart(cart Cart) error {
	for _, item := range cart {
		if item.UnitPrice.IsNegative() {
			return &InvalidLineItemError{ItemID: item.ID, Reason: "negative unit price"}
		}
		if item.Quantity < 0 {
			return &InvalidLineItemError{ItemID: item.ID, Reason: "negative quantity"}
		}
		if item.ItemDiscountPercent.Abs().GreaterThan(hundred) {
			return &InvalidLineItemError{ItemID: item.ID, Reason: "discount percent out of range"}
		}
	}
	return nil
}

// LineTotal returns the net total for a single line item: the unit price
// after the item-level percentage discount, times the quantity.
//
// The discount percent is normalized via absolute value, so either sign is
// treated as the same discount. A zero quantity yields a zero total. No
// rounding happens here; callers round at presentation boundaries only.
func LineTotal(item LineItem) decimal.Decimal {
	pct := item.ItemDiscountPercent.Abs()
	net := item.UnitPrice.Mul(hundred.Sub(pct)).Div(hundred)
	return net.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// Subtotal returns the sum of LineTotal over all items, in cart order.
func Subtotal(cart Cart) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range cart {
		sum = sum.Add(LineTotal(item))
	}
	return sum
}
