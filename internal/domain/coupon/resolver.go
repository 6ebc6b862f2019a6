package coupon

import (
	"time"

	"github.com/shopspring/decimal"
)

// Resolver decides whether a coupon code applies to a cart. Implementations
// return nil, nil for an empty code: re-resolving with no code clears the
// applied coupon without error.
type Resolver interface {
	Resolve(code string, cartSubtotal decimal.Decimal) (*AppliedCoupon, error)
}

// CatalogResolver resolves codes against an in-memory Catalog. The clock is
// injectable for deterministic expiry tests.
type CatalogResolver struct {
	catalog *Catalog
	now     func() time.Time
}

// NewCatalogResolver creates a CatalogResolver over the given catalog.
func NewCatalogResolver(catalog *Catalog) *CatalogResolver {
	return &CatalogResolver{catalog: catalog, now: time.Now}
}

// Resolve validates the code against the catalog and the cart subtotal.
//
//   - An empty code clears the applied coupon: (nil, nil).
//   - A code missing from the catalog fails with ErrUnknownCode; matching is
//     case-sensitive, the caller does not get fuzzy or case-folded lookups.
//   - minimum_purchase rules fail with *BelowMinimumError until the subtotal
//     reaches the rule's minimum; a subtotal exactly at the minimum passes.
//   - seasonal rules past their expiry fail with ErrCouponExpired.
//   - category rules always resolve; carts with no matching items simply
//     price to a zero discount downstream.
//
// A rejection never partially applies a discount: the returned AppliedCoupon
// is nil on any error.
func (r *CatalogResolver) Resolve(code string, cartSubtotal decimal.Decimal) (*AppliedCoupon, error) {
	if code == "" {
		return nil, nil
	}

	rule, ok := r.catalog.Lookup(code)
	if !ok {
		return nil, ErrUnknownCode
	}

	switch rule.Kind {
	case KindMinimumPurchase:
		if cartSubtotal.LessThan(rule.MinAmount) {
			return nil, &BelowMinimumError{
				Code:      code,
				MinAmount: rule.MinAmount,
				Subtotal:  cartSubtotal,
			}
		}
	case KindSeasonal:
		if rule.Expiry != nil && r.now().After(*rule.Expiry) {
			return nil, ErrCouponExpired
		}
	}

	return &AppliedCoupon{Code: code, Rule: rule}, nil
}
