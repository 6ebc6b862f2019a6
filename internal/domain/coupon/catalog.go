package coupon

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SkippedRule records a catalog entry that failed validation and the reason
// it was quarantined. Malformed entries are skipped, never propagated as
// errors, so a bad row cannot take the whole catalog down.
type SkippedRule struct {
	Rule   Rule
	Reason string
}

// Catalog is the static set of valid coupon codes and their rules, built
// once at startup. Lookup is case-sensitive: codes are stored uppercase and
// must match exactly. The catalog is immutable after construction and safe
// for concurrent reads.
type Catalog struct {
	rules map[string]Rule
}

// NewCatalog validates the given rules and builds a catalog from the ones
// that pass. Entries with unknown kinds, malformed values, or missing
// kind-specific fields are returned as skipped, keeping the catalog
// forward-compatible with rule kinds this engine does not recognize.
func NewCatalog(rules []Rule) (*Catalog, []SkippedRule) {
	catalog := &Catalog{rules: make(map[string]Rule, len(rules))}

	var skipped []SkippedRule
	for _, rule := range rules {
		if reason := validateRule(rule); reason != "" {
			skipped = append(skipped, SkippedRule{Rule: rule, Reason: reason})
			continue
		}
		catalog.rules[rule.Code] = rule
	}
	return catalog, skipped
}

// Lookup returns the rule for the given code. Matching is exact and
// case-sensitive.
func (c *Catalog) Lookup(code string) (Rule, bool) {
	rule, ok := c.rules[code]
	return rule, ok
}

// Len returns the number of valid rules in the catalog.
func (c *Catalog) Len() int {
	return len(c.rules)
}

// validateRule returns an empty string for a well-formed rule, or the reason
// the rule must be quarantined.
func validateRule(rule Rule) string {
	if rule.Code == "" {
		return "empty code"
	}
	for i := range len(rule.Code) {
		ch := rule.Code[i]
		if (ch < 'A' || ch > 'Z') && (ch < '0' || ch > '9') {
			return "code must be uppercase alphanumeric"
		}
	}

	switch rule.Kind {
	case KindPercentage, KindFirstPurchase, KindSeasonal:
		if rule.Value.IsNegative() || rule.Value.GreaterThan(hundred) {
			return "percentage value out of range"
		}
	case KindMinimumPurchase:
		if rule.Value.IsNegative() || rule.Value.GreaterThan(hundred) {
			return "percentage value out of range"
		}
		if !rule.MinAmount.IsPositive() {
			return "minimum purchase amount required"
		}
	case KindCategory:
		if rule.Value.IsNegative() || rule.Value.GreaterThan(hundred) {
			return "percentage value out of range"
		}
		if rule.Category == "" {
			return "category required"
		}
	case KindFixed:
		if rule.Value.IsNegative() {
			return "negative fixed amount"
		}
	case KindFreeShipping:
		// Value is ignored; nothing else to check.
	default:
		return "unknown kind"
	}
	return ""
}
