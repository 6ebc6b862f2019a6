package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/xenking/checkout-engine/internal/domain/coupon"
)

const loadCouponRulesSQL = `SELECT code, kind, value, category, min_amount, expiry, description
	FROM coupons WHERE active = TRUE ORDER BY code`

var _ coupon.Source = (*CouponStore)(nil)

// CouponStore implements coupon.Source backed by PostgreSQL. The catalog is
// read in full once at startup; rule validation and quarantine happen in
// coupon.NewCatalog, not here.
type CouponStore struct {
	pool *pgxpool.Pool
}

// NewCouponStore returns a CouponStore that uses the given pool.
func NewCouponStore(pool *pgxpool.Pool) *CouponStore {
	return &CouponStore{pool: pool}
}

// LoadRules reads every active coupon rule from the database.
func (s *CouponStore) LoadRules(ctx context.Context) ([]coupon.Rule, error) {
	rows, err := s.pool.Query(ctx, loadCouponRulesSQL)
	if err != nil {
		return nil, fmt.Errorf("loading coupon rules: %w", err)
	}

	rules, err := pgx.CollectRows(rows, scanCouponRule)
	if err != nil {
		return nil, fmt.Errorf("loading coupon rules: %w", err)
	}
	return rules, nil
}

func scanCouponRule(row pgx.CollectableRow) (coupon.Rule, error) {
	var (
		rule      coupon.Rule
		kind      string
		value     decimal.Decimal
		minAmount decimal.Decimal
		expiry    *time.Time
	)
	err := row.Scan(&rule.Code, &kind, &value, &rule.Category, &minAmount, &expiry, &rule.Description)
	rule.Kind = coupon.Kind(kind)
	rule.Value = value
	rule.MinAmount = minAmount
	rule.Expiry = expiry
	return rule, err
}
