package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/checkout-engine/internal/domain/order"
)

const createOrderSQL = `INSERT INTO orders
	(id, created_at, shipping_info, payment_method, items, coupon_code,
	 subtotal, shipping_cost, discount_amount, total)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

var _ order.Repository = (*OrderStore)(nil)

// OrderStore implements order.Repository backed by PostgreSQL. The orders
// table is append-only: records are inserted once at checkout and never
// updated.
type OrderStore struct {
	pool *pgxpool.Pool
}

// NewOrderStore returns an OrderStore that uses the given pool.
func NewOrderStore(pool *pgxpool.Pool) *OrderStore {
	return &OrderStore{pool: pool}
}

// lineItemRow is the JSONB shape of a snapshotted cart line.
type lineItemRow struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Category            string `json:"category"`
	UnitPrice           string `json:"unitPrice"`
	ItemDiscountPercent string `json:"itemDiscountPercent"`
	Quantity            int    `json:"quantity"`
}

// shippingInfoRow is the JSONB shape of the shipping address.
type shippingInfoRow struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone,omitempty"`
}

// Create persists a completed order. The cart snapshot and shipping info are
// serialized to JSON for the JSONB columns; monetary amounts are stored as
// NUMERIC through the decimal codec.
func (s *OrderStore) Create(ctx context.Context, o *order.Order) error {
	items := make([]lineItemRow, len(o.Items))
	for i, item := range o.Items {
		items[i] = lineItemRow{
			ID:                  item.ID,
			Name:                item.Name,
			Category:            item.Category,
			UnitPrice:           item.UnitPrice.String(),
			ItemDiscountPercent: item.ItemDiscountPercent.String(),
			Quantity:            item.Quantity,
		}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshaling order items: %w", err)
	}

	shippingJSON, err := json.Marshal(shippingInfoRow{
		Name:       o.ShippingInfo.Name,
		Address:    o.ShippingInfo.Address,
		City:       o.ShippingInfo.City,
		PostalCode: o.ShippingInfo.PostalCode,
		Phone:      o.ShippingInfo.Phone,
	})
	if err != nil {
		return fmt.Errorf("marshaling shipping info: %w", err)
	}

	_, err = s.pool.Exec(ctx, createOrderSQL,
		o.ID, o.CreatedAt, shippingJSON, string(o.PaymentMethod), itemsJSON, o.CouponCode,
		o.Breakdown.Subtotal, o.Breakdown.ShippingCost, o.Breakdown.DiscountAmount, o.Breakdown.Total,
	)
	if err != nil {
		return fmt.Errorf("creating order %q: %w", o.ID, err)
	}
	return nil
}
