package handler

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// metrics holds the handler's counters. Coupon rejections are counted
// separately from server errors so invalid code churn is visible without
// log scraping.
type metrics struct {
	quotes  metric.Int64Counter
	orders  metric.Int64Counter
	rejects metric.Int64Counter
}

func newMetrics(mp metric.MeterProvider) *metrics {
	meter := mp.Meter("checkout-engine/handler")
	m := &metrics{}
	var err error
	if m.quotes, err = meter.Int64Counter("checkout.quotes",
		metric.WithDescription("Quote requests priced"),
	); err != nil {
		otel.Handle(err)
	}
	if m.orders, err = meter.Int64Counter("checkout.orders",
		metric.WithDescription("Orders placed"),
	); err != nil {
		otel.Handle(err)
	}
	if m.rejects, err = meter.Int64Counter("checkout.coupon_rejections",
		metric.WithDescription("Coupon codes rejected during pricing"),
	); err != nil {
		otel.Handle(err)
	}
	return m
}

func (m *metrics) countQuote(ctx context.Context, couponApplied bool) {
	m.quotes.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("coupon.applied", couponApplied),
	))
}

func (m *metrics) countOrder(ctx context.Context, paymentMethod string) {
	m.orders.Add(ctx, 1, metric.WithAttributes(
		attribute.String("order.payment_method", paymentMethod),
	))
}

func (m *metrics) countRejection(ctx context.Context, reason string) {
	m.rejects.Add(ctx, 1, metric.WithAttributes(
		attribute.String("coupon.rejection", reason),
	))
}
