package handler

import (
	"net/http"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/xenking/checkout-engine/internal/domain/order"
	"github.com/xenking/checkout-engine/internal/domain/pricing"
)

// maxBodySize caps request bodies at 1 MiB.
const maxBodySize = 1 << 20

func decodeDecimal(d *jx.Decoder) (decimal.Decimal, error) {
	n, err := d.Num()
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromString(n.String())
}

func decodeLineItem(d *jx.Decoder) (pricing.LineItem, error) {
	var item pricing.LineItem
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			item.ID, err = d.Str()
		case "name":
			item.Name, err = d.Str()
		case "category":
			item.Category, err = d.Str()
		case "unitPrice":
			item.UnitPrice, err = decodeDecimal(d)
		case "itemDiscountPercent":
			item.ItemDiscountPercent, err = decodeDecimal(d)
		case "quantity":
			item.Quantity, err = d.Int()
		default:
			err = d.Skip()
		}
		return err
	})
	return item, err
}

func decodeCart(d *jx.Decoder) (pricing.Cart, error) {
	var cart pricing.Cart
	err := d.Arr(func(d *jx.Decoder) error {
		item, err := decodeLineItem(d)
		if err != nil {
			return err
		}
		cart = append(cart, item)
		return nil
	})
	return cart, err
}

func decodeShippingInfo(d *jx.Decoder) (order.ShippingInfo, error) {
	var info order.ShippingInfo
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "name":
			info.Name, err = d.Str()
		case "address":
			info.Address, err = d.Str()
		case "city":
			info.City, err = d.Str()
		case "postalCode":
			info.PostalCode, err = d.Str()
		case "phone":
			info.Phone, err = d.Str()
		default:
			err = d.Skip()
		}
		return err
	})
	return info, err
}

func decodeQuoteRequest(data []byte) (order.QuoteRequest, error) {
	var req order.QuoteRequest
	d := jx.DecodeBytes(data)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "items":
			req.Items, err = decodeCart(d)
		case "couponCode":
			req.CouponCode, err = d.Str()
		default:
			err = d.Skip()
		}
		return err
	})
	return req, err
}

func decodeCheckoutRequest(data []byte) (order.CheckoutRequest, error) {
	var req order.CheckoutRequest
	d := jx.DecodeBytes(data)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "items":
			req.Items, err = decodeCart(d)
		case "couponCode":
			req.CouponCode, err = d.Str()
		case "shippingInfo":
			req.ShippingInfo, err = decodeShippingInfo(d)
		case "paymentMethod":
			var method string
			method, err = d.Str()
			req.PaymentMethod = order.PaymentMethod(method)
		default:
			err = d.Skip()
		}
		return err
	})
	return req, err
}

// encodeMoney writes a monetary amount as a JSON number with exactly two
// decimal places. Breakdown fields are already rounded at the pricing
// boundary; this only fixes the textual form.
func encodeMoney(e *jx.Encoder, v decimal.Decimal) {
	e.Num(jx.Num(v.StringFixed(2)))
}

func encodeBreakdownFields(e *jx.Encoder, b pricing.Breakdown) {
	e.FieldStart("subtotal")
	encodeMoney(e, b.Subtotal)
	e.FieldStart("shippingCost")
	encodeMoney(e, b.ShippingCost)
	e.FieldStart("discountAmount")
	encodeMoney(e, b.DiscountAmount)
	e.FieldStart("total")
	encodeMoney(e, b.Total)
}

func encodeCart(e *jx.Encoder, cart pricing.Cart) {
	e.ArrStart()
	for _, item := range cart {
		e.ObjStart()
		e.FieldStart("id")
		e.Str(item.ID)
		e.FieldStart("name")
		e.Str(item.Name)
		e.FieldStart("category")
		e.Str(item.Category)
		e.FieldStart("unitPrice")
		e.Num(jx.Num(item.UnitPrice.String()))
		e.FieldStart("itemDiscountPercent")
		e.Num(jx.Num(item.ItemDiscountPercent.String()))
		e.FieldStart("quantity")
		e.Int(item.Quantity)
		e.ObjEnd()
	}
	e.ArrEnd()
}

func writeJSON(w http.ResponseWriter, status int, e *jx.Encoder) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

func writeError(w http.ResponseWriter, status int, message string) {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("code")
	e.Int(status)
	e.FieldStart("message")
	e.Str(message)
	e.ObjEnd()
	writeJSON(w, status, &e)
}
