package order

import "math"

// Pricing constants for the storefront. The free-shipping threshold is
// inclusive: a subtotal of exactly 100.00 ships free.
const (
	FreeShippingThreshold = 100.00
	FlatShippingFee       = 10.00
	TaxRate               = 0.08
)

type Totals struct {
	Subtotal float64
	Discount float64
	Shipping float64
	Tax      float64
	Total    float64
}

// ComputeTotals prices an order once, at placement. freeShipping is true
// when any line item carries the product's free-shipping flag.
//
// total = subtotal - discount + shipping + tax
func ComputeTotals(items []Item, freeShipping bool, discount float64) (Totals, error) {
	var subtotal float64
	for _, it := range items {
		subtotal += it.Price * float64(it.Quantity)
	}

	shipping := FlatShippingFee
	if subtotal >= FreeShippingThreshold || freeShipping {
		shipping = 0
	}

	tax := (subtotal - discount) * TaxRate
	total := subtotal - discount + shipping + tax

	for _, v := range []float64{subtotal, discount, shipping, tax, total} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Totals{}, ErrInvalidAmount
		}
	}

	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Shipping: shipping,
		Tax:      tax,
		Total:    total,
	}, nil
}
