package cart

import "github.com/shopspring/decimal"

var (
	// orders above this subtotal ship free
	FreeShippingMin = decimal.NewFromInt(75)
	ShippingFee     = decimal.NewFromInt(10)
	// flat 7% rate
	TaxRate = decimal.NewFromFloat(0.07)
)

// Summary is the derived pricing of a cart. Values keep full precision;
// rounding for display is the presentation layer's job.
type Summary struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Summarize computes subtotal, shipping, tax and total from the cart lines.
func Summarize(items Items) Summary {
	subtotal := decimal.Zero
	for _, item := range items {
		price := decimal.NewFromFloat(item.Product.Price)
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	shipping := ShippingFee
	if subtotal.GreaterThan(FreeShippingMin) {
		shipping = decimal.Zero
	}

	tax := subtotal.Mul(TaxRate)

	return Summary{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}
