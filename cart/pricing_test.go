package cart_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"storefront/cart"
)

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestSummarize_FreeShippingAboveThreshold(t *testing.T) {
	// subtotal 80 crosses the 75 threshold
	items := cart.Add(cart.Items{}, product("Headphones", 40), 2)

	s := cart.Summarize(items)
	assertDecimal(t, "80", s.Subtotal)
	assertDecimal(t, "0", s.Shipping)
	assertDecimal(t, "5.6", s.Tax)
	assertDecimal(t, "85.6", s.Total)
}

func TestSummarize_FlatShippingBelowThreshold(t *testing.T) {
	items := cart.Add(cart.Items{}, product("Speaker", 50), 1)

	s := cart.Summarize(items)
	assertDecimal(t, "50", s.Subtotal)
	assertDecimal(t, "10", s.Shipping)
	assertDecimal(t, "3.5", s.Tax)
	assertDecimal(t, "63.5", s.Total)
}

func TestSummarize_ThresholdIsExclusive(t *testing.T) {
	// exactly 75 still pays shipping; only strictly greater ships free
	items := cart.Add(cart.Items{}, product("Lamp", 75), 1)

	s := cart.Summarize(items)
	assertDecimal(t, "10", s.Shipping)
}

func TestSummarize_EmptyCart(t *testing.T) {
	s := cart.Summarize(cart.Items{})
	assertDecimal(t, "0", s.Subtotal)
	assertDecimal(t, "10", s.Shipping)
	assertDecimal(t, "0", s.Tax)
	assertDecimal(t, "10", s.Total)
}

func TestSummarize_KeepsPrecision(t *testing.T) {
	// 19.99 * 3 = 59.97, tax 4.1979: float arithmetic would drift here
	items := cart.Add(cart.Items{}, product("Cable", 19.99), 3)

	s := cart.Summarize(items)
	assertDecimal(t, "59.97", s.Subtotal)
	assertDecimal(t, "4.1979", s.Tax)
	assertDecimal(t, "74.1679", s.Total)
}
