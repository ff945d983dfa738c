// Package cart is the client-side shopping cart: a pure reducer over an
// ordered list of product/quantity lines, a pricing calculator, and a
// storage boundary that persists the cart between sessions. Reducers never
// touch storage; callers persist after each mutation.
package cart

import "storefront/models"

type Item struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

type Items []Item

// Add merges quantity into an existing line for the product, or appends a
// new line at the end. Line order is preserved. Quantities below one count
// as one.
func Add(items Items, product models.Product, quantity int) Items {
	if quantity < 1 {
		quantity = 1
	}

	out := make(Items, len(items))
	copy(out, items)

	for i := range out {
		if out[i].Product.ID == product.ID {
			out[i].Quantity += quantity
			return out
		}
	}
	return append(out, Item{Product: product, Quantity: quantity})
}

// SetQuantity replaces the quantity of the matching line. Absent product ids
// are a no-op. Bounds against stock are the caller's concern.
func SetQuantity(items Items, productID string, quantity int) Items {
	out := make(Items, len(items))
	copy(out, items)

	for i := range out {
		if out[i].Product.ID.Hex() == productID {
			out[i].Quantity = quantity
		}
	}
	return out
}

// Remove drops the matching line. Absent product ids are a no-op.
func Remove(items Items, productID string) Items {
	out := make(Items, 0, len(items))
	for _, item := range items {
		if item.Product.ID.Hex() != productID {
			out = append(out, item)
		}
	}
	return out
}

func Clear(Items) Items {
	return Items{}
}

// Count is the total quantity across all lines, the number shown on the
// cart badge.
func Count(items Items) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}
