package cart

import "github.com/blisora/storefront/internal/domain"

// Display-only estimates. The authoritative shipping and discount figures are
// computed during checkout and may differ.
const (
	flatShippingFee = 18
	flatDiscount    = 10
)

type Summary struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

func Summarize(cart *domain.Cart) Summary {
	var subtotal float64
	if cart != nil {
		subtotal = cart.Subtotal
	}

	var shipping, discount float64
	if subtotal > 0 {
		shipping = flatShippingFee
		discount = flatDiscount
	}

	total := subtotal + shipping - discount
	if total < 0 {
		total = 0
	}

	return Summary{
		Subtotal: subtotal,
		Shipping: shipping,
		Discount: discount,
		Total:    total,
	}
}
