package domain

// Variant distinguishes otherwise-identical products in the cart.
// A line item's identity is the tuple (product id, size, color).
type Variant struct {
	Size  string `json:"size,omitempty"`
	Color string `json:"color,omitempty"`
}

type CartProduct struct {
	ID     string   `json:"_id"`
	Name   string   `json:"name"`
	Price  float64  `json:"price"`
	Images []string `json:"images,omitempty"`
}

type CartItem struct {
	Product  CartProduct `json:"productId"`
	Quantity int         `json:"quantity"`
	Variant  *Variant    `json:"variant,omitempty"`
}

type Cart struct {
	ID        string     `json:"_id,omitempty"`
	SessionID string     `json:"sessionId,omitempty"`
	Items     []CartItem `json:"items"`
	Subtotal  float64    `json:"subtotal"`
}

// LineKey identifies a cart line for concurrency guarding.
func (i CartItem) LineKey() string {
	return LineKey(i.Product.ID, i.Variant)
}

func LineKey(productID string, variant *Variant) string {
	if variant == nil {
		return productID + "||"
	}
	return productID + "|" + variant.Size + "|" + variant.Color
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}
