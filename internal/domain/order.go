package domain

import "time"

type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodCash PaymentMethod = "cash"
)

type OrderItem struct {
	ProductID string   `json:"productId,omitempty"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Quantity  int      `json:"quantity"`
	Variant   *Variant `json:"variant,omitempty"`
}

// Order is the server-created aggregate returned by checkout submission.
// ID is the internal identifier used for the payment-completion call;
// OrderRef is the human-facing identifier used for guest lookups. Both
// must survive the hand-off to the payment stage.
type Order struct {
	ID              string        `json:"_id"`
	OrderRef        string        `json:"orderRef"`
	Customer        Customer      `json:"customer"`
	Items           []OrderItem   `json:"items"`
	Subtotal        float64       `json:"subtotal"`
	ShippingCost    float64       `json:"shippingCost"`
	Discount        float64       `json:"discount"`
	LoyaltyDiscount float64       `json:"loyaltyDiscount"`
	TotalAmount     float64       `json:"totalAmount"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	PaymentStatus   string        `json:"paymentStatus"`
	OrderStatus     string        `json:"orderStatus"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// OrderSummary is reconstructed on the payment stage purely from the
// persisted order echo, never by re-fetching the order.
type OrderSummary struct {
	Items        []OrderItem `json:"items"`
	Subtotal     float64     `json:"subtotal"`
	ShippingCost float64     `json:"shippingCost"`
	Discount     float64     `json:"discount"`
	Total        float64     `json:"total"`
}

// Summary prefers the server's totalAmount over recomputing from parts.
func (o *Order) Summary() OrderSummary {
	total := o.TotalAmount
	if total == 0 {
		total = o.Subtotal + o.ShippingCost - o.Discount
	}
	return OrderSummary{
		Items:        o.Items,
		Subtotal:     o.Subtotal,
		ShippingCost: o.ShippingCost,
		Discount:     o.Discount,
		Total:        total,
	}
}
