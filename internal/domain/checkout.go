package domain

type Customer struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	ShippingAddress string `json:"shippingAddress"`
	BillingAddress  string `json:"billingAddress"`
}

// CheckoutDraft is the ephemeral form state collected on the checkout page.
// It is not persisted until submission succeeds, at which point it is kept
// alongside the order echo so the confirmation stage can recover the guest's
// email and phone for the ownership check.
type CheckoutDraft struct {
	FullName      string        `json:"fullName"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	AddressLine   string        `json:"addressLine"`
	City          string        `json:"city"`
	PostalCode    string        `json:"postalCode"`
	Country       string        `json:"country"`
	BillingSame   bool          `json:"billingSame"`
	BillingLine   string        `json:"billingLine,omitempty"`
	BillingCity   string        `json:"billingCity,omitempty"`
	BillingPostal string        `json:"billingPostal,omitempty"`
	CouponCode    string        `json:"couponCode,omitempty"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}

// CheckoutPayload is the wire shape of POST orders/checkout.
type CheckoutPayload struct {
	Customer      Customer      `json:"customer"`
	CouponCode    string        `json:"couponCode,omitempty"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}

// Payload flattens the draft's address fields into the transmitted shape.
// Billing marked "same as shipping" is sent as the empty string; the backend
// interprets empty billing as "use shipping".
func (d *CheckoutDraft) Payload() CheckoutPayload {
	billing := ""
	if !d.BillingSame {
		billing = d.BillingLine + ", " + d.BillingCity + ", " + d.BillingPostal
	}
	return CheckoutPayload{
		Customer: Customer{
			FullName:        d.FullName,
			Email:           d.Email,
			Phone:           d.Phone,
			ShippingAddress: d.AddressLine + ", " + d.City + ", " + d.PostalCode + ", " + d.Country,
			BillingAddress:  billing,
		},
		CouponCode:    d.CouponCode,
		PaymentMethod: d.PaymentMethod,
	}
}
