package confirmation

// Badge is pure display state derived from a status string. No transitions
// are driven from here; the views are read-only and safe to reload.
type Badge struct {
	Label string `json:"label"`
	Tone  string `json:"tone"`
}

func OrderStatusBadge(status string) Badge {
	switch status {
	case "pending":
		return Badge{Label: "Pending", Tone: "amber"}
	case "shipped":
		return Badge{Label: "Shipped", Tone: "blue"}
	default:
		return Badge{Label: "Confirmed", Tone: "green"}
	}
}

func PaymentStatusBadge(status string) Badge {
	if status == "pending" {
		return Badge{Label: "Payment Pending", Tone: "amber"}
	}
	return Badge{Label: "Paid", Tone: "green"}
}
