package checkout

import (
	"fmt"
	"strings"

	"github.com/blisora/storefront/internal/domain"
)

// ValidationError is a local precondition failure. It is raised before any
// network call is made.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required fields missing: %s", strings.Join(e.Missing, ", "))
}

var requiredFields = []struct {
	name  string
	value func(*domain.CheckoutDraft) string
}{
	{"fullName", func(d *domain.CheckoutDraft) string { return d.FullName }},
	{"email", func(d *domain.CheckoutDraft) string { return d.Email }},
	{"phone", func(d *domain.CheckoutDraft) string { return d.Phone }},
	{"addressLine", func(d *domain.CheckoutDraft) string { return d.AddressLine }},
	{"city", func(d *domain.CheckoutDraft) string { return d.City }},
	{"postalCode", func(d *domain.CheckoutDraft) string { return d.PostalCode }},
	{"country", func(d *domain.CheckoutDraft) string { return d.Country }},
}

func validateDraft(draft *domain.CheckoutDraft) error {
	var missing []string
	for _, field := range requiredFields {
		if strings.TrimSpace(field.value(draft)) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
