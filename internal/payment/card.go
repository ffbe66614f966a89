package payment

import (
	"errors"
	"strings"
)

const (
	cardNumberLength = 16
	cvcLength        = 3
)

var (
	ErrCardFieldsMissing = errors.New("please fill in all card details")
	ErrCardNumberInvalid = errors.New("card number must be 16 digits")
	ErrCVCInvalid        = errors.New("CVC must be 3 digits")
)

// CardForm is the card-like input collected on the payment page. The full
// number and CVC exist for local validation only and never leave the process;
// the outbound payload carries the cardholder name and last four digits.
type CardForm struct {
	Name   string `json:"name"`
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVC    string `json:"cvc"`
}

// Sanitize strips non-digit characters from the number and CVC and caps them
// at their expected lengths, mirroring what the input fields enforce.
func (f *CardForm) Sanitize() {
	f.Number = digitsOnly(f.Number, cardNumberLength)
	f.CVC = digitsOnly(f.CVC, cvcLength)
}

func (f *CardForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" || f.Number == "" || strings.TrimSpace(f.Expiry) == "" || f.CVC == "" {
		return ErrCardFieldsMissing
	}
	if len(f.Number) != cardNumberLength {
		return ErrCardNumberInvalid
	}
	if len(f.CVC) != cvcLength {
		return ErrCVCInvalid
	}
	return nil
}

// Last4 returns the final four digits of the sanitized number.
func (f *CardForm) Last4() string {
	if len(f.Number) < 4 {
		return f.Number
	}
	return f.Number[len(f.Number)-4:]
}

func digitsOnly(s string, max int) string {
	var b strings.Builder
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == max {
			break
		}
	}
	return b.String()
}
