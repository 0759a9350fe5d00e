// utils/validation.go
package utils

import (
	"regexp"
	"strings"

	"ezpresta-backend/payments"

	"github.com/go-playground/validator/v10"
)

var phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	return phoneRegex.MatchString(NormalizePhone(phone))
}

// NormalizePhone strips spaces, dashes, dots and parentheses.
func NormalizePhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "").Replace(phone)
}

// RegisterValidators adds the binding tags used by the request structs:
// paymentmode, paymentplan and phone.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("paymentmode", func(fl validator.FieldLevel) bool {
		_, err := payments.ParseMode(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("paymentplan", func(fl validator.FieldLevel) bool {
		_, err := payments.ParsePlan(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}
	return v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || ValidatePhone(s)
	})
}
