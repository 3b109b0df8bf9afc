package domain

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// NormalizeName turns a category or course name into its natural key.
// Names are stored upper-case with surrounding whitespace removed.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// NormalizeEmail turns an email address into its natural key.
func NormalizeEmail(email string) string {
	return strings.ToUpper(strings.TrimSpace(email))
}

// DisplayEmail renders a stored email the way it is shown to the operator.
func DisplayEmail(email string) string {
	return strings.ToLower(email)
}

func validateEmail(email string) error {
	if email == "" {
		return ErrEmptyEmail
	}
	if err := validate.Var(strings.ToLower(email), "email"); err != nil {
		return ErrInvalidEmail
	}
	return nil
}
