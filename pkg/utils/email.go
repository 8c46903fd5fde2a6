package utils

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidEmail = errors.New("invalid email")

var validate = validator.New()

// NormalizeEmail trims, syntax-checks and lower-cases an address.
func NormalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if err := validate.Var(email, "required,email"); err != nil {
		return "", ErrInvalidEmail
	}
	return strings.ToLower(email), nil
}
