package utils

import (
	"errors"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	PasswordMinLen = 10
	PasswordMaxLen = 20
)

var (
	ErrPasswordLength     = errors.New("password must be 10 to 20 characters long")
	ErrPasswordUpper      = errors.New("password must contain an uppercase letter")
	ErrPasswordLower      = errors.New("password must contain a lowercase letter")
	ErrPasswordDigit      = errors.New("password must contain a digit")
	ErrPasswordSymbol     = errors.New("password must contain a symbol")
	ErrPasswordWhitespace = errors.New("password must not contain whitespace")
)

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword compares in constant time; a malformed hash is just a mismatch.
func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}

// ValidatePassword enforces the account password policy and returns the first rule broken.
func ValidatePassword(pw string) error {
	if n := utf8.RuneCountInString(pw); n < PasswordMinLen || n > PasswordMaxLen {
		return ErrPasswordLength
	}
	var upper, lower, digit, symbol bool
	for _, r := range pw {
		switch {
		case unicode.IsSpace(r):
			return ErrPasswordWhitespace
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	switch {
	case !upper:
		return ErrPasswordUpper
	case !lower:
		return ErrPasswordLower
	case !digit:
		return ErrPasswordDigit
	case !symbol:
		return ErrPasswordSymbol
	}
	return nil
}
