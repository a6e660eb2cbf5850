package password

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const minLength = 8

var (
	ErrTooShort    = errors.New("password must be at least 8 characters")
	ErrTooWeak     = errors.New("password must contain a letter and a digit")
	ErrWrongSecret = errors.New("password does not match")
)

// Validate enforces the minimum password policy for web accounts.
func Validate(plain string) error {
	if len(plain) < minLength {
		return ErrTooShort
	}
	var hasLetter, hasDigit bool
	for _, r := range plain {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrTooWeak
	}
	return nil
}

// Hash derives a bcrypt hash from the plaintext password.
func Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare checks a plaintext password against a stored hash.
func Compare(hash, plain string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)); err != nil {
		return ErrWrongSecret
	}
	return nil
}
