package auth

import (
	"errors"
	"unicode"
	"unicode/utf8"
)

// Password policy violations, surfaced verbatim to the caller.
var (
	ErrPasswordTooShort  = errors.New("password must be at least 9 characters long")
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrPasswordTooSimple = errors.New("password must contain both letters and numbers")
)

// minPasswordLength is the minimum accepted password length in characters.
const minPasswordLength = 9

// ValidatePassword checks a password against the registration policy.
// Rules run in a fixed order and the first failure wins: length,
// confirmation match, then complexity (at least one letter and one digit).
func ValidatePassword(password, confirmation string) error {
	// Length counts characters, not bytes: multibyte passwords must not
	// slip past the minimum.
	if utf8.RuneCountInString(password) < minPasswordLength {
		return ErrPasswordTooShort
	}

	if password != confirmation {
		return ErrPasswordMismatch
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLetter || !hasDigit {
		return ErrPasswordTooSimple
	}

	return nil
}
