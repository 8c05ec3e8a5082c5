package validators

import (
	"errors"
	"strings"
)

// Field rules that don't fit gin binding tags. Each returns the error that
// ends up in the field-keyed 400 map.

func ValidateFullName(name string) error {
	if len(strings.TrimSpace(name)) < 4 {
		return errors.New("Full name must be at least 4 characters long.")
	}
	return nil
}

// ValidateUKPhone accepts +44 numbers only: exactly 10 digits after the
// country code.
func ValidateUKPhone(phone string) error {
	if !strings.HasPrefix(phone, "+44") {
		return errors.New("Phone number must start with '+44' for UK numbers.")
	}

	rest := phone[3:]
	for _, r := range rest {
		if r < '0' || r > '9' {
			return errors.New("Phone number must only contain digits after the '+44' country code.")
		}
	}

	if len(rest) != 10 {
		return errors.New("UK phone number must be exactly 10 digits long after '+44'.")
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("Password must be at least 8 characters long.")
	}
	return nil
}
