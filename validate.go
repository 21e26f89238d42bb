package databoard

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"
)

// ErrInvalidField is the kind every field-shape failure wraps. Callers
// match it with errors.Is.
var ErrInvalidField = errors.New("invalid field")

const (
	maxIdentityLen = 50
	maxTextLen     = 128
	maxPasswordLen = 128
	maxCategoryLen = 50
)

var nameRegexp = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

// ValidateIdentity checks an owner, author or friend name: non-empty, at
// most 50 characters, starting with a letter or digit and containing only
// letters, digits, dash and underscore.
func ValidateIdentity(s string) error {
	return validateName(s, "identity", maxIdentityLen)
}

// ValidateCategoryName applies the same shape rules as identities.
func ValidateCategoryName(s string) error {
	return validateName(s, "category", maxCategoryLen)
}

// ValidateText checks post content: non-empty, at most 128 characters.
// Text takes any character set, so the bound counts runes, not bytes.
func ValidateText(s string) error {
	if len(s) == 0 {
		return fmt.Errorf("%w: text is empty", ErrInvalidField)
	}
	if utf8.RuneCountInString(s) > maxTextLen {
		return fmt.Errorf("%w: text exceeds %d characters", ErrInvalidField, maxTextLen)
	}
	return nil
}

// ValidatePassword checks a board secret's shape, not its value:
// non-empty, at most 128 characters (runes, like text).
func ValidatePassword(s string) error {
	if len(s) == 0 {
		return fmt.Errorf("%w: password is empty", ErrInvalidField)
	}
	if utf8.RuneCountInString(s) > maxPasswordLen {
		return fmt.Errorf("%w: password exceeds %d characters", ErrInvalidField, maxPasswordLen)
	}
	return nil
}

func validateName(s, field string, max int) error {
	if len(s) == 0 {
		return fmt.Errorf("%w: %s is empty", ErrInvalidField, field)
	}
	if len(s) > max {
		return fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidField, field, max)
	}
	if !nameRegexp.MatchString(s) {
		return fmt.Errorf("%w: %s must start with a letter or digit and contain only letters, digits, dash or underscore", ErrInvalidField, field)
	}
	return nil
}
