package model

import "fmt"

// Name and author strings are restricted to a small safe alphabet and a
// fixed length range.
const (
	minNameLength = 2
	maxNameLength = 16
)

func validNameChar(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '_' || c == '-':
		return true
	}
	return false
}

// ValidateName checks a cape/accessory name or author string: 2-16 characters
// from [A-Za-z0-9_-].
func ValidateName(value string) error {
	if len(value) < minNameLength {
		return fmt.Errorf("%w: parameter must not be less than %d characters", ErrInvalidInput, minNameLength)
	}
	if len(value) > maxNameLength {
		return fmt.Errorf("%w: parameter must not exceed %d characters", ErrInvalidInput, maxNameLength)
	}
	for _, c := range value {
		if !validNameChar(c) {
			return fmt.Errorf("%w: invalid string", ErrInvalidInput)
		}
	}
	return nil
}
