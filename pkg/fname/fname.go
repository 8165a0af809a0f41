// Package fname validates the syntax of registry usernames.
package fname

import (
	"errors"
	"regexp"
	"unicode/utf8"
)

// MaxLength is the longest fname the registry accepts.
const MaxLength = 16

var (
	ErrEmpty        = errors.New("fname is empty")
	ErrTooLong      = errors.New("fname is longer than 16 characters")
	ErrInvalidChars = errors.New("fname may only contain lowercase letters, digits and hyphens and must not start with a hyphen")
)

var pattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,15}$`)

// Validate reports whether name is an acceptable fname.
func Validate(name string) error {
	if name == "" {
		return ErrEmpty
	}
	if utf8.RuneCountInString(name) > MaxLength {
		return ErrTooLong
	}
	if !pattern.MatchString(name) {
		return ErrInvalidChars
	}
	return nil
}

// Validator adapts Validate to the interface the transfer service consumes.
type Validator struct{}

// Validate implements the username check.
func (Validator) Validate(name string) error { return Validate(name) }
