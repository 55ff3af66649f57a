// Package validation checks names that become directories and files in the
// generated vault, so that locale data cannot write outside the vault.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// MaxNameLength leaves room for the " <chapter>.md" suffix within the
// 255-byte filename limit of common file systems.
const MaxNameLength = 240

// Common validation errors.
var (
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrNameTooLong      = errors.New("name too long")
	ErrInvalidName      = errors.New("invalid name")
	ErrInvalidCharacter = errors.New("invalid character in name")
)

// ValidateName checks that name can be used as a single path component of
// the vault. Anything else a name contains, wikilink syntax included, is
// written as given.
func ValidateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrNameTooLong, len(name), MaxNameLength)
	}

	if name == "." || name == ".." {
		return fmt.Errorf("%w: reserved name", ErrInvalidName)
	}

	if strings.ContainsAny(name, "/\\") {
		return fmt.Errorf("%w: path separator not allowed", ErrInvalidCharacter)
	}

	// NUL is a control character too
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}

	return nil
}
