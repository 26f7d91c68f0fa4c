// Package name validates and encodes protocol names. A name is the label
// registered on chain, without the TLD suffix.
package name

import (
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrInvalidName is returned for names outside the allowed character set.
var ErrInvalidName = errors.New("invalid name")

func validChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '-':
		return true
	}
	return false
}

// Validate checks that n is non-empty and contains only letters, digits and
// hyphens.
func Validate(n string) error {
	if n == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	for i := 0; i < len(n); i++ {
		if !validChar(n[i]) {
			return fmt.Errorf("%w: %q", ErrInvalidName, n)
		}
	}
	return nil
}

// FirstInvalidCharIndex returns the 1-based index of the first character
// outside the allowed set, or -1 if the name is valid. The empty name has
// no invalid character to point at and also returns -1.
func FirstInvalidCharIndex(n string) int {
	for i := 0; i < len(n); i++ {
		if !validChar(n[i]) {
			return i + 1
		}
	}
	return -1
}

// Bytes returns the ASCII encoding of n, the exact bytes embedded in token
// commitments.
func Bytes(n string) []byte {
	return []byte(n)
}

// Hex returns the hex encoding of the name bytes.
func Hex(n string) string {
	return hex.EncodeToString(Bytes(n))
}
