/*
Package randx generates random identifiers and validates cosmetic values.
*/
package randx

import (
	"strings"

	"github.com/google/uuid"
)

// ID returns a new random record identifier.
func ID() string {
	return uuid.NewString()
}

// ShortHex returns the first n hex characters of a fresh UUID, capped at 32.
func ShortHex(n int) string {
	s := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n > len(s) {
		n = len(s)
	}
	return s[:n]
}

// IsFlagColor reports whether s is a "#rrggbb" hex color.
func IsFlagColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}
