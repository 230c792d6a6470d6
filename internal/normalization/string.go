package normalization

import (
	"strings"
)

// ParseInputString lowercases and trims free-form input. Used for values that
// are matched case-insensitively, emails above all.
func ParseInputString(input string) string {
	normalized := strings.ToLower(strings.TrimSpace(input))
	return normalized
}

// TrimInputString trims without lowercasing, for names and other
// case-significant fields.
func TrimInputString(input string) string {
	return strings.TrimSpace(input)
}
