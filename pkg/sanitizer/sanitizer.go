// Package sanitizer normalizes free-text marketplace input before validation
// and storage. All functions are idempotent and handle empty input gracefully.
package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims the string and collapses internal whitespace runs
// to a single space.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizeName cleans billboard names, campaign names and customer names.
func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeLocation cleans location and address fields.
func NormalizeLocation(location string) string {
	return TrimAndNormalize(location)
}

// NormalizeLabel lowercases a classification label such as a traffic type.
func NormalizeLabel(label string) string {
	return strings.ToLower(TrimAndNormalize(label))
}

// NormalizeEmail lowercases and trims an email address. Validation proper is
// left to the validator layer.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
