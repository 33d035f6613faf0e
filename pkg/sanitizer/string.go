package sanitizer

import (
	"strings"
	"unicode"
)

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

// NormalizeEmail only trims. Ownership checks compare the stored email with
// the token email byte for byte, so case is left alone.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

func NormalizePriceRange(priceRange string) string {
	return TrimAndNormalize(priceRange)
}
