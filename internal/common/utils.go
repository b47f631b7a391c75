package common

import (
	"fmt"
	"strings"
)

// HasAny returns true if s contains any of the substrings.
func HasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// NormalizeAnswer trims and lower-cases a console answer.
func NormalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FormatOptional renders v with format, or "N/A" when v is nil.
func FormatOptional(format string, v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf(format, *v)
}
