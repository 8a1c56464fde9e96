package utils

import "strings"

// IsBlank reports whether s is empty or only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsPresent reports whether s is set and not blank.
func IsPresent(s *string) bool {
	return s != nil && !IsBlank(*s)
}

// StringOrEmpty dereferences s, returning "" for nil.
func StringOrEmpty(s *string) string {
	return GetOrDefault(s, "")
}
