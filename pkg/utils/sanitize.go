package utils

import "strings"

// sanitize.go - Input sanitization utilities for security

// EscapeSQLWildcards escapes SQL LIKE wildcard characters so user input
// is matched as literal text instead of pattern syntax.
func EscapeSQLWildcards(input string) string {
	// Escape backslash first (it's the escape character)
	input = strings.ReplaceAll(input, "\\", "\\\\")
	input = strings.ReplaceAll(input, "%", "\\%")
	input = strings.ReplaceAll(input, "_", "\\_")
	return input
}

// SanitizeSearchQuery prepares a search string for safe LIKE usage.
// Returns the sanitized term wrapped with % for partial matching.
func SanitizeSearchQuery(input string) string {
	input = strings.TrimSpace(input)
	// Limit length to prevent DoS
	input = TruncateString(input, 100)
	input = EscapeSQLWildcards(input)
	return "%" + input + "%"
}

// TruncateString safely truncates a string to max length
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
