// Package normalize holds the small string cleanups shared by the CSV parser and the
// filter layer.
package normalize

import "strings"

func Trim(value string) string {
	return strings.TrimSpace(value)
}

func Lower(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// Header canonicalizes a CSV column name: trimmed, lower-cased, with a leading
// UTF-8 byte order mark removed.
func Header(value string) string {
	return Lower(strings.TrimPrefix(value, "\uFEFF"))
}

// IsBlank reports whether value is empty after trimming.
func IsBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}
