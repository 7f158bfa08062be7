package placeholder

import "strings"

// Normalize strips surrounding whitespace and the enclosing bracket layer from
// a placeholder key. Internal symbols such as "$" or underscores are kept
// intact; the result is used for equality and lookup only, never displayed.
// Normalize is idempotent.
func Normalize(key string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(key), "[]"))
}
