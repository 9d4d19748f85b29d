package normalize

import "strings"

// Content prepares submitted message or reply text for storage. Only
// surrounding whitespace is removed; the Markdown source is kept as written,
// so an empty return means there is nothing to store.
func Content(raw string) string {
	return strings.TrimSpace(raw)
}
