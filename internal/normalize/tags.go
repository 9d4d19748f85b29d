package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// tagSeparatorPattern splits a raw tag field on ASCII commas, full-width
// commas and whitespace.
var tagSeparatorPattern = regexp.MustCompile(`[,，\s]+`)

// SplitTags tokenizes a free-text tag field into candidate tag names.
// Empty tokens are dropped. Order is preserved and duplicates are kept;
// the tag store collapses them.
func SplitTags(raw string) []string {
	parts := tagSeparatorPattern.Split(raw, -1)

	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}

// TagName canonicalizes a tag name: surrounding whitespace is trimmed and the
// text is put in Unicode NFC so visually identical names compare equal.
// Case is preserved; tag names are case-sensitive.
func TagName(raw string) string {
	return norm.NFC.String(strings.TrimSpace(raw))
}
