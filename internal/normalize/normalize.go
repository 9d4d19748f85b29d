// Package normalize turns loosely typed request input into the values the
// board works with.
package normalize

import (
	"math"
	"strconv"
	"strings"
)

// LooseInt parses the leading integer of raw the way lenient form handling
// does: surrounding whitespace is ignored, an optional sign is accepted and
// parsing stops at the first non-digit ("12abc" is 12). ok is false when raw
// has no leading digits. Values outside int64 saturate.
func LooseInt(raw string) (n int64, ok bool) {
	s := strings.TrimSpace(raw)

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	digits := s[:end]
	if neg {
		digits = "-" + digits
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		if neg {
			return math.MinInt64, true
		}
		return math.MaxInt64, true
	}
	return n, true
}

// Page returns the requested page number. Absent, non-numeric and values
// below 1 all mean the first page.
func Page(raw string) int {
	n, ok := LooseInt(raw)
	if !ok || n < 1 {
		return 1
	}
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}

// OptionalID parses an optional numeric identifier such as a tag filter.
// Non-numeric input yields nil, meaning "no filter".
func OptionalID(raw string) *int64 {
	n, ok := LooseInt(raw)
	if !ok {
		return nil
	}
	return &n
}

// Limit parses a result limit, using def when raw is absent, non-numeric or
// zero, and clamping the result into [lo, hi].
func Limit(raw string, def, lo, hi int) int {
	v := int64(def)
	if n, ok := LooseInt(raw); ok && n != 0 {
		v = n
	}
	return int(max(int64(lo), min(int64(hi), v)))
}
