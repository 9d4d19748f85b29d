// Package color assigns display colors to tags.
package color

import "math/rand/v2"

// TagPalette is the fixed set of colors a new tag can receive.
var TagPalette = [...]string{
	"#3b82f6", // blue
	"#10b981", // emerald
	"#f59e0b", // amber
	"#ef4444", // red
	"#8b5cf6", // violet
	"#ec4899", // pink
	"#06b6d4", // cyan
	"#84cc16", // lime
}

// DefaultTagColor is stored when no color was chosen.
const DefaultTagColor = "#3b82f6"

// Source is a source of uniformly distributed integers in [0, n).
// *math/rand/v2.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// Random draws from the process-wide generator and is safe for concurrent
// use, unlike a *rand.Rand.
var Random Source = globalSource{}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// PickTagColor draws a palette color from src. A nil src yields DefaultTagColor.
func PickTagColor(src Source) string {
	if src == nil {
		return DefaultTagColor
	}
	i := src.IntN(len(TagPalette))
	if i < 0 || i >= len(TagPalette) {
		return DefaultTagColor
	}
	return TagPalette[i]
}

// InPalette reports whether c is one of the palette colors.
func InPalette(c string) bool {
	for _, p := range TagPalette {
		if p == c {
			return true
		}
	}
	return false
}
