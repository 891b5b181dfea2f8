// Package colors provides the hex color helpers backing persona card
// gradients.
package colors

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RGB is a parsed 8-bit color triple.
type RGB struct {
	R, G, B int
}

// HexToRGB parses a "#rrggbb" (or "rrggbb") string. The second value is
// false for anything that is not six hex digits.
func HexToRGB(hex string) (RGB, bool) {
	normalized := strings.TrimPrefix(hex, "#")
	if len(normalized) != 6 {
		return RGB{}, false
	}
	num, err := strconv.ParseUint(normalized, 16, 32)
	if err != nil {
		return RGB{}, false
	}
	return RGB{
		R: int(num >> 16 & 255),
		G: int(num >> 8 & 255),
		B: int(num & 255),
	}, true
}

// Mix linearly interpolates between two hex colors. t is clamped to [0, 1];
// unparseable inputs yield the target color unchanged.
func Mix(from, to string, t float64) string {
	clamped := math.Max(0, math.Min(1, t))
	fromRGB, okFrom := HexToRGB(from)
	toRGB, okTo := HexToRGB(to)
	if !okFrom || !okTo {
		return to
	}
	r := int(math.Round(float64(fromRGB.R) + float64(toRGB.R-fromRGB.R)*clamped))
	g := int(math.Round(float64(fromRGB.G) + float64(toRGB.G-fromRGB.G)*clamped))
	b := int(math.Round(float64(fromRGB.B) + float64(toRGB.B-fromRGB.B)*clamped))
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
