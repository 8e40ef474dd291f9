package compose

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseHex converts a "#RRGGBB" hex color to NRGBA with full opacity.
// Falls back to an error for malformed input; callers substitute defaults.
func ParseHex(hexColor string) (color.NRGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hexColor), "#")
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", hexColor)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", hexColor, err)
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}

// ParseHexOr parses a hex color, returning def when parsing fails
func ParseHexOr(hexColor string, def color.NRGBA) color.NRGBA {
	c, err := ParseHex(hexColor)
	if err != nil {
		return def
	}
	return c
}

// WithAlpha returns the color with its alpha channel replaced
func WithAlpha(c color.NRGBA, alpha uint8) color.NRGBA {
	c.A = alpha
	return c
}
