package validate

import (
	"math"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/services/compose"
)

// RelativeLuminance computes the WCAG relative luminance of a hex color:
// each channel is normalized to [0,1], linearized (c/12.92 when
// c <= 0.03928, else ((c+0.055)/1.055)^2.4), then weighted
// 0.2126/0.7152/0.0722.
func RelativeLuminance(hexColor string) (float64, error) {
	rgb, err := compose.ParseHex(hexColor)
	if err != nil {
		return 0, err
	}

	linear := func(c uint8) float64 {
		n := float64(c) / 255
		if n <= 0.03928 {
			return n / 12.92
		}
		return math.Pow((n+0.055)/1.055, 2.4)
	}

	return 0.2126*linear(rgb.R) + 0.7152*linear(rgb.G) + 0.0722*linear(rgb.B), nil
}

// ContrastRatio computes the WCAG contrast ratio between two hex colors:
// (max(L1,L2)+0.05)/(min(L1,L2)+0.05). Pure black vs. pure white is 21.
func ContrastRatio(fg, bg string) (float64, error) {
	l1, err := RelativeLuminance(fg)
	if err != nil {
		return 0, err
	}
	l2, err := RelativeLuminance(bg)
	if err != nil {
		return 0, err
	}

	lighter := math.Max(l1, l2)
	darker := math.Min(l1, l2)
	return (lighter + 0.05) / (darker + 0.05), nil
}
