package validate

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
)

// Thresholds for the independent, additive layout checks. Findings never
// block pipeline completion; is_valid is false only on decode failure.
const (
	aspectRatioTolerance = 0.05
	minContrastRatio     = 4.5 // WCAG AA
	maxHeadlineChars     = 40
	maxSubtextChars      = 80
	maxCTAChars          = 15
)

// aspectRatios maps the supported named ratios to width/height pairs
var aspectRatios = map[string][2]int{
	"1:1":  {1, 1},
	"4:5":  {4, 5},
	"9:16": {9, 16},
	"16:9": {16, 9},
	"4:3":  {4, 3},
	"3:4":  {3, 4},
}

var cornerPositions = map[string]bool{
	"top-left":     true,
	"top-right":    true,
	"bottom-left":  true,
	"bottom-right": true,
}

// Validator statically analyses a composed design against layout,
// contrast, length, and position rules. Pure and side-effect free.
type Validator struct{}

// NewValidator creates a layout validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateDesign runs all checks over the finished raster and its plan
func (v *Validator) ValidateDesign(imageData []byte, plan *models.ContentPlan, targetAspectRatio string) *models.ValidationResult {
	result := models.NewValidationResult()

	cfg, _, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		result.IsValid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to decode image: %v", err))
		return result
	}

	v.checkAspectRatio(result, cfg.Width, cfg.Height, targetAspectRatio)
	v.checkPadding(result, &plan.Layout)
	v.checkContrast(result, plan.Layout.HeadlineColor, "#000000") // dark gradient backs the text
	v.checkTextLengths(result, &plan.Copy)
	v.checkPositionConflicts(result, &plan.Layout)

	result.IsValid = len(result.Errors) == 0
	return result
}

func (v *Validator) checkAspectRatio(result *models.ValidationResult, width, height int, target string) {
	pair, ok := aspectRatios[target]
	if !ok {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Unknown aspect ratio: %s", target))
		return
	}

	actual := float64(width) / float64(height)
	expected := float64(pair[0]) / float64(pair[1])

	if math.Abs(actual-expected) > aspectRatioTolerance {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Aspect ratio mismatch: expected %s (%.2f), got %.2f", target, expected, actual))
	}
}

// checkPadding flags corner-anchored elements; informational only
func (v *Validator) checkPadding(result *models.ValidationResult, layout *models.LayoutConfig) {
	for _, p := range []struct {
		name string
		pos  string
	}{
		{"title_position", layout.TitlePosition},
		{"price_position", layout.PricePosition},
		{"logo_position", layout.LogoPosition},
	} {
		name, pos := p.name, p.pos
		if cornerPositions[pos] {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Ensure adequate padding for %s at %s", name, pos))
		}
	}
}

func (v *Validator) checkContrast(result *models.ValidationResult, fg, bg string) {
	ratio, err := ContrastRatio(fg, bg)
	if err != nil {
		result.Warnings = append(result.Warnings, "Could not validate contrast")
		return
	}

	if ratio < minContrastRatio {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Low contrast ratio: %.2f (minimum: %.1f)", ratio, minContrastRatio))

		bgLum, _ := RelativeLuminance(bg)
		suggested := "#000000"
		if bgLum < 0.5 {
			suggested = "#ffffff"
		}
		result.AutoCorrections["headline_color"] = suggested
	}
}

func (v *Validator) checkTextLengths(result *models.ValidationResult, copy *models.DesignCopy) {
	if n := len(copy.Headline); n > maxHeadlineChars {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Headline too long (%d chars): may wrap excessively", n))
	}
	if n := len(copy.Subtext); n > maxSubtextChars {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Subtext too long (%d chars): may overflow", n))
	}
	if n := len(copy.CTA); n > maxCTAChars {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("CTA too long (%d chars): should be snappy", n))
	}
}

// checkPositionConflicts warns on identical positions and on positions
// sharing a row prefix (e.g. both "top-…") with different columns
func (v *Validator) checkPositionConflicts(result *models.ValidationResult, layout *models.LayoutConfig) {
	positions := []struct {
		name string
		pos  string
	}{
		{"title", layout.TitlePosition},
		{"price", layout.PricePosition},
		{"logo", layout.LogoPosition},
	}

	sameRow := func(p1, p2 string) bool {
		parts1 := strings.Split(p1, "-")
		parts2 := strings.Split(p2, "-")
		return len(parts1) == 2 && len(parts2) == 2 && parts1[0] == parts2[0]
	}

	for i, a := range positions {
		for _, b := range positions[i+1:] {
			if a.pos == b.pos {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("Position conflict: %s and %s both at %s", a.name, b.name, a.pos))
			} else if sameRow(a.pos, b.pos) {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("Adjacent elements may overlap: %s (%s) and %s (%s)", a.name, a.pos, b.name, b.pos))
			}
		}
	}
}
