package compose

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"strings"
	"unicode"

	_ "image/jpeg"

	"github.com/ternarybob/arbor"
	"golang.org/x/image/font"

	"github.com/rahul7697762/Video-and-graphics-Ai-agent-website/internal/models"
)

// referenceWidth is the canvas width all sizes and paddings are tuned
// against; everything scales linearly with actual width relative to it.
const referenceWidth = 1080.0

// headlineSplitThreshold is the word count above which a headline without a
// pipe separator is bisected into two lines
const headlineSplitThreshold = 5

// emphasisWords are rendered in the accent color when they appear inside a
// headline word (substring match, headline is uppercased first)
var emphasisWords = []string{"READY", "MOVE", "AVAILABLE", "IMMEDIATE", "NEW", "LAUNCH", "FLATS", "LUXURY"}

// Engine deterministically composites a content plan onto a raster
// background: gradient overlay, logo plate, headline, CTA pill, separator,
// subtext, and feature lines. Pure with respect to the network; the only
// I/O is reading the logo asset.
type Engine struct {
	fonts    *FontCache
	logoPath string
	logger   arbor.ILogger
}

// NewEngine creates a composition engine around a shared font cache
func NewEngine(fonts *FontCache, logoPath string, logger arbor.ILogger) *Engine {
	return &Engine{
		fonts:    fonts,
		logoPath: logoPath,
		logger:   logger,
	}
}

// SplitHeadline breaks a headline into render lines: pipe separators win,
// otherwise word counts above the threshold bisect at the midpoint, else a
// single line.
func SplitHeadline(headline string) []string {
	if strings.Contains(headline, "|") {
		parts := strings.Split(headline, "|")
		lines := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				lines = append(lines, trimmed)
			}
		}
		if len(lines) > 0 {
			return lines
		}
		return []string{headline}
	}

	words := strings.Fields(headline)
	if len(words) > headlineSplitThreshold {
		mid := len(words) / 2
		return []string{strings.Join(words[:mid], " "), strings.Join(words[mid:], " ")}
	}
	return []string{headline}
}

// hasDigit reports whether a word carries a numeric detail
func hasDigit(word string) bool {
	for _, r := range word {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// isEmphasized reports whether a headline word should use the accent color
func isEmphasized(word string) bool {
	for _, kw := range emphasisWords {
		if strings.Contains(word, kw) {
			return true
		}
	}
	return false
}

// Compose renders the final poster. The background is painted full-bleed,
// the gradient guarantees text legibility, and all overlay layers land via
// standard alpha compositing before lossless PNG export.
func (e *Engine) Compose(background []byte, plan *models.ContentPlan) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(background))
	if err != nil {
		return nil, fmt.Errorf("failed to decode background image: %w", err)
	}

	w := src.Bounds().Dx()
	h := src.Bounds().Dy()
	baseScale := float64(w) / referenceWidth

	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	bg := scaleImage(src, w, h)
	draw.Draw(canvas, canvas.Bounds(), bg, image.Point{}, draw.Src)

	// Gradient from 45% height down for text legibility over busy imagery
	paintGradient(canvas, int(float64(h)*0.45))

	scale := func(v float64) int { return int(v * baseScale) }
	padding := scale(30)

	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	headlineColor := white // white text on the dark gradient
	highlightColor := ParseHexOr(plan.Layout.HighlightColor, color.NRGBA{R: 255, G: 215, B: 0, A: 255})
	accentColor := ParseHexOr(plan.Layout.AccentColor, color.NRGBA{R: 227, G: 24, B: 55, A: 255})
	contactBg := ParseHexOr(plan.Layout.ContactBgColor, color.NRGBA{R: 227, G: 24, B: 55, A: 255})

	fontLogo := e.fonts.Face(38, baseScale)
	fontHeadlineLarge := e.fonts.Face(70, baseScale)
	fontHeadlineMed := e.fonts.Face(50, baseScale)
	fontCTA := e.fonts.Face(40, baseScale)
	fontDetails := e.fonts.Face(38, baseScale)
	fontFeatures := e.fonts.Face(40, baseScale)

	e.drawLogo(canvas, plan, padding, baseScale, fontLogo, accentColor)

	// Headline starts just inside the text area (bottom 40% of canvas)
	textAreaStart := int(float64(h) * 0.60)
	textAreaHeight := h - textAreaStart
	currentY := textAreaStart + int(float64(textAreaHeight)*0.08)

	headline := strings.ToUpper(plan.Copy.Headline)
	if headline == "" {
		headline = "READY TO MOVE FLATS AVAILABLE"
	}

	shadowOffset := scale(3)
	for i, line := range SplitHeadline(headline) {
		face := fontHeadlineLarge
		if i > 0 {
			face = fontHeadlineMed
		}
		lineW := textWidth(face, line)
		x := (w - lineW) / 2

		drawText(canvas, face, x+shadowOffset, currentY+shadowOffset, line, color.NRGBA{A: 40})

		wordX := x
		for _, word := range strings.Fields(line) {
			c := headlineColor
			if isEmphasized(word) {
				c = accentColor
			}
			drawText(canvas, face, wordX, currentY, word, c)
			wordX += textWidth(face, word+" ")
		}

		currentY += lineHeight(face) + scale(15)
	}

	// CTA pill below the headline
	ctaY := currentY + scale(35)
	cta := plan.Copy.CTA
	if cta == "" {
		cta = "Contact Us"
	}
	ctaW := textWidth(fontCTA, cta)
	ctaH := lineHeight(fontCTA)
	ctaX := (w - ctaW) / 2

	pill := image.Rect(
		ctaX-scale(18),
		ctaY-scale(6),
		ctaX+ctaW+scale(18),
		ctaY+ctaH+scale(10),
	)
	fillRoundedRect(canvas, pill, scale(10), contactBg)
	drawText(canvas, fontCTA, ctaX, ctaY, cta, white)

	// Decorative separator, then property details
	detailsY := ctaY + ctaH + scale(70)
	separatorY := detailsY - scale(20)
	separatorLen := scale(200)
	separator := image.Rect((w-separatorLen)/2, separatorY, (w+separatorLen)/2, separatorY+scale(3))
	draw.Draw(canvas, separator, &image.Uniform{WithAlpha(highlightColor, 220)}, image.Point{}, draw.Over)

	subtext := strings.ToUpper(plan.Copy.Subtext)
	if subtext == "" {
		subtext = "PREMIUM APARTMENTS"
	}
	subtextW := textWidth(fontDetails, subtext)
	drawText(canvas, fontDetails, (w-subtextW)/2, detailsY, subtext, white)

	// Up to two feature lines; digit-bearing words use the highlight color
	featureY := detailsY + lineHeight(fontDetails) + scale(25)
	for _, featureText := range []string{plan.Copy.FeatureLine1, plan.Copy.FeatureLine2} {
		if featureText == "" {
			continue
		}
		featureText = strings.ToUpper(featureText)
		featureW := textWidth(fontFeatures, featureText)
		wordX := (w - featureW) / 2
		for _, word := range strings.Fields(featureText) {
			c := white
			if hasDigit(word) {
				c = highlightColor
			}
			drawText(canvas, fontFeatures, wordX, featureY, word, c)
			wordX += textWidth(fontFeatures, word+" ")
		}
		featureY += lineHeight(fontFeatures) + scale(20)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode composed design: %w", err)
	}
	return buf.Bytes(), nil
}

// drawLogo anchors the logo to the top-left corner on a semi-opaque rounded
// plate, scaling by width while preserving aspect ratio. Falls back to a
// text badge when no logo asset is available.
func (e *Engine) drawLogo(canvas *image.NRGBA, plan *models.ContentPlan, padding int, baseScale float64, badgeFace font.Face, accent color.NRGBA) {
	scale := func(v float64) int { return int(v * baseScale) }
	logoX, logoY := padding, padding

	logo, err := e.loadLogo()
	if err == nil {
		targetW := scale(220)
		ratio := float64(targetW) / float64(logo.Bounds().Dx())
		targetH := int(float64(logo.Bounds().Dy()) * ratio)
		scaled := scaleImage(logo, targetW, targetH)

		pad := scale(15)
		plate := image.Rect(logoX-pad, logoY-pad, logoX+targetW+pad, logoY+targetH+pad)
		fillRoundedRect(canvas, plate, scale(12), color.NRGBA{R: 255, G: 255, B: 255, A: 245})

		draw.Draw(canvas, image.Rect(logoX, logoY, logoX+targetW, logoY+targetH), scaled, image.Point{}, draw.Over)
		return
	}

	if e.logger != nil {
		e.logger.Debug().Err(err).Str("path", e.logoPath).Msg("Logo asset unavailable, using text badge")
	}

	badge := plan.Copy.BrandName
	if badge == "" {
		badge = "BRAND"
	}
	badge = strings.ToUpper(badge)

	pad := scale(10)
	badgeW := textWidth(badgeFace, badge)
	badgeH := lineHeight(badgeFace)
	plate := image.Rect(logoX-pad, logoY-pad, logoX+badgeW+pad, logoY+badgeH+pad)
	fillRoundedRect(canvas, plate, scale(8), color.NRGBA{R: 255, G: 255, B: 255, A: 230})
	drawText(canvas, badgeFace, logoX, logoY, badge, accent)
}

// loadLogo reads and decodes the configured logo asset
func (e *Engine) loadLogo() (image.Image, error) {
	if e.logoPath == "" {
		return nil, fmt.Errorf("no logo path configured")
	}
	data, err := os.ReadFile(e.logoPath)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode logo: %w", err)
	}
	return img, nil
}
