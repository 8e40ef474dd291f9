package compose

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// gradientMaxAlpha is the alpha reached at the bottom edge of the overlay
const gradientMaxAlpha = 220

// GradientAlpha returns the overlay alpha at vertical position y for a
// canvas of the given height with the ramp starting at startY. The ramp is
// linear and monotonic non-decreasing from 0 at startY to the maximum at
// the bottom edge.
func GradientAlpha(y, startY, height int) uint8 {
	if y < startY || height <= startY {
		return 0
	}
	progress := float64(y-startY) / float64(height-startY)
	if progress > 1 {
		progress = 1
	}
	return uint8(gradientMaxAlpha * progress)
}

// paintGradient draws the legibility gradient over the lower portion of dst
func paintGradient(dst draw.Image, startY int) {
	bounds := dst.Bounds()
	for y := startY; y < bounds.Max.Y; y++ {
		alpha := GradientAlpha(y, startY, bounds.Max.Y)
		row := image.Rect(bounds.Min.X, y, bounds.Max.X, y+1)
		draw.Draw(dst, row, &image.Uniform{color.NRGBA{A: alpha}}, image.Point{}, draw.Over)
	}
}

// fillRoundedRect paints a rounded rectangle using per-row spans; corner
// coverage follows the circle equation so the result is deterministic.
func fillRoundedRect(dst draw.Image, r image.Rectangle, radius int, c color.NRGBA) {
	if radius < 0 {
		radius = 0
	}
	maxRadius := min(r.Dx(), r.Dy()) / 2
	if radius > maxRadius {
		radius = maxRadius
	}

	src := &image.Uniform{c}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		inset := 0
		if dy := y - r.Min.Y; dy < radius {
			d := float64(radius - dy)
			inset = radius - int(math.Sqrt(float64(radius)*float64(radius)-d*d))
		} else if dy := r.Max.Y - 1 - y; dy < radius {
			d := float64(radius - dy)
			inset = radius - int(math.Sqrt(float64(radius)*float64(radius)-d*d))
		}
		row := image.Rect(r.Min.X+inset, y, r.Max.X-inset, y+1)
		draw.Draw(dst, row, src, image.Point{}, draw.Over)
	}
}

// scaleImage resizes src into a new image of the given dimensions using
// Catmull-Rom resampling
func scaleImage(src image.Image, width, height int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}

// textWidth measures the horizontal advance of s in the given face
func textWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// drawText renders s with its top-left corner at (x, y)
func drawText(dst draw.Image, face font.Face, x, y int, s string, c color.NRGBA) {
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  &image.Uniform{c},
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	drawer.DrawString(s)
}

// lineHeight returns the vertical extent of a line in the given face
func lineHeight(face font.Face) int {
	m := face.Metrics()
	return (m.Ascent + m.Descent).Ceil()
}
