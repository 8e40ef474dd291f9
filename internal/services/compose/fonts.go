package compose

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// FontCache resolves typefaces by pixel size so repeated compositions do
// not re-parse font resources. Faces are immutable after insertion;
// writes are synchronized, reads share the cached instance.
type FontCache struct {
	mu     sync.Mutex
	source *opentype.Font
	faces  map[int]font.Face
}

// NewFontCache parses the embedded bold typeface once and returns an empty
// cache keyed by resolved pixel size.
func NewFontCache() (*FontCache, error) {
	src, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded font: %w", err)
	}
	return &FontCache{
		source: src,
		faces:  make(map[int]font.Face),
	}, nil
}

// Face returns a cached face for the given base point size scaled by
// baseScale. Sizes resolve to whole pixels; a floor of 1 guards tiny
// canvases.
func (fc *FontCache) Face(sizePt int, baseScale float64) font.Face {
	scaled := int(float64(sizePt) * baseScale)
	if scaled < 1 {
		scaled = 1
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()

	if face, ok := fc.faces[scaled]; ok {
		return face
	}

	face, err := opentype.NewFace(fc.source, &opentype.FaceOptions{
		Size:    float64(scaled),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		// Parse succeeded at construction, so face creation only fails on
		// degenerate options; fall back to the smallest cached face.
		for _, f := range fc.faces {
			return f
		}
		return nil
	}

	fc.faces[scaled] = face
	return face
}

// Len returns how many sizes have been resolved
func (fc *FontCache) Len() int {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return len(fc.faces)
}
