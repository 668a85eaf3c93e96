package moodboard

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFontSize is the point size text notes are rendered at.
const DefaultFontSize = 18

// Text note padding around the glyphs, in board units.
const (
	TextPaddingX = 6
	TextPaddingY = 2
)

// TextMeasurer returns the box a text note needs to show text.
type TextMeasurer interface {
	Measure(text string) (width, height float64)
}

// TextMeasurerFunc adapts a function to TextMeasurer.
type TextMeasurerFunc func(text string) (width, height float64)

// Measure calls f(text).
func (f TextMeasurerFunc) Measure(text string) (float64, float64) { return f(text) }

// NewGoRegularFace parses the bundled Go Regular font at the given size.
func NewGoRegularFace(size float64) (font.Face, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// FontMeasurer measures text with a font face, the way a note is laid out on
// screen: one line per newline, padded, rounded up and never below
// MinItemSize.
type FontMeasurer struct {
	mu   sync.Mutex
	face font.Face
}

// NewFontMeasurer wraps face. Faces are not safe for concurrent use, so the
// measurer serializes access.
func NewFontMeasurer(face font.Face) *FontMeasurer {
	return &FontMeasurer{face: face}
}

// NewDefaultMeasurer returns a measurer using Go Regular at DefaultFontSize.
func NewDefaultMeasurer() (*FontMeasurer, error) {
	face, err := NewGoRegularFace(DefaultFontSize)
	if err != nil {
		return nil, err
	}
	return NewFontMeasurer(face), nil
}

// Face returns the measured face so renderers can draw with the same metrics.
func (m *FontMeasurer) Face() font.Face { return m.face }

// Measure implements TextMeasurer.
func (m *FontMeasurer) Measure(text string) (width, height float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lines := strings.Split(text, "\n")
	var widest float64
	for _, line := range lines {
		if w := float64(font.MeasureString(m.face, line)) / 64; w > widest {
			widest = w
		}
	}
	lineHeight := float64(m.face.Metrics().Height) / 64

	width = math.Ceil(widest + 2*TextPaddingX)
	height = math.Ceil(lineHeight*float64(len(lines)) + 2*TextPaddingY)
	return atLeast(width, MinItemSize), atLeast(height, MinItemSize)
}

// CommitText builds the UpdateText action for a finished edit. Blank input is
// replaced by DefaultText before measuring so the box fits what is shown.
func CommitText(m TextMeasurer, id, raw string) UpdateText {
	text := raw
	if strings.TrimSpace(text) == "" {
		text = DefaultText
	}
	w, h := m.Measure(text)
	return UpdateText{ID: id, Text: text, Width: w, Height: h}
}
