package moodboard

import (
	"image/color"
	"strconv"
	"strings"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorNeutral is used wherever a color block's hex cannot be parsed.
var ColorNeutral = Color{0.8, 0.8, 0.8, 1}

// RGBA converts c to a straight-alpha color.NRGBA.
func (c Color) RGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(Clamp(c.R, 0, 1)*255 + 0.5),
		G: uint8(Clamp(c.G, 0, 1)*255 + 0.5),
		B: uint8(Clamp(c.B, 0, 1)*255 + 0.5),
		A: uint8(Clamp(c.A, 0, 1)*255 + 0.5),
	}
}

// ParseHexColor parses "#RGB", "#RGBA", "#RRGGBB" or "#RRGGBBAA" (the leading
// '#' is optional). ok is false for anything else; the reducer stores hex
// strings unvalidated, so renderers must handle that case.
func ParseHexColor(hex string) (c Color, ok bool) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	switch len(s) {
	case 3, 4:
		var b strings.Builder
		for _, r := range s {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		s = b.String()
	case 6, 8:
	default:
		return Color{}, false
	}
	if len(s) == 6 {
		s += "ff"
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, true
}

// Vec2 is a 2D vector used for positions, offsets and deltas.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Within reports whether r lies entirely inside bounds.
func (r Rect) Within(bounds Rect) bool {
	return r.X >= bounds.X && r.Y >= bounds.Y &&
		r.X+r.Width <= bounds.X+bounds.Width &&
		r.Y+r.Height <= bounds.Y+bounds.Height
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button, also every touch
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Has reports whether all bits of mod are set.
func (m KeyModifiers) Has(mod KeyModifiers) bool {
	return m&mod == mod
}

// GestureState is the phase of a drag or resize controller.
type GestureState uint8

const (
	GestureIdle   GestureState = iota // no pointer captured
	GestureActive                     // a pointer is captured and moves are dispatched
)

func (s GestureState) String() string {
	if s == GestureActive {
		return "active"
	}
	return "idle"
}
