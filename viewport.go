package moodboard

import (
	"math"
	"sync"
)

// MinViewportScale is the scale used when the observed container has no
// usable width. It keeps Scale strictly positive so deltas can always be
// divided by it.
const MinViewportScale = 0.05

// ScaleSource provides the current screen-to-board scale factor.
type ScaleSource interface {
	Scale() float64
}

// Viewport fits a fixed-size board into an elastic container. The board is
// shown at Scale() = min(1, availableWidth/boardWidth): it shrinks to fit but
// never grows past 100%.
//
// The host calls Observe whenever the container is resized. Pointer
// controllers read Scale to convert screen deltas into board deltas.
type Viewport struct {
	mu sync.RWMutex

	boardW, boardH float64
	available      float64
	scale          float64

	// origin is the screen position of the board's top-left corner.
	origin Vec2

	handlers []scaleHandler
	nextID   uint32
}

type scaleHandler struct {
	id uint32
	fn func(scale float64)
}

// NewViewport creates a viewport for a board of the given size, shown at
// scale 1 until the first Observe.
func NewViewport(boardW, boardH float64) *Viewport {
	return &Viewport{boardW: boardW, boardH: boardH, scale: 1}
}

// Observe records the available container width and recomputes the scale.
// It returns the new scale. Scale-change callbacks fire only when the value
// actually changes.
func (v *Viewport) Observe(availableWidth float64) float64 {
	v.mu.Lock()
	v.available = availableWidth
	scale := fitScale(availableWidth, v.boardW)
	changed := scale != v.scale
	v.scale = scale
	handlers := append([]scaleHandler(nil), v.handlers...)
	v.mu.Unlock()

	if changed {
		for _, h := range handlers {
			h.fn(scale)
		}
	}
	return scale
}

// fitScale returns min(1, available/boardW), falling back to
// MinViewportScale for unusable inputs so the result is always in (0, 1].
func fitScale(available, boardW float64) float64 {
	if boardW <= 0 || math.IsNaN(boardW) || math.IsInf(boardW, 0) {
		return 1
	}
	if available <= 0 || math.IsNaN(available) {
		return MinViewportScale
	}
	return Clamp(available/boardW, MinViewportScale, 1)
}

// SetBoardSize changes the board dimensions and recomputes the scale against
// the last observed width.
func (v *Viewport) SetBoardSize(width, height float64) float64 {
	v.mu.Lock()
	v.boardW, v.boardH = width, height
	available := v.available
	observed := available != 0
	v.mu.Unlock()
	if !observed {
		return v.Scale()
	}
	return v.Observe(available)
}

// Scale returns the current scale factor, always in (0, 1].
func (v *Viewport) Scale() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.scale
}

// SetOrigin sets the screen position of the board's top-left corner. Hosts
// that center the board call it after every Observe.
func (v *Viewport) SetOrigin(x, y float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.origin = Vec2{x, y}
}

// Origin returns the screen position of the board's top-left corner.
func (v *Viewport) Origin() Vec2 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.origin
}

// DisplaySize returns the on-screen size of the scaled board.
func (v *Viewport) DisplaySize() (width, height float64) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.boardW * v.scale, v.boardH * v.scale
}

// DeltaToBoard converts a screen-space delta into board units.
func (v *Viewport) DeltaToBoard(dx, dy float64) (float64, float64) {
	s := v.Scale()
	return dx / s, dy / s
}

// ScreenToBoard converts screen coordinates to board coordinates.
func (v *Viewport) ScreenToBoard(sx, sy float64) (bx, by float64) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return (sx - v.origin.X) / v.scale, (sy - v.origin.Y) / v.scale
}

// BoardToScreen converts board coordinates to screen coordinates.
func (v *Viewport) BoardToScreen(bx, by float64) (sx, sy float64) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.origin.X + bx*v.scale, v.origin.Y + by*v.scale
}

// VisibleRect returns the board rectangle in screen space.
func (v *Viewport) VisibleRect() Rect {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return Rect{X: v.origin.X, Y: v.origin.Y, Width: v.boardW * v.scale, Height: v.boardH * v.scale}
}

// OnScaleChange registers fn to run whenever Observe produces a new scale.
func (v *Viewport) OnScaleChange(fn func(scale float64)) CallbackHandle {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.nextID++
	id := v.nextID
	v.handlers = append(v.handlers, scaleHandler{id: id, fn: fn})
	return CallbackHandle{id: id, remove: v.removeHandler}
}

func (v *Viewport) removeHandler(id uint32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i := range v.handlers {
		if v.handlers[i].id == id {
			copy(v.handlers[i:], v.handlers[i+1:])
			v.handlers[len(v.handlers)-1] = scaleHandler{}
			v.handlers = v.handlers[:len(v.handlers)-1]
			return
		}
	}
}

// FixedScale is a ScaleSource with a constant value. Values outside (0, 1]
// are treated as 1.
type FixedScale float64

// Scale returns s, or 1 when s is not a usable scale.
func (s FixedScale) Scale() float64 {
	if s <= 0 || s > 1 || math.IsNaN(float64(s)) {
		return 1
	}
	return float64(s)
}
