package moodboard

import "math"

// MinItemSize is the smallest width or height an item can be resized or
// re-measured to, in board units.
const MinItemSize = 24

// Clamp restricts value to [min, max]. When min > max (an item wider than the
// board, for example) the result is min: the lower bound always wins, so a
// too-large item is pinned to the board origin instead of flipping past it.
// NaN is treated as min.
func Clamp(value, min, max float64) float64 {
	if max < min {
		return min
	}
	if value < min || math.IsNaN(value) {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ItemSize returns the item's width and height. Every variant carries an
// explicit box, so this is a plain read.
func ItemSize(item Item) (width, height float64) {
	switch it := item.(type) {
	case ColorItem:
		return it.Width, it.Height
	case TextItem:
		return it.Width, it.Height
	case ImageItem:
		return it.Width, it.Height
	default:
		return 0, 0
	}
}

// ItemBounds returns the item's bounding box in board space.
func ItemBounds(item Item) Rect {
	b := item.Base()
	w, h := ItemSize(item)
	return Rect{X: b.X, Y: b.Y, Width: w, Height: h}
}

// clampPosition keeps an item of size (w, h) inside a board of size
// (boardW, boardH).
func clampPosition(x, y, w, h, boardW, boardH float64) (float64, float64) {
	return Clamp(x, 0, boardW-w), Clamp(y, 0, boardH-h)
}

// clampSize rounds a requested size, floors it at MinItemSize and then caps
// it so the far edge stays on the board given the item's fixed top-left
// corner. Near the far edge the board wins over the minimum.
func clampSize(x, y, w, h, boardW, boardH float64) (float64, float64) {
	w = math.Min(atLeast(math.Round(w), MinItemSize), math.Max(boardW-x, 0))
	h = math.Min(atLeast(math.Round(h), MinItemSize), math.Max(boardH-y, 0))
	return w, h
}
