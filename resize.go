package moodboard

import "math"

// ResizeController resizes one item from its bottom-right handle. The
// top-left corner stays put; the reducer clamps the result to the board.
type ResizeController struct {
	itemID   string
	d        Dispatcher
	scale    ScaleSource
	capturer PointerCapturer

	g              gesture
	startW, startH float64
}

// NewResizeController returns an idle controller for itemID. A nil scale
// means the board is shown at 100%.
func NewResizeController(itemID string, d Dispatcher, scale ScaleSource) *ResizeController {
	return &ResizeController{itemID: itemID, d: d, scale: scale}
}

// SetCapturer sets the object asked to capture the pointer while resizing.
func (c *ResizeController) SetCapturer(pc PointerCapturer) { c.capturer = pc }

// ItemID returns the id of the resized item.
func (c *ResizeController) ItemID() string { return c.itemID }

// State returns the current gesture state.
func (c *ResizeController) State() GestureState { return c.g.state }

// PointerID returns the pointer owning the running resize.
func (c *ResizeController) PointerID() int { return c.g.pointerID }

// PointerDown starts a resize from the item's current size. The event's
// propagation is stopped so the press does not also select or drag the item.
func (c *ResizeController) PointerDown(e *PointerEvent, width, height float64) bool {
	if !c.g.begin(e) {
		return false
	}
	e.StopPropagation()
	c.startW, c.startH = width, height
	if c.capturer != nil {
		c.capturer.CapturePointer(e.PointerID, c)
	}
	return true
}

// PointerMove dispatches ResizeItem to the start size plus the scaled delta.
// With Shift held both dimensions follow the delta of the dominant axis.
func (c *ResizeController) PointerMove(e *PointerEvent) bool {
	if !c.g.owns(e) {
		return false
	}
	dx, dy := c.g.delta(e, c.scale)
	if e.Modifiers.Has(ModShift) {
		d := dx
		if math.Abs(dy) > math.Abs(dx) {
			d = dy
		}
		dx, dy = d, d
	}
	c.d.Dispatch(ResizeItem{ID: c.itemID, Width: c.startW + dx, Height: c.startH + dy})
	return true
}

// PointerUp ends the resize without a final dispatch.
func (c *ResizeController) PointerUp(e *PointerEvent) bool {
	return c.finish(e)
}

// PointerCancel ends the resize like PointerUp.
func (c *ResizeController) PointerCancel(e *PointerEvent) bool {
	return c.finish(e)
}

func (c *ResizeController) finish(e *PointerEvent) bool {
	if !c.g.owns(e) {
		return false
	}
	id := c.g.pointerID
	c.g.end()
	if c.capturer != nil {
		c.capturer.ReleasePointer(id)
	}
	return true
}
