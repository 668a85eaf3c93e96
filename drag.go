package moodboard

// DragController moves one item while a pointer is held on it. It is a small
// state machine (GestureIdle, GestureActive) owning only its own gesture
// state; the board changes exclusively through MoveItem dispatches.
//
// Every move is computed from the gesture start, never from the previous
// sample, so rounding does not accumulate into drift.
type DragController struct {
	itemID   string
	d        Dispatcher
	scale    ScaleSource
	capturer PointerCapturer

	g                gesture
	originX, originY float64
}

// NewDragController returns an idle controller for itemID. A nil scale means
// the board is shown at 100%.
func NewDragController(itemID string, d Dispatcher, scale ScaleSource) *DragController {
	return &DragController{itemID: itemID, d: d, scale: scale}
}

// SetCapturer sets the object asked to capture the pointer while dragging.
func (c *DragController) SetCapturer(pc PointerCapturer) { c.capturer = pc }

// ItemID returns the id of the dragged item.
func (c *DragController) ItemID() string { return c.itemID }

// State returns the current gesture state.
func (c *DragController) State() GestureState { return c.g.state }

// PointerID returns the pointer owning the running drag. Only meaningful
// while State is GestureActive.
func (c *DragController) PointerID() int { return c.g.pointerID }

// PointerDown starts a drag from the item's current board position. Only the
// primary button starts a drag, and a running drag is never taken over by a
// second pointer. Nothing is dispatched until the first move.
func (c *DragController) PointerDown(e *PointerEvent, itemX, itemY float64) bool {
	if !c.g.begin(e) {
		return false
	}
	c.originX, c.originY = itemX, itemY
	if c.capturer != nil {
		c.capturer.CapturePointer(e.PointerID, c)
	}
	return true
}

// PointerMove dispatches MoveItem to the start position plus the scaled
// delta. Events from other pointers are ignored.
func (c *DragController) PointerMove(e *PointerEvent) bool {
	if !c.g.owns(e) {
		return false
	}
	dx, dy := c.g.delta(e, c.scale)
	c.d.Dispatch(MoveItem{ID: c.itemID, X: c.originX + dx, Y: c.originY + dy})
	return true
}

// PointerUp ends the drag without a final dispatch.
func (c *DragController) PointerUp(e *PointerEvent) bool {
	return c.finish(e)
}

// PointerCancel ends the drag like PointerUp.
func (c *DragController) PointerCancel(e *PointerEvent) bool {
	return c.finish(e)
}

func (c *DragController) finish(e *PointerEvent) bool {
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
