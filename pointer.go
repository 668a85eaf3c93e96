package moodboard

// MaxPointers is the number of pointer slots a host tracks: slot 0 for the
// mouse and slots 1-9 for touches.
const MaxPointers = 10

// PointerEvent carries one pointer sample in screen coordinates.
type PointerEvent struct {
	PointerID int
	Button    MouseButton
	X, Y      float64
	Modifiers KeyModifiers

	stopped bool
}

// StopPropagation prevents the router from delivering the event to anything
// underneath the current receiver. The resize handle uses it so a press on
// the handle does not also start a drag of the item.
func (e *PointerEvent) StopPropagation() { e.stopped = true }

// PropagationStopped reports whether StopPropagation was called.
func (e *PointerEvent) PropagationStopped() bool { return e.stopped }

// PointerTarget receives the events of a captured pointer. Each method
// reports whether the event was consumed; events for other pointers return
// false.
type PointerTarget interface {
	PointerMove(e *PointerEvent) bool
	PointerUp(e *PointerEvent) bool
	PointerCancel(e *PointerEvent) bool
}

// PointerCapturer routes every later event of a pointer to one target until
// the capture is released, even when the pointer leaves the target's bounds.
type PointerCapturer interface {
	CapturePointer(pointerID int, t PointerTarget)
	ReleasePointer(pointerID int)
}

// gesture is the state shared by the drag and resize controllers: which
// pointer owns the gesture and where it started on screen.
type gesture struct {
	state          GestureState
	pointerID      int
	startX, startY float64
}

// begin enters the active state for e. It fails when a gesture is already
// running or the button is not the primary one.
func (g *gesture) begin(e *PointerEvent) bool {
	if g.state == GestureActive || e.Button != MouseButtonLeft {
		return false
	}
	g.state = GestureActive
	g.pointerID = e.PointerID
	g.startX, g.startY = e.X, e.Y
	return true
}

// owns reports whether e belongs to the running gesture.
func (g *gesture) owns(e *PointerEvent) bool {
	return g.state == GestureActive && e.PointerID == g.pointerID
}

// delta returns the screen delta from the gesture start in board units.
func (g *gesture) delta(e *PointerEvent, scale ScaleSource) (dx, dy float64) {
	s := 1.0
	if scale != nil {
		s = scale.Scale()
	}
	if !(s > 0) {
		s = MinViewportScale
	}
	return (e.X - g.startX) / s, (e.Y - g.startY) / s
}

func (g *gesture) end() {
	g.state = GestureIdle
	g.pointerID = 0
}
