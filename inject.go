package moodboard

type injectPhase uint8

const (
	injectPress injectPhase = iota
	injectMove
	injectRelease
	injectCancel
)

// syntheticPointerEvent is a queued pointer event. Screen coordinates are
// used, exactly like real input, and converted by the router's mapper.
type syntheticPointerEvent struct {
	phase     injectPhase
	pointerID int
	x, y      float64
	mods      KeyModifiers
}

func (r *Router) inject(ev syntheticPointerEvent) {
	r.injectQueue = append(r.injectQueue, ev)
}

// InjectPress queues a primary-button press of pointerID at screen (x, y).
// Queued events are consumed by ProcessInjected, one per call.
func (r *Router) InjectPress(pointerID int, x, y float64) {
	r.inject(syntheticPointerEvent{phase: injectPress, pointerID: pointerID, x: x, y: y})
}

// InjectMove queues a move of pointerID with the button held.
func (r *Router) InjectMove(pointerID int, x, y float64) {
	r.inject(syntheticPointerEvent{phase: injectMove, pointerID: pointerID, x: x, y: y})
}

// InjectMoveWith queues a move carrying modifier keys, e.g. ModShift for a
// proportional resize.
func (r *Router) InjectMoveWith(pointerID int, x, y float64, mods KeyModifiers) {
	r.inject(syntheticPointerEvent{phase: injectMove, pointerID: pointerID, x: x, y: y, mods: mods})
}

// InjectRelease queues a release of pointerID.
func (r *Router) InjectRelease(pointerID int, x, y float64) {
	r.inject(syntheticPointerEvent{phase: injectRelease, pointerID: pointerID, x: x, y: y})
}

// InjectCancel queues a cancel of pointerID.
func (r *Router) InjectCancel(pointerID int) {
	r.inject(syntheticPointerEvent{phase: injectCancel, pointerID: pointerID})
}

// InjectClick queues a press followed by a release at the same position.
func (r *Router) InjectClick(pointerID int, x, y float64) {
	r.InjectPress(pointerID, x, y)
	r.InjectRelease(pointerID, x, y)
}

// InjectDrag queues a full drag of frames+1 events: a press at (fromX, fromY),
// frames-1 moves interpolated linearly and ending at (toX, toY), and a release
// there. frames below 2 count as 2.
func (r *Router) InjectDrag(pointerID int, fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	r.InjectPress(pointerID, fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		r.InjectMove(pointerID, fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	r.InjectMove(pointerID, toX, toY)
	r.InjectRelease(pointerID, toX, toY)
}

// Pending returns the number of queued synthetic events.
func (r *Router) Pending() int {
	return len(r.injectQueue)
}

// ProcessInjected delivers the oldest queued event. It reports whether an
// event was consumed; hosts skip real input for the frame when it was.
func (r *Router) ProcessInjected() bool {
	if len(r.injectQueue) == 0 {
		return false
	}
	ev := r.injectQueue[0]
	copy(r.injectQueue, r.injectQueue[1:])
	r.injectQueue = r.injectQueue[:len(r.injectQueue)-1]

	e := &PointerEvent{PointerID: ev.pointerID, Button: MouseButtonLeft, X: ev.x, Y: ev.y, Modifiers: ev.mods}
	switch ev.phase {
	case injectPress:
		r.PointerDown(e)
	case injectMove:
		r.PointerMove(e)
	case injectRelease:
		r.PointerUp(e)
	case injectCancel:
		r.PointerCancel(e)
	}
	return true
}

// FlushInjected delivers every queued event in order.
func (r *Router) FlushInjected() {
	for r.ProcessInjected() {
	}
}
