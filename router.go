package moodboard

// HandleSize is the on-screen edge length of the resize handle drawn at the
// bottom-right corner of the selected item.
const HandleSize = 12

// BoardStore is the state owner a Router drives. *Store implements it.
type BoardStore interface {
	Dispatcher
	StateReader
}

// BoardMapper converts screen positions to board positions. *Viewport
// implements it.
type BoardMapper interface {
	ScaleSource
	ScreenToBoard(sx, sy float64) (bx, by float64)
}

// Resizable reports whether item has a resize handle. Text boxes follow their
// content and are never resized by hand.
func Resizable(item Item) bool {
	switch item.(type) {
	case ColorItem, ImageItem:
		return true
	}
	return false
}

// Router turns raw pointer samples into gestures. It owns one drag and one
// resize controller per item and a capture table keyed by pointer id, so
// several pointers can run independent gestures at once.
//
// A press is resolved in this order: the resize handle of the selected item,
// then the topmost item under the pointer, then the empty board (which clears
// the selection). Once a controller captures the pointer, every later event
// of that pointer goes to it alone.
type Router struct {
	store  BoardStore
	mapper BoardMapper

	// RaiseOnSelect brings an item to the front when a press selects it.
	RaiseOnSelect bool

	drags    map[string]*DragController
	resizes  map[string]*ResizeController
	captured map[int]PointerTarget

	injectQueue []syntheticPointerEvent
}

// NewRouter creates a router dispatching to store. A nil mapper treats screen
// and board coordinates as identical.
func NewRouter(store BoardStore, mapper BoardMapper) *Router {
	if mapper == nil {
		mapper = identityMapper{}
	}
	return &Router{
		store:         store,
		mapper:        mapper,
		RaiseOnSelect: true,
		drags:         make(map[string]*DragController),
		resizes:       make(map[string]*ResizeController),
		captured:      make(map[int]PointerTarget),
	}
}

// CapturePointer implements PointerCapturer.
func (r *Router) CapturePointer(pointerID int, t PointerTarget) {
	r.captured[pointerID] = t
}

// ReleasePointer implements PointerCapturer.
func (r *Router) ReleasePointer(pointerID int) {
	delete(r.captured, pointerID)
}

// Captured returns the target holding pointerID, or nil.
func (r *Router) Captured(pointerID int) PointerTarget {
	return r.captured[pointerID]
}

// HandleRect returns the resize handle of item in board coordinates. Its
// screen size stays HandleSize at every scale.
func (r *Router) HandleRect(item Item) Rect {
	hs := HandleSize / r.scale()
	b := ItemBounds(item)
	return Rect{X: b.X + b.Width - hs, Y: b.Y + b.Height - hs, Width: hs, Height: hs}
}

// HitTest returns the topmost item containing the board point, or nil.
func (r *Router) HitTest(bx, by float64) Item {
	items := r.store.State().Board.ItemsByZ()
	for i := len(items) - 1; i >= 0; i-- {
		if ItemBounds(items[i]).Contains(bx, by) {
			return items[i]
		}
	}
	return nil
}

// PointerDown handles a press. It reports whether a gesture started.
func (r *Router) PointerDown(e *PointerEvent) bool {
	if _, busy := r.captured[e.PointerID]; busy {
		return false
	}
	bx, by := r.mapper.ScreenToBoard(e.X, e.Y)
	state := r.store.State()

	if sel, ok := state.Selected(); ok && Resizable(sel) && r.HandleRect(sel).Contains(bx, by) {
		w, h := ItemSize(sel)
		started := r.resizer(sel.Base().ID).PointerDown(e, w, h)
		if e.PropagationStopped() {
			return started
		}
	}

	hit := r.HitTest(bx, by)
	if hit == nil {
		if e.Button == MouseButtonLeft {
			r.store.Dispatch(SelectItem{})
		}
		return false
	}

	id := hit.Base().ID
	r.store.Dispatch(SelectItem{ID: id})
	if r.RaiseOnSelect && !onTop(r.store.State().Board, id) {
		r.store.Dispatch(BringToFront{ID: id})
	}
	// Read the position back; selection never moves an item but the store
	// may have been changed by a subscriber.
	item, ok := r.store.State().Board.Item(id)
	if !ok {
		return false
	}
	b := item.Base()
	return r.dragger(id).PointerDown(e, b.X, b.Y)
}

// PointerMove forwards a move to the pointer's captor.
func (r *Router) PointerMove(e *PointerEvent) bool {
	t := r.captured[e.PointerID]
	if t == nil {
		return false
	}
	return t.PointerMove(e)
}

// PointerUp forwards a release to the pointer's captor and prunes
// controllers of deleted items.
func (r *Router) PointerUp(e *PointerEvent) bool {
	t := r.captured[e.PointerID]
	if t == nil {
		return false
	}
	handled := t.PointerUp(e)
	r.Prune()
	return handled
}

// PointerCancel forwards a cancel to the pointer's captor.
func (r *Router) PointerCancel(e *PointerEvent) bool {
	t := r.captured[e.PointerID]
	if t == nil {
		return false
	}
	handled := t.PointerCancel(e)
	r.Prune()
	return handled
}

// CancelAll cancels every running gesture, e.g. when the window loses focus.
func (r *Router) CancelAll() {
	for id, t := range r.captured {
		t.PointerCancel(&PointerEvent{PointerID: id})
	}
	r.Prune()
}

// Active returns the number of running gestures.
func (r *Router) Active() int {
	return len(r.captured)
}

// Prune drops idle controllers whose item is no longer on the board.
func (r *Router) Prune() {
	board := r.store.State().Board
	for id, c := range r.drags {
		if c.State() == GestureIdle && board.IndexOf(id) < 0 {
			delete(r.drags, id)
		}
	}
	for id, c := range r.resizes {
		if c.State() == GestureIdle && board.IndexOf(id) < 0 {
			delete(r.resizes, id)
		}
	}
}

func (r *Router) dragger(id string) *DragController {
	c, ok := r.drags[id]
	if !ok {
		c = NewDragController(id, r.store, r.mapper)
		c.SetCapturer(r)
		r.drags[id] = c
	}
	return c
}

func (r *Router) resizer(id string) *ResizeController {
	c, ok := r.resizes[id]
	if !ok {
		c = NewResizeController(id, r.store, r.mapper)
		c.SetCapturer(r)
		r.resizes[id] = c
	}
	return c
}

func (r *Router) scale() float64 {
	s := r.mapper.Scale()
	if !(s > 0) {
		return MinViewportScale
	}
	return s
}

// onTop reports whether id alone holds the highest zIndex.
func onTop(b Board, id string) bool {
	it, ok := b.Item(id)
	if !ok {
		return false
	}
	z := it.Base().ZIndex
	for _, other := range b.Items {
		if ob := other.Base(); ob.ID != id && ob.ZIndex >= z {
			return false
		}
	}
	return true
}

type identityMapper struct{}

func (identityMapper) Scale() float64 { return 1 }

func (identityMapper) ScreenToBoard(sx, sy float64) (float64, float64) { return sx, sy }
