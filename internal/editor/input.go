package editor

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/moodboard"
)

// pointerState tracks one pointer slot between frames so presses, moves and
// releases can be told apart.
type pointerState struct {
	down         bool
	button       moodboard.MouseButton
	lastX, lastY float64
}

// touchSlots maps Ebitengine touch ids onto pointer slots 1-9. Slot 0 is the
// mouse.
type touchSlots struct {
	used [moodboard.MaxPointers]bool
	ids  [moodboard.MaxPointers]ebiten.TouchID
	buf  []ebiten.TouchID
}

// slot returns the slot of tid, allocating one when needed, or -1 when every
// slot is taken.
func (t *touchSlots) slot(tid ebiten.TouchID) int {
	for i := 1; i < moodboard.MaxPointers; i++ {
		if t.used[i] && t.ids[i] == tid {
			return i
		}
	}
	for i := 1; i < moodboard.MaxPointers; i++ {
		if !t.used[i] {
			t.used[i] = true
			t.ids[i] = tid
			return i
		}
	}
	return -1
}

func (t *touchSlots) free(slot int) {
	t.used[slot] = false
	t.ids[slot] = 0
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() moodboard.KeyModifiers {
	var mods moodboard.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= moodboard.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= moodboard.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= moodboard.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= moodboard.ModMeta
	}
	return mods
}

// shortcutMod reports whether the platform shortcut modifier is held.
func shortcutMod(mods moodboard.KeyModifiers) bool {
	return mods.Has(moodboard.ModCtrl) || mods.Has(moodboard.ModMeta)
}

// processPointers feeds the mouse and every touch into the router.
func (e *Editor) processPointers(mods moodboard.KeyModifiers) {
	if e.router.ProcessInjected() {
		return
	}

	mx, my := ebiten.CursorPosition()
	var pressed bool
	button := moodboard.MouseButtonLeft
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		pressed = true
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		pressed, button = true, moodboard.MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		pressed, button = true, moodboard.MouseButtonMiddle
	}
	e.processPointer(0, float64(mx), float64(my), pressed, button, mods)

	e.touches.buf = ebiten.AppendTouchIDs(e.touches.buf[:0])
	var active [moodboard.MaxPointers]bool
	for _, tid := range e.touches.buf {
		slot := e.touches.slot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		e.processPointer(slot, float64(tx), float64(ty), true, moodboard.MouseButtonLeft, mods)
	}
	for i := 1; i < moodboard.MaxPointers; i++ {
		if e.touches.used[i] && !active[i] {
			ps := &e.pointers[i]
			if ps.down {
				e.processPointer(i, ps.lastX, ps.lastY, false, moodboard.MouseButtonLeft, mods)
			}
			e.touches.free(i)
		}
	}
}

// processPointer runs the press/move/release state machine of one slot.
func (e *Editor) processPointer(id int, x, y float64, pressed bool, button moodboard.MouseButton, mods moodboard.KeyModifiers) {
	ps := &e.pointers[id]
	ev := &moodboard.PointerEvent{PointerID: id, X: x, Y: y, Modifiers: mods}

	switch {
	case pressed && !ps.down:
		ps.down, ps.button = true, button
		ev.Button = button
		if e.editing != nil && button == moodboard.MouseButtonLeft {
			e.commitEdit()
		}
		e.router.PointerDown(ev)
	case pressed && ps.down:
		if x != ps.lastX || y != ps.lastY {
			ev.Button = ps.button
			e.router.PointerMove(ev)
		}
	case !pressed && ps.down:
		ev.Button = ps.button
		e.router.PointerUp(ev)
		ps.down = false
	}
	ps.lastX, ps.lastY = x, y
}

// keyBindings maps keys to the keyboard collaborator's keys.
var keyBindings = []struct {
	ebiten ebiten.Key
	key    moodboard.Key
}{
	{ebiten.KeyArrowLeft, moodboard.KeyArrowLeft},
	{ebiten.KeyArrowRight, moodboard.KeyArrowRight},
	{ebiten.KeyArrowUp, moodboard.KeyArrowUp},
	{ebiten.KeyArrowDown, moodboard.KeyArrowDown},
	{ebiten.KeyDelete, moodboard.KeyDelete},
	{ebiten.KeyBackspace, moodboard.KeyBackspace},
}

// processKeys handles board keys and toolbar shortcuts. Text editing keys are
// handled by processEditing.
func (e *Editor) processKeys(mods moodboard.KeyModifiers) {
	if e.editing != nil {
		e.processEditing(mods)
		return
	}

	for _, kb := range keyBindings {
		if inpututil.IsKeyJustPressed(kb.ebiten) || repeating(kb.ebiten) {
			e.keyboard.HandleKey(kb.key, mods, false)
		}
	}

	if shortcutMod(mods) {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyV):
			e.pasteImage()
		case inpututil.IsKeyJustPressed(ebiten.KeyC):
			e.copySelected()
		case inpututil.IsKeyJustPressed(ebiten.KeyE):
			e.export()
		}
		return
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		e.store.Dispatch(moodboard.AddColorItem{})
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		e.store.Dispatch(moodboard.AddTextItem{})
	case inpututil.IsKeyJustPressed(ebiten.Key3):
		e.store.Dispatch(moodboard.AddImageItem{Src: moodboard.DefaultImageSrc})
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		e.cycleColor()
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		e.beginEdit()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		e.store.Dispatch(moodboard.SelectItem{})
	}
}

// repeating reports key auto-repeat after a short delay, so holding an arrow
// keeps nudging.
func repeating(k ebiten.Key) bool {
	const delay, interval = 24, 3
	d := inpututil.KeyPressDuration(k)
	return d > delay && (d-delay)%interval == 0
}

func justPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }
