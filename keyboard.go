package moodboard

// Key identifies a key the keyboard collaborator reacts to.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyDelete
	KeyBackspace
)

// Default nudge distances in board units.
const (
	DefaultStep          = 1
	DefaultPrecisionStep = 10
)

// Keyboard translates key presses into the same actions a pointer
// interaction would produce. Arrows nudge the selected item, Delete and
// Backspace remove it.
type Keyboard struct {
	store BoardStore

	// Step is the arrow-key nudge; PrecisionStep is used while Shift is held.
	Step          float64
	PrecisionStep float64
}

// NewKeyboard returns a keyboard with the default steps.
func NewKeyboard(store BoardStore) *Keyboard {
	return &Keyboard{store: store, Step: DefaultStep, PrecisionStep: DefaultPrecisionStep}
}

// HandleKey dispatches the action bound to key and reports whether the key
// was consumed. Nothing happens while a text field has focus or when no
// item is selected.
func (k *Keyboard) HandleKey(key Key, mods KeyModifiers, editingText bool) bool {
	if editingText {
		return false
	}
	sel, ok := k.store.State().Selected()
	if !ok {
		return false
	}
	id := sel.Base().ID

	step := k.Step
	if mods.Has(ModShift) {
		step = k.PrecisionStep
	}

	switch key {
	case KeyArrowLeft:
		k.store.Dispatch(MoveItemBy{ID: id, DX: -step})
	case KeyArrowRight:
		k.store.Dispatch(MoveItemBy{ID: id, DX: step})
	case KeyArrowUp:
		k.store.Dispatch(MoveItemBy{ID: id, DY: -step})
	case KeyArrowDown:
		k.store.Dispatch(MoveItemBy{ID: id, DY: step})
	case KeyDelete, KeyBackspace:
		k.store.Dispatch(DeleteItem{ID: id})
	default:
		return false
	}
	return true
}
