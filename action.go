package moodboard

// ActionType is the wire tag of an Action.
type ActionType string

const (
	ActionSelectItem   ActionType = "SELECT_ITEM"
	ActionMoveItem     ActionType = "MOVE_ITEM"
	ActionMoveItemBy   ActionType = "MOVE_ITEM_BY"
	ActionBringToFront ActionType = "BRING_TO_FRONT"
	ActionResizeItem   ActionType = "RESIZE_ITEM"
	ActionDeleteItem   ActionType = "DELETE_ITEM"
	ActionAddColorItem ActionType = "ADD_COLOR_ITEM"
	ActionAddTextItem  ActionType = "ADD_TEXT_ITEM"
	ActionAddImageItem ActionType = "ADD_IMAGE_ITEM"
	ActionUpdateText   ActionType = "UPDATE_TEXT"
	ActionUpdateColor  ActionType = "UPDATE_COLOR"
)

// Action is an immutable command for the reducer. Every collaborator
// (toolbar, keyboard, pointer controllers, text editor, color picker) changes
// the board only by dispatching one of the types below.
type Action interface {
	Type() ActionType
}

// SelectItem sets the selection. An empty ID clears it. The ID is not checked
// against the board.
type SelectItem struct{ ID string }

// MoveItem places an item at an absolute board position, clamped so the item
// stays on the board. The drag controller sends one per pointer move.
type MoveItem struct {
	ID   string
	X, Y float64
}

// MoveItemBy offsets an item by a delta under the same clamp as MoveItem.
// Keyboard nudges use it.
type MoveItemBy struct {
	ID     string
	DX, DY float64
}

// BringToFront raises an item above every other item.
type BringToFront struct{ ID string }

// ResizeItem sets the size of a color or image item. The top-left corner
// never moves.
type ResizeItem struct {
	ID            string
	Width, Height float64
}

// DeleteItem removes an item, clearing the selection if it was selected.
type DeleteItem struct{ ID string }

// AddColorItem appends a default color block on top and selects it.
type AddColorItem struct{}

// AddTextItem appends a default text note on top and selects it.
type AddTextItem struct{}

// AddImageItem appends an image showing Src on top and selects it.
// A blank Src makes the action a no-op.
type AddImageItem struct{ Src string }

// UpdateText replaces a text item's content and its measured box. The
// caller measures; the reducer does not.
type UpdateText struct {
	ID            string
	Text          string
	Width, Height float64
}

// UpdateColor sets a color item's hex after trimming. Any string is accepted.
type UpdateColor struct {
	ID  string
	Hex string
}

func (SelectItem) Type() ActionType   { return ActionSelectItem }
func (MoveItem) Type() ActionType     { return ActionMoveItem }
func (MoveItemBy) Type() ActionType   { return ActionMoveItemBy }
func (BringToFront) Type() ActionType { return ActionBringToFront }
func (ResizeItem) Type() ActionType   { return ActionResizeItem }
func (DeleteItem) Type() ActionType   { return ActionDeleteItem }
func (AddColorItem) Type() ActionType { return ActionAddColorItem }
func (AddTextItem) Type() ActionType  { return ActionAddTextItem }
func (AddImageItem) Type() ActionType { return ActionAddImageItem }
func (UpdateText) Type() ActionType   { return ActionUpdateText }
func (UpdateColor) Type() ActionType  { return ActionUpdateColor }

// actionTarget returns the item id an action refers to, or "" for actions
// without one.
func actionTarget(a Action) string {
	switch a := a.(type) {
	case SelectItem:
		return a.ID
	case MoveItem:
		return a.ID
	case MoveItemBy:
		return a.ID
	case BringToFront:
		return a.ID
	case ResizeItem:
		return a.ID
	case DeleteItem:
		return a.ID
	case UpdateText:
		return a.ID
	case UpdateColor:
		return a.ID
	}
	return ""
}
