// Package moodboard is the state and interaction engine of a small visual
// moodboard: a fixed-size board holding color blocks, text notes and images
// that can be selected, dragged, resized, raised and deleted.
//
// # State
//
// A [BoardState] is an immutable value. It changes only by passing an
// [Action] through [Reduce] (or a [Reducer] with a deterministic
// [IDGenerator]), which returns either a new state or, when the action does
// not apply, the very same pointer:
//
//	s := moodboard.DefaultBoardState()
//	next := moodboard.Reduce(s, moodboard.AddColorItem{})
//	next = moodboard.Reduce(next, moodboard.MoveItem{ID: next.SelectedItemID, X: 400, Y: 90})
//
// Positions and sizes are clamped so every item stays on the board. Resizes
// floor each dimension at [MinItemSize] unless the board edge is closer.
//
// # Store
//
// Hosts keep the state in a [Store], the single owner that applies
// dispatches one at a time and notifies subscribers:
//
//	store := moodboard.NewStore(nil, moodboard.WithActionLog())
//	h := store.Subscribe(func(prev, next *moodboard.BoardState, a moodboard.Action) {
//		// redraw
//	})
//	defer h.Remove()
//	store.Dispatch(moodboard.AddTextItem{})
//
// The recorded log can be written with [MarshalActionLog] and replayed with
// [LoadActionLog] and [Replay].
//
// # Interaction
//
// A [Viewport] fits the board into the window at a scale in (0, 1]. A
// [Router] turns pointer samples into gestures: one [DragController] and one
// [ResizeController] per item, with pointer capture keyed by pointer id so
// several fingers can drag and resize different items at the same time.
// Screen deltas are divided by the viewport scale before they reach the
// board. A [Keyboard] maps arrow keys and Delete to the same actions. A
// [ScriptRunner] replays a JSON interaction script through both.
//
// # Export
//
// An [Exporter] renders a board to PNG with text measured by a
// [FontMeasurer]. Images are loaded through an [ImageSource]; a failure is
// reported as an [*ExportError] and never touches the state.
package moodboard
