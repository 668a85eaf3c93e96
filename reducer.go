package moodboard

import (
	"math"
	"strings"
)

// Spawn positions used by the add actions.
var (
	colorSpawn = Vec2{80, 80}
	textSpawn  = Vec2{240, 100}
	imageSpawn = Vec2{120, 120}
)

// Reducer is the board's state transition function. The zero value draws
// new item ids from NewID.
type Reducer struct {
	// NewID supplies ids for items created by the add actions. Nil means
	// NewID (random UUIDs).
	NewID IDGenerator
}

// Reduce applies a to s with the zero Reducer.
func Reduce(s *BoardState, a Action) *BoardState {
	return Reducer{}.Reduce(s, a)
}

// Reduce returns the state that results from applying a to s. It never
// panics and never mutates s. When a does not apply (unknown type, missing
// target id, wrong item variant, blank image src) the result is s itself, so
// callers can detect a no-op by comparing pointers.
func (r Reducer) Reduce(s *BoardState, a Action) *BoardState {
	if s == nil || a == nil {
		return s
	}

	switch a := a.(type) {
	case SelectItem:
		if s.SelectedItemID == a.ID {
			return s
		}
		next := *s
		next.SelectedItemID = a.ID
		return &next

	case MoveItem:
		return s.updateItem(a.ID, func(it Item) Item {
			w, h := ItemSize(it)
			b := it.Base()
			b.X, b.Y = clampPosition(a.X, a.Y, w, h, s.Board.Width, s.Board.Height)
			return it.withBase(b)
		})

	case MoveItemBy:
		return s.updateItem(a.ID, func(it Item) Item {
			w, h := ItemSize(it)
			b := it.Base()
			b.X, b.Y = clampPosition(b.X+a.DX, b.Y+a.DY, w, h, s.Board.Width, s.Board.Height)
			return it.withBase(b)
		})

	case BringToFront:
		maxZ := s.Board.MaxZIndex()
		return s.updateItem(a.ID, func(it Item) Item {
			b := it.Base()
			b.ZIndex = maxZ + 1
			return it.withBase(b)
		})

	case ResizeItem:
		return s.updateItem(a.ID, func(it Item) Item {
			b := it.Base()
			switch v := it.(type) {
			case ColorItem:
				v.Width, v.Height = clampSize(b.X, b.Y, a.Width, a.Height, s.Board.Width, s.Board.Height)
				return v
			case ImageItem:
				v.Width, v.Height = clampSize(b.X, b.Y, a.Width, a.Height, s.Board.Width, s.Board.Height)
				return v
			default:
				// Text boxes follow their content; see UpdateText.
				return nil
			}
		})

	case DeleteItem:
		i := s.Board.IndexOf(a.ID)
		if i < 0 {
			return s
		}
		items := make([]Item, 0, len(s.Board.Items)-1)
		items = append(items, s.Board.Items[:i]...)
		items = append(items, s.Board.Items[i+1:]...)
		next := *s
		next.Board.Items = items
		if next.SelectedItemID == a.ID {
			next.SelectedItemID = ""
		}
		return &next

	case AddColorItem:
		return s.appendItem(NewColorItem(
			WithIDGenerator(r.ids()),
			WithPosition(colorSpawn.X, colorSpawn.Y),
			WithZIndex(s.Board.MaxZIndex()+1),
		))

	case AddTextItem:
		return s.appendItem(NewTextItem(
			WithIDGenerator(r.ids()),
			WithPosition(textSpawn.X, textSpawn.Y),
			WithZIndex(s.Board.MaxZIndex()+1),
		))

	case AddImageItem:
		src := strings.TrimSpace(a.Src)
		if src == "" {
			return s
		}
		return s.appendItem(NewImageItem(
			WithIDGenerator(r.ids()),
			WithSrc(src),
			WithPosition(imageSpawn.X, imageSpawn.Y),
			WithZIndex(s.Board.MaxZIndex()+1),
		))

	case UpdateText:
		return s.updateItem(a.ID, func(it Item) Item {
			v, ok := it.(TextItem)
			if !ok {
				return nil
			}
			v.Text = a.Text
			if strings.TrimSpace(v.Text) == "" {
				v.Text = DefaultText
			}
			v.Width = atLeast(math.Ceil(a.Width), MinItemSize)
			v.Height = atLeast(math.Ceil(a.Height), MinItemSize)
			return v
		})

	case UpdateColor:
		return s.updateItem(a.ID, func(it Item) Item {
			v, ok := it.(ColorItem)
			if !ok {
				return nil
			}
			v.Hex = strings.TrimSpace(a.Hex)
			return v
		})
	}

	return s
}

func (r Reducer) ids() IDGenerator {
	if r.NewID != nil {
		return r.NewID
	}
	return NewID
}

// updateItem replaces the item with the given id by fn's result. A missing
// id, a nil result from fn or a result equal to the current item leaves the
// state untouched and returns s.
func (s *BoardState) updateItem(id string, fn func(Item) Item) *BoardState {
	i := s.Board.IndexOf(id)
	if i < 0 {
		return s
	}
	updated := fn(s.Board.Items[i])
	if updated == nil || updated == s.Board.Items[i] {
		return s
	}
	items := append([]Item(nil), s.Board.Items...)
	items[i] = updated
	next := *s
	next.Board.Items = items
	return &next
}

// appendItem adds item on top of the board and selects it.
func (s *BoardState) appendItem(item Item) *BoardState {
	items := make([]Item, 0, len(s.Board.Items)+1)
	items = append(items, s.Board.Items...)
	items = append(items, item)
	next := *s
	next.Board.Items = items
	next.SelectedItemID = item.Base().ID
	return &next
}

// atLeast returns v, or min when v is smaller or NaN.
func atLeast(v, min float64) float64 {
	if v < min || math.IsNaN(v) {
		return min
	}
	return v
}
