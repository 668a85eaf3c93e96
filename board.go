package moodboard

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Board is the fixed-size logical canvas. Width and Height define the
// coordinate space every item is expressed in; they are not screen pixels.
type Board struct {
	ID            string
	Width, Height float64
	// Items is kept in insertion order. Paint order comes from ZIndex; see
	// ItemsByZ.
	Items []Item
}

// BoardState is the whole editor state: the board plus the current
// selection. SelectedItemID is "" when nothing is selected.
//
// A *BoardState handed out by Reduce or a Store is immutable. Reduce returns
// the same pointer for no-op actions, so comparing pointers detects them.
type BoardState struct {
	Board          Board
	SelectedItemID string
}

// NewBoardState returns a state for an empty board of the given size.
func NewBoardState(id string, width, height float64, items ...Item) *BoardState {
	return &BoardState{Board: Board{
		ID:     id,
		Width:  width,
		Height: height,
		Items:  append([]Item(nil), items...),
	}}
}

// DefaultBoardState returns the starter board: 1000x600 with a yellow block
// and a text note.
func DefaultBoardState() *BoardState {
	return NewBoardState("board-1", 1000, 600,
		NewColorItem(WithID("1"), WithSize(100, 100), WithPosition(100, 80), WithZIndex(1)),
		NewTextItem(WithID("2"), WithText("Warm & playful"), WithPosition(260, 100), WithZIndex(2)),
	)
}

// Bounds returns the board rectangle in board space.
func (b Board) Bounds() Rect {
	return Rect{Width: b.Width, Height: b.Height}
}

// IndexOf returns the position of the item with the given id in Items, or -1.
func (b Board) IndexOf(id string) int {
	for i, it := range b.Items {
		if it.Base().ID == id {
			return i
		}
	}
	return -1
}

// Item returns the item with the given id.
func (b Board) Item(id string) (Item, bool) {
	if i := b.IndexOf(id); i >= 0 {
		return b.Items[i], true
	}
	return nil, false
}

// MaxZIndex returns the highest ZIndex on the board, or 0 when it is empty.
func (b Board) MaxZIndex() int {
	maxZ := 0
	for _, it := range b.Items {
		if z := it.Base().ZIndex; z > maxZ {
			maxZ = z
		}
	}
	return maxZ
}

// ItemsByZ returns the items in paint order: ZIndex ascending, ties broken by
// position in Items. The returned slice is a fresh copy.
func (b Board) ItemsByZ() []Item {
	out := append([]Item(nil), b.Items...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Base().ZIndex < out[j].Base().ZIndex
	})
	return out
}

// Selected returns the selected item. ok is false when nothing is selected or
// the selection refers to an item that no longer exists.
func (s *BoardState) Selected() (Item, bool) {
	if s == nil || s.SelectedItemID == "" {
		return nil, false
	}
	return s.Board.Item(s.SelectedItemID)
}

// --- JSON ---

// itemJSON is the flat wire form of every item variant, tagged by type.
type itemJSON struct {
	Type   ItemKind `json:"type"`
	ID     string   `json:"id"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	ZIndex int      `json:"zIndex"`
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
	Hex    string   `json:"hex,omitempty"`
	Text   string   `json:"text,omitempty"`
	Src    string   `json:"src,omitempty"`
}

func encodeItem(item Item) itemJSON {
	b := item.Base()
	w, h := ItemSize(item)
	out := itemJSON{Type: item.Kind(), ID: b.ID, X: b.X, Y: b.Y, ZIndex: b.ZIndex, Width: w, Height: h}
	switch it := item.(type) {
	case ColorItem:
		out.Hex = it.Hex
	case TextItem:
		out.Text = it.Text
	case ImageItem:
		out.Src = it.Src
	}
	return out
}

func decodeItem(in itemJSON) (Item, error) {
	base := ItemBase{ID: in.ID, X: in.X, Y: in.Y, ZIndex: in.ZIndex}
	if base.ID == "" {
		return nil, fmt.Errorf("decode item: missing id")
	}
	switch in.Type {
	case KindColor:
		return ColorItem{ItemBase: base, Hex: in.Hex, Width: in.Width, Height: in.Height}, nil
	case KindText:
		return TextItem{ItemBase: base, Text: in.Text, Width: in.Width, Height: in.Height}, nil
	case KindImage:
		return ImageItem{ItemBase: base, Src: in.Src, Width: in.Width, Height: in.Height}, nil
	default:
		return nil, fmt.Errorf("decode item %s: unknown type %q", in.ID, in.Type)
	}
}

type boardJSON struct {
	ID     string     `json:"id"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Items  []itemJSON `json:"items"`
}

// MarshalJSON encodes the board with each item tagged by its "type".
func (b Board) MarshalJSON() ([]byte, error) {
	out := boardJSON{ID: b.ID, Width: b.Width, Height: b.Height, Items: make([]itemJSON, 0, len(b.Items))}
	for _, it := range b.Items {
		out.Items = append(out.Items, encodeItem(it))
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (b *Board) UnmarshalJSON(data []byte) error {
	var in boardJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	items := make([]Item, 0, len(in.Items))
	for _, raw := range in.Items {
		it, err := decodeItem(raw)
		if err != nil {
			return err
		}
		items = append(items, it)
	}
	*b = Board{ID: in.ID, Width: in.Width, Height: in.Height, Items: items}
	return nil
}

type stateJSON struct {
	Board          Board  `json:"board"`
	SelectedItemID string `json:"selectedItemId,omitempty"`
}

// MarshalJSON encodes the state as {"board": ..., "selectedItemId": ...}.
func (s BoardState) MarshalJSON() ([]byte, error) {
	return json.Marshal(stateJSON{Board: s.Board, SelectedItemID: s.SelectedItemID})
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (s *BoardState) UnmarshalJSON(data []byte) error {
	var in stateJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	s.Board = in.Board
	s.SelectedItemID = in.SelectedItemID
	return nil
}
