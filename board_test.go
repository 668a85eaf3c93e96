package moodboard

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDefaultBoardState(t *testing.T) {
	s := DefaultBoardState()
	if s.Board.ID != "board-1" || s.Board.Width != 1000 || s.Board.Height != 600 {
		t.Errorf("board = %s %vx%v", s.Board.ID, s.Board.Width, s.Board.Height)
	}
	if len(s.Board.Items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(s.Board.Items))
	}
	c, ok := s.Board.Items[0].(ColorItem)
	if !ok || c.ID != "1" || c.X != 100 || c.Y != 80 || c.Width != 100 || c.ZIndex != 1 {
		t.Errorf("first item = %+v", s.Board.Items[0])
	}
	tx, ok := s.Board.Items[1].(TextItem)
	if !ok || tx.ID != "2" || tx.Text != "Warm & playful" || tx.X != 260 || tx.ZIndex != 2 {
		t.Errorf("second item = %+v", s.Board.Items[1])
	}
	if s.SelectedItemID != "" {
		t.Errorf("selection = %q, want none", s.SelectedItemID)
	}
}

func TestBoardLookups(t *testing.T) {
	s := testBoard()
	if i := s.Board.IndexOf("c"); i != 2 {
		t.Errorf("IndexOf(c) = %d, want 2", i)
	}
	if i := s.Board.IndexOf("zz"); i != -1 {
		t.Errorf("IndexOf(zz) = %d, want -1", i)
	}
	if got := s.Board.MaxZIndex(); got != 3 {
		t.Errorf("MaxZIndex = %d, want 3", got)
	}
	if got := (Board{}).MaxZIndex(); got != 0 {
		t.Errorf("empty MaxZIndex = %d, want 0", got)
	}
	if _, ok := s.Selected(); ok {
		t.Error("Selected reported an item with empty selection")
	}
	s.SelectedItemID = "gone"
	if _, ok := s.Selected(); ok {
		t.Error("Selected reported a missing item")
	}
}

func TestItemsByZ(t *testing.T) {
	s := NewBoardState("b", 100, 100,
		NewColorItem(WithID("top"), WithZIndex(5)),
		NewColorItem(WithID("low"), WithZIndex(1)),
		NewColorItem(WithID("tie1"), WithZIndex(3)),
		NewColorItem(WithID("tie2"), WithZIndex(3)),
	)
	got := s.Board.ItemsByZ()
	want := []string{"low", "tie1", "tie2", "top"}
	for i, id := range want {
		if got[i].Base().ID != id {
			t.Fatalf("paint order[%d] = %s, want %s", i, got[i].Base().ID, id)
		}
	}
	if s.Board.Items[0].Base().ID != "top" {
		t.Error("ItemsByZ reordered the board's own slice")
	}
}

func TestBoardStateJSON(t *testing.T) {
	s := testBoard()
	s.SelectedItemID = "b"

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, frag := range []string{`"type":"color"`, `"type":"text"`, `"type":"image"`, `"selectedItemId":"b"`, `"zIndex":3`} {
		if !strings.Contains(string(data), frag) {
			t.Errorf("JSON missing %s: %s", frag, data)
		}
	}

	var back BoardState
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.SelectedItemID != "b" || len(back.Board.Items) != 3 {
		t.Fatalf("decoded state = %+v", back)
	}
	for i := range s.Board.Items {
		if back.Board.Items[i] != s.Board.Items[i] {
			t.Errorf("item %d = %+v, want %+v", i, back.Board.Items[i], s.Board.Items[i])
		}
	}
}

func TestBoardJSONUnknownType(t *testing.T) {
	var b Board
	err := json.Unmarshal([]byte(`{"id":"x","width":10,"height":10,"items":[{"type":"video","id":"v"}]}`), &b)
	if err == nil || !strings.Contains(err.Error(), "unknown type") {
		t.Errorf("err = %v, want unknown type", err)
	}
}
