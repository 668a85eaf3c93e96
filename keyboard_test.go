package moodboard

import "testing"

func TestKeyboardNudge(t *testing.T) {
	tests := []struct {
		name  string
		key   Key
		mods  KeyModifiers
		wantX float64
		wantY float64
	}{
		{"left", KeyArrowLeft, 0, 99, 80},
		{"right", KeyArrowRight, 0, 101, 80},
		{"up", KeyArrowUp, 0, 100, 79},
		{"down", KeyArrowDown, 0, 100, 81},
		{"shift left", KeyArrowLeft, ModShift, 90, 80},
		{"shift down", KeyArrowDown, ModShift | ModCtrl, 100, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testBoard()
			s.SelectedItemID = "a"
			st := NewStore(s)
			if !NewKeyboard(st).HandleKey(tt.key, tt.mods, false) {
				t.Fatal("key not consumed")
			}
			b := mustItem(t, st.State(), "a").Base()
			if b.X != tt.wantX || b.Y != tt.wantY {
				t.Errorf("position = (%v, %v), want (%v, %v)", b.X, b.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestKeyboardNudgeClampsToBoard(t *testing.T) {
	s := NewBoardState("b", 1000, 600, NewColorItem(WithID("x"), WithPosition(0, 0)))
	s.SelectedItemID = "x"
	st := NewStore(s)
	NewKeyboard(st).HandleKey(KeyArrowLeft, ModShift, false)
	if b := mustItem(t, st.State(), "x").Base(); b.X != 0 {
		t.Errorf("x = %v, want 0", b.X)
	}
}

func TestKeyboardDelete(t *testing.T) {
	for _, key := range []Key{KeyDelete, KeyBackspace} {
		s := testBoard()
		s.SelectedItemID = "b"
		st := NewStore(s)
		if !NewKeyboard(st).HandleKey(key, 0, false) {
			t.Fatalf("key %d not consumed", key)
		}
		next := st.State()
		if _, ok := next.Board.Item("b"); ok {
			t.Errorf("key %d: item still on board", key)
		}
		if next.SelectedItemID != "" {
			t.Errorf("key %d: selection = %q", key, next.SelectedItemID)
		}
	}
}

func TestKeyboardIgnored(t *testing.T) {
	s := testBoard()
	s.SelectedItemID = "a"
	st := NewStore(s)
	k := NewKeyboard(st)

	if k.HandleKey(KeyArrowLeft, 0, true) {
		t.Error("arrow consumed while editing text")
	}
	if k.HandleKey(KeyDelete, 0, true) {
		t.Error("delete consumed while editing text")
	}
	if k.HandleKey(KeyUnknown, 0, false) {
		t.Error("unknown key consumed")
	}
	if st.State() != s {
		t.Error("state changed")
	}

	empty := NewStore(testBoard())
	if NewKeyboard(empty).HandleKey(KeyDelete, 0, false) {
		t.Error("delete consumed with no selection")
	}
	if len(empty.State().Board.Items) != 3 {
		t.Error("item deleted with no selection")
	}
}

func TestKeyboardCustomSteps(t *testing.T) {
	s := testBoard()
	s.SelectedItemID = "a"
	st := NewStore(s)
	k := NewKeyboard(st)
	k.Step, k.PrecisionStep = 5, 50
	k.HandleKey(KeyArrowRight, 0, false)
	k.HandleKey(KeyArrowRight, ModShift, false)
	if b := mustItem(t, st.State(), "a").Base(); b.X != 155 {
		t.Errorf("x = %v, want 155", b.X)
	}
}
