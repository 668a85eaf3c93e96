package moodboard

import "testing"

func TestDragMovesRelativeToStart(t *testing.T) {
	rec := &recorder{}
	c := NewDragController("a", rec, FixedScale(0.5))
	pc := newFakeCapturer()
	c.SetCapturer(pc)

	if !c.PointerDown(down(3, 10, 10), 100, 80) {
		t.Fatal("PointerDown did not start a drag")
	}
	if c.State() != GestureActive || c.PointerID() != 3 {
		t.Fatalf("state = %v pointer %d", c.State(), c.PointerID())
	}
	if pc.captured[3] != c {
		t.Error("pointer not captured")
	}

	c.PointerMove(down(3, 20, 15))
	c.PointerMove(down(3, 30, 10))

	want := []MoveItem{
		{ID: "a", X: 120, Y: 90},
		{ID: "a", X: 140, Y: 80},
	}
	if len(rec.actions) != len(want) {
		t.Fatalf("dispatched %d actions, want %d", len(rec.actions), len(want))
	}
	for i, w := range want {
		if rec.actions[i] != w {
			t.Errorf("action %d = %+v, want %+v", i, rec.actions[i], w)
		}
	}

	if !c.PointerUp(down(3, 30, 10)) {
		t.Error("PointerUp not consumed")
	}
	if c.State() != GestureIdle {
		t.Error("drag still active after up")
	}
	if len(rec.actions) != 2 {
		t.Error("PointerUp dispatched")
	}
	if len(pc.released) != 1 || pc.released[0] != 3 {
		t.Errorf("released = %v, want [3]", pc.released)
	}
}

func TestDragClickWithoutMoveDispatchesNothing(t *testing.T) {
	rec := &recorder{}
	c := NewDragController("a", rec, nil)
	c.PointerDown(down(0, 10, 10), 0, 0)
	c.PointerUp(down(0, 10, 10))
	if len(rec.actions) != 0 {
		t.Errorf("dispatched %v", rec.actions)
	}
}

func TestDragIgnoresOtherPointers(t *testing.T) {
	rec := &recorder{}
	c := NewDragController("a", rec, nil)
	c.PointerDown(down(7, 0, 0), 50, 50)

	if c.PointerMove(down(9, 100, 100)) {
		t.Error("move of another pointer consumed")
	}
	if c.PointerUp(down(9, 100, 100)) || c.PointerCancel(down(9, 0, 0)) {
		t.Error("up/cancel of another pointer consumed")
	}
	if c.PointerDown(down(9, 0, 0), 0, 0) {
		t.Error("second pointer took over the drag")
	}
	if c.State() != GestureActive || c.PointerID() != 7 {
		t.Error("drag lost its pointer")
	}
	if len(rec.actions) != 0 {
		t.Errorf("dispatched %v", rec.actions)
	}

	if !c.PointerCancel(down(7, 0, 0)) || c.State() != GestureIdle {
		t.Error("cancel of the owning pointer did not end the drag")
	}
}

func TestDragIgnoresSecondaryButton(t *testing.T) {
	rec := &recorder{}
	c := NewDragController("a", rec, nil)
	e := down(0, 0, 0)
	e.Button = MouseButtonRight
	if c.PointerDown(e, 0, 0) || c.State() != GestureIdle {
		t.Error("right button started a drag")
	}
	if c.PointerMove(down(0, 10, 10)) || len(rec.actions) != 0 {
		t.Error("move before any press dispatched")
	}
}

func TestDragWithStore(t *testing.T) {
	st := NewStore(testBoard())
	c := NewDragController("a", st, FixedScale(1))
	c.PointerDown(down(0, 0, 0), 100, 80)
	c.PointerMove(down(0, 5000, -100))
	b := mustItem(t, st.State(), "a").Base()
	if b.X != 900 || b.Y != 0 {
		t.Errorf("position = (%v, %v), want clamped (900, 0)", b.X, b.Y)
	}
}
