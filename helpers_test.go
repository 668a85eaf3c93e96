package moodboard

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

// recorder is a Dispatcher that keeps every action it receives.
type recorder struct {
	actions []Action
}

func (r *recorder) Dispatch(a Action) bool {
	r.actions = append(r.actions, a)
	return true
}

// fakeCapturer records capture and release calls.
type fakeCapturer struct {
	captured map[int]PointerTarget
	released []int
}

func newFakeCapturer() *fakeCapturer {
	return &fakeCapturer{captured: make(map[int]PointerTarget)}
}

func (c *fakeCapturer) CapturePointer(id int, t PointerTarget) { c.captured[id] = t }

func (c *fakeCapturer) ReleasePointer(id int) {
	delete(c.captured, id)
	c.released = append(c.released, id)
}

// testBoard returns a 1000x600 board with a color block "a" at (100, 80)
// 100x100 z1, a text note "b" at (260, 100) z2 and an image "c" at
// (500, 300) 200x150 z3.
func testBoard() *BoardState {
	return NewBoardState("board-1", 1000, 600,
		NewColorItem(WithID("a"), WithPosition(100, 80), WithSize(100, 100), WithZIndex(1)),
		NewTextItem(WithID("b"), WithPosition(260, 100), WithZIndex(2)),
		NewImageItem(WithID("c"), WithSrc("https://example.com/c.png"), WithPosition(500, 300), WithSize(200, 150), WithZIndex(3)),
	)
}

func mustItem(t *testing.T, s *BoardState, id string) Item {
	t.Helper()
	it, ok := s.Board.Item(id)
	if !ok {
		t.Fatalf("item %q not on board", id)
	}
	return it
}

func down(id int, x, y float64) *PointerEvent {
	return &PointerEvent{PointerID: id, Button: MouseButtonLeft, X: x, Y: y}
}
