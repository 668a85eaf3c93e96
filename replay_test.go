package moodboard

import (
	"strings"
	"testing"
)

func TestActionJSON(t *testing.T) {
	actions := []Action{
		SelectItem{ID: "a"},
		SelectItem{},
		MoveItem{ID: "a", X: 10, Y: 20},
		MoveItemBy{ID: "a", DX: -1, DY: 10},
		BringToFront{ID: "a"},
		ResizeItem{ID: "a", Width: 30, Height: 40},
		DeleteItem{ID: "a"},
		AddColorItem{},
		AddTextItem{},
		AddImageItem{Src: "x.png"},
		UpdateText{ID: "b", Text: "hi\nthere", Width: 50, Height: 60},
		UpdateColor{ID: "a", Hex: "#fff"},
	}
	for _, a := range actions {
		t.Run(string(a.Type()), func(t *testing.T) {
			data, err := EncodeAction(a)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			got, err := DecodeAction(data)
			if err != nil {
				t.Fatalf("decode %s: %v", data, err)
			}
			if got != a {
				t.Errorf("decoded %+v, want %+v", got, a)
			}
		})
	}
}

func TestEncodeActionErrors(t *testing.T) {
	if _, err := EncodeAction(nil); err == nil {
		t.Error("nil action encoded")
	}
	type custom struct{ AddTextItem }
	if _, err := EncodeAction(custom{}); err == nil {
		t.Error("unsupported action encoded")
	}
}

func TestLoadActionLog(t *testing.T) {
	data := []byte(`{"actions": [
		{"type": "ADD_COLOR_ITEM"},
		{"type": "MOVE_ITEM", "id": "n1", "x": 10, "y": 20},
		{"type": "UPDATE_COLOR", "id": "n1", "hex": "#123456"}
	]}`)
	actions, err := LoadActionLog(data)
	if err != nil {
		t.Fatalf("LoadActionLog: %v", err)
	}
	if len(actions) != 3 {
		t.Fatalf("len = %d, want 3", len(actions))
	}

	s := Replay(Reducer{NewID: SequentialIDs("n")}, NewBoardState("b", 1000, 600), actions)
	it := mustItem(t, s, "n1").(ColorItem)
	if it.X != 10 || it.Y != 20 || it.Hex != "#123456" {
		t.Errorf("replayed item = %+v", it)
	}
}

func TestLoadActionLogErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad json", `{"actions": [`, "parse action log"},
		{"empty", `{"actions": []}`, "no actions"},
		{"unknown type", `{"actions": [{"type": "ADD_COLOR_ITEM"}, {"type": "FLY"}]}`, "action 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadActionLog([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestMarshalActionLog(t *testing.T) {
	in := []Action{AddTextItem{}, UpdateText{ID: "n1", Text: "x", Width: 30, Height: 30}}
	data, err := MarshalActionLog(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out, err := LoadActionLog(data)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 2 || out[0] != in[0] || out[1] != in[1] {
		t.Errorf("round trip = %+v", out)
	}
}

func TestReplayDeterministic(t *testing.T) {
	actions := []Action{AddColorItem{}, AddTextItem{}, AddImageItem{Src: "i.png"}, BringToFront{ID: "n1"}, DeleteItem{ID: "n2"}}
	a := Replay(Reducer{NewID: SequentialIDs("n")}, DefaultBoardState(), actions)
	b := Replay(Reducer{NewID: SequentialIDs("n")}, DefaultBoardState(), actions)
	if len(a.Board.Items) != len(b.Board.Items) || a.SelectedItemID != b.SelectedItemID {
		t.Fatal("replays differ")
	}
	for i := range a.Board.Items {
		if a.Board.Items[i] != b.Board.Items[i] {
			t.Errorf("item %d differs: %+v vs %+v", i, a.Board.Items[i], b.Board.Items[i])
		}
	}
}
