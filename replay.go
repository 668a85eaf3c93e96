package moodboard

import (
	"encoding/json"
	"fmt"
)

// actionJSON is the flat wire form of every action, tagged by type.
type actionJSON struct {
	Type   ActionType `json:"type"`
	ID     string     `json:"id,omitempty"`
	X      float64    `json:"x,omitempty"`
	Y      float64    `json:"y,omitempty"`
	DX     float64    `json:"dx,omitempty"`
	DY     float64    `json:"dy,omitempty"`
	Width  float64    `json:"width,omitempty"`
	Height float64    `json:"height,omitempty"`
	Text   string     `json:"text,omitempty"`
	Hex    string     `json:"hex,omitempty"`
	Src    string     `json:"src,omitempty"`
}

// actionLog is the top-level JSON structure of an action log.
type actionLog struct {
	Actions []actionJSON `json:"actions"`
}

func encodeAction(a Action) (actionJSON, error) {
	switch a := a.(type) {
	case SelectItem:
		return actionJSON{Type: a.Type(), ID: a.ID}, nil
	case MoveItem:
		return actionJSON{Type: a.Type(), ID: a.ID, X: a.X, Y: a.Y}, nil
	case MoveItemBy:
		return actionJSON{Type: a.Type(), ID: a.ID, DX: a.DX, DY: a.DY}, nil
	case BringToFront:
		return actionJSON{Type: a.Type(), ID: a.ID}, nil
	case ResizeItem:
		return actionJSON{Type: a.Type(), ID: a.ID, Width: a.Width, Height: a.Height}, nil
	case DeleteItem:
		return actionJSON{Type: a.Type(), ID: a.ID}, nil
	case AddColorItem, AddTextItem:
		return actionJSON{Type: a.Type()}, nil
	case AddImageItem:
		return actionJSON{Type: a.Type(), Src: a.Src}, nil
	case UpdateText:
		return actionJSON{Type: a.Type(), ID: a.ID, Text: a.Text, Width: a.Width, Height: a.Height}, nil
	case UpdateColor:
		return actionJSON{Type: a.Type(), ID: a.ID, Hex: a.Hex}, nil
	case nil:
		return actionJSON{}, fmt.Errorf("encode action: nil action")
	default:
		return actionJSON{}, fmt.Errorf("encode action: unsupported type %T", a)
	}
}

func decodeAction(in actionJSON) (Action, error) {
	switch in.Type {
	case ActionSelectItem:
		return SelectItem{ID: in.ID}, nil
	case ActionMoveItem:
		return MoveItem{ID: in.ID, X: in.X, Y: in.Y}, nil
	case ActionMoveItemBy:
		return MoveItemBy{ID: in.ID, DX: in.DX, DY: in.DY}, nil
	case ActionBringToFront:
		return BringToFront{ID: in.ID}, nil
	case ActionResizeItem:
		return ResizeItem{ID: in.ID, Width: in.Width, Height: in.Height}, nil
	case ActionDeleteItem:
		return DeleteItem{ID: in.ID}, nil
	case ActionAddColorItem:
		return AddColorItem{}, nil
	case ActionAddTextItem:
		return AddTextItem{}, nil
	case ActionAddImageItem:
		return AddImageItem{Src: in.Src}, nil
	case ActionUpdateText:
		return UpdateText{ID: in.ID, Text: in.Text, Width: in.Width, Height: in.Height}, nil
	case ActionUpdateColor:
		return UpdateColor{ID: in.ID, Hex: in.Hex}, nil
	default:
		return nil, fmt.Errorf("decode action: unknown type %q", in.Type)
	}
}

// EncodeAction returns the JSON form of a, e.g. {"type":"MOVE_ITEM","id":"a","x":10,"y":20}.
func EncodeAction(a Action) ([]byte, error) {
	raw, err := encodeAction(a)
	if err != nil {
		return nil, err
	}
	return json.Marshal(raw)
}

// DecodeAction parses the form written by EncodeAction.
func DecodeAction(data []byte) (Action, error) {
	var raw actionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode action: %w", err)
	}
	return decodeAction(raw)
}

// LoadActionLog parses a JSON action log of the form
// {"actions": [{"type": "ADD_COLOR_ITEM"}, ...]}.
func LoadActionLog(jsonData []byte) ([]Action, error) {
	var log actionLog
	if err := json.Unmarshal(jsonData, &log); err != nil {
		return nil, fmt.Errorf("parse action log: %w", err)
	}
	if len(log.Actions) == 0 {
		return nil, fmt.Errorf("parse action log: no actions")
	}
	actions := make([]Action, 0, len(log.Actions))
	for i, raw := range log.Actions {
		a, err := decodeAction(raw)
		if err != nil {
			return nil, fmt.Errorf("parse action log: action %d: %w", i, err)
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// MarshalActionLog encodes actions in the form read by LoadActionLog.
func MarshalActionLog(actions []Action) ([]byte, error) {
	log := actionLog{Actions: make([]actionJSON, 0, len(actions))}
	for _, a := range actions {
		raw, err := encodeAction(a)
		if err != nil {
			return nil, err
		}
		log.Actions = append(log.Actions, raw)
	}
	return json.MarshalIndent(log, "", "  ")
}

// Replay applies actions to s in order and returns the final state. With a
// deterministic IDGenerator the result depends only on s and actions.
func Replay(r Reducer, s *BoardState, actions []Action) *BoardState {
	for _, a := range actions {
		s = r.Reduce(s, a)
	}
	return s
}
