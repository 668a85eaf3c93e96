package moodboard

import (
	"encoding/json"
	"fmt"
	"strings"
)

// scriptStep is one action of an interaction script. Coordinates are screen
// positions, exactly like real pointer input.
type scriptStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	Pointer int     `json:"pointer,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	FromX   float64 `json:"fromX,omitempty"`
	FromY   float64 `json:"fromY,omitempty"`
	ToX     float64 `json:"toX,omitempty"`
	ToY     float64 `json:"toY,omitempty"`
	Frames  int     `json:"frames,omitempty"`
	Key     string  `json:"key,omitempty"`
	Shift   bool    `json:"shift,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

var scriptKeys = map[string]Key{
	"left":      KeyArrowLeft,
	"right":     KeyArrowRight,
	"up":        KeyArrowUp,
	"down":      KeyArrowDown,
	"delete":    KeyDelete,
	"backspace": KeyBackspace,
}

// ScriptRunner plays a recorded interaction through a Router and a Keyboard,
// one step per frame. Pointer steps go through the router's inject queue, so
// a script exercises the same hit testing and capture as a real user.
//
// A script is JSON:
//
//	{"steps": [
//	  {"action": "click", "x": 150, "y": 130},
//	  {"action": "drag", "fromX": 150, "fromY": 130, "toX": 300, "toY": 130, "frames": 10},
//	  {"action": "drag", "pointer": 1, "fromX": 195, "fromY": 175, "toX": 260, "toY": 175, "shift": true},
//	  {"action": "key", "key": "left", "shift": true},
//	  {"action": "wait", "frames": 30},
//	  {"action": "snapshot", "label": "after-drag"}
//	]}
type ScriptRunner struct {
	// Snapshot is called for "snapshot" steps. Hosts export the board.
	Snapshot func(label string)

	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses and checks an interaction script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var f scriptFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "click", "drag", "wait", "snapshot":
		case "key":
			if _, ok := scriptKeys[strings.ToLower(st.Key)]; !ok {
				return nil, fmt.Errorf("parse script: step %d: unknown key %q", i, st.Key)
			}
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
		if st.Pointer < 0 || st.Pointer >= MaxPointers {
			return nil, fmt.Errorf("parse script: step %d: pointer %d out of range", i, st.Pointer)
		}
	}
	return &ScriptRunner{steps: f.Steps}, nil
}

// Done reports whether every step has run and its input was delivered.
func (sr *ScriptRunner) Done() bool { return sr.done }

// Len returns the number of steps.
func (sr *ScriptRunner) Len() int { return len(sr.steps) }

// Step advances the script by one frame. It waits while r still has injected
// events queued, so call it before r.ProcessInjected in the frame.
func (sr *ScriptRunner) Step(r *Router, k *Keyboard) {
	if sr.done {
		return
	}
	if r.Pending() > 0 {
		return
	}
	if sr.waitCount > 0 {
		sr.waitCount--
		return
	}
	if sr.cursor >= len(sr.steps) {
		sr.done = true
		return
	}

	st := sr.steps[sr.cursor]
	sr.cursor++

	var mods KeyModifiers
	if st.Shift {
		mods = ModShift
	}

	switch st.Action {
	case "snapshot":
		if sr.Snapshot != nil {
			sr.Snapshot(st.Label)
		}
	case "click":
		r.InjectClick(st.Pointer, st.X, st.Y)
	case "drag":
		if mods == 0 {
			r.InjectDrag(st.Pointer, st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
			break
		}
		frames := max(st.Frames, 2)
		r.InjectPress(st.Pointer, st.FromX, st.FromY)
		for i := 1; i < frames; i++ {
			t := float64(i) / float64(frames-1)
			r.InjectMoveWith(st.Pointer, st.FromX+(st.ToX-st.FromX)*t, st.FromY+(st.ToY-st.FromY)*t, mods)
		}
		r.InjectRelease(st.Pointer, st.ToX, st.ToY)
	case "key":
		if k != nil {
			k.HandleKey(scriptKeys[strings.ToLower(st.Key)], mods, false)
		}
	case "wait":
		if st.Frames > 0 {
			sr.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if sr.cursor >= len(sr.steps) && sr.waitCount == 0 && r.Pending() == 0 {
		sr.done = true
	}
}

// Run plays the whole script without a frame loop, delivering each injected
// event immediately. Headless tools use it to apply a script to a store.
func (sr *ScriptRunner) Run(r *Router, k *Keyboard) {
	for !sr.done {
		sr.Step(r, k)
		r.ProcessInjected()
	}
}
