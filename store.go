package moodboard

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Dispatcher accepts actions. Store implements it; the pointer and keyboard
// controllers depend only on this interface.
type Dispatcher interface {
	// Dispatch applies a and reports whether the state changed.
	Dispatch(a Action) bool
}

// DispatchFunc adapts a function to Dispatcher.
type DispatchFunc func(Action) bool

// Dispatch calls f(a).
func (f DispatchFunc) Dispatch(a Action) bool { return f(a) }

// StateReader exposes the current state.
type StateReader interface {
	State() *BoardState
}

// ChangeFunc is called after a dispatch changed the state.
type ChangeFunc func(prev, next *BoardState, a Action)

type changeHandler struct {
	id uint32
	fn ChangeFunc
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id     uint32
	remove func(id uint32)
}

// Remove unregisters the callback so it no longer fires. Calling Remove on
// the zero handle or more than once is harmless.
func (h CallbackHandle) Remove() {
	if h.remove != nil {
		h.remove(h.id)
	}
}

// Store is the single owner of a BoardState. Dispatches are applied one at a
// time, each against the result of the previous one, and subscribers see
// every change in dispatch order.
type Store struct {
	mu      sync.Mutex
	reducer Reducer
	state   *BoardState

	handlers []changeHandler
	nextID   uint32

	recording bool
	log       []Action

	debug    bool
	debugOut io.Writer
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithReducer sets the reducer, typically to supply a deterministic
// IDGenerator.
func WithReducer(r Reducer) StoreOption {
	return func(s *Store) { s.reducer = r }
}

// WithActionLog records every action that changed the state so the session
// can be replayed.
func WithActionLog() StoreOption {
	return func(s *Store) { s.recording = true }
}

// NewStore creates a store holding initial. A nil initial starts from
// DefaultBoardState.
func NewStore(initial *BoardState, opts ...StoreOption) *Store {
	if initial == nil {
		initial = DefaultBoardState()
	}
	s := &Store{state: initial, debugOut: os.Stderr}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state. The returned value must not be modified.
func (s *Store) State() *BoardState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies a and reports whether the state changed. Subscribers run
// synchronously after the new state is published, outside the store lock, so
// they may read State or dispatch further actions.
func (s *Store) Dispatch(a Action) bool {
	s.mu.Lock()
	prev := s.state
	next := s.reducer.Reduce(prev, a)
	changed := next != prev
	if changed {
		s.state = next
		if s.recording {
			s.log = append(s.log, a)
		}
	}
	s.debugLog(a, changed)
	handlers := append([]changeHandler(nil), s.handlers...)
	s.mu.Unlock()

	if changed {
		for _, h := range handlers {
			h.fn(prev, next, a)
		}
	}
	return changed
}

// Subscribe registers fn to run after every state change.
func (s *Store) Subscribe(fn ChangeFunc) CallbackHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.handlers = append(s.handlers, changeHandler{id: id, fn: fn})
	return CallbackHandle{id: id, remove: s.unsubscribe}
}

func (s *Store) unsubscribe(id uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.handlers {
		if s.handlers[i].id == id {
			copy(s.handlers[i:], s.handlers[i+1:])
			s.handlers[len(s.handlers)-1] = changeHandler{}
			s.handlers = s.handlers[:len(s.handlers)-1]
			return
		}
	}
}

// Log returns a copy of the recorded actions. It is empty unless the store
// was created WithActionLog.
func (s *Store) Log() []Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Action(nil), s.log...)
}

// SetDebugMode enables or disables debug mode. When enabled every dispatch
// prints one line to stderr.
func (s *Store) SetDebugMode(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debug = enabled
}

// debugLog prints the dispatched action. Caller holds s.mu.
func (s *Store) debugLog(a Action, changed bool) {
	if !s.debug {
		return
	}
	result := "no-op"
	if changed {
		result = "applied"
	}
	var typ ActionType = "<nil>"
	if a != nil {
		typ = a.Type()
	}
	if target := actionTarget(a); target != "" {
		_, _ = fmt.Fprintf(s.debugOut, "[moodboard] dispatch %s id=%s: %s | items: %d | selected: %q\n",
			typ, target, result, len(s.state.Board.Items), s.state.SelectedItemID)
		return
	}
	_, _ = fmt.Fprintf(s.debugOut, "[moodboard] dispatch %s: %s | items: %d | selected: %q\n",
		typ, result, len(s.state.Board.Items), s.state.SelectedItemID)
}
