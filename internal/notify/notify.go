// Package notify holds the short on-screen messages the editor shows after
// exports and clipboard actions. A notice stays fully opaque for a while and
// then fades out.
package notify

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Kind selects how a notice is styled.
type Kind uint8

const (
	KindInfo Kind = iota
	KindSuccess
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return "info"
	}
}

// Default timings in seconds.
const (
	DefaultHold = 2.5
	DefaultFade = 0.6
)

// Notice is one message. Call Update(dt) every frame and draw it with Alpha.
type Notice struct {
	Message string
	Kind    Kind

	hold    float32
	elapsed float32
	fade    *gween.Tween
	alpha   float32
	done    bool
}

// New returns a notice with the default hold and fade durations.
func New(kind Kind, message string) *Notice {
	return NewTimed(kind, message, DefaultHold, DefaultFade)
}

// NewTimed returns a notice that stays opaque for hold seconds and then fades
// out over fade seconds.
func NewTimed(kind Kind, message string, hold, fade float32) *Notice {
	if fade <= 0 {
		fade = 0.001
	}
	return &Notice{
		Message: message,
		Kind:    kind,
		hold:    hold,
		fade:    gween.New(1, 0, fade, ease.InQuad),
		alpha:   1,
	}
}

// Update advances the notice by dt seconds.
func (n *Notice) Update(dt float32) {
	if n.done {
		return
	}
	if n.elapsed < n.hold {
		n.elapsed += dt
		if n.elapsed <= n.hold {
			return
		}
		// Carry the overshoot into the fade.
		dt = n.elapsed - n.hold
	}
	val, finished := n.fade.Update(dt)
	n.alpha = val
	if finished {
		n.alpha = 0
		n.done = true
	}
}

// Alpha returns the current opacity in [0, 1].
func (n *Notice) Alpha() float32 {
	switch {
	case n.alpha < 0:
		return 0
	case n.alpha > 1:
		return 1
	}
	return n.alpha
}

// Done reports whether the notice has faded out completely.
func (n *Notice) Done() bool { return n.done }

// Stack keeps the visible notices, newest last, and drops faded ones.
type Stack struct {
	// Max limits how many notices are visible; older ones are dropped first.
	Max     int
	notices []*Notice
}

// Push adds n on top of the stack.
func (s *Stack) Push(n *Notice) {
	s.notices = append(s.notices, n)
	if s.Max > 0 && len(s.notices) > s.Max {
		s.notices = append(s.notices[:0], s.notices[len(s.notices)-s.Max:]...)
	}
}

// Update advances every notice and removes the finished ones.
func (s *Stack) Update(dt float32) {
	kept := s.notices[:0]
	for _, n := range s.notices {
		n.Update(dt)
		if !n.Done() {
			kept = append(kept, n)
		}
	}
	for i := len(kept); i < len(s.notices); i++ {
		s.notices[i] = nil
	}
	s.notices = kept
}

// Visible returns the live notices, oldest first.
func (s *Stack) Visible() []*Notice { return s.notices }
