package host

import (
	"scratchcard/internal/scratch"
	"time"
)

// PointerSink принимает события одного указателя. *scratch.Group подходит.
type PointerSink interface {
	PointerDown(p scratch.Point, now time.Time)
	PointerMove(p scratch.Point, now time.Time)
	PointerUp()
}

// Tracker turns polled pointer state (pressed + position each tick) into
// down/move/up events. Only one contact is tracked.
type Tracker struct {
	sink    PointerSink
	pressed bool
	last    scratch.Point
}

func NewTracker(sink PointerSink) *Tracker {
	return &Tracker{sink: sink}
}

// Update feeds the current state. A move is reported only when the pointer
// actually moved.
func (t *Tracker) Update(pressed bool, p scratch.Point, now time.Time) {
	switch {
	case pressed && !t.pressed:
		t.sink.PointerDown(p, now)
	case pressed && p != t.last:
		t.sink.PointerMove(p, now)
	case !pressed && t.pressed:
		t.sink.PointerUp()
	}
	t.pressed = pressed
	t.last = p
}

// Pressed reports whether a contact is down.
func (t *Tracker) Pressed() bool { return t.pressed }
