// Package stroke turns pointer samples into the stroke sets the recognizers
// consume.
//
// A finger pointer draws a consonant gesture, which may take several
// strokes; a thumb pointer draws a vowel pinch, a single stroke. Starting a
// pinch ends any gesture in progress and starting a gesture discards a
// finished pinch.
package stroke

import (
	"fmt"
	"strings"

	"sonjit/internal/geom"
)

type Kind int

const (
	Gesture Kind = iota
	Pinch
)

func (k Kind) String() string {
	switch k {
	case Gesture:
		return "gesture"
	case Pinch:
		return "pinch"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "gesture", "finger":
		return Gesture, nil
	case "pinch", "thumb":
		return Pinch, nil
	default:
		return Gesture, fmt.Errorf("unknown stroke kind %q", s)
	}
}

type State int

const (
	StateClean State = iota
	StateGesture
	StatePinch
)

type EventType int

const (
	EventGestureBegin EventType = iota
	EventGesture
	EventGestureEnd
	EventPinchBegin
	EventPinch
	EventPinchEnd
)

func (t EventType) String() string {
	switch t {
	case EventGestureBegin:
		return "gesture-begin"
	case EventGesture:
		return "gesture"
	case EventGestureEnd:
		return "gesture-end"
	case EventPinchBegin:
		return "pinch-begin"
	case EventPinch:
		return "pinch"
	case EventPinchEnd:
		return "pinch-end"
	default:
		return fmt.Sprintf("event(%d)", int(t))
	}
}

// Event is one notification from a Capture. Strokes is set for
// EventGesture and Points for EventPinch; both are copies.
type Event struct {
	Type    EventType
	Strokes []geom.Stroke
	Points  geom.Stroke
}

// Capture is not safe for concurrent use.
type Capture struct {
	state   State
	active  map[int]int
	kinds   map[int]Kind
	strokes []geom.Stroke
	pending bool
}

func NewCapture() *Capture {
	return &Capture{active: make(map[int]int), kinds: make(map[int]Kind)}
}

func (c *Capture) State() State { return c.state }

// Begin attaches pointer id to a new stroke.
func (c *Capture) Begin(id int, kind Kind) []Event {
	var events []Event
	if kind == Pinch {
		if c.state == StateGesture {
			events = append(events, Event{Type: EventGestureEnd})
		}
		c.clean()
		c.state = StatePinch
		c.start(id, kind)
		return append(events, Event{Type: EventPinchBegin})
	}

	if c.state == StatePinch {
		c.clean()
	}
	c.state = StateGesture
	c.start(id, kind)
	return append(events, Event{Type: EventGestureBegin})
}

// Add appends a sample to the pointer's stroke. Repeated samples and
// unknown pointers are ignored. Gesture samples lose their depth. Pinch
// samples are reported at once; gesture updates wait for Frame.
func (c *Capture) Add(id int, p geom.Point3) (Event, bool) {
	idx, ok := c.active[id]
	if !ok {
		return Event{}, false
	}
	kind := c.kinds[id]
	if kind == Gesture {
		p.Z = 0
	}
	s := c.strokes[idx]
	if n := len(s); n > 0 && s[n-1] == p {
		return Event{}, false
	}
	c.strokes[idx] = append(s, p)

	if kind == Pinch {
		return Event{Type: EventPinch, Points: append(geom.Stroke(nil), c.strokes[idx]...)}, true
	}
	c.pending = true
	return Event{}, false
}

// Frame reports the gesture once per tick if it changed since the last
// call.
func (c *Capture) Frame() (Event, bool) {
	if !c.pending {
		return Event{}, false
	}
	c.pending = false
	return Event{Type: EventGesture, Strokes: c.Strokes()}, true
}

// End detaches the pointer. The stroke stays part of the current set.
func (c *Capture) End(id int) (Event, bool) {
	kind, ok := c.kinds[id]
	if !ok {
		return Event{}, false
	}
	delete(c.active, id)
	delete(c.kinds, id)
	if kind == Pinch {
		return Event{Type: EventPinchEnd}, true
	}
	return Event{}, false
}

// Finish closes a gesture in progress, flushing any pending update first.
func (c *Capture) Finish() []Event {
	if c.state != StateGesture {
		return nil
	}
	var events []Event
	if ev, ok := c.Frame(); ok {
		events = append(events, ev)
	}
	c.clean()
	return append(events, Event{Type: EventGestureEnd})
}

// Strokes returns a copy of the current stroke set.
func (c *Capture) Strokes() []geom.Stroke {
	out := make([]geom.Stroke, len(c.strokes))
	for i, s := range c.strokes {
		out[i] = append(geom.Stroke(nil), s...)
	}
	return out
}

func (c *Capture) start(id int, kind Kind) {
	c.active[id] = len(c.strokes)
	c.kinds[id] = kind
	c.strokes = append(c.strokes, nil)
}

func (c *Capture) clean() {
	c.strokes = nil
	c.pending = false
	clear(c.active)
	clear(c.kinds)
	c.state = StateClean
}
