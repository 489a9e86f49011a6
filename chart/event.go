package chart

import (
	"image"

	"gioui.org/f32"
	"gioui.org/io/pointer"
)

// Kind classifies a chart event.
type Kind uint8

const (
	KindPress Kind = iota + 1
	KindRelease
	KindMove
	KindScroll
	KindTouchBegin
	KindTouchMove
	KindTouchEnd
)

func (k Kind) String() string {
	switch k {
	case KindPress:
		return "press"
	case KindRelease:
		return "release"
	case KindMove:
		return "move"
	case KindScroll:
		return "scroll"
	case KindTouchBegin:
		return "touch-begin"
	case KindTouchMove:
		return "touch-move"
	case KindTouchEnd:
		return "touch-end"
	default:
		return "unknown"
	}
}

// Button identifies the mouse button of a press or release.
type Button uint8

const (
	ButtonLeft Button = iota + 1
	ButtonRight
	ButtonMiddle
)

// Event is a toolkit-neutral pointer event.
type Event struct {
	Kind Kind
	// Button is set for mouse presses and releases.
	Button Button
	// Position is relative to the chart's top-left corner.
	Position f32.Point
	// NoPosition marks an event delivered without a cursor position.
	NoPosition bool
	// Scroll is the wheel delta of a scroll event.
	Scroll f32.Point
}

func (e Event) isPress() bool {
	return (e.Kind == KindPress && e.Button == ButtonLeft) || e.Kind == KindTouchBegin
}

func (e Event) isRelease() bool {
	return (e.Kind == KindRelease && e.Button == ButtonLeft) || e.Kind == KindTouchEnd
}

func (e Event) isMove() bool {
	return e.Kind == KindMove || e.Kind == KindTouchMove
}

// Handle interprets ev against state. Every positioned event updates the
// cursor; only events within the chart bounds reach a callback. At most
// one callback runs per event, tried in the order press, release, move,
// scroll. The boolean result reports whether a message was produced.
func (c *Chart[ID, M]) Handle(state *State[ID], ev Event) (M, bool) {
	var zero M
	if ev.NoPosition {
		return zero, false
	}
	state.moveCursor(ev.Position)
	if !state.contains(ev.Position) {
		return zero, false
	}
	switch {
	case ev.isPress():
		return c.invoke(c.OnPress, state, ev.Kind)
	case ev.isRelease():
		return c.invoke(c.OnRelease, state, ev.Kind)
	case ev.isMove():
		state.resolveHits(c.Series)
		return c.invoke(c.OnMove, state, ev.Kind)
	case ev.Kind == KindScroll:
		state.scroll, state.hasScroll = ev.Scroll, true
		return c.invoke(c.OnScroll, state, ev.Kind)
	}
	return zero, false
}

func (c *Chart[ID, M]) invoke(fn func(*Interaction[ID]) M, state *State[ID], kind Kind) (M, bool) {
	if fn == nil {
		var zero M
		return zero, false
	}
	return fn(state.snapshot(kind)), true
}

// Update processes pointer input targeting state until a callback
// produces a message or the queue is empty.
func (c *Chart[ID, M]) Update(gtx C, state *State[ID]) (M, bool) {
	filter := pointer.Filter{
		Target: state,
		Kinds:  pointer.Press | pointer.Release | pointer.Move | pointer.Drag | pointer.Cancel,
	}
	if c.OnScroll != nil {
		filter.Kinds |= pointer.Scroll
		filter.ScrollBounds = image.Rectangle{
			Min: image.Pt(-1e6, -1e6),
			Max: image.Pt(1e6, 1e6),
		}
	}
	for {
		e, ok := gtx.Event(filter)
		if !ok {
			break
		}
		pe, ok := e.(pointer.Event)
		if !ok {
			continue
		}
		ev, ok := state.translate(pe)
		if !ok {
			continue
		}
		if msg, ok := c.Handle(state, ev); ok {
			return msg, true
		}
	}
	var zero M
	return zero, false
}

// translate converts a Gio pointer event, tracking the held buttons to
// tell which one a release let go of.
func (s *State[ID]) translate(pe pointer.Event) (Event, bool) {
	held := s.buttons
	s.buttons = pe.Buttons
	ev := Event{Position: pe.Position}
	touch := pe.Source == pointer.Touch
	switch pe.Kind {
	case pointer.Press:
		if touch {
			ev.Kind = KindTouchBegin
			return ev, true
		}
		ev.Kind = KindPress
		ev.Button = button(pe.Buttons &^ held)
	case pointer.Release:
		if touch {
			ev.Kind = KindTouchEnd
			return ev, true
		}
		ev.Kind = KindRelease
		ev.Button = button(held &^ pe.Buttons)
	case pointer.Move, pointer.Drag:
		ev.Kind = KindMove
		if touch {
			ev.Kind = KindTouchMove
		}
	case pointer.Scroll:
		ev.Kind = KindScroll
		ev.Scroll = pe.Scroll
	case pointer.Cancel:
		s.buttons = 0
		return Event{}, false
	default:
		return Event{}, false
	}
	return ev, true
}

func button(b pointer.Buttons) Button {
	switch {
	case b.Contain(pointer.ButtonPrimary):
		return ButtonLeft
	case b.Contain(pointer.ButtonSecondary):
		return ButtonRight
	case b.Contain(pointer.ButtonTertiary):
		return ButtonMiddle
	}
	return 0
}
