package chart

import (
	"image"
	"slices"

	"gioui.org/f32"
	"gioui.org/io/pointer"
	"git.sr.ht/~whereswaldon/prism/cartesian"
	"git.sr.ht/~whereswaldon/prism/items"
	"git.sr.ht/~whereswaldon/prism/series"
)

// State is the part of a chart that persists between frames. The zero
// value is ready to use. A State must not be shared between charts.
type State[ID comparable] struct {
	plane   cartesian.Plane
	size    image.Point
	laidOut bool

	index items.Index[ID, int]

	cursor, prev       f32.Point
	hasCursor, hasPrev bool

	scroll    f32.Point
	hasScroll bool

	hits    []items.Hit[ID, int]
	hasHits bool

	// buttons are the mouse buttons held after the last pointer event.
	buttons pointer.Buttons
}

// Plane returns the coordinate mapping of the last layout.
func (s *State[ID]) Plane() (cartesian.Plane, bool) {
	return s.plane, s.laidOut
}

// Size returns the pixel size of the last layout.
func (s *State[ID]) Size() image.Point {
	return s.size
}

// contains reports whether pos lies within the laid out bounds.
func (s *State[ID]) contains(pos f32.Point) bool {
	if !s.laidOut {
		return false
	}
	return pos.X >= 0 && pos.Y >= 0 &&
		pos.X <= float32(s.size.X) && pos.Y <= float32(s.size.Y)
}

// moveCursor records pos as the current cursor, keeping the old one as the
// previous cursor.
func (s *State[ID]) moveCursor(pos f32.Point) {
	s.prev, s.hasPrev = s.cursor, s.hasCursor
	s.cursor, s.hasCursor = pos, true
}

// resolveHits replaces the stored hits with the items of identified series
// within each series' collision box around the cursor.
func (s *State[ID]) resolveHits(list []series.Series) {
	s.hits = s.hits[:0]
	s.hasHits = true
	center := s.plane.ToData(s.cursor)
	for _, sr := range list {
		id, ok := sr.(series.Identified[ID])
		if !ok {
			continue
		}
		want := id.ID()
		for _, h := range s.index.Query(s.plane.QueryRect(center, id.CollisionBox())) {
			if h.Series == want {
				s.hits = append(s.hits, h)
			}
		}
	}
}

// snapshot captures the state for a callback.
func (s *State[ID]) snapshot(kind Kind) *Interaction[ID] {
	return &Interaction[ID]{
		kind:      kind,
		plane:     s.plane,
		hasPlane:  s.laidOut,
		cursor:    s.cursor,
		hasCursor: s.hasCursor,
		prev:      s.prev,
		hasPrev:   s.hasPrev,
		scroll:    s.scroll,
		hasScroll: s.hasScroll,
		hits:      slices.Clone(s.hits),
		hasHits:   s.hasHits,
	}
}

// Interaction is a read-only view of the chart state handed to callbacks.
type Interaction[ID comparable] struct {
	kind Kind

	plane    cartesian.Plane
	hasPlane bool

	cursor, prev       f32.Point
	hasCursor, hasPrev bool

	scroll    f32.Point
	hasScroll bool

	hits    []items.Hit[ID, int]
	hasHits bool
}

// Kind returns the kind of event that triggered the callback.
func (i *Interaction[ID]) Kind() Kind {
	return i.kind
}

// Cursor returns the pointer position in pixels relative to the chart.
func (i *Interaction[ID]) Cursor() (f32.Point, bool) {
	return i.cursor, i.hasCursor
}

// PreviousCursor returns the pointer position before the current event.
func (i *Interaction[ID]) PreviousCursor() (f32.Point, bool) {
	return i.prev, i.hasPrev
}

// Coords returns the cursor in data space.
func (i *Interaction[ID]) Coords() (f32.Point, bool) {
	if !i.hasPlane || !i.hasCursor {
		return f32.Point{}, false
	}
	return i.plane.ToData(i.cursor), true
}

// PreviousCoords returns the previous cursor in data space.
func (i *Interaction[ID]) PreviousCoords() (f32.Point, bool) {
	if !i.hasPlane || !i.hasPrev {
		return f32.Point{}, false
	}
	return i.plane.ToData(i.prev), true
}

// Offset returns the data-space distance of the cursor from the center of
// the visible ranges.
func (i *Interaction[ID]) Offset() (f32.Point, bool) {
	if !i.hasPlane || !i.hasCursor {
		return f32.Point{}, false
	}
	return i.plane.Offset(i.cursor), true
}

// XRange returns the visible x range.
func (i *Interaction[ID]) XRange() (cartesian.Range, bool) {
	return i.plane.X.Range(), i.hasPlane
}

// YRange returns the visible y range.
func (i *Interaction[ID]) YRange() (cartesian.Range, bool) {
	return i.plane.Y.Range(), i.hasPlane
}

// Plane returns the coordinate mapping in effect.
func (i *Interaction[ID]) Plane() (cartesian.Plane, bool) {
	return i.plane, i.hasPlane
}

// Scroll returns the last scroll delta seen over the chart.
func (i *Interaction[ID]) Scroll() (f32.Point, bool) {
	return i.scroll, i.hasScroll
}

// Items returns the items under the cursor as of the last move. The
// returned slice belongs to the Interaction.
func (i *Interaction[ID]) Items() ([]items.Hit[ID, int], bool) {
	return i.hits, i.hasHits
}

// Item returns the first item under the cursor.
func (i *Interaction[ID]) Item() (items.Hit[ID, int], bool) {
	if len(i.hits) == 0 {
		return items.Hit[ID, int]{}, false
	}
	return i.hits[0], true
}
