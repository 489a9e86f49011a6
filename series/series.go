// Package series provides the datasets a chart draws.
//
// Every series can draw itself onto a canvas.Frame through a
// cartesian.Plane and report its data extents. Series that can be hit-tested
// also implement Hittable, and only become visible to the chart's
// collision index once given an identity with WithID.
package series

import (
	"gioui.org/f32"
	"git.sr.ht/~whereswaldon/prism/canvas"
	"git.sr.ht/~whereswaldon/prism/cartesian"
	"git.sr.ht/~whereswaldon/prism/items"
)

// Series is a drawable dataset.
type Series interface {
	// Draw renders the series into f using p to place data in pixel space.
	Draw(f *canvas.Frame, p *cartesian.Plane)
	// XRange and YRange return the extents of the data, or
	// cartesian.EmptyRange if there is none.
	XRange() cartesian.Range
	YRange() cartesian.Range
}

// Hittable is a series whose items can be found under the cursor.
type Hittable interface {
	Series
	// CollisionBox returns the pixel size of the area around the cursor
	// that is searched for items.
	CollisionBox() f32.Point
	// Entries returns the data-space location of every item, using the
	// item's index as its id.
	Entries() []items.Entry[int]
}

// Identified is a Hittable series carrying the id the host uses to tell
// series apart in interaction results.
type Identified[ID comparable] interface {
	Hittable
	ID() ID
}

// Tagged attaches an id to a Hittable series.
type Tagged[ID comparable] struct {
	Hittable
	id ID
}

// WithID returns s tagged with id.
func WithID[ID comparable](s Hittable, id ID) *Tagged[ID] {
	return &Tagged[ID]{Hittable: s, id: id}
}

func (t *Tagged[ID]) ID() ID {
	return t.id
}

// XY is the accessor for data that is already a point.
func XY(p f32.Point) f32.Point {
	return p
}

// extents folds the data once, returning the x and y ranges.
func extents[T any](data []T, at func(int, T) f32.Point) (x, y cartesian.Range) {
	x, y = cartesian.EmptyRange(), cartesian.EmptyRange()
	for i, item := range data {
		p := at(i, item)
		x = x.Include(p.X)
		y = y.Include(p.Y)
	}
	return x, y
}
