// Package items implements the collision index used to hit-test chart
// items under the cursor.
//
// The index is a two level ordered structure: buckets ordered by x, each
// holding rows ordered by y. A rectangle query binary searches the x
// buckets and then the y rows of each matching bucket, so the cost of a
// query is O(log n + k) for k matches.
package items

import (
	"cmp"
	"slices"

	"gioui.org/f32"
	"git.sr.ht/~whereswaldon/prism/cartesian"
	"github.com/chewxy/math32"
)

// Entry is one hit-testable item: its id within a series and its location
// in data space.
type Entry[I any] struct {
	ID       I
	Location f32.Point
}

// Hit identifies an item found by a query.
type Hit[S, I any] struct {
	Series S
	Item   I
}

type row[S, I any] struct {
	y    float32
	hits []Hit[S, I]
}

type column[S, I any] struct {
	x    float32
	rows []row[S, I]
}

type pending[S, I any] struct {
	at  f32.Point
	hit Hit[S, I]
}

// Index is a collision index keyed by data-space coordinates. The zero
// value is an empty index ready for use.
//
// Items sharing an exact coordinate are all kept, in insertion order.
type Index[S, I any] struct {
	pending []pending[S, I]
	columns []column[S, I]
	size    int
}

// Insert adds every entry of a series. Entries with a NaN coordinate have
// no place in the ordering and are rejected; the number rejected is
// returned.
func (ix *Index[S, I]) Insert(series S, entries []Entry[I]) (rejected int) {
	for _, e := range entries {
		if math32.IsNaN(e.Location.X) || math32.IsNaN(e.Location.Y) {
			rejected++
			continue
		}
		ix.pending = append(ix.pending, pending[S, I]{
			at:  e.Location,
			hit: Hit[S, I]{Series: series, Item: e.ID},
		})
	}
	ix.size += len(entries) - rejected
	return rejected
}

// Len returns the number of items stored.
func (ix *Index[S, I]) Len() int {
	return ix.size
}

// Reset empties the index, keeping allocated storage.
func (ix *Index[S, I]) Reset() {
	ix.pending = ix.pending[:0]
	ix.columns = ix.columns[:0]
	ix.size = 0
}

// build merges pending entries into the ordered buckets.
func (ix *Index[S, I]) build() {
	if len(ix.pending) == 0 {
		return
	}
	all := make([]pending[S, I], 0, ix.size)
	for _, c := range ix.columns {
		for _, r := range c.rows {
			for _, h := range r.hits {
				all = append(all, pending[S, I]{at: f32.Pt(c.x, r.y), hit: h})
			}
		}
	}
	all = append(all, ix.pending...)
	// A stable sort keeps insertion order among identical coordinates.
	slices.SortStableFunc(all, func(a, b pending[S, I]) int {
		if c := cmp.Compare(a.at.X, b.at.X); c != 0 {
			return c
		}
		return cmp.Compare(a.at.Y, b.at.Y)
	})
	ix.columns = ix.columns[:0]
	for _, p := range all {
		if n := len(ix.columns); n == 0 || ix.columns[n-1].x != p.at.X {
			ix.columns = append(ix.columns, column[S, I]{x: p.at.X})
		}
		c := &ix.columns[len(ix.columns)-1]
		if n := len(c.rows); n == 0 || c.rows[n-1].y != p.at.Y {
			c.rows = append(c.rows, row[S, I]{y: p.at.Y})
		}
		r := &c.rows[len(c.rows)-1]
		r.hits = append(r.hits, p.hit)
	}
	ix.pending = ix.pending[:0]
}

// Query returns every item whose location lies within rect, bounds
// included. Results are ordered by x, then y, then insertion.
func (ix *Index[S, I]) Query(rect cartesian.Rect) []Hit[S, I] {
	ix.build()
	if rect.Min.X > rect.Max.X || rect.Min.Y > rect.Max.Y {
		return nil
	}
	first, _ := slices.BinarySearchFunc(ix.columns, rect.Min.X, func(c column[S, I], x float32) int {
		return cmp.Compare(c.x, x)
	})
	var out []Hit[S, I]
	for _, c := range ix.columns[first:] {
		if c.x > rect.Max.X {
			break
		}
		lo, _ := slices.BinarySearchFunc(c.rows, rect.Min.Y, func(r row[S, I], y float32) int {
			return cmp.Compare(r.y, y)
		})
		for _, r := range c.rows[lo:] {
			if r.y > rect.Max.Y {
				break
			}
			out = append(out, r.hits...)
		}
	}
	return out
}
