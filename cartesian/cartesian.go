// Package cartesian maps between a chart's data space and the pixel space
// of the rectangle it is drawn into.
//
// Data space grows upward along Y; pixel space has its origin at the top
// left and grows downward, so the Y transform is inverted.
package cartesian

import (
	"gioui.org/f32"
	"github.com/chewxy/math32"
	"golang.org/x/exp/constraints"
)

// Range is a closed interval of data values.
type Range struct {
	Min, Max float32
}

// EmptyRange returns the inverted range [+Inf, -Inf]. It contributes
// nothing when combined with Union and reports Empty.
func EmptyRange() Range {
	return Range{Min: math32.Inf(1), Max: math32.Inf(-1)}
}

// Empty reports whether r contains no values.
func (r Range) Empty() bool {
	return !(r.Min <= r.Max)
}

// Len returns the length of the interval. Empty ranges have length zero.
func (r Range) Len() float32 {
	if r.Empty() {
		return 0
	}
	return r.Max - r.Min
}

// Center returns the midpoint of the interval.
func (r Range) Center() float32 {
	return r.Min + r.Len()/2
}

// Contains reports whether v lies within the closed interval.
func (r Range) Contains(v float32) bool {
	return v >= r.Min && v <= r.Max
}

// Include grows r so that it contains v. NaN is ignored.
func (r Range) Include(v float32) Range {
	if math32.IsNaN(v) {
		return r
	}
	return Range{Min: min(r.Min, v), Max: max(r.Max, v)}
}

// Union returns the smallest range containing both r and o. An empty
// operand is ignored.
func (r Range) Union(o Range) Range {
	switch {
	case o.Empty():
		return r
	case r.Empty():
		return o
	}
	return Range{Min: min(r.Min, o.Min), Max: max(r.Max, o.Max)}
}

// Shift translates the range by d.
func (r Range) Shift(d float32) Range {
	return Range{Min: r.Min + d, Max: r.Max + d}
}

// Scale grows or shrinks the range by factor around the value at.
func (r Range) Scale(at, factor float32) Range {
	return Range{
		Min: at - (at-r.Min)*factor,
		Max: at + (r.Max-at)*factor,
	}
}

// Axis is the transform for one dimension of a Plane.
type Axis struct {
	// Min and Max bound the data range shown along this axis.
	Min, Max float32
	// Length is Max-Min.
	Length float32
	// Scale is the number of pixels per data unit.
	Scale float32
	// MarginMin and MarginMax are the pixel margins before and after the
	// data area.
	MarginMin, MarginMax float32
}

// NewAxis builds the transform of r onto pixels pixels, reserving
// marginMin and marginMax pixels at either end.
//
// A zero-length range uses the full pixel length as its scale so that the
// transform stays finite.
func NewAxis(r Range, marginMin, marginMax, pixels float32) Axis {
	length := r.Max - r.Min
	var scale float32
	if length == 0 || math32.IsNaN(length) || math32.IsInf(length, 0) {
		scale = pixels
	} else {
		scale = (pixels - (marginMin + marginMax)) / length
	}
	return Axis{
		Min:       r.Min,
		Max:       r.Max,
		Length:    length,
		Scale:     scale,
		MarginMin: marginMin,
		MarginMax: marginMax,
	}
}

// Range returns the data range of the axis.
func (a Axis) Range() Range {
	return Range{Min: a.Min, Max: a.Max}
}

// Center returns the midpoint of the axis data range.
func (a Axis) Center() float32 {
	return a.Min + a.Length/2
}

// Plane is the pair of axis transforms for one layout pass.
type Plane struct {
	X, Y Axis
}

// NewPlane builds a Plane for a size in pixels. Margins are given in pixels
// as left, right, bottom, top.
func NewPlane(x, y Range, size f32.Point, left, right, bottom, top float32) Plane {
	return Plane{
		X: NewAxis(x, left, right, size.X),
		Y: NewAxis(y, bottom, top, size.Y),
	}
}

// ToScreenX maps a data x value to a pixel column.
func (p *Plane) ToScreenX(v float32) float32 {
	return (v-p.X.Min)*p.X.Scale + p.X.MarginMin
}

// ToScreenY maps a data y value to a pixel row.
func (p *Plane) ToScreenY(v float32) float32 {
	return (p.Y.Max-v)*p.Y.Scale + p.Y.MarginMax
}

// ToScreen maps a data-space point to pixel space.
func (p *Plane) ToScreen(pt f32.Point) f32.Point {
	return f32.Pt(p.ToScreenX(pt.X), p.ToScreenY(pt.Y))
}

// ToDataX is the inverse of ToScreenX.
func (p *Plane) ToDataX(px float32) float32 {
	if p.X.Scale == 0 {
		return p.X.Min
	}
	return (px-p.X.MarginMin)/p.X.Scale + p.X.Min
}

// ToDataY is the inverse of ToScreenY.
func (p *Plane) ToDataY(py float32) float32 {
	if p.Y.Scale == 0 {
		return p.Y.Min
	}
	return p.Y.Max - (py-p.Y.MarginMax)/p.Y.Scale
}

// ToData maps a pixel-space point to data space.
func (p *Plane) ToData(pt f32.Point) f32.Point {
	return f32.Pt(p.ToDataX(pt.X), p.ToDataY(pt.Y))
}

// Offset maps a pixel-space point to data space relative to the center of
// the visible ranges. Drag handlers use it to compute deltas that do not
// depend on the current pan position.
func (p *Plane) Offset(pt f32.Point) f32.Point {
	d := p.ToData(pt)
	return f32.Pt(d.X-p.X.Center(), d.Y-p.Y.Center())
}

// BottomLeft is the data-space left end of the X axis baseline.
func (p *Plane) BottomLeft() f32.Point { return f32.Pt(p.X.Min, 0) }

// BottomRight is the data-space right end of the X axis baseline.
func (p *Plane) BottomRight() f32.Point { return f32.Pt(p.X.Max, 0) }

// BottomCenter is the data-space lower end of the Y axis baseline.
func (p *Plane) BottomCenter() f32.Point { return f32.Pt(0, p.Y.Min) }

// TopCenter is the data-space upper end of the Y axis baseline.
func (p *Plane) TopCenter() f32.Point { return f32.Pt(0, p.Y.Max) }

// QueryRect converts a pixel-sized box centered on a data-space point into
// the data-space rectangle it covers at the current scale. Hit targets
// therefore keep a constant on-screen size at every zoom level.
func (p *Plane) QueryRect(center, box f32.Point) Rect {
	w := box.X / nonZero(p.X.Scale)
	h := box.Y / nonZero(p.Y.Scale)
	return Rect{
		Min: f32.Pt(center.X-w/2, center.Y-h/2),
		Max: f32.Pt(center.X+w/2, center.Y+h/2),
	}
}

// Rect is an axis-aligned rectangle with inclusive bounds.
type Rect struct {
	Min, Max f32.Point
}

// Dx returns the width of r.
func (r Rect) Dx() float32 { return r.Max.X - r.Min.X }

// Dy returns the height of r.
func (r Rect) Dy() float32 { return r.Max.Y - r.Min.Y }

// Contains reports whether pt lies inside r, bounds included.
func (r Rect) Contains(pt f32.Point) bool {
	return pt.X >= r.Min.X && pt.X <= r.Max.X && pt.Y >= r.Min.Y && pt.Y <= r.Max.Y
}

func nonZero(v float32) float32 {
	if v == 0 {
		return 1
	}
	return v
}

// Clamp limits v to [lo, hi]. If lo > hi, lo wins.
func Clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	return max(lo, min(v, hi))
}

// Ceil rounds a toward positive infinity.
func Ceil[T constraints.Integer | constraints.Float](a T) T {
	return T(math32.Ceil(float32(a)))
}

// Floor rounds a toward negative infinity.
func Floor[T constraints.Integer | constraints.Float](a T) T {
	return T(math32.Floor(float32(a)))
}
