// Package canvas holds the drawable geometry produced by a chart: a
// display list of strokes, circles and text labels in pixel space. A
// Geometry is independent of any particular frame's op list, which lets it
// be cached across frames and painted into Gio ops on demand.
package canvas

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/text"
)

// Shape is one drawing primitive of a Geometry.
type Shape interface {
	isShape()
}

// Stroke describes how a path outline is painted.
type Stroke struct {
	Width float32
	Color color.NRGBA
}

// Line is a single straight stroke.
type Line struct {
	From, To f32.Point
	Stroke   Stroke
}

// Polyline is one continuous stroke through Points.
type Polyline struct {
	Points []f32.Point
	Stroke Stroke
}

// FilledCircle is a solid disc.
type FilledCircle struct {
	Center f32.Point
	Radius float32
	Color  color.NRGBA
}

// StrokedCircle is the outline of a circle.
type StrokedCircle struct {
	Center f32.Point
	Radius float32
	Stroke Stroke
}

// VAlign is the vertical anchor of a Text.
type VAlign uint8

const (
	Top VAlign = iota
	Center
	Bottom
)

// Text is a single line label anchored at Position.
type Text struct {
	Content  string
	Position f32.Point
	// Size is the font size in pixels.
	Size  float32
	Color color.NRGBA
	// AlignX anchors Position at the start, middle or end of the label.
	AlignX text.Alignment
	AlignY VAlign
	// Mono requests a monospace face.
	Mono bool
}

func (Line) isShape()          {}
func (Polyline) isShape()      {}
func (FilledCircle) isShape()  {}
func (StrokedCircle) isShape() {}
func (Text) isShape()          {}

// Frame collects shapes for one rendering of a chart.
type Frame struct {
	size   f32.Point
	shapes []Shape
}

// NewFrame returns an empty frame of the given pixel size.
func NewFrame(size f32.Point) *Frame {
	return &Frame{size: size}
}

// Size returns the size of the frame in pixels.
func (f *Frame) Size() f32.Point {
	return f.size
}

// StrokeLine adds a straight line from a to b.
func (f *Frame) StrokeLine(a, b f32.Point, s Stroke) {
	f.shapes = append(f.shapes, Line{From: a, To: b, Stroke: s})
}

// StrokePolyline adds a stroke through pts. Fewer than two points draw
// nothing.
func (f *Frame) StrokePolyline(pts []f32.Point, s Stroke) {
	if len(pts) < 2 {
		return
	}
	f.shapes = append(f.shapes, Polyline{Points: pts, Stroke: s})
}

// FillCircle adds a solid disc.
func (f *Frame) FillCircle(center f32.Point, radius float32, c color.NRGBA) {
	f.shapes = append(f.shapes, FilledCircle{Center: center, Radius: radius, Color: c})
}

// StrokeCircle adds a circle outline.
func (f *Frame) StrokeCircle(center f32.Point, radius float32, s Stroke) {
	if s.Width <= 0 {
		return
	}
	f.shapes = append(f.shapes, StrokedCircle{Center: center, Radius: radius, Stroke: s})
}

// FillText adds a text label.
func (f *Frame) FillText(t Text) {
	f.shapes = append(f.shapes, t)
}

// Geometry returns the finished display list.
func (f *Frame) Geometry() *Geometry {
	return &Geometry{
		Size:   image.Pt(int(f.size.X), int(f.size.Y)),
		Shapes: f.shapes,
	}
}

// Geometry is a finished, immutable display list.
type Geometry struct {
	Size   image.Point
	Shapes []Shape
}

// Cache memoizes the geometry of a chart keyed by its pixel size. The
// owner calls Clear whenever the content being drawn changes.
type Cache struct {
	key  image.Point
	geom *Geometry
}

// Clear drops the cached geometry.
func (c *Cache) Clear() {
	c.geom = nil
}

// Draw returns the cached geometry for size, invoking fn to rebuild it if
// the cache is empty or was built for another size. A nil Cache always
// rebuilds.
func (c *Cache) Draw(size image.Point, fn func(*Frame)) *Geometry {
	if c != nil && c.geom != nil && c.key == size {
		return c.geom
	}
	f := NewFrame(f32.Pt(float32(size.X), float32(size.Y)))
	fn(f)
	g := f.Geometry()
	if c != nil {
		c.key = size
		c.geom = g
	}
	return g
}
