package series

import (
	"image/color"

	"gioui.org/f32"
	"git.sr.ht/~whereswaldon/prism/canvas"
	"git.sr.ht/~whereswaldon/prism/cartesian"
	"git.sr.ht/~whereswaldon/prism/items"
)

// Style controls how a single point is drawn. Zero colors inherit the
// series color.
type Style struct {
	Color       color.NRGBA
	BorderColor color.NRGBA
	// Border is the outline width in pixels.
	Border float32
	// Radius is the circle radius in pixels.
	Radius float32
}

// DefaultStyle is used for points without an explicit style.
func DefaultStyle() Style {
	return Style{Border: 2, Radius: 5}
}

// PointSeries draws each item as a bordered circle.
type PointSeries[T any] struct {
	Data []T
	// XY converts an item to its data-space location.
	XY func(T) f32.Point
	// X and Y, if set, override the matching coordinate from XY.
	X, Y  func(T) float32
	Color color.NRGBA
	// Style applies to every point unless StyleFunc is set.
	Style Style
	// StyleFunc resolves the style of each item from its index.
	StyleFunc func(index int, item T) Style
	// Box is the pixel size of the hit-test area around the cursor. The
	// zero value selects a square enclosing a default point.
	Box f32.Point
}

var _ Hittable = (*PointSeries[f32.Point])(nil)

// Points returns a series of black points at data.
func Points[T any](data []T, xy func(T) f32.Point) *PointSeries[T] {
	return &PointSeries[T]{
		Data:  data,
		XY:    xy,
		Color: color.NRGBA{A: 255},
		Style: DefaultStyle(),
	}
}

func (s *PointSeries[T]) at(_ int, item T) f32.Point {
	p := s.XY(item)
	if s.X != nil {
		p.X = s.X(item)
	}
	if s.Y != nil {
		p.Y = s.Y(item)
	}
	return p
}

func (s *PointSeries[T]) style(index int, item T) Style {
	if s.StyleFunc != nil {
		return s.StyleFunc(index, item)
	}
	return s.Style
}

func inherit(c, fallback color.NRGBA) color.NRGBA {
	if c == (color.NRGBA{}) {
		return fallback
	}
	return c
}

func (s *PointSeries[T]) Draw(f *canvas.Frame, p *cartesian.Plane) {
	for i, item := range s.Data {
		st := s.style(i, item)
		center := p.ToScreen(s.at(i, item))
		f.FillCircle(center, st.Radius, inherit(st.Color, s.Color))
		f.StrokeCircle(center, st.Radius, canvas.Stroke{
			Width: st.Border,
			Color: inherit(st.BorderColor, s.Color),
		})
	}
}

func (s *PointSeries[T]) XRange() cartesian.Range {
	x, _ := extents(s.Data, s.at)
	return x
}

func (s *PointSeries[T]) YRange() cartesian.Range {
	_, y := extents(s.Data, s.at)
	return y
}

func (s *PointSeries[T]) CollisionBox() f32.Point {
	if s.Box != (f32.Point{}) {
		return s.Box
	}
	r := DefaultStyle().Radius
	return f32.Pt(2*r, 2*r)
}

func (s *PointSeries[T]) Entries() []items.Entry[int] {
	out := make([]items.Entry[int], len(s.Data))
	for i, item := range s.Data {
		out[i] = items.Entry[int]{ID: i, Location: s.at(i, item)}
	}
	return out
}
