package series

import (
	"image/color"

	"gioui.org/f32"
	"git.sr.ht/~whereswaldon/prism/canvas"
	"git.sr.ht/~whereswaldon/prism/cartesian"
)

// LineSeries draws its data as one continuous polyline.
type LineSeries[T any] struct {
	Data []T
	// XY converts an item to its data-space location.
	XY    func(T) f32.Point
	Color color.NRGBA
	// Width is the stroke width in pixels.
	Width float32
	// Visible drops points outside the plane's data ranges before the
	// line is built.
	Visible bool
}

var _ Series = (*LineSeries[f32.Point])(nil)

// Line returns a black, two pixel wide line through data.
func Line[T any](data []T, xy func(T) f32.Point) *LineSeries[T] {
	return &LineSeries[T]{
		Data:    data,
		XY:      xy,
		Color:   color.NRGBA{A: 255},
		Width:   2,
		Visible: true,
	}
}

func (l *LineSeries[T]) at(_ int, item T) f32.Point {
	return l.XY(item)
}

func (l *LineSeries[T]) Draw(f *canvas.Frame, p *cartesian.Plane) {
	xr, yr := p.X.Range(), p.Y.Range()
	pts := make([]f32.Point, 0, len(l.Data))
	for _, item := range l.Data {
		d := l.XY(item)
		if l.Visible && !(xr.Contains(d.X) && yr.Contains(d.Y)) {
			continue
		}
		pts = append(pts, p.ToScreen(d))
	}
	f.StrokePolyline(pts, canvas.Stroke{Width: l.Width, Color: l.Color})
}

func (l *LineSeries[T]) XRange() cartesian.Range {
	x, _ := extents(l.Data, l.at)
	return x
}

func (l *LineSeries[T]) YRange() cartesian.Range {
	_, y := extents(l.Data, l.at)
	return y
}
