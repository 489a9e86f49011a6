package canvas

import (
	"image"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"gioui.org/x/stroke"
	"github.com/chewxy/math32"
)

const monoTypeface font.Typeface = "Go Mono, monospace"

// Paint replays the geometry into gtx.Ops. Text is shaped with th.
func (g *Geometry) Paint(gtx layout.Context, th *material.Theme) {
	for _, s := range g.Shapes {
		switch s := s.(type) {
		case Line:
			strokeSegments(gtx.Ops, s.Stroke, stroke.MoveTo(s.From), stroke.LineTo(s.To))
		case Polyline:
			segs := make([]stroke.Segment, 0, len(s.Points))
			segs = append(segs, stroke.MoveTo(s.Points[0]))
			for _, p := range s.Points[1:] {
				segs = append(segs, stroke.LineTo(p))
			}
			strokeSegments(gtx.Ops, s.Stroke, segs...)
		case FilledCircle:
			var p clip.Path
			p.Begin(gtx.Ops)
			p.MoveTo(f32.Pt(s.Center.X+s.Radius, s.Center.Y))
			p.ArcTo(s.Center, s.Center, 2*math32.Pi)
			p.Close()
			paint.FillShape(gtx.Ops, s.Color, clip.Outline{Path: p.End()}.Op())
		case StrokedCircle:
			strokeSegments(gtx.Ops, s.Stroke,
				stroke.MoveTo(f32.Pt(s.Center.X+s.Radius, s.Center.Y)),
				stroke.ArcTo(s.Center, 2*math32.Pi),
			)
		case Text:
			paintText(gtx, th, s)
		}
	}
}

func strokeSegments(ops *op.Ops, s Stroke, segs ...stroke.Segment) {
	if s.Width <= 0 {
		return
	}
	area := stroke.Stroke{
		Path:  stroke.Path{Segments: segs},
		Width: s.Width,
		Cap:   stroke.RoundCap,
		Join:  stroke.RoundJoin,
	}.Op(ops)
	paint.FillShape(ops, s.Color, area)
}

func label(gtx layout.Context, th *material.Theme, t Text) (layout.Dimensions, op.CallOp) {
	pxPerSp := gtx.Metric.PxPerSp
	if pxPerSp == 0 {
		pxPerSp = 1
	}
	l := material.Label(th, unit.Sp(t.Size/pxPerSp), t.Content)
	l.Color = t.Color
	l.MaxLines = 1
	if t.Mono {
		l.Font.Typeface = monoTypeface
	}
	gtx.Constraints = layout.Constraints{Max: image.Pt(1e6, 1e6)}
	macro := op.Record(gtx.Ops)
	dims := l.Layout(gtx)
	return dims, macro.Stop()
}

func paintText(gtx layout.Context, th *material.Theme, t Text) {
	dims, call := label(gtx, th, t)
	at := anchor(t, f32.Pt(float32(dims.Size.X), float32(dims.Size.Y)))
	stack := op.Offset(image.Pt(int(at.X), int(at.Y))).Push(gtx.Ops)
	call.Add(gtx.Ops)
	stack.Pop()
}

// anchor returns the top left corner of a label of the given size.
func anchor(t Text, size f32.Point) f32.Point {
	at := t.Position
	switch t.AlignX {
	case text.Middle:
		at.X -= size.X / 2
	case text.End:
		at.X -= size.X
	}
	switch t.AlignY {
	case Center:
		at.Y -= size.Y / 2
	case Bottom:
		at.Y -= size.Y
	}
	return at
}
