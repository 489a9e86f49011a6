package chart

import (
	"gioui.org/f32"
	"gioui.org/text"
	"gioui.org/unit"
	"git.sr.ht/~whereswaldon/prism/canvas"
	"git.sr.ht/~whereswaldon/prism/cartesian"
	"github.com/aclements/go-moremath/scale"
	"github.com/chewxy/math32"
)

// axisStyle is the resolved styling for one axis.
type axisStyle struct {
	axis   Axis
	tick   Tick
	labels Labels
	metric unit.Metric
	mono   bool
}

func (a axisStyle) axisStroke() canvas.Stroke {
	return canvas.Stroke{Width: dp(a.metric, a.axis.Width), Color: a.axis.Color}
}

func (a axisStyle) tickStroke() canvas.Stroke {
	return canvas.Stroke{Width: dp(a.metric, a.tick.Width), Color: a.tick.Color}
}

func (a axisStyle) label(v float32, at f32.Point, alignX text.Alignment, alignY canvas.VAlign) canvas.Text {
	return canvas.Text{
		Content:  a.labels.Format(v),
		Position: at,
		Size:     sp(a.metric, a.labels.Size),
		Color:    a.labels.Color,
		AlignX:   alignX,
		AlignY:   alignY,
		Mono:     a.mono,
	}
}

// ticks returns the tick values within r. Without Nice the range is split
// into Amount equal intervals and ticks fall on integer multiples of the
// interval, so that zero is always a tick when it is in range.
func ticks(r cartesian.Range, t Tick) []float32 {
	if r.Empty() || t.Amount <= 0 || math32.IsInf(r.Len(), 0) || math32.IsNaN(r.Len()) {
		return nil
	}
	if t.Nice {
		return niceTicks(r, t.Amount)
	}
	spacing := r.Len() / float32(t.Amount)
	if !(spacing > 0) || math32.IsInf(spacing, 0) {
		return nil
	}
	first := math32.Ceil(r.Min / spacing)
	last := math32.Floor(r.Max / spacing)
	n := int(last-first) + 1
	if n <= 0 {
		return nil
	}
	// Rounding of first and last can add at most one tick at each end.
	n = min(n, t.Amount+3)
	out := make([]float32, 0, n)
	for i := 0; i < n; i++ {
		v := (first + float32(i)) * spacing
		if v > r.Max {
			break
		}
		out = append(out, v)
	}
	return out
}

func niceTicks(r cartesian.Range, amount int) []float32 {
	if r.Len() == 0 {
		return []float32{r.Min}
	}
	lin := scale.Linear{Min: float64(r.Min), Max: float64(r.Max)}
	major, _ := lin.Ticks(scale.TickOptions{Max: amount + 1})
	out := make([]float32, 0, len(major))
	for _, v := range major {
		if f := float32(v); r.Contains(f) {
			out = append(out, f)
		}
	}
	return out
}

// drawXAxis draws the horizontal axis at y = 0, clamped so that the axis
// and its labels stay inside the frame.
func drawXAxis(f *canvas.Frame, p *cartesian.Plane, a axisStyle, m canvas.Measurer) {
	size := f.Size()
	gap := dp(a.metric, labelGap)
	labelHeight := m.Measure(a.label(0, f32.Point{}, text.Middle, canvas.Top)).Y
	y := cartesian.Clamp(p.ToScreenY(0), 0, size.Y-labelHeight-gap)
	f.StrokeLine(
		f32.Pt(p.ToScreenX(p.X.Min), y),
		f32.Pt(p.ToScreenX(p.X.Max), y),
		a.axisStroke(),
	)
	half := dp(a.metric, a.tick.Height) / 2
	for _, v := range ticks(p.X.Range(), a.tick) {
		x := p.ToScreenX(v)
		f.StrokeLine(f32.Pt(x, y-half), f32.Pt(x, y+half), a.tickStroke())
		f.FillText(a.label(v, f32.Pt(x, y+gap), text.Middle, canvas.Top))
	}
}

// drawYAxis draws the vertical axis at x = 0, clamped so that the axis and
// its labels stay inside the frame. The zero tick is left to the x axis.
func drawYAxis(f *canvas.Frame, p *cartesian.Plane, a axisStyle, m canvas.Measurer) {
	size := f.Size()
	gap := dp(a.metric, labelGap)
	values := ticks(p.Y.Range(), a.tick)
	var widest float32
	for _, v := range values {
		if v == 0 {
			continue
		}
		widest = max(widest, m.Measure(a.label(v, f32.Point{}, text.End, canvas.Center)).X)
	}
	x := cartesian.Clamp(p.ToScreenX(0), widest+gap, size.X)
	f.StrokeLine(
		f32.Pt(x, p.ToScreenY(p.Y.Min)),
		f32.Pt(x, p.ToScreenY(p.Y.Max)),
		a.axisStroke(),
	)
	half := dp(a.metric, a.tick.Height) / 2
	for _, v := range values {
		if v == 0 {
			continue
		}
		y := p.ToScreenY(v)
		f.StrokeLine(f32.Pt(x-half, y), f32.Pt(x+half, y), a.tickStroke())
		f.FillText(a.label(v, f32.Pt(x-gap, y), text.End, canvas.Center))
	}
}
