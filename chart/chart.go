// Package chart implements an interactive two-dimensional chart widget.
//
// A Chart is the per-frame configuration: ranges, margins, axis styling,
// the series to draw and the callbacks that turn pointer input into host
// messages. Everything that must survive between frames lives in a State
// owned by the host.
package chart

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"git.sr.ht/~whereswaldon/prism/canvas"
	"git.sr.ht/~whereswaldon/prism/cartesian"
	"git.sr.ht/~whereswaldon/prism/series"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// Chart describes a chart for one frame. ID identifies hittable series in
// interaction results and M is the host message produced by the
// callbacks.
type Chart[ID comparable, M any] struct {
	// Width and Height fix the widget size. Zero fills the constraints.
	Width, Height unit.Dp
	Shaping       Shaping
	Margin        Margin

	XRange, YRange AxisRange
	XAxis, YAxis   Axis
	XTicks, YTicks Tick
	XLabels        Labels
	YLabels        Labels

	Series []series.Series

	// Cache, if set, memoizes the chart geometry between frames. The host
	// clears it whenever the data or styling changes.
	Cache *canvas.Cache

	OnPress   func(*Interaction[ID]) M
	OnRelease func(*Interaction[ID]) M
	OnMove    func(*Interaction[ID]) M
	OnScroll  func(*Interaction[ID]) M
}

// New returns a chart with default axis styling and automatic ranges.
func New[ID comparable, M any]() *Chart[ID, M] {
	return &Chart[ID, M]{
		XAxis:   DefaultAxis(),
		YAxis:   DefaultAxis(),
		XTicks:  DefaultTick(),
		YTicks:  DefaultTick(),
		XLabels: DefaultLabels(),
		YLabels: DefaultLabels(),
	}
}

// Push appends series to the chart.
func (c *Chart[ID, M]) Push(s ...series.Series) *Chart[ID, M] {
	c.Series = append(c.Series, s...)
	return c
}

// size resolves the widget size within the constraints.
func (c *Chart[ID, M]) size(gtx C) image.Point {
	sz := gtx.Constraints.Max
	if c.Width > 0 {
		sz.X = gtx.Dp(c.Width)
	}
	if c.Height > 0 {
		sz.Y = gtx.Dp(c.Height)
	}
	return gtx.Constraints.Constrain(sz)
}

// Layout processes pending input, updates state for the new size and draws
// the chart. Messages produced while processing input are discarded; hosts
// that need them call Update before Layout.
func (c *Chart[ID, M]) Layout(gtx C, th *material.Theme, state *State[ID]) D {
	for {
		if _, ok := c.Update(gtx, state); !ok {
			break
		}
	}
	size := c.size(gtx)
	c.layout(state, size, gtx.Metric)

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, state)

	var m canvas.Measurer = canvas.MonoMeasurer{}
	if c.Shaping == ShapingAdvanced {
		m = canvas.ShaperMeasurer{Gtx: gtx, Theme: th}
	}
	if g := c.draw(state, gtx.Metric, th.Fg, m); g != nil {
		g.Paint(gtx, th)
	}
	return D{Size: size}
}

// layout prepares state for a frame of the given size: it resolves the
// ranges, rebuilds the plane and refreshes the collision index.
func (c *Chart[ID, M]) layout(state *State[ID], size image.Point, m unit.Metric) {
	xr := c.XRange.resolve(c.Series, series.Series.XRange)
	yr := c.YRange.resolve(c.Series, series.Series.YRange)
	state.plane = cartesian.NewPlane(xr, yr, f32.Pt(float32(size.X), float32(size.Y)),
		dp(m, c.Margin.Left), dp(m, c.Margin.Right),
		dp(m, c.Margin.Bottom), dp(m, c.Margin.Top),
	)
	state.size = size
	state.laidOut = true
	state.index.Reset()
	for _, s := range c.Series {
		if id, ok := s.(series.Identified[ID]); ok {
			state.index.Insert(id.ID(), id.Entries())
		}
	}
}

// draw returns the geometry for state, or nil if the chart is too small to
// draw into.
func (c *Chart[ID, M]) draw(state *State[ID], m unit.Metric, fg color.NRGBA, meas canvas.Measurer) *canvas.Geometry {
	if !state.laidOut || state.size.X < 1 || state.size.Y < 1 {
		return nil
	}
	plane := state.plane
	mono := c.Shaping == ShapingBasic
	return c.Cache.Draw(state.size, func(f *canvas.Frame) {
		for _, s := range c.Series {
			s.Draw(f, &plane)
		}
		a := axisStyle{
			axis:   c.XAxis.withDefaults(fg),
			tick:   c.XTicks.withDefaults(fg),
			labels: c.XLabels.withDefaults(fg),
			metric: m,
			mono:   mono,
		}
		drawXAxis(f, &plane, a, meas)
		a.axis = c.YAxis.withDefaults(fg)
		a.tick = c.YTicks.withDefaults(fg)
		a.labels = c.YLabels.withDefaults(fg)
		drawYAxis(f, &plane, a, meas)
	})
}

// dp converts v to pixels. A zero metric is treated as one pixel per dp.
func dp(m unit.Metric, v unit.Dp) float32 {
	if m.PxPerDp == 0 {
		return float32(v)
	}
	return float32(v) * m.PxPerDp
}

// sp converts v to pixels. A zero metric is treated as one pixel per sp.
func sp(m unit.Metric, v unit.Sp) float32 {
	if m.PxPerSp == 0 {
		return float32(v)
	}
	return float32(v) * m.PxPerSp
}
