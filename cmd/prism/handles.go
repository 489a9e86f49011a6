package main

import (
	"gioui.org/f32"
	"gioui.org/widget/material"
	"git.sr.ht/~whereswaldon/prism/canvas"
	"git.sr.ht/~whereswaldon/prism/cartesian"
	"git.sr.ht/~whereswaldon/prism/chart"
	"git.sr.ht/~whereswaldon/prism/series"
)

const handlesID = "handles"

var (
	handlesX = cartesian.Range{Min: -0.5, Max: 3.5}
	handlesY = cartesian.Range{Min: -0.5, Max: 1.5}
)

type handleOp uint8

const (
	handleGrab handleOp = iota
	handleMove
	handleDrop
)

// handleMsg is produced by the handles chart.
type handleMsg struct {
	op handleOp
	// item is the handle under the cursor, or -1.
	item int
	// offset is the cursor relative to the center of the plane.
	offset f32.Point
	ok     bool
}

type dragPhase uint8

const (
	dragNone dragPhase = iota
	// dragPending is a press that has not moved yet and may still be a
	// click.
	dragPending
	dragActive
)

// Handles is a chart of points joined by a line, where each point can be
// dragged with the pointer.
type Handles struct {
	style   Style
	points  []f32.Point
	hovered int
	phase   dragPhase
	drag    int
	last    f32.Point

	state chart.State[string]
	cache canvas.Cache
}

func NewHandles(style Style) *Handles {
	return &Handles{
		style:   style,
		points:  []f32.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 0}},
		hovered: -1,
		drag:    -1,
	}
}

func handleMessage(op handleOp) func(*chart.Interaction[string]) handleMsg {
	return func(i *chart.Interaction[string]) handleMsg {
		m := handleMsg{op: op, item: -1}
		if h, ok := i.Item(); ok {
			m.item = h.Item
		}
		m.offset, m.ok = i.Offset()
		return m
	}
}

func (h *Handles) chart() *chart.Chart[string, handleMsg] {
	c := chart.New[string, handleMsg]()
	applyStyle(h.style, c)
	c.XRange = chart.Fixed(handlesX.Min, handlesX.Max)
	c.YRange = chart.Fixed(handlesY.Min, handlesY.Max)
	c.Cache = &h.cache

	line := series.Line(h.points, series.XY)
	line.Color = h.style.Line
	points := series.Points(h.points, series.XY)
	points.Color = h.style.Handle
	points.StyleFunc = h.pointStyle
	c.Push(line, series.WithID(points, handlesID))

	c.OnPress = handleMessage(handleGrab)
	c.OnMove = handleMessage(handleMove)
	c.OnRelease = handleMessage(handleDrop)
	return c
}

func (h *Handles) pointStyle(index int, _ f32.Point) series.Style {
	st := series.DefaultStyle()
	switch {
	case h.phase != dragNone && index == h.drag:
		st.Color = h.style.Drag
		st.Radius = 10
	case h.phase == dragNone && index == h.hovered:
		st.Color = h.style.Hover
		st.Radius = 8
	}
	return st
}

// apply updates the handles for m. It reports whether anything visible
// changed.
func (h *Handles) apply(m handleMsg) bool {
	if !m.ok {
		return false
	}
	before := h.snapshot()
	switch m.op {
	case handleGrab:
		if h.phase == dragNone && m.item >= 0 {
			h.phase, h.drag, h.last = dragPending, m.item, m.offset
		}
	case handleMove:
		h.hovered = m.item
		switch h.phase {
		case dragPending:
			if m.offset == h.last {
				break
			}
			h.phase = dragActive
			h.moveBy(m.offset)
		case dragActive:
			h.moveBy(m.offset)
		}
	case handleDrop:
		if h.phase == dragActive {
			h.moveBy(m.offset)
		}
		h.phase, h.drag = dragNone, -1
		if m.item < 0 {
			h.hovered = -1
		}
	}
	return h.snapshot() != before
}

func (h *Handles) moveBy(offset f32.Point) {
	p := h.points[h.drag].Add(offset.Sub(h.last))
	p.X = cartesian.Clamp(p.X, handlesX.Min, handlesX.Max)
	p.Y = cartesian.Clamp(p.Y, handlesY.Min, handlesY.Max)
	h.points[h.drag] = p
	h.last = offset
}

type handlesSnapshot struct {
	hovered, drag int
	phase         dragPhase
	points        [4]f32.Point
}

func (h *Handles) snapshot() handlesSnapshot {
	s := handlesSnapshot{hovered: h.hovered, drag: h.drag, phase: h.phase}
	copy(s.points[:], h.points)
	return s
}

// Update processes the chart's input.
func (h *Handles) Update(gtx C) {
	c := h.chart()
	for {
		m, ok := c.Update(gtx, &h.state)
		if !ok {
			break
		}
		if h.apply(m) {
			h.cache.Clear()
		}
	}
}

func (h *Handles) Layout(gtx C, th *material.Theme) D {
	h.Update(gtx)
	return h.chart().Layout(gtx, th, &h.state)
}
