package main

import (
	"fmt"
	"image"
	"log"
	"strconv"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"git.sr.ht/~whereswaldon/prism/canvas"
	"git.sr.ht/~whereswaldon/prism/cartesian"
	"git.sr.ht/~whereswaldon/prism/chart"
	"git.sr.ht/~whereswaldon/prism/datasource"
	"git.sr.ht/~whereswaldon/prism/items"
	"git.sr.ht/~whereswaldon/prism/series"
	"github.com/chewxy/math32"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

var pauseIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVPause)
	return icon
}()

var playIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVPlayArrow)
	return icon
}()

var openIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.FileFolderOpen)
	return icon
}()

var resetIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.ActionZoomOutMap)
	return icon
}()

// zoomPerScroll is the range scale factor applied per unit of scroll.
const zoomPerScroll = 1.01

type liveOp uint8

const (
	liveGrab liveOp = iota
	liveMove
	liveDrop
	liveZoom
)

type liveMsg struct {
	op     liveOp
	offset f32.Point
	coords f32.Point
	scroll float32
	x, y   cartesian.Range
	hits   []items.Hit[int, int]
	ok     bool
}

func liveMessage(op liveOp) func(*chart.Interaction[int]) liveMsg {
	return func(i *chart.Interaction[int]) liveMsg {
		m := liveMsg{op: op}
		m.offset, m.ok = i.Offset()
		m.coords, _ = i.Coords()
		m.x, _ = i.XRange()
		m.y, _ = i.YRange()
		m.hits, _ = i.Items()
		if d, ok := i.Scroll(); ok {
			m.scroll = d.Y
		}
		return m
	}
}

// viewport is the visible window onto the data. Until the user pans or
// zooms it follows the data.
type viewport struct {
	x, y    cartesian.Range
	manual  bool
	panning bool
	last    f32.Point
}

// apply updates the viewport for m, reporting whether it moved.
func (v *viewport) apply(m liveMsg) bool {
	if !m.ok {
		return false
	}
	if !v.manual && (m.op == liveZoom || m.op == liveGrab) {
		v.x, v.y = m.x, m.y
	}
	switch m.op {
	case liveGrab:
		v.panning, v.last = true, m.offset
	case liveMove:
		if !v.panning {
			return false
		}
		return v.panBy(m.offset)
	case liveDrop:
		moved := v.panning && v.panBy(m.offset)
		v.panning = false
		return moved
	case liveZoom:
		if m.scroll == 0 {
			return false
		}
		factor := math32.Pow(zoomPerScroll, m.scroll)
		v.x = v.x.Scale(m.coords.X, factor)
		v.y = v.y.Scale(m.coords.Y, factor)
		v.manual = true
		return true
	}
	return false
}

func (v *viewport) panBy(offset f32.Point) bool {
	d := v.last.Sub(offset)
	v.last = offset
	if d == (f32.Point{}) {
		return false
	}
	v.x = v.x.Shift(d.X)
	v.y = v.y.Shift(d.Y)
	v.manual = true
	return true
}

func (v *viewport) reset() {
	*v = viewport{}
}

// hoverTarget exposes a dataset series to hit-testing without drawing
// anything.
type hoverTarget []f32.Point

func (hoverTarget) Draw(*canvas.Frame, *cartesian.Plane) {}

func (t hoverTarget) XRange() cartesian.Range { return cartesian.EmptyRange() }
func (t hoverTarget) YRange() cartesian.Range { return cartesian.EmptyRange() }

func (hoverTarget) CollisionBox() f32.Point { return f32.Pt(12, 12) }

func (t hoverTarget) Entries() []items.Entry[int] {
	out := make([]items.Entry[int], len(t))
	for i, p := range t {
		out[i] = items.Entry[int]{ID: i, Location: p}
	}
	return out
}

// Live charts a CSV source, updating as the source grows.
type Live struct {
	style  Style
	win    Window
	expl   *explorer.Explorer
	chosen chan *datasource.Source

	source  *datasource.Source
	stream  *stream.Stream[datasource.Dataset]
	latest  datasource.Dataset
	shown   datasource.Dataset
	enabled []*widget.Bool
	hovered []items.Hit[int, int]
	err     string

	view     viewport
	paused   bool
	pauseBtn widget.Clickable
	resetBtn widget.Clickable
	openBtn  widget.Clickable
	keyTable component.GridState

	state chart.State[int]
	cache canvas.Cache
}

// Window is the part of the application window the live view needs.
type Window struct {
	Controller *stream.Controller
	Invalidate func()
}

func NewLive(style Style, win Window, expl *explorer.Explorer, src *datasource.Source) *Live {
	l := &Live{
		style:  style,
		win:    win,
		expl:   expl,
		chosen: make(chan *datasource.Source, 1),
	}
	if src != nil {
		l.SetSource(src)
	}
	return l
}

// SetSource replaces the charted data.
func (l *Live) SetSource(src *datasource.Source) {
	src.MaxPoints = l.style.MaxPoints
	l.source = src
	l.stream = stream.New(l.win.Controller, src.Stream)
	l.latest, l.shown = datasource.Dataset{}, datasource.Dataset{}
	l.enabled = l.enabled[:0]
	l.hovered = nil
	l.err = ""
	l.view.reset()
	l.cache.Clear()
}

func (l *Live) choose() {
	go func() {
		src, err := datasource.Choose(l.expl)
		if err != nil {
			log.Printf("could not open data: %v", err)
			return
		}
		l.chosen <- src
		l.win.Invalidate()
	}()
}

func (l *Live) chart() *chart.Chart[int, liveMsg] {
	c := chart.New[int, liveMsg]()
	applyStyle(l.style, c)
	c.Cache = &l.cache
	c.XLabels.Format = shortFormat
	c.YLabels.Format = shortFormat
	if l.view.manual {
		c.XRange = chart.Fixed(l.view.x.Min, l.view.x.Max)
		c.YRange = chart.Fixed(l.view.y.Min, l.view.y.Max)
	}
	for i, pts := range l.shown.Series {
		if i < len(l.enabled) && !l.enabled[i].Value {
			continue
		}
		line := series.Line(pts, series.XY)
		line.Color = seriesColor(i)
		line.Visible = false
		c.Push(line, series.WithID[int](hoverTarget(pts), i))
	}
	c.OnPress = liveMessage(liveGrab)
	c.OnMove = liveMessage(liveMove)
	c.OnRelease = liveMessage(liveDrop)
	c.OnScroll = liveMessage(liveZoom)
	return c
}

func shortFormat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', 4, 32)
}

func (l *Live) Update(gtx C) {
	select {
	case src := <-l.chosen:
		l.SetSource(src)
	default:
	}
	if l.openBtn.Clicked(gtx) {
		l.choose()
	}
	if l.stream != nil {
		l.stream.ReadInto(gtx, &l.latest, l.latest)
	}
	if l.latest.Err != nil {
		l.err = l.latest.Err.Error()
	}
	if l.pauseBtn.Clicked(gtx) {
		l.paused = !l.paused
	}
	if l.resetBtn.Clicked(gtx) {
		l.view.reset()
		l.cache.Clear()
	}
	if !l.paused && (l.latest.Records != l.shown.Records || len(l.latest.Headings) != len(l.shown.Headings)) {
		l.shown = l.latest
		l.cache.Clear()
	}
	for len(l.enabled) < len(l.shown.Headings) {
		l.enabled = append(l.enabled, &widget.Bool{Value: true})
	}
	for _, e := range l.enabled {
		if e.Update(gtx) {
			l.cache.Clear()
		}
	}
	c := l.chart()
	for {
		m, ok := c.Update(gtx, &l.state)
		if !ok {
			break
		}
		if m.op == liveMove {
			l.hovered = m.hits
		}
		if l.view.apply(m) {
			l.cache.Clear()
		}
	}
}

func (l *Live) Layout(gtx C, th *material.Theme) D {
	l.Update(gtx)
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return l.layoutToolbar(gtx, th)
		}),
		layout.Flexed(1, func(gtx C) D {
			if l.source == nil {
				return layout.Center.Layout(gtx, material.Body1(th, "No data source. Open a CSV file to begin.").Layout)
			}
			return l.chart().Layout(gtx, th, &l.state)
		}),
		layout.Rigid(func(gtx C) D {
			return l.layoutHover(gtx, th)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Max.Y = min(gtx.Constraints.Max.Y, gtx.Dp(160))
			return l.layoutKey(gtx, th)
		}),
	)
}

func (l *Live) layoutToolbar(gtx C, th *material.Theme) D {
	button := func(btn *widget.Clickable, icon *widget.Icon, desc string) layout.FlexChild {
		return layout.Rigid(func(gtx C) D {
			return layout.UniformInset(4).Layout(gtx, material.IconButton(th, btn, icon, desc).Layout)
		})
	}
	icon := pauseIcon
	if l.paused {
		icon = playIcon
	}
	status := l.err
	if status == "" && l.source != nil {
		status = fmt.Sprintf("%s: %d points", l.source.Name(), l.shown.Len())
	}
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		button(&l.openBtn, openIcon, "Open CSV"),
		button(&l.pauseBtn, icon, "Pause"),
		button(&l.resetBtn, resetIcon, "Reset view"),
		layout.Flexed(1, func(gtx C) D {
			lbl := material.Body2(th, status)
			lbl.MaxLines = 1
			lbl.Alignment = text.End
			return layout.UniformInset(4).Layout(gtx, lbl.Layout)
		}),
	)
}

func (l *Live) layoutHover(gtx C, th *material.Theme) D {
	if len(l.hovered) == 0 {
		return D{}
	}
	h := l.hovered[0]
	if h.Series >= len(l.shown.Series) || h.Item >= len(l.shown.Series[h.Series]) {
		return D{}
	}
	p := l.shown.Series[h.Series][h.Item]
	lbl := material.Body2(th, fmt.Sprintf("%s: (%s, %s)", l.shown.Headings[h.Series], shortFormat(p.X), shortFormat(p.Y)))
	lbl.Color = seriesColor(h.Series)
	return layout.UniformInset(4).Layout(gtx, lbl.Layout)
}

func (l *Live) layoutKey(gtx C, th *material.Theme) D {
	table := component.Table(th, &l.keyTable)
	table.HScrollbarStyle.Indicator.MinorWidth = 0
	table.HScrollbarStyle.Track.MinorPadding = 0
	table.VScrollbarStyle.Indicator.MinorWidth = 0
	table.VScrollbarStyle.Track.MinorPadding = 0
	colorColWidth := gtx.Dp(50)
	valueColWidth := gtx.Dp(100)
	nameColWidth := gtx.Constraints.Max.X - colorColWidth - 2*valueColWidth - gtx.Dp(table.VScrollbarStyle.Width())
	rowHeight := gtx.Sp(20)
	const (
		colorCol = iota
		seriesNameCol
		pointsCol
		lastValueCol
		numCols
	)
	return table.Layout(gtx, len(l.shown.Headings), numCols,
		func(axis layout.Axis, index, constraint int) int {
			if axis == layout.Vertical {
				return min(constraint, rowHeight)
			}
			var size int
			switch index {
			case colorCol:
				size = colorColWidth
			case seriesNameCol:
				size = nameColWidth
			case pointsCol, lastValueCol:
				size = valueColWidth
			}
			return min(size, constraint)
		},
		func(gtx C, index int) D {
			var lbl material.LabelStyle
			switch index {
			case colorCol:
				lbl = material.Body1(th, "Color")
			case seriesNameCol:
				lbl = material.Body1(th, "Series")
				lbl.Alignment = text.Middle
			case pointsCol:
				lbl = material.Body1(th, "Points")
				lbl.Alignment = text.End
			case lastValueCol:
				lbl = material.Body1(th, "Last")
				lbl.Alignment = text.End
			}
			lbl.Color = th.ContrastFg
			return layout.Background{}.Layout(gtx,
				func(gtx C) D {
					paint.FillShape(gtx.Ops, th.ContrastBg, clip.Rect{Max: gtx.Constraints.Max}.Op())
					return D{Size: gtx.Constraints.Min}
				}, lbl.Layout,
			)
		},
		func(gtx C, row, col int) (dims D) {
			defer func() {
				dims.Size = gtx.Constraints.Constrain(dims.Size)
			}()
			enabled := row >= len(l.enabled) || l.enabled[row].Value
			const disabledAlpha = 100
			cell := func(s string, align text.Alignment) D {
				lbl := material.Body2(th, s)
				lbl.Alignment = align
				if !enabled {
					lbl.Color.A = disabledAlpha
				}
				return lbl.Layout(gtx)
			}
			pts := l.shown.Series[row]
			dims = layout.UniformInset(2).Layout(gtx, func(gtx C) D {
				switch col {
				case colorCol:
					return l.enabled[row].Layout(gtx, func(gtx C) D {
						return layout.Center.Layout(gtx, func(gtx C) D {
							side := gtx.Dp(10)
							sz := image.Pt(side, side)
							fill := seriesColor(row)
							if !enabled {
								fill = faded(fill, disabledAlpha)
							}
							paint.FillShape(gtx.Ops, fill, clip.Rect{Max: sz}.Op())
							return D{Size: sz}
						})
					})
				case seriesNameCol:
					return cell(l.shown.Headings[row], text.Start)
				case pointsCol:
					return cell(strconv.Itoa(len(pts)), text.End)
				case lastValueCol:
					if len(pts) == 0 {
						return cell("-", text.End)
					}
					return cell(shortFormat(pts[len(pts)-1].Y), text.End)
				}
				return D{Size: gtx.Constraints.Max}
			})
			if row&1 != 0 {
				paint.FillShape(gtx.Ops, faded(seriesColor(row), 50), clip.Rect{Max: gtx.Constraints.Max}.Op())
			}
			return dims
		})
}
