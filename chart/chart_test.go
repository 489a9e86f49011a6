package chart

import (
	"image"
	"image/color"
	"testing"

	"gioui.org/f32"
	"gioui.org/font/gofont"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"git.sr.ht/~whereswaldon/prism/canvas"
	"git.sr.ht/~whereswaldon/prism/cartesian"
	"git.sr.ht/~whereswaldon/prism/series"
	"github.com/chewxy/math32"
)

var (
	metric     = unit.Metric{PxPerDp: 1, PxPerSp: 1}
	colorBlack = color.NRGBA{A: 255}
)

type msg struct {
	kind  Kind
	hits  int
	coord f32.Point
}

func record(i *Interaction[string]) msg {
	m := msg{kind: i.Kind()}
	hits, _ := i.Items()
	m.hits = len(hits)
	m.coord, _ = i.Coords()
	return m
}

func handles() series.Hittable {
	return series.Points([]f32.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 0}}, series.XY)
}

// newTestChart returns a chart over [0,10]x[0,10] with one identified
// point series, laid out at 100x100 pixels.
func newTestChart() (*Chart[string, msg], *State[string]) {
	c := New[string, msg]()
	c.XRange = Fixed(0, 10)
	c.YRange = Fixed(0, 10)
	c.Push(series.WithID(handles(), "handles"))
	s := new(State[string])
	c.layout(s, image.Pt(100, 100), metric)
	return c, s
}

func TestRangeResolution(t *testing.T) {
	type testcase struct {
		name     string
		series   []series.Series
		axis     AxisRange
		expected cartesian.Range
	}
	a := series.Line([]f32.Point{{X: 1, Y: 0}, {X: 4, Y: 0}}, series.XY)
	b := series.Points([]f32.Point{{X: -2, Y: 0}, {X: 3, Y: 0}}, series.XY)
	for _, tc := range []testcase{
		{
			name:     "no series",
			expected: cartesian.Range{Min: 0, Max: 10},
		},
		{
			name:     "only empty series",
			series:   []series.Series{series.Line[f32.Point](nil, series.XY)},
			expected: cartesian.Range{Min: 0, Max: 10},
		},
		{
			name:     "union",
			series:   []series.Series{a, b},
			expected: cartesian.Range{Min: -2, Max: 4},
		},
		{
			name:     "fixed",
			series:   []series.Series{a, b},
			axis:     Fixed(-1, 1),
			expected: cartesian.Range{Min: -1, Max: 1},
		},
	} {
		got := tc.axis.resolve(tc.series, series.Series.XRange)
		if got != tc.expected {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.expected, got)
		}
	}
}

func TestLayoutIsIdempotent(t *testing.T) {
	c, s := newTestChart()
	first, _ := s.Plane()
	n := s.index.Len()
	c.layout(s, image.Pt(100, 100), metric)
	second, _ := s.Plane()
	if first != second {
		t.Errorf("expected identical planes, got %+v and %+v", first, second)
	}
	if s.index.Len() != n {
		t.Errorf("expected the index to be rebuilt, not grown: %d then %d", n, s.index.Len())
	}
}

func TestLayoutMargins(t *testing.T) {
	c, s := newTestChart()
	c.Margin = Margin{Left: 10, Bottom: 20}
	c.layout(s, image.Pt(110, 120), unit.Metric{PxPerDp: 2, PxPerSp: 2})
	p, _ := s.Plane()
	if got := p.ToScreen(f32.Pt(0, 0)); got != f32.Pt(20, 80) {
		t.Errorf("expected origin at (20,80), got %v", got)
	}
}

func TestHandleDispatchesOneCallback(t *testing.T) {
	c, s := newTestChart()
	var calls []Kind
	cb := func(i *Interaction[string]) msg {
		calls = append(calls, i.Kind())
		return record(i)
	}
	c.OnPress, c.OnRelease, c.OnMove, c.OnScroll = cb, cb, cb, cb
	type testcase struct {
		ev       Event
		expected Kind
	}
	for _, tc := range []testcase{
		{ev: Event{Kind: KindPress, Button: ButtonLeft, Position: f32.Pt(10, 10)}, expected: KindPress},
		{ev: Event{Kind: KindRelease, Button: ButtonLeft, Position: f32.Pt(10, 10)}, expected: KindRelease},
		{ev: Event{Kind: KindMove, Position: f32.Pt(10, 10)}, expected: KindMove},
		{ev: Event{Kind: KindScroll, Position: f32.Pt(10, 10), Scroll: f32.Pt(0, 1)}, expected: KindScroll},
		{ev: Event{Kind: KindTouchBegin, Position: f32.Pt(10, 10)}, expected: KindTouchBegin},
		{ev: Event{Kind: KindTouchMove, Position: f32.Pt(10, 10)}, expected: KindTouchMove},
		{ev: Event{Kind: KindTouchEnd, Position: f32.Pt(10, 10)}, expected: KindTouchEnd},
	} {
		calls = calls[:0]
		m, ok := c.Handle(s, tc.ev)
		if !ok {
			t.Errorf("%v: expected a message", tc.expected)
			continue
		}
		if len(calls) != 1 {
			t.Errorf("%v: expected exactly one callback, got %v", tc.expected, calls)
		}
		if m.kind != tc.expected {
			t.Errorf("expected %v, got %v", tc.expected, m.kind)
		}
	}
}

func TestHandleIgnoresOtherButtons(t *testing.T) {
	c, s := newTestChart()
	c.OnPress = record
	if _, ok := c.Handle(s, Event{Kind: KindPress, Button: ButtonRight, Position: f32.Pt(10, 10)}); ok {
		t.Errorf("expected right clicks to produce no message")
	}
}

func TestHandleOutOfBounds(t *testing.T) {
	c, s := newTestChart()
	c.OnMove = record
	c.OnPress = record
	if _, ok := c.Handle(s, Event{Kind: KindMove, Position: f32.Pt(150, 10)}); ok {
		t.Errorf("expected a move outside the chart to be ignored")
	}
	if _, ok := c.Handle(s, Event{Kind: KindPress, Button: ButtonLeft, Position: f32.Pt(-1, 10)}); ok {
		t.Errorf("expected a press outside the chart to be ignored")
	}
	// The cursor still tracks events outside the bounds.
	c.OnMove = func(i *Interaction[string]) msg {
		prev, ok := i.PreviousCursor()
		if !ok || prev != f32.Pt(-1, 10) {
			t.Errorf("expected previous cursor (-1,10), got %v %v", prev, ok)
		}
		return record(i)
	}
	if _, ok := c.Handle(s, Event{Kind: KindMove, Position: f32.Pt(20, 20)}); !ok {
		t.Errorf("expected a move inside the chart to produce a message")
	}
}

func TestHandleWithoutPosition(t *testing.T) {
	c, s := newTestChart()
	c.OnMove = record
	c.Handle(s, Event{Kind: KindMove, Position: f32.Pt(20, 20)})
	if _, ok := c.Handle(s, Event{Kind: KindMove, NoPosition: true}); ok {
		t.Errorf("expected an event without a position to be ignored")
	}
	if s.cursor != f32.Pt(20, 20) {
		t.Errorf("expected the cursor to be unchanged, got %v", s.cursor)
	}
}

func TestHandleBeforeLayout(t *testing.T) {
	c := New[string, msg]()
	c.OnPress = record
	if _, ok := c.Handle(new(State[string]), Event{Kind: KindPress, Button: ButtonLeft}); ok {
		t.Errorf("expected events before the first layout to be ignored")
	}
}

func TestMoveResolvesHitsWithoutCallback(t *testing.T) {
	c, s := newTestChart()
	// Data (1,1) is at pixel (10,90).
	c.Handle(s, Event{Kind: KindMove, Position: f32.Pt(10, 90)})
	if len(s.hits) != 1 || s.hits[0].Item != 1 || s.hits[0].Series != "handles" {
		t.Errorf("expected item 1 of handles, got %v", s.hits)
	}
	c.OnPress = func(i *Interaction[string]) msg {
		h, ok := i.Item()
		if !ok || h.Item != 1 {
			t.Errorf("expected the press to see the hovered item, got %v %v", h, ok)
		}
		return record(i)
	}
	c.Handle(s, Event{Kind: KindPress, Button: ButtonLeft, Position: f32.Pt(10, 90)})
}

func TestHitsFollowZoom(t *testing.T) {
	c, s := newTestChart()
	c.OnMove = record
	m, _ := c.Handle(s, Event{Kind: KindMove, Position: f32.Pt(10, 90)})
	if m.hits != 1 {
		t.Fatalf("expected one hit at 10px per unit, got %d", m.hits)
	}
	if m.coord != f32.Pt(1, 1) {
		t.Errorf("expected coords (1,1), got %v", m.coord)
	}
	// At one pixel per unit the 10px box covers every point.
	c.XRange = Fixed(0, 100)
	c.YRange = Fixed(0, 100)
	c.layout(s, image.Pt(100, 100), metric)
	m, _ = c.Handle(s, Event{Kind: KindMove, Position: f32.Pt(1, 99)})
	if m.hits != 4 {
		t.Errorf("expected four hits at 1px per unit, got %d", m.hits)
	}
}

func TestUnidentifiedSeriesAreNotHit(t *testing.T) {
	c := New[string, msg]()
	c.XRange, c.YRange = Fixed(0, 10), Fixed(0, 10)
	c.Push(handles())
	c.OnMove = record
	s := new(State[string])
	c.layout(s, image.Pt(100, 100), metric)
	if m, _ := c.Handle(s, Event{Kind: KindMove, Position: f32.Pt(10, 90)}); m.hits != 0 {
		t.Errorf("expected no hits from an untagged series, got %d", m.hits)
	}
}

func TestScrollIsRecorded(t *testing.T) {
	c, s := newTestChart()
	c.OnScroll = func(i *Interaction[string]) msg {
		d, ok := i.Scroll()
		if !ok || d != f32.Pt(0, -3) {
			t.Errorf("expected scroll (0,-3), got %v %v", d, ok)
		}
		off, _ := i.Offset()
		if off != f32.Pt(-5, 5) {
			t.Errorf("expected offset (-5,5) from the center, got %v", off)
		}
		return record(i)
	}
	if _, ok := c.Handle(s, Event{Kind: KindScroll, Position: f32.Pt(0, 0), Scroll: f32.Pt(0, -3)}); !ok {
		t.Errorf("expected a scroll message")
	}
}

func TestTicks(t *testing.T) {
	type testcase struct {
		name     string
		r        cartesian.Range
		tick     Tick
		expected []float32
	}
	for _, tc := range []testcase{
		{
			name:     "unit range",
			r:        cartesian.Range{Min: 0, Max: 10},
			tick:     Tick{Amount: 10},
			expected: []float32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		},
		{
			name:     "zero is a tick",
			r:        cartesian.Range{Min: -3, Max: 5},
			tick:     Tick{Amount: 4},
			expected: []float32{-2, 0, 2, 4},
		},
		{
			name: "empty range",
			r:    cartesian.EmptyRange(),
			tick: Tick{Amount: 4},
		},
		{
			name: "degenerate range",
			r:    cartesian.Range{Min: 2, Max: 2},
			tick: Tick{Amount: 4},
		},
		{
			name: "infinite range",
			r:    cartesian.Range{Min: 0, Max: math32.Inf(1)},
			tick: Tick{Amount: 10},
		},
		{
			name: "infinite nice range",
			r:    cartesian.Range{Min: 0, Max: math32.Inf(1)},
			tick: Tick{Amount: 10, Nice: true},
		},
		{
			name: "unbounded nice range",
			r:    cartesian.Range{Min: math32.Inf(-1), Max: math32.Inf(1)},
			tick: Tick{Amount: 10, Nice: true},
		},
	} {
		got := ticks(tc.r, tc.tick)
		if len(got) != len(tc.expected) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.expected, got)
			continue
		}
		for i := range got {
			if got[i] != tc.expected[i] {
				t.Errorf("%s: expected %v, got %v", tc.name, tc.expected, got)
				break
			}
		}
	}
}

func TestNiceTicks(t *testing.T) {
	r := cartesian.Range{Min: 0, Max: 97}
	got := ticks(r, Tick{Amount: 5, Nice: true})
	if len(got) == 0 || len(got) > 6 {
		t.Fatalf("expected between 1 and 6 ticks, got %v", got)
	}
	for i, v := range got {
		if !r.Contains(v) {
			t.Errorf("tick %v outside %v", v, r)
		}
		if i > 0 && v <= got[i-1] {
			t.Errorf("expected increasing ticks, got %v", got)
		}
	}
}

func TestFormatTick(t *testing.T) {
	for v, expected := range map[float32]string{
		0:    "0",
		-1.5: "-1.5",
		0.1:  "0.1",
		20:   "20",
	} {
		if got := formatTick(v); got != expected {
			t.Errorf("expected %q, got %q", expected, got)
		}
	}
}

func count[T canvas.Shape](g *canvas.Geometry) int {
	n := 0
	for _, s := range g.Shapes {
		if _, ok := s.(T); ok {
			n++
		}
	}
	return n
}

func TestDrawAxes(t *testing.T) {
	c := New[string, msg]()
	c.XRange, c.YRange = Fixed(-5, 5), Fixed(-5, 5)
	s := new(State[string])
	c.layout(s, image.Pt(100, 100), metric)
	g := c.draw(s, metric, colorBlack, canvas.MonoMeasurer{})
	if g == nil {
		t.Fatalf("expected geometry")
	}
	axis, ok := g.Shapes[0].(canvas.Line)
	if !ok {
		t.Fatalf("expected the x axis first, got %T", g.Shapes[0])
	}
	if axis.From != f32.Pt(0, 50) || axis.To != f32.Pt(100, 50) {
		t.Errorf("expected the x axis across the middle, got %v-%v", axis.From, axis.To)
	}
	// Eleven x labels, ten y labels with zero left to the x axis.
	if n := count[canvas.Text](g); n != 21 {
		t.Errorf("expected 21 labels, got %d", n)
	}
	for _, sh := range g.Shapes {
		if l, ok := sh.(canvas.Text); ok && !l.Mono {
			t.Errorf("expected monospace labels with basic shaping")
		}
	}
}

func TestDrawClampsXAxis(t *testing.T) {
	c := New[string, msg]()
	c.XRange, c.YRange = Fixed(0, 10), Fixed(5, 10)
	s := new(State[string])
	c.layout(s, image.Pt(100, 100), metric)
	g := c.draw(s, metric, colorBlack, canvas.MonoMeasurer{})
	axis := g.Shapes[0].(canvas.Line)
	// y = 0 is below the plane; the axis sits above the label row instead.
	labelHeight := float32(12 * 1.2)
	if want := 100 - labelHeight - 8; axis.From.Y < want-0.01 || axis.From.Y > want+0.01 {
		t.Errorf("expected the x axis clamped to %v, got %v", want, axis.From.Y)
	}
}

func TestDrawSkipsEmptySize(t *testing.T) {
	for _, size := range []image.Point{{X: 0, Y: 100}, {X: 100, Y: 0}, {}} {
		c := New[string, msg]()
		s := new(State[string])
		c.layout(s, size, metric)
		if g := c.draw(s, metric, colorBlack, canvas.MonoMeasurer{}); g != nil {
			t.Errorf("expected nothing drawn at %v", size)
		}
	}
}

func TestDrawInfiniteRange(t *testing.T) {
	c := New[string, msg]()
	c.XTicks.Nice = true
	c.YTicks.Nice = true
	c.YRange = Fixed(0, math32.Inf(1))
	c.Push(series.Points([]f32.Point{{X: 1, Y: 1}, {X: math32.Inf(1), Y: 2}}, series.XY))
	s := new(State[string])
	c.layout(s, image.Pt(100, 100), metric)
	if g := c.draw(s, metric, colorBlack, canvas.MonoMeasurer{}); g == nil {
		t.Errorf("expected the chart to draw despite infinite ranges")
	}
}

func TestDrawUsesCache(t *testing.T) {
	c := New[string, msg]()
	c.Cache = new(canvas.Cache)
	s := new(State[string])
	c.layout(s, image.Pt(100, 100), metric)
	first := c.draw(s, metric, colorBlack, canvas.MonoMeasurer{})
	c.Push(handles())
	if c.draw(s, metric, colorBlack, canvas.MonoMeasurer{}) != first {
		t.Errorf("expected cached geometry until the cache is cleared")
	}
	c.Cache.Clear()
	if c.draw(s, metric, colorBlack, canvas.MonoMeasurer{}) == first {
		t.Errorf("expected new geometry after clearing the cache")
	}
}

func TestTranslateButtons(t *testing.T) {
	s := new(State[string])
	ev, ok := s.translate(pointer.Event{Kind: pointer.Press, Source: pointer.Mouse, Buttons: pointer.ButtonPrimary})
	if !ok || ev.Kind != KindPress || ev.Button != ButtonLeft {
		t.Errorf("expected a left press, got %+v", ev)
	}
	ev, _ = s.translate(pointer.Event{Kind: pointer.Press, Source: pointer.Mouse, Buttons: pointer.ButtonPrimary | pointer.ButtonSecondary})
	if ev.Button != ButtonRight {
		t.Errorf("expected a right press, got %+v", ev)
	}
	ev, _ = s.translate(pointer.Event{Kind: pointer.Release, Source: pointer.Mouse, Buttons: pointer.ButtonSecondary})
	if ev.Kind != KindRelease || ev.Button != ButtonLeft {
		t.Errorf("expected a left release, got %+v", ev)
	}
	ev, _ = s.translate(pointer.Event{Kind: pointer.Drag, Source: pointer.Touch})
	if ev.Kind != KindTouchMove {
		t.Errorf("expected a touch move, got %+v", ev)
	}
	if _, ok := s.translate(pointer.Event{Kind: pointer.Cancel}); ok || s.buttons != 0 {
		t.Errorf("expected cancel to reset held buttons")
	}
}

func TestLayoutWidget(t *testing.T) {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	for _, shaping := range []Shaping{ShapingBasic, ShapingAdvanced} {
		gtx := layout.Context{
			Ops:         new(op.Ops),
			Metric:      metric,
			Constraints: layout.Exact(image.Pt(200, 100)),
		}
		c := New[string, msg]()
		c.Shaping = shaping
		c.Push(series.WithID(handles(), "handles"), series.Line([]f32.Point{{X: 0, Y: 0}, {X: 3, Y: 2}}, series.XY))
		s := new(State[string])
		dims := c.Layout(gtx, th, s)
		if dims.Size != image.Pt(200, 100) {
			t.Errorf("%v: expected to fill the constraints, got %v", shaping, dims.Size)
		}
		p, _ := s.Plane()
		if p.X.Range() != (cartesian.Range{Min: 0, Max: 3}) {
			t.Errorf("%v: expected the x range to cover the data, got %v", shaping, p.X.Range())
		}
	}
}

func TestFixedSize(t *testing.T) {
	gtx := layout.Context{
		Metric:      unit.Metric{PxPerDp: 2, PxPerSp: 2},
		Constraints: layout.Constraints{Max: image.Pt(500, 500)},
	}
	c := New[string, msg]()
	c.Width = 100
	if got := c.size(gtx); got != image.Pt(200, 500) {
		t.Errorf("expected 200x500, got %v", got)
	}
}
