package chart

import (
	"image/color"
	"strconv"

	"gioui.org/unit"
	"git.sr.ht/~whereswaldon/prism/cartesian"
	"git.sr.ht/~whereswaldon/prism/series"
)

// defaultRange is used along an automatic axis when no series has data.
var defaultRange = cartesian.Range{Min: 0, Max: 10}

// AxisRange selects the data range shown along one axis. The zero value
// is automatic.
type AxisRange struct {
	cartesian.Range
	// Fixed reports whether Range is used as-is rather than derived from
	// the series.
	Fixed bool
}

// Auto returns an automatic range: the union of the series' extents.
func Auto() AxisRange {
	return AxisRange{}
}

// Fixed returns an explicit range.
func Fixed(min, max float32) AxisRange {
	return AxisRange{Range: cartesian.Range{Min: min, Max: max}, Fixed: true}
}

// resolve returns the effective range for list, using extent to read each
// series' range along the axis.
func (a AxisRange) resolve(list []series.Series, extent func(series.Series) cartesian.Range) cartesian.Range {
	if a.Fixed {
		return a.Range
	}
	return unionRange(list, extent)
}

func unionRange(list []series.Series, extent func(series.Series) cartesian.Range) cartesian.Range {
	r := cartesian.EmptyRange()
	for _, s := range list {
		r = r.Union(extent(s))
	}
	if r.Empty() {
		return defaultRange
	}
	return r
}

// Margin is the space reserved around the data area.
type Margin struct {
	Top, Bottom, Left, Right unit.Dp
}

// UniformMargin returns a Margin of v on every side.
func UniformMargin(v unit.Dp) Margin {
	return Margin{Top: v, Bottom: v, Left: v, Right: v}
}

// Axis styles an axis baseline. A zero Color uses the theme foreground.
type Axis struct {
	Color color.NRGBA
	Width unit.Dp
}

// Tick styles the tick marks along an axis.
type Tick struct {
	Color color.NRGBA
	// Height is the length of a tick mark across the axis.
	Height unit.Dp
	Width  unit.Dp
	// Amount is the number of intervals the axis range is divided into.
	Amount int
	// Nice places ticks at round numbers instead of equal divisions of
	// the range, using Amount as an upper bound.
	Nice bool
}

// Labels styles the tick labels along an axis.
type Labels struct {
	Color color.NRGBA
	Size  unit.Sp
	// Format renders a tick value. The default is the shortest decimal
	// representation.
	Format func(float32) string
}

// Shaping selects how tick labels are measured when placing them.
type Shaping uint8

const (
	// ShapingBasic sets labels in a monospace face and measures them from
	// fixed advance metrics.
	ShapingBasic Shaping = iota
	// ShapingAdvanced sets labels in the theme face and measures them with
	// the theme's text shaper.
	ShapingAdvanced
)

func (s Shaping) String() string {
	switch s {
	case ShapingBasic:
		return "basic"
	case ShapingAdvanced:
		return "advanced"
	default:
		return "unknown"
	}
}

const (
	defaultAxisWidth   unit.Dp = 1
	defaultTickHeight  unit.Dp = 5
	defaultTickWidth   unit.Dp = 1
	defaultTickAmount          = 10
	defaultLabelSize   unit.Sp = 12
	labelGap           unit.Dp = 8
)

// DefaultAxis returns the axis style used for zero fields.
func DefaultAxis() Axis {
	return Axis{Width: defaultAxisWidth}
}

// DefaultTick returns the tick style used for zero fields.
func DefaultTick() Tick {
	return Tick{Height: defaultTickHeight, Width: defaultTickWidth, Amount: defaultTickAmount}
}

// DefaultLabels returns the label style used for zero fields.
func DefaultLabels() Labels {
	return Labels{Size: defaultLabelSize}
}

func (a Axis) withDefaults(fg color.NRGBA) Axis {
	if a.Color == (color.NRGBA{}) {
		a.Color = fg
	}
	if a.Width == 0 {
		a.Width = defaultAxisWidth
	}
	return a
}

func (t Tick) withDefaults(fg color.NRGBA) Tick {
	if t.Color == (color.NRGBA{}) {
		t.Color = fg
	}
	if t.Height == 0 {
		t.Height = defaultTickHeight
	}
	if t.Width == 0 {
		t.Width = defaultTickWidth
	}
	if t.Amount <= 0 {
		t.Amount = defaultTickAmount
	}
	return t
}

func (l Labels) withDefaults(fg color.NRGBA) Labels {
	if l.Color == (color.NRGBA{}) {
		l.Color = fg
	}
	if l.Size == 0 {
		l.Size = defaultLabelSize
	}
	if l.Format == nil {
		l.Format = formatTick
	}
	return l
}

func formatTick(v float32) string {
	if v == 0 {
		// Avoid printing negative zero.
		v = 0
	}
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}
