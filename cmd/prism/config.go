package main

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"os"
	"strings"

	"gioui.org/unit"
	"git.sr.ht/~whereswaldon/prism/chart"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/image/colornames"
)

// Config is the demo's styling, loaded from an optional TOML file.
//
//	title = "prism"
//	margin = 24
//	shaping = "advanced"
//	max_points = 5000
//
//	[colors]
//	axis = "dimgray"
//	line = "steelblue"
//	handle = "crimson"
//	hover = "gold"
//	drag = "limegreen"
//
//	[ticks]
//	amount = 8
//	nice = true
type Config struct {
	Title     string  `toml:"title"`
	Margin    float32 `toml:"margin"`
	Shaping   string  `toml:"shaping"`
	MaxPoints int     `toml:"max_points"`
	Colors    Colors  `toml:"colors"`
	Ticks     Ticks   `toml:"ticks"`
}

// Colors are CSS color names or #rrggbb values.
type Colors struct {
	Axis   string `toml:"axis"`
	Line   string `toml:"line"`
	Handle string `toml:"handle"`
	Hover  string `toml:"hover"`
	Drag   string `toml:"drag"`
}

type Ticks struct {
	Amount int  `toml:"amount"`
	Nice   bool `toml:"nice"`
}

// Style is a Config resolved into chart settings.
type Style struct {
	Title     string
	Margin    chart.Margin
	Shaping   chart.Shaping
	MaxPoints int
	Axis      color.NRGBA
	Line      color.NRGBA
	Handle    color.NRGBA
	Hover     color.NRGBA
	Drag      color.NRGBA
	Ticks     Ticks
}

func DefaultConfig() Config {
	return Config{
		Title:     "prism",
		Margin:    24,
		Shaping:   "basic",
		MaxPoints: 10_000,
		Colors: Colors{
			Line:   "steelblue",
			Handle: "crimson",
			Hover:  "gold",
			Drag:   "limegreen",
		},
		Ticks: Ticks{Amount: 10},
	}
}

// LoadConfig reads path over the defaults. An empty path yields the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve validates the config and converts it to a Style.
func (c Config) Resolve() (Style, error) {
	s := Style{
		Title:     c.Title,
		Margin:    chart.UniformMargin(unit.Dp(c.Margin)),
		MaxPoints: c.MaxPoints,
		Ticks:     c.Ticks,
	}
	switch strings.ToLower(c.Shaping) {
	case "", "basic":
		s.Shaping = chart.ShapingBasic
	case "advanced":
		s.Shaping = chart.ShapingAdvanced
	default:
		return s, fmt.Errorf("unknown shaping %q", c.Shaping)
	}
	for _, field := range []struct {
		name  string
		value string
		dst   *color.NRGBA
	}{
		{"axis", c.Colors.Axis, &s.Axis},
		{"line", c.Colors.Line, &s.Line},
		{"handle", c.Colors.Handle, &s.Handle},
		{"hover", c.Colors.Hover, &s.Hover},
		{"drag", c.Colors.Drag, &s.Drag},
	} {
		col, err := parseColor(field.value)
		if err != nil {
			return s, fmt.Errorf("colors.%s: %w", field.name, err)
		}
		*field.dst = col
	}
	return s, nil
}

// parseColor accepts a CSS color name or #rrggbb. The empty string is the
// zero color, which charts replace with the theme foreground.
func parseColor(v string) (color.NRGBA, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return color.NRGBA{}, nil
	}
	if strings.HasPrefix(v, "#") {
		b, err := hex.DecodeString(v[1:])
		if err != nil || len(b) != 3 {
			return color.NRGBA{}, fmt.Errorf("invalid hex color %q", v)
		}
		return color.NRGBA{R: b[0], G: b[1], B: b[2], A: 0xff}, nil
	}
	c, ok := colornames.Map[strings.ToLower(v)]
	if !ok {
		return color.NRGBA{}, fmt.Errorf("unknown color name %q", v)
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
}

// applyStyle copies the shared styling onto c.
func applyStyle[ID comparable, M any](s Style, c *chart.Chart[ID, M]) {
	c.Shaping = s.Shaping
	c.Margin = s.Margin
	c.XAxis.Color, c.YAxis.Color = s.Axis, s.Axis
	c.XTicks.Color, c.YTicks.Color = s.Axis, s.Axis
	c.XLabels.Color, c.YLabels.Color = s.Axis, s.Axis
	if s.Ticks.Amount > 0 {
		c.XTicks.Amount, c.YTicks.Amount = s.Ticks.Amount, s.Ticks.Amount
	}
	c.XTicks.Nice, c.YTicks.Nice = s.Ticks.Nice, s.Ticks.Nice
}
