package main

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// palette spreads series colors around the hue circle by the golden angle
// at constant perceived lightness.
var palette = func() []color.NRGBA {
	const target = 20
	out := make([]color.NRGBA, 0, target)
	for i := 0; i < target; i++ {
		h := math.Mod(float64(i+1)*math.Phi, 1) * 360
		r, g, b := colorful.Hcl(h, 0.5, 0.55).Clamped().RGB255()
		out = append(out, color.NRGBA{R: r, G: g, B: b, A: 0xff})
	}
	return out
}()

func seriesColor(i int) color.NRGBA {
	return palette[i%len(palette)]
}

// faded returns c with its alpha replaced.
func faded(c color.NRGBA, alpha uint8) color.NRGBA {
	c.A = alpha
	return c
}
