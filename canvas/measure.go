package canvas

import (
	"unicode/utf8"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/widget/material"
)

// Measurer reports the pixel size a Text would occupy once shaped.
type Measurer interface {
	Measure(t Text) f32.Point
}

// MonoMeasurer estimates label sizes from monospace metrics without
// shaping any text.
type MonoMeasurer struct{}

const (
	monoAdvance    = 0.6
	monoLineHeight = 1.2
)

func (MonoMeasurer) Measure(t Text) f32.Point {
	n := utf8.RuneCountInString(t.Content)
	return f32.Pt(float32(n)*t.Size*monoAdvance, t.Size*monoLineHeight)
}

// ShaperMeasurer measures labels with the theme's text shaper, exactly as
// Paint will lay them out.
type ShaperMeasurer struct {
	Gtx   layout.Context
	Theme *material.Theme
}

// Measure shapes t into scratch ops, leaving the frame's ops untouched.
func (s ShaperMeasurer) Measure(t Text) f32.Point {
	gtx := s.Gtx
	gtx.Ops = new(op.Ops)
	dims, _ := label(gtx, s.Theme, t)
	return f32.Pt(float32(dims.Size.X), float32(dims.Size.Y))
}
