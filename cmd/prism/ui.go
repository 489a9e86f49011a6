package main

import (
	"image/color"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"git.sr.ht/~whereswaldon/prism/datasource"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

const (
	tabHandles = "handles"
	tabLive    = "live"
)

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	th  *material.Theme
	tab widget.Enum

	handles *Handles
	live    *Live
}

func NewUI(style Style, win Window, expl *explorer.Explorer, src *datasource.Source) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	tab := tabHandles
	if src != nil {
		tab = tabLive
	}
	return &UI{
		th:      th,
		tab:     widget.Enum{Value: tab},
		handles: NewHandles(style),
		live:    NewLive(style, win, expl, src),
	}
}

type TabStyle struct {
	state  *widget.Enum
	label  material.LabelStyle
	border widget.Border
	inset  layout.Inset
	value  string
	fill   color.NRGBA
}

func Tab(th *material.Theme, state *widget.Enum, value, display string) TabStyle {
	selected := state.Value == value
	ts := TabStyle{
		state: state,
		label: material.Body1(th, display),
		inset: layout.UniformInset(2),
		border: widget.Border{
			Width: 2,
			Color: th.ContrastBg,
		},
		value: value,
	}
	ts.label.Alignment = text.Middle
	if selected {
		ts.label.Color = th.ContrastFg
		ts.fill = th.ContrastBg
	}
	return ts
}

func (t TabStyle) Layout(gtx C) D {
	return t.inset.Layout(gtx, func(gtx C) D {
		return t.border.Layout(gtx, func(gtx C) D {
			return t.inset.Layout(gtx, func(gtx C) D {
				return t.state.Layout(gtx, t.value, func(gtx C) D {
					return layout.Background{}.Layout(gtx, func(gtx C) D {
						paint.FillShape(gtx.Ops, t.fill, clip.Rect{Max: gtx.Constraints.Min}.Op())
						return D{Size: gtx.Constraints.Min}
					}, t.label.Layout)
				})
			})
		})
	})
}

// Update the state of the UI. The active tab processes its own input
// while laying out; the live view is kept reading in the background so
// that its stream stays open.
func (ui *UI) Update(gtx C) {
	ui.tab.Update(gtx)
	if ui.tab.Value != tabLive {
		ui.live.Update(gtx)
	}
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return layout.Flex{}.Layout(gtx,
				layout.Flexed(1, Tab(ui.th, &ui.tab, tabHandles, "Handles").Layout),
				layout.Flexed(1, Tab(ui.th, &ui.tab, tabLive, "Live data").Layout),
			)
		}),
		layout.Flexed(1, func(gtx C) D {
			if ui.tab.Value == tabLive {
				return ui.live.Layout(gtx, ui.th)
			}
			return ui.handles.Layout(gtx, ui.th)
		}),
	)
}
