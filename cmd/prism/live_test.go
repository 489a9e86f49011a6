package main

import (
	"testing"

	"gioui.org/f32"
	"git.sr.ht/~whereswaldon/prism/cartesian"
)

func TestViewportPan(t *testing.T) {
	var v viewport
	x := cartesian.Range{Min: 0, Max: 10}
	y := cartesian.Range{Min: -1, Max: 1}
	v.apply(liveMsg{op: liveGrab, offset: f32.Pt(1, 0), x: x, y: y, ok: true})
	if v.manual {
		t.Errorf("expected a press alone not to take over the view")
	}
	if !v.apply(liveMsg{op: liveMove, offset: f32.Pt(-1, 0.5), ok: true}) {
		t.Fatalf("expected the drag to move the view")
	}
	if v.x != (cartesian.Range{Min: 2, Max: 12}) || v.y != (cartesian.Range{Min: -1.5, Max: 0.5}) {
		t.Errorf("expected the view to follow the drag, got %v %v", v.x, v.y)
	}
	v.apply(liveMsg{op: liveDrop, offset: f32.Pt(-1, 0.5), ok: true})
	if v.panning {
		t.Errorf("expected the release to end panning")
	}
	if v.apply(liveMsg{op: liveMove, offset: f32.Pt(3, 3), ok: true}) {
		t.Errorf("expected hovering not to pan")
	}
}

func TestViewportZoom(t *testing.T) {
	var v viewport
	x := cartesian.Range{Min: 0, Max: 10}
	y := cartesian.Range{Min: 0, Max: 10}
	if v.apply(liveMsg{op: liveZoom, x: x, y: y, ok: true}) {
		t.Errorf("expected a zero scroll not to zoom")
	}
	if !v.apply(liveMsg{op: liveZoom, coords: f32.Pt(5, 5), scroll: -20, x: x, y: y, ok: true}) {
		t.Fatalf("expected scrolling to zoom")
	}
	if c := v.x.Center(); v.x.Len() >= 10 || c < 4.999 || c > 5.001 {
		t.Errorf("expected zooming in around the cursor, got %v", v.x)
	}
	v.reset()
	if v.manual {
		t.Errorf("expected reset to follow the data again")
	}
}

func TestHoverTarget(t *testing.T) {
	pts := hoverTarget{{X: 1, Y: 2}, {X: 3, Y: 4}}
	entries := pts.Entries()
	if len(entries) != 2 || entries[1].ID != 1 || entries[1].Location != f32.Pt(3, 4) {
		t.Errorf("unexpected entries %v", entries)
	}
	if !pts.XRange().Empty() {
		t.Errorf("expected hover targets not to affect the ranges")
	}
}
