package store

import (
	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/ink"
	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/render"
)

// RenderAll clears the borrowed surface and repaints every committed
// stroke in sequence order, so later strokes paint over earlier ones.
// Without a surface this is a no-op, keeping headless use safe.
func (st *Store) RenderAll() {
	if st.surface == nil {
		return
	}
	st.surface.Clear()
	for i := range st.strokes {
		RenderStroke(st.strokes[i], st.surface)
	}
}

// RenderStroke paints one stroke onto a surface. A single-point stroke
// renders as a filled disc of radius pressure*baseWidth/2; a multi-point
// stroke renders as connected segments whose local width follows each
// point's pressure. The geometry is painted as captured: smoothing was
// already applied upstream. A nil surface makes the call a no-op.
//
// The stroke need not be committed; the session uses this for the draft
// preview on its transient overlay.
func RenderStroke(s ink.Stroke, surface render.Surface) {
	if surface == nil || len(s.Points) == 0 {
		return
	}
	if len(s.Points) == 1 {
		p := s.Points[0]
		surface.FillDisc(p.X, p.Y, p.Pressure*s.BaseWidth/2, s.Color, s.Opacity)
		return
	}
	for i := 1; i < len(s.Points); i++ {
		a, b := s.Points[i-1], s.Points[i]
		surface.StrokeSegment(a.X, a.Y, b.X, b.Y, b.Pressure*s.BaseWidth, s.Color, s.Opacity)
	}
}
