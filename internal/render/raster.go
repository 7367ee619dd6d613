package render

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"

	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/ink"
)

// Raster is a software Surface backed by a gg drawing context. It renders
// anti-aliased round-capped segments so pressure-modulated widths read as
// one continuous stroke.
type Raster struct {
	dc     *gg.Context
	width  int
	height int
}

// NewRaster creates a white surface of the given pixel size.
func NewRaster(width, height int) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("raster size %dx%d must be positive", width, height)
	}
	r := &Raster{dc: gg.NewContext(width, height), width: width, height: height}
	r.Clear()
	return r, nil
}

// Size returns the pixel dimensions of the surface.
func (r *Raster) Size() (int, int) { return r.width, r.height }

// Clear repaints the surface white.
func (r *Raster) Clear() {
	r.dc.ClearWithColor(gg.RGBA{R: 1, G: 1, B: 1, A: 1})
}

// FillDisc paints a filled disc centered at normalized (x, y).
func (r *Raster) FillDisc(x, y, radius float64, color string, opacity float64) {
	if radius <= 0 {
		return
	}
	if !r.setPaint(color, opacity) {
		return
	}
	r.dc.DrawCircle(x*float64(r.width), y*float64(r.height), radius)
	if err := r.dc.Fill(); err != nil {
		ink.Logger().Warn("fill disc", "err", err)
	}
}

// StrokeSegment paints one round-capped segment between normalized points.
func (r *Raster) StrokeSegment(x1, y1, x2, y2, width float64, color string, opacity float64) {
	if width <= 0 {
		return
	}
	if !r.setPaint(color, opacity) {
		return
	}
	r.dc.SetLineWidth(width)
	r.dc.SetLineCap(gg.LineCapRound)
	r.dc.SetLineJoin(gg.LineJoinRound)
	r.dc.DrawLine(
		x1*float64(r.width), y1*float64(r.height),
		x2*float64(r.width), y2*float64(r.height),
	)
	if err := r.dc.Stroke(); err != nil {
		ink.Logger().Warn("stroke segment", "err", err)
	}
}

// Image returns the rendered bitmap. This is what the thumbnail
// collaborator and the exporters read; they never see stroke internals.
func (r *Raster) Image() image.Image { return r.dc.Image() }

func (r *Raster) setPaint(color string, opacity float64) bool {
	red, green, blue, err := ink.ParseHexColor(color)
	if err != nil {
		ink.Logger().Warn("unpaintable color", "color", color, "err", err)
		return false
	}
	r.dc.SetRGBA(red, green, blue, ink.Clamp01(opacity))
	return true
}
