// Package render provides the drawing surfaces strokes are painted onto.
// Stores borrow surfaces; they never own their lifecycle.
package render

// Surface is a paint target in normalized document coordinates: positions
// are in [0, 1] on both axes and scale to the surface's pixel size, widths
// and radii are in pixels.
type Surface interface {
	// Size returns the pixel dimensions of the surface.
	Size() (width, height int)
	// Clear resets the surface to its background.
	Clear()
	// FillDisc paints a filled disc centered at (x, y).
	FillDisc(x, y, radius float64, color string, opacity float64)
	// StrokeSegment paints one round-capped line segment.
	StrokeSegment(x1, y1, x2, y2, width float64, color string, opacity float64)
}
