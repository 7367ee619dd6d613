package store

import (
	"math"

	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/ink"
)

// StrokesAtPoint returns every stroke whose path passes within tolerance
// of the query point, deduplicated, in paint order. The distance to a
// stroke is the minimum distance to any of its consecutive point-pair
// segments, or to its single point. Tolerance should scale with perceived
// stroke width at the call site.
func (st *Store) StrokesAtPoint(x, y, tolerance float64) []ink.Stroke {
	var hits []ink.Stroke
	for _, s := range st.strokes {
		if strokeDistance(s, x, y) <= tolerance {
			hits = append(hits, s.Clone())
		}
	}
	return hits
}

// StrokesAlongPath returns the union of StrokesAtPoint over every point of
// the path, deduplicated: one continuous eraser drag removes each
// intersected stroke exactly once no matter how often it is crossed.
func (st *Store) StrokesAlongPath(path []ink.Point, tolerance float64) []ink.Stroke {
	var hits []ink.Stroke
	for _, s := range st.strokes {
		for _, p := range path {
			if strokeDistance(s, p.X, p.Y) <= tolerance {
				hits = append(hits, s.Clone())
				break
			}
		}
	}
	return hits
}

// strokeDistance returns the minimum distance from (x, y) to the stroke's
// polyline.
func strokeDistance(s ink.Stroke, x, y float64) float64 {
	if len(s.Points) == 0 {
		return math.Inf(1)
	}
	if len(s.Points) == 1 {
		p := s.Points[0]
		return math.Hypot(x-p.X, y-p.Y)
	}
	min := math.Inf(1)
	for i := 1; i < len(s.Points); i++ {
		d := segmentDistance(x, y, s.Points[i-1], s.Points[i])
		if d < min {
			min = d
		}
	}
	return min
}

// segmentDistance returns the distance from (x, y) to the segment a-b.
func segmentDistance(x, y float64, a, b ink.Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(x-a.X, y-a.Y)
	}
	t := ((x-a.X)*dx + (y-a.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return math.Hypot(x-(a.X+t*dx), y-(a.Y+t*dy))
}
