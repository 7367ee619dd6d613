// Package ink defines the stroke data model shared by the drawing engine:
// normalized points, committed strokes, and the serialized document form.
package ink

import (
	"fmt"
	"strconv"
	"strings"
)

// Stroke width bounds in surface pixels.
const (
	MinWidth = 1.0
	MaxWidth = 20.0
)

// Tool identifies the instrument a stroke was drawn with. The eraser is a
// gesture mode on the session, not a stroke tool, so it has no value here.
type Tool int

const (
	ToolPen Tool = iota
	ToolHighlighter
)

// String returns the wire name of the tool.
func (t Tool) String() string {
	switch t {
	case ToolPen:
		return "pen"
	case ToolHighlighter:
		return "highlighter"
	default:
		return fmt.Sprintf("tool(%d)", int(t))
	}
}

// Known reports whether t is one of the closed set of stroke tools.
func (t Tool) Known() bool {
	switch t {
	case ToolPen, ToolHighlighter:
		return true
	default:
		return false
	}
}

// Opacity returns the paint opacity stamped onto strokes drawn with t.
func (t Tool) Opacity() float64 {
	switch t {
	case ToolHighlighter:
		return 0.4
	default:
		return 1.0
	}
}

// WidthScale returns the multiplier applied to the base width when a
// stroke drawn with t is finalized.
func (t Tool) WidthScale() float64 {
	switch t {
	case ToolHighlighter:
		return 3.0
	default:
		return 1.0
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Tool) MarshalText() ([]byte, error) {
	if !t.Known() {
		return nil, fmt.Errorf("unknown tool %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tool) UnmarshalText(text []byte) error {
	switch string(text) {
	case "pen":
		*t = ToolPen
	case "highlighter":
		*t = ToolHighlighter
	default:
		return fmt.Errorf("unknown tool %q", text)
	}
	return nil
}

// Point is a single normalized input sample. X, Y and Pressure are always
// in [0, 1]; Timestamp is milliseconds since the Unix epoch.
type Point struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Pressure  float64 `json:"pressure"`
	Timestamp int64   `json:"timestamp"`
}

// NewPoint builds a Point, clamping every numeric field into range.
// Out-of-range device samples are clamped rather than rejected so the
// input pipeline never stalls on a single bad sample.
func NewPoint(x, y, pressure float64, timestamp int64) Point {
	return Point{
		X:         Clamp01(x),
		Y:         Clamp01(y),
		Pressure:  Clamp01(pressure),
		Timestamp: timestamp,
	}
}

// InRange reports whether the point already satisfies the [0,1] domain
// invariant for all three numeric fields.
func (p Point) InRange() bool {
	return p.X >= 0 && p.X <= 1 && p.Y >= 0 && p.Y <= 1 && p.Pressure >= 0 && p.Pressure <= 1
}

// Clamp01 clamps v into [0, 1]. NaN clamps to 0.
func Clamp01(v float64) float64 {
	if !(v > 0) { // catches NaN as well
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ClampWidth clamps w into the [MinWidth, MaxWidth] stroke width range.
// NaN clamps to MinWidth.
func ClampWidth(w float64) float64 {
	if !(w > MinWidth) {
		return MinWidth
	}
	if w > MaxWidth {
		return MaxWidth
	}
	return w
}

// Stroke is one committed pointer-down-to-pointer-up gesture. A stroke is
// immutable once added to a store: later style changes never alter it, and
// removal is always whole-stroke.
type Stroke struct {
	ID        string  `json:"id"`
	Tool      Tool    `json:"tool"`
	Color     string  `json:"color"`
	BaseWidth float64 `json:"baseWidth"`
	Opacity   float64 `json:"opacity"`
	Points    []Point `json:"points"`
	CreatedAt int64   `json:"createdAt"`
}

// Clone returns a deep copy of the stroke. Stores hand out clones so
// callers can never mutate committed geometry.
func (s Stroke) Clone() Stroke {
	c := s
	c.Points = make([]Point, len(s.Points))
	copy(c.Points, s.Points)
	return c
}

// Validate checks the stroke against the model invariants. It returns a
// *ValidationError describing the first violation, or nil.
func (s Stroke) Validate() error {
	if !s.Tool.Known() {
		return &ValidationError{Field: "tool", Reason: fmt.Sprintf("unknown tool %d", int(s.Tool))}
	}
	if _, _, _, err := ParseHexColor(s.Color); err != nil {
		return &ValidationError{Field: "color", Reason: err.Error()}
	}
	if s.BaseWidth < MinWidth || s.BaseWidth > MaxWidth {
		return &ValidationError{Field: "baseWidth", Reason: fmt.Sprintf("%g outside [%g, %g]", s.BaseWidth, MinWidth, MaxWidth)}
	}
	if s.Opacity < 0 || s.Opacity > 1 {
		return &ValidationError{Field: "opacity", Reason: fmt.Sprintf("%g outside [0, 1]", s.Opacity)}
	}
	if len(s.Points) == 0 {
		return &ValidationError{Field: "points", Reason: "empty"}
	}
	for i, p := range s.Points {
		if !p.InRange() {
			return &ValidationError{Field: "points", Reason: fmt.Sprintf("point %d outside [0, 1]", i)}
		}
	}
	return nil
}

// ValidationError reports a stroke draft that violates a model invariant.
// Callers finalizing a user-drawn stroke are expected to always supply
// valid drafts, so hitting this is a programming-contract failure rather
// than a normal-flow error.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid stroke: %s: %s", e.Field, e.Reason)
}

// ParseHexColor parses a "#RRGGBB" color into components in [0, 1].
func ParseHexColor(s string) (r, g, b float64, err error) {
	spec := strings.TrimSpace(s)
	if !strings.HasPrefix(spec, "#") || len(spec) != 7 {
		return 0, 0, 0, fmt.Errorf("color %q is not #RRGGBB", s)
	}
	val, perr := strconv.ParseUint(spec[1:], 16, 32)
	if perr != nil {
		return 0, 0, 0, fmt.Errorf("color %q is not #RRGGBB", s)
	}
	r = float64(val>>16) / 255
	g = float64((val>>8)&0xFF) / 255
	b = float64(val&0xFF) / 255
	return r, g, b, nil
}
