// Package tool holds the style state consumed when a draft stroke is
// finalized. Committed strokes are stamped with an immutable snapshot, so
// changing the active style never alters existing drawings.
package tool

import (
	"fmt"

	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/ink"
)

// Mode is the selected instrument. Unlike ink.Tool it includes the eraser:
// selecting the eraser changes how the session interprets gestures, it is
// never stamped onto a stroke.
type Mode int

const (
	ModePen Mode = iota
	ModeHighlighter
	ModeEraser
)

// String returns a short name for the mode.
func (m Mode) String() string {
	switch m {
	case ModePen:
		return "pen"
	case ModeHighlighter:
		return "highlighter"
	case ModeEraser:
		return "eraser"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Style is an immutable snapshot used to stamp a new stroke.
type Style struct {
	Tool      ink.Tool
	Color     string
	BaseWidth float64
	Opacity   float64
}

// Option configures a State during creation.
type Option func(*State)

// WithMode sets the initially selected mode.
func WithMode(m Mode) Option { return func(s *State) { s.setMode(m) } }

// WithColor sets the initial stroke color; invalid values are ignored.
func WithColor(hex string) Option { return func(s *State) { _ = s.SetColor(hex) } }

// WithWidth sets the initial base width, clamped into range.
func WithWidth(w float64) Option { return func(s *State) { s.SetWidth(w) } }

// State tracks the selected mode, color and base width.
type State struct {
	mode     Mode
	lastDraw ink.Tool // drawing tool restored when leaving eraser mode
	color    string
	width    float64
}

// New creates a State with pen, black and a medium width selected.
func New(opts ...Option) *State {
	s := &State{mode: ModePen, lastDraw: ink.ToolPen, color: "#000000", width: 3}
	for _, o := range opts {
		o(s)
	}
	return s
}

// SetMode selects the active instrument. Unknown values are ignored.
func (s *State) SetMode(m Mode) { s.setMode(m) }

func (s *State) setMode(m Mode) {
	switch m {
	case ModePen:
		s.mode = m
		s.lastDraw = ink.ToolPen
	case ModeHighlighter:
		s.mode = m
		s.lastDraw = ink.ToolHighlighter
	case ModeEraser:
		s.mode = m
	default:
		ink.Logger().Warn("ignoring unknown tool mode", "mode", int(m))
	}
}

// SetColor sets the stroke color. The value must be "#RRGGBB"; invalid
// values leave the current color in place.
func (s *State) SetColor(hex string) error {
	if _, _, _, err := ink.ParseHexColor(hex); err != nil {
		return err
	}
	s.color = hex
	return nil
}

// SetWidth sets the base width, clamped into [ink.MinWidth, ink.MaxWidth]
// regardless of input magnitude or sign.
func (s *State) SetWidth(w float64) {
	s.width = ink.ClampWidth(w)
}

// Mode returns the selected instrument.
func (s *State) Mode() Mode { return s.mode }

// Color returns the current stroke color.
func (s *State) Color() string { return s.color }

// Width returns the current base width.
func (s *State) Width() float64 { return s.width }

// StrokeStyle returns the style a stroke finalized right now would carry.
// In eraser mode it reflects the most recently selected drawing tool, so
// switching back never loses the user's pen settings. The highlighter's
// width multiplier is applied here and the result re-clamped into the
// stroke width range.
func (s *State) StrokeStyle() Style {
	t := s.lastDraw
	return Style{
		Tool:      t,
		Color:     s.color,
		BaseWidth: ink.ClampWidth(s.width * t.WidthScale()),
		Opacity:   t.Opacity(),
	}
}
