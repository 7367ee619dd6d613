package tool

import (
	"testing"

	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/ink"
)

func TestWidthClampUnconditional(t *testing.T) {
	s := New()
	for _, tc := range []struct{ in, want float64 }{
		{-10, ink.MinWidth},
		{0, ink.MinWidth},
		{0.5, ink.MinWidth},
		{5, 5},
		{20, 20},
		{1000, ink.MaxWidth},
	} {
		s.SetWidth(tc.in)
		if got := s.Width(); got != tc.want {
			t.Errorf("SetWidth(%g): width = %g, want %g", tc.in, got, tc.want)
		}
	}
}

func TestSetColorRejectsInvalid(t *testing.T) {
	s := New()
	if err := s.SetColor("#AB12CD"); err != nil {
		t.Fatalf("valid color rejected: %v", err)
	}
	if err := s.SetColor("blue"); err == nil {
		t.Fatal("expected error for non-hex color")
	}
	if got := s.Color(); got != "#AB12CD" {
		t.Fatalf("invalid color must not replace the current one, got %s", got)
	}
}

func TestStrokeStylePerTool(t *testing.T) {
	s := New(WithColor("#123456"), WithWidth(4))

	pen := s.StrokeStyle()
	if pen.Tool != ink.ToolPen || pen.Opacity != 1.0 || pen.BaseWidth != 4 {
		t.Fatalf("unexpected pen style %+v", pen)
	}

	s.SetMode(ModeHighlighter)
	hl := s.StrokeStyle()
	if hl.Tool != ink.ToolHighlighter || hl.Opacity != 0.4 {
		t.Fatalf("unexpected highlighter style %+v", hl)
	}
	if hl.BaseWidth != 12 {
		t.Fatalf("highlighter must triple the base width: got %g", hl.BaseWidth)
	}

	// The tripled width still clamps into the stroke range.
	s.SetWidth(15)
	if got := s.StrokeStyle().BaseWidth; got != ink.MaxWidth {
		t.Fatalf("scaled width must clamp to %g, got %g", ink.MaxWidth, got)
	}
}

func TestEraserKeepsLastDrawingTool(t *testing.T) {
	s := New()
	s.SetMode(ModeHighlighter)
	s.SetMode(ModeEraser)
	if s.Mode() != ModeEraser {
		t.Fatal("eraser mode not selected")
	}
	if got := s.StrokeStyle().Tool; got != ink.ToolHighlighter {
		t.Fatalf("style in eraser mode must reflect the last drawing tool, got %v", got)
	}
	s.SetMode(Mode(99))
	if s.Mode() != ModeEraser {
		t.Fatal("unknown mode must be ignored")
	}
}
