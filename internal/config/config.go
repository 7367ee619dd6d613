package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/ink"
	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/input"
)

// Input holds pointer pipeline settings.
type Input struct {
	PalmWindowMs int
	Smoothing    bool
}

// PalmWindow returns the palm rejection window as a duration.
func (i Input) PalmWindow() time.Duration {
	return time.Duration(i.PalmWindowMs) * time.Millisecond
}

// History holds undo history settings.
type History struct {
	Max int
}

// Style holds the startup tool style.
type Style struct {
	Tool  string
	Color string
	Width float64
}

// Notify holds notification settings.
type Notify struct {
	Save   bool
	Export bool
	Copy   bool
}

// Config holds the application configuration.
type Config struct {
	SaveDir string
	Input   Input
	History History
	Style   Style
	Notify  Notify
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Input: Input{
			PalmWindowMs: int(input.DefaultPalmWindow.Milliseconds()),
			Smoothing:    true,
		},
		History: History{Max: 50},
		Style: Style{
			Tool:  ink.ToolPen.String(),
			Color: "#000000",
			Width: 3,
		},
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
		sb.WriteString("\n")
	}

	sb.WriteString("[input]\n")
	fmt.Fprintf(&sb, "palm_window_ms = %d\n", c.Input.PalmWindowMs)
	fmt.Fprintf(&sb, "smoothing = %v\n", c.Input.Smoothing)
	sb.WriteString("\n")

	sb.WriteString("[history]\n")
	fmt.Fprintf(&sb, "max = %d\n", c.History.Max)
	sb.WriteString("\n")

	sb.WriteString("[style]\n")
	fmt.Fprintf(&sb, "tool = %s\n", c.Style.Tool)
	fmt.Fprintf(&sb, "color = %s\n", c.Style.Color)
	fmt.Fprintf(&sb, "width = %v\n", c.Style.Width)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	return sb.String()
}
