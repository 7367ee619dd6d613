package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
save_dir = /tmp/boards

[input]
palm_window_ms = 150
smoothing = false

[history]
max = 20

[style]
tool = highlighter
color = #FF8800
width = 6

[notify]
save = true
export = false
copy = true
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.SaveDir != "/tmp/boards" {
		t.Errorf("Expected save_dir '/tmp/boards', got '%s'", cfg.SaveDir)
	}
	if cfg.Input.PalmWindowMs != 150 {
		t.Errorf("Expected palm_window_ms 150, got %d", cfg.Input.PalmWindowMs)
	}
	if cfg.Input.Smoothing {
		t.Error("Expected input.smoothing to be false")
	}
	if cfg.History.Max != 20 {
		t.Errorf("Expected history.max 20, got %d", cfg.History.Max)
	}
	if cfg.Style.Tool != "highlighter" || cfg.Style.Color != "#FF8800" || cfg.Style.Width != 6 {
		t.Errorf("Unexpected style: %+v", cfg.Style)
	}
	if !cfg.Notify.Save || cfg.Notify.Export || !cfg.Notify.Copy {
		t.Errorf("Unexpected notify: %+v", cfg.Notify)
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader("# nothing but a comment\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, New()) {
		t.Errorf("Empty input did not yield defaults: %+v", cfg)
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	for _, tt := range []struct {
		name  string
		input string
	}{
		{"bad palm window", "[input]\npalm_window_ms = soon\n"},
		{"negative palm window", "[input]\npalm_window_ms = -5\n"},
		{"bad smoothing", "[input]\nsmoothing = sometimes\n"},
		{"bad history max", "[history]\nmax = lots\n"},
		{"unknown tool", "[style]\ntool = crayon\n"},
		{"bad color", "[style]\ncolor = red\n"},
		{"bad width", "[style]\nwidth = wide\n"},
		{"bad notify flag", "[notify]\nsave = maybe\n"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.input)); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestParseClampsWidth(t *testing.T) {
	cfg, err := Parse(strings.NewReader("[style]\nwidth = 99\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Style.Width != 20 {
		t.Errorf("Expected width clamped to 20, got %v", cfg.Style.Width)
	}
}

func TestCircular(t *testing.T) {
	input := `save_dir = /home/user/boards

[input]
palm_window_ms = 80
smoothing = true

[history]
max = 30

[style]
tool = pen
color = #3366CC
width = 5

[notify]
save = true
export = true
copy = false
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	cfg2, err := Parse(strings.NewReader(cfg.String()))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	if !reflect.DeepEqual(cfg, cfg2) {
		t.Errorf("Round trip mismatch:\n%+v\nvs\n%+v", cfg, cfg2)
	}
}

func TestLoaderEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boardrc")
	if err := os.WriteFile(path, []byte("[history]\nmax = 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfigPath, path)

	cfg, err := NewLoader("v1.0.0", "").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.History.Max != 7 {
		t.Errorf("Expected history.max 7 from env config, got %d", cfg.History.Max)
	}
}

func TestLoaderMissingFileYieldsDefaults(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv("HOME", t.TempDir())

	cfg, err := NewLoader("v1.0.0", "").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, New()) {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}
