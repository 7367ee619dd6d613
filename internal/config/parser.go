package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/ink"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			continue
		}

		// Parse Key = Value or Key: Value
		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		}

		var err error
		switch currentSection {
		case "":
			err = setRootField(cfg, key, value)
		case "input":
			err = setInputField(&cfg.Input, key, value)
		case "history":
			err = setHistoryField(&cfg.History, key, value)
		case "style":
			err = setStyleField(&cfg.Style, key, value)
		case "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		}
		if err != nil {
			return nil, fmt.Errorf("error in section [%s]: %w", currentSection, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "save_dir":
		cfg.SaveDir = value
	}
	return nil
}

func setInputField(in *Input, key, value string) error {
	switch strings.ToLower(key) {
	case "palm_window_ms":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for key %s: %w", key, err)
		}
		if n < 0 {
			return fmt.Errorf("palm_window_ms must not be negative, got %d", n)
		}
		in.PalmWindowMs = n
	case "smoothing":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for key %s: %w", key, err)
		}
		in.Smoothing = b
	}
	return nil
}

func setHistoryField(h *History, key, value string) error {
	switch strings.ToLower(key) {
	case "max":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for key %s: %w", key, err)
		}
		h.Max = n
	}
	return nil
}

func setStyleField(s *Style, key, value string) error {
	switch strings.ToLower(key) {
	case "tool":
		var t ink.Tool
		if err := t.UnmarshalText([]byte(value)); err != nil {
			return fmt.Errorf("invalid tool for key %s: %w", key, err)
		}
		s.Tool = t.String()
	case "color":
		if _, _, _, err := ink.ParseHexColor(value); err != nil {
			return fmt.Errorf("invalid color for key %s: %w", key, err)
		}
		s.Color = value
	case "width":
		w, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid number for key %s: %w", key, err)
		}
		s.Width = ink.ClampWidth(w)
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "save":
		n.Save = b
	case "export":
		n.Export = b
	case "copy":
		n.Copy = b
	}
	return nil
}
