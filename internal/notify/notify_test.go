package notify

import "testing"

func TestLoadPreferencesDefaults(t *testing.T) {
	t.Setenv("STILLMOVE_INK_NOTIFY_TITLE", "")
	t.Setenv("STILLMOVE_INK_NOTIFY_SAVE_TEXT", "")

	prefs := LoadPreferences()
	if prefs.Title != "Stillmove Ink" {
		t.Errorf("Title = %q", prefs.Title)
	}
	if prefs.Events[EventSave].Template != "Saved %s" {
		t.Errorf("Save template = %q", prefs.Events[EventSave].Template)
	}
}

func TestLoadPreferencesEnvOverride(t *testing.T) {
	t.Setenv("STILLMOVE_INK_NOTIFY_TITLE", "Boards")
	t.Setenv("STILLMOVE_INK_NOTIFY_EXPORT_TEXT", "Wrote %s")

	prefs := LoadPreferences()
	if prefs.Title != "Boards" {
		t.Errorf("Title = %q", prefs.Title)
	}
	if prefs.Events[EventExport].Template != "Wrote %s" {
		t.Errorf("Export template = %q", prefs.Events[EventExport].Template)
	}
	if prefs.Events[EventCopy].Template != "Copied %s to clipboard" {
		t.Errorf("Copy template changed: %q", prefs.Events[EventCopy].Template)
	}
}

func TestEventsDisabledByDefault(t *testing.T) {
	n := New(DefaultPreferences())
	for _, e := range []Event{EventSave, EventExport, EventCopy} {
		if n.enabledFor(e) {
			t.Errorf("event %s enabled by default", e)
		}
	}
	n.Enable(EventSave, true)
	if !n.enabledFor(EventSave) || n.enabledFor(EventCopy) {
		t.Error("Enable toggled the wrong event")
	}
}

func TestNilNotifierIsSafe(t *testing.T) {
	var n *Notifier
	n.Enable(EventSave, true)
	n.Save("doc")
	n.Copy("")
}
