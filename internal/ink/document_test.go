package ink

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func threePointStroke() Stroke {
	return Stroke{
		ID:        "abc",
		Tool:      ToolPen,
		Color:     "#000000",
		BaseWidth: 3,
		Opacity:   1,
		Points: []Point{
			NewPoint(0.1, 0.1, 0.2, 1000),
			NewPoint(0.2, 0.2, 0.8, 1016),
			NewPoint(0.3, 0.25, 0.5, 1032),
		},
		CreatedAt: 1000,
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	doc := Document{Version: Version, Strokes: []Stroke{threePointStroke()}}
	data, err := doc.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(doc, back) {
		t.Fatalf("round trip mismatch\n  in:  %+v\n  out: %+v", doc, back)
	}
}

func TestEncodeEmptyDocument(t *testing.T) {
	data, err := Document{}.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"version":1`) || !strings.Contains(s, `"strokes":[]`) {
		t.Fatalf("empty document must carry version and an empty strokes array: %s", s)
	}
}

func TestDecodeWireNames(t *testing.T) {
	payload := `{"version":1,"strokes":[{"id":"w","tool":"highlighter","color":"#00FF00",
		"baseWidth":2,"opacity":0.4,
		"points":[{"x":0.5,"y":0.5,"pressure":0.9,"timestamp":7}],"createdAt":7}]}`
	doc, err := Decode([]byte(payload))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(doc.Strokes) != 1 {
		t.Fatalf("expected 1 stroke, got %d", len(doc.Strokes))
	}
	s := doc.Strokes[0]
	if s.Tool != ToolHighlighter || s.Opacity != 0.4 || s.Points[0].Pressure != 0.9 {
		t.Fatalf("unexpected stroke %+v", s)
	}
}

func TestDecodeDropsInvalidStrokesAndKeepsRest(t *testing.T) {
	good := threePointStroke()
	goodJSON, err := json.Marshal(good)
	if err != nil {
		t.Fatal(err)
	}
	payload := `{"version":1,"strokes":[` +
		`{"id":"bad-tool","tool":"spraycan","color":"#000000","baseWidth":3,"opacity":1,` +
		`"points":[{"x":0,"y":0,"pressure":1,"timestamp":1}],"createdAt":1},` +
		string(goodJSON) + `,` +
		`{"id":"bad-width","tool":"pen","color":"#000000","baseWidth":99,"opacity":1,` +
		`"points":[{"x":0,"y":0,"pressure":1,"timestamp":1}],"createdAt":1}` +
		`]}`
	doc, err := Decode([]byte(payload))
	if err != nil {
		t.Fatalf("partial recovery must not fail the load: %v", err)
	}
	if len(doc.Strokes) != 1 || doc.Strokes[0].ID != "abc" {
		t.Fatalf("expected only the valid stroke to survive, got %+v", doc.Strokes)
	}
}

func TestDecodeMalformedTopLevel(t *testing.T) {
	for _, payload := range []string{"", "not json", `[1,2,3]`, `{"strokes":[]}`} {
		if _, err := Decode([]byte(payload)); err == nil {
			t.Errorf("expected error for %q", payload)
		}
	}
}

func TestSanitizeDropsInvalid(t *testing.T) {
	bad := threePointStroke()
	bad.Opacity = 5
	doc := Document{Strokes: []Stroke{threePointStroke(), bad}}
	clean := doc.Sanitize()
	if clean.Version != Version {
		t.Fatalf("sanitize must stamp the current version, got %d", clean.Version)
	}
	if len(clean.Strokes) != 1 {
		t.Fatalf("expected 1 surviving stroke, got %d", len(clean.Strokes))
	}
}
