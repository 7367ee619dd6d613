package ink

import (
	"encoding/json"
	"fmt"
)

// Version is the current wire format version for serialized documents.
const Version = 1

// Document is the serialized form of a stroke sequence. Sequence order is
// paint order: later strokes paint over earlier ones.
type Document struct {
	Version int      `json:"version"`
	Strokes []Stroke `json:"strokes"`
}

// Encode serializes the document to its exact wire form. The strokes
// array is always present, even when empty, so the round trip is lossless.
func (d Document) Encode() ([]byte, error) {
	if d.Version == 0 {
		d.Version = Version
	}
	if d.Strokes == nil {
		d.Strokes = []Stroke{}
	}
	return json.Marshal(d)
}

// Sanitize returns a copy of the document with every individually invalid
// stroke dropped. Dropped strokes are logged, never fatal: one corrupt
// stroke must not lose the rest of a drawing.
func (d Document) Sanitize() Document {
	out := Document{Version: d.Version, Strokes: make([]Stroke, 0, len(d.Strokes))}
	if out.Version == 0 {
		out.Version = Version
	}
	for i, s := range d.Strokes {
		if err := s.Validate(); err != nil {
			Logger().Warn("dropping invalid stroke", "index", i, "id", s.ID, "err", err)
			continue
		}
		out.Strokes = append(out.Strokes, s.Clone())
	}
	return out
}

// Decode parses a serialized document. A malformed top-level payload is
// reported as an error; individually invalid strokes inside an otherwise
// well-formed payload are dropped and the rest of the document is kept.
func Decode(data []byte) (Document, error) {
	var wire struct {
		Version *int              `json:"version"`
		Strokes []json.RawMessage `json:"strokes"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	if wire.Version == nil {
		return Document{}, fmt.Errorf("decode document: missing version")
	}
	doc := Document{Version: *wire.Version, Strokes: make([]Stroke, 0, len(wire.Strokes))}
	for i, raw := range wire.Strokes {
		var s Stroke
		if err := json.Unmarshal(raw, &s); err != nil {
			Logger().Warn("dropping unreadable stroke", "index", i, "err", err)
			continue
		}
		if err := s.Validate(); err != nil {
			Logger().Warn("dropping invalid stroke", "index", i, "id", s.ID, "err", err)
			continue
		}
		doc.Strokes = append(doc.Strokes, s)
	}
	return doc, nil
}
