// Package store owns the committed stroke sequence of one drawing. Every
// read or write of persisted geometry passes through it: additions are
// validated and atomic, removals are whole-stroke, and the sequence order
// is the paint order.
package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/ink"
	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/render"
)

// Option configures a Store during creation.
type Option func(*Store)

// WithSurface lends a persistent surface to render committed strokes on.
// The store borrows the surface; the caller owns its lifecycle.
func WithSurface(s render.Surface) Option {
	return func(st *Store) { st.surface = s }
}

// Store is the exclusive owner of a drawing's committed strokes. It is not
// safe for concurrent use; all mutation happens on the event thread.
type Store struct {
	strokes []ink.Stroke
	surface render.Surface
}

// New creates an empty store.
func New(opts ...Option) *Store {
	st := &Store{}
	for _, o := range opts {
		o(st)
	}
	return st
}

// SetSurface rebinds the borrowed render surface and repaints it. A nil
// surface detaches rendering; all paint calls become no-ops.
func (st *Store) SetSurface(s render.Surface) {
	st.surface = s
	st.RenderAll()
}

// Len returns the number of committed strokes.
func (st *Store) Len() int { return len(st.strokes) }

// AddStroke validates and commits a draft stroke. Missing id and creation
// time are assigned. The committed stroke is immutable from this point on;
// the returned value is a copy. A draft violating the model invariants is
// rejected with *ink.ValidationError.
func (st *Store) AddStroke(draft ink.Stroke) (ink.Stroke, error) {
	s := draft.Clone()
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt == 0 {
		s.CreatedAt = time.Now().UnixMilli()
	}
	if err := s.Validate(); err != nil {
		return ink.Stroke{}, err
	}
	st.strokes = append(st.strokes, s)
	ink.Logger().Debug("stroke committed", "id", s.ID, "points", len(s.Points))
	st.RenderAll()
	return s.Clone(), nil
}

// Restore re-commits previously removed strokes in the given order, as one
// atomic batch with a single repaint. It is the replay path for undoing a
// removal; the strokes must still satisfy the model invariants.
func (st *Store) Restore(strokes []ink.Stroke) error {
	for i := range strokes {
		if err := strokes[i].Validate(); err != nil {
			return err
		}
	}
	for i := range strokes {
		st.strokes = append(st.strokes, strokes[i].Clone())
	}
	st.RenderAll()
	return nil
}

// RemoveStroke removes the stroke with the given id. Absence is not an
// error: the second return reports whether anything was removed.
func (st *Store) RemoveStroke(id string) (ink.Stroke, bool) {
	removed := st.RemoveStrokes([]string{id})
	if len(removed) == 0 {
		return ink.Stroke{}, false
	}
	return removed[0], true
}

// RemoveStrokes removes every stroke whose id is listed and returns what
// was actually removed, in sequence order. Unknown ids are ignored.
func (st *Store) RemoveStrokes(ids []string) []ink.Stroke {
	if len(ids) == 0 {
		return nil
	}
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var removed []ink.Stroke
	kept := st.strokes[:0]
	for _, s := range st.strokes {
		if _, ok := want[s.ID]; ok {
			removed = append(removed, s)
			continue
		}
		kept = append(kept, s)
	}
	if len(removed) == 0 {
		return nil
	}
	st.strokes = kept
	ink.Logger().Debug("strokes removed", "count", len(removed))
	st.RenderAll()
	return removed
}

// Clear removes every stroke and returns the removed sequence in its
// original order, ready to snapshot into an undo action.
func (st *Store) Clear() []ink.Stroke {
	removed := st.strokes
	st.strokes = nil
	st.RenderAll()
	return removed
}

// Strokes returns a deep copy of the committed sequence in paint order.
func (st *Store) Strokes() []ink.Stroke {
	out := make([]ink.Stroke, len(st.strokes))
	for i, s := range st.strokes {
		out[i] = s.Clone()
	}
	return out
}

// Encode serializes the store's entire sequence as a version 1 document.
func (st *Store) Encode() ([]byte, error) {
	return ink.Document{Version: ink.Version, Strokes: st.strokes}.Encode()
}

// Load replaces the sequence with a decoded document and repaints. A
// malformed top-level payload is reported without touching the current
// sequence; individually invalid strokes are dropped by the decoder and
// the rest of the document loads.
func (st *Store) Load(data []byte) error {
	doc, err := ink.Decode(data)
	if err != nil {
		return err
	}
	st.strokes = doc.Strokes
	st.RenderAll()
	return nil
}

// LoadDocument replaces the sequence from an in-memory document, dropping
// any stroke that fails validation.
func (st *Store) LoadDocument(doc ink.Document) {
	st.strokes = doc.Sanitize().Strokes
	st.RenderAll()
}
