// Package session is the mediator between the input normalizer, the tool
// state, the stroke store and the undo history. One Session exists per
// opened document and owns the draft stroke accumulated between
// stroke-start and stroke-end; the components it wires never reach into
// each other directly.
package session

import (
	"context"
	"image"

	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/history"
	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/ink"
	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/input"
	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/render"
	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/store"
	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/tool"
)

// minPickTolerance is the floor for hit-test tolerance in normalized
// units, so thin strokes stay selectable.
const minPickTolerance = 0.01

// DocumentStore persists encoded documents. Durability is the store's
// obligation; handing over the payload unchanged is ours.
type DocumentStore interface {
	SaveDocument(ctx context.Context, id string, data []byte) error
}

// OfflineQueue accepts a save payload when the document store cannot.
type OfflineQueue interface {
	Enqueue(id string, data []byte)
}

// ThumbnailGenerator consumes the rendered bitmap of the persistent
// surface. It never sees stroke internals.
type ThumbnailGenerator interface {
	Generate(ctx context.Context, id string, img image.Image) error
}

// Imager is implemented by surfaces that can hand out their rendered
// bitmap, such as render.Raster.
type Imager interface {
	Image() image.Image
}

// Option configures a Session during creation.
type Option func(*Session)

// WithStore supplies a prebuilt stroke store.
func WithStore(st *store.Store) Option { return func(s *Session) { s.store = st } }

// WithHistory supplies a prebuilt undo history.
func WithHistory(h *history.History) Option { return func(s *Session) { s.history = h } }

// WithTools supplies a prebuilt tool state.
func WithTools(t *tool.State) Option { return func(s *Session) { s.tools = t } }

// WithSurface attaches the persistent rendering surface. The store
// borrows it for repaints and the session paints draft segments onto it
// during motion.
func WithSurface(sf render.Surface) Option { return func(s *Session) { s.surface = sf } }

// WithDocumentStore attaches the persistence collaborator.
func WithDocumentStore(ds DocumentStore) Option { return func(s *Session) { s.docs = ds } }

// WithOfflineQueue attaches the save fallback collaborator.
func WithOfflineQueue(q OfflineQueue) Option { return func(s *Session) { s.queue = q } }

// WithThumbnailGenerator attaches the thumbnail collaborator.
func WithThumbnailGenerator(tg ThumbnailGenerator) Option {
	return func(s *Session) { s.thumbs = tg }
}

// Session coordinates one open document. All methods run on the input
// thread; nothing here blocks on I/O.
type Session struct {
	id      string
	store   *store.Store
	history *history.History
	tools   *tool.State
	surface render.Surface

	docs   DocumentStore
	queue  OfflineQueue
	thumbs ThumbnailGenerator

	draft     []ink.Point
	erasing   bool
	lastHover []ink.Stroke
}

// New creates a Session for the document with the given id. Components
// not supplied through options are created with their defaults.
func New(id string, opts ...Option) *Session {
	s := &Session{id: id}
	for _, o := range opts {
		o(s)
	}
	if s.tools == nil {
		s.tools = tool.New()
	}
	if s.store == nil {
		s.store = store.New()
	}
	if s.history == nil {
		s.history = history.New()
	}
	if s.surface != nil {
		s.store.SetSurface(s.surface)
	}
	return s
}

// ID returns the document id this session coordinates.
func (s *Session) ID() string { return s.id }

// SetSurface swaps the rendering surface, e.g. after a window resize, and
// repaints onto it.
func (s *Session) SetSurface(sf render.Surface) {
	s.surface = sf
	s.store.SetSurface(sf)
}

// Store returns the stroke store.
func (s *Session) Store() *store.Store { return s.store }

// History returns the undo history.
func (s *Session) History() *history.History { return s.history }

// Tools returns the tool state.
func (s *Session) Tools() *tool.State { return s.tools }

// Callbacks returns the handler set to register on an input normalizer.
func (s *Session) Callbacks() input.Callbacks {
	return input.Callbacks{
		StrokeStart:  s.strokeStart,
		StrokeMove:   s.strokeMove,
		StrokeEnd:    s.strokeEnd,
		StrokeCancel: s.strokeCancel,
		Hover:        s.hover,
	}
}

func (s *Session) strokeStart(p ink.Point) {
	s.erasing = s.tools.Mode() == tool.ModeEraser
	s.draft = append(s.draft[:0], p)
	if !s.erasing {
		s.paintDraftDot(p)
	}
}

func (s *Session) strokeMove(p ink.Point) {
	if len(s.draft) == 0 {
		return
	}
	prev := s.draft[len(s.draft)-1]
	s.draft = append(s.draft, p)
	if !s.erasing {
		s.paintDraftSegment(prev, p)
	}
}

func (s *Session) strokeEnd(p ink.Point) {
	if len(s.draft) == 0 {
		return
	}
	s.draft = append(s.draft, p)
	path := s.draft
	s.draft = nil
	if s.erasing {
		s.eraseAlong(path)
		return
	}
	s.commit(path)
}

// strokeCancel discards the draft. A repaint wipes any draft marks
// already painted on the surface.
func (s *Session) strokeCancel() {
	s.draft = nil
	s.store.RenderAll()
}

func (s *Session) hover(p ink.Point) {
	s.lastHover = s.store.StrokesAtPoint(p.X, p.Y, s.Tolerance())
}

// HoverTargets returns the strokes under the most recent hover position,
// for cursor feedback such as previewing eraser hits.
func (s *Session) HoverTargets() []ink.Stroke { return s.lastHover }

// commit finalizes a draft into a committed stroke: stamp the current
// style, hand it to the store and record the addition for undo.
func (s *Session) commit(points []ink.Point) {
	style := s.tools.StrokeStyle()
	committed, err := s.store.AddStroke(ink.Stroke{
		Tool:      style.Tool,
		Color:     style.Color,
		BaseWidth: style.BaseWidth,
		Opacity:   style.Opacity,
		Points:    points,
	})
	if err != nil {
		ink.Logger().Warn("discarding invalid draft", "error", err)
		s.store.RenderAll()
		return
	}
	s.history.Push(&history.Action{Kind: history.KindAdd, Strokes: []ink.Stroke{committed}})
}

// eraseAlong removes every stroke the gesture path intersected, wholesale
// and exactly once, and records the removal for undo.
func (s *Session) eraseAlong(path []ink.Point) {
	hits := s.store.StrokesAlongPath(path, s.Tolerance())
	if len(hits) == 0 {
		return
	}
	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = h.ID
	}
	removed := s.store.RemoveStrokes(ids)
	if len(removed) == 0 {
		return
	}
	s.history.Push(&history.Action{Kind: history.KindRemove, Strokes: removed})
}

// Erase removes the strokes along an externally supplied path, outside of
// a pointer gesture.
func (s *Session) Erase(path []ink.Point) int {
	before := s.store.Len()
	s.eraseAlong(path)
	return before - s.store.Len()
}

// Undo replays the inverse of the most recent action. Reports whether
// anything changed.
func (s *Session) Undo() bool {
	a := s.history.Undo()
	if a == nil {
		return false
	}
	switch a.Kind {
	case history.KindAdd:
		s.store.RemoveStrokes(strokeIDs(a.Strokes))
	case history.KindRemove, history.KindClear:
		s.restore(a.Strokes)
	}
	return true
}

// Redo replays the most recently undone action. Reports whether anything
// changed.
func (s *Session) Redo() bool {
	a := s.history.Redo()
	if a == nil {
		return false
	}
	switch a.Kind {
	case history.KindAdd:
		s.restore(a.Strokes)
	case history.KindRemove, history.KindClear:
		s.store.RemoveStrokes(strokeIDs(a.Strokes))
	}
	return true
}

// ClearBoard removes every stroke and records the wipe as one undoable
// action.
func (s *Session) ClearBoard() int {
	removed := s.store.Clear()
	if len(removed) == 0 {
		return 0
	}
	s.history.Push(&history.Action{Kind: history.KindClear, Strokes: removed})
	return len(removed)
}

func (s *Session) restore(strokes []ink.Stroke) {
	if err := s.store.Restore(strokes); err != nil {
		ink.Logger().Error("history replay failed", "error", err)
	}
}

// Tolerance is the hit-test tolerance in normalized units: half of the
// perceived stroke width scaled against the shorter surface dimension,
// with a floor so thin strokes stay pickable.
func (s *Session) Tolerance() float64 {
	tol := minPickTolerance
	if s.surface != nil {
		w, h := s.surface.Size()
		min := w
		if h < min {
			min = h
		}
		if min > 0 {
			if t := s.tools.StrokeStyle().BaseWidth / 2 / float64(min); t > tol {
				tol = t
			}
		}
	}
	return tol
}

// Save encodes the document and delivers it to the document store. On
// delivery failure, or with no store attached, the payload goes to the
// offline queue; a missing queue means the save is dropped with a log
// entry. The thumbnail generator receives the current surface bitmap.
// Encoding errors are the only hard failures.
func (s *Session) Save(ctx context.Context) error {
	data, err := s.store.Encode()
	if err != nil {
		return err
	}
	s.deliver(ctx, data)
	return nil
}

// SaveAsync is Save with delivery moved off the input path. The encoded
// snapshot is taken synchronously, so later edits never leak into the
// payload.
func (s *Session) SaveAsync(ctx context.Context) error {
	data, err := s.store.Encode()
	if err != nil {
		return err
	}
	go s.deliver(ctx, data)
	return nil
}

func (s *Session) deliver(ctx context.Context, data []byte) {
	switch {
	case s.docs != nil:
		if err := s.docs.SaveDocument(ctx, s.id, data); err != nil {
			ink.Logger().Warn("document store rejected save", "document", s.id, "error", err)
			if s.queue != nil {
				s.queue.Enqueue(s.id, data)
			}
		}
	case s.queue != nil:
		s.queue.Enqueue(s.id, data)
	default:
		ink.Logger().Warn("no save collaborator attached, dropping save", "document", s.id)
	}
	if s.thumbs != nil {
		if im, ok := s.surface.(Imager); ok {
			if err := s.thumbs.Generate(ctx, s.id, im.Image()); err != nil {
				ink.Logger().Warn("thumbnail generation failed", "document", s.id, "error", err)
			}
		}
	}
}

func (s *Session) paintDraftDot(p ink.Point) {
	if s.surface == nil {
		return
	}
	style := s.tools.StrokeStyle()
	s.surface.FillDisc(p.X, p.Y, p.Pressure*style.BaseWidth/2, style.Color, style.Opacity)
}

func (s *Session) paintDraftSegment(a, b ink.Point) {
	if s.surface == nil {
		return
	}
	style := s.tools.StrokeStyle()
	s.surface.StrokeSegment(a.X, a.Y, b.X, b.Y, b.Pressure*style.BaseWidth, style.Color, style.Opacity)
}

func strokeIDs(strokes []ink.Stroke) []string {
	ids := make([]string, len(strokes))
	for i, s := range strokes {
		ids[i] = s.ID
	}
	return ids
}
