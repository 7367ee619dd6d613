// Package history implements a capacity-bounded two-stack undo/redo engine.
// It knows nothing about stroke geometry: it stores ordered, typed action
// records and leaves replay to the caller.
package history

import (
	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/ink"
)

// DefaultCapacity is the number of actions retained when no capacity is
// configured.
const DefaultCapacity = 50

// Kind identifies what a recorded action did to the stroke sequence.
type Kind int

const (
	KindAdd Kind = iota
	KindRemove
	KindClear
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindAdd:
		return "add"
	case KindRemove:
		return "remove"
	case KindClear:
		return "clear"
	default:
		return "unknown"
	}
}

// Action is a snapshot of the strokes affected by one committed operation,
// sufficient for the caller to replay the inverse operation.
type Action struct {
	Kind    Kind
	Strokes []ink.Stroke
}

// State describes undo/redo availability after a mutation. It is pushed to
// the listener so UI affordances stay reactive without polling.
type State struct {
	CanUndo   bool
	CanRedo   bool
	UndoCount int
	RedoCount int
}

// Option configures a History during creation.
type Option func(*History)

// WithCapacity bounds the undo stack to the given depth. Values below one
// are raised to one.
func WithCapacity(n int) Option {
	return func(h *History) {
		if n < 1 {
			n = 1
		}
		h.max = n
	}
}

// WithListener registers a callback invoked after every call that changed
// either stack.
func WithListener(fn func(State)) Option {
	return func(h *History) { h.listener = fn }
}

// History is a bounded undo/redo sequencer. It is not safe for concurrent
// use; the engine is single-threaded by design.
type History struct {
	undo     []*Action
	redo     []*Action
	max      int
	listener func(State)
}

// New creates a History with the provided options.
func New(opts ...Option) *History {
	h := &History{max: DefaultCapacity}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Push records a new action. Any previously undone future is invalidated:
// the redo stack is cleared before the action is appended. When the undo
// stack exceeds capacity the oldest entry is evicted. A nil action is
// silently ignored.
func (h *History) Push(a *Action) {
	if a == nil {
		return
	}
	h.redo = h.redo[:0]
	h.undo = append(h.undo, a)
	if len(h.undo) > h.max {
		overflow := len(h.undo) - h.max
		h.undo = append(h.undo[:0], h.undo[overflow:]...)
	}
	h.notify()
}

// Undo pops the most recent action onto the redo stack and returns it.
// Returns nil when there is nothing to undo.
func (h *History) Undo() *Action {
	if len(h.undo) == 0 {
		return nil
	}
	a := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, a)
	h.notify()
	return a
}

// Redo is the inverse of Undo. Returns nil when there is nothing to redo.
func (h *History) Redo() *Action {
	if len(h.redo) == 0 {
		return nil
	}
	a := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, a)
	h.notify()
	return a
}

// CanUndo reports whether Undo would return an action.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo would return an action.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// PeekUndo returns the action Undo would return without moving it.
func (h *History) PeekUndo() *Action {
	if len(h.undo) == 0 {
		return nil
	}
	return h.undo[len(h.undo)-1]
}

// PeekRedo returns the action Redo would return without moving it.
func (h *History) PeekRedo() *Action {
	if len(h.redo) == 0 {
		return nil
	}
	return h.redo[len(h.redo)-1]
}

// UndoCount returns the current undo stack depth.
func (h *History) UndoCount() int { return len(h.undo) }

// RedoCount returns the current redo stack depth.
func (h *History) RedoCount() int { return len(h.redo) }

// Clear empties both stacks.
func (h *History) Clear() {
	changed := len(h.undo) > 0 || len(h.redo) > 0
	h.undo = h.undo[:0]
	h.redo = h.redo[:0]
	if changed {
		h.notify()
	}
}

func (h *History) notify() {
	if h.listener == nil {
		return
	}
	h.listener(State{
		CanUndo:   h.CanUndo(),
		CanRedo:   h.CanRedo(),
		UndoCount: h.UndoCount(),
		RedoCount: h.RedoCount(),
	})
}
