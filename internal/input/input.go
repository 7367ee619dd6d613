// Package input normalizes heterogeneous pointer input into one coherent
// contact stream: coordinates mapped into [0, 1] against the surface
// bounds, pressure defaulted for devices without a pressure channel, palm
// contacts rejected while a stylus is in use, and geometry lightly
// smoothed before it reaches the session.
package input

import (
	"fmt"
	"image"
	"time"

	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/ink"
)

// DeviceClass identifies what kind of device produced a sample.
type DeviceClass int

const (
	ClassMouse DeviceClass = iota
	ClassTouch
	ClassPen
)

// String returns a short name for the class.
func (c DeviceClass) String() string {
	switch c {
	case ClassMouse:
		return "mouse"
	case ClassTouch:
		return "touch"
	case ClassPen:
		return "pen"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// PressureCapable reports whether the class reports pressure natively.
// Classes without a pressure channel get a constant-force substitute when
// they report zero.
func (c DeviceClass) PressureCapable() bool { return c == ClassPen }

// Phase is the lifecycle stage of a contact sample.
type Phase int

const (
	PhaseBegin Phase = iota
	PhaseMove
	PhaseEnd
	PhaseCancel
)

// Sample is one raw device event in surface-local pixel coordinates.
type Sample struct {
	X, Y     float64
	Pressure float64
	Class    DeviceClass
	Contact  int64 // distinguishes simultaneous contacts
	Phase    Phase
	Time     int64 // milliseconds
}

// Callbacks receive the normalized stream. Only one stroke is ever in
// progress; StrokeMove fires only for the active contact while drawing,
// Hover fires instead when idle. StrokeCancel reports a stroke that ended
// without committing: the accumulated draft must be discarded.
type Callbacks struct {
	StrokeStart  func(ink.Point)
	StrokeMove   func(ink.Point)
	StrokeEnd    func(ink.Point)
	StrokeCancel func()
	Hover        func(ink.Point)
}

// DefaultPalmWindow is how long after an accepted stylus sample incoming
// touch contacts are still treated as palm contacts.
const DefaultPalmWindow = 100 * time.Millisecond

// Geometry smoothing blend: previous*0.3 + current*0.7.
const (
	smoothPrev = 0.3
	smoothCur  = 0.7
)

// Option configures a Normalizer during creation.
type Option func(*Normalizer)

// WithBounds sets the surface bounding box device coordinates are mapped
// through.
func WithBounds(r image.Rectangle) Option {
	return func(n *Normalizer) { n.bounds = r }
}

// WithPalmWindow overrides the palm-rejection window.
func WithPalmWindow(d time.Duration) Option {
	return func(n *Normalizer) {
		if d > 0 {
			n.palmWindowMs = d.Milliseconds()
		}
	}
}

// WithCallbacks registers the stream consumers.
func WithCallbacks(cb Callbacks) Option {
	return func(n *Normalizer) { n.cb = cb }
}

// WithSmoothing toggles geometry smoothing. Enabled by default.
func WithSmoothing(enabled bool) Option {
	return func(n *Normalizer) { n.smoothingOff = !enabled }
}

// Normalizer is the input state machine: Idle until a primary contact is
// accepted, Drawing until that contact releases, cancels or the
// normalizer detaches. It is single-threaded like the rest of the engine;
// each sample is fully processed before the next.
type Normalizer struct {
	cb           Callbacks
	bounds       image.Rectangle
	palmWindowMs int64
	smoothingOff bool

	attached     bool
	drawing      bool
	contact      int64
	contactClass DeviceClass

	stylusSeen   bool
	lastStylusMs int64

	havePrev bool
	prev     ink.Point
	last     ink.Point
}

// New creates a Normalizer. Without bounds every coordinate clamps into a
// corner, so callers should pass WithBounds or call SetBounds before
// attaching.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{palmWindowMs: DefaultPalmWindow.Milliseconds()}
	for _, o := range opts {
		o(n)
	}
	return n
}

// Attach enables sample processing. Idempotent.
func (n *Normalizer) Attach() { n.attached = true }

// Detach disables sample processing. A detach during an active stroke
// forcibly ends it through the normal end path, so no dangling Drawing
// state survives a teardown. Always succeeds, even if never attached.
func (n *Normalizer) Detach() {
	if n.drawing {
		p := n.last
		n.resetStroke()
		if n.cb.StrokeEnd != nil {
			n.cb.StrokeEnd(p)
		}
	}
	n.attached = false
}

// SetBounds updates the surface bounding box, e.g. after a window resize.
func (n *Normalizer) SetBounds(r image.Rectangle) { n.bounds = r }

// Drawing reports whether a stroke is currently in progress.
func (n *Normalizer) Drawing() bool { return n.drawing }

// Normalize maps a raw sample into the [0, 1] point domain. Out-of-bounds
// coordinates are clamped rather than rejected so the pipeline never
// stalls on a malformed sample. Devices without a pressure channel that
// report zero get the constant-force substitute 0.5; pressure-capable
// devices keep their reported value, including a legitimate zero.
func (n *Normalizer) Normalize(s Sample) ink.Point {
	var nx, ny float64
	if w, h := n.bounds.Dx(), n.bounds.Dy(); w > 0 && h > 0 {
		nx = (s.X - float64(n.bounds.Min.X)) / float64(w)
		ny = (s.Y - float64(n.bounds.Min.Y)) / float64(h)
	}
	pressure := s.Pressure
	if !s.Class.PressureCapable() && pressure == 0 {
		pressure = 0.5
	}
	return ink.NewPoint(nx, ny, pressure, s.Time)
}

// IsPalmTouch reports whether an incoming contact should be suppressed as
// an unintended palm: it is touch-class and either a stylus stroke is in
// progress, or the sample arrives within the palm window after the most
// recently accepted stylus sample. The window resets on every accepted
// stylus sample, not only at stroke start.
func (n *Normalizer) IsPalmTouch(s Sample) bool {
	if s.Class != ClassTouch {
		return false
	}
	if n.drawing && n.contactClass == ClassPen {
		return true
	}
	return n.stylusSeen && s.Time-n.lastStylusMs <= n.palmWindowMs
}

// SmoothPoint blends the point's geometry with the previous point,
// preserving its own pressure and timestamp. The first point of a stroke
// passes through unchanged.
func (n *Normalizer) SmoothPoint(p ink.Point) ink.Point {
	if n.smoothingOff || !n.havePrev {
		return p
	}
	p.X = n.prev.X*smoothPrev + p.X*smoothCur
	p.Y = n.prev.Y*smoothPrev + p.Y*smoothCur
	return p
}

// HandleSample runs one raw sample through the state machine. Samples are
// ignored entirely while detached.
func (n *Normalizer) HandleSample(s Sample) {
	if !n.attached {
		return
	}
	if s.Class == ClassPen {
		n.stylusSeen = true
		n.lastStylusMs = s.Time
	}
	switch s.Phase {
	case PhaseBegin:
		n.begin(s)
	case PhaseMove:
		n.move(s)
	case PhaseEnd:
		n.end(s)
	case PhaseCancel:
		n.cancel(s)
	}
}

func (n *Normalizer) begin(s Sample) {
	if n.IsPalmTouch(s) {
		ink.Logger().Debug("palm contact rejected", "contact", s.Contact)
		return
	}
	if n.drawing {
		// Only one contact may be primary; a second begin while drawing
		// never starts another stroke.
		ink.Logger().Debug("second primary rejected", "contact", s.Contact)
		return
	}
	p := n.Normalize(s)
	n.drawing = true
	n.contact = s.Contact
	n.contactClass = s.Class
	n.havePrev = true
	n.prev = p
	n.last = p
	if n.cb.StrokeStart != nil {
		n.cb.StrokeStart(p)
	}
}

func (n *Normalizer) move(s Sample) {
	if !n.drawing {
		if n.cb.Hover != nil {
			n.cb.Hover(n.Normalize(s))
		}
		return
	}
	if s.Contact != n.contact || s.Class != n.contactClass {
		return
	}
	p := n.SmoothPoint(n.Normalize(s))
	n.prev = p
	n.last = p
	if n.cb.StrokeMove != nil {
		n.cb.StrokeMove(p)
	}
}

func (n *Normalizer) end(s Sample) {
	if !n.drawing || s.Contact != n.contact || s.Class != n.contactClass {
		return
	}
	p := n.SmoothPoint(n.Normalize(s))
	n.resetStroke()
	if n.cb.StrokeEnd != nil {
		n.cb.StrokeEnd(p)
	}
}

func (n *Normalizer) cancel(s Sample) {
	if !n.drawing || s.Contact != n.contact || s.Class != n.contactClass {
		return
	}
	n.resetStroke()
	if n.cb.StrokeCancel != nil {
		n.cb.StrokeCancel()
	}
}

func (n *Normalizer) resetStroke() {
	n.drawing = false
	n.havePrev = false
}
