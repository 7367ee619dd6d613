package input

import (
	"image"
	"math"
	"testing"
	"time"

	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/touch"

	"github.com/doni-wahyudi/stillmove-planner-sub005/internal/ink"
)

type recorder struct {
	starts  []ink.Point
	moves   []ink.Point
	ends    []ink.Point
	hovers  []ink.Point
	cancels int
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		StrokeStart:  func(p ink.Point) { r.starts = append(r.starts, p) },
		StrokeMove:   func(p ink.Point) { r.moves = append(r.moves, p) },
		StrokeEnd:    func(p ink.Point) { r.ends = append(r.ends, p) },
		StrokeCancel: func() { r.cancels++ },
		Hover:        func(p ink.Point) { r.hovers = append(r.hovers, p) },
	}
}

func newAttached(t *testing.T, rec *recorder, opts ...Option) *Normalizer {
	t.Helper()
	opts = append([]Option{
		WithBounds(image.Rect(0, 0, 100, 100)),
		WithCallbacks(rec.callbacks()),
	}, opts...)
	n := New(opts...)
	n.Attach()
	return n
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestNormalizeMapsAndClamps(t *testing.T) {
	n := New(WithBounds(image.Rect(10, 10, 110, 210)))
	for _, tt := range []struct {
		name       string
		x, y       float64
		wantX, wantY float64
	}{
		{"origin", 10, 10, 0, 0},
		{"interior", 60, 110, 0.5, 0.5},
		{"far corner", 110, 210, 1, 1},
		{"left of surface", -40, 110, 0, 0.5},
		{"below surface", 60, 999, 0.5, 1},
	} {
		t.Run(tt.name, func(t *testing.T) {
			p := n.Normalize(Sample{X: tt.x, Y: tt.y, Class: ClassPen, Pressure: 0.4})
			if !near(p.X, tt.wantX) || !near(p.Y, tt.wantY) {
				t.Fatalf("Normalize(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, p.X, p.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestNormalizePressurePolicy(t *testing.T) {
	n := New(WithBounds(image.Rect(0, 0, 100, 100)))
	for _, tt := range []struct {
		name     string
		class    DeviceClass
		pressure float64
		want     float64
	}{
		{"mouse zero gets constant force", ClassMouse, 0, 0.5},
		{"touch zero gets constant force", ClassTouch, 0, 0.5},
		{"pen zero preserved", ClassPen, 0, 0},
		{"pen value preserved", ClassPen, 0.83, 0.83},
		{"mouse nonzero preserved", ClassMouse, 0.4, 0.4},
	} {
		t.Run(tt.name, func(t *testing.T) {
			p := n.Normalize(Sample{X: 50, Y: 50, Class: tt.class, Pressure: tt.pressure})
			if !near(p.Pressure, tt.want) {
				t.Fatalf("pressure = %v, want %v", p.Pressure, tt.want)
			}
		})
	}
}

func TestStrokeLifecycle(t *testing.T) {
	rec := &recorder{}
	n := newAttached(t, rec)

	n.HandleSample(Sample{X: 10, Y: 10, Class: ClassMouse, Phase: PhaseBegin, Time: 1})
	n.HandleSample(Sample{X: 20, Y: 10, Class: ClassMouse, Phase: PhaseMove, Time: 2})
	n.HandleSample(Sample{X: 30, Y: 10, Class: ClassMouse, Phase: PhaseEnd, Time: 3})

	if len(rec.starts) != 1 || len(rec.moves) != 1 || len(rec.ends) != 1 {
		t.Fatalf("starts/moves/ends = %d/%d/%d, want 1/1/1", len(rec.starts), len(rec.moves), len(rec.ends))
	}
	if n.Drawing() {
		t.Fatal("still drawing after end")
	}
	// First point unsmoothed.
	if !near(rec.starts[0].X, 0.1) {
		t.Fatalf("start x = %v, want 0.1", rec.starts[0].X)
	}
	// Second point blends 30% previous with 70% current.
	if want := 0.1*0.3 + 0.2*0.7; !near(rec.moves[0].X, want) {
		t.Fatalf("move x = %v, want %v", rec.moves[0].X, want)
	}
}

func TestSmoothingPreservesPressureAndTimestamp(t *testing.T) {
	rec := &recorder{}
	n := newAttached(t, rec)

	n.HandleSample(Sample{X: 0, Y: 0, Class: ClassPen, Pressure: 0.2, Phase: PhaseBegin, Time: 100})
	n.HandleSample(Sample{X: 100, Y: 100, Class: ClassPen, Pressure: 0.9, Phase: PhaseMove, Time: 150})

	got := rec.moves[0]
	if !near(got.Pressure, 0.9) || got.Timestamp != 150 {
		t.Fatalf("smoothed point carried pressure %v at %d, want 0.9 at 150", got.Pressure, got.Timestamp)
	}
	if !near(got.X, 0.7) || !near(got.Y, 0.7) {
		t.Fatalf("smoothed point = (%v, %v), want (0.7, 0.7)", got.X, got.Y)
	}
}

func TestPalmTouchDuringPenStroke(t *testing.T) {
	rec := &recorder{}
	n := newAttached(t, rec)

	n.HandleSample(Sample{X: 10, Y: 10, Class: ClassPen, Pressure: 0.5, Contact: 1, Phase: PhaseBegin, Time: 0})
	n.HandleSample(Sample{X: 80, Y: 80, Class: ClassTouch, Contact: 2, Phase: PhaseBegin, Time: 10})
	n.HandleSample(Sample{X: 85, Y: 85, Class: ClassTouch, Contact: 2, Phase: PhaseMove, Time: 20})
	n.HandleSample(Sample{X: 20, Y: 20, Class: ClassPen, Pressure: 0.5, Contact: 1, Phase: PhaseMove, Time: 30})
	n.HandleSample(Sample{X: 30, Y: 30, Class: ClassPen, Pressure: 0.5, Contact: 1, Phase: PhaseEnd, Time: 40})

	if len(rec.starts) != 1 || len(rec.moves) != 1 || len(rec.ends) != 1 {
		t.Fatalf("palm contact leaked into the stroke: starts/moves/ends = %d/%d/%d",
			len(rec.starts), len(rec.moves), len(rec.ends))
	}
	if len(rec.hovers) != 0 {
		t.Fatalf("palm contact produced %d hover events", len(rec.hovers))
	}
}

func TestPalmWindowAfterPenLift(t *testing.T) {
	rec := &recorder{}
	n := newAttached(t, rec)

	n.HandleSample(Sample{X: 10, Y: 10, Class: ClassPen, Pressure: 0.5, Contact: 1, Phase: PhaseBegin, Time: 1000})
	n.HandleSample(Sample{X: 20, Y: 20, Class: ClassPen, Pressure: 0.5, Contact: 1, Phase: PhaseEnd, Time: 1200})

	// 50ms after the last stylus sample: still inside the window.
	n.HandleSample(Sample{X: 50, Y: 50, Class: ClassTouch, Contact: 2, Phase: PhaseBegin, Time: 1250})
	if len(rec.starts) != 1 {
		t.Fatalf("touch inside palm window started a stroke")
	}

	// Past the window the same contact is a legitimate finger stroke.
	n.HandleSample(Sample{X: 50, Y: 50, Class: ClassTouch, Contact: 3, Phase: PhaseBegin, Time: 1301})
	if len(rec.starts) != 2 {
		t.Fatalf("touch after palm window was rejected")
	}
}

func TestPalmWindowResetsPerStylusSample(t *testing.T) {
	rec := &recorder{}
	n := newAttached(t, rec)

	// A long pen stroke; the window tracks the newest sample, not the first.
	n.HandleSample(Sample{X: 10, Y: 10, Class: ClassPen, Pressure: 0.5, Contact: 1, Phase: PhaseBegin, Time: 0})
	n.HandleSample(Sample{X: 20, Y: 20, Class: ClassPen, Pressure: 0.5, Contact: 1, Phase: PhaseMove, Time: 500})
	n.HandleSample(Sample{X: 30, Y: 30, Class: ClassPen, Pressure: 0.5, Contact: 1, Phase: PhaseEnd, Time: 500})

	n.HandleSample(Sample{X: 50, Y: 50, Class: ClassTouch, Contact: 2, Phase: PhaseBegin, Time: 590})
	if len(rec.starts) != 1 {
		t.Fatal("palm window did not follow the most recent stylus sample")
	}
}

func TestSecondPrimaryRejected(t *testing.T) {
	rec := &recorder{}
	n := newAttached(t, rec)

	n.HandleSample(Sample{X: 10, Y: 10, Class: ClassTouch, Contact: 1, Phase: PhaseBegin, Time: 0})
	n.HandleSample(Sample{X: 80, Y: 80, Class: ClassTouch, Contact: 2, Phase: PhaseBegin, Time: 5})
	n.HandleSample(Sample{X: 82, Y: 82, Class: ClassTouch, Contact: 2, Phase: PhaseMove, Time: 10})
	n.HandleSample(Sample{X: 84, Y: 84, Class: ClassTouch, Contact: 2, Phase: PhaseEnd, Time: 15})
	n.HandleSample(Sample{X: 20, Y: 20, Class: ClassTouch, Contact: 1, Phase: PhaseEnd, Time: 20})

	if len(rec.starts) != 1 || len(rec.ends) != 1 {
		t.Fatalf("second contact hijacked the stroke: %d starts, %d ends", len(rec.starts), len(rec.ends))
	}
	if !near(rec.ends[0].X, 0.2*0.7+0.1*0.3) {
		t.Fatalf("stroke ended at x=%v, from the wrong contact", rec.ends[0].X)
	}
}

func TestHoverOnlyWhenIdle(t *testing.T) {
	rec := &recorder{}
	n := newAttached(t, rec)

	n.HandleSample(Sample{X: 40, Y: 40, Class: ClassMouse, Phase: PhaseMove, Time: 0})
	if len(rec.hovers) != 1 || len(rec.moves) != 0 {
		t.Fatalf("idle move: %d hovers, %d moves", len(rec.hovers), len(rec.moves))
	}

	n.HandleSample(Sample{X: 40, Y: 40, Class: ClassMouse, Phase: PhaseBegin, Time: 1})
	n.HandleSample(Sample{X: 50, Y: 50, Class: ClassMouse, Phase: PhaseMove, Time: 2})
	if len(rec.hovers) != 1 || len(rec.moves) != 1 {
		t.Fatalf("drawing move: %d hovers, %d moves", len(rec.hovers), len(rec.moves))
	}
}

func TestCancelDiscardsWithoutEnd(t *testing.T) {
	rec := &recorder{}
	n := newAttached(t, rec)

	n.HandleSample(Sample{X: 10, Y: 10, Class: ClassTouch, Contact: 7, Phase: PhaseBegin, Time: 0})
	n.HandleSample(Sample{X: 20, Y: 20, Class: ClassTouch, Contact: 7, Phase: PhaseCancel, Time: 5})

	if rec.cancels != 1 || len(rec.ends) != 0 {
		t.Fatalf("cancel produced %d cancels and %d ends, want 1 and 0", rec.cancels, len(rec.ends))
	}
	if n.Drawing() {
		t.Fatal("still drawing after cancel")
	}
}

func TestDetachForceEndsActiveStroke(t *testing.T) {
	rec := &recorder{}
	n := newAttached(t, rec)

	n.HandleSample(Sample{X: 10, Y: 10, Class: ClassMouse, Phase: PhaseBegin, Time: 0})
	n.HandleSample(Sample{X: 20, Y: 20, Class: ClassMouse, Phase: PhaseMove, Time: 1})
	n.Detach()

	if len(rec.ends) != 1 {
		t.Fatalf("detach produced %d ends, want 1", len(rec.ends))
	}
	if got := rec.ends[0]; !near(got.X, rec.moves[0].X) || !near(got.Y, rec.moves[0].Y) {
		t.Fatalf("force-end point = (%v, %v), want the last emitted point", got.X, got.Y)
	}

	// Detached: samples are dropped; a second detach is a no-op.
	n.HandleSample(Sample{X: 30, Y: 30, Class: ClassMouse, Phase: PhaseBegin, Time: 2})
	n.Detach()
	if len(rec.starts) != 1 || len(rec.ends) != 1 {
		t.Fatal("samples processed while detached")
	}
}

func TestSmoothingDisabled(t *testing.T) {
	rec := &recorder{}
	n := newAttached(t, rec, WithSmoothing(false))

	n.HandleSample(Sample{X: 0, Y: 0, Class: ClassMouse, Phase: PhaseBegin, Time: 0})
	n.HandleSample(Sample{X: 100, Y: 100, Class: ClassMouse, Phase: PhaseMove, Time: 1})

	if got := rec.moves[0]; !near(got.X, 1) || !near(got.Y, 1) {
		t.Fatalf("move = (%v, %v), want the raw (1, 1)", got.X, got.Y)
	}
}

func TestAttachIdempotent(t *testing.T) {
	rec := &recorder{}
	n := newAttached(t, rec)
	n.Attach()
	n.HandleSample(Sample{X: 10, Y: 10, Class: ClassMouse, Phase: PhaseBegin, Time: 0})
	if len(rec.starts) != 1 {
		t.Fatalf("starts = %d, want 1", len(rec.starts))
	}
}

func TestMouseAdapter(t *testing.T) {
	at := time.UnixMilli(5000)
	a := &MouseAdapter{}

	s, ok := a.Sample(mouse.Event{X: 12, Y: 34, Button: mouse.ButtonLeft, Direction: mouse.DirPress}, at)
	if !ok || s.Phase != PhaseBegin || s.Class != ClassMouse || s.X != 12 || s.Y != 34 || s.Time != 5000 {
		t.Fatalf("press sample = %+v, ok=%v", s, ok)
	}

	s, ok = a.Sample(mouse.Event{X: 13, Y: 35, Direction: mouse.DirNone}, at)
	if !ok || s.Phase != PhaseMove {
		t.Fatalf("drag sample = %+v, ok=%v", s, ok)
	}

	if _, ok := a.Sample(mouse.Event{Button: mouse.ButtonRight, Direction: mouse.DirPress}, at); ok {
		t.Fatal("right press produced a sample")
	}

	s, ok = a.Sample(mouse.Event{X: 14, Y: 36, Button: mouse.ButtonLeft, Direction: mouse.DirRelease}, at)
	if !ok || s.Phase != PhaseEnd {
		t.Fatalf("release sample = %+v, ok=%v", s, ok)
	}
}

func TestMouseAdapterCancel(t *testing.T) {
	at := time.UnixMilli(6000)
	a := &MouseAdapter{}

	if _, ok := a.Cancel(at); ok {
		t.Fatal("cancel without a press produced a sample")
	}
	if _, ok := a.Sample(mouse.Event{Button: mouse.ButtonLeft, Direction: mouse.DirPress}, at); !ok {
		t.Fatal("press produced no sample")
	}
	s, ok := a.Cancel(at)
	if !ok || s.Phase != PhaseCancel {
		t.Fatalf("cancel sample = %+v, ok=%v", s, ok)
	}
	if _, ok := a.Cancel(at); ok {
		t.Fatal("second cancel produced a sample")
	}
}

func TestTouchSample(t *testing.T) {
	at := time.UnixMilli(7000)
	s, ok := TouchSample(touch.Event{X: 5, Y: 6, Sequence: 3, Type: touch.TypeMove}, at)
	if !ok || s.Phase != PhaseMove || s.Class != ClassTouch || s.Contact != 3 || s.Time != 7000 {
		t.Fatalf("touch sample = %+v, ok=%v", s, ok)
	}
	if s.Pressure != 0 {
		t.Fatalf("touch pressure = %v, want 0 before normalization", s.Pressure)
	}
}
