package input

import (
	"time"

	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/touch"
)

// mouseContact is the synthetic contact id for the single mouse pointer.
const mouseContact = -1

// MouseAdapter turns shiny mouse events into contact samples. It tracks
// the pressed state itself because mouse.DirNone carries both drags and
// hovers; the normalizer only needs the phase.
type MouseAdapter struct {
	pressed bool
}

// Sample converts a mouse event. The second return is false for events
// that produce no sample, such as presses of non-left buttons or wheel
// steps.
func (a *MouseAdapter) Sample(e mouse.Event, at time.Time) (Sample, bool) {
	s := Sample{
		X:       float64(e.X),
		Y:       float64(e.Y),
		Class:   ClassMouse,
		Contact: mouseContact,
		Time:    at.UnixMilli(),
	}
	switch e.Direction {
	case mouse.DirPress:
		if e.Button != mouse.ButtonLeft {
			return Sample{}, false
		}
		a.pressed = true
		s.Phase = PhaseBegin
	case mouse.DirRelease:
		if e.Button != mouse.ButtonLeft {
			return Sample{}, false
		}
		a.pressed = false
		s.Phase = PhaseEnd
	case mouse.DirNone:
		s.Phase = PhaseMove
	default:
		return Sample{}, false
	}
	return s, true
}

// Cancel synthesizes a cancel sample for an in-flight press, e.g. when
// focus is lost or the user hits escape mid drag.
func (a *MouseAdapter) Cancel(at time.Time) (Sample, bool) {
	if !a.pressed {
		return Sample{}, false
	}
	a.pressed = false
	return Sample{
		Class:   ClassMouse,
		Contact: mouseContact,
		Phase:   PhaseCancel,
		Time:    at.UnixMilli(),
	}, true
}

// TouchSample converts a touch event into a contact sample. Touch screens
// reachable through this path report no pressure, so the sample carries
// zero and the normalizer substitutes the constant force.
func TouchSample(e touch.Event, at time.Time) (Sample, bool) {
	s := Sample{
		X:       float64(e.X),
		Y:       float64(e.Y),
		Class:   ClassTouch,
		Contact: int64(e.Sequence),
		Time:    at.UnixMilli(),
	}
	switch e.Type {
	case touch.TypeBegin:
		s.Phase = PhaseBegin
	case touch.TypeMove:
		s.Phase = PhaseMove
	case touch.TypeEnd:
		s.Phase = PhaseEnd
	default:
		return Sample{}, false
	}
	return s, true
}
