package carousel

import (
	"math"
	"time"
)

// Gesture classification thresholds.
const (
	clickMaxTravel   = 15.0 // px on each axis
	swipeMinTravel   = 30.0 // px horizontally
	swipeMaxDrift    = 100.0
	swipeMaxDuration = time.Second
)

// Gesture is the outcome of a completed single-pointer interaction.
type Gesture uint8

const (
	GestureNone       Gesture = iota // nothing to do
	GestureClick                     // tap or click on the slide
	GestureSwipeLeft                 // pointer travelled left
	GestureSwipeRight                // pointer travelled right
)

// String returns the gesture name used in debug output.
func (g Gesture) String() string {
	switch g {
	case GestureClick:
		return "click"
	case GestureSwipeLeft:
		return "swipeLeft"
	case GestureSwipeRight:
		return "swipeRight"
	default:
		return "none"
	}
}

// Direction returns the slide step a gesture requests. A leftward swipe
// brings in the next slide.
func (g Gesture) Direction() Direction {
	switch g {
	case GestureSwipeLeft:
		return DirectionForward
	case GestureSwipeRight:
		return DirectionBackward
	default:
		return DirectionNone
	}
}

// SwipeInput carries everything the classifier looks at.
type SwipeInput struct {
	Start, End PointerSample

	// Panning is set when the interaction moved or scaled the image.
	Panning bool

	PanEnabled      bool
	SwipingDisabled bool

	// Session and Transform describe the image at release time. They are
	// consulted only when PanEnabled is set.
	Session   GestureSession
	Transform BackgroundTransform
}

// Classify decides whether a finished interaction was a click, a swipe or
// nothing. Rules apply in order: a short non-panning touch is a click; a fast,
// mostly horizontal, long-enough travel is a swipe, unless swiping is disabled
// or the image can still pan in that direction; everything else is none.
func Classify(in SwipeInput) Gesture {
	duration := in.End.Time.Sub(in.Start.Time)
	dx := in.End.X - in.Start.X
	dy := in.End.Y - in.Start.Y

	if !in.Panning && math.Abs(dx) < clickMaxTravel && math.Abs(dy) < clickMaxTravel {
		return GestureClick
	}
	if duration < swipeMaxDuration &&
		math.Abs(dy) <= swipeMaxDrift &&
		math.Abs(dx) >= swipeMinTravel &&
		!in.SwipingDisabled &&
		panExhausted(in, dx) {
		if dx < 0 {
			return GestureSwipeLeft
		}
		return GestureSwipeRight
	}
	return GestureNone
}

// panExhausted reports whether the image cannot pan any further in the
// direction of dx. Always true when panning is disabled.
func panExhausted(in SwipeInput, dx float64) bool {
	if !in.PanEnabled {
		return true
	}
	return !in.Session.HasPanSlack(dx, in.Transform)
}
