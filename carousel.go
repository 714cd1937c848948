package carousel

import (
	"reflect"
	"time"
)

// Direction is the index step of a slide advance. Only -1, 0 and +1 are
// meaningful; 0 is the result of a failed swipe and never moves the carousel.
type Direction int

const (
	DirectionBackward Direction = -1 // previous slide
	DirectionNone     Direction = 0  // stay in place
	DirectionForward  Direction = 1  // next slide
)

// Trigger identifies what caused a slide advance.
type Trigger uint8

const (
	TriggerManual Trigger = iota // arrow buttons or Next/Prev calls
	TriggerSwipe                 // classified swipe gesture
	TriggerAuto                  // autoplay tick
	TriggerGoTo                  // programmatic jump to an index
)

// String returns the trigger name used in debug output.
func (t Trigger) String() string {
	switch t {
	case TriggerManual:
		return "manual"
	case TriggerSwipe:
		return "swipe"
	case TriggerAuto:
		return "auto"
	case TriggerGoTo:
		return "goto"
	default:
		return "unknown"
	}
}

// TransitionAction is the animated role a slide plays in the current
// transition. The host maps each value onto an animation of its choosing.
type TransitionAction uint8

const (
	ActionNone          TransitionAction = iota // not animating
	ActionSlideOutLeft                          // outgoing, leaving to the left
	ActionSlideOutRight                         // outgoing, leaving to the right
	ActionSlideInLeft                           // incoming, entering from the left
	ActionSlideInRight                          // incoming, entering from the right
	ActionFadeOut                               // outgoing, fading
	ActionFadeIn                                // incoming, fading
)

var actionNames = [...]string{
	ActionNone:          "",
	ActionSlideOutLeft:  "slideOutLeft",
	ActionSlideOutRight: "slideOutRight",
	ActionSlideInLeft:   "slideInLeft",
	ActionSlideInRight:  "slideInRight",
	ActionFadeOut:       "fadeOut",
	ActionFadeIn:        "fadeIn",
}

// String returns the action's conventional class name ("" for ActionNone).
func (a TransitionAction) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return ""
}

// Incoming reports whether the action belongs to the slide becoming current.
func (a TransitionAction) Incoming() bool {
	return a == ActionSlideInLeft || a == ActionSlideInRight || a == ActionFadeIn
}

// Image describes one configured slide image. Empty style fields fall back
// to the slideshow-wide defaults in Config.
type Image struct {
	URL                string `yaml:"url"`
	Href               string `yaml:"href,omitempty"`
	Caption            string `yaml:"caption,omitempty"`
	Title              string `yaml:"title,omitempty"`
	BackgroundSize     string `yaml:"backgroundSize,omitempty"`
	BackgroundPosition string `yaml:"backgroundPosition,omitempty"`
	BackgroundRepeat   string `yaml:"backgroundRepeat,omitempty"`

	// ClickAction runs when the slide is clicked. It takes precedence over Href.
	ClickAction func() `yaml:"-"`
}

// URLImage is shorthand for an Image that only carries a URL.
func URLImage(url string) Image {
	return Image{URL: url}
}

// Equal reports whether two image descriptors are the same configuration.
// Click actions compare by function identity.
func (img Image) Equal(other Image) bool {
	if img.URL != other.URL || img.Href != other.Href ||
		img.Caption != other.Caption || img.Title != other.Title ||
		img.BackgroundSize != other.BackgroundSize ||
		img.BackgroundPosition != other.BackgroundPosition ||
		img.BackgroundRepeat != other.BackgroundRepeat {
		return false
	}
	return funcID(img.ClickAction) == funcID(other.ClickAction)
}

func funcID(fn func()) uintptr {
	if fn == nil {
		return 0
	}
	return reflect.ValueOf(fn).Pointer()
}

// Slide is one entry of the carousel. Slides are owned by a Deck; callers
// receive copies.
type Slide struct {
	Image     Image
	Action    TransitionAction
	LeftSide  bool
	RightSide bool
	Selected  bool
	Loaded    bool

	// Failed is set when the lazy load for this slide errored. Failed slides
	// stay unloaded and are not retried.
	Failed bool

	// Width and Height are the decoded natural image size, 0 until known.
	Width, Height int

	// Size and Position are the current background-size and
	// background-position values. A pan or zoom rewrites them in pixels.
	Size     string
	Position string
}

// PointerPhase is the kind of a raw pointer event.
type PointerPhase uint8

const (
	PointerDown   PointerPhase = iota // contact started
	PointerMove                       // contact moved
	PointerUp                         // contact released normally
	PointerCancel                     // contact cancelled by the platform
	PointerLeave                      // contact left the surface
)

// PointerEvent is one raw event from the host surface.
type PointerEvent struct {
	Phase     PointerPhase
	ContactID int
	X, Y      float64
	Time      time.Time

	// OnSlideSurface reports whether the event target is the slide image
	// surface (as opposed to arrows, dots or captions).
	OnSlideSurface bool
}

// Sample returns the event as a pointer sample.
func (e PointerEvent) Sample() PointerSample {
	return PointerSample{ID: e.ContactID, X: e.X, Y: e.Y, Time: e.Time}
}

// PointerSample is the latest known state of one live contact.
type PointerSample struct {
	ID   int
	X, Y float64
	Time time.Time
}
