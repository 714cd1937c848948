package carousel

import "slices"

// EventType identifies a kind of slideshow notification.
type EventType uint8

const (
	EventSlideLeft       EventType = iota // backward advance not caused by a swipe
	EventSlideRight                       // forward advance not caused by a swipe
	EventSwipeLeft                        // backward advance caused by a swipe
	EventSwipeRight                       // forward advance caused by a swipe
	EventIndexChanged                     // current index changed for any reason
	EventImageLazyLoaded                  // a lazy slide finished loading
	EventImageLoadFailed                  // a lazy slide failed to load
	EventClick                            // the current slide was clicked
	eventTypeCount
)

var eventNames = [eventTypeCount]string{
	EventSlideLeft:       "slideLeft",
	EventSlideRight:      "slideRight",
	EventSwipeLeft:       "swipeLeft",
	EventSwipeRight:      "swipeRight",
	EventIndexChanged:    "indexChanged",
	EventImageLazyLoaded: "imageLazyLoaded",
	EventImageLoadFailed: "imageLoadFailed",
	EventClick:           "click",
}

// String returns the event name.
func (t EventType) String() string {
	if t < eventTypeCount {
		return eventNames[t]
	}
	return "unknown"
}

// Event is delivered to listeners synchronously, before the handler that
// caused it returns.
type Event struct {
	Type  EventType
	Index int
	// Slide is set for EventImageLazyLoaded, EventImageLoadFailed and
	// EventClick.
	Slide Slide
	// Err is set for EventImageLoadFailed.
	Err error
}

// EventSink is an optional bridge that receives every event after the
// registered callbacks, e.g. to forward them into an ECS world.
type EventSink interface {
	EmitEvent(event Event)
}

type eventHandler struct {
	id uint32
	fn func(Event)
}

type handlerRegistry struct {
	handlers [eventTypeCount][]eventHandler
	nextID   uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil || h.event >= eventTypeCount {
		return
	}
	s := h.reg.handlers[h.event]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = eventHandler{}
			h.reg.handlers[h.event] = s[:len(s)-1]
			return
		}
	}
}

func (r *handlerRegistry) add(t EventType, fn func(Event)) CallbackHandle {
	r.nextID++
	id := r.nextID
	r.handlers[t] = append(r.handlers[t], eventHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: r, event: t}
}

func (r *handlerRegistry) fire(ev Event) {
	// Handlers may remove themselves while the event fires.
	for _, h := range slices.Clone(r.handlers[ev.Type]) {
		h.fn(ev)
	}
}

func (r *handlerRegistry) reset() {
	for i := range r.handlers {
		r.handlers[i] = nil
	}
}

// --- Slideshow-level registration ---

// On registers fn for every event of type t.
func (s *Slideshow) On(t EventType, fn func(Event)) CallbackHandle {
	return s.handlers.add(t, fn)
}

// OnSlideLeft registers a callback for backward non-swipe advances. It
// receives the new index.
func (s *Slideshow) OnSlideLeft(fn func(index int)) CallbackHandle {
	return s.handlers.add(EventSlideLeft, func(ev Event) { fn(ev.Index) })
}

// OnSlideRight registers a callback for forward non-swipe advances.
func (s *Slideshow) OnSlideRight(fn func(index int)) CallbackHandle {
	return s.handlers.add(EventSlideRight, func(ev Event) { fn(ev.Index) })
}

// OnSwipeLeft registers a callback for backward advances caused by a swipe.
func (s *Slideshow) OnSwipeLeft(fn func(index int)) CallbackHandle {
	return s.handlers.add(EventSwipeLeft, func(ev Event) { fn(ev.Index) })
}

// OnSwipeRight registers a callback for forward advances caused by a swipe.
func (s *Slideshow) OnSwipeRight(fn func(index int)) CallbackHandle {
	return s.handlers.add(EventSwipeRight, func(ev Event) { fn(ev.Index) })
}

// OnIndexChanged registers a callback for any change of the current index.
func (s *Slideshow) OnIndexChanged(fn func(index int)) CallbackHandle {
	return s.handlers.add(EventIndexChanged, func(ev Event) { fn(ev.Index) })
}

// OnImageLazyLoaded registers a callback for completed lazy loads.
func (s *Slideshow) OnImageLazyLoaded(fn func(slide Slide)) CallbackHandle {
	return s.handlers.add(EventImageLazyLoaded, func(ev Event) { fn(ev.Slide) })
}

// OnImageLoadFailed registers a callback for failed lazy loads.
func (s *Slideshow) OnImageLoadFailed(fn func(index int, err error)) CallbackHandle {
	return s.handlers.add(EventImageLoadFailed, func(ev Event) { fn(ev.Index, ev.Err) })
}

// OnClick registers a callback for clicks on the current slide.
func (s *Slideshow) OnClick(fn func(slide Slide, index int)) CallbackHandle {
	return s.handlers.add(EventClick, func(ev Event) { fn(ev.Slide, ev.Index) })
}

// SetEventSink sets the optional event bridge.
func (s *Slideshow) SetEventSink(sink EventSink) {
	s.sink = sink
}

func (s *Slideshow) emit(ev Event) {
	s.handlers.fire(ev)
	if s.sink != nil {
		s.sink.EmitEvent(ev)
	}
}
