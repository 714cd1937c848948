package carousel

import (
	"io"
	"os"
	"time"
)

// Slideshow ties the carousel engine together: it owns the Deck, runs the
// GestureTracker against the attached Surface, schedules autoplay and lazy
// loads, and notifies listeners. Every method must be called from the host's
// event loop; the slideshow never mutates state from another goroutine.
//
// The host drives it through four entry points: OnConfigChanged (or Check)
// on every change-detection pass, HandlePointer for raw input, Update once
// per frame, and Teardown when the widget goes away.
type Slideshow struct {
	cfg Config

	deck     *Deck
	loader   *LazyLoader
	tracker  *GestureTracker
	autoplay AutoplayScheduler

	handlers handlerRegistry
	sink     EventSink

	surface     Surface
	resolver    ImageResolver
	activeSlide int

	hidden bool
	torn   bool
	logOut io.Writer
}

// Option configures a Slideshow at construction.
type Option func(*Slideshow)

// WithResolver sets the resolver used for lazy loads.
func WithResolver(r ImageResolver) Option {
	return func(s *Slideshow) { s.resolver = r }
}

// WithSurface attaches the slideshow to a surface immediately.
func WithSurface(surface Surface) Option {
	return func(s *Slideshow) { s.surface = surface }
}

// WithLogOutput redirects debug logging.
func WithLogOutput(w io.Writer) Option {
	return func(s *Slideshow) { s.logOut = w }
}

// New creates a slideshow and runs the first check cycle, so slides for
// cfg.Images exist on return.
func New(cfg Config, opts ...Option) *Slideshow {
	s := &Slideshow{cfg: cfg, logOut: os.Stderr}
	for _, opt := range opts {
		opt(s)
	}
	s.deck = NewDeck(nil)
	s.loader = NewLazyLoader(s.deck, s.resolver, cfg.MaxConcurrentLoads)
	s.deck.loader = s.loader
	s.tracker = NewGestureTracker(s)
	s.applyOptions()
	s.Check()
	return s
}

func (s *Slideshow) applyOptions() {
	s.tracker.SetOptions(s.cfg.EnablePan, s.cfg.EnableZoom)
	s.deck.SetNoLoop(s.cfg.NoLoop)
}

// Config returns the active configuration.
func (s *Slideshow) Config() Config {
	return s.cfg
}

// OnConfigChanged replaces the configuration and runs a check cycle.
func (s *Slideshow) OnConfigChanged(cfg Config) {
	if s.torn {
		return
	}
	s.cfg = cfg
	s.applyOptions()
	s.Check()
}

// SetImages replaces the configured image list and runs a check cycle.
func (s *Slideshow) SetImages(images []Image) {
	if s.torn {
		return
	}
	s.cfg.Images = images
	s.Check()
}

// Check is one change-detection pass: it rebuilds the slides when the image
// list changed, updates the hidden state and (re)starts or stops autoplay.
func (s *Slideshow) Check() {
	if s.torn {
		return
	}
	if s.deck.Build(s.cfg.Images, s.cfg.LazyLoad) {
		s.debugf("setSlides: built %d slides (lazy=%v, generation %d)",
			s.deck.Len(), s.cfg.LazyLoad, s.deck.Generation())
		s.tracker.Reset()
	}
	if len(s.cfg.Images) > 0 {
		s.hidden = false
	} else if s.cfg.HideOnNoSlides {
		s.hidden = true
	}
	s.handleAutoPlay(false)
}

// handleAutoPlay stops autoplay when asked to or when it is disabled, and
// otherwise makes sure the timer runs with the configured interval.
func (s *Slideshow) handleAutoPlay(stop bool) {
	if stop || !s.cfg.AutoPlay {
		if s.autoplay.Active() {
			s.debugf("stop autoPlay")
			s.autoplay.Stop()
		}
		return
	}
	if !s.autoplay.Active() || s.autoplay.Interval() != s.cfg.Interval() {
		s.debugf("start autoPlay every %v", s.cfg.Interval())
		s.autoplay.Start(s.cfg.Interval(), s.autoTick)
	}
}

func (s *Slideshow) autoTick() {
	if s.cfg.AutoPlayWaitForLazyLoad {
		cur, ok := s.deck.Slide(s.deck.Index())
		if !ok || (!cur.Loaded && !cur.Failed) {
			s.debugf("autoPlay tick skipped: slide %d not loaded", s.deck.Index())
			return
		}
	}
	s.debugf("autoPlay slide event")
	s.slide(DirectionForward, TriggerAuto)
}

// Update drains finished lazy loads and advances the autoplay timer. Call it
// once per frame with the frame's elapsed time.
func (s *Slideshow) Update(dt time.Duration) {
	if s.torn {
		return
	}
	s.loader.Poll(s.applyLoad)
	s.autoplay.Update(dt)
}

func (s *Slideshow) applyLoad(r loadResult) {
	if r.err != nil {
		if !s.deck.failLoad(r.key) {
			s.debugf("discard stale load failure for slide %d (%s)", r.key.index, r.key.url)
			return
		}
		slide, _ := s.deck.Slide(r.key.index)
		s.debugf("image load failed for slide %d (%s): %v", r.key.index, r.key.url, r.err)
		s.emit(Event{Type: EventImageLoadFailed, Index: r.key.index, Slide: slide, Err: r.err})
		return
	}
	if !s.deck.completeLoad(r.key, r.res.Width, r.res.Height) {
		s.debugf("discard stale load for slide %d (%s)", r.key.index, r.key.url)
		return
	}
	if recv, ok := s.surface.(ImageReceiver); ok && r.res.Pixels != nil {
		recv.ReceiveImage(r.key.index, r.key.url, r.res.Pixels)
	}
	slide, _ := s.deck.Slide(r.key.index)
	s.debugf("image lazy loaded: slide %d (%s)", r.key.index, r.key.url)
	s.emit(Event{Type: EventImageLazyLoaded, Index: r.key.index, Slide: slide})
}

// Teardown stops autoplay, discards outstanding loads, detaches the surface
// and drops every listener. The slideshow is inert afterwards.
func (s *Slideshow) Teardown() {
	if s.torn {
		return
	}
	s.debugf("teardown")
	s.autoplay.Stop()
	s.loader.Close()
	s.Detach()
	s.handlers.reset()
	s.sink = nil
	s.torn = true
}

// Attach binds the slideshow to a surface. Pointer input is ignored while
// detached.
func (s *Slideshow) Attach(surface Surface) {
	s.surface = surface
}

// Detach unbinds the surface and abandons any interaction in progress.
func (s *Slideshow) Detach() {
	s.surface = nil
	s.tracker.Reset()
}

// --- Navigation ---

// Next moves to the following slide as a manual action.
func (s *Slideshow) Next() bool {
	return s.manual(DirectionForward, TriggerManual)
}

// Prev moves to the previous slide as a manual action.
func (s *Slideshow) Prev() bool {
	return s.manual(DirectionBackward, TriggerManual)
}

// Slide moves by dir as a manual action. DirectionNone does nothing.
func (s *Slideshow) Slide(dir Direction) bool {
	return s.manual(dir, TriggerManual)
}

// GoTo jumps to index as if sliding forward onto it.
func (s *Slideshow) GoTo(index int) bool {
	if s.torn {
		return false
	}
	s.debugf("goToSlide(%d)", index)
	s.stopOnManual()
	if !s.deck.GoTo(index) {
		return false
	}
	s.notifyTransition(DirectionForward, TriggerGoTo)
	return true
}

func (s *Slideshow) manual(dir Direction, trigger Trigger) bool {
	if s.torn || dir == DirectionNone {
		return false
	}
	s.debugf("onSlide(%d, %s)", dir, trigger)
	s.stopOnManual()
	return s.slide(dir, trigger)
}

// stopOnManual stops autoplay before a manual advance commits. The next check
// cycle starts it again.
func (s *Slideshow) stopOnManual() {
	if s.cfg.StopAutoPlayOnManualSlide {
		s.handleAutoPlay(true)
	}
}

func (s *Slideshow) slide(dir Direction, trigger Trigger) bool {
	fade := trigger == TriggerAuto && s.cfg.Fade()
	if !s.deck.Advance(dir, fade) {
		return false
	}
	s.notifyTransition(dir, trigger)
	return true
}

func (s *Slideshow) notifyTransition(dir Direction, trigger Trigger) {
	idx := s.deck.Index()
	var t EventType
	switch {
	case trigger == TriggerSwipe && dir == DirectionForward:
		t = EventSwipeRight
	case trigger == TriggerSwipe:
		t = EventSwipeLeft
	case dir == DirectionForward:
		t = EventSlideRight
	default:
		t = EventSlideLeft
	}
	s.debugf("%s -> %d", t, idx)
	s.emit(Event{Type: t, Index: idx})
	s.emit(Event{Type: EventIndexChanged, Index: idx})
}

// Click runs the current slide's click action, if any, and emits
// EventClick. Hosts navigate to Image.Href from the click listener.
func (s *Slideshow) Click() {
	if s.torn {
		return
	}
	idx := s.deck.Index()
	slide, ok := s.deck.Slide(idx)
	if !ok {
		return
	}
	s.debugf("click on slide %d", idx)
	s.emit(Event{Type: EventClick, Index: idx, Slide: slide})
	if slide.Image.ClickAction != nil {
		slide.Image.ClickAction()
	}
}

// --- Pointer input ---

// HandlePointer feeds one raw pointer event into the gesture tracker. Only
// contacts that start on the slide surface are tracked.
func (s *Slideshow) HandlePointer(ev PointerEvent) {
	if s.torn || s.surface == nil {
		return
	}
	p := ev.Sample()
	switch ev.Phase {
	case PointerDown:
		if !ev.OnSlideSurface || s.deck.Len() == 0 {
			return
		}
		if s.tracker.State() == GestureIdle {
			s.activeSlide = s.deck.Index()
		}
		s.tracker.ContactStart(p)
	case PointerMove:
		s.tracker.ContactMove(p)
	case PointerUp:
		s.tracker.ContactEnd(p)
	case PointerCancel, PointerLeave:
		s.tracker.ContactCancel(p)
	}
}

func (s *Slideshow) gestureGeometry() (cw, ch, iw, ih float64, size, position string) {
	if s.surface != nil {
		cw, ch = s.surface.ContainerSize()
	}
	slide, ok := s.deck.Slide(s.activeSlide)
	if !ok || !slide.Loaded {
		return cw, ch, 0, 0, "", ""
	}
	iw, ih = float64(slide.Width), float64(slide.Height)
	if iw <= 0 || ih <= 0 {
		if sizer, ok := s.surface.(ImageSizer); ok {
			if w, h, ok := sizer.ImageSize(s.activeSlide); ok {
				iw, ih = w, h
				s.deck.setNaturalSize(s.activeSlide, int(w), int(h))
			}
		}
	}
	size = firstNonEmpty(slide.Size, s.cfg.BackgroundSize)
	position = firstNonEmpty(slide.Position, s.cfg.BackgroundPosition)
	return cw, ch, iw, ih, size, position
}

func (s *Slideshow) applyGestureTransform(sess GestureSession, t BackgroundTransform) {
	s.deck.setStyle(s.activeSlide, sess.FormatSize(t.Size), FormatPosition(t.X, t.Y))
	if s.surface != nil {
		s.surface.ApplyVisualTransform(s.activeSlide, s.SlideStyle(s.activeSlide))
	}
}

func (s *Slideshow) endGesture(r gestureResult) {
	if r.Cancelled {
		s.debugf("gesture cancelled")
		return
	}
	// Only single-pointer interactions are classified.
	if r.MultiTouch {
		s.debugf("multi-touch gesture ended")
		return
	}
	g := Classify(SwipeInput{
		Start:           r.Start,
		End:             r.End,
		Panning:         r.Moved || r.MultiTouch,
		PanEnabled:      s.cfg.EnablePan,
		SwipingDisabled: s.cfg.DisableSwiping,
		Session:         r.Session,
		Transform:       r.Transform,
	})
	s.debugf("gesture classified as %s", g)
	switch g {
	case GestureClick:
		s.Click()
	case GestureSwipeLeft, GestureSwipeRight:
		s.manual(g.Direction(), TriggerSwipe)
	}
}

// --- Accessors ---

// Index returns the current slide index.
func (s *Slideshow) Index() int { return s.deck.Index() }

// Len returns the number of slides.
func (s *Slideshow) Len() int { return s.deck.Len() }

// Slides returns a copy of the slide set.
func (s *Slideshow) Slides() []Slide { return s.deck.Slides() }

// Source returns the configured image at i.
func (s *Slideshow) Source(i int) (Image, bool) { return s.deck.Source(i) }

// Hidden reports whether the slideshow hides itself for lack of slides.
func (s *Slideshow) Hidden() bool { return s.hidden }

// AutoplayActive reports whether the autoplay timer is armed.
func (s *Slideshow) AutoplayActive() bool { return s.autoplay.Active() }

// GestureState returns the contact state of the gesture tracker.
func (s *Slideshow) GestureState() GestureState { return s.tracker.State() }
