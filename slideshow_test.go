package carousel

import (
	"bytes"
	"context"
	"errors"
	"image"
	"slices"
	"strings"
	"testing"
	"time"
)

type fakeSurface struct {
	w, h     float64
	imgW     float64
	imgH     float64
	applied  []StyleDirective
	received []string
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{w: 400, h: 300, imgW: 800, imgH: 400}
}

func (f *fakeSurface) ContainerSize() (w, h float64) { return f.w, f.h }

func (f *fakeSurface) ApplyVisualTransform(_ int, d StyleDirective) {
	f.applied = append(f.applied, d)
}

func (f *fakeSurface) ImageSize(int) (w, h float64, ok bool) {
	return f.imgW, f.imgH, f.imgW > 0
}

func (f *fakeSurface) ReceiveImage(_ int, url string, _ image.Image) {
	f.received = append(f.received, url)
}

func testConfig(names ...string) Config {
	cfg := DefaultConfig()
	cfg.Images = urls(names...)
	return cfg
}

// eventLog records every event type in order.
type eventLog struct {
	types []EventType
}

func (l *eventLog) EmitEvent(ev Event) { l.types = append(l.types, ev.Type) }

func pointer(phase PointerPhase, x, y float64, after time.Duration) PointerEvent {
	return PointerEvent{Phase: phase, ContactID: 0, X: x, Y: y, Time: t0.Add(after), OnSlideSurface: true}
}

func swipe(s *Slideshow, fromX, toX float64) {
	s.HandlePointer(pointer(PointerDown, fromX, 150, 0))
	s.HandlePointer(pointer(PointerMove, (fromX+toX)/2, 150, 100*time.Millisecond))
	s.HandlePointer(pointer(PointerUp, toX, 150, 200*time.Millisecond))
}

func TestSlideshowNonLazyBuild(t *testing.T) {
	s := New(testConfig("a", "b", "c", "d"))
	defer s.Teardown()

	if s.Len() != 4 || s.Index() != 0 {
		t.Fatalf("Len=%d Index=%d", s.Len(), s.Index())
	}
	for i, sl := range s.Slides() {
		if !sl.Loaded {
			t.Errorf("slide %d not loaded", i)
		}
	}
	d := s.SlideStyle(0)
	if !d.Loaded || d.BackgroundImage != "url(a)" || d.BackgroundSize != "cover" || d.BackgroundPosition != "center center" {
		t.Errorf("style = %+v", d)
	}
}

func TestSlideshowNavigationEvents(t *testing.T) {
	s := New(testConfig("a", "b", "c"))
	defer s.Teardown()
	log := &eventLog{}
	s.SetEventSink(log)

	var indexes []int
	s.OnIndexChanged(func(i int) { indexes = append(indexes, i) })

	s.Next()
	s.Prev()
	s.Prev()
	s.GoTo(1)

	want := []EventType{
		EventSlideRight, EventIndexChanged,
		EventSlideLeft, EventIndexChanged,
		EventSlideLeft, EventIndexChanged,
		EventSlideRight, EventIndexChanged,
	}
	if !slices.Equal(log.types, want) {
		t.Errorf("events = %v, want %v", log.types, want)
	}
	if !slices.Equal(indexes, []int{1, 0, 2, 1}) {
		t.Errorf("indexes = %v", indexes)
	}
}

func TestSlideshowNoOpNavigationIsSilent(t *testing.T) {
	s := New(testConfig("only"))
	defer s.Teardown()
	log := &eventLog{}
	s.SetEventSink(log)

	if s.Next() || s.GoTo(0) || s.Slide(DirectionNone) {
		t.Error("no-op navigation should report false")
	}
	if len(log.types) != 0 {
		t.Errorf("no-op navigation emitted %v", log.types)
	}
}

func TestSlideshowSwipe(t *testing.T) {
	surf := newFakeSurface()
	s := New(testConfig("a", "b", "c"), WithSurface(surf))
	defer s.Teardown()
	log := &eventLog{}
	s.SetEventSink(log)

	// Finger travels left: the next slide comes in.
	swipe(s, 300, 100)
	if s.Index() != 1 {
		t.Fatalf("Index after leftward swipe = %d, want 1", s.Index())
	}
	if !slices.Equal(log.types, []EventType{EventSwipeRight, EventIndexChanged}) {
		t.Errorf("events = %v", log.types)
	}

	log.types = nil
	swipe(s, 100, 300)
	if s.Index() != 0 {
		t.Fatalf("Index after rightward swipe = %d, want 0", s.Index())
	}
	if !slices.Equal(log.types, []EventType{EventSwipeLeft, EventIndexChanged}) {
		t.Errorf("events = %v", log.types)
	}
}

func TestSlideshowSwipeDisabled(t *testing.T) {
	cfg := testConfig("a", "b")
	cfg.DisableSwiping = true
	s := New(cfg, WithSurface(newFakeSurface()))
	defer s.Teardown()

	swipe(s, 300, 100)
	if s.Index() != 0 {
		t.Errorf("Index = %d, want 0 with swiping disabled", s.Index())
	}
}

func TestSlideshowClick(t *testing.T) {
	clicked := 0
	cfg := DefaultConfig()
	cfg.Images = []Image{{URL: "a", Href: "https://example.com", ClickAction: func() { clicked++ }}, {URL: "b"}}
	s := New(cfg, WithSurface(newFakeSurface()))
	defer s.Teardown()

	var gotHref string
	s.OnClick(func(sl Slide, i int) { gotHref = sl.Image.Href })

	s.HandlePointer(pointer(PointerDown, 200, 150, 0))
	s.HandlePointer(pointer(PointerUp, 203, 152, 90*time.Millisecond))

	if clicked != 1 {
		t.Errorf("click action ran %d times, want 1", clicked)
	}
	if gotHref != "https://example.com" {
		t.Errorf("OnClick href = %q", gotHref)
	}
	if s.Index() != 0 {
		t.Error("a click should not navigate")
	}
}

func TestSlideshowIgnoresPointerOffSurface(t *testing.T) {
	s := New(testConfig("a", "b"), WithSurface(newFakeSurface()))
	defer s.Teardown()

	ev := pointer(PointerDown, 300, 150, 0)
	ev.OnSlideSurface = false
	s.HandlePointer(ev)
	if s.GestureState() != GestureIdle {
		t.Error("contacts starting off the slide surface should be ignored")
	}
}

func TestSlideshowIgnoresPointerWhenDetached(t *testing.T) {
	s := New(testConfig("a", "b"))
	defer s.Teardown()

	swipe(s, 300, 100)
	if s.Index() != 0 {
		t.Error("pointer input should be ignored without a surface")
	}
}

func TestSlideshowCancelledInteraction(t *testing.T) {
	s := New(testConfig("a", "b"), WithSurface(newFakeSurface()))
	defer s.Teardown()
	clicks := 0
	s.OnClick(func(Slide, int) { clicks++ })

	s.HandlePointer(pointer(PointerDown, 200, 150, 0))
	s.HandlePointer(pointer(PointerLeave, 200, 150, 50*time.Millisecond))
	if clicks != 0 || s.Index() != 0 {
		t.Error("a cancelled interaction should neither click nor swipe")
	}
}

func TestSlideshowPan(t *testing.T) {
	cfg := testConfig("a", "b")
	cfg.EnablePan = true
	surf := newFakeSurface()
	s := New(cfg, WithSurface(surf))
	defer s.Teardown()

	// Drag right by 60: the cover image (centered at -100) follows.
	s.HandlePointer(pointer(PointerDown, 200, 150, 0))
	s.HandlePointer(pointer(PointerMove, 260, 150, 50*time.Millisecond))
	s.HandlePointer(pointer(PointerUp, 260, 150, 100*time.Millisecond))

	if len(surf.applied) != 1 {
		t.Fatalf("applied %d transforms, want 1", len(surf.applied))
	}
	d := surf.applied[0]
	if d.BackgroundSize != "600px auto" || d.BackgroundPosition != "-40px 0px" {
		t.Errorf("directive = %+v", d)
	}
	sl, _ := s.deck.Slide(0)
	if sl.Width != 800 || sl.Height != 400 {
		t.Errorf("natural size = %dx%d, want 800x400", sl.Width, sl.Height)
	}
	// The image still had slack to the right, so the drag was a pan, not a swipe.
	if s.Index() != 0 {
		t.Errorf("Index = %d, want 0", s.Index())
	}
}

func TestSlideshowPanExhaustedSwipes(t *testing.T) {
	cfg := testConfig("a", "b", "c")
	cfg.EnablePan = true
	cfg.BackgroundPosition = "right center"
	s := New(cfg, WithSurface(newFakeSurface()))
	defer s.Teardown()

	// Image already rests on its right bound: a leftward drag swipes.
	swipe(s, 300, 100)
	if s.Index() != 1 {
		t.Errorf("Index = %d, want 1", s.Index())
	}
}

func TestSlideshowLazyLoad(t *testing.T) {
	res := &stubResolver{}
	surf := newFakeSurface()
	cfg := testConfig("a", "b", "c", "d")
	cfg.LazyLoad = true
	s := New(cfg, WithResolver(res), WithSurface(surf))
	defer s.Teardown()

	var loaded []string
	s.OnImageLazyLoaded(func(sl Slide) { loaded = append(loaded, sl.Image.URL) })

	s.loader.Wait()
	s.Update(0)
	if got := res.called(); len(got) != 2 {
		t.Fatalf("resolved %v after build, want 2 loads", got)
	}
	if len(loaded) != 2 || len(surf.received) != 2 {
		t.Errorf("lazy loaded events = %d, received images = %d", len(loaded), len(surf.received))
	}

	s.GoTo(2)
	s.loader.Wait()
	s.Update(0)
	got := res.called()
	slices.Sort(got)
	if !slices.Equal(got, []string{"a", "b", "c", "d"}) {
		t.Errorf("resolved %v, want a..d each once", got)
	}
	for i, sl := range s.Slides() {
		if !sl.Loaded {
			t.Errorf("slide %d not loaded", i)
		}
	}
}

func TestSlideshowLazyLoadFailure(t *testing.T) {
	boom := errors.New("boom")
	res := &stubResolver{fail: map[string]error{"a": boom}}
	cfg := testConfig("a", "b")
	cfg.LazyLoad = true
	s := New(cfg, WithResolver(res))
	defer s.Teardown()

	var failed []int
	var gotErr error
	s.OnImageLoadFailed(func(i int, err error) {
		failed = append(failed, i)
		gotErr = err
	})
	s.loader.Wait()
	s.Update(0)

	if !slices.Equal(failed, []int{0}) || !errors.Is(gotErr, boom) {
		t.Errorf("failed = %v, err = %v", failed, gotErr)
	}
	sl, _ := s.deck.Slide(0)
	if !sl.Failed || sl.Loaded {
		t.Errorf("slide 0 = %+v", sl)
	}
	if s.SlideStyle(0).Loaded {
		t.Error("a failed slide has no style")
	}
}

func TestSlideshowAutoplay(t *testing.T) {
	cfg := testConfig("a", "b", "c")
	cfg.AutoPlay = true
	cfg.AutoPlayInterval = 1000
	s := New(cfg)
	defer s.Teardown()

	var slides []int
	s.OnSlideRight(func(i int) { slides = append(slides, i) })

	if !s.AutoplayActive() {
		t.Fatal("autoplay should start on the first check")
	}
	s.Update(999 * time.Millisecond)
	if s.Index() != 0 {
		t.Fatal("advanced before the interval elapsed")
	}
	s.Update(time.Millisecond)
	if s.Index() != 1 || !slices.Equal(slides, []int{1}) {
		t.Errorf("Index = %d, slides = %v", s.Index(), slides)
	}
	s.Update(2 * time.Second)
	if s.Index() != 0 {
		t.Errorf("Index after two more ticks = %d, want 0 (wrapped)", s.Index())
	}
}

func TestSlideshowManualSlideStopsAutoplay(t *testing.T) {
	cfg := testConfig("a", "b", "c")
	cfg.AutoPlay = true
	cfg.AutoPlayInterval = 1000
	s := New(cfg, WithSurface(newFakeSurface()))
	defer s.Teardown()

	swipe(s, 300, 100)
	if s.AutoplayActive() {
		t.Fatal("a manual swipe should stop autoplay")
	}
	s.Update(5 * time.Second)
	if s.Index() != 1 {
		t.Errorf("Index = %d, want 1 while autoplay is stopped", s.Index())
	}

	s.Check()
	if !s.AutoplayActive() {
		t.Fatal("the next check should restart autoplay")
	}
	s.Update(time.Second)
	if s.Index() != 2 {
		t.Errorf("Index = %d, want 2 after restart", s.Index())
	}
}

func TestSlideshowManualSlideKeepsAutoplay(t *testing.T) {
	cfg := testConfig("a", "b", "c")
	cfg.AutoPlay = true
	cfg.StopAutoPlayOnManualSlide = false
	s := New(cfg)
	defer s.Teardown()

	s.Next()
	if !s.AutoplayActive() {
		t.Error("autoplay should keep running")
	}
}

func TestSlideshowAutoplayFade(t *testing.T) {
	cfg := testConfig("a", "b")
	cfg.AutoPlay = true
	cfg.AutoPlayInterval = 100
	cfg.AutoPlayTransition = TransitionFade
	s := New(cfg)
	defer s.Teardown()

	s.Update(100 * time.Millisecond)
	sl := s.Slides()
	if sl[0].Action != ActionFadeOut || sl[1].Action != ActionFadeIn {
		t.Errorf("actions = %s, %s", sl[0].Action, sl[1].Action)
	}

	s.Next()
	if s.Slides()[0].Action != ActionSlideInLeft {
		t.Error("manual slides never fade")
	}
}

func TestSlideshowAutoplayWaitsForLazyLoad(t *testing.T) {
	release := make(chan struct{})
	res := ImageResolverFunc(func(ctx context.Context, img Image) (Resolved, error) {
		<-release
		return Resolved{Width: 1, Height: 1}, nil
	})
	cfg := testConfig("a", "b")
	cfg.AutoPlay = true
	cfg.AutoPlayInterval = 100
	cfg.LazyLoad = true
	cfg.AutoPlayWaitForLazyLoad = true
	s := New(cfg, WithResolver(res))
	defer s.Teardown()

	s.Update(500 * time.Millisecond)
	if s.Index() != 0 {
		t.Errorf("Index = %d, autoplay should wait for the current slide", s.Index())
	}

	close(release)
	s.loader.Wait()
	s.Update(100 * time.Millisecond)
	if s.Index() != 1 {
		t.Errorf("Index = %d, want 1 once the slide loaded", s.Index())
	}
}

func TestSlideshowAutoplaySkipsFailedSlide(t *testing.T) {
	res := &stubResolver{fail: map[string]error{"a": errors.New("offline")}}
	cfg := testConfig("a", "b")
	cfg.AutoPlay = true
	cfg.AutoPlayInterval = 100
	cfg.LazyLoad = true
	cfg.AutoPlayWaitForLazyLoad = true
	s := New(cfg, WithResolver(res))
	defer s.Teardown()

	s.loader.Wait()
	s.Update(100 * time.Millisecond)
	if !s.Slides()[0].Failed {
		t.Fatal("slide 0 should have failed")
	}
	if s.Index() != 1 {
		t.Errorf("Index = %d, a failed slide should not stall autoplay", s.Index())
	}
}

func TestSlideshowEmptyListRebuilds(t *testing.T) {
	cfg := testConfig("a", "b", "c")
	cfg.AutoPlay = true
	cfg.AutoPlayInterval = 100
	s := New(cfg)
	defer s.Teardown()

	s.Next()
	s.SetImages(nil)
	if s.Len() != 0 || len(s.Slides()) != 0 {
		t.Fatalf("Len = %d, slides = %d, want an empty deck", s.Len(), len(s.Slides()))
	}
	if s.Next() {
		t.Error("Next on an empty list should be a no-op")
	}

	ticks := 0
	s.OnSlideRight(func(int) { ticks++ })
	s.Update(time.Second)
	if ticks != 0 {
		t.Errorf("autoplay advanced %d times over an empty list", ticks)
	}
}

func TestSlideshowHideOnNoSlides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HideOnNoSlides = true
	s := New(cfg)
	defer s.Teardown()

	if !s.Hidden() {
		t.Fatal("expected hidden without images")
	}
	s.SetImages(urls("a"))
	if s.Hidden() || s.Len() != 1 {
		t.Errorf("Hidden=%v Len=%d after SetImages", s.Hidden(), s.Len())
	}
}

func TestSlideshowConfigChangeRebuilds(t *testing.T) {
	s := New(testConfig("a", "b", "c"))
	defer s.Teardown()
	s.GoTo(2)

	same := testConfig("a", "b", "c")
	s.OnConfigChanged(same)
	if s.Index() != 2 {
		t.Errorf("an equal image list should keep the index, got %d", s.Index())
	}

	changed := testConfig("x", "y")
	changed.NoLoop = true
	s.OnConfigChanged(changed)
	if s.Index() != 0 || s.Len() != 2 {
		t.Errorf("Index=%d Len=%d after change", s.Index(), s.Len())
	}
	if s.Prev() {
		t.Error("noLoop should block wrapping backward")
	}
}

func TestSlideshowCallbackRemove(t *testing.T) {
	s := New(testConfig("a", "b"))
	defer s.Teardown()

	calls := 0
	h := s.OnSlideRight(func(int) { calls++ })
	other := 0
	s.OnSlideRight(func(int) { other++ })

	s.Next()
	h.Remove()
	s.Next()

	if calls != 1 || other != 2 {
		t.Errorf("calls=%d other=%d, want 1 and 2", calls, other)
	}
}

func TestSlideshowCallbackRemoveWhileFiring(t *testing.T) {
	s := New(testConfig("a", "b"))
	defer s.Teardown()

	var h CallbackHandle
	once := 0
	h = s.OnSlideRight(func(int) {
		once++
		h.Remove()
	})
	after := 0
	s.OnSlideRight(func(int) { after++ })

	s.Next()
	s.Next()
	if once != 1 || after != 2 {
		t.Errorf("once=%d after=%d, want 1 and 2", once, after)
	}
}

func TestSlideshowTeardown(t *testing.T) {
	cfg := testConfig("a", "b")
	cfg.AutoPlay = true
	s := New(cfg, WithSurface(newFakeSurface()))
	log := &eventLog{}
	s.SetEventSink(log)

	s.Teardown()
	if s.AutoplayActive() {
		t.Error("teardown should stop autoplay")
	}
	if s.Next() || s.GoTo(1) {
		t.Error("navigation after teardown should be ignored")
	}
	swipe(s, 300, 100)
	s.Update(time.Minute)
	if len(log.types) != 0 {
		t.Errorf("events after teardown: %v", log.types)
	}
	s.Teardown() // second call is a no-op
}

func TestSlideshowDebugLog(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig("a", "b")
	cfg.Debug = true
	s := New(cfg, WithLogOutput(&buf))
	defer s.Teardown()

	s.Next()
	out := buf.String()
	if !strings.Contains(out, "[carousel] setSlides") || !strings.Contains(out, "[carousel] slideRight -> 1") {
		t.Errorf("debug output = %q", out)
	}

	buf.Reset()
	s.SetDebugMode(false)
	s.Next()
	if buf.Len() != 0 {
		t.Errorf("debug output after disabling = %q", buf.String())
	}
}
