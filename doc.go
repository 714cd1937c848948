// Package carousel is a touch-enabled image slideshow for [Ebitengine].
//
// The engine is split from presentation. A [Slideshow] owns the slide deck,
// classifies pointer gestures into clicks and swipes, pans and pinch-zooms
// the current image, schedules autoplay and lazily loads images in the
// background. It never draws: hosts implement [Surface] and render each
// slide from its [StyleDirective]. [Viewer] is a ready-made ebiten.Game that
// does exactly that.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	cfg, err := carousel.LoadConfig("slides.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	carousel.Run(*cfg, carousel.RunConfig{
//		Title: "Slides", Width: 800, Height: 450,
//	})
//
// For full control, create the slideshow yourself, attach a Surface and drive
// it from your game loop:
//
//	show := carousel.New(cfg, carousel.WithSurface(surface),
//		carousel.WithResolver(carousel.FileResolver{Root: "assets"}))
//	defer show.Teardown()
//
//	// every frame
//	show.Check()
//	show.Update(dt)
//
// # Configuration
//
// [Config] mirrors the YAML file read by [LoadConfig]. Images may be given
// as bare URLs or as mappings with a caption, link and per-slide background
// placement:
//
//	autoPlay: true
//	autoPlayInterval: 4000
//	lazyLoad: true
//	images:
//	  - photos/harbor.jpg
//	  - url: photos/bridge.jpg
//	    caption: Bridge at dusk
//	    backgroundSize: contain
//
// Unset fields keep the values from [DefaultConfig].
//
// # Input
//
// Feed raw pointer events to [Slideshow.HandlePointer], or let [Input]
// translate Ebitengine mouse and touch state. One contact pans the image
// when panning is enabled; two contacts pinch-zoom it. On release the
// interaction is classified: a short tap is a click, a fast mostly
// horizontal drag is a swipe. With panning enabled a swipe only advances
// once the image rests against its pan bound in the swipe direction.
//
// # Events
//
// Register callbacks with [Slideshow.OnSlideRight], [Slideshow.OnSwipeLeft],
// [Slideshow.OnIndexChanged], [Slideshow.OnImageLazyLoaded] and friends.
// Each returns a [CallbackHandle] whose Remove method unregisters it. An
// [EventSink] receives every event as well; the ecs sub-package forwards
// them into a Donburi world.
//
// # Lazy loading
//
// With lazyLoad set, only the current slide and its neighbour are resolved.
// Loads run on background goroutines, bounded by maxConcurrentLoads, and are
// applied to the deck during [Slideshow.Update]. Results for a replaced image
// list are discarded.
//
// # Scripted runs
//
// [LoadTestScript] parses a JSON list of steps (press, move, release, click,
// swipe, pinch, wait, next, prev, goto) that [Input] replays one frame at a
// time:
//
//	{"steps": [
//		{"action": "swipe", "fromX": 600, "fromY": 200, "toX": 200, "toY": 210, "frames": 6},
//		{"action": "wait", "frames": 30},
//		{"action": "goto", "index": 0}
//	]}
//
// [Ebitengine]: https://ebitengine.org
package carousel
