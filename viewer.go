package carousel

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunConfig holds window and runtime settings for the standalone viewer.
type RunConfig struct {
	Title         string
	Width, Height int
	// ShowOverlay draws the FPS/state overlay.
	ShowOverlay bool
	// Resolver loads slide images; nil uses a FileResolver rooted at the
	// working directory.
	Resolver ImageResolver
	// Script is an optional JSON test script run through the input adapter.
	Script []byte
	// ExitWhenScriptDone ends the run after the script's last step.
	ExitWhenScriptDone bool
	// OnLink is called with the href of a clicked slide.
	OnLink func(href string)
	// LogOutput receives debug logging; nil means stderr.
	LogOutput io.Writer
}

// Viewer is an ebiten.Game presenting one Slideshow full-window. It is the
// Surface the slideshow renders into.
type Viewer struct {
	show     *Slideshow
	input    *Input
	runner   *TestRunner
	textures *textureCache
	anim     *TransitionAnimator
	captions captionImages
	overlay  *Overlay

	rc            RunConfig
	width, height int
	dotColor      color.Color
	captionColor  color.Color
}

// NewViewer creates a viewer for cfg.
func NewViewer(cfg Config, rc RunConfig) (*Viewer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rc.Width <= 0 || rc.Height <= 0 {
		rc.Width, rc.Height = 800, 450
	}
	if rc.Resolver == nil {
		rc.Resolver = FileResolver{}
	}
	v := &Viewer{
		rc:           rc,
		width:        rc.Width,
		height:       rc.Height,
		textures:     newTextureCache(rc.Resolver),
		anim:         NewTransitionAnimator(float32(cfg.TransitionDuration)),
		captions:     make(captionImages),
		dotColor:     cfg.DotRGBA(),
		captionColor: cfg.CaptionRGBA(),
	}
	if rc.Script != nil {
		runner, err := LoadTestScript(rc.Script)
		if err != nil {
			return nil, err
		}
		v.runner = runner
	}

	opts := []Option{WithResolver(rc.Resolver), WithSurface(v)}
	if rc.LogOutput != nil {
		opts = append(opts, WithLogOutput(rc.LogOutput))
	}
	v.show = New(cfg, opts...)
	v.show.OnIndexChanged(func(int) {
		v.anim.Start(v.show.Slides())
	})
	v.show.OnClick(func(slide Slide, _ int) {
		if slide.Image.Href != "" && v.rc.OnLink != nil {
			v.rc.OnLink(slide.Image.Href)
		}
	})

	v.input = NewInput(v.show, v.bounds())
	v.input.ArrowWidth = float64(v.width) / 10
	if v.runner != nil {
		v.input.SetTestRunner(v.runner)
	}
	if rc.ShowOverlay {
		v.overlay = NewOverlay(v.show)
	}
	return v, nil
}

// Slideshow returns the slideshow driven by the viewer.
func (v *Viewer) Slideshow() *Slideshow {
	return v.show
}

// Input returns the input adapter, for injecting synthetic pointer events.
func (v *Viewer) Input() *Input {
	return v.input
}

func (v *Viewer) bounds() Rect {
	return Rect{Width: float64(v.width), Height: float64(v.height)}
}

// ContainerSize implements Surface.
func (v *Viewer) ContainerSize() (w, h float64) {
	return float64(v.width), float64(v.height)
}

// ApplyVisualTransform implements Surface. Draw reads each slide's style
// every frame, so nothing is cached here.
func (v *Viewer) ApplyVisualTransform(int, StyleDirective) {}

// ImageSize implements ImageSizer from the decoded texture.
func (v *Viewer) ImageSize(index int) (w, h float64, ok bool) {
	src, ok := v.show.Source(index)
	if !ok {
		return 0, 0, false
	}
	iw, ih, ok := v.textures.size(src.URL)
	return float64(iw), float64(ih), ok
}

// ReceiveImage implements ImageReceiver.
func (v *Viewer) ReceiveImage(_ int, url string, pixels image.Image) {
	v.textures.store(url, pixels)
}

// Update implements ebiten.Game.
func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		v.show.Next()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		v.show.Prev()
	}
	v.input.Update()

	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	dt := time.Second / time.Duration(tps)
	v.show.Check()
	v.show.Update(dt)

	for i, s := range v.show.Slides() {
		if !s.Loaded {
			continue
		}
		if src, ok := v.show.Source(i); ok {
			v.textures.request(src)
		}
	}
	v.textures.upload()
	v.reportTextureFailures()
	v.anim.Update(float32(dt.Seconds()))
	if v.overlay != nil {
		v.overlay.Update(dt.Seconds())
	}

	if v.rc.ExitWhenScriptDone && v.runner != nil && v.runner.Done() {
		return ebiten.Termination
	}
	return nil
}

// reportTextureFailures logs decode failures of non-lazy slides, which
// otherwise never draw.
func (v *Viewer) reportTextureFailures() {
	for _, url := range v.textures.takeFailures() {
		v.show.debugf("texture %s failed: %v", url, v.textures.err(url))
	}
}

// Draw implements ebiten.Game. Outgoing slides are drawn under the current
// one.
func (v *Viewer) Draw(screen *ebiten.Image) {
	if v.show.Hidden() {
		return
	}
	area := v.bounds()
	cur := v.show.Index()
	for i, s := range v.show.Slides() {
		if s.Selected || i == cur {
			continue
		}
		if tw, ok := v.anim.Tween(i); ok {
			v.drawIndex(screen, i, area, tw.Offset(area.Width), tw.Alpha())
		}
	}
	offset, alpha := 0.0, 1.0
	if tw, ok := v.anim.Tween(cur); ok {
		offset, alpha = tw.Offset(area.Width), tw.Alpha()
	}
	v.drawIndex(screen, cur, area, offset, alpha)

	cfg := v.show.Config()
	if cfg.ShowCaptions {
		if src, ok := v.show.Source(cur); ok {
			v.captions.drawCaption(screen, area, src.Caption, v.captionColor, alpha)
		}
	}
	if cfg.ShowDots {
		drawDots(screen, area, v.show.Len(), cur, v.dotColor)
	}
	if v.overlay != nil {
		v.overlay.Draw(screen)
	}
}

func (v *Viewer) drawIndex(screen *ebiten.Image, i int, area Rect, offset, alpha float64) {
	d := v.show.SlideStyle(i)
	if !d.Loaded {
		return
	}
	src, ok := v.show.Source(i)
	if !ok {
		return
	}
	tex, ok := v.textures.texture(src.URL)
	if !ok {
		return
	}
	drawSlide(screen, tex, d, area, offset, alpha)
}

// Layout implements ebiten.Game. The slide area follows the window size.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.width, v.height = outsideWidth, outsideHeight
	v.input.Bounds = v.bounds()
	v.input.ArrowWidth = float64(outsideWidth) / 10
	return outsideWidth, outsideHeight
}

// Close tears down the slideshow and releases textures.
func (v *Viewer) Close() {
	v.show.Teardown()
	v.textures.close()
	v.captions.dispose()
}

// Run opens a window and runs a viewer for cfg until it is closed.
func Run(cfg Config, rc RunConfig) error {
	v, err := NewViewer(cfg, rc)
	if err != nil {
		return fmt.Errorf("create viewer: %w", err)
	}
	defer v.Close()

	title := rc.Title
	if title == "" {
		title = "carousel"
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(v.width, v.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
