package carousel

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Overlay displays FPS, TPS and the slideshow state in the top-left corner.
// The text is refreshed every ~0.5 seconds.
type Overlay struct {
	show    *Slideshow
	img     *ebiten.Image
	elapsed float64
	text    string
}

// NewOverlay creates an overlay reporting on show.
func NewOverlay(show *Slideshow) *Overlay {
	return &Overlay{show: show, elapsed: 0.5}
}

// Text returns the most recently rendered overlay text.
func (o *Overlay) Text() string {
	return o.text
}

// Update advances the refresh timer by dt seconds and re-renders when due.
func (o *Overlay) Update(dt float64) {
	o.elapsed += dt
	if o.elapsed < 0.5 {
		return
	}
	o.elapsed = 0
	o.text = o.format(ebiten.ActualFPS(), ebiten.ActualTPS())

	if o.img == nil {
		// 150x84 is enough for five debug-font lines.
		o.img = ebiten.NewImage(150, 84)
	}
	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, o.text)
}

func (o *Overlay) format(fps, tps float64) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nSlide: %d/%d\nGesture: %s\nAutoplay: %v",
		fps, tps,
		o.show.Index()+1, o.show.Len(),
		o.show.GestureState(),
		o.show.AutoplayActive())
}

// Draw draws the overlay on top of dst.
func (o *Overlay) Draw(dst *ebiten.Image) {
	if o.img == nil {
		return
	}
	dst.DrawImage(o.img, nil)
}
