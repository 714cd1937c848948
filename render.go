package carousel

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	dotRadius  = 5
	dotSpacing = 18
	dotMargin  = 16

	debugGlyphW = 6  // ebitenutil debug font advance
	debugGlyphH = 16 // ebitenutil debug font line height
)

// repeatAxes parses a background-repeat value into per-axis tiling flags.
// "space" and "round" tile like "repeat".
func repeatAxes(repeat string) (x, y bool) {
	fields := strings.Fields(strings.ToLower(repeat))
	switch len(fields) {
	case 0:
		return false, false
	case 1:
		switch fields[0] {
		case "repeat-x":
			return true, false
		case "repeat-y":
			return false, true
		case "no-repeat":
			return false, false
		default:
			return true, true
		}
	}
	return fields[0] != "no-repeat", fields[1] != "no-repeat"
}

// tileStarts returns the offsets along one axis at which an image of the
// given extent is drawn to cover [0, span).
func tileStarts(pos, extent, span float64, repeat bool) []float64 {
	if !repeat || extent < 1 {
		return []float64{pos}
	}
	start := math.Mod(pos, extent)
	if start > 0 {
		start -= extent
	}
	var out []float64
	for v := start; v < span; v += extent {
		out = append(out, v)
	}
	return out
}

// slidePlacement resolves a style directive against the texture size and the
// slide area, returning the top-left corner and scale of the first tile.
func slidePlacement(d StyleDirective, area Rect, texW, texH float64) (sess GestureSession, t BackgroundTransform, ok bool) {
	sess = SnapshotSession(area.Width, area.Height, texW, texH)
	if !sess.Valid() {
		return sess, BackgroundTransform{}, false
	}
	t = sess.Resolve(d.BackgroundSize, d.BackgroundPosition)
	return sess, t, t.Size > 0
}

// drawSlide draws tex into area the way d places it, shifted horizontally by
// offsetX and faded by alpha. Drawing is clipped to area.
func drawSlide(dst, tex *ebiten.Image, d StyleDirective, area Rect, offsetX, alpha float64) {
	b := tex.Bounds()
	texW, texH := float64(b.Dx()), float64(b.Dy())
	sess, t, ok := slidePlacement(d, area, texW, texH)
	if !ok {
		return
	}
	ew, eh := sess.Extents(t.Size)
	clip := dst.SubImage(image.Rect(
		int(area.X), int(area.Y),
		int(math.Ceil(area.X+area.Width)), int(math.Ceil(area.Y+area.Height)),
	)).(*ebiten.Image)

	rx, ry := repeatAxes(d.BackgroundRepeat)
	xs := tileStarts(t.X, ew, area.Width, rx)
	ys := tileStarts(t.Y, eh, area.Height, ry)

	var op ebiten.DrawImageOptions
	for _, y := range ys {
		for _, x := range xs {
			op.GeoM.Reset()
			op.GeoM.Scale(ew/texW, eh/texH)
			op.GeoM.Translate(area.X+offsetX+x, area.Y+y)
			op.ColorScale.Reset()
			op.ColorScale.ScaleAlpha(float32(alpha))
			op.Filter = ebiten.FilterLinear
			clip.DrawImage(tex, &op)
		}
	}
}

// drawDots draws one navigation dot per slide centered along the bottom edge
// of area. The current slide is opaque, the rest half transparent.
func drawDots(dst *ebiten.Image, area Rect, n, current int, clr color.Color) {
	if n <= 1 {
		return
	}
	total := float64(n-1) * dotSpacing
	cx := area.X + area.Width/2 - total/2
	cy := area.Y + area.Height - dotMargin
	for i := 0; i < n; i++ {
		c := clr
		if i != current {
			c = withAlpha(clr, 0.5)
		}
		vector.DrawFilledCircle(dst, float32(cx+float64(i)*dotSpacing), float32(cy), dotRadius, c, true)
	}
}

func withAlpha(c color.Color, a float64) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float64(n.A) * a)
	return n
}

// captionImages renders captions once with the debug font. The font is
// white, so callers tint the result with the caption color.
type captionImages map[string]*ebiten.Image

func (c captionImages) get(caption string) *ebiten.Image {
	if img, ok := c[caption]; ok {
		return img
	}
	lines := strings.Split(caption, "\n")
	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	img := ebiten.NewImage(width*debugGlyphW+8, len(lines)*debugGlyphH+4)
	img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrintAt(img, caption, 4, 2)
	c[caption] = img
	return img
}

// drawCaption draws caption centered above the dots.
func (c captionImages) drawCaption(dst *ebiten.Image, area Rect, caption string, clr color.Color, alpha float64) {
	if caption == "" {
		return
	}
	img := c.get(caption)
	b := img.Bounds()
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(
		area.X+(area.Width-float64(b.Dx()))/2,
		area.Y+area.Height-dotMargin*2-float64(b.Dy()),
	)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(alpha))
	dst.DrawImage(img, &op)
}

func (c captionImages) dispose() {
	for k, img := range c {
		img.Deallocate()
		delete(c, k)
	}
}
