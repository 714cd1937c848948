package carousel

import (
	"math"
	"strconv"
	"strings"
)

// panEpsilon is the distance in pixels under which a position counts as
// resting on a pan bound.
const panEpsilon = 0.01

// GestureSession is the reference geometry of one interaction: the rendered
// container size and the natural size of the image drawn in it. It is
// captured on the first contact and kept until every contact is released so
// that zoom and pan deltas always resolve against the same baseline.
type GestureSession struct {
	ContainerW, ContainerH float64
	ImageW, ImageH         float64
}

// SnapshotSession captures the geometry for a new interaction.
func SnapshotSession(containerW, containerH, imageW, imageH float64) GestureSession {
	return GestureSession{
		ContainerW: containerW,
		ContainerH: containerH,
		ImageW:     imageW,
		ImageH:     imageH,
	}
}

// AspectRatio returns image width divided by image height, or 0 when the
// image height is unknown.
func (s GestureSession) AspectRatio() float64 {
	if s.ImageH <= 0 {
		return 0
	}
	return s.ImageW / s.ImageH
}

// Diagonal returns the diagonal of the natural image size.
func (s GestureSession) Diagonal() float64 {
	return math.Sqrt(s.ImageW*s.ImageW + s.ImageH*s.ImageH)
}

// Valid reports whether all four dimensions are known. Transform operations
// on an invalid session are no-ops.
func (s GestureSession) Valid() bool {
	return s.ContainerW > 0 && s.ContainerH > 0 && s.ImageW > 0 && s.ImageH > 0
}

// WidthBound reports whether width is the governing axis, i.e. the image is
// relatively wider than the container.
func (s GestureSession) WidthBound() bool {
	if !s.Valid() {
		return false
	}
	return s.AspectRatio() > s.ContainerW/s.ContainerH
}

// BackgroundTransform is a background image placement in pixels. Size is the
// image extent on the governing axis; the other extent follows from the
// aspect ratio so the scale stays uniform.
type BackgroundTransform struct {
	Size float64
	X, Y float64
}

// Extents returns the rendered image width and height for a governing-axis
// size.
func (s GestureSession) Extents(size float64) (w, h float64) {
	ar := s.AspectRatio()
	if ar == 0 {
		return 0, 0
	}
	if s.WidthBound() {
		return size, size / ar
	}
	return size * ar, size
}

// governing picks the governing-axis value from a width/height pair.
func (s GestureSession) governing(w, h float64) float64 {
	if s.WidthBound() {
		return w
	}
	return h
}

// ContainSize is the governing-axis size at which the whole image fits in
// the container. It is also the smallest size a zoom may reach.
func (s GestureSession) ContainSize() float64 {
	if s.WidthBound() {
		return s.ContainerW
	}
	return s.ContainerH
}

// CoverSize is the governing-axis size at which the image fills the
// container on both axes.
func (s GestureSession) CoverSize() float64 {
	ar := s.AspectRatio()
	if ar == 0 {
		return 0
	}
	if s.WidthBound() {
		return s.ContainerH * ar
	}
	return s.ContainerW / ar
}

// SizeToPixels resolves a background-size value into a governing-axis pixel
// size. Recognized forms are cover, contain, auto, a percentage or pixel
// length, and two-value "<w> <h>" pairs of those. Anything else resolves as
// contain. Returns 0 for an invalid session.
func (s GestureSession) SizeToPixels(symbolic string) float64 {
	if !s.Valid() {
		return 0
	}
	ar := s.AspectRatio()
	tokens := strings.Fields(strings.ToLower(symbolic))

	switch len(tokens) {
	case 1:
		switch tokens[0] {
		case "cover":
			return s.CoverSize()
		case "contain":
			return s.ContainSize()
		case "auto":
			return s.governing(s.ImageW, s.ImageH)
		}
		if w, ok := parseLength(tokens[0], s.ContainerW); ok && w > 0 {
			return s.governing(w, w/ar)
		}
	case 2:
		wAuto, hAuto := tokens[0] == "auto", tokens[1] == "auto"
		w, wok := parseLength(tokens[0], s.ContainerW)
		h, hok := parseLength(tokens[1], s.ContainerH)
		switch {
		case wAuto && hAuto:
			return s.governing(s.ImageW, s.ImageH)
		case wok && hAuto && w > 0:
			return s.governing(w, w/ar)
		case wAuto && hok && h > 0:
			return s.governing(h*ar, h)
		case wok && hok && w > 0 && h > 0:
			return s.governing(w, h)
		}
	}
	return s.ContainSize()
}

// PositionToPixels resolves a background-position value into pixel offsets
// for an image of the given governing-axis size. Keywords map to center=50%,
// left/top=0% and right/bottom=100%; a percentage p resolves to
// p * (container - extent) on its axis. Unparseable axes resolve to center.
func (s GestureSession) PositionToPixels(symbolic string, size float64) (x, y float64) {
	if !s.Valid() {
		return 0, 0
	}
	ew, eh := s.Extents(size)
	xTok, yTok := splitPosition(symbolic)
	x = resolvePositionAxis(xTok, s.ContainerW, ew, "left", "right")
	y = resolvePositionAxis(yTok, s.ContainerH, eh, "top", "bottom")
	return x, y
}

// Resolve converts symbolic size and position values into a pixel transform.
func (s GestureSession) Resolve(size, position string) BackgroundTransform {
	px := s.SizeToPixels(size)
	x, y := s.PositionToPixels(position, px)
	return BackgroundTransform{Size: px, X: x, Y: y}
}

// ApplyZoom grows or shrinks the governing-axis size by a pinch diagonal
// delta. The result never drops below ContainSize.
func (s GestureSession) ApplyZoom(deltaDiagonal, size float64) float64 {
	if !s.Valid() {
		return size
	}
	return math.Max(size+deltaDiagonal, s.ContainSize())
}

// ApplyPan moves the image by a pointer delta expressed as previous minus
// current pointer position, so the image follows the pointer. Each axis is
// clamped independently by PanBounds.
func (s GestureSession) ApplyPan(dx, dy float64, t BackgroundTransform) (x, y float64) {
	if !s.Valid() {
		return t.X, t.Y
	}
	ew, eh := s.Extents(t.Size)
	x = clampAxis(t.X-dx, s.ContainerW, ew)
	y = clampAxis(t.Y-dy, s.ContainerH, eh)
	return x, y
}

// PanBounds returns the allowed position range on one axis. An image larger
// than the container may move within [container-extent, 0] so no empty space
// shows; a smaller one stays inside [0, container-extent].
func PanBounds(container, extent float64) (lo, hi float64) {
	if extent > container {
		return container - extent, 0
	}
	return 0, container - extent
}

func clampAxis(v, container, extent float64) float64 {
	lo, hi := PanBounds(container, extent)
	return math.Max(lo, math.Min(v, hi))
}

// HasPanSlack reports whether the image can still move horizontally in the
// direction of a pointer travelling by dx (dx < 0 is a leftward drag).
func (s GestureSession) HasPanSlack(dx float64, t BackgroundTransform) bool {
	if !s.Valid() || dx == 0 {
		return false
	}
	ew, _ := s.Extents(t.Size)
	lo, hi := PanBounds(s.ContainerW, ew)
	if dx < 0 {
		return t.X > lo+panEpsilon
	}
	return t.X < hi-panEpsilon
}

// FormatSize renders a governing-axis size as a background-size value.
func (s GestureSession) FormatSize(size float64) string {
	if s.WidthBound() {
		return formatPx(size) + " auto"
	}
	return "auto " + formatPx(size)
}

// FormatPosition renders pixel offsets as a background-position value.
func FormatPosition(x, y float64) string {
	return formatPx(x) + " " + formatPx(y)
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// parseLength parses "<n>px", "<n>%" (of ref) or a bare number.
func parseLength(tok string, ref float64) (float64, bool) {
	switch {
	case strings.HasSuffix(tok, "%"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(tok, "%"), 64)
		if err != nil {
			return 0, false
		}
		return v / 100 * ref, true
	case strings.HasSuffix(tok, "px"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(tok, "px"), 64)
		if err != nil {
			return 0, false
		}
		return v, true
	default:
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
}

// splitPosition orders the tokens of a background-position value as (x, y).
// A lone vertical keyword is taken as the y value; "top left" style pairs are
// swapped.
func splitPosition(symbolic string) (xTok, yTok string) {
	tokens := strings.Fields(strings.ToLower(symbolic))
	switch len(tokens) {
	case 0:
		return "center", "center"
	case 1:
		if tokens[0] == "top" || tokens[0] == "bottom" {
			return "center", tokens[0]
		}
		return tokens[0], "center"
	}
	a, b := tokens[0], tokens[1]
	if a == "top" || a == "bottom" || b == "left" || b == "right" {
		a, b = b, a
	}
	return a, b
}

func resolvePositionAxis(tok string, container, extent float64, start, end string) float64 {
	slack := container - extent
	switch tok {
	case "center":
		return 0.5 * slack
	case start:
		return 0
	case end:
		return slack
	}
	if strings.HasSuffix(tok, "%") {
		if p, err := strconv.ParseFloat(strings.TrimSuffix(tok, "%"), 64); err == nil {
			return p / 100 * slack
		}
		return 0.5 * slack
	}
	if v, ok := parseLength(tok, container); ok {
		return v
	}
	return 0.5 * slack
}
