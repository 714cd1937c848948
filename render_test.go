package carousel

import (
	"image/color"
	"slices"
	"testing"
)

func TestRepeatAxes(t *testing.T) {
	tests := []struct {
		in     string
		wx, wy bool
	}{
		{"no-repeat", false, false},
		{"", false, false},
		{"repeat", true, true},
		{"repeat-x", true, false},
		{"repeat-y", false, true},
		{"space", true, true},
		{"round", true, true},
		{"repeat no-repeat", true, false},
		{"no-repeat repeat", false, true},
		{"REPEAT-X", true, false},
	}
	for _, tt := range tests {
		x, y := repeatAxes(tt.in)
		if x != tt.wx || y != tt.wy {
			t.Errorf("repeatAxes(%q) = (%v, %v), want (%v, %v)", tt.in, x, y, tt.wx, tt.wy)
		}
	}
}

func TestTileStarts(t *testing.T) {
	tests := []struct {
		name              string
		pos, extent, span float64
		repeat            bool
		want              []float64
	}{
		{"no repeat", 25, 100, 300, false, []float64{25}},
		{"aligned", 0, 100, 300, true, []float64{0, 100, 200}},
		{"positive offset", 25, 100, 300, true, []float64{-75, 25, 125, 225}},
		{"negative offset", -130, 100, 250, true, []float64{-30, 70, 170}},
		{"degenerate extent", 5, 0.5, 300, true, []float64{5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tileStarts(tt.pos, tt.extent, tt.span, tt.repeat)
			if !slices.Equal(got, tt.want) {
				t.Errorf("tileStarts = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSlidePlacement(t *testing.T) {
	d := StyleDirective{Loaded: true, BackgroundSize: "contain", BackgroundPosition: "center center"}
	_, tr, ok := slidePlacement(d, Rect{Width: 400, Height: 300}, 800, 400)
	if !ok {
		t.Fatal("placement should resolve")
	}
	if tr.Size != 400 || tr.X != 0 || tr.Y != 50 {
		t.Errorf("transform = %+v, want {400 0 50}", tr)
	}

	if _, _, ok := slidePlacement(d, Rect{Width: 400, Height: 300}, 0, 0); ok {
		t.Error("an empty texture should not resolve")
	}
}

func TestWithAlpha(t *testing.T) {
	c := withAlpha(color.NRGBA{R: 255, G: 255, B: 255, A: 200}, 0.5)
	n := c.(color.NRGBA)
	if n.A != 100 || n.R != 255 {
		t.Errorf("withAlpha = %+v", n)
	}
}
