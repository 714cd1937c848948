package carousel

import (
	"testing"
	"time"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func sample(x, y float64, after time.Duration) PointerSample {
	return PointerSample{X: x, Y: y, Time: t0.Add(after)}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   SwipeInput
		want Gesture
	}{
		{
			name: "tap is a click",
			in:   SwipeInput{Start: sample(100, 100, 0), End: sample(104, 98, 80*time.Millisecond)},
			want: GestureClick,
		},
		{
			name: "slow tap is still a click",
			in:   SwipeInput{Start: sample(100, 100, 0), End: sample(100, 100, 3*time.Second)},
			want: GestureClick,
		},
		{
			name: "travel of 15 is not a click",
			in:   SwipeInput{Start: sample(100, 100, 0), End: sample(115, 100, 50*time.Millisecond)},
			want: GestureNone,
		},
		{
			name: "panned tap is not a click",
			in:   SwipeInput{Start: sample(100, 100, 0), End: sample(101, 100, 50*time.Millisecond), Panning: true},
			want: GestureNone,
		},
		{
			name: "fast leftward drag swipes left",
			in:   SwipeInput{Start: sample(300, 100, 0), End: sample(100, 120, 200*time.Millisecond)},
			want: GestureSwipeLeft,
		},
		{
			name: "fast rightward drag swipes right",
			in:   SwipeInput{Start: sample(100, 100, 0), End: sample(300, 90, 200*time.Millisecond)},
			want: GestureSwipeRight,
		},
		{
			name: "exactly 30 px is enough",
			in:   SwipeInput{Start: sample(100, 100, 0), End: sample(70, 100, 100*time.Millisecond)},
			want: GestureSwipeLeft,
		},
		{
			name: "29 px is too short",
			in:   SwipeInput{Start: sample(100, 100, 0), End: sample(71, 100, 100*time.Millisecond)},
			want: GestureNone,
		},
		{
			name: "drift of 100 is allowed",
			in:   SwipeInput{Start: sample(300, 100, 0), End: sample(100, 200, 100*time.Millisecond)},
			want: GestureSwipeLeft,
		},
		{
			name: "drift over 100 is vertical",
			in:   SwipeInput{Start: sample(300, 100, 0), End: sample(100, 201, 100*time.Millisecond)},
			want: GestureNone,
		},
		{
			name: "one second is too slow",
			in:   SwipeInput{Start: sample(300, 100, 0), End: sample(100, 100, time.Second)},
			want: GestureNone,
		},
		{
			name: "disabled swiping",
			in:   SwipeInput{Start: sample(300, 100, 0), End: sample(100, 100, 100*time.Millisecond), SwipingDisabled: true},
			want: GestureNone,
		},
		{
			name: "disabled swiping still clicks",
			in:   SwipeInput{Start: sample(300, 100, 0), End: sample(300, 100, 100*time.Millisecond), SwipingDisabled: true},
			want: GestureClick,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.in); got != tt.want {
				t.Errorf("Classify = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassifyWithPan(t *testing.T) {
	s := wideSession()
	leftward := SwipeInput{
		Start:      sample(300, 100, 0),
		End:        sample(100, 100, 200*time.Millisecond),
		Panning:    true,
		PanEnabled: true,
		Session:    s,
	}

	leftward.Transform = BackgroundTransform{Size: 600, X: -100}
	if got := Classify(leftward); got != GestureNone {
		t.Errorf("image with slack: got %s, want none", got)
	}

	leftward.Transform = BackgroundTransform{Size: 600, X: -200}
	if got := Classify(leftward); got != GestureSwipeLeft {
		t.Errorf("image at its bound: got %s, want swipeLeft", got)
	}

	// Pan disabled ignores the image position entirely.
	leftward.PanEnabled = false
	leftward.Transform = BackgroundTransform{Size: 600, X: -100}
	if got := Classify(leftward); got != GestureSwipeLeft {
		t.Errorf("pan disabled: got %s, want swipeLeft", got)
	}
}

func TestGestureDirection(t *testing.T) {
	if GestureSwipeLeft.Direction() != DirectionForward {
		t.Error("swipe left should advance forward")
	}
	if GestureSwipeRight.Direction() != DirectionBackward {
		t.Error("swipe right should go backward")
	}
	if GestureClick.Direction() != DirectionNone || GestureNone.Direction() != DirectionNone {
		t.Error("click and none should not move")
	}
}
