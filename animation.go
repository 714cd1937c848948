package carousel

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// SlideTween animates one slide through its TransitionAction. Progress runs
// from 0 to 1; Offset and Alpha map it onto the action.
type SlideTween struct {
	Action   TransitionAction
	Progress float64
	Done     bool

	tween *gween.Tween
}

// NewSlideTween creates a tween for action lasting duration seconds.
func NewSlideTween(action TransitionAction, duration float32, fn ease.TweenFunc) *SlideTween {
	if fn == nil {
		fn = ease.InOutQuad
	}
	return &SlideTween{
		Action: action,
		tween:  gween.New(0, 1, duration, fn),
	}
}

// Update advances the tween by dt seconds.
func (t *SlideTween) Update(dt float32) {
	if t.Done {
		return
	}
	val, finished := t.tween.Update(dt)
	t.Progress = float64(val)
	t.Done = finished
}

// Offset returns the horizontal displacement of the slide for a container of
// the given width.
func (t *SlideTween) Offset(width float64) float64 {
	p := t.Progress
	switch t.Action {
	case ActionSlideOutLeft:
		return -p * width
	case ActionSlideOutRight:
		return p * width
	case ActionSlideInLeft:
		return -(1 - p) * width
	case ActionSlideInRight:
		return (1 - p) * width
	}
	return 0
}

// Alpha returns the slide opacity.
func (t *SlideTween) Alpha() float64 {
	switch t.Action {
	case ActionFadeOut:
		return 1 - t.Progress
	case ActionFadeIn:
		return t.Progress
	}
	return 1
}

// TransitionAnimator runs the tweens of the slides taking part in the latest
// transition. There is no global animation manager; the viewer calls Update
// each frame.
type TransitionAnimator struct {
	Duration float32
	Ease     ease.TweenFunc

	tweens map[int]*SlideTween
}

// NewTransitionAnimator creates an animator with the given duration in
// seconds.
func NewTransitionAnimator(duration float32) *TransitionAnimator {
	return &TransitionAnimator{
		Duration: duration,
		Ease:     ease.InOutQuad,
		tweens:   make(map[int]*SlideTween),
	}
}

// Start replaces running tweens with one per slide carrying an action. A
// non-positive duration finishes transitions immediately.
func (a *TransitionAnimator) Start(slides []Slide) {
	clear(a.tweens)
	if a.Duration <= 0 {
		return
	}
	for i, s := range slides {
		if s.Action == ActionNone {
			continue
		}
		a.tweens[i] = NewSlideTween(s.Action, a.Duration, a.Ease)
	}
}

// Update advances every tween by dt seconds and drops finished ones.
func (a *TransitionAnimator) Update(dt float32) {
	for i, t := range a.tweens {
		t.Update(dt)
		if t.Done {
			delete(a.tweens, i)
		}
	}
}

// Tween returns the running tween for slide i, if any.
func (a *TransitionAnimator) Tween(i int) (*SlideTween, bool) {
	t, ok := a.tweens[i]
	return t, ok
}

// Active reports whether any transition is still running.
func (a *TransitionAnimator) Active() bool {
	return len(a.tweens) > 0
}
