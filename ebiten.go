package carousel

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// Rect is an axis-aligned screen rectangle with the origin at the top-left.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle. Points on the
// edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

type pointerState struct {
	down  bool
	lastX float64
	lastY float64
}

// Input turns Ebitengine mouse and touch state into PointerEvents for a
// Slideshow. Presses on the arrow strips at either edge navigate instead of
// starting a gesture. Call Update once per frame from the game's Update.
type Input struct {
	show *Slideshow

	// Bounds is the slide area in screen coordinates.
	Bounds Rect
	// ArrowWidth is the width of the previous/next strips; 0 disables them.
	ArrowWidth float64

	pointers     [maxPointers]pointerState
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID

	injectQueue []syntheticPointerEvent
	testRunner  *TestRunner

	now func() time.Time
}

// NewInput creates an input adapter feeding show.
func NewInput(show *Slideshow, bounds Rect) *Input {
	return &Input{
		show:   show,
		Bounds: bounds,
		now:    time.Now,
	}
}

// Update polls input for this frame. Injected events take precedence over
// the real mouse; touches are always read.
func (in *Input) Update() {
	if in.testRunner != nil {
		in.testRunner.step(in)
	}
	if !in.processInjected() {
		in.processMouse()
	}
	in.processTouches()
}

// processMouse handles the left mouse button as pointer 0.
func (in *Input) processMouse() {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	in.processPointer(0, float64(mx), float64(my), pressed)
}

// processTouches handles touches as pointers 1-9.
func (in *Input) processTouches() {
	touchIDs := ebiten.AppendTouchIDs(in.prevTouchIDs[:0])
	in.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := in.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		in.processPointer(slot, float64(tx), float64(ty), true)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && !activeSlots[i] {
			ps := &in.pointers[i]
			if ps.down {
				in.processPointer(i, ps.lastX, ps.lastY, false)
			}
			in.touchUsed[i] = false
			in.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (in *Input) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && in.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !in.touchUsed[i] {
			in.touchUsed[i] = true
			in.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer diffs one pointer against its previous frame state and
// emits the matching event.
func (in *Input) processPointer(id int, x, y float64, pressed bool) {
	ps := &in.pointers[id]
	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.lastX, ps.lastY = x, y
		if in.pressArrow(x, y) {
			// Arrow presses never reach the gesture tracker.
			return
		}
		in.emit(PointerDown, id, x, y)
	case !pressed && ps.down:
		ps.down = false
		in.emit(PointerUp, id, x, y)
	case pressed && ps.down:
		if x == ps.lastX && y == ps.lastY {
			return
		}
		ps.lastX, ps.lastY = x, y
		if id == 0 && !in.Bounds.Contains(x, y) {
			// The mouse left the slide area mid-drag.
			ps.down = false
			in.emit(PointerLeave, id, x, y)
			return
		}
		in.emit(PointerMove, id, x, y)
	}
}

// pressArrow navigates when (x, y) falls on an arrow strip.
func (in *Input) pressArrow(x, y float64) bool {
	if in.ArrowWidth <= 0 || !in.Bounds.Contains(x, y) {
		return false
	}
	switch {
	case x <= in.Bounds.X+in.ArrowWidth:
		in.show.Prev()
		return true
	case x >= in.Bounds.X+in.Bounds.Width-in.ArrowWidth:
		in.show.Next()
		return true
	}
	return false
}

func (in *Input) emit(phase PointerPhase, id int, x, y float64) {
	in.show.HandlePointer(PointerEvent{
		Phase:          phase,
		ContactID:      id,
		X:              x,
		Y:              y,
		Time:           in.now(),
		OnSlideSurface: in.Bounds.Contains(x, y),
	})
}
