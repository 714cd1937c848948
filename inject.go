package carousel

// syntheticPointerEvent represents a single injected pointer event in screen
// coordinates. It goes through the same press/move/release diffing as real
// mouse and touch input.
type syntheticPointerEvent struct {
	id      int
	x, y    float64
	pressed bool
}

// InjectPress queues a press of the primary pointer at the given screen
// coordinates. The event is consumed on the next frame's Update call.
func (in *Input) InjectPress(x, y float64) {
	in.injectPointer(0, x, y, true)
}

// InjectMove queues a move of the primary pointer with the button held down.
// Use this between InjectPress and InjectRelease to simulate a drag.
func (in *Input) InjectMove(x, y float64) {
	in.injectPointer(0, x, y, true)
}

// InjectRelease queues a release of the primary pointer.
func (in *Input) InjectRelease(x, y float64) {
	in.injectPointer(0, x, y, false)
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (in *Input) InjectClick(x, y float64) {
	in.InjectPress(x, y)
	in.InjectRelease(x, y)
}

// InjectSwipe queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). Minimum frames is 2 (press + release).
func (in *Input) InjectSwipe(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	in.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		in.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	in.InjectRelease(toX, toY)
}

// InjectPinch queues a two-finger pinch centered on (cx, cy). The fingers
// start fromDist apart on a horizontal line and end toDist apart after the
// given number of move steps per finger.
func (in *Input) InjectPinch(cx, cy, fromDist, toDist float64, steps int) {
	if steps < 1 {
		steps = 1
	}
	const a, b = 1, 2
	half := fromDist / 2
	in.injectPointer(a, cx-half, cy, true)
	in.injectPointer(b, cx+half, cy, true)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		half = (fromDist + (toDist-fromDist)*t) / 2
		in.injectPointer(a, cx-half, cy, true)
		in.injectPointer(b, cx+half, cy, true)
	}
	in.injectPointer(a, cx-half, cy, false)
	in.injectPointer(b, cx+half, cy, false)
}

// Pending returns the number of injected events not yet consumed.
func (in *Input) Pending() int {
	return len(in.injectQueue)
}

func (in *Input) injectPointer(id int, x, y float64, pressed bool) {
	in.injectQueue = append(in.injectQueue, syntheticPointerEvent{
		id: id,
		x:  x, y: y,
		pressed: pressed,
	})
}

// processInjected pops one event from the inject queue and feeds it through
// processPointer. Returns true if an event was consumed (real mouse input
// should be skipped).
func (in *Input) processInjected() bool {
	if len(in.injectQueue) == 0 {
		return false
	}
	evt := in.injectQueue[0]
	copy(in.injectQueue, in.injectQueue[1:])
	in.injectQueue = in.injectQueue[:len(in.injectQueue)-1]

	in.processPointer(evt.id, evt.x, evt.y, evt.pressed)
	return true
}
