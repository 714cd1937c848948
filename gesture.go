package carousel

import "math"

// GestureState is the contact-count state of a GestureTracker.
type GestureState uint8

const (
	GestureIdle         GestureState = iota // no contacts
	GestureOnePointer                       // one contact, pan candidate
	GestureTwoPointer                       // two contacts, zoom candidate
	GestureMultiPointer                     // three or more, ignored
)

func (s GestureState) String() string {
	switch s {
	case GestureIdle:
		return "idle"
	case GestureOnePointer:
		return "one"
	case GestureTwoPointer:
		return "two"
	case GestureMultiPointer:
		return "multi"
	default:
		return "unknown"
	}
}

// gestureTarget is the surface a GestureTracker manipulates. The tracker
// never touches slides directly; it reads geometry through the target and
// hands back transforms and the finished interaction.
type gestureTarget interface {
	// gestureGeometry returns the container size, the natural image size and
	// the current symbolic background-size/position of the active slide.
	gestureGeometry() (containerW, containerH, imageW, imageH float64, size, position string)
	// applyGestureTransform publishes a new pixel transform for the active slide.
	applyGestureTransform(s GestureSession, t BackgroundTransform)
	// endGesture is called once every contact of an interaction is gone.
	endGesture(r gestureResult)
}

// gestureResult summarizes a finished interaction.
type gestureResult struct {
	Start, End PointerSample

	// Moved is set when a pan or zoom changed the transform.
	Moved bool
	// MultiTouch is set when two or more contacts were down at some point.
	MultiTouch bool
	// Cancelled is set when the interaction ended by cancel or leave rather
	// than a normal release.
	Cancelled bool

	Session   GestureSession
	Transform BackgroundTransform
}

// GestureTracker follows live contacts on the slide surface, turns one-finger
// drags into pans and two-finger pinches into zooms, and reports the finished
// interaction for click/swipe classification.
type GestureTracker struct {
	target gestureTarget

	panEnabled  bool
	zoomEnabled bool

	contacts map[int]PointerSample

	session    GestureSession
	hasSession bool
	transform  BackgroundTransform

	prevDiagonal float64
	hasBaseline  bool

	startSample PointerSample
	endSample   PointerSample
	hasEnd      bool
	moved       bool
	multi       bool
}

// NewGestureTracker creates an idle tracker bound to target.
func NewGestureTracker(target gestureTarget) *GestureTracker {
	return &GestureTracker{
		target:   target,
		contacts: make(map[int]PointerSample, 2),
	}
}

// SetOptions enables or disables pan and zoom handling.
func (g *GestureTracker) SetOptions(panEnabled, zoomEnabled bool) {
	g.panEnabled = panEnabled
	g.zoomEnabled = zoomEnabled
}

// State returns the current contact-count state.
func (g *GestureTracker) State() GestureState {
	switch len(g.contacts) {
	case 0:
		return GestureIdle
	case 1:
		return GestureOnePointer
	case 2:
		return GestureTwoPointer
	default:
		return GestureMultiPointer
	}
}

// Session returns the geometry captured for the current interaction.
func (g *GestureTracker) Session() (GestureSession, bool) {
	return g.session, g.hasSession
}

// ContactStart registers a new contact. The first contact of an interaction
// captures the session geometry.
func (g *GestureTracker) ContactStart(p PointerSample) {
	if _, ok := g.contacts[p.ID]; ok {
		g.contacts[p.ID] = p
		return
	}
	if len(g.contacts) == 0 {
		g.begin(p)
	}
	g.contacts[p.ID] = p
	if len(g.contacts) >= 2 {
		g.multi = true
	}
	// A new two-contact phase seeds its baseline on the first move.
	g.hasBaseline = false
}

// ContactMove updates a contact and applies pan or zoom depending on how many
// contacts are down. Moves for unknown contacts are ignored.
func (g *GestureTracker) ContactMove(p PointerSample) {
	prev, ok := g.contacts[p.ID]
	if !ok {
		return
	}
	g.contacts[p.ID] = p
	g.ensureSession()

	switch len(g.contacts) {
	case 1:
		if g.panEnabled {
			g.pan(prev.X-p.X, prev.Y-p.Y)
		}
	case 2:
		if g.zoomEnabled {
			g.pinch()
		}
	}
}

// ContactEnd removes a released contact. When the last contact goes the
// interaction is finalized and the session discarded.
func (g *GestureTracker) ContactEnd(p PointerSample) {
	g.end(p, false)
}

// ContactCancel removes a contact that was cancelled or left the surface.
// An interaction finishing this way never produces a click or a swipe.
func (g *GestureTracker) ContactCancel(p PointerSample) {
	g.end(p, true)
}

// Reset drops every contact without reporting an interaction.
func (g *GestureTracker) Reset() {
	clear(g.contacts)
	g.hasSession = false
	g.hasBaseline = false
}

func (g *GestureTracker) begin(p PointerSample) {
	g.startSample = p
	g.endSample = PointerSample{}
	g.hasEnd = false
	g.moved = false
	g.multi = false
	g.hasBaseline = false
	g.hasSession = false
	g.ensureSession()
}

// ensureSession captures the session geometry if none is held yet or the
// held one is invalid (image not decoded at first contact). A valid session
// is never replaced mid-interaction.
func (g *GestureTracker) ensureSession() {
	if g.hasSession && g.session.Valid() {
		return
	}
	cw, ch, iw, ih, size, position := g.target.gestureGeometry()
	g.session = SnapshotSession(cw, ch, iw, ih)
	g.transform = g.session.Resolve(size, position)
	g.hasSession = true
}

func (g *GestureTracker) pan(dx, dy float64) {
	if !g.session.Valid() {
		return
	}
	x, y := g.session.ApplyPan(dx, dy, g.transform)
	if x == g.transform.X && y == g.transform.Y {
		return
	}
	g.transform.X, g.transform.Y = x, y
	g.moved = true
	g.target.applyGestureTransform(g.session, g.transform)
}

func (g *GestureTracker) pinch() {
	a, b := g.twoContacts()
	dx := a.X - b.X
	dy := a.Y - b.Y
	diagonal := math.Sqrt(dx*dx + dy*dy)

	if g.hasBaseline && g.session.Valid() {
		size := g.session.ApplyZoom(diagonal-g.prevDiagonal, g.transform.Size)
		if size != g.transform.Size {
			g.transform.Size = size
			g.transform.X, g.transform.Y = g.session.ApplyPan(0, 0, g.transform)
			g.moved = true
			g.target.applyGestureTransform(g.session, g.transform)
		}
	}
	g.prevDiagonal = diagonal
	g.hasBaseline = true
}

func (g *GestureTracker) twoContacts() (a, b PointerSample) {
	n := 0
	for _, p := range g.contacts {
		if n == 0 {
			a = p
		} else {
			b = p
		}
		n++
		if n == 2 {
			break
		}
	}
	return a, b
}

func (g *GestureTracker) end(p PointerSample, cancelled bool) {
	if _, ok := g.contacts[p.ID]; !ok {
		return
	}
	delete(g.contacts, p.ID)
	if p.ID == g.startSample.ID && !g.hasEnd {
		g.endSample = p
		g.hasEnd = true
	}
	if len(g.contacts) != 2 {
		g.hasBaseline = false
	}
	if len(g.contacts) > 0 {
		return
	}

	if !g.hasEnd {
		g.endSample = p
	}
	r := gestureResult{
		Start:      g.startSample,
		End:        g.endSample,
		Moved:      g.moved,
		MultiTouch: g.multi,
		Cancelled:  cancelled,
		Session:    g.session,
		Transform:  g.transform,
	}
	g.hasSession = false
	g.target.endGesture(r)
}
