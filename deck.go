package carousel

// loadRequester receives lazy-load requests from a Deck.
type loadRequester interface {
	Ensure(index int)
}

// loadKey identifies one lazy load. A completion is applied only while the
// deck still holds the same build generation and the same source URL at the
// index, so results that race a rebuild are dropped.
type loadKey struct {
	generation uint64
	index      int
	url        string
}

// Deck is the carousel state machine. It owns the ordered slides, the current
// index and the per-slide transition flags. All methods must be called from
// the host's event loop.
type Deck struct {
	slides    []Slide
	index     int
	direction Direction

	source     []Image
	built      bool
	lazy       bool
	noLoop     bool
	generation uint64

	loader loadRequester
}

// NewDeck creates an empty deck. loader may be nil when lazy loading is never
// used.
func NewDeck(loader loadRequester) *Deck {
	return &Deck{loader: loader}
}

// wrapIndex maps any integer onto [0, n) circularly. n must be positive.
func wrapIndex(i, n int) int {
	return ((i % n) + n) % n
}

// Build creates the slide set from images. It does nothing and returns false
// when a set was already built from an equal list. A rebuild resets the index
// to 0 and selects the first slide. With lazy set, slides start unloaded and
// the first two are requested from the loader.
func (d *Deck) Build(images []Image, lazy bool) bool {
	if d.built && !d.changed(images) {
		return false
	}
	d.built = true
	d.lazy = lazy
	d.generation++
	d.source = append(d.source[:0:0], images...)
	d.slides = make([]Slide, len(images))
	for i, img := range images {
		if lazy {
			d.slides[i] = Slide{Image: Image{Href: img.Href}}
			continue
		}
		d.slides[i] = Slide{
			Image:    img,
			Loaded:   true,
			Size:     img.BackgroundSize,
			Position: img.BackgroundPosition,
		}
	}
	d.index = 0
	d.direction = DirectionNone
	if len(d.slides) == 0 {
		return true
	}
	d.slides[0].Selected = true
	if lazy {
		d.ensure(0)
		if len(d.slides) > 1 {
			d.ensure(1)
		}
	}
	return true
}

func (d *Deck) changed(images []Image) bool {
	if len(images) != len(d.source) {
		return true
	}
	for i := range images {
		if !images[i].Equal(d.source[i]) {
			return true
		}
	}
	return false
}

// SetNoLoop stops Advance from wrapping past either end.
func (d *Deck) SetNoLoop(noLoop bool) {
	d.noLoop = noLoop
}

// Advance moves one slide in dir. DirectionNone, an empty deck, a single
// slide and (with no-loop) a move past either end are no-ops that return
// false. With fade set the slides get fade actions instead of directional
// ones.
func (d *Deck) Advance(dir Direction, fade bool) bool {
	n := len(d.slides)
	if dir == DirectionNone || n == 0 {
		return false
	}
	if dir > DirectionForward {
		dir = DirectionForward
	} else if dir < DirectionBackward {
		dir = DirectionBackward
	}
	raw := d.index + int(dir)
	if d.noLoop && (raw < 0 || raw >= n) {
		return false
	}
	next := wrapIndex(raw, n)
	if next == d.index {
		return false
	}
	d.transition(next, dir, fade)
	return true
}

// GoTo jumps to target (wrapped into range) as if sliding forward onto it.
// Returns false when target is already current or the deck is empty.
func (d *Deck) GoTo(target int) bool {
	n := len(d.slides)
	if n == 0 {
		return false
	}
	target = wrapIndex(target, n)
	if target == d.index {
		return false
	}
	d.transition(target, DirectionForward, false)
	return true
}

func (d *Deck) transition(next int, dir Direction, fade bool) {
	old := d.index
	n := len(d.slides)
	if d.lazy {
		d.ensure(next)
		d.ensure(wrapIndex(next+1, n))
	}

	for i := range d.slides {
		s := &d.slides[i]
		s.Action = ActionNone
		s.LeftSide = false
		s.RightSide = false
		s.Selected = false
	}

	out, in := &d.slides[old], &d.slides[next]
	switch {
	case fade:
		out.Action = ActionFadeOut
		in.Action = ActionFadeIn
	case dir == DirectionForward:
		out.Action = ActionSlideOutRight
		out.RightSide = true
		in.Action = ActionSlideInLeft
	default:
		out.Action = ActionSlideOutLeft
		out.LeftSide = true
		in.Action = ActionSlideInRight
	}
	in.Selected = true

	d.index = next
	d.direction = dir
}

func (d *Deck) ensure(i int) {
	if d.loader != nil {
		d.loader.Ensure(i)
	}
}

// Index returns the current slide index.
func (d *Deck) Index() int { return d.index }

// Len returns the number of slides.
func (d *Deck) Len() int { return len(d.slides) }

// Direction returns the direction of the most recent transition.
func (d *Deck) Direction() Direction { return d.direction }

// Generation returns the build counter, incremented on every rebuild.
func (d *Deck) Generation() uint64 { return d.generation }

// Slides returns a copy of the slide set.
func (d *Deck) Slides() []Slide {
	out := make([]Slide, len(d.slides))
	copy(out, d.slides)
	return out
}

// Slide returns a copy of the slide at i.
func (d *Deck) Slide(i int) (Slide, bool) {
	if i < 0 || i >= len(d.slides) {
		return Slide{}, false
	}
	return d.slides[i], true
}

// Source returns the configured image at i, which for lazy slides differs
// from the slide's image until the load completes.
func (d *Deck) Source(i int) (Image, bool) {
	if i < 0 || i >= len(d.source) {
		return Image{}, false
	}
	return d.source[i], true
}

// setStyle records the current background size/position of slide i.
func (d *Deck) setStyle(i int, size, position string) {
	if i < 0 || i >= len(d.slides) {
		return
	}
	d.slides[i].Size = size
	d.slides[i].Position = position
}

// setNaturalSize records the decoded image size of slide i.
func (d *Deck) setNaturalSize(i, w, h int) {
	if i < 0 || i >= len(d.slides) {
		return
	}
	d.slides[i].Width = w
	d.slides[i].Height = h
}

// pendingLoad returns what the loader needs to fetch slide i, or ok=false
// when the slide is loaded, failed or out of range.
func (d *Deck) pendingLoad(i int) (img Image, key loadKey, ok bool) {
	if i < 0 || i >= len(d.slides) {
		return Image{}, loadKey{}, false
	}
	s := &d.slides[i]
	if s.Loaded || s.Failed {
		return Image{}, loadKey{}, false
	}
	img = d.source[i]
	return img, loadKey{generation: d.generation, index: i, url: img.URL}, true
}

func (d *Deck) current(key loadKey) bool {
	return key.generation == d.generation &&
		key.index >= 0 && key.index < len(d.slides) &&
		d.source[key.index].URL == key.url
}

// completeLoad marks the slide for key loaded. Returns false for stale keys.
func (d *Deck) completeLoad(key loadKey, w, h int) bool {
	if !d.current(key) {
		return false
	}
	s := &d.slides[key.index]
	if s.Loaded {
		return false
	}
	img := d.source[key.index]
	s.Image = img
	s.Loaded = true
	s.Failed = false
	s.Width, s.Height = w, h
	s.Size = img.BackgroundSize
	s.Position = img.BackgroundPosition
	return true
}

// failLoad marks the slide for key permanently unloaded. Returns false for
// stale keys.
func (d *Deck) failLoad(key loadKey) bool {
	if !d.current(key) {
		return false
	}
	s := &d.slides[key.index]
	if s.Loaded {
		return false
	}
	s.Failed = true
	return true
}
