package carousel

import "image"

// StyleDirective is what the host renders for one slide. All fields are
// empty until the slide is loaded.
type StyleDirective struct {
	Loaded             bool
	BackgroundImage    string // url(<url>)
	BackgroundSize     string
	BackgroundPosition string
	BackgroundRepeat   string
}

// Surface is the host rendering surface the slideshow is attached to.
type Surface interface {
	// ContainerSize returns the rendered size of the slide area in pixels.
	ContainerSize() (w, h float64)
	// ApplyVisualTransform is called whenever a gesture changes the
	// background placement of slide index.
	ApplyVisualTransform(index int, d StyleDirective)
}

// ImageSizer is an optional Surface extension that reports the natural size
// of a slide image the slideshow did not decode itself (non-lazy slides).
type ImageSizer interface {
	ImageSize(index int) (w, h float64, ok bool)
}

// ImageReceiver is an optional Surface extension that receives decoded pixels
// from completed lazy loads.
type ImageReceiver interface {
	ReceiveImage(index int, url string, pixels image.Image)
}

// SlideStyle returns the style directive for slide i. Slide-level values
// override the configured defaults.
func (s *Slideshow) SlideStyle(i int) StyleDirective {
	slide, ok := s.deck.Slide(i)
	if !ok || !slide.Loaded {
		return StyleDirective{}
	}
	return StyleDirective{
		Loaded:             true,
		BackgroundImage:    "url(" + slide.Image.URL + ")",
		BackgroundSize:     firstNonEmpty(slide.Size, slide.Image.BackgroundSize, s.cfg.BackgroundSize),
		BackgroundPosition: firstNonEmpty(slide.Position, slide.Image.BackgroundPosition, s.cfg.BackgroundPosition),
		BackgroundRepeat:   firstNonEmpty(slide.Image.BackgroundRepeat, s.cfg.BackgroundRepeat),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
