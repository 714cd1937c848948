package carousel

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Autoplay transition styles.
const (
	TransitionSlide = "slide"
	TransitionFade  = "fade"
)

var (
	// ErrInvalidInterval is returned for a non-positive autoplay interval.
	ErrInvalidInterval = errors.New("autoPlayInterval must be positive")
	// ErrInvalidTransition is returned for an unknown autoPlayTransition.
	ErrInvalidTransition = errors.New(`autoPlayTransition must be "slide" or "fade"`)
)

// Config is the declarative slideshow configuration handed over by the host.
type Config struct {
	AutoPlay bool `yaml:"autoPlay"`
	// AutoPlayInterval is the autoplay period in milliseconds.
	AutoPlayInterval          int    `yaml:"autoPlayInterval"`
	AutoPlayWaitForLazyLoad   bool   `yaml:"autoPlayWaitForLazyLoad"`
	AutoPlayTransition        string `yaml:"autoPlayTransition"`
	StopAutoPlayOnManualSlide bool   `yaml:"stopAutoPlayOnManualSlide"`

	DisableSwiping bool `yaml:"disableSwiping"`
	EnablePan      bool `yaml:"enablePan"`
	EnableZoom     bool `yaml:"enableZoom"`
	LazyLoad       bool `yaml:"lazyLoad"`
	NoLoop         bool `yaml:"noLoop"`
	HideOnNoSlides bool `yaml:"hideOnNoSlides"`
	Debug          bool `yaml:"debug"`

	BackgroundSize     string `yaml:"backgroundSize"`
	BackgroundPosition string `yaml:"backgroundPosition"`
	BackgroundRepeat   string `yaml:"backgroundRepeat"`

	MaxConcurrentLoads int `yaml:"maxConcurrentLoads"`
	// TransitionDuration is the length of one slide animation in seconds.
	TransitionDuration float64 `yaml:"transitionDuration"`

	ShowDots     bool   `yaml:"showDots"`
	DotColor     string `yaml:"dotColor"`
	ShowCaptions bool   `yaml:"showCaptions"`
	CaptionColor string `yaml:"captionColor"`

	Images []Image `yaml:"images"`
}

// DefaultConfig returns the configuration used for unset fields.
func DefaultConfig() Config {
	return Config{
		AutoPlayInterval:          3333,
		AutoPlayTransition:        TransitionSlide,
		StopAutoPlayOnManualSlide: true,
		BackgroundSize:            "cover",
		BackgroundPosition:        "center center",
		BackgroundRepeat:          "no-repeat",
		MaxConcurrentLoads:        defaultMaxConcurrentLoads,
		TransitionDuration:        0.5,
		DotColor:                  "#FFF",
		ShowCaptions:              true,
		CaptionColor:              "#FFF",
	}
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML on top of DefaultConfig and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks option values that have no safe fallback.
func (c *Config) Validate() error {
	if c.AutoPlayInterval <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidInterval, c.AutoPlayInterval)
	}
	switch c.AutoPlayTransition {
	case TransitionSlide, TransitionFade, "":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidTransition, c.AutoPlayTransition)
	}
	return nil
}

// Interval returns AutoPlayInterval as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.AutoPlayInterval) * time.Millisecond
}

// Fade reports whether autoplay uses fade transitions.
func (c *Config) Fade() bool {
	return c.AutoPlayTransition == TransitionFade
}

// DotRGBA returns the parsed navigation dot color.
func (c *Config) DotRGBA() color.Color {
	return parseColor(c.DotColor)
}

// CaptionRGBA returns the parsed caption text color.
func (c *Config) CaptionRGBA() color.Color {
	return parseColor(c.CaptionColor)
}

// parseColor parses "#rgb" or "#rrggbb", falling back to white.
func parseColor(s string) color.Color {
	col, err := colorful.Hex(s)
	if err != nil {
		return color.White
	}
	return col
}

// UnmarshalYAML accepts either a bare URL string or a mapping.
func (img *Image) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*img = Image{URL: value.Value}
		return nil
	}
	type plain Image
	var p plain
	if err := value.Decode(&p); err != nil {
		return fmt.Errorf("decode image at line %d: %w", value.Line, err)
	}
	*img = Image(p)
	return nil
}
