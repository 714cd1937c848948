package carousel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ErrUnsupportedImage is returned for image URLs the resolver cannot fetch.
var ErrUnsupportedImage = errors.New("unsupported image source")

// FileResolver loads slide images from local paths, file:// URLs and
// http(s) URLs, and decodes them honoring EXIF orientation. Supported formats
// are PNG, JPEG, GIF, BMP, TIFF and WebP.
type FileResolver struct {
	// Root is the base directory for relative paths.
	Root string
	// Client is used for http(s) URLs; nil means http.DefaultClient.
	Client *http.Client
}

// Resolve fetches and decodes img.URL.
func (r FileResolver) Resolve(ctx context.Context, img Image) (Resolved, error) {
	if img.URL == "" {
		return Resolved{}, fmt.Errorf("%w: empty url", ErrUnsupportedImage)
	}
	rc, err := r.open(ctx, img.URL)
	if err != nil {
		return Resolved{}, err
	}
	defer rc.Close()

	pix, err := imaging.Decode(rc, imaging.AutoOrientation(true))
	if err != nil {
		return Resolved{}, fmt.Errorf("decode %s: %w", img.URL, err)
	}
	b := pix.Bounds()
	return Resolved{Pixels: pix, Width: b.Dx(), Height: b.Dy()}, nil
}

func (r FileResolver) open(ctx context.Context, url string) (io.ReadCloser, error) {
	switch {
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		return r.fetch(ctx, url)
	case strings.HasPrefix(url, "file://"):
		url = strings.TrimPrefix(url, "file://")
	case strings.Contains(url, "://"), strings.HasPrefix(url, "data:"):
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, url)
	}
	path := url
	if !filepath.IsAbs(path) && r.Root != "" {
		path = filepath.Join(r.Root, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	return f, nil
}

func (r FileResolver) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	return resp.Body, nil
}
