package carousel

import (
	"context"
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// textureCache turns decoded slide images into GPU textures keyed by URL.
// Decoding happens on background goroutines (or arrives from the lazy
// loader); textures are only created in upload, which must run on the game
// thread.
type textureCache struct {
	resolver ImageResolver
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	mu       sync.Mutex
	decoded  map[string]image.Image
	failed   map[string]error
	inflight map[string]struct{}
	// unreported lists failures not yet handed out by takeFailures.
	unreported []string

	// textures is touched only on the game thread.
	textures map[string]*ebiten.Image
	sizes    map[string]image.Point
}

func newTextureCache(resolver ImageResolver) *textureCache {
	ctx, cancel := context.WithCancel(context.Background())
	return &textureCache{
		resolver: resolver,
		ctx:      ctx,
		cancel:   cancel,
		decoded:  make(map[string]image.Image),
		failed:   make(map[string]error),
		inflight: make(map[string]struct{}),
		textures: make(map[string]*ebiten.Image),
		sizes:    make(map[string]image.Point),
	}
}

// store queues decoded pixels for upload.
func (c *textureCache) store(url string, pix image.Image) {
	if pix == nil {
		return
	}
	c.mu.Lock()
	c.decoded[url] = pix
	delete(c.inflight, url)
	c.mu.Unlock()
}

// request starts decoding img in the background unless it is already known,
// in flight or failed.
func (c *textureCache) request(img Image) {
	if img.URL == "" || c.resolver == nil {
		return
	}
	if _, ok := c.textures[img.URL]; ok {
		return
	}
	c.mu.Lock()
	_, decoded := c.decoded[img.URL]
	_, busy := c.inflight[img.URL]
	_, failed := c.failed[img.URL]
	if decoded || busy || failed {
		c.mu.Unlock()
		return
	}
	c.inflight[img.URL] = struct{}{}
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		res, err := c.resolver.Resolve(c.ctx, img)
		if err != nil {
			c.mu.Lock()
			c.failed[img.URL] = err
			c.unreported = append(c.unreported, img.URL)
			delete(c.inflight, img.URL)
			c.mu.Unlock()
			return
		}
		c.store(img.URL, res.Pixels)
	}()
}

// upload converts every queued image into a texture.
func (c *textureCache) upload() {
	c.mu.Lock()
	if len(c.decoded) == 0 {
		c.mu.Unlock()
		return
	}
	pending := c.decoded
	c.decoded = make(map[string]image.Image)
	c.mu.Unlock()

	for url, pix := range pending {
		if old, ok := c.textures[url]; ok {
			old.Deallocate()
		}
		c.textures[url] = ebiten.NewImageFromImage(pix)
		c.sizes[url] = pix.Bounds().Size()
	}
}

// texture returns the uploaded texture for url.
func (c *textureCache) texture(url string) (*ebiten.Image, bool) {
	tex, ok := c.textures[url]
	return tex, ok
}

// size returns the natural size of url once decoded.
func (c *textureCache) size(url string) (w, h int, ok bool) {
	if sz, ok := c.sizes[url]; ok {
		return sz.X, sz.Y, true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if pix, ok := c.decoded[url]; ok {
		b := pix.Bounds()
		return b.Dx(), b.Dy(), true
	}
	return 0, 0, false
}

// err returns the decode failure for url, if any.
func (c *textureCache) err(url string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failed[url]
}

// takeFailures returns the URLs that failed to decode since the last call.
func (c *textureCache) takeFailures() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.unreported
	c.unreported = nil
	return out
}

// close cancels outstanding decodes and waits for them to return.
func (c *textureCache) close() {
	c.cancel()
	c.wg.Wait()
}
