package carousel

import (
	"context"
	"image"
	"sync"

	"golang.org/x/sync/semaphore"
)

const defaultMaxConcurrentLoads = 4

// ImageResolver fetches and decodes a slide image. Resolve runs off the host
// loop and must not touch carousel state.
type ImageResolver interface {
	Resolve(ctx context.Context, img Image) (Resolved, error)
}

// ImageResolverFunc adapts a function to ImageResolver.
type ImageResolverFunc func(ctx context.Context, img Image) (Resolved, error)

// Resolve calls f.
func (f ImageResolverFunc) Resolve(ctx context.Context, img Image) (Resolved, error) {
	return f(ctx, img)
}

// Resolved is a decoded slide image.
type Resolved struct {
	Pixels        image.Image
	Width, Height int
}

// loadSource is the deck side of the loader: it says what slide i needs.
type loadSource interface {
	pendingLoad(i int) (Image, loadKey, bool)
}

// loadResult is a finished load waiting to be applied on the host loop.
type loadResult struct {
	key loadKey
	res Resolved
	err error
}

// LazyLoader resolves slide images in the background. Loads run on
// goroutines, bounded by a semaphore; their results are queued and only
// applied when the host calls Poll, so slide state is never mutated off the
// host loop. At most one load per slide is outstanding.
type LazyLoader struct {
	source   loadSource
	resolver ImageResolver

	ctx    context.Context
	cancel context.CancelFunc
	sem    *semaphore.Weighted
	wg     sync.WaitGroup

	// pending is touched only on the host loop.
	pending map[loadKey]struct{}
	closed  bool

	mu      sync.Mutex
	results []loadResult

	// spawn starts a load; tests replace it to run loads inline.
	spawn func(func())
}

// NewLazyLoader creates a loader that asks source what to fetch and resolves
// with resolver. maxConcurrent <= 0 uses the default of 4.
func NewLazyLoader(source loadSource, resolver ImageResolver, maxConcurrent int) *LazyLoader {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrentLoads
	}
	if resolver == nil {
		resolver = ImageResolverFunc(func(context.Context, Image) (Resolved, error) {
			return Resolved{}, nil
		})
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &LazyLoader{
		source:   source,
		resolver: resolver,
		ctx:      ctx,
		cancel:   cancel,
		sem:      semaphore.NewWeighted(int64(maxConcurrent)),
		pending:  make(map[loadKey]struct{}),
		spawn:    func(fn func()) { go fn() },
	}
}

// Ensure starts loading slide index unless it is already loaded, failed or
// in flight.
func (l *LazyLoader) Ensure(index int) {
	if l.closed {
		return
	}
	img, key, ok := l.source.pendingLoad(index)
	if !ok {
		return
	}
	if _, inFlight := l.pending[key]; inFlight {
		return
	}
	l.pending[key] = struct{}{}
	l.wg.Add(1)
	l.spawn(func() {
		defer l.wg.Done()
		l.load(key, img)
	})
}

func (l *LazyLoader) load(key loadKey, img Image) {
	if err := l.sem.Acquire(l.ctx, 1); err != nil {
		l.push(loadResult{key: key, err: err})
		return
	}
	defer l.sem.Release(1)

	res, err := l.resolver.Resolve(l.ctx, img)
	l.push(loadResult{key: key, res: res, err: err})
}

func (l *LazyLoader) push(r loadResult) {
	l.mu.Lock()
	l.results = append(l.results, r)
	l.mu.Unlock()
}

// Pending reports how many loads are in flight or waiting for Poll.
func (l *LazyLoader) Pending() int {
	return len(l.pending)
}

// Poll hands every finished load to apply, in completion order. It must be
// called from the host loop. After Close, finished loads are dropped.
func (l *LazyLoader) Poll(apply func(loadResult)) {
	l.mu.Lock()
	done := l.results
	l.results = nil
	l.mu.Unlock()

	for _, r := range done {
		delete(l.pending, r.key)
		if l.closed {
			continue
		}
		apply(r)
	}
}

// Wait blocks until every started load has finished resolving. Results still
// need a Poll to take effect.
func (l *LazyLoader) Wait() {
	l.wg.Wait()
}

// Close cancels in-flight loads. Their results are discarded.
func (l *LazyLoader) Close() {
	l.closed = true
	l.cancel()
}
