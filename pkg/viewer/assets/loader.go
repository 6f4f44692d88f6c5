package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/zyedidia/generic/mapset"
)

// Status is the load state of one asset handle.
type Status int

const (
	StatusUnrequested Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

// String returns a lower-case name for the status.
func (s Status) String() string {
	switch s {
	case StatusUnrequested:
		return "unrequested"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Handle is the image-load handle for one key. It is created on the first
// request and lives for as long as its Loader.
type Handle[K comparable] struct {
	Key  K
	Path string

	status Status
	img    image.Image
	err    error
	onLoad func(*Handle[K])
}

// Status returns the handle's load state.
func (h *Handle[K]) Status() Status { return h.status }

// Image returns the decoded image, or nil unless the status is StatusLoaded.
func (h *Handle[K]) Image() image.Image { return h.img }

// Err returns the load error of a failed handle.
func (h *Handle[K]) Err() error { return h.err }

// Loaded reports whether the image is ready to draw.
func (h *Handle[K]) Loaded() bool { return h.status == StatusLoaded }

type completion[K comparable] struct {
	handle *Handle[K]
	img    image.Image
	err    error
}

// Loader issues at most one fetch per key for its whole lifetime.
//
// Fetches run on their own goroutines and only report back through a
// channel; every handle and counter change happens in Request and Poll, which
// must be called from the same goroutine (the render loop).
type Loader[K comparable] struct {
	// Name labels log lines, e.g. "tile" or "icon".
	Name string

	fetcher  Fetcher
	handles  map[K]*Handle[K]
	pending  mapset.Set[K]
	done     chan completion[K]
	inFlight int
	loaded   int
	failed   int

	watchers []func(inFlight int)

	ctx    context.Context
	cancel context.CancelFunc
}

// NewLoader creates a loader that fetches through f.
func NewLoader[K comparable](name string, f Fetcher) *Loader[K] {
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader[K]{
		Name:    name,
		fetcher: f,
		handles: make(map[K]*Handle[K]),
		pending: mapset.New[K](),
		done:    make(chan completion[K], 64),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Request returns the handle for key, starting a fetch of path the first
// time the key is seen. A non-nil onLoad replaces the handle's completion
// callback; it runs from Poll once the fetch settles, whether it succeeded or
// failed. Requests for keys already loaded or failed never fetch again.
func (l *Loader[K]) Request(key K, path string, onLoad func(*Handle[K])) *Handle[K] {
	h, ok := l.handles[key]
	if !ok {
		h = &Handle[K]{Key: key, Path: path}
		l.handles[key] = h
	}
	if onLoad != nil {
		h.onLoad = onLoad
	}
	if h.status != StatusUnrequested {
		return h
	}

	h.status = StatusLoading
	l.pending.Put(key)
	l.setInFlight(l.inFlight + 1)
	if err := l.ctx.Err(); err != nil {
		l.fail(h, err)
		return h
	}

	go func() {
		img, err := l.fetcher.Fetch(l.ctx, path)
		select {
		case l.done <- completion[K]{handle: h, img: img, err: err}:
		case <-l.ctx.Done():
		}
	}()
	return h
}

// Lookup returns the handle for key, or nil if it was never requested.
func (l *Loader[K]) Lookup(key K) *Handle[K] {
	return l.handles[key]
}

// Poll applies every completion that has arrived without blocking and
// returns how many were applied.
func (l *Loader[K]) Poll() int {
	n := 0
	for {
		select {
		case c := <-l.done:
			l.complete(c)
			n++
		default:
			return n
		}
	}
}

// Wait blocks until at least one completion arrives (or ctx ends), then
// applies it and any others already queued.
func (l *Loader[K]) Wait(ctx context.Context) (int, error) {
	if l.inFlight == 0 {
		return 0, nil
	}
	select {
	case c := <-l.done:
		l.complete(c)
		return 1 + l.Poll(), nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// WaitIdle applies completions until nothing is in flight.
func (l *Loader[K]) WaitIdle(ctx context.Context) error {
	for l.inFlight > 0 {
		if _, err := l.Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader[K]) complete(c completion[K]) {
	h := c.handle
	if h.status != StatusLoading {
		// Already settled by Close.
		return
	}
	if c.err != nil {
		if !errors.Is(c.err, context.Canceled) {
			log.Printf("Warning: %s %s failed to load: %v", l.Name, h.Path, c.err)
		}
		l.fail(h, c.err)
	} else {
		l.pending.Remove(h.Key)
		h.status = StatusLoaded
		h.img = c.img
		l.loaded++
		l.setInFlight(l.inFlight - 1)
	}
	if h.onLoad != nil {
		h.onLoad(h)
	}
}

// fail settles a loading handle as failed.
func (l *Loader[K]) fail(h *Handle[K], err error) {
	l.pending.Remove(h.Key)
	h.status = StatusFailed
	h.err = err
	l.failed++
	l.setInFlight(l.inFlight - 1)
}

// InFlight returns the number of fetches that have not completed yet.
func (l *Loader[K]) InFlight() int { return l.inFlight }

// Pending calls fn for every key whose fetch is still outstanding.
func (l *Loader[K]) Pending(fn func(K)) { l.pending.Each(fn) }

// OnInFlightChange registers fn to be called with the new count every time
// the in-flight counter changes.
func (l *Loader[K]) OnInFlightChange(fn func(inFlight int)) {
	l.watchers = append(l.watchers, fn)
}

func (l *Loader[K]) setInFlight(n int) {
	l.inFlight = n
	for _, fn := range l.watchers {
		fn(n)
	}
}

// Stats reports how many keys were requested, loaded and failed.
func (l *Loader[K]) Stats() (requested, loaded, failed int) {
	return len(l.handles), l.loaded, l.failed
}

// Close cancels outstanding fetches and settles their handles as failed
// with context.Canceled, without running completion callbacks, so InFlight
// drops to zero. Keys first requested after Close fail immediately.
func (l *Loader[K]) Close() {
	l.cancel()
	var keys []K
	l.pending.Each(func(k K) { keys = append(keys, k) })
	for _, k := range keys {
		l.fail(l.handles[k], context.Canceled)
	}
}
