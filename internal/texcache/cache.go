// Package texcache memoises texture synthesis by request.
//
// Synthesis cost grows with the square of the resolution, so the render
// loop and the HTTP server go through a [Cache] instead of calling the
// synthesizer directly. Concurrent requests for the same texture share
// one synthesis.
package texcache

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/san-kum/orrery/internal/texture"
)

// DefaultCapacity holds every catalog texture plus rings at two sizes.
const DefaultCapacity = 32

// Recorder observes cache behaviour.
type Recorder interface {
	CacheHit(t texture.Type)
	CacheMiss(t texture.Type)
	Synthesized(t texture.Type, d time.Duration)
	Evicted()
}

type nopRecorder struct{}

func (nopRecorder) CacheHit(texture.Type)                   {}
func (nopRecorder) CacheMiss(texture.Type)                  {}
func (nopRecorder) Synthesized(texture.Type, time.Duration) {}
func (nopRecorder) Evicted()                                {}

// GenerateFunc produces one texture.
type GenerateFunc func(texture.Request) (*image.NRGBA, error)

type Option func(*Cache)

func WithRecorder(r Recorder) Option {
	return func(c *Cache) {
		if r != nil {
			c.rec = r
		}
	}
}

func WithGenerator(fn GenerateFunc) Option {
	return func(c *Cache) {
		if fn != nil {
			c.generate = fn
		}
	}
}

// Cache is a bounded first-in first-out texture cache. Images it returns
// are shared and must not be modified.
type Cache struct {
	mu       sync.Mutex
	entries  map[texture.Request]*image.NRGBA
	order    []texture.Request
	capacity int

	group    singleflight.Group
	rec      Recorder
	generate GenerateFunc
}

func New(capacity int, opts ...Option) *Cache {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	c := &Cache{
		entries:  make(map[texture.Request]*image.NRGBA, capacity),
		capacity: capacity,
		rec:      nopRecorder{},
		generate: texture.Generate,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the texture for req, synthesizing it on a miss. Failed
// syntheses are not cached.
func (c *Cache) Get(req texture.Request) (*image.NRGBA, error) {
	if img, ok := c.lookup(req); ok {
		c.rec.CacheHit(req.Type)
		return img, nil
	}
	c.rec.CacheMiss(req.Type)

	v, err, _ := c.group.Do(key(req), func() (any, error) {
		// a flight for this key may have landed since the lookup
		if img, ok := c.lookup(req); ok {
			return img, nil
		}
		start := time.Now()
		img, err := c.generate(req)
		if err != nil {
			return nil, err
		}
		c.rec.Synthesized(req.Type, time.Since(start))
		c.put(req, img)
		return img, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*image.NRGBA), nil
}

func (c *Cache) lookup(req texture.Request) (*image.NRGBA, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	img, ok := c.entries[req]
	return img, ok
}

func (c *Cache) put(req texture.Request, img *image.NRGBA) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[req]; ok {
		return
	}
	for len(c.order) >= c.capacity {
		delete(c.entries, c.order[0])
		c.order = c.order[1:]
		c.rec.Evicted()
	}
	c.entries[req] = img
	c.order = append(c.order, req)
}

// Contains reports whether req is cached.
func (c *Cache) Contains(req texture.Request) bool {
	_, ok := c.lookup(req)
	return ok
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Bake fills the cache with reqs using at most workers goroutines. It
// stops at the first failure.
func (c *Cache) Bake(ctx context.Context, reqs []texture.Request, workers int) error {
	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, req := range reqs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if _, err := c.Get(req); err != nil {
				return fmt.Errorf("bake %s: %w", req.Type, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func key(r texture.Request) string {
	return fmt.Sprintf("%s|%s|%g|%d|%g|%t|%d|%g",
		r.Type, r.BaseColor, r.NoiseIntensity, r.Resolution, r.Detail, r.Moon, r.Seed, r.TimeSeed)
}
