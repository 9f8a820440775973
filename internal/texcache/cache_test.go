package texcache

import (
	"context"
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/san-kum/orrery/internal/texture"
)

type countingGen struct {
	calls atomic.Int64
	delay time.Duration
}

func (g *countingGen) generate(req texture.Request) (*image.NRGBA, error) {
	g.calls.Add(1)
	time.Sleep(g.delay)
	if req.Resolution < 0 {
		return nil, texture.ErrResolution
	}
	return image.NewNRGBA(image.Rect(0, 0, req.Resolution, req.Resolution)), nil
}

type fakeRecorder struct {
	mu                         sync.Mutex
	hits, misses, synth, evict int
}

func (r *fakeRecorder) CacheHit(texture.Type) {
	r.mu.Lock()
	r.hits++
	r.mu.Unlock()
}

func (r *fakeRecorder) CacheMiss(texture.Type) {
	r.mu.Lock()
	r.misses++
	r.mu.Unlock()
}

func (r *fakeRecorder) Synthesized(texture.Type, time.Duration) {
	r.mu.Lock()
	r.synth++
	r.mu.Unlock()
}

func (r *fakeRecorder) Evicted() {
	r.mu.Lock()
	r.evict++
	r.mu.Unlock()
}

func req(res int) texture.Request {
	r := texture.DefaultRequest()
	r.Resolution = res
	return r
}

func TestGetMemoises(t *testing.T) {
	gen := &countingGen{}
	rec := &fakeRecorder{}
	c := New(4, WithGenerator(gen.generate), WithRecorder(rec))

	a, err := c.Get(req(8))
	if err != nil {
		t.Fatal(err)
	}
	b, _ := c.Get(req(8))
	if a != b {
		t.Error("expected the same image on a hit")
	}
	if n := gen.calls.Load(); n != 1 {
		t.Errorf("expected 1 synthesis, got %d", n)
	}
	if rec.hits != 1 || rec.misses != 1 || rec.synth != 1 {
		t.Errorf("unexpected recorder counts %+v", rec)
	}
}

func TestEvictsOldestFirst(t *testing.T) {
	gen := &countingGen{}
	rec := &fakeRecorder{}
	c := New(2, WithGenerator(gen.generate), WithRecorder(rec))

	c.Get(req(1))
	c.Get(req(2))
	c.Get(req(3))

	if c.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", c.Len())
	}
	if c.Contains(req(1)) {
		t.Error("expected the oldest entry to be evicted")
	}
	if !c.Contains(req(2)) || !c.Contains(req(3)) {
		t.Error("expected the newest entries to stay")
	}
	if rec.evict != 1 {
		t.Errorf("expected 1 eviction, got %d", rec.evict)
	}
}

func TestErrorsNotCached(t *testing.T) {
	gen := &countingGen{}
	c := New(2, WithGenerator(gen.generate))

	if _, err := c.Get(req(-1)); !errors.Is(err, texture.ErrResolution) {
		t.Errorf("expected ErrResolution, got %v", err)
	}
	c.Get(req(-1))
	if n := gen.calls.Load(); n != 2 {
		t.Errorf("expected failures to be retried, got %d calls", n)
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d", c.Len())
	}
}

func TestConcurrentGetSharesWork(t *testing.T) {
	gen := &countingGen{delay: 50 * time.Millisecond}
	c := New(4, WithGenerator(gen.generate))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Get(req(4)); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if n := gen.calls.Load(); n != 1 {
		t.Errorf("expected one shared synthesis, got %d", n)
	}
}

func TestBake(t *testing.T) {
	gen := &countingGen{}
	c := New(8, WithGenerator(gen.generate))

	reqs := []texture.Request{req(1), req(2), req(3), req(2)}
	if err := c.Bake(context.Background(), reqs, 3); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if c.Len() != 3 {
		t.Errorf("expected 3 entries, got %d", c.Len())
	}
}

func TestBakeStopsOnError(t *testing.T) {
	gen := &countingGen{}
	c := New(8, WithGenerator(gen.generate))

	err := c.Bake(context.Background(), []texture.Request{req(1), req(-1)}, 1)
	if !errors.Is(err, texture.ErrResolution) {
		t.Errorf("expected ErrResolution, got %v", err)
	}
}

func TestBakeCancelled(t *testing.T) {
	c := New(8, WithGenerator((&countingGen{}).generate))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.Bake(ctx, []texture.Request{req(1)}, 2); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRealSynthesis(t *testing.T) {
	c := New(2)
	r := req(16)
	r.Type = texture.Mars
	img, err := c.Get(r)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 16 {
		t.Errorf("expected 16 wide, got %d", img.Bounds().Dx())
	}
}
