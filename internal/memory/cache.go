package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const fillKey = "snapshot"

// errReadStalled is returned while an abandoned read is still blocked in the source.
var errReadStalled = errors.New("previous memory read still running")

// CacheOptions configures a Cache.
type CacheOptions struct {
	// ReadTimeout bounds a single underlying read (0 = no bound)
	ReadTimeout time.Duration

	// Observer receives read and snapshot events (may be nil)
	Observer Observer
}

// Cache holds the last memory snapshot for concurrent readers.
//
// Readers of a populated cache only take the read lock. When the cache is
// empty, concurrent readers share one underlying read through a singleflight
// group. writeMu is the exclusive write permit: it is held for the duration
// of any read-and-store, so a populating reader and a forced refresh never
// read the source at the same time. A read abandoned on timeout keeps the
// source busy until it returns; no new read starts before then.
type Cache struct {
	source Source
	opts   CacheOptions

	mu   sync.RWMutex
	snap *Snapshot

	writeMu sync.Mutex
	flight  singleflight.Group

	// stalled is closed when an abandoned read returns; guarded by writeMu
	stalled chan struct{}
}

// NewCache creates an empty cache backed by source.
func NewCache(source Source, opts CacheOptions) *Cache {
	return &Cache{
		source: source,
		opts:   opts,
	}
}

// Cached returns the stored snapshot without reading the source.
func (c *Cache) Cached() (Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.snap == nil {
		return Snapshot{}, false
	}
	return *c.snap, true
}

// Snapshot returns the cached snapshot, populating the cache first if it is
// empty. A failed population leaves the cache empty so the next call retries.
func (c *Cache) Snapshot(ctx context.Context) (Snapshot, error) {
	if snap, ok := c.Cached(); ok {
		return snap, nil
	}

	ch := c.flight.DoChan(fillKey, func() (interface{}, error) {
		return c.fill(ctx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return Snapshot{}, res.Err
		}
		return res.Val.(Snapshot), nil
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// Total returns total memory in bytes.
func (c *Cache) Total(ctx context.Context) (uint64, error) {
	snap, err := c.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	return snap.Total, nil
}

// Available returns available memory in bytes.
func (c *Cache) Available(ctx context.Context) (uint64, error) {
	snap, err := c.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	return snap.Available, nil
}

// Refresh always reads the source and replaces the cached snapshot. On
// failure the previous snapshot, if any, is kept.
func (c *Cache) Refresh(ctx context.Context) (Snapshot, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	readCtx, cancel := c.readContext(ctx)
	defer cancel()

	snap, err := c.read(readCtx, "refresh")
	if err != nil {
		return Snapshot{}, err
	}

	c.store(snap)
	return snap, nil
}

// fill runs inside the singleflight group. The read is detached from the
// first caller's cancellation since other callers may be waiting on it.
func (c *Cache) fill(ctx context.Context) (Snapshot, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	// A refresh may have stored a snapshot while we waited for the permit
	if snap, ok := c.Cached(); ok {
		return snap, nil
	}

	readCtx, cancel := c.readContext(context.WithoutCancel(ctx))
	defer cancel()

	snap, err := c.read(readCtx, "fill")
	if err != nil {
		return Snapshot{}, err
	}

	c.store(snap)
	return snap, nil
}

func (c *Cache) store(snap Snapshot) {
	c.mu.Lock()
	c.snap = &snap
	c.mu.Unlock()

	if c.opts.Observer != nil {
		c.opts.Observer.ObserveSnapshot(snap)
	}
}

func (c *Cache) readContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.opts.ReadTimeout > 0 {
		return context.WithTimeout(ctx, c.opts.ReadTimeout)
	}
	return context.WithCancel(ctx)
}

type readResult struct {
	snap Snapshot
	err  error
}

// read runs one source read on its own goroutine and waits for it or for ctx.
// Every error it returns wraps ErrSourceUnavailable. The caller holds writeMu.
func (c *Cache) read(ctx context.Context, kind string) (Snapshot, error) {
	start := time.Now()

	res := c.readOnce(ctx)
	if res.err != nil && !errors.Is(res.err, ErrSourceUnavailable) {
		res.err = fmt.Errorf("%w: %w", ErrSourceUnavailable, res.err)
	}

	if c.opts.Observer != nil {
		c.opts.Observer.ObserveRead(kind, time.Since(start).Seconds(), res.err)
	}

	return res.snap, res.err
}

func (c *Cache) readOnce(ctx context.Context) readResult {
	if c.stalled != nil {
		select {
		case <-c.stalled:
			c.stalled = nil
		default:
			return readResult{err: errReadStalled}
		}
	}

	done := make(chan readResult, 1)
	finished := make(chan struct{})

	go func() {
		defer close(finished)

		snap, err := c.source.Read(ctx)
		if err == nil {
			snap, err = NewSnapshot(snap.Total, snap.Available)
		}
		done <- readResult{snap: snap, err: err}
	}()

	select {
	case res := <-done:
		return res
	case <-ctx.Done():
		c.stalled = finished
		return readResult{err: ctx.Err()}
	}
}
