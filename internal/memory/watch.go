package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"memwatch/internal/logging"
)

// State is the lifecycle state of a Watch.
type State int32

const (
	// StateIdle is the state before Run is called
	StateIdle State = iota
	// StateRunning is the state while the tick loop runs
	StateRunning
	// StateStopped is the state after Run has returned
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("unknown(%d)", int32(s))
	}
}

// Status is a point-in-time view of the watch for health reporting.
type Status struct {
	State     State
	Ticks     uint64
	LastTick  time.Time
	LastError string
}

// Watch samples memory on a fixed interval, keeps the shared cache fresh and
// raises alerts when usage is above the configured ratio.
type Watch struct {
	config   Config
	cache    *Cache
	gate     *Gate
	notifier Notifier
	observer Observer

	state atomic.Int32

	mu        sync.RWMutex
	ticks     uint64
	lastTick  time.Time
	lastError string
}

// NewWatch creates a watch. The cache is shared with any number of readers;
// the gate may be toggled from anywhere while the watch runs.
func NewWatch(config Config, cache *Cache, gate *Gate, notifier Notifier, obs Observer) (*Watch, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if cache == nil || gate == nil || notifier == nil {
		return nil, fmt.Errorf("%w: cache, gate and notifier are required", ErrInvalidConfig)
	}

	return &Watch{
		config:   config,
		cache:    cache,
		gate:     gate,
		notifier: notifier,
		observer: obs,
	}, nil
}

// Run ticks until ctx is done. The first tick happens immediately; ticks
// never overlap, so a slow notifier delays the next tick instead.
func (w *Watch) Run(ctx context.Context) error {
	if !w.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return fmt.Errorf("memory watch already started (state %s)", w.State())
	}
	defer w.state.Store(int32(StateStopped))

	logging.Info("Memory watch started: interval=%s, max ratio=%.2f", w.config.CheckInterval, w.config.MaxUsedRatio)

	ticker := time.NewTicker(w.config.CheckInterval)
	defer ticker.Stop()

	w.tick(ctx)

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			logging.Info("Memory watch stopped")
			return ctx.Err()
		}
	}
}

// State returns the current lifecycle state.
func (w *Watch) State() State {
	return State(w.state.Load())
}

// Status returns tick counters and the last error for health reporting.
func (w *Watch) Status() Status {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return Status{
		State:     w.State(),
		Ticks:     w.ticks,
		LastTick:  w.lastTick,
		LastError: w.lastError,
	}
}

// Config returns the watch configuration.
func (w *Watch) Config() Config {
	return w.config
}

func (w *Watch) tick(ctx context.Context) {
	snap, err := w.cache.Refresh(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}

		logging.Error("Get memory info failed: %v", err)
		w.recordTick(err)

		msg := fmt.Sprintf("get memory info failed: %v", err)
		w.notify(ctx, "self_error", func(ctx context.Context) error {
			return w.notifier.NotifySelfError(ctx, msg)
		})
		return
	}

	w.recordTick(nil)

	ratio := snap.UsedRatio()
	if ratio <= w.config.MaxUsedRatio {
		logging.Debug("Memory usage %.1f%% within limit %.1f%%", ratio*100, w.config.MaxUsedRatio*100)
		return
	}

	if !w.gate.Enabled() {
		logging.Debug("Memory usage %.1f%% above limit, alerts disabled", ratio*100)
		return
	}

	logging.Warn("Memory usage %.1f%% above limit %.1f%% (used %s of %s)",
		ratio*100, w.config.MaxUsedRatio*100, FormatBytes(snap.Used()), FormatBytes(snap.Total))

	w.notify(ctx, "memory", func(ctx context.Context) error {
		return w.notifier.NotifyMemory(ctx, snap.Total, snap.Used())
	})
}

// notify makes one best-effort notifier call. Failures are logged and
// never retried within the tick.
func (w *Watch) notify(ctx context.Context, kind string, call func(context.Context) error) {
	if w.config.NotifyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.config.NotifyTimeout)
		defer cancel()
	}

	err := call(ctx)
	if err != nil && !errors.Is(err, ErrNotifyFailed) {
		err = fmt.Errorf("%w: %w", ErrNotifyFailed, err)
	}

	if w.observer != nil {
		w.observer.ObserveNotify(kind, err)
	}

	if err != nil {
		logging.Error("Notify %s failed: %v", kind, err)
	}
}

func (w *Watch) recordTick(err error) {
	w.mu.Lock()
	w.ticks++
	w.lastTick = time.Now()
	if err != nil {
		w.lastError = err.Error()
	} else {
		w.lastError = ""
	}
	w.mu.Unlock()

	if w.observer != nil {
		w.observer.ObserveTick()
	}
}
