package memory

import (
	"context"
	"sync"
	"sync/atomic"
)

// =============================================================================
// Scripted memory source
// =============================================================================

// scriptedSource counts reads and delegates to readFn with the 1-based call number.
type scriptedSource struct {
	calls  atomic.Int32
	readFn func(ctx context.Context, call int) (Snapshot, error)
}

func (s *scriptedSource) Read(ctx context.Context) (Snapshot, error) {
	n := int(s.calls.Add(1))
	return s.readFn(ctx, n)
}

func (s *scriptedSource) Calls() int {
	return int(s.calls.Load())
}

// fixedSource returns the same reading on every call.
func fixedSource(total, available uint64) *scriptedSource {
	return &scriptedSource{
		readFn: func(context.Context, int) (Snapshot, error) {
			return Snapshot{Total: total, Available: available}, nil
		},
	}
}

// sequenceSource returns readings in order, repeating the last one.
func sequenceSource(snaps ...Snapshot) *scriptedSource {
	return &scriptedSource{
		readFn: func(_ context.Context, call int) (Snapshot, error) {
			if call > len(snaps) {
				return snaps[len(snaps)-1], nil
			}
			return snaps[call-1], nil
		},
	}
}

// =============================================================================
// Recording notifier
// =============================================================================

type memoryCall struct {
	total uint64
	used  uint64
}

type recordingNotifier struct {
	mu         sync.Mutex
	memory     []memoryCall
	selfErrors []string

	memoryErr error
	selfErr   error

	// memoryFn, when set, replaces the default NotifyMemory behavior
	memoryFn func(ctx context.Context) error
	// onMemory is signaled (non-blocking) after every NotifyMemory call
	onMemory chan struct{}
}

func (n *recordingNotifier) NotifyMemory(ctx context.Context, total, used uint64) error {
	n.mu.Lock()
	n.memory = append(n.memory, memoryCall{total: total, used: used})
	err := n.memoryErr
	fn := n.memoryFn
	n.mu.Unlock()

	if fn != nil {
		err = fn(ctx)
	}

	if n.onMemory != nil {
		select {
		case n.onMemory <- struct{}{}:
		default:
		}
	}
	return err
}

func (n *recordingNotifier) NotifySelfError(_ context.Context, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.selfErrors = append(n.selfErrors, message)
	return n.selfErr
}

func (n *recordingNotifier) MemoryCalls() []memoryCall {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]memoryCall(nil), n.memory...)
}

func (n *recordingNotifier) SelfErrors() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.selfErrors...)
}

// =============================================================================
// Recording observer
// =============================================================================

type notifyEvent struct {
	kind string
	err  error
}

type recordingObserver struct {
	mu        sync.Mutex
	reads     map[string]int
	readErrs  int
	snapshots []Snapshot
	ticks     int
	notifies  []notifyEvent
	gate      []bool
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{reads: make(map[string]int)}
}

func (o *recordingObserver) ObserveRead(kind string, _ float64, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.reads[kind]++
	if err != nil {
		o.readErrs++
	}
}

func (o *recordingObserver) ObserveSnapshot(s Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.snapshots = append(o.snapshots, s)
}

func (o *recordingObserver) ObserveTick() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ticks++
}

func (o *recordingObserver) ObserveNotify(kind string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.notifies = append(o.notifies, notifyEvent{kind: kind, err: err})
}

func (o *recordingObserver) ObserveGate(enabled bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.gate = append(o.gate, enabled)
}
