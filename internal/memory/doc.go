// Package memory samples host memory and raises alerts when usage crosses a
// configured ratio.
//
// # Overview
//
// Four pieces cooperate:
//
//   - [Source] reads total and available memory from the operating system.
//     [NewSystemSource] returns a gopsutil-backed source on supported platforms.
//   - [Cache] holds the last [Snapshot] for any number of concurrent readers.
//     An empty cache is populated by exactly one underlying read shared by
//     every reader waiting on it.
//   - [Watch] refreshes the cache on a fixed interval, computes the used
//     ratio and calls the [Notifier] when the ratio is above the limit.
//   - [Gate] switches alerting on and off without any locking.
//
// # Usage
//
//	cache := memory.NewCache(memory.NewSystemSource(), memory.CacheOptions{})
//	gate := memory.NewGate(true, nil)
//	watch, err := memory.NewWatch(memory.DefaultConfig(), cache, gate, notifier, nil)
//	if err != nil {
//	    return err
//	}
//	go watch.Run(ctx)
//
//	// elsewhere, on demand
//	total, err := cache.Total(ctx)
//
// # Failure handling
//
// A failed read inside the watch is reported through
// [Notifier.NotifySelfError] and the tick is skipped; the previously cached
// snapshot stays in place. Readers calling [Cache.Snapshot] on an empty cache
// receive an error wrapping [ErrSourceUnavailable] and the next call retries.
// Notifier failures are logged and never retried within a tick.
package memory
