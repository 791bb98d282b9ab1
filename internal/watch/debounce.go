package watch

import (
	"sync"
	"time"
)

// Debouncer collects changes and flushes them once no new change has
// arrived for the delay of the most recent change's kind.
type Debouncer struct {
	pending  []Change
	timer    *time.Timer
	mu       sync.Mutex
	onFlush  func([]Change)
	delay    time.Duration
	manifest time.Duration
	stopped  bool
}

// NewDebouncer creates a debouncer. Manifest edits wait manifestDelay, which
// lets package managers finish rewriting lockfiles.
func NewDebouncer(delay, manifestDelay time.Duration, onFlush func([]Change)) *Debouncer {
	return &Debouncer{
		onFlush:  onFlush,
		delay:    delay,
		manifest: manifestDelay,
	}
}

// Add queues a change and restarts the quiet-period timer.
func (d *Debouncer) Add(change Change) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.pending = append(d.pending, change)

	if d.timer != nil {
		d.timer.Stop()
	}

	delay := d.delay
	if change.Kind == KindManifest {
		delay = d.manifest
	}
	d.timer = time.AfterFunc(delay, d.flush)
}

func (d *Debouncer) flush() {
	d.mu.Lock()
	if d.stopped || len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}
	batch := d.pending
	d.pending = nil
	d.mu.Unlock()

	d.onFlush(batch)
}

// Stop cancels any pending flush. Queued changes are dropped.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = nil
}
