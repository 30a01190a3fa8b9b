package session

import (
	"sync"
	"time"
)

// DefaultDelay is the pause after the last edit before a regeneration runs.
const DefaultDelay = 500 * time.Millisecond

// Debouncer collapses bursts of triggers into one run. A new trigger cancels
// the pending timer before scheduling, so at most one run is pending and it
// always executes the most recently supplied job.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	gen     uint64
	pending func()
}

// NewDebouncer returns a debouncer waiting delay after the last trigger.
// Non-positive delays fall back to DefaultDelay.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay}
}

// Delay reports the configured wait.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Trigger schedules job, replacing any pending one.
func (d *Debouncer) Trigger(job func()) {
	if job == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = job
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	// A stale timer can still fire after Stop lost the race; the generation
	// check drops it.
	if gen != d.gen || d.pending == nil {
		d.mu.Unlock()
		return
	}
	job := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	job()
}

// Flush runs the pending job immediately on the caller's goroutine. It
// reports whether a job was pending.
func (d *Debouncer) Flush() bool {
	job := d.take()
	if job == nil {
		return false
	}
	job()
	return true
}

// Stop cancels the pending job without running it.
func (d *Debouncer) Stop() bool {
	return d.take() != nil
}

// Pending reports whether a job is waiting.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

func (d *Debouncer) take() func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	job := d.pending
	d.pending = nil
	return job
}
