package session

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_CollapsesBursts(t *testing.T) {
	d := NewDebouncer(time.Hour)
	var runs []int
	for i := 1; i <= 3; i++ {
		i := i
		d.Trigger(func() { runs = append(runs, i) })
	}
	if !d.Pending() {
		t.Fatalf("expected pending job")
	}
	if !d.Flush() {
		t.Fatalf("expected flush to run a job")
	}
	if len(runs) != 1 || runs[0] != 3 {
		t.Fatalf("expected only the latest job to run, got %v", runs)
	}
	if d.Flush() {
		t.Fatalf("second flush should be a no-op")
	}
}

func TestDebouncer_FiresAfterDelay(t *testing.T) {
	d := NewDebouncer(5 * time.Millisecond)
	done := make(chan struct{})
	d.Trigger(func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("debounced job did not fire")
	}
	if d.Pending() {
		t.Fatalf("job should no longer be pending")
	}
}

func TestDebouncer_StopCancels(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var count atomic.Int32
	d.Trigger(func() { count.Add(1) })
	if !d.Stop() {
		t.Fatalf("expected stop to cancel a pending job")
	}
	time.Sleep(60 * time.Millisecond)
	if got := count.Load(); got != 0 {
		t.Fatalf("cancelled job ran %d times", got)
	}
}

func TestDebouncer_DefaultDelay(t *testing.T) {
	if got := NewDebouncer(0).Delay(); got != DefaultDelay {
		t.Fatalf("expected default delay, got %v", got)
	}
	if DefaultDelay != 500*time.Millisecond {
		t.Fatalf("unexpected default delay %v", DefaultDelay)
	}
}
