package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestScheduledTaskRuns(t *testing.T) {
	var runs atomic.Int32

	Every(time.Minute).Name("test-task").Run(func() {
		runs.Add(1)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	Start(ctx)

	// The first run fires on the first tick.
	deadline := time.After(5 * time.Second)
	for runs.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("task never ran")
		case <-time.After(100 * time.Millisecond):
		}
	}
}

func TestWithoutOverlapping(t *testing.T) {
	block := make(chan struct{})
	var started atomic.Int32

	e := &entry{interval: time.Millisecond, noOverlap: true, id: "blocking", task: func() {
		started.Add(1)
		<-block
	}}

	dispatch(e)
	dispatch(e) // skipped: previous run still holds the entry

	time.Sleep(200 * time.Millisecond)
	if got := started.Load(); got != 1 {
		t.Fatalf("started = %d, want 1", got)
	}
	close(block)
}

func TestList(t *testing.T) {
	Every(time.Hour).Name("listed").Run(func() {})

	var found bool
	for _, s := range List() {
		if s == "listed  [1h0m0s]" {
			found = true
		}
	}
	if !found {
		t.Fatalf("List() = %v, missing registered entry", List())
	}
}
