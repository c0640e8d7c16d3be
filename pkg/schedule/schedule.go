// Package schedule runs recurring maintenance tasks in the background.
//
// Usage:
//
//	schedule.Every(time.Hour).Name("purge-reset-tokens").Run(purge)
//	schedule.Start(ctx)
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Duvhier/jylclean-back/pkg/logger"
)

// Task is the function signature for a scheduled task.
type Task func()

type entry struct {
	id        string
	interval  time.Duration
	task      Task
	lastRun   time.Time
	running   bool
	noOverlap bool
	mu        sync.Mutex
}

// Schedule is a fluent builder for one entry before it is registered.
type Schedule struct {
	e *entry
}

var (
	regMu   sync.Mutex
	entries []*entry
)

// Every starts a builder for a task that runs on the given interval.
// The first run fires on the first tick after Start.
func Every(interval time.Duration) *Schedule {
	return &Schedule{e: &entry{interval: interval}}
}

// WithoutOverlapping skips a run while the previous one is still executing.
func (s *Schedule) WithoutOverlapping() *Schedule {
	s.e.noOverlap = true
	return s
}

// Name gives the entry an identifier for logging.
func (s *Schedule) Name(id string) *Schedule {
	s.e.id = id
	return s
}

// Run registers the task. Call Start to begin dispatching.
func (s *Schedule) Run(fn Task) {
	s.e.task = fn
	regMu.Lock()
	if s.e.id == "" {
		s.e.id = fmt.Sprintf("task-%d", len(entries)+1)
	}
	entries = append(entries, s.e)
	regMu.Unlock()
}

// Start begins the scheduler loop in the background. It stops when ctx
// is cancelled.
func Start(ctx context.Context) {
	go run(ctx)
	logger.Info("schedule: scheduler started")
}

func run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("schedule: scheduler stopped")
			return
		case now := <-ticker.C:
			regMu.Lock()
			current := make([]*entry, len(entries))
			copy(current, entries)
			regMu.Unlock()

			for _, e := range current {
				if e.due(now) {
					dispatch(e)
				}
			}
		}
	}
}

func (e *entry) due(now time.Time) bool {
	if e.lastRun.IsZero() {
		return true
	}
	return now.Sub(e.lastRun) >= e.interval
}

func dispatch(e *entry) {
	e.mu.Lock()
	if e.noOverlap && e.running {
		e.mu.Unlock()
		logger.Warn("schedule: skipping overlapping task", "id", e.id)
		return
	}
	e.running = true
	e.lastRun = time.Now()
	e.mu.Unlock()

	go func() {
		defer func() {
			e.mu.Lock()
			e.running = false
			e.mu.Unlock()
			if r := recover(); r != nil {
				logger.Error("schedule: task panicked", "id", e.id, "panic", r)
			}
		}()
		e.task()
	}()
}

// List returns the registered entries for CLI display.
func List() []string {
	regMu.Lock()
	defer regMu.Unlock()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, fmt.Sprintf("%s  [%s]", e.id, e.interval))
	}
	return out
}
