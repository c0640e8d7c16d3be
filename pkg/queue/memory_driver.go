package queue

import (
	"context"
	"errors"
)

// ErrQueueFull is returned when the in-memory buffer has no room left.
var ErrQueueFull = errors.New("queue: memory buffer full")

// MemoryDriver is an in-process, channel-backed driver. It is the
// default when no Redis is configured; jobs do not survive a restart.
type MemoryDriver struct {
	ch chan []byte
}

// NewMemoryDriver returns a driver buffering up to capacity jobs.
// A capacity below 1 falls back to 1000.
func NewMemoryDriver(capacity int) *MemoryDriver {
	if capacity < 1 {
		capacity = 1000
	}
	return &MemoryDriver{ch: make(chan []byte, capacity)}
}

// Push enqueues without blocking. A full buffer is an error so a stuck
// worker pool cannot wedge request handlers.
func (d *MemoryDriver) Push(payload []byte) error {
	select {
	case d.ch <- payload:
		return nil
	default:
		return ErrQueueFull
	}
}

// Pop blocks until a job arrives or ctx is cancelled.
func (d *MemoryDriver) Pop(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case payload := <-d.ch:
		return payload, nil
	}
}
