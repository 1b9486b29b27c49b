package gate

import (
	"context"
	"sync"
	"time"
)

// BaseDelay is the pacing delay at speed 1.
const BaseDelay = 400 * time.Millisecond

// MinDelay keeps very high speeds from skipping the animation entirely.
const MinDelay = time.Millisecond

// DelayFor maps a speed factor to the pacing delay: whole milliseconds of
// BaseDelay divided by speed. Speeds below 1 count as 1.
func DelayFor(speed int) time.Duration {
	if speed < 1 {
		speed = 1
	}
	d := time.Duration(int64(BaseDelay/time.Millisecond)/int64(speed)) * time.Millisecond
	if d < MinDelay {
		return MinDelay
	}
	return d
}

// Gate is the pause checkpoint in front of every compare and swap.
// Waiters block on a channel that is closed whenever the state changes.
type Gate struct {
	mu      sync.Mutex
	paused  bool
	permits int
	changed chan struct{}
}

func New() *Gate {
	return &Gate{changed: make(chan struct{})}
}

// broadcast wakes every waiter. Callers hold g.mu.
func (g *Gate) broadcast() {
	close(g.changed)
	g.changed = make(chan struct{})
}

func (g *Gate) Pause() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.paused {
		g.paused = true
		g.broadcast()
	}
}

func (g *Gate) Resume() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.paused {
		g.paused = false
		g.permits = 0
		g.broadcast()
	}
}

// Toggle flips the pause flag and returns the new value.
func (g *Gate) Toggle() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.paused = !g.paused
	g.permits = 0
	g.broadcast()
	return g.paused
}

func (g *Gate) Paused() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.paused
}

// Release lets exactly one waiting operation through while paused.
// It has no effect on a running gate.
func (g *Gate) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.paused {
		g.permits++
		g.broadcast()
	}
}

// Wait blocks while the gate is paused and returns ErrCancelled as soon as
// ctx is done.
func (g *Gate) Wait(ctx context.Context) error {
	if ctx.Err() != nil {
		return ErrCancelled
	}
	for {
		g.mu.Lock()
		if !g.paused {
			g.mu.Unlock()
			return nil
		}
		if g.permits > 0 {
			g.permits--
			g.mu.Unlock()
			return nil
		}
		ch := g.changed
		g.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ErrCancelled
		}
	}
}

// Sleeper pauses for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the default Sleeper.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		if ctx.Err() != nil {
			return ErrCancelled
		}
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ErrCancelled
	}
}
