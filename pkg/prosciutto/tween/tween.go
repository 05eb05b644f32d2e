// Package tween animates float values over time. An Animator is advanced by
// the host's frame loop through Update; nothing runs on its own goroutine.
// Each animation is represented by a Handle that can be cancelled and awaited.
package tween

import (
	"context"
	"time"

	"go.uber.org/atomic"
)

const (
	stateRunning int32 = iota
	stateCompleted
	stateCancelled
)

// Handle controls a single running tween.
type Handle struct {
	from, to   float64
	duration   time.Duration
	elapsed    time.Duration
	ease       Ease
	apply      func(float64)
	onComplete []func()

	state atomic.Int32
	done  chan struct{}
}

// Done is closed once the tween completes or is cancelled.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Completed reports whether the tween reached its end value.
func (h *Handle) Completed() bool {
	return h.state.Load() == stateCompleted
}

// Cancelled reports whether the tween was cancelled before finishing.
func (h *Handle) Cancelled() bool {
	return h.state.Load() == stateCancelled
}

// Running reports whether the tween is still in progress.
func (h *Handle) Running() bool {
	return h.state.Load() == stateRunning
}

// Cancel stops the tween where it is. OnComplete callbacks do not run.
func (h *Handle) Cancel() {
	if h.state.CompareAndSwap(stateRunning, stateCancelled) {
		close(h.done)
	}
}

// OnComplete registers fn to run when the tween reaches its end value.
// If it already has, fn runs immediately.
func (h *Handle) OnComplete(fn func()) *Handle {
	if h.Completed() {
		fn()
		return h
	}
	h.onComplete = append(h.onComplete, fn)
	return h
}

// Wait blocks until the tween finishes or ctx is done.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// finish applies the end value and marks the tween completed.
func (h *Handle) finish() {
	if !h.Running() {
		return
	}
	h.apply(h.to)
	if h.state.CompareAndSwap(stateRunning, stateCompleted) {
		close(h.done)
		for _, fn := range h.onComplete {
			fn()
		}
		h.onComplete = nil
	}
}

func (h *Handle) step(dt time.Duration) {
	h.elapsed += dt
	if h.elapsed >= h.duration {
		h.finish()
		return
	}
	progress := h.ease(float64(h.elapsed) / float64(h.duration))
	h.apply(h.from + (h.to-h.from)*progress)
}

// Animator owns the set of active tweens.
type Animator struct {
	active []*Handle
}

func NewAnimator() *Animator {
	return &Animator{}
}

// To starts tweening from -> to over duration, calling apply with every new
// value. A non-positive duration applies the end value immediately and returns
// a completed handle. A nil ease means Linear.
func (a *Animator) To(from, to float64, duration time.Duration, ease Ease, apply func(float64)) *Handle {
	if ease == nil {
		ease = Linear
	}
	if apply == nil {
		apply = func(float64) {}
	}
	h := &Handle{
		from:     from,
		to:       to,
		duration: duration,
		ease:     ease,
		apply:    apply,
		done:     make(chan struct{}),
	}

	if duration <= 0 {
		h.finish()
		return h
	}

	apply(from)
	a.active = append(a.active, h)
	return h
}

// Update advances every running tween by dt and drops finished ones. Tweens
// started from completion callbacks begin on the next Update.
func (a *Animator) Update(dt time.Duration) {
	if len(a.active) == 0 {
		return
	}
	current := a.active
	a.active = nil

	var running []*Handle
	for _, h := range current {
		if h.Running() {
			h.step(dt)
		}
		if h.Running() {
			running = append(running, h)
		}
	}
	a.active = append(running, a.active...)
}

// Complete jumps every running tween to its end value.
func (a *Animator) Complete() {
	current := a.active
	a.active = nil
	for _, h := range current {
		h.finish()
	}
}

// CancelAll cancels every running tween.
func (a *Animator) CancelAll() {
	current := a.active
	a.active = nil
	for _, h := range current {
		h.Cancel()
	}
}

// Active returns the number of tweens still running.
func (a *Animator) Active() int {
	n := 0
	for _, h := range a.active {
		if h.Running() {
			n++
		}
	}
	return n
}
