// Package lock implements the countdown that keeps the break open for a minimum time.
package lock

import (
	"fmt"
	"time"

	"github.com/burhanyldz/zindekal/eventloop"
)

// Outcome is the result of a close attempt.
type Outcome int

const (
	Allowed Outcome = iota
	Locked
)

func (o Outcome) String() string {
	if o == Allowed {
		return "allowed"
	}
	return "locked"
}

// LockState is a snapshot of the countdown. CanClose holds exactly when Remaining is zero.
type LockState struct {
	CanClose  bool
	Remaining int
}

// Listener is told after every change of state, including each tick.
type Listener interface {
	LockChanged(state LockState)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(LockState)

func (f ListenerFunc) LockChanged(s LockState) { f(s) }

// Timer gates closing for a number of seconds.
type Timer struct {
	tick      *eventloop.Resettable
	remaining int
	listener  Listener
}

// New returns an unlocked timer.
func New(sched eventloop.Scheduler, listener Listener) *Timer {
	return &Timer{tick: eventloop.NewResettable(sched), listener: listener}
}

// Start cancels any running countdown and locks for seconds. Zero or less unlocks right away.
func (t *Timer) Start(seconds int) {
	t.tick.Stop()

	t.remaining = max(seconds, 0)
	if t.remaining > 0 {
		t.schedule()
	}
	t.notify()
}

func (t *Timer) schedule() {
	t.tick.Reset(time.Second, func() {
		t.remaining--
		if t.remaining > 0 {
			t.schedule()
		}
		t.notify()
	})
}

// Cancel stops the countdown and unlocks.
func (t *Timer) Cancel() {
	t.tick.Stop()
	if t.remaining == 0 {
		return
	}
	t.remaining = 0
	t.notify()
}

// AttemptClose reports whether closing may proceed.
func (t *Timer) AttemptClose() Outcome {
	if t.remaining > 0 {
		return Locked
	}
	return Allowed
}

// State returns the current snapshot.
func (t *Timer) State() LockState {
	return LockState{CanClose: t.remaining == 0, Remaining: t.remaining}
}

// Countdown formats the remaining time as m:ss.
func (t *Timer) Countdown() string {
	return FormatCountdown(t.remaining)
}

// FormatCountdown formats seconds as m:ss.
func FormatCountdown(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func (t *Timer) notify() {
	if t.listener != nil {
		t.listener.LockChanged(t.State())
	}
}
