// Package eventloop provides the single-threaded dispatch model every playback component relies on.
//
// All component state is owned by one goroutine. Backends and timers never touch that state directly;
// they post closures which the loop runs one at a time, in order.
package eventloop

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
)

// Timer is a pending callback scheduled with AfterFunc.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call stopped the timer,
	// false if the callback already ran or the timer was already stopped.
	Stop() bool
}

// Scheduler runs callbacks on the owning loop after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Poster hands a closure to the owning loop.
type Poster interface {
	Post(fn func())
}

// Loop serializes posted closures and timer callbacks onto a single goroutine.
type Loop struct {
	clock clockwork.Clock
	post  func(func())

	mu      sync.Mutex
	pending []func()
	wake    chan struct{}
}

// New returns a Loop that owns its dispatch goroutine; call Run to start it.
// Its queue is unbounded, so Post never blocks the caller.
func New(clock clockwork.Clock) *Loop {
	l := &Loop{
		clock: clock,
		wake:  make(chan struct{}, 1),
	}
	l.post = l.enqueue
	return l
}

func (l *Loop) enqueue(fn func()) {
	l.mu.Lock()
	l.pending = append(l.pending, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Loop) drain() []func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	batch := l.pending
	l.pending = nil
	return batch
}

// NewWithPoster returns a Loop that delegates dispatch to post, for hosts that already run
// an event loop (a bubbletea program, for one).
func NewWithPoster(clock clockwork.Clock, post func(func())) *Loop {
	return &Loop{clock: clock, post: post}
}

// Post schedules fn to run on the loop.
func (l *Loop) Post(fn func()) {
	l.post(fn)
}

// Run dispatches queued closures until ctx is cancelled. Closures still queued then are dropped.
func (l *Loop) Run(ctx context.Context) error {
	if l.wake == nil {
		<-ctx.Done()
		return ctx.Err()
	}

	for {
		for _, fn := range l.drain() {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fn()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// AfterFunc posts fn to the loop once d has elapsed on the loop's clock.
// A stopped timer never runs fn, even when its callback is already queued.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{cancel: make(chan struct{})}

	go func() {
		select {
		case <-l.clock.After(d):
			l.Post(func() {
				if t.stopped.Load() {
					return
				}
				t.fired.Store(true)
				fn()
			})
		case <-t.cancel:
		}
	}()

	return t
}

type loopTimer struct {
	stopped atomic.Bool
	fired   atomic.Bool
	cancel  chan struct{}
	once    sync.Once
}

func (t *loopTimer) Stop() bool {
	if t.fired.Load() {
		return false
	}
	already := t.stopped.Swap(true)
	t.once.Do(func() { close(t.cancel) })
	return !already
}
