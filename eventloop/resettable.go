package eventloop

import "time"

// Resettable holds at most one pending callback. Arming it again cancels the previous
// callback first, so a stale timer never fires after a newer state change.
type Resettable struct {
	sched Scheduler
	timer Timer
	gen   uint64
}

// NewResettable returns an idle Resettable bound to sched.
func NewResettable(sched Scheduler) *Resettable {
	return &Resettable{sched: sched}
}

// Reset cancels any pending callback and schedules fn after d.
func (r *Resettable) Reset(d time.Duration, fn func()) {
	r.Stop()

	r.gen++
	gen := r.gen
	r.timer = r.sched.AfterFunc(d, func() {
		if gen != r.gen {
			return
		}
		r.timer = nil
		fn()
	})
}

// Stop cancels the pending callback. It reports whether one was pending.
func (r *Resettable) Stop() bool {
	if r.timer == nil {
		return false
	}
	r.gen++
	stopped := r.timer.Stop()
	r.timer = nil
	return stopped
}

// Pending reports whether a callback is armed.
func (r *Resettable) Pending() bool {
	return r.timer != nil
}
