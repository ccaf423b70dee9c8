package eventloop

import "time"

// Manual is a deterministic Scheduler driven by Advance. Callbacks run synchronously on the
// goroutine calling Advance, in deadline order. Posted closures run immediately.
type Manual struct {
	now    time.Duration
	seq    int
	timers []*manualTimer
}

// NewManual returns a Manual scheduler at elapsed time zero.
func NewManual() *Manual {
	return &Manual{}
}

type manualTimer struct {
	at      time.Duration
	seq     int
	fn      func()
	done    bool
	stopped bool
}

func (t *manualTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	t.stopped = true
	return true
}

// AfterFunc schedules fn at the current elapsed time plus d.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{at: m.now + d, seq: m.seq, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

// Post runs fn immediately.
func (m *Manual) Post(fn func()) {
	fn()
}

// Advance moves time forward by d, firing every timer that falls due, including
// timers scheduled by callbacks during the advance.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d

	for {
		next := m.earliest(target)
		if next == nil {
			break
		}
		m.now = next.at
		next.done = true
		next.fn()
	}

	m.now = target
	m.compact()
}

// Elapsed returns the total time advanced so far.
func (m *Manual) Elapsed() time.Duration {
	return m.now
}

// Pending returns the number of timers that have neither fired nor been stopped.
func (m *Manual) Pending() int {
	var n int
	for _, t := range m.timers {
		if !t.done {
			n++
		}
	}
	return n
}

func (m *Manual) earliest(limit time.Duration) *manualTimer {
	var best *manualTimer
	for _, t := range m.timers {
		if t.done || t.at > limit {
			continue
		}
		if best == nil || t.at < best.at || (t.at == best.at && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (m *Manual) compact() {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.done {
			live = append(live, t)
		}
	}
	m.timers = live
}
