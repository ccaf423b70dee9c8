package player

import (
	"context"

	"github.com/burhanyldz/zindekal/eventloop"
	"github.com/jonboulle/clockwork"
)

// relay forwards closures from an IPC listener to the owning loop in order.
// mpvipc calls listeners with its connection lock held, and the owning loop may be
// waiting on that connection, so the listener only queues and a goroutine of the relay
// does the blocking Post.
type relay struct {
	queue  *eventloop.Loop
	target eventloop.Poster
	stop   context.CancelFunc
}

func newRelay(target eventloop.Poster) *relay {
	ctx, cancel := context.WithCancel(context.Background())
	r := &relay{
		queue:  eventloop.New(clockwork.NewRealClock()),
		target: target,
		stop:   cancel,
	}
	go func() { _ = r.queue.Run(ctx) }()
	return r
}

// Post queues fn for the owning loop without blocking.
func (r *relay) Post(fn func()) {
	r.queue.Post(func() { r.target.Post(fn) })
}

// close stops forwarding; queued closures are dropped.
func (r *relay) close() {
	r.stop()
}
