// Package active arbitrates which single media source owns playback precedence.
package active

import (
	"github.com/burhanyldz/zindekal/log"
	"github.com/burhanyldz/zindekal/media"
)

// Participant is a media source that can hold the active handle.
type Participant interface {
	SourceID() media.SourceID

	// Tab returns the tab whose view hosts the participant, or "" when it is not tab bound.
	Tab() media.Tab

	// Deactivate gives up playback. Videos tear their surface down; audio merely pauses.
	// The coordinator has already cleared its handle when Deactivate runs.
	Deactivate()
}

// Coordinator holds the active handle. It never owns player resources.
type Coordinator struct {
	holder Participant

	// OnChange, if set, is called after every change of holder with the new holder id
	// ("" when cleared).
	OnChange func(media.SourceID)
}

// New returns a coordinator with no holder.
func New() *Coordinator {
	return &Coordinator{}
}

// RequestActivate grants the handle to p, deactivating a different holder first.
// Re-requesting for the current holder is a no-op. Two participants playing the same src
// are still distinct holders.
func (c *Coordinator) RequestActivate(p Participant) {
	if p == nil || c.holder == p {
		return
	}

	if prev := c.holder; prev != nil {
		c.holder = nil
		log.Debugf("active: %s yields to %s", prev.SourceID(), p.SourceID())
		prev.Deactivate()
	}

	c.holder = p
	c.changed()
}

// Release clears the handle only when id is the current holder.
func (c *Coordinator) Release(id media.SourceID) bool {
	if c.holder == nil || c.holder.SourceID() != id {
		return false
	}

	c.holder = nil
	c.changed()
	return true
}

// LeaveTab deactivates a live video hosted by tab. Audio keeps playing across tabs.
func (c *Coordinator) LeaveTab(tab media.Tab) bool {
	return c.DeactivateIf(func(p Participant) bool {
		return p.SourceID().IsVideo() && p.Tab() == tab
	})
}

// DeactivateIf deactivates the holder when pred accepts it.
func (c *Coordinator) DeactivateIf(pred func(Participant) bool) bool {
	if c.holder == nil || !pred(c.holder) {
		return false
	}

	prev := c.holder
	c.holder = nil
	prev.Deactivate()
	c.changed()
	return true
}

// Stop deactivates whatever holds the handle.
func (c *Coordinator) Stop() {
	c.DeactivateIf(func(Participant) bool { return true })
}

// Active returns the id of the current holder.
func (c *Coordinator) Active() (media.SourceID, bool) {
	if c.holder == nil {
		return "", false
	}
	return c.holder.SourceID(), true
}

// Holder returns the current holder, or nil.
func (c *Coordinator) Holder() Participant {
	return c.holder
}

func (c *Coordinator) changed() {
	if c.OnChange == nil {
		return
	}

	var id media.SourceID
	if c.holder != nil {
		id = c.holder.SourceID()
	}
	c.OnChange(id)
}
