package slot

import (
	"github.com/burhanyldz/zindekal/media"
	"github.com/samber/lo"
)

type slotKey struct {
	tab media.Tab
	id  string
}

// Set holds the slots of one session, keyed by owning tab and video ID.
type Set struct {
	env   *Env
	slots map[slotKey]*Slot
	order []*Slot
}

// NewSet returns an empty set sharing env between its slots.
func NewSet(env *Env) *Set {
	return &Set{env: env, slots: make(map[slotKey]*Slot)}
}

// Add returns the slot for video on tab, creating it on first use.
func (s *Set) Add(tab media.Tab, video media.VideoRef) *Slot {
	k := slotKey{tab: tab, id: video.ID}
	if sl, ok := s.slots[k]; ok {
		return sl
	}

	sl := New(s.env, tab, video)
	s.slots[k] = sl
	s.order = append(s.order, sl)
	return sl
}

// Get returns the slot of video id on tab.
func (s *Set) Get(tab media.Tab, id string) (*Slot, bool) {
	sl, ok := s.slots[slotKey{tab: tab, id: id}]
	return sl, ok
}

// Lookup finds a slot playing src. Slots on the visible tab win over slots elsewhere; among
// those, a matching video id wins.
func (s *Set) Lookup(src, id string, visible media.Tab) (*Slot, bool) {
	candidates := lo.Filter(s.order, func(sl *Slot, _ int) bool { return sl.video.Src == src })
	if len(candidates) == 0 {
		return nil, false
	}

	score := func(sl *Slot) int {
		var n int
		if sl.tab == visible {
			n += 2
		}
		if id != "" && sl.video.ID == id {
			n++
		}
		return n
	}

	return lo.MaxBy(candidates, func(a, b *Slot) bool { return score(a) > score(b) }), true
}

// Slots returns the slots of tab in insertion order, or every slot when tab is empty.
func (s *Set) Slots(tab media.Tab) []*Slot {
	if tab == "" {
		return append([]*Slot(nil), s.order...)
	}
	return lo.Filter(s.order, func(sl *Slot, _ int) bool { return sl.tab == tab })
}

// TeardownAll restores every slot to its thumbnail.
func (s *Set) TeardownAll() {
	for _, sl := range s.order {
		sl.Teardown()
	}
}
