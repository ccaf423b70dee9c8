package modal

import (
	"github.com/burhanyldz/zindekal/audio"
	"github.com/burhanyldz/zindekal/media"
	"github.com/burhanyldz/zindekal/slot"
	"github.com/burhanyldz/zindekal/tab"
)

// events receives notifications from the components and turns them into hooks and redraws.
type events struct {
	m *Modal
}

var (
	_ tab.Listener   = events{}
	_ slot.Listener  = events{}
	_ audio.Listener = events{}
)

func (e events) TabChanged(next, prev media.Tab) {
	e.m.hideVolumePopup()
	e.m.deps.Hooks.OnTabChange(e.m.ctx, e.m, next, prev)
	e.m.invalidate()
}

func (e events) GridChanged(tab.GridView) { e.m.invalidate() }

func (e events) SlotChanged(*slot.Slot) { e.m.invalidate() }

func (e events) VideoPlayed(s *slot.Slot) {
	e.m.deps.Hooks.OnVideoPlay(e.m.ctx, e.m, s.Video())
	e.m.invalidate()
}

func (e events) VideoPaused(s *slot.Slot) {
	e.m.deps.Hooks.OnVideoPause(e.m.ctx, e.m, s.Video())
	e.m.invalidate()
}

func (e events) PlayStateChanged(playing bool) {
	track, _ := e.m.CurrentTrack()
	if playing {
		e.m.deps.Hooks.OnAudioPlay(e.m.ctx, e.m, track)
	} else {
		e.m.deps.Hooks.OnAudioPause(e.m.ctx, e.m, track)
	}
	e.m.invalidate()
}

func (e events) TrackChanged(int, media.Track) { e.m.invalidate() }

func (e events) TimeUpdated(float64, float64) { e.m.invalidate() }

func (e events) VolumeChanged(float64, bool) { e.m.invalidate() }
