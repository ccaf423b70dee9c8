// Package mediatest provides in-memory audio sources and video surfaces for tests.
package mediatest

import (
	"fmt"

	"github.com/burhanyldz/zindekal/audio"
	"github.com/burhanyldz/zindekal/media"
	"github.com/burhanyldz/zindekal/slot"
)

// Audio is an audio.Source that records calls.
type Audio struct {
	Events audio.Events

	Calls   []string
	Loaded  media.Track
	Playing bool
	Volume  float64
	Muted   bool
	Pos     float64
	Closed  bool

	// PlayErr, when set, is returned by Play.
	PlayErr error
}

// Factory returns an audio.SourceFactory handing out a.
func (a *Audio) Factory() audio.SourceFactory {
	return func(events audio.Events) (audio.Source, error) {
		a.Events = events
		return a, nil
	}
}

func (a *Audio) Load(track media.Track) error {
	a.Calls = append(a.Calls, "load "+track.ID)
	a.Loaded = track
	a.Playing = false
	a.Pos = 0
	return nil
}

func (a *Audio) Play() error {
	a.Calls = append(a.Calls, "play")
	if a.PlayErr != nil {
		return a.PlayErr
	}
	a.Playing = true
	return nil
}

func (a *Audio) Pause() error {
	a.Calls = append(a.Calls, "pause")
	a.Playing = false
	return nil
}

func (a *Audio) Seek(seconds float64) error {
	a.Calls = append(a.Calls, fmt.Sprintf("seek %.1f", seconds))
	a.Pos = seconds
	return nil
}

func (a *Audio) SetVolume(volume float64) error {
	a.Volume = volume
	return nil
}

func (a *Audio) SetMuted(muted bool) error {
	a.Muted = muted
	return nil
}

func (a *Audio) Close() error {
	a.Calls = append(a.Calls, "close")
	a.Closed = true
	return nil
}

// Surfaces is a slot.SurfaceFactory keeping every surface it created.
type Surfaces struct {
	Created []*Surface

	// CreateErr, when set, fails Create.
	CreateErr error
	// PlayErr, when set, is returned by every surface's Play.
	PlayErr error
}

func (f *Surfaces) Create(video media.VideoRef, emit slot.Emit) (slot.Surface, error) {
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}

	s := &Surface{Video: video, emit: emit, factory: f}
	f.Created = append(f.Created, s)
	return s, nil
}

// Last returns the most recently created surface.
func (f *Surfaces) Last() *Surface {
	if len(f.Created) == 0 {
		return nil
	}
	return f.Created[len(f.Created)-1]
}

// Live returns the surfaces that were not destroyed.
func (f *Surfaces) Live() []*Surface {
	var live []*Surface
	for _, s := range f.Created {
		if !s.Destroyed {
			live = append(live, s)
		}
	}
	return live
}

// Surface is a fake video surface. Tests drive it with Emit.
type Surface struct {
	Video     media.VideoRef
	Playing   bool
	Destroyed bool
	Plays     int

	emit    slot.Emit
	factory *Surfaces
}

// Emit delivers ev as the real backend would.
func (s *Surface) Emit(ev slot.Event, err error) {
	s.emit(ev, err)
}

// Ready emits the ready event.
func (s *Surface) Ready() { s.Emit(slot.EventReady, nil) }

func (s *Surface) Play() error {
	s.Plays++
	if s.factory.PlayErr != nil {
		return s.factory.PlayErr
	}
	s.Playing = true
	return nil
}

func (s *Surface) Pause() error {
	s.Playing = false
	return nil
}

func (s *Surface) Destroy() error {
	s.Destroyed = true
	s.Playing = false
	return nil
}
