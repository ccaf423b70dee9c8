// Package audio implements the music player: one audio source, a circular playlist,
// volume and mute bookkeeping, progress-bar seeking and auto-advance at end of track.
package audio

import (
	"github.com/burhanyldz/zindekal/active"
	"github.com/burhanyldz/zindekal/media"
)

// Source is the backend that actually produces sound.
// Implementations report progress back through the Events they were opened with.
type Source interface {
	// Load replaces the current media. The source is left paused.
	Load(track media.Track) error
	// Play may fail with media.ErrPlaybackBlocked, which callers tolerate.
	Play() error
	Pause() error
	Seek(seconds float64) error
	SetVolume(volume float64) error
	SetMuted(muted bool) error
	Close() error
}

// Events is the intake for notifications coming from a Source.
// Calls must happen on the event loop that owns the engine.
type Events interface {
	HandleLoaded(duration float64)
	HandleTimeUpdate(seconds float64)
	HandlePlaying()
	HandlePaused()
	HandleEnded()
	HandleError(err error)
}

// SourceFactory opens a Source that reports to events.
type SourceFactory func(events Events) (Source, error)

// Coordinator is the part of the active media arbiter the engine talks to.
type Coordinator interface {
	RequestActivate(p active.Participant)
	Release(id media.SourceID) bool
}

// PlayResult is the outcome of a Play request. Playback failures are never fatal.
type PlayResult int

const (
	Played PlayResult = iota
	Blocked
	Failed
)

func (r PlayResult) String() string {
	switch r {
	case Played:
		return "played"
	case Blocked:
		return "blocked"
	default:
		return "failed"
	}
}

// PlaybackState is a snapshot of the engine.
type PlaybackState struct {
	Playing        bool
	CurrentTime    float64
	Duration       float64
	Volume         float64
	Muted          bool
	PreviousVolume float64
	Dragging       bool
	ManualSeek     bool
}

// Listener receives engine notifications.
type Listener interface {
	PlayStateChanged(playing bool)
	TrackChanged(index int, track media.Track)
	TimeUpdated(current, duration float64)
	VolumeChanged(volume float64, muted bool)
}

// NopListener ignores every notification.
type NopListener struct{}

func (NopListener) PlayStateChanged(bool) {}
func (NopListener) TrackChanged(int, media.Track) {}
func (NopListener) TimeUpdated(float64, float64) {}
func (NopListener) VolumeChanged(float64, bool) {}

// Listeners fans notifications out in order.
type Listeners []Listener

func (ls Listeners) PlayStateChanged(playing bool) {
	for _, l := range ls {
		l.PlayStateChanged(playing)
	}
}

func (ls Listeners) TrackChanged(index int, track media.Track) {
	for _, l := range ls {
		l.TrackChanged(index, track)
	}
}

func (ls Listeners) TimeUpdated(current, duration float64) {
	for _, l := range ls {
		l.TimeUpdated(current, duration)
	}
}

func (ls Listeners) VolumeChanged(volume float64, muted bool) {
	for _, l := range ls {
		l.VolumeChanged(volume, muted)
	}
}
