// Package slot implements the thumbnail-versus-live-player toggle of a single video card.
package slot

import (
	"errors"
	"fmt"

	"github.com/burhanyldz/zindekal/active"
	"github.com/burhanyldz/zindekal/log"
	"github.com/burhanyldz/zindekal/media"
	"github.com/samber/mo"
)

// Event is a notification emitted by a video surface.
type Event int

const (
	EventReady Event = iota
	EventPlay
	EventPause
	EventEnded
	EventError
	EventEnterFullscreen
	EventExitFullscreen
)

func (e Event) String() string {
	switch e {
	case EventReady:
		return "ready"
	case EventPlay:
		return "play"
	case EventPause:
		return "pause"
	case EventEnded:
		return "ended"
	case EventError:
		return "error"
	case EventEnterFullscreen:
		return "enterfullscreen"
	case EventExitFullscreen:
		return "exitfullscreen"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

// Surface is a live video player replacing a card's thumbnail.
type Surface interface {
	// Play may fail with media.ErrPlaybackBlocked, which callers tolerate.
	Play() error
	Pause() error
	Destroy() error
}

// Emit delivers surface events. err is set only for EventError.
// Calls must happen on the event loop that owns the slot.
type Emit func(ev Event, err error)

// SurfaceFactory creates surfaces.
type SurfaceFactory interface {
	Create(video media.VideoRef, emit Emit) (Surface, error)
}

// Coordinator is the part of the active media arbiter a slot talks to.
type Coordinator interface {
	RequestActivate(p active.Participant)
	Release(id media.SourceID) bool
	Holder() active.Participant
}

// Tabs answers visibility questions and can bring a tab forward.
type Tabs interface {
	Visible(tab media.Tab) bool
	SwitchTab(tab media.Tab) bool
	// WhenVisible queues fn until tab becomes the visible tab. fn(false) means the wait was
	// superseded. The returned func cancels the wait without calling fn.
	WhenVisible(tab media.Tab, fn func(ok bool)) (cancel func())
}

// Listener is told about slot transitions.
type Listener interface {
	SlotChanged(s *Slot)
	VideoPlayed(s *Slot)
	VideoPaused(s *Slot)
}

// NopListener ignores every notification.
type NopListener struct{}

func (NopListener) SlotChanged(*Slot) {}
func (NopListener) VideoPlayed(*Slot) {}
func (NopListener) VideoPaused(*Slot) {}

// Env holds the collaborators shared by every slot of a session.
type Env struct {
	Coordinator Coordinator
	Factory     SurfaceFactory
	Tabs        Tabs
	Listener    Listener
}

// State is the visible state of a slot.
type State int

const (
	Thumbnail State = iota
	Loading
	Playing
	Paused
	Ended
	Failed
)

func (s State) String() string {
	switch s {
	case Thumbnail:
		return "thumbnail"
	case Loading:
		return "loading"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Ended:
		return "ended"
	case Failed:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Live reports whether a surface is attached in this state.
func (s State) Live() bool {
	return s != Thumbnail
}

// Result is the outcome of Activate.
type Result int

const (
	// Started means a surface was created and will auto-play once ready.
	Started Result = iota
	// AlreadyActive means this slot already holds the live surface; nothing restarted.
	AlreadyActive
	// Deferred means the owning tab was brought forward and activation commits once it is visible.
	Deferred
	// Rejected means the video has no usable source or no surface could be created.
	Rejected
)

func (r Result) String() string {
	switch r {
	case Started:
		return "started"
	case AlreadyActive:
		return "already-active"
	case Deferred:
		return "deferred"
	default:
		return "rejected"
	}
}

var errNoFactory = errors.New("no video surface backend")

// Slot is one video card.
type Slot struct {
	env   *Env
	video media.VideoRef
	tab   media.Tab

	state      State
	surface    Surface
	gen        uint64
	fullscreen bool
	readyEarly bool

	cancelWait func()
}

// New returns a slot in the Thumbnail state.
func New(env *Env, tab media.Tab, video media.VideoRef) *Slot {
	if env.Listener == nil {
		env.Listener = NopListener{}
	}
	return &Slot{env: env, video: video, tab: tab}
}

func (s *Slot) SourceID() media.SourceID { return media.VideoSource(s.video.Src) }

func (s *Slot) Tab() media.Tab { return s.tab }

// Deactivate implements active.Participant by tearing the surface down.
func (s *Slot) Deactivate() { s.Teardown() }

// Video returns the video shown by the slot.
func (s *Slot) Video() media.VideoRef { return s.video }

// State returns the current state.
func (s *Slot) State() State { return s.state }

// Fullscreen reports whether the surface is fullscreen.
func (s *Slot) Fullscreen() bool { return s.fullscreen }

// Pending reports whether an activation waits for the owning tab.
func (s *Slot) Pending() bool { return s.cancelWait != nil }

// Activate replaces the thumbnail with a live surface.
func (s *Slot) Activate() Result {
	if s.live() {
		return AlreadyActive
	}

	if !s.video.HasSource() {
		log.Warnf("slot: video %q: %s", s.video.ID, media.ErrNoSource)
		return Rejected
	}

	if tabs := s.env.Tabs; tabs != nil && !tabs.Visible(s.tab) {
		if s.cancelWait != nil {
			return Deferred
		}

		var result mo.Option[Result]
		cancel := tabs.WhenVisible(s.tab, func(ok bool) {
			s.cancelWait = nil
			if !ok {
				log.Debugf("slot: activation of %q superseded by another tab", s.video.ID)
				result = mo.Some(Rejected)
				return
			}
			result = mo.Some(s.commit())
		})
		if result.IsAbsent() {
			s.cancelWait = cancel
		}

		if result.IsAbsent() && !tabs.SwitchTab(s.tab) {
			s.cancelPending()
			log.Warnf("slot: cannot switch to tab %s for video %q", s.tab, s.video.ID)
			return Rejected
		}

		// The switch usually makes the tab visible synchronously, committing right away.
		return result.OrElse(Deferred)
	}

	return s.commit()
}

func (s *Slot) live() bool {
	return s.surface != nil && s.holds()
}

func (s *Slot) holds() bool {
	return s.env.Coordinator != nil && s.env.Coordinator.Holder() == active.Participant(s)
}

func (s *Slot) commit() Result {
	if s.live() {
		return AlreadyActive
	}

	if s.env.Coordinator != nil {
		s.env.Coordinator.RequestActivate(s)
	}

	if s.env.Factory == nil {
		log.Warnf("slot: video %q: %s", s.video.ID, errNoFactory)
		s.restore()
		return Rejected
	}

	s.gen++
	gen := s.gen
	s.readyEarly = false
	s.setState(Loading)

	surface, err := s.env.Factory.Create(s.video, func(ev Event, err error) {
		if gen != s.gen {
			log.Debugf("slot: dropping stale %s from video %q", ev, s.video.ID)
			return
		}
		s.handle(ev, err)
	})
	if err != nil {
		log.Warnf("slot: create surface for %q: %s", s.video.ID, err)
		s.restore()
		return Rejected
	}

	if gen != s.gen {
		// Torn down while the surface was being created.
		_ = surface.Destroy()
		return Rejected
	}

	s.surface = surface
	if s.readyEarly {
		s.autoplay()
	}

	return Started
}

func (s *Slot) handle(ev Event, err error) {
	switch ev {
	case EventReady:
		if s.state == Loading {
			s.setState(Paused)
		}
		s.autoplay()
	case EventPlay:
		s.setState(Playing)
		s.env.Listener.VideoPlayed(s)
	case EventPause:
		if s.state == Playing {
			s.setState(Paused)
			s.env.Listener.VideoPaused(s)
		}
	case EventEnded:
		s.setState(Ended)
		s.env.Listener.VideoPaused(s)
	case EventError:
		log.Warnf("slot: video %q failed: %v", s.video.ID, err)
		s.setState(Failed)
		s.Teardown()
	case EventEnterFullscreen:
		s.fullscreen = true
		s.env.Listener.SlotChanged(s)
	case EventExitFullscreen:
		s.fullscreen = false
		s.env.Listener.SlotChanged(s)
	}
}

func (s *Slot) autoplay() {
	if s.surface == nil {
		s.readyEarly = true
		return
	}

	if err := s.surface.Play(); err != nil {
		if errors.Is(err, media.ErrPlaybackBlocked) {
			log.Infof("slot: video %q: %s", s.video.ID, err)
			return
		}
		log.Warnf("slot: play %q: %s", s.video.ID, err)
	}
}

// TogglePlay pauses a playing surface and resumes a paused or ended one. Without a
// live surface it activates the slot.
func (s *Slot) TogglePlay() Result {
	if !s.live() {
		return s.Activate()
	}

	var err error
	if s.state == Playing {
		err = s.surface.Pause()
	} else {
		err = s.surface.Play()
	}

	if err != nil && !errors.Is(err, media.ErrPlaybackBlocked) {
		log.Warnf("slot: toggle %q: %s", s.video.ID, err)
	}
	return AlreadyActive
}

// Teardown destroys the surface, restores the thumbnail and releases the active handle.
// It is idempotent.
func (s *Slot) Teardown() {
	s.cancelPending()

	if s.surface == nil && s.state == Thumbnail {
		return
	}

	wasPlaying := s.state == Playing
	s.gen++

	if s.surface != nil {
		if err := s.surface.Destroy(); err != nil {
			log.Warnf("slot: destroy surface for %q: %s", s.video.ID, err)
		}
		s.surface = nil
	}

	if wasPlaying {
		s.env.Listener.VideoPaused(s)
	}
	s.restore()
}

func (s *Slot) restore() {
	s.fullscreen = false
	s.readyEarly = false
	s.setState(Thumbnail)

	if s.holds() {
		s.env.Coordinator.Release(s.SourceID())
	}
}

func (s *Slot) cancelPending() {
	if s.cancelWait != nil {
		s.cancelWait()
		s.cancelWait = nil
	}
}

func (s *Slot) setState(state State) {
	if s.state == state {
		return
	}
	s.state = state
	s.env.Listener.SlotChanged(s)
}
