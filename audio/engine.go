package audio

import (
	"errors"
	"time"

	"github.com/burhanyldz/zindekal/eventloop"
	"github.com/burhanyldz/zindekal/log"
	"github.com/burhanyldz/zindekal/media"
	"github.com/burhanyldz/zindekal/seek"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

const fallbackVolume = 0.5

// Options configures an Engine.
type Options struct {
	Scheduler eventloop.Scheduler

	// Coordinator is optional; without one the engine never yields to other media.
	Coordinator Coordinator

	Listener Listener

	// Volume is the initial volume, 1 when absent.
	Volume mo.Option[float64]

	ManualSeekWindow time.Duration
}

// Engine is the music player. All methods must be called from the owning event loop.
type Engine struct {
	src      Source
	coord    Coordinator
	listener Listener
	seek     *seek.Controller
	ticker   *eventloop.Resettable

	list   *media.TrackList
	loaded bool
	state  PlaybackState
	played time.Duration
}

var _ Events = (*Engine)(nil)

// New builds an engine over the source opened by factory and loads tracks at start.
// A source that fails to open is logged; the engine still works but never plays.
func New(factory SourceFactory, tracks []media.Track, start int, opts Options) *Engine {
	e := &Engine{
		coord:    opts.Coordinator,
		listener: opts.Listener,
		seek:     seek.New(opts.Scheduler, opts.ManualSeekWindow),
		ticker:   eventloop.NewResettable(opts.Scheduler),
	}

	if e.listener == nil {
		e.listener = NopListener{}
	}

	volume := lo.Clamp(opts.Volume.OrElse(1), 0, 1)
	e.state.Volume = volume
	e.state.PreviousVolume = volume
	if volume == 0 {
		e.state.Muted = true
		e.state.PreviousVolume = 1
	}

	if factory != nil {
		src, err := factory(e)
		if err != nil {
			log.Warnf("audio: open source: %s", err)
		} else {
			e.src = src
			e.applyVolume()
		}
	}

	e.Load(tracks, start)
	return e
}

// SourceID implements active.Participant.
func (e *Engine) SourceID() media.SourceID { return media.AudioSource }

// Tab implements active.Participant. Audio is not bound to a tab.
func (e *Engine) Tab() media.Tab { return "" }

// Deactivate implements active.Participant by pausing.
func (e *Engine) Deactivate() { e.Pause() }

// Load replaces the playlist and loads the track at start. An out of range start is logged and clamped.
func (e *Engine) Load(tracks []media.Track, start int) {
	if len(tracks) > 0 && (start < 0 || start >= len(tracks)) {
		log.Warnf("audio: start index %d out of range [0, %d), clamping", start, len(tracks))
	}

	e.seek.Reset()
	e.list = media.NewTrackList(tracks, start)
	e.loadCurrent()
	e.setPlaying(false)
}

func (e *Engine) loadCurrent() {
	e.loaded = false
	e.state.CurrentTime = 0
	e.state.Duration = 0

	track, ok := e.list.CurrentTrack()
	if !ok {
		return
	}

	switch {
	case !track.HasSource():
		log.Warnf("audio: track %q: %s", track.Title, media.ErrNoSource)
	case e.src == nil:
		log.Warnf("audio: track %q: no audio backend", track.Title)
	default:
		if err := e.src.Load(track); err != nil {
			log.Warnf("audio: load %q: %s", track.Title, err)
		} else {
			e.loaded = true
		}
	}

	e.listener.TrackChanged(e.list.Current(), track)
	e.listener.TimeUpdated(0, 0)
}

// Play starts playback of the current track, taking the active handle first.
func (e *Engine) Play() PlayResult {
	if !e.loaded {
		log.Warnf("audio: nothing playable at index %d", e.list.Current())
		e.setPlaying(false)
		return Failed
	}

	if e.coord != nil {
		e.coord.RequestActivate(e)
	}

	if err := e.src.Play(); err != nil {
		e.setPlaying(false)
		e.release()

		if errors.Is(err, media.ErrPlaybackBlocked) {
			log.Infof("audio: %s", err)
			return Blocked
		}

		log.Warnf("audio: play: %s", err)
		return Failed
	}

	e.setPlaying(true)
	return Played
}

// Pause stops playback and keeps the position. It keeps the active handle.
func (e *Engine) Pause() {
	if e.src != nil && e.loaded {
		if err := e.src.Pause(); err != nil {
			log.Warnf("audio: pause: %s", err)
		}
	}
	e.setPlaying(false)
}

// TogglePlay pauses while playing and plays otherwise.
func (e *Engine) TogglePlay() PlayResult {
	if e.state.Playing {
		e.Pause()
		return Played
	}
	return e.Play()
}

// NextTrack moves to the following track, wrapping to the first. Playback resumes if it was running.
func (e *Engine) NextTrack() {
	if e.list.Empty() {
		return
	}
	e.changeTrack(e.list.Next(e.list.Current()))
}

// PreviousTrack moves to the preceding track, wrapping to the last. Playback resumes if it was running.
func (e *Engine) PreviousTrack() {
	if e.list.Empty() {
		return
	}
	e.changeTrack(e.list.Prev(e.list.Current()))
}

func (e *Engine) changeTrack(i int) {
	wasPlaying := e.state.Playing

	e.list.MoveTo(i)
	e.loadCurrent()

	if wasPlaying {
		e.Play()
	}
}

// SelectTrack toggles play/pause when i is the current track, otherwise loads and plays it.
// An out of range index is ignored.
func (e *Engine) SelectTrack(i int) PlayResult {
	if !e.list.InRange(i) {
		log.Warnf("audio: select track %d out of range [0, %d)", i, e.list.Len())
		return Failed
	}

	if i == e.list.Current() {
		return e.TogglePlay()
	}

	e.list.MoveTo(i)
	e.loadCurrent()
	return e.Play()
}

// Seek commits a position, clamped to [0, duration].
func (e *Engine) Seek(seconds float64) {
	seconds = lo.Clamp(seconds, 0, max(e.state.Duration, 0))
	e.state.CurrentTime = seconds

	if e.src != nil && e.loaded {
		if err := e.src.Seek(seconds); err != nil {
			log.Warnf("audio: seek: %s", err)
		}
	}

	e.listener.TimeUpdated(seconds, e.state.Duration)
}

// PressSeek starts a progress-bar drag at fraction and previews the position.
func (e *Engine) PressSeek(fraction float64) {
	e.preview(e.seek.Press(fraction, e.state.Duration))
}

// DragSeek previews the latest drag position without committing it.
func (e *Engine) DragSeek(fraction float64) {
	if !e.seek.Dragging() {
		return
	}
	e.preview(e.seek.Drag(fraction, e.state.Duration))
}

// ReleaseSeek ends a drag and commits the last previewed position.
func (e *Engine) ReleaseSeek() {
	if pos, ok := e.seek.Release(); ok {
		e.Seek(pos)
	}
}

// ClickSeek commits a direct click on the progress bar.
func (e *Engine) ClickSeek(fraction float64) {
	if pos, ok := e.seek.Click(fraction, e.state.Duration); ok {
		e.Seek(pos)
	}
}

func (e *Engine) preview(seconds float64) {
	e.state.CurrentTime = seconds
	e.listener.TimeUpdated(seconds, e.state.Duration)
}

// SetVolume clamps v to [0, 1]. Zero mutes; a positive value while muted unmutes.
func (e *Engine) SetVolume(v float64) {
	v = lo.Clamp(v, 0, 1)

	switch {
	case v == 0 && !e.state.Muted:
		e.state.Muted = true
	case v > 0 && e.state.Muted:
		e.state.Muted = false
		e.state.PreviousVolume = v
	case v > 0:
		e.state.PreviousVolume = v
	}

	e.state.Volume = v
	e.applyVolume()
}

// ToggleMute saves the volume and silences, or restores the saved volume.
func (e *Engine) ToggleMute() {
	if e.state.Muted {
		e.state.Muted = false
		e.state.Volume = e.state.PreviousVolume
		if e.state.Volume <= 0 {
			e.state.Volume = fallbackVolume
		}
	} else {
		e.state.PreviousVolume = e.state.Volume
		if e.state.PreviousVolume <= 0 {
			e.state.PreviousVolume = fallbackVolume
		}
		e.state.Muted = true
		e.state.Volume = 0
	}

	e.applyVolume()
}

func (e *Engine) applyVolume() {
	if e.src != nil {
		if err := e.src.SetVolume(e.state.Volume); err != nil {
			log.Warnf("audio: set volume: %s", err)
		}
		if err := e.src.SetMuted(e.state.Muted); err != nil {
			log.Warnf("audio: set mute: %s", err)
		}
	}

	e.listener.VolumeChanged(e.state.Volume, e.state.Muted)
}

// HandleLoaded records the duration reported by the source.
func (e *Engine) HandleLoaded(duration float64) {
	e.state.Duration = max(duration, 0)
	e.listener.TimeUpdated(e.state.CurrentTime, e.state.Duration)
}

// HandleTimeUpdate records playback progress. Updates are ignored during a drag.
func (e *Engine) HandleTimeUpdate(seconds float64) {
	if e.seek.Dragging() {
		return
	}
	e.state.CurrentTime = seconds
	e.listener.TimeUpdated(seconds, e.state.Duration)
}

// HandlePlaying records that the source started playing.
func (e *Engine) HandlePlaying() { e.setPlaying(true) }

// HandlePaused records that the source paused.
func (e *Engine) HandlePaused() { e.setPlaying(false) }

// HandleEnded auto-advances when no drag or manual seek is in flight and there is more than one track.
func (e *Engine) HandleEnded() {
	if !e.seek.Dragging() && !e.seek.ManualSeek() && e.list.Len() > 1 {
		e.list.MoveTo(e.list.Next(e.list.Current()))
		e.loadCurrent()
		e.Play()
	} else {
		e.setPlaying(false)
	}

	e.seek.ClearManualSeek()
}

func (e *Engine) HandleError(err error) {
	log.Warnf("audio: source error: %s", err)
	e.setPlaying(false)
}

func (e *Engine) setPlaying(playing bool) {
	if e.state.Playing == playing {
		return
	}

	e.state.Playing = playing
	if playing {
		e.ticker.Reset(time.Second, e.tick)
	} else {
		e.ticker.Stop()
	}

	e.listener.PlayStateChanged(playing)
}

func (e *Engine) tick() {
	if !e.state.Playing {
		return
	}
	e.played += time.Second
	e.ticker.Reset(time.Second, e.tick)
}

func (e *Engine) release() {
	if e.coord != nil {
		e.coord.Release(media.AudioSource)
	}
}

// Stop pauses, cancels pending timers and gives up the active handle.
func (e *Engine) Stop() {
	e.Pause()
	e.ticker.Stop()
	e.seek.Reset()
	e.release()
}

// Close stops playback and closes the source. The engine cannot play afterwards.
func (e *Engine) Close() {
	e.Stop()

	if e.src != nil {
		if err := e.src.Close(); err != nil {
			log.Warnf("audio: close source: %s", err)
		}
		e.src = nil
	}
	e.loaded = false
}

// State returns a snapshot of the playback state.
func (e *Engine) State() PlaybackState {
	s := e.state
	s.Dragging = e.seek.Dragging()
	s.ManualSeek = e.seek.ManualSeek()
	return s
}

// Current returns the index of the current track.
func (e *Engine) Current() int { return e.list.Current() }

// CurrentTrack returns the current track.
func (e *Engine) CurrentTrack() (media.Track, bool) { return e.list.CurrentTrack() }

// Tracks returns the playlist.
func (e *Engine) Tracks() []media.Track { return e.list.Tracks() }

// TooltipVisible reports whether the drag tooltip should be drawn.
func (e *Engine) TooltipVisible() bool { return e.seek.TooltipVisible() }

// PlayedSeconds returns the wall-clock time spent playing.
func (e *Engine) PlayedSeconds() int { return int(e.played / time.Second) }

// SetListener replaces the listener.
func (e *Engine) SetListener(l Listener) {
	if l == nil {
		l = NopListener{}
	}
	e.listener = l
}
