package player

import (
	"github.com/DexterLB/mpvipc"
	"github.com/burhanyldz/zindekal/audio"
	"github.com/burhanyldz/zindekal/eventloop"
	"github.com/burhanyldz/zindekal/filesystem"
	"github.com/burhanyldz/zindekal/log"
	"github.com/burhanyldz/zindekal/media"
	"github.com/pkg/errors"
)

const (
	propTimePos = iota + 1
	propDuration
	propPause
	propEOF
	propFullscreen
)

var audioProperties = map[int]string{
	propTimePos:  "time-pos",
	propDuration: "duration",
	propPause:    "pause",
	propEOF:      "eof-reached",
}

// AudioSource plays music tracks in a windowless mpv.
// Its methods, like the engine that owns it, run on the event loop.
type AudioSource struct {
	proc   *process
	events audio.Events
	post   *relay
	closed bool
}

// NewAudioFactory returns a factory spawning one mpv per music engine.
// Notifications from mpv are posted to poster before reaching the engine.
func NewAudioFactory(poster eventloop.Poster, opts Options) audio.SourceFactory {
	return func(events audio.Events) (audio.Source, error) {
		proc, err := spawn(opts, audioArgs())
		if err != nil {
			return nil, err
		}

		if err := proc.observe(audioProperties); err != nil {
			_ = proc.close()
			return nil, err
		}

		s := newAudioSource(proc, events, poster)
		proc.listen(s.receive, func() {
			s.deliver(func() { s.events.HandleError(ErrExited) })
		})
		return s, nil
	}
}

func newAudioSource(proc *process, events audio.Events, poster eventloop.Poster) *AudioSource {
	return &AudioSource{proc: proc, events: events, post: newRelay(poster)}
}

// receive runs on the IPC goroutine and must not block.
func (s *AudioSource) receive(event *mpvipc.Event) {
	if event.Error != "" {
		msg := event.Error
		s.deliver(func() { s.events.HandleError(errors.New(msg)) })
		return
	}

	if fn := audioHandler(s.events, event); fn != nil {
		s.deliver(fn)
	}
}

// audioHandler maps an observed property change onto the engine intake.
func audioHandler(events audio.Events, event *mpvipc.Event) func() {
	switch event.ID {
	case propTimePos:
		if pos, ok := event.Data.(float64); ok {
			return func() { events.HandleTimeUpdate(pos) }
		}
	case propDuration:
		if d, ok := event.Data.(float64); ok {
			return func() { events.HandleLoaded(d) }
		}
	case propPause:
		if paused, ok := event.Data.(bool); ok {
			if paused {
				return events.HandlePaused
			}
			return events.HandlePlaying
		}
	case propEOF:
		if eof, ok := event.Data.(bool); ok && eof {
			return events.HandleEnded
		}
	}
	return nil
}

func (s *AudioSource) deliver(fn func()) {
	s.post.Post(func() {
		if !s.closed {
			fn()
		}
	})
}

func (s *AudioSource) Load(track media.Track) error {
	if !filesystem.Playable(track.Src) {
		return errors.Wrap(media.ErrNoSource, track.Src)
	}

	target, err := sanitizeMediaTarget(track.Src)
	if err != nil {
		return err
	}

	if err := s.proc.conn.Set("pause", true); err != nil {
		return errors.Wrap(err, "pause before load")
	}
	if _, err := s.proc.conn.Call("loadfile", target, "replace"); err != nil {
		return errors.Wrapf(err, "load %s", target)
	}
	if err := s.proc.conn.Set("force-media-title", sanitizeTitle(track.Title)); err != nil {
		log.Debugf("player: set title: %s", err)
	}
	return nil
}

func (s *AudioSource) Play() error {
	return errors.Wrap(s.proc.conn.Set("pause", false), "resume")
}

func (s *AudioSource) Pause() error {
	return errors.Wrap(s.proc.conn.Set("pause", true), "pause")
}

func (s *AudioSource) Seek(seconds float64) error {
	_, err := s.proc.conn.Call("seek", seconds, "absolute")
	return errors.Wrapf(err, "seek to %.1f", seconds)
}

// SetVolume takes a level in [0, 1]; mpv counts in percent.
func (s *AudioSource) SetVolume(volume float64) error {
	return errors.Wrap(s.proc.conn.Set("volume", volume*100), "set volume")
}

func (s *AudioSource) SetMuted(muted bool) error {
	return errors.Wrap(s.proc.conn.Set("mute", muted), "set mute")
}

func (s *AudioSource) Close() error {
	s.closed = true
	s.post.close()
	return s.proc.close()
}
