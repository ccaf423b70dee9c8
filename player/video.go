package player

import (
	"github.com/DexterLB/mpvipc"
	"github.com/burhanyldz/zindekal/eventloop"
	"github.com/burhanyldz/zindekal/filesystem"
	"github.com/burhanyldz/zindekal/log"
	"github.com/burhanyldz/zindekal/media"
	"github.com/burhanyldz/zindekal/slot"
	"github.com/pkg/errors"
)

var videoProperties = map[int]string{
	propPause:      "pause",
	propEOF:        "eof-reached",
	propFullscreen: "fullscreen",
}

// Surfaces opens every inline video in its own mpv window.
type Surfaces struct {
	post eventloop.Poster
	opts Options
}

// NewSurfaces returns a slot.SurfaceFactory whose events are posted to poster.
func NewSurfaces(poster eventloop.Poster, opts Options) *Surfaces {
	return &Surfaces{post: poster, opts: opts}
}

func (f *Surfaces) Create(video media.VideoRef, emit slot.Emit) (slot.Surface, error) {
	if !filesystem.Playable(video.Src) {
		return nil, errors.Wrap(media.ErrNoSource, video.Src)
	}

	target, err := sanitizeMediaTarget(video.Src)
	if err != nil {
		return nil, err
	}

	proc, err := spawn(f.opts, videoArgs(video.Title, f.opts.Fullscreen))
	if err != nil {
		return nil, err
	}

	if _, err := proc.conn.Call("enable_event", "file-loaded"); err != nil {
		_ = proc.close()
		return nil, errors.Wrap(err, "enable file-loaded event")
	}
	if err := proc.observe(videoProperties); err != nil {
		_ = proc.close()
		return nil, err
	}

	s := &Surface{proc: proc, emit: emit, post: newRelay(f.post), id: video.ID}
	proc.listen(s.receive, func() {
		s.deliver(slot.EventError, ErrExited)
	})

	// Loading after subscribing guarantees file-loaded is seen.
	if _, err := proc.conn.Call("loadfile", target, "replace"); err != nil {
		s.destroyed = true
		s.post.close()
		_ = proc.close()
		return nil, errors.Wrapf(err, "load %s", target)
	}
	return s, nil
}

// Surface is a single mpv video window.
type Surface struct {
	proc      *process
	emit      slot.Emit
	post      *relay
	id        string
	destroyed bool
}

// receive runs on the IPC goroutine and must not block.
func (s *Surface) receive(event *mpvipc.Event) {
	if event.Error != "" {
		s.deliver(slot.EventError, errors.New(event.Error))
		return
	}

	if ev, ok := videoEvent(event); ok {
		s.deliver(ev, nil)
	}
}

// videoEvent maps an mpv notification onto a surface event.
func videoEvent(event *mpvipc.Event) (slot.Event, bool) {
	if event.Name == "file-loaded" {
		return slot.EventReady, true
	}

	switch event.ID {
	case propPause:
		if paused, ok := event.Data.(bool); ok {
			if paused {
				return slot.EventPause, true
			}
			return slot.EventPlay, true
		}
	case propEOF:
		if eof, ok := event.Data.(bool); ok && eof {
			return slot.EventEnded, true
		}
	case propFullscreen:
		if full, ok := event.Data.(bool); ok {
			if full {
				return slot.EventEnterFullscreen, true
			}
			return slot.EventExitFullscreen, true
		}
	}
	return 0, false
}

func (s *Surface) deliver(ev slot.Event, err error) {
	s.post.Post(func() {
		if !s.destroyed {
			s.emit(ev, err)
		}
	})
}

// Play resumes, seeking back to the start if playback had ended.
func (s *Surface) Play() error {
	if eof, err := s.proc.conn.Get("eof-reached"); err == nil && eof == true {
		if _, err := s.proc.conn.Call("seek", 0, "absolute"); err != nil {
			log.Debugf("player: rewind %q: %s", s.id, err)
		}
	}
	return errors.Wrap(s.proc.conn.Set("pause", false), "resume")
}

func (s *Surface) Pause() error {
	return errors.Wrap(s.proc.conn.Set("pause", true), "pause")
}

// Destroy closes the window without waiting for mpv to exit.
func (s *Surface) Destroy() error {
	if s.destroyed {
		return nil
	}
	s.destroyed = true
	s.post.close()

	go func() {
		if err := s.proc.close(); err != nil {
			log.Warnf("player: close video %q: %s", s.id, err)
		}
	}()
	return nil
}
