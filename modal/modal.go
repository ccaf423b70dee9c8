// Package modal composes the break overlay: tabs, the exercise grid, inline videos, the music
// player, the close lock and the toast, all driven from one event loop.
package modal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/burhanyldz/zindekal/active"
	"github.com/burhanyldz/zindekal/audio"
	"github.com/burhanyldz/zindekal/config"
	"github.com/burhanyldz/zindekal/eventloop"
	"github.com/burhanyldz/zindekal/internal/ui"
	"github.com/burhanyldz/zindekal/lock"
	"github.com/burhanyldz/zindekal/log"
	"github.com/burhanyldz/zindekal/media"
	"github.com/burhanyldz/zindekal/slot"
	"github.com/burhanyldz/zindekal/tab"
	"github.com/samber/mo"
)

// ErrNoScheduler is returned by New when Deps has no scheduler.
var ErrNoScheduler = errors.New("modal: no scheduler")

// Renderer is told that the snapshot changed.
type Renderer interface {
	Invalidate()
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func()

func (f RendererFunc) Invalidate() { f() }

// Deps are the collaborators of a Modal.
type Deps struct {
	// Context is handed to every hook. Defaults to context.Background().
	Context context.Context

	Scheduler eventloop.Scheduler

	// Audio opens the music backend. Without it the player shows tracks but never plays.
	Audio audio.SourceFactory
	// Surfaces creates inline video players. Without it every video activation is rejected.
	Surfaces slot.SurfaceFactory

	Renderer Renderer
	Hooks    Hooks

	// ManualSeekWindow overrides the auto-advance suppression after a seek.
	ManualSeekWindow time.Duration
}

// OpenOptions override the session for one opening.
type OpenOptions struct {
	EnableLock   mo.Option[bool]
	LockDuration mo.Option[int]
}

// CloseResult is the outcome of Close.
type CloseResult int

const (
	Closed CloseResult = iota
	// Locked means the lock countdown is still running; the toast explains it.
	Locked
	// NotOpen means there was nothing to close.
	NotOpen
)

func (r CloseResult) String() string {
	switch r {
	case Closed:
		return "closed"
	case Locked:
		return "locked"
	default:
		return "not-open"
	}
}

// Modal is the break overlay. All methods must be called from the event loop that owns it.
type Modal struct {
	deps    Deps
	ctx     context.Context
	session config.Session

	coord  *active.Coordinator
	tabs   *tab.Controller
	slots  *slot.Set
	engine *audio.Engine
	lock   *lock.Timer
	toast  *ui.Toast

	open        bool
	destroyed   bool
	volumePopup bool
}

// New validates session and builds a closed modal. An invalid session is the only fatal error;
// an enabled music tab without tracks is logged and shows an empty player.
func New(session config.Session, deps Deps) (*Modal, error) {
	if deps.Scheduler == nil {
		return nil, ErrNoScheduler
	}
	if deps.Context == nil {
		deps.Context = context.Background()
	}
	if deps.Hooks == nil {
		deps.Hooks = NopHooks{}
	}

	m := &Modal{deps: deps, ctx: deps.Context}
	if err := m.build(session); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Modal) build(session config.Session) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("modal: %w", err)
	}
	if err := session.CheckMusic(); err != nil {
		log.Warnf("modal: %s", err)
	}

	ev := events{m: m}

	m.session = session
	m.engine = nil
	m.open = false
	m.destroyed = false
	m.volumePopup = false

	m.coord = active.New()
	m.coord.OnChange = func(media.SourceID) { m.invalidate() }

	m.tabs = tab.New(tab.Options{
		Enabled:     session.EnabledTabs(),
		Initial:     session.InitialTab,
		Categories:  session.Exercise.Categories,
		Exercise:    session.ExerciseVideos(),
		Relaxing:    session.RelaxingVideos(),
		Coordinator: m.coord,
		Listener:    ev,
		EnterMusic:  m.enterMusic,
	})

	m.slots = slot.NewSet(&slot.Env{
		Coordinator: m.coord,
		Factory:     m.deps.Surfaces,
		Tabs:        m.tabs,
		Listener:    ev,
	})
	for _, t := range []media.Tab{media.TabExercise, media.TabRelaxing} {
		for _, v := range m.tabs.AllVideos(t) {
			m.slots.Add(t, v)
		}
	}

	m.lock = lock.New(m.deps.Scheduler, lock.ListenerFunc(func(lock.LockState) { m.invalidate() }))

	delay := time.Duration(session.Toast.AutoHideDelay) * time.Millisecond
	m.toast = ui.NewToast(m.deps.Scheduler, delay, m.invalidate)

	return nil
}

// enterMusic builds the music player when its tab is shown, autoplaying if configured.
func (m *Modal) enterMusic() {
	m.ensureEngine(true)
}

// ensureEngine builds the music player the first time it is needed. Nothing is built without tracks.
// autoplay is false when the caller is about to act on the player itself.
func (m *Modal) ensureEngine(autoplay bool) {
	if m.engine != nil || m.destroyed || len(m.session.Music.Tracks) == 0 {
		return
	}

	m.engine = audio.New(m.deps.Audio, m.session.Tracks(), m.session.Music.CurrentTrack, audio.Options{
		Scheduler:        m.deps.Scheduler,
		Coordinator:      m.coord,
		Listener:         events{m: m},
		Volume:           mo.Some(m.session.Music.Volume),
		ManualSeekWindow: m.deps.ManualSeekWindow,
	})

	if autoplay && m.session.Music.Autoplay && m.open {
		if r := m.engine.Play(); r != audio.Played {
			log.Infof("modal: autoplay %s", r)
		}
	}
}

// Open shows the break. Options win over the session. The lock starts, or is cancelled when disabled.
// Opening an open modal does nothing.
func (m *Modal) Open(opts OpenOptions) {
	if m.destroyed {
		log.Warn("modal: open after destroy")
		return
	}
	if m.open {
		return
	}

	enabled := opts.EnableLock.OrElse(m.session.Modal.EnableLock)
	duration := opts.LockDuration.OrElse(m.session.Modal.LockDuration)
	if enabled && duration > 0 {
		m.lock.Start(duration)
	} else {
		m.lock.Cancel()
	}

	m.open = true

	switch m.tabs.Current() {
	case media.TabMusic:
		m.enterMusic()
	case media.TabExercise:
		m.tabs.EnsureCategory()
	}

	m.deps.Hooks.OnOpen(m.ctx, m)
	m.invalidate()
}

// Close hides the break unless the lock is running, in which case the toast is shown instead.
func (m *Modal) Close() CloseResult {
	if !m.open {
		return NotOpen
	}

	if m.lock.AttemptClose() == lock.Locked {
		m.showLockedToast()
		return Locked
	}

	m.shutdown()
	return Closed
}

func (m *Modal) showLockedToast() {
	if !m.session.Toast.Enabled {
		log.Info("modal: close refused while locked, toast disabled")
		return
	}

	msg := m.session.Toast.Message
	if msg == "" {
		msg = "The break can be closed in " + m.lock.Countdown()
	}
	m.toast.Show(msg)
}

// shutdown closes without consulting the lock.
func (m *Modal) shutdown() {
	m.lock.Cancel()
	m.coord.Stop()
	if m.engine != nil {
		m.engine.Stop()
	}
	m.slots.TeardownAll()
	m.tabs.DropWaiters()
	m.toast.Hide()
	m.volumePopup = false
	m.open = false

	m.deps.Hooks.OnClose(m.ctx, m)
	m.invalidate()
}

// Destroy closes the modal bypassing the lock, cancels every timer and closes the audio backend.
// A destroyed modal ignores everything but UpdateSession. Destroy is idempotent.
func (m *Modal) Destroy() {
	if m.destroyed {
		return
	}

	if m.open {
		m.shutdown()
	}
	m.lock.Cancel()
	m.toast.Hide()
	m.slots.TeardownAll()
	if m.engine != nil {
		m.engine.Close()
		m.engine = nil
	}
	m.destroyed = true
}

// UpdateSession merges p into the session and rebuilds the modal, reopening it when it was open.
// An invalid result leaves the modal as it was.
func (m *Modal) UpdateSession(p config.Patch) error {
	next := config.Merge(m.session, p)
	if err := next.Validate(); err != nil {
		return fmt.Errorf("modal: %w", err)
	}

	wasOpen := m.open
	m.Destroy()
	if err := m.build(next); err != nil {
		return err
	}
	if wasOpen {
		m.Open(OpenOptions{})
	}
	return nil
}

// IsOpen reports whether the break is shown.
func (m *Modal) IsOpen() bool { return m.open }

// CurrentTab returns the visible tab.
func (m *Modal) CurrentTab() media.Tab { return m.tabs.Current() }

// CurrentTrack returns the track under the player's cursor. Before the player exists it is the configured start track.
func (m *Modal) CurrentTrack() (media.Track, bool) {
	if m.engine != nil {
		return m.engine.CurrentTrack()
	}
	return media.NewTrackList(m.session.Tracks(), m.session.Music.CurrentTrack).CurrentTrack()
}

// Session returns the session the modal was built from.
func (m *Modal) Session() config.Session { return m.session }

// Engine returns the music player, if it was built.
func (m *Modal) Engine() (*audio.Engine, bool) { return m.engine, m.engine != nil }

// LockState returns the close lock state.
func (m *Modal) LockState() lock.LockState { return m.lock.State() }

// ToggleVolumePopup shows or hides the volume popup.
func (m *Modal) ToggleVolumePopup() {
	if m.volumePopup {
		m.HideVolumePopup()
	} else {
		m.ShowVolumePopup()
	}
}

// ShowVolumePopup shows the volume popup.
func (m *Modal) ShowVolumePopup() {
	if m.volumePopup {
		return
	}
	m.volumePopup = true
	m.invalidate()
}

// HideVolumePopup hides the volume popup.
func (m *Modal) HideVolumePopup() {
	if m.hideVolumePopup() {
		m.invalidate()
	}
}

func (m *Modal) hideVolumePopup() bool {
	if !m.volumePopup {
		return false
	}
	m.volumePopup = false
	return true
}

// VolumePopup reports whether the volume popup is shown.
func (m *Modal) VolumePopup() bool { return m.volumePopup }

// ShowToast shows a notification. It does nothing when toasts are disabled.
func (m *Modal) ShowToast(message string) {
	if !m.session.Toast.Enabled {
		return
	}
	m.toast.Show(message)
}

// HideToast hides the notification.
func (m *Modal) HideToast() { m.toast.Hide() }

func (m *Modal) invalidate() {
	if m.deps.Renderer != nil {
		m.deps.Renderer.Invalidate()
	}
}
