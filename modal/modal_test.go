package modal_test

import (
	"context"
	"testing"
	"time"

	"github.com/burhanyldz/zindekal/config"
	"github.com/burhanyldz/zindekal/eventloop"
	"github.com/burhanyldz/zindekal/internal/mediatest"
	"github.com/burhanyldz/zindekal/media"
	"github.com/burhanyldz/zindekal/modal"
	"github.com/burhanyldz/zindekal/slot"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

type recorder struct {
	modal.NopHooks
	calls []string
}

func (r *recorder) OnOpen(context.Context, *modal.Modal) { r.calls = append(r.calls, "open") }
func (r *recorder) OnClose(context.Context, *modal.Modal) { r.calls = append(r.calls, "close") }

func (r *recorder) OnTabChange(_ context.Context, _ *modal.Modal, next, prev media.Tab) {
	r.calls = append(r.calls, "tab "+prev.String()+">"+next.String())
}

func (r *recorder) OnVideoPlay(_ context.Context, _ *modal.Modal, v media.VideoRef) {
	r.calls = append(r.calls, "video-play "+v.ID)
}

func (r *recorder) OnAudioPlay(_ context.Context, _ *modal.Modal, t media.Track) {
	r.calls = append(r.calls, "audio-play "+t.ID)
}

func (r *recorder) OnAudioPause(_ context.Context, _ *modal.Modal, t media.Track) {
	r.calls = append(r.calls, "audio-pause "+t.ID)
}

func session() config.Session {
	on := func(title string) config.TabConfig { return config.TabConfig{Title: title, Enabled: true} }
	return config.Session{
		Title:      "Break",
		InitialTab: media.TabExercise,
		Tabs:       config.Tabs{Exercise: on("Exercises"), Music: on("Music"), Relaxing: on("Videos")},
		Exercise: config.Exercise{
			Categories: []media.Category{{ID: "neck", Title: "Neck"}, {ID: "eye", Title: "Eyes"}, {ID: "walk", Title: "Walking"}},
			Videos: []config.Video{
				{ID: "e1", Src: "/v/neck.mp4", Title: "Neck tilts", CategoryID: "neck"},
				{ID: "e2", Src: "/v/eye.mp4", Title: "Eye rest", CategoryID: "eye"},
			},
		},
		Relaxing: config.Relaxing{Videos: []config.Video{{ID: "r1", Src: "/v/sea.mp4", Title: "Sea"}}},
		Music: config.Music{
			Tracks: []config.Track{
				{ID: "t1", Src: "/m/one.mp3", Title: "One", Artist: "A"},
				{ID: "t2", Src: "/m/two.mp3", Title: "Two"},
			},
			Volume: 0.8,
		},
		Modal: config.Modal{EnableLock: true, LockDuration: 3},
		Toast: config.Toast{Enabled: true, Message: "Not yet", AutoHideDelay: 1000},
	}
}

type fixture struct {
	clock    *eventloop.Manual
	audio    *mediatest.Audio
	surfaces *mediatest.Surfaces
	hooks    *recorder
	redraws  int
	m        *modal.Modal
}

func newFixture(s config.Session) *fixture {
	f := &fixture{
		clock:    eventloop.NewManual(),
		audio:    &mediatest.Audio{},
		surfaces: &mediatest.Surfaces{},
		hooks:    &recorder{},
	}

	m, err := modal.New(s, modal.Deps{
		Scheduler: f.clock,
		Audio:     f.audio.Factory(),
		Surfaces:  f.surfaces,
		Renderer:  modal.RendererFunc(func() { f.redraws++ }),
		Hooks:     f.hooks,
	})
	So(err, ShouldBeNil)
	f.m = m
	return f
}

func playVideo(id, src string) modal.Intent {
	return modal.Intent{Type: modal.IntentPlayVideo, Payload: modal.VideoTarget{Src: src, ID: id}}
}

func TestNew(t *testing.T) {
	Convey("New", t, func() {
		Convey("Refuses an invalid session", func() {
			s := session()
			s.Tabs = config.Tabs{}
			_, err := modal.New(s, modal.Deps{Scheduler: eventloop.NewManual()})
			So(err, ShouldNotBeNil)
		})

		Convey("Refuses to run without a scheduler", func() {
			_, err := modal.New(session(), modal.Deps{})
			So(err, ShouldEqual, modal.ErrNoScheduler)
		})

		Convey("Accepts a music tab without tracks", func() {
			s := session()
			s.Music.Tracks = nil
			f := newFixture(s)
			f.m.Open(modal.OpenOptions{})

			So(f.m.Dispatch(modal.Intent{Type: modal.IntentTab, Payload: media.TabMusic}), ShouldBeTrue)
			_, built := f.m.Engine()
			So(built, ShouldBeFalse)
			So(f.m.Dispatch(modal.Intent{Type: modal.IntentTogglePlay}), ShouldBeFalse)
		})
	})
}

func TestLifecycle(t *testing.T) {
	Convey("Given a closed modal with a three second lock", t, func() {
		f := newFixture(session())
		So(f.m.IsOpen(), ShouldBeFalse)
		So(f.m.Close(), ShouldEqual, modal.NotOpen)

		f.m.Open(modal.OpenOptions{})

		Convey("Opening on the exercise tab selects the first category", func() {
			snap := f.m.Snapshot()
			So(snap.Open, ShouldBeTrue)
			So(snap.Grid.CategoryID, ShouldEqual, "neck")
			So(snap.Videos, ShouldHaveLength, 1)
			So(snap.Videos[0].Video.ID, ShouldEqual, "e1")
			So(snap.Categories[0].Active, ShouldBeTrue)
			So(snap.Categories[2].Count, ShouldEqual, 0)
			So(f.hooks.calls, ShouldResemble, []string{"open"})
		})

		Convey("Closing is refused while locked and the toast explains it", func() {
			So(f.m.Close(), ShouldEqual, modal.Locked)
			So(f.m.IsOpen(), ShouldBeTrue)
			So(f.m.Snapshot().Toast, ShouldEqual, "Not yet")
			So(f.m.Snapshot().Countdown, ShouldEqual, "0:03")

			f.clock.Advance(time.Second)
			So(f.m.Snapshot().Toast, ShouldBeEmpty)

			f.clock.Advance(2 * time.Second)
			So(f.m.LockState().CanClose, ShouldBeTrue)
			So(f.m.Close(), ShouldEqual, modal.Closed)
			So(f.hooks.calls, ShouldResemble, []string{"open", "close"})
		})

		Convey("Open options win over the session", func() {
			g := newFixture(session())
			g.m.Open(modal.OpenOptions{EnableLock: mo.Some(false)})
			So(g.m.Close(), ShouldEqual, modal.Closed)

			g.m.Open(modal.OpenOptions{LockDuration: mo.Some(0)})
			So(g.m.LockState().CanClose, ShouldBeTrue)
		})

		Convey("Closing tears every live medium down", func() {
			f.m.Dispatch(playVideo("e1", "/v/neck.mp4"))
			So(f.surfaces.Live(), ShouldHaveLength, 1)

			f.clock.Advance(3 * time.Second)
			So(f.m.Close(), ShouldEqual, modal.Closed)
			So(f.surfaces.Live(), ShouldBeEmpty)
			So(f.m.Snapshot().Active, ShouldEqual, media.SourceID(""))
			So(f.m.Dispatch(playVideo("e1", "/v/neck.mp4")), ShouldBeFalse)
		})

		Convey("Destroy bypasses the lock and cancels every timer", func() {
			f.m.Dispatch(modal.Intent{Type: modal.IntentTogglePlay})
			So(f.audio.Playing, ShouldBeTrue)

			f.m.Destroy()
			f.m.Destroy()
			So(f.m.IsOpen(), ShouldBeFalse)
			So(f.audio.Closed, ShouldBeTrue)
			So(f.clock.Pending(), ShouldEqual, 0)

			f.m.Open(modal.OpenOptions{})
			So(f.m.IsOpen(), ShouldBeFalse)
		})

		Convey("UpdateSession rebuilds and reopens", func() {
			err := f.m.UpdateSession(config.Patch{Title: mo.Some("Stretch"), EnableLock: mo.Some(false)})
			So(err, ShouldBeNil)
			So(f.m.IsOpen(), ShouldBeTrue)
			So(f.m.Snapshot().Title, ShouldEqual, "Stretch")
			So(f.m.Close(), ShouldEqual, modal.Closed)
		})

		Convey("UpdateSession keeps the modal on an invalid patch", func() {
			err := f.m.UpdateSession(config.Patch{Volume: mo.Some(4.0)})
			So(err, ShouldNotBeNil)
			So(f.m.IsOpen(), ShouldBeTrue)
		})
	})
}

func TestPlayback(t *testing.T) {
	Convey("Given an open modal without a lock", t, func() {
		s := session()
		s.Modal.EnableLock = false
		f := newFixture(s)
		f.m.Open(modal.OpenOptions{})

		Convey("A video card starts an inline surface and reports play", func() {
			So(f.m.Dispatch(playVideo("e1", "/v/neck.mp4")), ShouldBeTrue)
			surface := f.surfaces.Last()
			surface.Ready()
			So(surface.Playing, ShouldBeTrue)

			surface.Emit(slot.EventPlay, nil)
			So(f.hooks.calls, ShouldContain, "video-play e1")
			So(f.m.Snapshot().Videos[0].State, ShouldEqual, slot.Playing)
			So(string(f.m.Snapshot().Active), ShouldEqual, "video:/v/neck.mp4")
		})

		Convey("Starting music tears the video down", func() {
			f.m.Dispatch(playVideo("e1", "/v/neck.mp4"))
			surface := f.surfaces.Last()

			So(f.m.Dispatch(modal.Intent{Type: modal.IntentTogglePlay}), ShouldBeTrue)
			So(surface.Destroyed, ShouldBeTrue)
			So(f.audio.Playing, ShouldBeTrue)
			So(f.m.Snapshot().Active, ShouldEqual, media.AudioSource)
			So(f.hooks.calls, ShouldContain, "audio-play t1")
		})

		Convey("Starting a video pauses the music", func() {
			f.m.Dispatch(modal.Intent{Type: modal.IntentTogglePlay})
			f.m.Dispatch(playVideo("e1", "/v/neck.mp4"))

			So(f.audio.Playing, ShouldBeFalse)
			So(f.hooks.calls, ShouldContain, "audio-pause t1")
			So(f.surfaces.Live(), ShouldHaveLength, 1)
		})

		Convey("Leaving the tab tears its video down", func() {
			f.m.Dispatch(playVideo("e1", "/v/neck.mp4"))
			f.m.Dispatch(modal.Intent{Type: modal.IntentTab, Payload: media.TabMusic})

			So(f.surfaces.Live(), ShouldBeEmpty)
			So(f.m.CurrentTab(), ShouldEqual, media.TabMusic)
			So(f.hooks.calls, ShouldContain, "tab exercise>music")
			So(f.m.Snapshot().Music.Ready, ShouldBeTrue)
		})

		Convey("A video on a hidden tab brings its tab forward first", func() {
			So(f.m.Dispatch(playVideo("r1", "/v/sea.mp4")), ShouldBeTrue)
			So(f.m.CurrentTab(), ShouldEqual, media.TabRelaxing)
			So(f.surfaces.Last().Video.ID, ShouldEqual, "r1")
		})

		Convey("Changing category drops a video that left the grid", func() {
			f.m.Dispatch(playVideo("e1", "/v/neck.mp4"))
			f.m.Dispatch(modal.Intent{Type: modal.IntentCategory, Payload: "eye"})

			So(f.surfaces.Live(), ShouldBeEmpty)
			snap := f.m.Snapshot()
			So(snap.Videos[0].Video.ID, ShouldEqual, "e2")

			f.m.Dispatch(modal.Intent{Type: modal.IntentCategory, Payload: "walk"})
			So(f.m.Snapshot().Grid.Empty, ShouldBeTrue)
		})

		Convey("Volume and seek intents reach the player", func() {
			f.m.Dispatch(modal.Intent{Type: modal.IntentSetVolume, Payload: 0.25})
			So(f.audio.Volume, ShouldAlmostEqual, 0.25)

			f.m.Dispatch(modal.Intent{Type: modal.IntentToggleMute})
			So(f.m.Snapshot().Music.State.Muted, ShouldBeTrue)

			f.audio.Events.HandleLoaded(100)
			f.m.Dispatch(modal.Intent{Type: modal.IntentSeekClick, Payload: 0.5})
			So(f.audio.Pos, ShouldAlmostEqual, 50)

			f.m.Dispatch(modal.Intent{Type: modal.IntentToggleVolume})
			So(f.m.Snapshot().VolumePopup, ShouldBeTrue)
			f.m.Dispatch(modal.Intent{Type: modal.IntentTab, Payload: media.TabRelaxing})
			So(f.m.VolumePopup(), ShouldBeFalse)
		})

		Convey("Track navigation follows the playlist", func() {
			f.m.Dispatch(modal.Intent{Type: modal.IntentNextTrack})
			track, _ := f.m.CurrentTrack()
			So(track.ID, ShouldEqual, "t2")

			f.m.Dispatch(modal.Intent{Type: modal.IntentSelectTrack, Payload: 0})
			So(f.audio.Loaded.ID, ShouldEqual, "t1")
			So(f.audio.Playing, ShouldBeTrue)
		})

		Convey("Malformed and unknown intents are ignored", func() {
			So(f.m.Dispatch(modal.Intent{Type: modal.IntentSelectTrack, Payload: "first"}), ShouldBeFalse)
			So(f.m.Dispatch(modal.Intent{Type: "dance"}), ShouldBeFalse)
			So(f.m.Dispatch(playVideo("x", "/v/unknown.mp4")), ShouldBeFalse)
		})

		Convey("Autoplay starts the music when the player is built while open", func() {
			s := session()
			s.Music.Autoplay = true
			s.Modal.EnableLock = false
			g := newFixture(s)
			g.m.Open(modal.OpenOptions{})
			g.m.Dispatch(modal.Intent{Type: modal.IntentTab, Payload: media.TabMusic})
			So(g.audio.Playing, ShouldBeTrue)
		})

		Convey("A play request that builds the player plays once, without autoplay undoing it", func() {
			s := session()
			s.Music.Autoplay = true
			s.Modal.EnableLock = false
			g := newFixture(s)
			g.m.Open(modal.OpenOptions{})
			So(g.m.CurrentTab(), ShouldEqual, media.TabExercise)

			So(g.m.Dispatch(modal.Intent{Type: modal.IntentTogglePlay}), ShouldBeTrue)
			So(g.audio.Playing, ShouldBeTrue)
			So(g.m.Snapshot().Music.State.Playing, ShouldBeTrue)
			So(g.hooks.calls, ShouldResemble, []string{"open", "audio-play t1"})
		})
	})
}
