package audio_test

import (
	"testing"
	"time"

	"github.com/burhanyldz/zindekal/active"
	"github.com/burhanyldz/zindekal/audio"
	"github.com/burhanyldz/zindekal/eventloop"
	"github.com/burhanyldz/zindekal/internal/mediatest"
	"github.com/burhanyldz/zindekal/media"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

type recorder struct {
	audio.NopListener
	tracks []int
	plays  []bool
	volume []float64
}

func (r *recorder) TrackChanged(index int, _ media.Track) { r.tracks = append(r.tracks, index) }
func (r *recorder) PlayStateChanged(playing bool) { r.plays = append(r.plays, playing) }
func (r *recorder) VolumeChanged(volume float64, _ bool) { r.volume = append(r.volume, volume) }

var threeTracks = []media.Track{
	{ID: "a", Src: "a.mp3", Title: "A"},
	{ID: "b", Src: "b.mp3", Title: "B"},
	{ID: "c", Src: "c.mp3", Title: "C"},
}

func newEngine(tracks []media.Track) (*audio.Engine, *mediatest.Audio, *eventloop.Manual, *recorder, *active.Coordinator) {
	clock := eventloop.NewManual()
	src := &mediatest.Audio{}
	rec := &recorder{}
	coord := active.New()

	e := audio.New(src.Factory(), tracks, 0, audio.Options{
		Scheduler:   clock,
		Coordinator: coord,
		Listener:    rec,
	})
	return e, src, clock, rec, coord
}

func TestNavigation(t *testing.T) {
	Convey("Given an engine playing track A of [A, B, C]", t, func() {
		e, src, _, rec, _ := newEngine(threeTracks)
		So(e.Play(), ShouldEqual, audio.Played)
		rec.tracks = nil

		Convey("NextTrack moves to B, resumes playback and reports the change once", func() {
			e.NextTrack()
			So(e.Current(), ShouldEqual, 1)
			So(e.State().Playing, ShouldBeTrue)
			So(src.Playing, ShouldBeTrue)
			So(src.Loaded.ID, ShouldEqual, "b")
			So(rec.tracks, ShouldResemble, []int{1})
		})

		Convey("NextTrack called Len times returns to the start", func() {
			for i := 0; i < len(threeTracks); i++ {
				e.NextTrack()
			}
			So(e.Current(), ShouldEqual, 0)
		})

		Convey("PreviousTrack wraps from the first track to the last", func() {
			e.PreviousTrack()
			So(e.Current(), ShouldEqual, 2)
		})

		Convey("Autoplay blocked on resume is swallowed", func() {
			src.PlayErr = media.ErrPlaybackBlocked
			e.NextTrack()
			So(e.Current(), ShouldEqual, 1)
			So(e.State().Playing, ShouldBeFalse)
		})
	})

	Convey("Given a paused engine", t, func() {
		e, src, _, _, _ := newEngine(threeTracks)

		Convey("NextTrack does not start playback", func() {
			e.NextTrack()
			So(e.State().Playing, ShouldBeFalse)
			So(src.Playing, ShouldBeFalse)
		})

		Convey("SelectTrack on the current index toggles play and pause", func() {
			So(e.SelectTrack(0), ShouldEqual, audio.Played)
			So(e.State().Playing, ShouldBeTrue)
			e.SelectTrack(0)
			So(e.State().Playing, ShouldBeFalse)
			So(src.Calls, ShouldResemble, []string{"load a", "play", "pause"})
		})

		Convey("SelectTrack on another index loads and plays it", func() {
			So(e.SelectTrack(2), ShouldEqual, audio.Played)
			So(e.Current(), ShouldEqual, 2)
			So(src.Loaded.ID, ShouldEqual, "c")
			So(e.State().Playing, ShouldBeTrue)
		})

		Convey("SelectTrack out of range is ignored", func() {
			So(e.SelectTrack(7), ShouldEqual, audio.Failed)
			So(e.Current(), ShouldEqual, 0)
		})
	})

	Convey("Load clamps an out of range start index", t, func() {
		e, src, _, _, _ := newEngine(nil)
		e.Load(threeTracks, 9)
		So(e.Current(), ShouldEqual, 2)
		So(src.Loaded.ID, ShouldEqual, "c")
		So(e.State().CurrentTime, ShouldEqual, 0)
	})

	Convey("A track without a source never starts", t, func() {
		e, src, _, _, coord := newEngine([]media.Track{{ID: "x", Title: "broken"}})
		So(e.Play(), ShouldEqual, audio.Failed)
		So(src.Calls, ShouldBeEmpty)
		_, ok := coord.Active()
		So(ok, ShouldBeFalse)
	})

	Convey("An empty playlist tolerates every call", t, func() {
		e, _, _, _, _ := newEngine(nil)
		e.NextTrack()
		e.PreviousTrack()
		So(e.Play(), ShouldEqual, audio.Failed)
		So(e.Current(), ShouldEqual, 0)
	})
}

func TestVolume(t *testing.T) {
	Convey("Given an engine at full volume", t, func() {
		e, src, _, _, _ := newEngine(threeTracks)

		Convey("SetVolume(0) mutes", func() {
			e.SetVolume(0)
			So(e.State().Muted, ShouldBeTrue)
			So(src.Muted, ShouldBeTrue)

			Convey("and a positive volume unmutes and is remembered", func() {
				e.SetVolume(0.3)
				s := e.State()
				So(s.Muted, ShouldBeFalse)
				So(s.PreviousVolume, ShouldEqual, 0.3)
				So(s.Volume, ShouldEqual, 0.3)
			})
		})

		Convey("SetVolume clamps into [0, 1]", func() {
			e.SetVolume(3)
			So(e.State().Volume, ShouldEqual, 1)
			e.SetVolume(-1)
			So(e.State().Volume, ShouldEqual, 0)
			So(e.State().Muted, ShouldBeTrue)
		})

		Convey("ToggleMute twice restores the exact volume", func() {
			e.SetVolume(0.37)
			e.ToggleMute()
			So(e.State().Muted, ShouldBeTrue)
			So(e.State().Volume, ShouldEqual, 0)
			e.ToggleMute()
			So(e.State().Muted, ShouldBeFalse)
			So(e.State().Volume, ShouldEqual, 0.37)
			So(src.Volume, ShouldEqual, 0.37)
		})

		Convey("Unmuting after muting through a zero volume falls back to the remembered level", func() {
			e.SetVolume(0.8)
			e.SetVolume(0)
			e.ToggleMute()
			So(e.State().Volume, ShouldEqual, 0.8)
		})
	})

	Convey("An engine starting silent unmutes to full volume", t, func() {
		clock := eventloop.NewManual()
		e := audio.New((&mediatest.Audio{}).Factory(), threeTracks, 0, audio.Options{
			Scheduler: clock,
			Volume:    mo.Some(0.0),
		})
		So(e.State().Muted, ShouldBeTrue)
		e.ToggleMute()
		So(e.State().Volume, ShouldEqual, 1)
	})
}

func TestSeekAndAutoAdvance(t *testing.T) {
	Convey("Given a playing engine with a loaded duration", t, func() {
		e, src, clock, rec, _ := newEngine(threeTracks)
		e.Play()
		e.HandleLoaded(200)
		rec.tracks = nil

		Convey("Seek clamps to the duration", func() {
			e.Seek(500)
			So(e.State().CurrentTime, ShouldEqual, 200)
			e.Seek(-4)
			So(e.State().CurrentTime, ShouldEqual, 0)
		})

		Convey("A drag previews without committing and release commits once", func() {
			e.PressSeek(0.25)
			e.DragSeek(0.5)
			So(e.State().CurrentTime, ShouldEqual, 100)
			So(src.Calls, ShouldNotContain, "seek 100.0")

			e.HandleTimeUpdate(12)
			So(e.State().CurrentTime, ShouldEqual, 100)

			e.ReleaseSeek()
			So(src.Pos, ShouldEqual, 100)
			So(e.State().Dragging, ShouldBeFalse)
			So(e.State().ManualSeek, ShouldBeTrue)
		})

		Convey("A natural end auto-advances and keeps playing", func() {
			e.HandleEnded()
			So(e.Current(), ShouldEqual, 1)
			So(e.State().Playing, ShouldBeTrue)
			So(rec.tracks, ShouldResemble, []int{1})
		})

		Convey("An end inside the manual-seek window does not advance", func() {
			e.ClickSeek(0.99)
			e.HandleEnded()
			So(e.Current(), ShouldEqual, 0)
			So(e.State().Playing, ShouldBeFalse)
			So(e.State().ManualSeek, ShouldBeFalse)
		})

		Convey("An end during a drag does not advance", func() {
			e.PressSeek(0.9)
			e.HandleEnded()
			So(e.Current(), ShouldEqual, 0)
		})

		Convey("An end after the window has passed advances", func() {
			e.ClickSeek(0.5)
			clock.Advance(600 * time.Millisecond)
			e.HandleEnded()
			So(e.Current(), ShouldEqual, 1)
		})
	})

	Convey("A single track ends without advancing", t, func() {
		e, _, _, _, _ := newEngine(threeTracks[:1])
		e.Play()
		e.HandleEnded()
		So(e.Current(), ShouldEqual, 0)
		So(e.State().Playing, ShouldBeFalse)
	})
}

func TestCoordination(t *testing.T) {
	Convey("Given a playing engine", t, func() {
		e, src, clock, _, coord := newEngine(threeTracks)
		e.Play()

		Convey("It holds the active handle", func() {
			So(coord.Holder().SourceID(), ShouldEqual, media.AudioSource)
		})

		Convey("Being deactivated pauses it", func() {
			coord.Stop()
			So(e.State().Playing, ShouldBeFalse)
			So(src.Playing, ShouldBeFalse)
		})

		Convey("Played seconds accumulate only while playing", func() {
			clock.Advance(3 * time.Second)
			e.Pause()
			clock.Advance(5 * time.Second)
			So(e.PlayedSeconds(), ShouldEqual, 3)
		})

		Convey("Close releases everything and cancels timers", func() {
			e.Close()
			So(src.Closed, ShouldBeTrue)
			So(clock.Pending(), ShouldEqual, 0)
			_, ok := coord.Active()
			So(ok, ShouldBeFalse)
			So(e.Play(), ShouldEqual, audio.Failed)
		})
	})
}
