package slot_test

import (
	"errors"
	"testing"

	"github.com/burhanyldz/zindekal/active"
	"github.com/burhanyldz/zindekal/internal/mediatest"
	"github.com/burhanyldz/zindekal/media"
	"github.com/burhanyldz/zindekal/slot"
	"github.com/burhanyldz/zindekal/tab"
	. "github.com/smartystreets/goconvey/convey"
)

var (
	neck  = media.VideoRef{ID: "1", Src: "neck.mp4", CategoryID: "neck"}
	eye   = media.VideoRef{ID: "2", Src: "eye.mp4", CategoryID: "eye"}
	ocean = media.VideoRef{ID: "3", Src: "ocean.mp4"}
)

type fixture struct {
	coord    *active.Coordinator
	surfaces *mediatest.Surfaces
	tabs     *tab.Controller
	set      *slot.Set
}

func newFixture() *fixture {
	f := &fixture{coord: active.New(), surfaces: &mediatest.Surfaces{}}
	f.tabs = tab.New(tab.Options{
		Initial:     media.TabExercise,
		Categories:  []media.Category{{ID: "neck"}, {ID: "eye"}},
		Exercise:    []media.VideoRef{neck, eye},
		Relaxing:    []media.VideoRef{ocean},
		Coordinator: f.coord,
	})
	f.set = slot.NewSet(&slot.Env{
		Coordinator: f.coord,
		Factory:     f.surfaces,
		Tabs:        f.tabs,
	})
	return f
}

func TestActivate(t *testing.T) {
	Convey("Given slots on the exercise and relaxing tabs", t, func() {
		f := newFixture()
		a := f.set.Add(media.TabExercise, neck)
		b := f.set.Add(media.TabExercise, eye)

		Convey("Activating creates a surface that auto-plays once ready", func() {
			So(a.Activate(), ShouldEqual, slot.Started)
			So(a.State(), ShouldEqual, slot.Loading)

			surface := f.surfaces.Last()
			surface.Ready()
			So(surface.Playing, ShouldBeTrue)

			surface.Emit(slot.EventPlay, nil)
			So(a.State(), ShouldEqual, slot.Playing)
			So(f.coord.Holder(), ShouldEqual, a)
		})

		Convey("Re-activating the live slot restarts nothing", func() {
			a.Activate()
			So(a.Activate(), ShouldEqual, slot.AlreadyActive)
			So(f.surfaces.Created, ShouldHaveLength, 1)
		})

		Convey("Activating B while A is live tears A down first", func() {
			a.Activate()
			f.surfaces.Last().Ready()

			So(b.Activate(), ShouldEqual, slot.Started)
			So(a.State(), ShouldEqual, slot.Thumbnail)
			So(f.surfaces.Created[0].Destroyed, ShouldBeTrue)
			So(f.surfaces.Live(), ShouldHaveLength, 1)
			So(f.coord.Holder(), ShouldEqual, b)
		})

		Convey("Events from a destroyed surface are ignored", func() {
			a.Activate()
			stale := f.surfaces.Last()
			a.Teardown()

			stale.Emit(slot.EventPlay, nil)
			So(a.State(), ShouldEqual, slot.Thumbnail)
		})

		Convey("Teardown is idempotent", func() {
			a.Activate()
			a.Teardown()
			a.Teardown()
			So(a.State(), ShouldEqual, slot.Thumbnail)
			_, ok := f.coord.Active()
			So(ok, ShouldBeFalse)
		})

		Convey("A surface error restores the thumbnail", func() {
			a.Activate()
			f.surfaces.Last().Emit(slot.EventError, errors.New("decode failed"))
			So(a.State(), ShouldEqual, slot.Thumbnail)
			So(f.surfaces.Last().Destroyed, ShouldBeTrue)
			_, ok := f.coord.Active()
			So(ok, ShouldBeFalse)
		})

		Convey("Autoplay rejection leaves the surface paused", func() {
			f.surfaces.PlayErr = media.ErrPlaybackBlocked
			a.Activate()
			f.surfaces.Last().Ready()
			So(a.State(), ShouldEqual, slot.Paused)
			So(f.coord.Holder(), ShouldEqual, a)
		})

		Convey("A failing backend leaves the thumbnail in place", func() {
			f.surfaces.CreateErr = errors.New("no mpv")
			So(a.Activate(), ShouldEqual, slot.Rejected)
			So(a.State(), ShouldEqual, slot.Thumbnail)
			_, ok := f.coord.Active()
			So(ok, ShouldBeFalse)
		})

		Convey("A video without a source is rejected", func() {
			broken := f.set.Add(media.TabExercise, media.VideoRef{ID: "x"})
			So(broken.Activate(), ShouldEqual, slot.Rejected)
			So(f.surfaces.Created, ShouldBeEmpty)
		})

		Convey("Fullscreen is tracked", func() {
			a.Activate()
			f.surfaces.Last().Emit(slot.EventEnterFullscreen, nil)
			So(a.Fullscreen(), ShouldBeTrue)
			f.surfaces.Last().Emit(slot.EventExitFullscreen, nil)
			So(a.Fullscreen(), ShouldBeFalse)
		})

		Convey("TogglePlay pauses and resumes the live surface", func() {
			a.Activate()
			surface := f.surfaces.Last()
			surface.Ready()
			surface.Emit(slot.EventPlay, nil)

			a.TogglePlay()
			So(surface.Playing, ShouldBeFalse)
			surface.Emit(slot.EventPause, nil)
			So(a.State(), ShouldEqual, slot.Paused)

			a.TogglePlay()
			So(surface.Playing, ShouldBeTrue)
		})
	})
}

func TestDeferredActivation(t *testing.T) {
	Convey("Given a relaxing video while the exercise tab is visible", t, func() {
		f := newFixture()
		s := f.set.Add(media.TabRelaxing, ocean)

		Convey("Activation switches tabs and commits once the tab is visible", func() {
			So(s.Activate(), ShouldEqual, slot.Started)
			So(f.tabs.Current(), ShouldEqual, media.TabRelaxing)
			So(s.Pending(), ShouldBeFalse)
			So(f.coord.Holder(), ShouldEqual, s)
		})

		Convey("A live exercise video is torn down by the tab switch", func() {
			a := f.set.Add(media.TabExercise, neck)
			a.Activate()

			s.Activate()
			So(a.State(), ShouldEqual, slot.Thumbnail)
			So(f.surfaces.Live(), ShouldHaveLength, 1)
		})
	})

	Convey("Given a controller whose switch does not make the tab visible yet", t, func() {
		coord := active.New()
		surfaces := &mediatest.Surfaces{}
		tabs := &lazyTabs{current: media.TabExercise}
		s := slot.New(&slot.Env{Coordinator: coord, Factory: surfaces, Tabs: tabs}, media.TabRelaxing, ocean)

		So(s.Activate(), ShouldEqual, slot.Deferred)
		So(s.Pending(), ShouldBeTrue)
		So(s.Activate(), ShouldEqual, slot.Deferred)
		So(surfaces.Created, ShouldBeEmpty)

		Convey("The activation commits when the tab becomes visible", func() {
			tabs.settle(media.TabRelaxing)
			So(s.State(), ShouldEqual, slot.Loading)
			So(coord.Holder(), ShouldEqual, s)
		})

		Convey("A switch elsewhere supersedes it", func() {
			tabs.settle(media.TabMusic)
			So(s.Pending(), ShouldBeFalse)
			So(surfaces.Created, ShouldBeEmpty)
		})

		Convey("Teardown cancels it", func() {
			s.Teardown()
			tabs.settle(media.TabRelaxing)
			So(surfaces.Created, ShouldBeEmpty)
		})
	})
}

func TestLookup(t *testing.T) {
	Convey("Lookup prefers the slot on the visible tab", t, func() {
		f := newFixture()
		shared := media.VideoRef{ID: "9", Src: "shared.mp4"}
		onExercise := f.set.Add(media.TabExercise, shared)
		onRelaxing := f.set.Add(media.TabRelaxing, shared)

		found, ok := f.set.Lookup("shared.mp4", "", media.TabRelaxing)
		So(ok, ShouldBeTrue)
		So(found, ShouldEqual, onRelaxing)

		found, _ = f.set.Lookup("shared.mp4", "", media.TabExercise)
		So(found, ShouldEqual, onExercise)

		_, ok = f.set.Lookup("missing.mp4", "", media.TabExercise)
		So(ok, ShouldBeFalse)
	})
}

// lazyTabs accepts a switch but only reports visibility when settle is called.
type lazyTabs struct {
	current media.Tab
	waiters []func(bool)
	wanted  []media.Tab
}

func (l *lazyTabs) Visible(t media.Tab) bool { return l.current == t }
func (l *lazyTabs) SwitchTab(media.Tab) bool { return true }

func (l *lazyTabs) WhenVisible(t media.Tab, fn func(bool)) func() {
	i := len(l.waiters)
	l.waiters = append(l.waiters, fn)
	l.wanted = append(l.wanted, t)
	return func() { l.waiters[i] = nil }
}

func (l *lazyTabs) settle(t media.Tab) {
	l.current = t
	for i, fn := range l.waiters {
		if fn != nil {
			fn(l.wanted[i] == t)
		}
	}
	l.waiters, l.wanted = nil, nil
}
