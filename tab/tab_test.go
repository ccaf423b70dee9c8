package tab

import (
	"testing"

	"github.com/burhanyldz/zindekal/active"
	"github.com/burhanyldz/zindekal/media"
	. "github.com/smartystreets/goconvey/convey"
)

type video struct {
	src         string
	tab         media.Tab
	deactivated bool
}

func (v *video) SourceID() media.SourceID { return media.VideoSource(v.src) }
func (v *video) Tab() media.Tab { return v.tab }
func (v *video) Deactivate() { v.deactivated = true }

type recorder struct {
	tabs  [][2]media.Tab
	grids []GridView
}

func (r *recorder) TabChanged(next, prev media.Tab) { r.tabs = append(r.tabs, [2]media.Tab{next, prev}) }
func (r *recorder) GridChanged(view GridView) { r.grids = append(r.grids, view) }

func newController(coord *active.Coordinator, rec *recorder, musicBuilt *int) *Controller {
	return New(Options{
		Initial: media.TabMusic,
		Categories: []media.Category{
			{ID: "neck", Title: "Neck"},
			{ID: "eye", Title: "Eye"},
			{ID: "back", Title: "Back"},
		},
		Exercise: []media.VideoRef{
			{ID: "1", Src: "neck-1.mp4", CategoryID: "neck"},
			{ID: "2", Src: "neck-2.mp4", CategoryID: "neck"},
			{ID: "3", Src: "back-1.mp4", CategoryID: "back"},
		},
		Relaxing:    []media.VideoRef{{ID: "r", Src: "sea.mp4"}},
		Coordinator: coord,
		Listener:    rec,
		EnterMusic:  func() { *musicBuilt++ },
	})
}

func TestSwitchTab(t *testing.T) {
	Convey("Given a controller on the music tab", t, func() {
		coord := active.New()
		rec := &recorder{}
		var musicBuilt int
		c := newController(coord, rec, &musicBuilt)

		Convey("Entering exercise selects the first category", func() {
			So(c.SwitchTab(media.TabExercise), ShouldBeTrue)
			So(c.Category(), ShouldEqual, "neck")
			So(c.Grid().Videos, ShouldHaveLength, 2)
			So(rec.tabs, ShouldResemble, [][2]media.Tab{{media.TabExercise, media.TabMusic}})
		})

		Convey("Switching back preserves the selected category", func() {
			c.SwitchTab(media.TabExercise)
			c.SelectCategory("back")
			c.SwitchTab(media.TabRelaxing)
			c.SwitchTab(media.TabExercise)
			So(c.Category(), ShouldEqual, "back")
		})

		Convey("Unknown, disabled and current tabs are ignored", func() {
			So(c.SwitchTab("gym"), ShouldBeFalse)
			So(c.SwitchTab(media.TabMusic), ShouldBeFalse)
			So(rec.tabs, ShouldBeEmpty)

			limited := New(Options{Enabled: []media.Tab{media.TabExercise, media.TabMusic}})
			So(limited.SwitchTab(media.TabRelaxing), ShouldBeFalse)
			So(limited.Current(), ShouldEqual, media.TabExercise)
		})

		Convey("Entering music runs the lazy hook", func() {
			c.SwitchTab(media.TabRelaxing)
			c.SwitchTab(media.TabMusic)
			So(musicBuilt, ShouldEqual, 1)
		})

		Convey("Leaving a tab tears down its live video", func() {
			c.SwitchTab(media.TabRelaxing)
			live := &video{src: "sea.mp4", tab: media.TabRelaxing}
			coord.RequestActivate(live)

			c.SwitchTab(media.TabExercise)
			So(live.deactivated, ShouldBeTrue)
			_, ok := coord.Active()
			So(ok, ShouldBeFalse)
		})

		Convey("Visibility waiters run after the switch", func() {
			var got []bool
			c.WhenVisible(media.TabRelaxing, func(ok bool) { got = append(got, ok) })
			c.WhenVisible(media.TabExercise, func(ok bool) { got = append(got, ok) })

			c.SwitchTab(media.TabRelaxing)
			So(got, ShouldResemble, []bool{true, false})

			c.SwitchTab(media.TabExercise)
			So(got, ShouldHaveLength, 2)
		})

		Convey("A cancelled waiter never runs", func() {
			ran := false
			cancel := c.WhenVisible(media.TabRelaxing, func(bool) { ran = true })
			cancel()
			c.SwitchTab(media.TabRelaxing)
			So(ran, ShouldBeFalse)
		})

		Convey("A waiter for the visible tab runs immediately", func() {
			ran := false
			c.WhenVisible(media.TabMusic, func(ok bool) { ran = ok })
			So(ran, ShouldBeTrue)
		})
	})
}

func TestSelectCategory(t *testing.T) {
	Convey("Given a controller on the exercise tab", t, func() {
		coord := active.New()
		rec := &recorder{}
		var musicBuilt int
		c := newController(coord, rec, &musicBuilt)
		c.SwitchTab(media.TabExercise)
		rec.grids = nil

		Convey("A category without videos renders the empty state", func() {
			So(c.SelectCategory("eye"), ShouldBeTrue)
			grid := c.Grid()
			So(grid.Empty, ShouldBeTrue)
			So(grid.Message, ShouldEqual, EmptyMessage)
			So(rec.grids, ShouldHaveLength, 1)
		})

		Convey("Reselecting is idempotent", func() {
			c.SelectCategory("neck")
			first := c.Grid()
			c.SelectCategory("neck")
			So(c.Grid(), ShouldResemble, first)
		})

		Convey("An unknown category is ignored", func() {
			So(c.SelectCategory("ankle"), ShouldBeFalse)
			So(c.Category(), ShouldEqual, "neck")
			So(rec.grids, ShouldBeEmpty)
		})

		Convey("A live exercise video dropped from the grid is torn down", func() {
			live := &video{src: "neck-1.mp4", tab: media.TabExercise}
			coord.RequestActivate(live)

			c.SelectCategory("back")
			So(live.deactivated, ShouldBeTrue)
		})

		Convey("A live exercise video still in the grid survives", func() {
			live := &video{src: "neck-2.mp4", tab: media.TabExercise}
			coord.RequestActivate(live)

			c.SelectCategory("neck")
			So(live.deactivated, ShouldBeFalse)
			So(coord.Holder().SourceID(), ShouldEqual, live.SourceID())
		})

		Convey("Live media elsewhere is unaffected", func() {
			live := &video{src: "sea.mp4", tab: media.TabRelaxing}
			coord.RequestActivate(live)

			c.SelectCategory("eye")
			So(live.deactivated, ShouldBeFalse)
		})
	})
}
