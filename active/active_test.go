package active

import (
	"testing"

	"github.com/burhanyldz/zindekal/media"
	. "github.com/smartystreets/goconvey/convey"
)

type participant struct {
	id          media.SourceID
	tab         media.Tab
	coord       *Coordinator
	deactivated int
	log         *[]string
}

func (p *participant) SourceID() media.SourceID { return p.id }
func (p *participant) Tab() media.Tab { return p.tab }
func (p *participant) Deactivate() {
	p.deactivated++
	*p.log = append(*p.log, "deactivate "+p.id.String())
	// A torn down video releases its own handle; this must be harmless.
	p.coord.Release(p.id)
}

func TestCoordinator(t *testing.T) {
	Convey("Given a coordinator with an audio and two video participants", t, func() {
		var events []string
		c := New()
		c.OnChange = func(id media.SourceID) { events = append(events, "active "+id.String()) }

		audio := &participant{id: media.AudioSource, coord: c, log: &events}
		a := &participant{id: media.VideoSource("a.mp4"), tab: media.TabExercise, coord: c, log: &events}
		b := &participant{id: media.VideoSource("b.mp4"), tab: media.TabRelaxing, coord: c, log: &events}

		Convey("Activating a new source tears down the previous one first", func() {
			c.RequestActivate(a)
			c.RequestActivate(b)

			So(a.deactivated, ShouldEqual, 1)
			id, ok := c.Active()
			So(ok, ShouldBeTrue)
			So(id, ShouldEqual, b.id)
			So(events, ShouldResemble, []string{
				"active video:a.mp4",
				"deactivate video:a.mp4",
				"active video:b.mp4",
			})
		})

		Convey("Re-requesting the current holder is a no-op", func() {
			c.RequestActivate(a)
			c.RequestActivate(a)
			So(a.deactivated, ShouldEqual, 0)
			So(events, ShouldHaveLength, 1)
		})

		Convey("Release only clears a matching holder", func() {
			c.RequestActivate(audio)
			So(c.Release(a.id), ShouldBeFalse)
			So(c.Holder().SourceID(), ShouldEqual, media.AudioSource)
			So(c.Release(media.AudioSource), ShouldBeTrue)
			_, ok := c.Active()
			So(ok, ShouldBeFalse)
		})

		Convey("Leaving a tab only deactivates a video hosted there", func() {
			c.RequestActivate(a)
			So(c.LeaveTab(media.TabRelaxing), ShouldBeFalse)
			So(c.LeaveTab(media.TabExercise), ShouldBeTrue)
			So(a.deactivated, ShouldEqual, 1)

			c.RequestActivate(audio)
			So(c.LeaveTab(media.TabMusic), ShouldBeFalse)
			So(c.Holder().SourceID(), ShouldEqual, media.AudioSource)
		})

		Convey("Stop deactivates the holder", func() {
			c.RequestActivate(audio)
			c.Stop()
			So(audio.deactivated, ShouldEqual, 1)
			So(c.Holder(), ShouldBeNil)

			c.Stop()
			So(audio.deactivated, ShouldEqual, 1)
		})
	})
}
