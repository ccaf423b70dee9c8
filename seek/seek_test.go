package seek

import (
	"testing"
	"time"

	"github.com/burhanyldz/zindekal/eventloop"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFraction(t *testing.T) {
	Convey("Fraction clamps pointer positions onto the bar", t, func() {
		So(Fraction(50, 0, 100), ShouldEqual, 0.5)
		So(Fraction(-10, 0, 100), ShouldEqual, 0)
		So(Fraction(250, 0, 100), ShouldEqual, 1)
		So(Fraction(30, 10, 40), ShouldEqual, 0.5)
		So(Fraction(30, 10, 0), ShouldEqual, 0)
	})

	Convey("Position scales a fraction by the duration", t, func() {
		So(Position(0.25, 200), ShouldEqual, 50)
		So(Position(0.5, 0), ShouldEqual, 0)
	})
}

func TestController(t *testing.T) {
	Convey("Given a seek controller", t, func() {
		clock := eventloop.NewManual()
		c := New(clock, 0)

		Convey("A drag previews and commits only the final position", func() {
			So(c.Press(0.1, 100), ShouldAlmostEqual, 10)
			So(c.Dragging(), ShouldBeTrue)
			So(c.ManualSeek(), ShouldBeTrue)
			So(c.TooltipVisible(), ShouldBeTrue)

			c.Drag(0.3, 100)
			So(c.Drag(0.6, 100), ShouldAlmostEqual, 60)

			pos, ok := c.Release()
			So(ok, ShouldBeTrue)
			So(pos, ShouldAlmostEqual, 60)
			So(c.Dragging(), ShouldBeFalse)

			Convey("The manual-seek flag outlives the release by the window", func() {
				clock.Advance(TooltipLinger)
				So(c.TooltipVisible(), ShouldBeFalse)
				So(c.ManualSeek(), ShouldBeTrue)

				clock.Advance(DefaultManualWindow - TooltipLinger)
				So(c.ManualSeek(), ShouldBeFalse)
			})
		})

		Convey("Release without a press commits nothing", func() {
			_, ok := c.Release()
			So(ok, ShouldBeFalse)
		})

		Convey("A click commits immediately and opens the window", func() {
			pos, ok := c.Click(0.5, 40)
			So(ok, ShouldBeTrue)
			So(pos, ShouldEqual, 20)
			So(c.ManualSeek(), ShouldBeTrue)

			Convey("A second click resets the window", func() {
				clock.Advance(400 * time.Millisecond)
				c.Click(0.2, 40)
				clock.Advance(400 * time.Millisecond)
				So(c.ManualSeek(), ShouldBeTrue)
				clock.Advance(100 * time.Millisecond)
				So(c.ManualSeek(), ShouldBeFalse)
			})
		})

		Convey("A press cancels a pending window so the flag holds for the whole drag", func() {
			c.Click(0.5, 40)
			c.Press(0.5, 40)
			clock.Advance(2 * time.Second)
			So(c.ManualSeek(), ShouldBeTrue)
		})

		Convey("Reset clears everything and cancels timers", func() {
			c.Click(0.5, 40)
			c.Reset()
			So(c.ManualSeek(), ShouldBeFalse)
			So(clock.Pending(), ShouldEqual, 0)
		})
	})
}
