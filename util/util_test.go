package util

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFormatClock(t *testing.T) {
	Convey("FormatClock", t, func() {
		So(FormatClock(0), ShouldEqual, "00:00")
		So(FormatClock(65.9), ShouldEqual, "01:05")
		So(FormatClock(3599), ShouldEqual, "59:59")
		So(FormatClock(-3), ShouldEqual, "00:00")
		So(FormatClock(math.NaN()), ShouldEqual, "00:00")
	})
}

func TestPercent(t *testing.T) {
	Convey("Percent", t, func() {
		So(Percent(0.5), ShouldEqual, "50%")
		So(Percent(0.345), ShouldEqual, "35%")
		So(Percent(2), ShouldEqual, "100%")
	})
}

func TestClamp(t *testing.T) {
	Convey("Clamp", t, func() {
		So(Clamp(5, 0, 3), ShouldEqual, 3)
		So(Clamp(-1.5, 0, 1), ShouldEqual, 0)
		So(Clamp(0.25, 0, 1), ShouldEqual, 0.25)
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "video", "videos"), ShouldEqual, "1 video")
		So(Quantify(2, "video", "videos"), ShouldEqual, "2 videos")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("music"), ShouldEqual, "Music")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestFileStem(t *testing.T) {
	Convey("FileStem", t, func() {
		So(FileStem("music/rain-on-leaves.mp3"), ShouldEqual, "rain-on-leaves")
		So(FileStem("track"), ShouldEqual, "track")
	})
}
