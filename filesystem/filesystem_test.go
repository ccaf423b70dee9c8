package filesystem

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
		})
	})
}

func TestPlayable(t *testing.T) {
	Convey("Given an in-memory filesystem with one track", t, func() {
		SetMemMapFs()
		So(API().WriteFile("/music/rain.mp3", []byte("id3"), 0o644), ShouldBeNil)
		So(API().MkdirAll("/music/album", 0o755), ShouldBeNil)

		Convey("Local files must exist and be regular", func() {
			So(Playable("/music/rain.mp3"), ShouldBeTrue)
			So(Playable("file:///music/rain.mp3"), ShouldBeTrue)
			So(Playable("/music/missing.mp3"), ShouldBeFalse)
			So(Playable("/music/album"), ShouldBeFalse)
		})

		Convey("Remote and empty sources", func() {
			So(Playable("https://example.org/stream.mp3"), ShouldBeTrue)
			So(Playable("   "), ShouldBeFalse)
			So(IsRemote("file:///x.mp3"), ShouldBeFalse)
		})
	})
}
