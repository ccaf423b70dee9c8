package where

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/burhanyldz/zindekal/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config() honors the override variable", func() {
			custom := filepath.Join(os.TempDir(), "zindekal-where-test")
			t.Setenv(EnvConfigPath, custom)

			So(Config(), ShouldEqual, custom)
			So(lo.Must(filesystem.API().IsDir(custom)), ShouldBeTrue)
			So(Session(), ShouldEqual, filepath.Join(custom, "session.toml"))
		})

		Convey("Logs() and Media() live under the config directory", func() {
			So(filepath.Dir(Logs()), ShouldEqual, Config())
			So(filepath.Dir(Media()), ShouldEqual, Config())
			So(lo.Must(filesystem.API().IsDir(Media())), ShouldBeTrue)
		})

		Convey("Temp()", func() {
			path := Temp()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})
	})
}
