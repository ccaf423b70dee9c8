package icon

import (
	"testing"

	"github.com/burhanyldz/zindekal/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	Convey("Every registered icon renders in every variant", t, func() {
		for _, variant := range AvailableVariants() {
			viper.Set(key.IconsVariant, variant)
			for i := range icons {
				So(Get(i), ShouldNotBeEmpty)
			}
		}
	})

	Convey("An unknown variant falls back to plain glyphs", t, func() {
		viper.Set(key.IconsVariant, "")
		So(Get(Play), ShouldEqual, ">")
		viper.Set(key.IconsVariant, "braille")
		So(Get(Lock), ShouldEqual, "#")
	})

	Convey("An unregistered icon renders nothing", t, func() {
		viper.Set(key.IconsVariant, emoji)
		So(Get(Icon(-1)), ShouldBeEmpty)
	})
}
