package cmd

import (
	"os"

	"github.com/burhanyldz/zindekal/color"
	"github.com/burhanyldz/zindekal/style"
	"github.com/burhanyldz/zindekal/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

type location struct {
	name     string
	path     func() string
	argLong  string
	argShort mo.Option[string]
	hidden   bool
}

var locations = []*location{
	{"Config", where.Config, "config", mo.Some("c"), false},
	{"Session", where.Session, "session", mo.Some("s"), false},
	{"Media", where.Media, "media", mo.Some("m"), false},
	{"Logs", where.Logs, "logs", mo.Some("l"), false},
	{"Temp", where.Temp, "temp", mo.None[string](), true},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, l := range locations {
		if short, ok := l.argShort.Get(); ok {
			whereCmd.Flags().BoolP(l.argLong, short, false, l.name+" path")
		} else {
			whereCmd.Flags().Bool(l.argLong, false, l.name+" path")
		}

		if l.hidden {
			lo.Must0(whereCmd.Flags().MarkHidden(l.argLong))
		}
	}

	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(locations, func(l *location, _ int) string {
		return l.argLong
	})...)

	whereCmd.SetOut(os.Stdout)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration, sessions, media and logs live",
	Run: func(cmd *cobra.Command, args []string) {
		headerStyle := style.New().Bold(true).Foreground(color.HiPurple).Render

		for _, l := range locations {
			if lo.Must(cmd.Flags().GetBool(l.argLong)) {
				cmd.Println(l.path())
				return
			}
		}

		visible := lo.Reject(locations, func(l *location, _ int) bool { return l.hidden })
		for i, l := range visible {
			cmd.Printf("%s %s\n", headerStyle(l.name+"?"), style.Fg(color.Yellow)("--"+l.argLong))
			cmd.Println(l.path())

			if i < len(visible)-1 {
				cmd.Println()
			}
		}
	},
}
