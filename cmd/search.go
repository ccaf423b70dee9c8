package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/burhanyldz/zindekal/color"
	"github.com/burhanyldz/zindekal/config"
	"github.com/burhanyldz/zindekal/icon"
	"github.com/burhanyldz/zindekal/media"
	"github.com/burhanyldz/zindekal/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntP("limit", "n", 10, "Show at most this many results per section")
	searchCmd.SetOut(os.Stdout)
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Find videos and tracks of the session by title",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			query = strings.Join(args, " ")
			limit = lo.Must(cmd.Flags().GetInt("limit"))
		)

		session, err := config.LoadSession("")
		handleErr(err)

		section := func(title string, lines []string) {
			cmd.Println(style.New().Bold(true).Foreground(color.HiPurple).Render(title))
			if len(lines) == 0 {
				cmd.Println(style.Faint("  " + icon.Get(icon.Empty) + " no matches"))
				return
			}
			if limit > 0 && len(lines) > limit {
				lines = lines[:limit]
			}
			for _, l := range lines {
				cmd.Println("  " + l)
			}
		}

		videoLine := func(v media.VideoRef, _ int) string {
			if v.CategoryID == "" {
				return v.Title
			}
			return fmt.Sprintf("%s %s", v.Title, style.Faint("#"+v.CategoryID))
		}

		section(session.Tabs.Exercise.Title, lo.Map(media.SearchVideos(session.ExerciseVideos(), query), videoLine))
		cmd.Println()
		section(session.Tabs.Relaxing.Title, lo.Map(media.SearchVideos(session.RelaxingVideos(), query), videoLine))
		cmd.Println()

		tracks := session.Tracks()
		section(session.Tabs.Music.Title, lo.Map(media.SearchTracks(tracks, query), func(i int, _ int) string {
			t := tracks[i]
			if artist, ok := t.Artist.Get(); ok {
				return t.Title + style.Faint(" · "+artist)
			}
			return t.Title
		}))
	},
}
