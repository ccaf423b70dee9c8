package cmd

import (
	"fmt"
	"os"

	"github.com/burhanyldz/zindekal/color"
	"github.com/burhanyldz/zindekal/config"
	"github.com/burhanyldz/zindekal/icon"
	"github.com/burhanyldz/zindekal/key"
	"github.com/burhanyldz/zindekal/media"
	"github.com/burhanyldz/zindekal/playlist"
	"github.com/burhanyldz/zindekal/style"
	"github.com/burhanyldz/zindekal/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(playlistCmd)
	playlistCmd.SetOut(os.Stdout)
}

var playlistCmd = &cobra.Command{
	Use:     "playlist",
	Short:   "Show, import and export the music tracks of a break",
	Aliases: []string{"pl"},
	Run: func(cmd *cobra.Command, args []string) {
		session, err := config.LoadSession("")
		handleErr(err)
		printTracks(cmd, session.Tracks())
	},
}

func printTracks(cmd *cobra.Command, tracks []media.Track) {
	if len(tracks) == 0 {
		cmd.Println(style.Faint(icon.Get(icon.Empty) + " no tracks"))
		return
	}

	for i, t := range tracks {
		line := fmt.Sprintf("%s %s", style.Faint(fmt.Sprintf("%2d.", i+1)), style.Bold(t.Title))
		if artist, ok := t.Artist.Get(); ok {
			line += style.Faint(" · " + artist)
		}
		if t.Duration != "" {
			line += " " + style.Fg(color.Yellow)(t.Duration)
		}
		cmd.Println(line)
	}
}

func init() {
	playlistCmd.AddCommand(playlistImportCmd)
	playlistImportCmd.Flags().BoolP("save", "s", false, "Use this playlist for every break from now on")
	playlistImportCmd.SetOut(os.Stdout)
}

var playlistImportCmd = &cobra.Command{
	Use:   "import [file.m3u]",
	Short: "Read an m3u playlist and list its tracks",
	Args:  cobra.ExactArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"m3u"}, cobra.ShellCompDirectiveFilterFileExt
	},
	Run: func(cmd *cobra.Command, args []string) {
		pl, err := playlist.Import(args[0])
		handleErr(err)

		cmd.Printf("%s %s: %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Bold(pl.Name),
			util.Quantify(len(pl.Tracks), "track", "tracks"),
		)
		printTracks(cmd, pl.Tracks)

		if !lo.Must(cmd.Flags().GetBool("save")) {
			return
		}

		viper.Set(key.MusicPlaylist, pl.Path)
		handleErr(persist())
		success("set %s to %s", style.Fg(color.Purple)(key.MusicPlaylist), style.Fg(color.Yellow)(pl.Path))
	},
}

func init() {
	playlistCmd.AddCommand(playlistExportCmd)
	playlistExportCmd.Flags().StringP("output", "o", "", "Write to this file instead of standard output")
	playlistExportCmd.SetOut(os.Stdout)
}

var playlistExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the session's music tracks as an m3u playlist",
	Run: func(cmd *cobra.Command, args []string) {
		session, err := config.LoadSession("")
		handleErr(err)

		output := lo.Must(cmd.Flags().GetString("output"))
		if output == "" {
			handleErr(playlist.Write(cmd.OutOrStdout(), session.Tracks()))
			return
		}

		handleErr(playlist.Export(output, session.Tracks()))
		success("exported %s to %s", util.Quantify(len(session.Music.Tracks), "track", "tracks"), output)
	},
}
