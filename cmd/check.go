package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/burhanyldz/zindekal/color"
	"github.com/burhanyldz/zindekal/config"
	"github.com/burhanyldz/zindekal/constant"
	"github.com/burhanyldz/zindekal/icon"
	"github.com/burhanyldz/zindekal/player"
	"github.com/burhanyldz/zindekal/style"
	"github.com/burhanyldz/zindekal/util"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// CheckDependencies exits when the configured media player cannot be found.
func CheckDependencies() {
	opts := player.OptionsFromConfig()
	if _, err := opts.Available(); err != nil {
		printMissingDependency(opts.Binary)
		os.Exit(1)
	}
}

func installHint() string {
	switch runtime.GOOS {
	case constant.Darwin:
		return "brew install mpv"
	case constant.Linux:
		return "sudo apt install mpv"
	case constant.Windows:
		return "scoop install mpv"
	default:
		return ""
	}
}

func printMissingDependency(binary string) {
	if binary == "" {
		binary = "mpv"
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Missing media player", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("'%s' was not found in your PATH. Breaks play videos and music through it.", binary))

	var hint string
	if cmd := installHint(); cmd != "" {
		hint = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(cmd))
	}

	fmt.Println(box.Render(lipgloss.JoinVertical(lipgloss.Left, title, "\n", body, hint)))
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.SetOut(os.Stdout)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the media player is installed and the session is valid",
	Run: func(cmd *cobra.Command, args []string) {
		ok := style.Fg(color.Green)(icon.Get(icon.Success))
		warn := style.Fg(color.Yellow)(icon.Get(icon.Warn))

		path, err := player.OptionsFromConfig().Available()
		if err != nil {
			printMissingDependency(player.OptionsFromConfig().Binary)
			os.Exit(1)
		}
		cmd.Printf("%s player %s\n", ok, path)

		session, err := config.LoadSession("")
		handleErr(err)

		cmd.Printf("%s session with %s, %s and %s\n",
			ok,
			util.Quantify(len(session.Exercise.Categories), "category", "categories"),
			util.Quantify(len(session.Exercise.Videos)+len(session.Relaxing.Videos), "video", "videos"),
			util.Quantify(len(session.Music.Tracks), "track", "tracks"),
		)

		if err := session.CheckMusic(); err != nil {
			cmd.Printf("%s %s\n", warn, err)
		}
	},
}
