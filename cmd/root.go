// Package cmd wires the zindekal command line.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/burhanyldz/zindekal/color"
	"github.com/burhanyldz/zindekal/config"
	"github.com/burhanyldz/zindekal/constant"
	"github.com/burhanyldz/zindekal/icon"
	"github.com/burhanyldz/zindekal/key"
	"github.com/burhanyldz/zindekal/log"
	"github.com/burhanyldz/zindekal/media"
	"github.com/burhanyldz/zindekal/modal"
	"github.com/burhanyldz/zindekal/player"
	"github.com/burhanyldz/zindekal/style"
	"github.com/burhanyldz/zindekal/tui"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("session", "S", "", "Break session file (toml, yaml or json)")
	lo.Must0(viper.BindPFlag(key.SessionPath, rootCmd.PersistentFlags().Lookup("session")))

	rootCmd.Flags().StringP("tab", "t", "", "Tab to open first")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("tab", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(media.Tabs(), func(t media.Tab, _ int) string { return t.String() }), cobra.ShellCompDirectiveNoFileComp
	}))
	rootCmd.Flags().Bool("no-lock", false, "Allow closing the break right away")
	rootCmd.Flags().IntP("lock-duration", "l", 0, "Seconds the break stays locked open")
	rootCmd.MarkFlagsMutuallyExclusive("no-lock", "lock-duration")
}

// rootCmd opens a break.
var rootCmd = &cobra.Command{
	Use:   constant.Zindekal,
	Short: "Take a short wellness break in your terminal",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiGreen).Render("    - Stretch, breathe and listen for a few minutes"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()

		session, err := config.LoadSession("")
		handleErr(err)

		if cmd.Flags().Changed("tab") {
			t := media.Tab(lo.Must(cmd.Flags().GetString("tab")))
			if !t.Valid() {
				handleErr(fmt.Errorf("%w: %s", config.ErrUnknownTab, t))
			}
			session.InitialTab = t
		}

		handleErr(tui.Run(&tui.Options{
			Session: session,
			Open:    openOptions(cmd),
			Player:  player.OptionsFromConfig(),
		}))
	},
}

// openOptions turns the lock flags into per-opening overrides.
func openOptions(cmd *cobra.Command) modal.OpenOptions {
	var opts modal.OpenOptions

	if lo.Must(cmd.Flags().GetBool("no-lock")) {
		opts.EnableLock = mo.Some(false)
	}
	if cmd.Flags().Changed("lock-duration") {
		opts.EnableLock = mo.Some(true)
		opts.LockDuration = mo.Some(lo.Must(cmd.Flags().GetInt("lock-duration")))
	}

	return opts
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiGreen + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
