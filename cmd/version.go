package cmd

import (
	"os"
	"runtime"
	"text/template"

	"github.com/burhanyldz/zindekal/color"
	"github.com/burhanyldz/zindekal/constant"
	"github.com/burhanyldz/zindekal/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Print only the version number")
}

var versionTemplate = lo.Must(template.New("version").Funcs(map[string]any{
	"faint":  style.Faint,
	"bold":   style.Bold,
	"accent": style.Fg(color.Green),
}).Parse(`{{ accent "▇▇▇" }} {{ accent .App }}

  {{ faint "Version" }}     {{ bold .Version }}
  {{ faint "Go" }}          {{ bold .Go }}
  {{ faint "Platform" }}    {{ bold .OS }}/{{ bold .Arch }}
`))

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and platform",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		handleErr(versionTemplate.Execute(cmd.OutOrStdout(), struct {
			App, Version, Go, OS, Arch string
		}{
			App:     constant.Zindekal,
			Version: constant.Version,
			Go:      runtime.Version(),
			OS:      runtime.GOOS,
			Arch:    runtime.GOARCH,
		}))
	},
}
