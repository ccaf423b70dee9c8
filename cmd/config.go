package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/burhanyldz/zindekal/color"
	"github.com/burhanyldz/zindekal/config"
	"github.com/burhanyldz/zindekal/constant"
	"github.com/burhanyldz/zindekal/filesystem"
	"github.com/burhanyldz/zindekal/icon"
	"github.com/burhanyldz/zindekal/style"
	"github.com/burhanyldz/zindekal/where"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

func configFile() string {
	return filepath.Join(where.Config(), constant.Zindekal+".toml")
}

// lookupField returns the registered field or an error suggesting the closest key.
func lookupField(k string) (config.Field, error) {
	if f, ok := config.Default[k]; ok {
		return f, nil
	}

	closest := lo.MinBy(lo.Keys(config.Default), func(a, b string) bool {
		return levenshtein.Distance(k, a) < levenshtein.Distance(k, b)
	})
	return config.Field{}, fmt.Errorf(
		"unknown key %s, did you mean %s?",
		style.Fg(color.Red)(k),
		style.Fg(color.Yellow)(closest),
	)
}

// parseValue converts raw arguments into the type of the field's default.
func parseValue(f config.Field, raw []string) (any, error) {
	switch f.Value.(type) {
	case []string:
		return raw, nil
	case string:
		return raw[0], nil
	case int:
		n, err := strconv.Atoi(raw[0])
		if err != nil {
			return nil, fmt.Errorf("%s expects an integer, got %q", f.Key, raw[0])
		}
		return n, nil
	case float64:
		n, err := strconv.ParseFloat(raw[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%s expects a number, got %q", f.Key, raw[0])
		}
		return n, nil
	case bool:
		b, err := strconv.ParseBool(raw[0])
		if err != nil {
			return nil, fmt.Errorf("%s expects true or false, got %q", f.Key, raw[0])
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%s cannot be set from the command line", f.Key)
	}
}

// persist writes the settings file, creating it on first use.
func persist() error {
	err := viper.WriteConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return viper.SafeWriteConfig()
	}
	return err
}

func success(format string, args ...any) {
	fmt.Printf("%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), fmt.Sprintf(format, args...))
}

func completionConfigKeys(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Keys(config.Default), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change settings, or start a session file",
}

func init() {
	configCmd.AddCommand(configInfoCmd)
	configInfoCmd.Flags().StringSliceP("key", "k", nil, "Only describe these keys")
	configInfoCmd.Flags().BoolP("json", "j", false, "Print as JSON")
	_ = configInfoCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)

	configInfoCmd.SetOut(os.Stdout)
}

var configInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe settings with their current and default values",
	Run: func(cmd *cobra.Command, args []string) {
		keys := lo.Must(cmd.Flags().GetStringSlice("key"))
		if len(keys) == 0 {
			keys = lo.Keys(config.Default)
		}
		slices.Sort(keys)

		fields := lo.Map(keys, func(k string, _ int) config.Field {
			f, err := lookupField(k)
			handleErr(err)
			return f
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			lo.Must0(json.NewEncoder(cmd.OutOrStdout()).Encode(fields))
			return
		}

		for i := range fields {
			if i > 0 {
				cmd.Println()
			}
			cmd.Println(fields[i].Pretty())
		}
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configSetCmd.Flags().StringP("key", "k", "", "Key to change")
	configSetCmd.Flags().StringSliceP("value", "v", nil, "New value")
	_ = configSetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

var configSetCmd = &cobra.Command{
	Use:               "set [key] [value...]",
	Short:             "Change a setting and save it",
	Example:           "  zindekal config set modal.lock_duration 120\n  zindekal config set --key music.volume --value 0.4",
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		k := lo.Must(cmd.Flags().GetString("key"))
		raw := lo.Must(cmd.Flags().GetStringSlice("value"))

		if len(args) > 0 {
			k, args = args[0], args[1:]
		}
		if len(args) > 0 {
			raw = args
		}

		switch {
		case k == "":
			handleErr(errors.New("a key is required, as an argument or with --key"))
		case len(raw) == 0:
			handleErr(errors.New("a value is required, as an argument or with --value"))
		}

		f, err := lookupField(k)
		handleErr(err)

		v, err := parseValue(f, raw)
		handleErr(err)

		viper.Set(k, v)
		handleErr(persist())
		success("set %s to %s", style.Fg(color.Purple)(k), style.Fg(color.Yellow)(fmt.Sprint(v)))
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configGetCmd.SetOut(os.Stdout)
}

var configGetCmd = &cobra.Command{
	Use:               "get [key]",
	Short:             "Print the current value of a setting",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		_, err := lookupField(args[0])
		handleErr(err)
		cmd.Println(viper.Get(args[0]))
	},
}

func init() {
	configCmd.AddCommand(configWriteCmd)
	configWriteCmd.Flags().BoolP("force", "f", false, "Replace an existing settings file")
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Save the current settings to " + constant.Zindekal + ".toml",
	Run: func(cmd *cobra.Command, args []string) {
		path := configFile()

		if lo.Must(cmd.Flags().GetBool("force")) {
			_ = filesystem.API().Remove(path)
		}

		handleErr(viper.SafeWriteConfig())
		success("wrote settings to %s", path)
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}

var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Remove the settings file",
	Aliases: []string{"remove"},
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(filesystem.API().Remove(configFile()))
		success("deleted settings")
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)

	configResetCmd.Flags().StringP("key", "k", "", "Key to reset")
	configResetCmd.Flags().BoolP("all", "a", false, "Reset every setting")
	configResetCmd.MarkFlagsMutuallyExclusive("key", "all")
	configResetCmd.MarkFlagsOneRequired("key", "all")
	_ = configResetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore settings to their defaults",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("all")) {
			for k, f := range config.Default {
				viper.Set(k, f.Value)
			}
			handleErr(persist())
			success("reset every setting")
			return
		}

		f, err := lookupField(lo.Must(cmd.Flags().GetString("key")))
		handleErr(err)

		viper.Set(f.Key, f.Value)
		handleErr(persist())
		success("reset %s to %s", style.Fg(color.Purple)(f.Key), style.Fg(color.Yellow)(fmt.Sprint(f.Value)))
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().BoolP("force", "f", false, "Overwrite an existing session file without asking")
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the built-in break session to the default session file for editing",
	Run: func(cmd *cobra.Command, args []string) {
		path := where.Session()

		exists, err := filesystem.API().Exists(path)
		handleErr(err)

		if exists && !lo.Must(cmd.Flags().GetBool("force")) {
			var overwrite bool
			handleErr(survey.AskOne(&survey.Confirm{
				Message: fmt.Sprintf("%s already exists. Overwrite it?", path),
			}, &overwrite))

			if !overwrite {
				return
			}
		}

		handleErr(filesystem.API().WriteFile(path, []byte(constant.DefaultSession), 0o644))
		success("wrote session to %s", path)
	},
}

func init() {
	configCmd.AddCommand(configSchemaCmd)
	configSchemaCmd.SetOut(os.Stdout)
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema that session files follow",
	Run: func(cmd *cobra.Command, args []string) {
		schema, err := config.SessionSchema()
		handleErr(err)
		cmd.Println(string(schema))
	},
}
